package api

import "github.com/dmitrijs2005/evmarket/internal/common"

// ID is a backend identifier, numeric or string on the wire.
type ID = common.ID

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	UserID     ID          `json:"userId"`
	UserName   string      `json:"userName"`
	UserEmail  string      `json:"userEmail"`
	Phone      string      `json:"phone"`
	UserStatus string      `json:"userStatus"`
	Dob        string      `json:"dob,omitempty"`
	Role       common.Role `json:"role"`
	Token      string      `json:"token"`
}

// RegisterRequest carries the new account. Password is sent as userPassword.
type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"userEmail"`
	Password string `json:"userPassword"`
	Phone    string `json:"phone"`
}

// Account is the user the backend returns after registration.
type Account struct {
	UserID     ID          `json:"userId"`
	UserName   string      `json:"userName"`
	UserEmail  string      `json:"userEmail"`
	Phone      string      `json:"phone"`
	UserStatus string      `json:"userStatus"`
	Role       common.Role `json:"role"`
}
