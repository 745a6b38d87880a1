package session

import "github.com/dmitrijs2005/evmarket/internal/common"

// User is the cached copy of the backend profile kept next to the credential.
type User struct {
	UserID     string      `json:"userID"`
	UserName   string      `json:"userName"`
	UserEmail  string      `json:"userEmail"`
	Phone      string      `json:"phone"`
	Role       common.Role `json:"role"`
	UserStatus string      `json:"userStatus"`
}
