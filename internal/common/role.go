package common

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Role is a marketplace role name such as USER, ADMIN or MODERATOR.
//
// The backend sends roles either as a plain string or as an object of the
// form {"roleName": "ADMIN"}; both decode into the same value.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
)

// UnmarshalJSON accepts "ADMIN" and {"roleName":"ADMIN"}. Anything else
// (null, numbers, malformed objects) decodes to the empty role.
func (r *Role) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}

	if data[0] == '{' {
		var obj struct {
			RoleName string `json:"roleName"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			*r = ""
			return nil
		}
		*r = Role(obj.RoleName)
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Role(s)
		return nil
	}

	// numeric role ids and other shapes carry no name
	*r = ""
	return nil
}

// Name returns the role as stored, defaulting to USER when empty.
func (r Role) Name() string {
	if r == "" {
		return string(RoleUser)
	}
	return string(r)
}

// IsAdmin reports whether the role may use the admin console.
func (r Role) IsAdmin() bool {
	switch Role(strings.ToUpper(string(r))) {
	case RoleAdmin, RoleModerator:
		return true
	}
	return false
}
