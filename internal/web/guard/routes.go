package guard

import "strings"

// Class is the route classification of a request path.
type Class string

const (
	ClassStatic         Class = "static"
	ClassAuthOnly       Class = "auth_only"
	ClassUserProtected  Class = "user_protected"
	ClassAdminProtected Class = "admin_protected"
	ClassPublic         Class = "public"
	ClassOther          Class = "other"
)

// Routes is the static route table. Every entry is a path prefix, except
// "/" which only matches the home page itself.
type Routes struct {
	AuthOnly       []string `json:"auth_only"`
	UserProtected  []string `json:"user_protected"`
	AdminProtected []string `json:"admin_protected"`
	Public         []string `json:"public"`
	// Static prefixes bypass the guard entirely.
	Static []string `json:"static"`
}

func DefaultRoutes() Routes {
	return Routes{
		AuthOnly:       []string{"/login", "/register"},
		UserProtected:  []string{"/dashboard", "/my-posts", "/create-post", "/payment", "/payment-history", "/profile"},
		AdminProtected: []string{"/admin"},
		Public:         []string{"/", "/search", "/posts", "/subscription"},
		Static:         []string{"/api", "/_next/static", "/_next/image", "/favicon.ico", "/public"},
	}
}

// Classify returns the first class whose table matches path, checked in
// guard priority order.
func (r Routes) Classify(path string) Class {
	switch {
	case matchAny(path, r.Static):
		return ClassStatic
	case matchAny(path, r.AuthOnly):
		return ClassAuthOnly
	case matchAny(path, r.UserProtected):
		return ClassUserProtected
	case matchAny(path, r.AdminProtected):
		return ClassAdminProtected
	case matchAny(path, r.Public):
		return ClassPublic
	}
	return ClassOther
}

func matchAny(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if p == "/" {
			if path == "/" {
				return true
			}
			continue
		}
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
