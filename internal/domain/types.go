package domain

// ID is used across domain entities.
type ID = int64

// RequestContext carries the authenticated caller identity as resolved by
// the auth middleware. The core trusts these values as already verified.
type RequestContext struct {
	UserID ID
	Role   string
}

// Role names as stored on users and embedded in JWT claims.
const (
	RoleUser    = "User"
	RoleManager = "Manager"
	RoleAdmin   = "Admin"
)

// IsPrivileged reports whether the caller may act on other users' tickets.
func (rc RequestContext) IsPrivileged() bool {
	return rc.Role == RoleAdmin
}
