package domain

// Role values supplied by the auth layer.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// RequestContext carries the authenticated caller for one request.
// It is built per request by the auth middleware; nothing about the
// signed-in user lives in process globals.
type RequestContext struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the caller holds administrative capability.
func (rc RequestContext) IsAdmin() bool {
	return rc.Role == RoleAdmin
}
