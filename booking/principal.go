package booking

import "github.com/google/uuid"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the authenticated actor a request runs as. The zero value
// means "not authenticated".
type Principal struct {
	ID   uuid.UUID
	Role string
}

func (p Principal) Authenticated() bool {
	return p.ID != uuid.Nil
}

// CanDecide reports whether the principal may approve or reject bookings.
func (p Principal) CanDecide() bool {
	return p.Role == RoleAdmin
}
