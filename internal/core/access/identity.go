// Package access decides who may do what. It never reads ambient state: every
// decision is made from the Identity the caller passes in.
package access

import (
	"blogcap/internal/core/user"

	"github.com/gofrs/uuid"
)

// Kind tags how an identity logged in. User and admin sessions are tracked
// independently even when they belong to the same account.
type Kind int

const (
	KindAnonymous Kind = iota
	KindUser
	KindAdmin
)

func (k Kind) String() string {
	switch k {
	case KindUser:
		return "user"
	case KindAdmin:
		return "admin"
	default:
		return "anonymous"
	}
}

// ParseKind is the inverse of Kind.String. Unknown text yields KindAnonymous.
func ParseKind(s string) Kind {
	switch s {
	case "user":
		return KindUser
	case "admin":
		return KindAdmin
	default:
		return KindAnonymous
	}
}

// Identity is an authenticated session's role-tagged reference to an account.
// The zero value is anonymous.
type Identity struct {
	Kind   Kind
	UserID uuid.UUID
	Role   user.Role
}

// Anonymous is the identity of a request without a session.
var Anonymous = Identity{}

func (id Identity) Authenticated() bool {
	return id.Kind != KindAnonymous && id.UserID != uuid.Nil
}

func (id Identity) IsAdmin() bool {
	return id.Authenticated() && id.Role == user.RoleAdmin
}
