package user

import (
	"time"

	"github.com/gofrs/uuid"
)

// Role is closed: only RoleUser and RoleAdmin are valid.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps free text to a Role. An empty string means RoleUser.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case "", RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

type User struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Username  string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	FullName  string    `gorm:"type:varchar(128);not null"`
	Email     string    `gorm:"type:varchar(191);uniqueIndex;not null"`
	Password  string    `gorm:"not null"` // bcrypt digest
	Role      Role      `gorm:"type:varchar(10);not null;default:'user'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
