package post

import (
	"time"

	"blogcap/internal/core/user"

	"github.com/gofrs/uuid"
)

// DefaultMaxCommentsPerUser applies when a post is created without a limit.
const DefaultMaxCommentsPerUser = 3

type Post struct {
	ID                 uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Title              string    `gorm:"type:varchar(255);not null"`
	Content            string    `gorm:"type:text;not null"`
	AuthorID           uuid.UUID `gorm:"type:char(36);not null;index"`
	Author             user.User `gorm:"foreignKey:AuthorID"`
	MaxCommentsPerUser int       `gorm:"not null"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}
