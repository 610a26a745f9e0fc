package comment

import (
	"time"

	"blogcap/internal/core/post"
	"blogcap/internal/core/user"

	"github.com/gofrs/uuid"
)

// Comment is immutable once written. Seq numbers a user's comments on one post
// starting at 1; the unique index on (post_id, user_id, seq) is what keeps the
// per-user quota intact when two submissions race.
type Comment struct {
	ID        uuid.UUID `gorm:"primaryKey;type:char(36)"`
	Content   string    `gorm:"type:text;not null"`
	PostID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_post_user_seq,priority:1"`
	Post      post.Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_post_user_seq,priority:2;index"`
	User      user.User `gorm:"foreignKey:UserID"`
	Seq       int       `gorm:"not null;uniqueIndex:uniq_post_user_seq,priority:3"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
