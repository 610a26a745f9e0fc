package access

import (
	"blogcap/internal/core/post"
	"blogcap/internal/core/user"
)

// CanModify reports whether id may edit p: admins may edit any post, users
// only their own.
func CanModify(id Identity, p *post.Post) bool {
	if p == nil || !id.Authenticated() {
		return false
	}
	if id.Role == user.RoleAdmin {
		return true
	}
	switch id.Kind {
	case KindUser:
		return id.UserID == p.AuthorID
	case KindAdmin, KindAnonymous:
		return false
	}
	return false
}

// CanDelete follows the same rule as CanModify. The has-comments check is the
// lifecycle manager's job, not the policy's.
func CanDelete(id Identity, p *post.Post) bool {
	return CanModify(id, p)
}

func CanCreatePost(id Identity) bool {
	return id.Authenticated()
}

func CanComment(id Identity) bool {
	return id.Authenticated()
}

// CanViewSummary is restricted to admin sessions, not merely admin accounts
// logged in through the user flow.
func CanViewSummary(id Identity) bool {
	return id.Authenticated() && id.Kind == KindAdmin && id.Role == user.RoleAdmin
}

func CanViewAdminDashboard(id Identity) bool {
	return CanViewSummary(id)
}
