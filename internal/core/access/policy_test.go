package access

import (
	"testing"

	"blogcap/internal/core/post"
	"blogcap/internal/core/user"

	"github.com/gofrs/uuid"
)

func TestCanModifyAndDelete(t *testing.T) {
	author := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())
	adminID := uuid.Must(uuid.NewV4())
	p := &post.Post{ID: uuid.Must(uuid.NewV4()), AuthorID: author}

	cases := []struct {
		name string
		id   Identity
		want bool
	}{
		{"anonymous", Anonymous, false},
		{"author", Identity{Kind: KindUser, UserID: author, Role: user.RoleUser}, true},
		{"other user", Identity{Kind: KindUser, UserID: other, Role: user.RoleUser}, false},
		{"admin session", Identity{Kind: KindAdmin, UserID: adminID, Role: user.RoleAdmin}, true},
		{"admin account via user login", Identity{Kind: KindUser, UserID: adminID, Role: user.RoleAdmin}, true},
		{"admin kind without admin role", Identity{Kind: KindAdmin, UserID: author, Role: user.RoleUser}, false},
		{"kind set but no user id", Identity{Kind: KindUser, Role: user.RoleAdmin}, false},
	}
	for _, tc := range cases {
		if got := CanModify(tc.id, p); got != tc.want {
			t.Errorf("%s: CanModify = %v, want %v", tc.name, got, tc.want)
		}
		if got := CanDelete(tc.id, p); got != tc.want {
			t.Errorf("%s: CanDelete = %v, want %v", tc.name, got, tc.want)
		}
	}

	if CanModify(Identity{Kind: KindAdmin, UserID: adminID, Role: user.RoleAdmin}, nil) {
		t.Errorf("nil post must be denied")
	}
}

func TestCanCreatePostAndComment(t *testing.T) {
	u := Identity{Kind: KindUser, UserID: uuid.Must(uuid.NewV4()), Role: user.RoleUser}
	a := Identity{Kind: KindAdmin, UserID: uuid.Must(uuid.NewV4()), Role: user.RoleAdmin}
	if CanCreatePost(Anonymous) || CanComment(Anonymous) {
		t.Errorf("anonymous must be denied")
	}
	if !CanCreatePost(u) || !CanComment(u) {
		t.Errorf("user session must be allowed")
	}
	if !CanCreatePost(a) {
		t.Errorf("admin session must be allowed to create posts")
	}
}

func TestCanViewSummary(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	if CanViewSummary(Identity{Kind: KindUser, UserID: id, Role: user.RoleAdmin}) {
		t.Errorf("admin account in a user session must not see the summary")
	}
	if !CanViewSummary(Identity{Kind: KindAdmin, UserID: id, Role: user.RoleAdmin}) {
		t.Errorf("admin session must see the summary")
	}
	if CanViewAdminDashboard(Anonymous) {
		t.Errorf("anonymous must not see the admin dashboard")
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindAnonymous, KindUser, KindAdmin} {
		if got := ParseKind(k.String()); got != k {
			t.Errorf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}
	if ParseKind("superuser") != KindAnonymous {
		t.Errorf("unknown kinds must be anonymous")
	}
}
