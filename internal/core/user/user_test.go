package user

import "testing"

func TestPasswordHashing(t *testing.T) {
	pw := "supersecret"
	hash, err := HashPassword(pw)
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if hash == pw {
		t.Fatalf("digest must not equal the plaintext")
	}
	if err := CheckPassword(hash, pw); err != nil {
		t.Errorf("check should succeed: %v", err)
	}
	if err := CheckPassword(hash, "wrongpw"); err == nil {
		t.Errorf("expected failure for wrong password")
	}
}

func TestParseRole(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"", RoleUser, true},
		{"user", RoleUser, true},
		{"admin", RoleAdmin, true},
		{"Admin", "", false},
		{"root", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseRole(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseRole(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
