package utils

import "testing"

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		password string
		wantErr  bool
	}{
		{"abc", true},
		{"abcdefgh", true},
		{"ABCDEFGH", true},
		{"Abcdefgh", true},
		{"abcdefg1", true},
		{"Abcdefg1", false},
		{"Str0ngPassword", false},
	}
	for _, c := range cases {
		err := ValidatePassword(c.password)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidatePassword(%q) = %v, wantErr %v", c.password, err, c.wantErr)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("user@example.com"); err != nil {
		t.Errorf("expected valid email, got %v", err)
	}
	for _, bad := range []string{"", "user", "user@", "@example.com", "user@example"} {
		if err := ValidateEmail(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
