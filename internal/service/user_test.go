package service

import (
	"errors"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
		err   error
	}{
		{name: "valid", input: "ex@mail.com", want: "ex@mail.com"},
		{name: "trimmed", input: "  ex@mail.com  ", want: "ex@mail.com"},
		{name: "empty", input: "", err: ErrInvalidEmail},
		{name: "too short", input: "a@b", err: ErrInvalidEmail},
		{name: "no at sign", input: "not-an-email", err: ErrInvalidEmail},
		{name: "missing domain", input: "user@", err: ErrInvalidEmail},
		{name: "display name form", input: "Bob <bob@mail.com>", err: ErrInvalidEmail},
		{name: "spaces inside", input: "ex @mail.com", err: ErrInvalidEmail},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateEmail(tc.input)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Errorf("ValidateEmail(%q) error = %v, want %v", tc.input, err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateEmail(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ValidateEmail(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
