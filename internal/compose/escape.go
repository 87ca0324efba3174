package compose

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks that the admin credentials can be embedded in a NOTICE.
func (a Admin) Validate() error {
	if a.Email == "" {
		return fmt.Errorf("admin email is required")
	}
	if !emailPattern.MatchString(a.Email) {
		return fmt.Errorf("invalid admin email %q", a.Email)
	}
	if a.Password == "" {
		return fmt.Errorf("admin password is required")
	}
	if strings.IndexFunc(a.Password, unicode.IsControl) >= 0 {
		return fmt.Errorf("admin password contains control characters")
	}
	return nil
}

// quoteLiteral escapes s for use inside a single-quoted SQL string.
func quoteLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
