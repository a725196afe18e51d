package usermgr

import (
	"regexp"
	"strings"
)

var usernameRe = regexp.MustCompile(`^[a-z_][a-z0-9_-]{0,31}$`)

// ValidUsername enforces Ubuntu-style username requirements:
// lowercase letters/digits/underscore/dash, starting with a letter or underscore.
func ValidUsername(u string) bool {
	return usernameRe.MatchString(u)
}

// ValidField reports whether s can be written as a single colon-separated
// field without corrupting the file.
func ValidField(s string) bool {
	return !strings.ContainsAny(s, ":\n\r")
}
