package hostfs

import (
	"errors"
	"path/filepath"
	"strings"
)

// DefaultRoot is the root used when none is configured.
const DefaultRoot = "/"

// Locations of the identity files relative to a root.
const (
	EtcDirRel    = "etc"
	EtcPasswdRel = EtcDirRel + "/passwd"
	EtcShadowRel = EtcDirRel + "/shadow"
	EtcGroupRel  = EtcDirRel + "/group"
)

var ErrInvalidPath = errors.New("invalid host path")

// Path joins root with a relative path (leading slashes are ignored).
// Example: Path("/tmp/fake", "etc/passwd") -> /tmp/fake/etc/passwd
func Path(root, rel string) (string, error) {
	if root == "" {
		root = DefaultRoot
	}
	rel = strings.TrimPrefix(rel, "/")
	clean := filepath.Clean(rel)
	if clean == "." || clean == "" {
		return "", ErrInvalidPath
	}
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidPath
	}
	return filepath.Join(root, clean), nil
}

// Abs maps an absolute host path (e.g. /home/alice) into root
// (e.g. <root>/home/alice).
func Abs(root, abs string) (string, error) {
	if abs == "" || !strings.HasPrefix(abs, "/") {
		return "", ErrInvalidPath
	}
	return Path(root, filepath.Clean(abs))
}
