package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GehirnInc/crypt/sha512_crypt"

	"github.com/hnrobert/lusers/internal/hostfs"
	"github.com/hnrobert/lusers/internal/logger"
	"github.com/hnrobert/lusers/internal/usermgr"
)

type MaterializeOptions struct {
	// CreateHome creates each user's home directory below the root.
	CreateHome bool
	// Now dates the shadow last-change field. Zero means time.Now.
	Now time.Time
}

// Materialize writes etc/passwd, etc/group and etc/shadow for f below root,
// replacing any existing files. Entries are resolved the same way Build
// resolves them.
func (f *Fixture) Materialize(root string, opts MaterializeOptions) error {
	if err := f.validate(root, opts); err != nil {
		return err
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	days := fmt.Sprintf("%d", now.Unix()/86400)

	passwords := make(map[int]string, len(f.Users))
	for _, u := range f.Users {
		passwords[u.UID] = u.Password
	}

	dir := f.Build()
	pw, sh, gr := usermgr.NewPasswd(), usermgr.NewShadow(), usermgr.NewGroup()
	for _, u := range dir.AllUsers() {
		pw.Put(usermgr.PasswdEntry{
			Name:   u.Name,
			Passwd: "x",
			UID:    u.UID,
			GID:    u.PrimaryGroup,
			Home:   u.HomeDir,
			Shell:  u.Shell,
		})
		hash := "!"
		if p := passwords[u.UID]; p != "" {
			h, err := sha512_crypt.New().Generate([]byte(p), nil)
			if err != nil {
				return fmt.Errorf("hash password for %s: %w", u.Name, err)
			}
			hash = h
		}
		sh.Put(usermgr.ShadowEntry{
			Name:       u.Name,
			Hash:       hash,
			LastChange: days,
			Min:        "0",
			Max:        "99999",
			Warn:       "7",
		})
	}
	for _, g := range dir.AllGroups() {
		gr.Put(usermgr.GroupEntry{Name: g.Name, Passwd: "x", GID: g.GID, Members: g.Members})
	}

	etc, err := hostfs.Path(root, hostfs.EtcDirRel)
	if err != nil {
		return err
	}
	if err := hostfs.EnsureDir(etc, 0755); err != nil {
		return fmt.Errorf("create %s: %w", etc, err)
	}
	files := []struct {
		rel  string
		data []byte
		perm os.FileMode
	}{
		{hostfs.EtcPasswdRel, pw.Bytes(), 0644},
		{hostfs.EtcGroupRel, gr.Bytes(), 0644},
		{hostfs.EtcShadowRel, sh.Bytes(), 0600},
	}
	for _, file := range files {
		path, err := hostfs.Path(root, file.rel)
		if err != nil {
			return err
		}
		if err := hostfs.WriteFileAtomic(path, file.data, file.perm); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	if opts.CreateHome {
		for _, u := range dir.AllUsers() {
			abs, err := homePath(root, u.HomeDir)
			if err != nil {
				return fmt.Errorf("home of %s: %w", u.Name, err)
			}
			if abs == "" {
				continue
			}
			if err := hostfs.EnsureDir(abs, 0755); err != nil {
				return err
			}
			// Only succeeds when running as root.
			_ = os.Chown(abs, u.UID, u.PrimaryGroup)
		}
	}
	logger.Info("fixture: materialized %d users and %d groups under %s",
		len(dir.AllUsers()), len(dir.AllGroups()), filepath.Clean(root))
	return nil
}

// homePath maps home below root. It returns "" for an empty home and for one
// that is the root itself, since there is nothing to create.
func homePath(root, home string) (string, error) {
	if home == "" {
		return "", nil
	}
	if strings.HasPrefix(home, "/") && filepath.Clean(home) == "/" {
		return "", nil
	}
	return hostfs.Abs(root, home)
}

// validate rejects values that cannot be represented in passwd-style files,
// and anything else Materialize would only notice after writing.
func (f *Fixture) validate(root string, opts MaterializeOptions) error {
	// Shadow entries are keyed by name, so two surviving uids must not share one.
	names := make(map[int]string, len(f.Users))
	for _, u := range f.Users {
		names[u.UID] = u.Name
	}
	owner := make(map[string]int, len(names))
	for uid, name := range names {
		if other, ok := owner[name]; ok {
			lo, hi := min(uid, other), max(uid, other)
			return fmt.Errorf("user name %q is used by uids %d and %d", name, lo, hi)
		}
		owner[name] = uid
	}

	for _, u := range f.Users {
		if opts.CreateHome {
			if _, err := homePath(root, u.HomeDir); err != nil {
				return fmt.Errorf("user %d: home %q: %w", u.UID, u.HomeDir, err)
			}
		}
		for _, field := range []string{u.Name, u.HomeDir, u.Shell} {
			if !usermgr.ValidField(field) {
				return fmt.Errorf("user %d: field %q contains ':' or a newline", u.UID, field)
			}
		}
		if u.Name == "" {
			return fmt.Errorf("user %d: empty name", u.UID)
		}
		if !usermgr.ValidUsername(u.Name) {
			logger.Warn("fixture: %q is not a portable username", u.Name)
		}
	}
	for _, g := range f.Groups {
		if g.Name == "" || !usermgr.ValidField(g.Name) {
			return fmt.Errorf("group %d: invalid name %q", g.GID, g.Name)
		}
		for _, m := range g.Members {
			if !usermgr.ValidField(m) || strings.Contains(m, ",") {
				return fmt.Errorf("group %d: invalid member %q", g.GID, m)
			}
		}
	}
	return nil
}
