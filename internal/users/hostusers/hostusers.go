// Package hostusers implements users.Users over passwd and group files below
// a root directory. Files are re-read on every lookup.
package hostusers

import (
	"os"
	"slices"

	"github.com/hnrobert/lusers/internal/hostfs"
	"github.com/hnrobert/lusers/internal/logger"
	"github.com/hnrobert/lusers/internal/usermgr"
	"github.com/hnrobert/lusers/internal/users"
)

var (
	_ users.Users  = (*HostUsers)(nil)
	_ users.Source = (*HostUsers)(nil)
)

// HostUsers reads <Root>/etc/passwd and <Root>/etc/group.
//
// Current and effective ids come from the running process. Names for them are
// resolved against the files under Root, which need not be the files the
// kernel uses.
type HostUsers struct {
	Root string

	// Process id accessors, replaceable in tests.
	getuid  func() int
	getgid  func() int
	geteuid func() int
	getegid func() int
}

// New returns a HostUsers reading below root. An empty root means "/".
func New(root string) *HostUsers {
	if root == "" {
		root = hostfs.DefaultRoot
	}
	return &HostUsers{
		Root:    root,
		getuid:  os.Getuid,
		getgid:  os.Getgid,
		geteuid: os.Geteuid,
		getegid: os.Getegid,
	}
}

func (h *HostUsers) passwd() *usermgr.PasswdFile {
	path, err := hostfs.Path(h.Root, hostfs.EtcPasswdRel)
	if err != nil {
		logger.Warn("hostusers: %v", err)
		return usermgr.NewPasswd()
	}
	f, err := usermgr.LoadPasswd(path)
	if err != nil {
		logger.Warn("hostusers: %v", err)
		return usermgr.NewPasswd()
	}
	return f
}

func (h *HostUsers) group() *usermgr.GroupFile {
	path, err := hostfs.Path(h.Root, hostfs.EtcGroupRel)
	if err != nil {
		logger.Warn("hostusers: %v", err)
		return usermgr.NewGroup()
	}
	f, err := usermgr.LoadGroup(path)
	if err != nil {
		logger.Warn("hostusers: %v", err)
		return usermgr.NewGroup()
	}
	return f
}

func toUser(e *usermgr.PasswdEntry) users.User {
	return users.User{
		UID:          e.UID,
		Name:         e.Name,
		PrimaryGroup: e.GID,
		HomeDir:      e.Home,
		Shell:        e.Shell,
	}
}

func toGroup(e *usermgr.GroupEntry) users.Group {
	return users.Group{
		GID:     e.GID,
		Name:    e.Name,
		Members: slices.Clone(e.Members),
	}
}

// UserByUID returns the first passwd entry with uid.
func (h *HostUsers) UserByUID(uid int) (users.User, bool) {
	e := h.passwd().FindByUID(uid)
	if e == nil {
		return users.User{}, false
	}
	return toUser(e), true
}

// UserByName returns the first passwd entry named name. Unlike the mock,
// duplicate names resolve deterministically to the earliest line.
func (h *HostUsers) UserByName(name string) (users.User, bool) {
	e := h.passwd().Find(name)
	if e == nil {
		return users.User{}, false
	}
	return toUser(e), true
}

func (h *HostUsers) GroupByGID(gid int) (users.Group, bool) {
	e := h.group().FindByGID(gid)
	if e == nil {
		return users.Group{}, false
	}
	return toGroup(e), true
}

func (h *HostUsers) GroupByName(name string) (users.Group, bool) {
	e := h.group().Find(name)
	if e == nil {
		return users.Group{}, false
	}
	return toGroup(e), true
}

func (h *HostUsers) username(uid int) (string, bool) {
	u, ok := h.UserByUID(uid)
	return u.Name, ok
}

func (h *HostUsers) groupname(gid int) (string, bool) {
	g, ok := h.GroupByGID(gid)
	return g.Name, ok
}

func (h *HostUsers) CurrentUID() int { return h.getuid() }

func (h *HostUsers) CurrentUsername() (string, bool) { return h.username(h.getuid()) }

func (h *HostUsers) CurrentGID() int { return h.getgid() }

func (h *HostUsers) CurrentGroupname() (string, bool) { return h.groupname(h.getgid()) }

func (h *HostUsers) EffectiveUID() int { return h.geteuid() }

func (h *HostUsers) EffectiveUsername() (string, bool) { return h.username(h.geteuid()) }

func (h *HostUsers) EffectiveGID() int { return h.getegid() }

func (h *HostUsers) EffectiveGroupname() (string, bool) { return h.groupname(h.getegid()) }

func (h *HostUsers) AllUsers() []users.User {
	list := h.passwd().List()
	out := make([]users.User, 0, len(list))
	for i := range list {
		out = append(out, toUser(&list[i]))
	}
	return out
}

func (h *HostUsers) AllGroups() []users.Group {
	list := h.group().List()
	out := make([]users.Group, 0, len(list))
	for i := range list {
		out = append(out, toGroup(&list[i]))
	}
	return out
}
