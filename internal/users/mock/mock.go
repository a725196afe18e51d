// Package mock provides an in-memory users.Users for tests.
//
// A MockUsers only needs the uid of the current user up front. Users and
// groups are then added one at a time:
//
//	m := mock.WithCurrentUID(1000)
//	m.AddUser(users.User{UID: 1000, Name: "bobbins", PrimaryGroup: 100, HomeDir: "/home/bobbins", Shell: "/bin/bash"})
//	m.AddGroup(users.Group{GID: 100, Name: "funkyppl", Members: []string{"other_person"}})
//
// Code written against users.Users then runs unchanged against either m or a
// hostusers.HostUsers.
package mock

import (
	"sort"
	"sync"

	"github.com/hnrobert/lusers/internal/users"
)

var (
	_ users.Users  = (*MockUsers)(nil)
	_ users.Source = (*MockUsers)(nil)
)

// MockUsers is an in-memory identity directory.
//
// The current identity given at construction answers every current and
// effective query, for uid and gid alike. A mock makes no distinction between
// real and effective ids, nor between the current uid and gid.
type MockUsers struct {
	mu     sync.Mutex
	users  map[int]users.User
	groups map[int]users.Group
	uid    int
}

// WithCurrentUID returns an empty directory whose current identity is uid.
// uid does not need to name an entry that is ever added.
func WithCurrentUID(uid int) *MockUsers {
	return &MockUsers{
		users:  make(map[int]users.User),
		groups: make(map[int]users.Group),
		uid:    uid,
	}
}

// AddUser stores u under u.UID. If an entry already existed under that uid it
// is replaced and returned with true.
func (m *MockUsers) AddUser(u users.User) (users.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.users[u.UID]
	m.users[u.UID] = u
	return prev, ok
}

// AddGroup stores g under g.GID. If an entry already existed under that gid
// it is replaced and returned with true.
func (m *MockUsers) AddGroup(g users.Group) (users.Group, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, ok := m.groups[g.GID]
	m.groups[g.GID] = g.Clone()
	return prev, ok
}

func (m *MockUsers) UserByUID(uid int) (users.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[uid]
	return u, ok
}

// UserByName returns a user whose name equals name byte for byte. If several
// users share the name, which of them is returned is unspecified and may
// change between calls.
func (m *MockUsers) UserByName(name string) (users.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Name == name {
			return u, true
		}
	}
	return users.User{}, false
}

func (m *MockUsers) GroupByGID(gid int) (users.Group, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[gid]
	if !ok {
		return users.Group{}, false
	}
	return g.Clone(), true
}

// GroupByName has the same duplicate-name caveat as UserByName.
func (m *MockUsers) GroupByName(name string) (users.Group, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.groups {
		if g.Name == name {
			return g.Clone(), true
		}
	}
	return users.Group{}, false
}

func (m *MockUsers) CurrentUID() int {
	return m.uid
}

func (m *MockUsers) CurrentUsername() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[m.uid]
	return u.Name, ok
}

// CurrentGID returns the current uid; see MockUsers.
func (m *MockUsers) CurrentGID() int {
	return m.uid
}

// CurrentGroupname looks the current uid up in the group table.
func (m *MockUsers) CurrentGroupname() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[m.uid]
	return g.Name, ok
}

func (m *MockUsers) EffectiveUID() int {
	return m.CurrentUID()
}

func (m *MockUsers) EffectiveUsername() (string, bool) {
	return m.CurrentUsername()
}

func (m *MockUsers) EffectiveGID() int {
	return m.CurrentGID()
}

func (m *MockUsers) EffectiveGroupname() (string, bool) {
	return m.CurrentGroupname()
}

// AllUsers returns every user sorted by uid.
func (m *MockUsers) AllUsers() []users.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]users.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}

// AllGroups returns every group sorted by gid.
func (m *MockUsers) AllGroups() []users.Group {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]users.Group, 0, len(m.groups))
	for _, g := range m.groups {
		out = append(out, g.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GID < out[j].GID })
	return out
}
