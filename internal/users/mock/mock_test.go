package mock

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hnrobert/lusers/internal/users"
)

func fred(uid int) users.User {
	return users.User{UID: uid, Name: "fred", PrimaryGroup: 101, HomeDir: "/home/fred", Shell: "/bin/bash"}
}

func TestCurrentUsername(t *testing.T) {
	m := WithCurrentUID(1337)
	m.AddUser(fred(1337))

	got, ok := m.CurrentUsername()
	if !ok || got != "fred" {
		t.Errorf("CurrentUsername() = (%q, %t), want (%q, true)", got, ok, "fred")
	}
}

func TestNoCurrentUsername(t *testing.T) {
	m := WithCurrentUID(1337)

	if got, ok := m.CurrentUsername(); ok {
		t.Errorf("CurrentUsername() = (%q, true), want absent", got)
	}
}

func TestUserLookups(t *testing.T) {
	tests := []struct {
		name   string
		add    []users.User
		lookup func(m *MockUsers) (users.User, bool)
		want   users.User
		wantOK bool
	}{
		{
			name:   "by_uid",
			add:    []users.User{fred(1337)},
			lookup: func(m *MockUsers) (users.User, bool) { return m.UserByUID(1337) },
			want:   fred(1337),
			wantOK: true,
		},
		{
			name:   "no_uid",
			lookup: func(m *MockUsers) (users.User, bool) { return m.UserByUID(1337) },
		},
		{
			name:   "by_name",
			add:    []users.User{fred(1440)},
			lookup: func(m *MockUsers) (users.User, bool) { return m.UserByName("fred") },
			want:   fred(1440),
			wantOK: true,
		},
		{
			name:   "no_name",
			add:    []users.User{fred(1440)},
			lookup: func(m *MockUsers) (users.User, bool) { return m.UserByName("criminy") },
		},
		{
			name:   "name_is_case_sensitive",
			add:    []users.User{fred(1440)},
			lookup: func(m *MockUsers) (users.User, bool) { return m.UserByName("Fred") },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := WithCurrentUID(0)
			for _, u := range tc.add {
				m.AddUser(u)
			}
			got, ok := tc.lookup(m)
			if ok != tc.wantOK {
				t.Fatalf("lookup ok = %t, want %t", ok, tc.wantOK)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("lookup returned unexpected user (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGroupLookups(t *testing.T) {
	fredGroup := users.Group{GID: 1337, Name: "fred", Members: []string{}}

	tests := []struct {
		name   string
		add    []users.Group
		lookup func(m *MockUsers) (users.Group, bool)
		want   users.Group
		wantOK bool
	}{
		{
			name:   "by_gid",
			add:    []users.Group{fredGroup},
			lookup: func(m *MockUsers) (users.Group, bool) { return m.GroupByGID(1337) },
			want:   fredGroup,
			wantOK: true,
		},
		{
			name:   "no_gid",
			lookup: func(m *MockUsers) (users.Group, bool) { return m.GroupByGID(1337) },
		},
		{
			name:   "by_name",
			add:    []users.Group{fredGroup},
			lookup: func(m *MockUsers) (users.Group, bool) { return m.GroupByName("fred") },
			want:   fredGroup,
			wantOK: true,
		},
		{
			name:   "no_name",
			add:    []users.Group{fredGroup},
			lookup: func(m *MockUsers) (users.Group, bool) { return m.GroupByName("santa") },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := WithCurrentUID(0)
			for _, g := range tc.add {
				m.AddGroup(g)
			}
			got, ok := tc.lookup(m)
			if ok != tc.wantOK {
				t.Fatalf("lookup ok = %t, want %t", ok, tc.wantOK)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("lookup returned unexpected group (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddUserReplaces(t *testing.T) {
	m := WithCurrentUID(0)
	first := fred(1000)
	second := users.User{UID: 1000, Name: "barney", PrimaryGroup: 102, HomeDir: "/home/barney", Shell: "/bin/sh"}

	if prev, ok := m.AddUser(first); ok {
		t.Fatalf("AddUser(first) returned previous entry %+v, want none", prev)
	}
	prev, ok := m.AddUser(second)
	if !ok {
		t.Fatalf("AddUser(second) returned no previous entry, want %+v", first)
	}
	if diff := cmp.Diff(first, prev); diff != "" {
		t.Errorf("AddUser(second) previous entry mismatch (-want +got):\n%s", diff)
	}

	got, _ := m.UserByUID(1000)
	if diff := cmp.Diff(second, got); diff != "" {
		t.Errorf("UserByUID(1000) mismatch after replacement (-want +got):\n%s", diff)
	}
	if _, ok := m.UserByName("fred"); ok {
		t.Errorf("UserByName(%q) found a replaced entry", "fred")
	}
}

func TestAddGroupReplaces(t *testing.T) {
	m := WithCurrentUID(0)
	first := users.Group{GID: 100, Name: "funkyppl", Members: []string{"other_person"}}
	second := users.Group{GID: 100, Name: "staff"}

	if _, ok := m.AddGroup(first); ok {
		t.Fatal("AddGroup(first) reported a previous entry")
	}
	prev, ok := m.AddGroup(second)
	if !ok {
		t.Fatal("AddGroup(second) reported no previous entry")
	}
	if diff := cmp.Diff(first, prev); diff != "" {
		t.Errorf("AddGroup(second) previous entry mismatch (-want +got):\n%s", diff)
	}
	if got, _ := m.GroupByGID(100); got.Name != "staff" {
		t.Errorf("GroupByGID(100).Name = %q, want %q", got.Name, "staff")
	}
}

func TestGroupMembersAreCopied(t *testing.T) {
	m := WithCurrentUID(0)
	members := []string{"alice", "bob"}
	m.AddGroup(users.Group{GID: 10, Name: "wheel", Members: members})
	members[0] = "mallory"

	got, _ := m.GroupByGID(10)
	got.Members[1] = "eve"

	again, _ := m.GroupByName("wheel")
	if diff := cmp.Diff([]string{"alice", "bob"}, again.Members); diff != "" {
		t.Errorf("stored members changed through caller slices (-want +got):\n%s", diff)
	}
}

func TestCurrentIdentityIsFixed(t *testing.T) {
	m := WithCurrentUID(42)
	for i := 0; i < 5; i++ {
		m.AddUser(users.User{UID: i, Name: fmt.Sprintf("user%d", i)})
		m.AddGroup(users.Group{GID: i, Name: fmt.Sprintf("group%d", i)})
	}
	if got := m.CurrentUID(); got != 42 {
		t.Errorf("CurrentUID() = %d, want 42", got)
	}
	if got := m.CurrentGID(); got != 42 {
		t.Errorf("CurrentGID() = %d, want 42", got)
	}
}

// The current uid doubles as the current gid; group names come from the group
// table, not from the user's primary group.
func TestCurrentGroupnameUsesUID(t *testing.T) {
	m := WithCurrentUID(1000)
	m.AddUser(users.User{UID: 1000, Name: "bobbins", PrimaryGroup: 100})
	m.AddGroup(users.Group{GID: 100, Name: "funkyppl"})

	if got, ok := m.CurrentGroupname(); ok {
		t.Errorf("CurrentGroupname() = (%q, true), want absent", got)
	}

	m.AddGroup(users.Group{GID: 1000, Name: "bobbins"})
	if got, ok := m.CurrentGroupname(); !ok || got != "bobbins" {
		t.Errorf("CurrentGroupname() = (%q, %t), want (%q, true)", got, ok, "bobbins")
	}
}

type identity struct {
	UID       int
	Username  string
	UserOK    bool
	GID       int
	Groupname string
	GroupOK   bool
}

func current(m *MockUsers) identity {
	var id identity
	id.UID = m.CurrentUID()
	id.Username, id.UserOK = m.CurrentUsername()
	id.GID = m.CurrentGID()
	id.Groupname, id.GroupOK = m.CurrentGroupname()
	return id
}

func effective(m *MockUsers) identity {
	var id identity
	id.UID = m.EffectiveUID()
	id.Username, id.UserOK = m.EffectiveUsername()
	id.GID = m.EffectiveGID()
	id.Groupname, id.GroupOK = m.EffectiveGroupname()
	return id
}

func TestEffectiveMatchesCurrent(t *testing.T) {
	tests := []struct {
		name   string
		uid    int
		users  []users.User
		groups []users.Group
	}{
		{name: "empty", uid: 1337},
		{name: "user_only", uid: 1337, users: []users.User{fred(1337)}},
		{name: "group_only", uid: 7, groups: []users.Group{{GID: 7, Name: "seven"}}},
		{
			name:   "both",
			uid:    0,
			users:  []users.User{{UID: 0, Name: "root"}},
			groups: []users.Group{{GID: 0, Name: "root"}},
		},
		{name: "negative", uid: -1, users: []users.User{{UID: -1, Name: "nobody"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := WithCurrentUID(tc.uid)
			for _, u := range tc.users {
				m.AddUser(u)
			}
			for _, g := range tc.groups {
				m.AddGroup(g)
			}
			if diff := cmp.Diff(current(m), effective(m)); diff != "" {
				t.Errorf("effective identity differs from current (-current +effective):\n%s", diff)
			}
		})
	}
}

// Which of several same-named users is returned is unspecified; only assert
// that the result is one of them.
func TestUserByNameDuplicate(t *testing.T) {
	m := WithCurrentUID(0)
	m.AddUser(users.User{UID: 1, Name: "twin"})
	m.AddUser(users.User{UID: 2, Name: "twin"})

	got, ok := m.UserByName("twin")
	if !ok {
		t.Fatal("UserByName(twin) found nothing")
	}
	if got.UID != 1 && got.UID != 2 {
		t.Errorf("UserByName(twin).UID = %d, want 1 or 2", got.UID)
	}
}

// Same for groups: either of the same-named entries is an acceptable answer.
func TestGroupByNameDuplicate(t *testing.T) {
	m := WithCurrentUID(0)
	m.AddGroup(users.Group{GID: 10, Name: "staff", Members: []string{"a"}})
	m.AddGroup(users.Group{GID: 20, Name: "staff", Members: []string{"b"}})

	got, ok := m.GroupByName("staff")
	if !ok {
		t.Fatal("GroupByName(staff) found nothing")
	}
	switch got.GID {
	case 10:
		if diff := cmp.Diff([]string{"a"}, got.Members); diff != "" {
			t.Errorf("GroupByName(staff) gid 10 members mismatch (-want +got):\n%s", diff)
		}
	case 20:
		if diff := cmp.Diff([]string{"b"}, got.Members); diff != "" {
			t.Errorf("GroupByName(staff) gid 20 members mismatch (-want +got):\n%s", diff)
		}
	default:
		t.Errorf("GroupByName(staff).GID = %d, want 10 or 20", got.GID)
	}
}

func TestAllSorted(t *testing.T) {
	m := WithCurrentUID(0)
	for _, uid := range []int{30, 10, 20} {
		m.AddUser(users.User{UID: uid, Name: fmt.Sprintf("u%d", uid)})
		m.AddGroup(users.Group{GID: uid, Name: fmt.Sprintf("g%d", uid)})
	}

	var uids, gids []int
	for _, u := range m.AllUsers() {
		uids = append(uids, u.UID)
	}
	for _, g := range m.AllGroups() {
		gids = append(gids, g.GID)
	}
	want := []int{10, 20, 30}
	if diff := cmp.Diff(want, uids); diff != "" {
		t.Errorf("AllUsers() order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, gids); diff != "" {
		t.Errorf("AllGroups() order mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := WithCurrentUID(0)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				id := i*100 + j
				m.AddUser(users.User{UID: id, Name: fmt.Sprintf("u%d", id)})
				m.UserByName(fmt.Sprintf("u%d", id))
				m.CurrentUsername()
			}
		}(i)
	}
	wg.Wait()

	if got := len(m.AllUsers()); got != 800 {
		t.Errorf("len(AllUsers()) = %d, want 800", got)
	}
}

// printCurrentUsername is written once against users.Users.
func printCurrentUsername(u users.Users) string {
	name, ok := u.CurrentUsername()
	if !ok {
		return "<none>"
	}
	return name
}

func TestUsableThroughInterface(t *testing.T) {
	m := WithCurrentUID(1001)
	m.AddUser(users.User{UID: 1001, Name: "fred", PrimaryGroup: 101, HomeDir: "/home/fred", Shell: "/bin/bash"})

	if got := printCurrentUsername(m); got != "fred" {
		t.Errorf("printCurrentUsername() = %q, want %q", got, "fred")
	}
}
