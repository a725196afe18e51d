package users

import "slices"

// User is one account record.
type User struct {
	UID          int
	Name         string
	PrimaryGroup int // gid; not required to exist in any group table
	HomeDir      string
	Shell        string
}

// Group is one group record. Members are account names and are not checked
// against any user table.
type Group struct {
	GID     int
	Name    string
	Members []string
}

// Clone returns a copy of g that shares no memory with it.
func (g Group) Clone() Group {
	g.Members = slices.Clone(g.Members)
	return g
}
