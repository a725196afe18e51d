package usermgr

// PasswdEntry is one passwd(5) line.
type PasswdEntry struct {
	Name   string
	Passwd string // usually "x"; the hash lives in shadow
	UID    int
	GID    int // primary group
	Gecos  string
	Home   string
	Shell  string
}

// GroupEntry is one group(5) line.
type GroupEntry struct {
	Name    string
	Passwd  string
	GID     int
	Members []string
}

// ShadowEntry is one shadow(5) line. Aging fields are kept as text since
// empty means "unset".
type ShadowEntry struct {
	Name       string
	Hash       string
	LastChange string
	Min        string
	Max        string
	Warn       string
	Inactive   string
	Expire     string
	Reserved   string
}

// Locked reports whether the entry cannot be used for password login.
func (e ShadowEntry) Locked() bool {
	return e.Hash == "" || e.Hash[0] == '!' || e.Hash[0] == '*'
}
