package users

// Users answers identity lookups. Absence is reported through the boolean of
// each comma-ok result; no method returns an error.
type Users interface {
	UserByUID(uid int) (User, bool)
	UserByName(name string) (User, bool)
	GroupByGID(gid int) (Group, bool)
	GroupByName(name string) (Group, bool)

	CurrentUID() int
	CurrentUsername() (string, bool)
	CurrentGID() int
	CurrentGroupname() (string, bool)

	EffectiveUID() int
	EffectiveUsername() (string, bool)
	EffectiveGID() int
	EffectiveGroupname() (string, bool)
}

// Lister is implemented by sources that can enumerate their entries.
// Results are sorted by id.
type Lister interface {
	AllUsers() []User
	AllGroups() []Group
}

// Source is a Users that can also list its entries.
type Source interface {
	Users
	Lister
}
