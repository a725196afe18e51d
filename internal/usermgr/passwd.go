package usermgr

import (
	"fmt"
	"sort"
)

type PasswdFile struct {
	pf parsedFile[PasswdEntry]
}

// NewPasswd returns an empty passwd file.
func NewPasswd() *PasswdFile {
	return &PasswdFile{}
}

func LoadPasswd(path string) (*PasswdFile, error) {
	b, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParsePasswd(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

func ParsePasswd(b []byte) (*PasswdFile, error) {
	pf, err := parseLines(b, 7, func(parts []string) (*PasswdEntry, error) {
		uid, err := atoi(parts[2], "passwd.uid")
		if err != nil {
			return nil, err
		}
		gid, err := atoi(parts[3], "passwd.gid")
		if err != nil {
			return nil, err
		}
		return &PasswdEntry{
			Name:   parts[0],
			Passwd: parts[1],
			UID:    uid,
			GID:    gid,
			Gecos:  parts[4],
			Home:   parts[5],
			Shell:  parts[6],
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &PasswdFile{pf: pf}, nil
}

// Find returns the first entry named name, in file order.
func (f *PasswdFile) Find(name string) *PasswdEntry {
	return f.pf.find(func(e *PasswdEntry) bool { return e.Name == name })
}

// FindByUID returns the first entry with uid, in file order.
func (f *PasswdFile) FindByUID(uid int) *PasswdEntry {
	return f.pf.find(func(e *PasswdEntry) bool { return e.UID == uid })
}

// List returns copies of all entries sorted by uid.
func (f *PasswdFile) List() []PasswdEntry {
	out := make([]PasswdEntry, 0)
	for _, e := range f.pf.entries() {
		out = append(out, *e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UID < out[j].UID })
	return out
}

// Put replaces the entry with the same uid, or appends e.
func (f *PasswdFile) Put(e PasswdEntry) bool {
	return f.pf.put(e, func(old *PasswdEntry) bool { return old.UID == e.UID })
}

func (f *PasswdFile) Bytes() []byte {
	return f.pf.bytes(func(e *PasswdEntry) string {
		return fmt.Sprintf("%s:%s:%d:%d:%s:%s:%s", e.Name, e.Passwd, e.UID, e.GID, e.Gecos, e.Home, e.Shell)
	})
}
