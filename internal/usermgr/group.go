package usermgr

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

type GroupFile struct {
	pf parsedFile[GroupEntry]
}

// NewGroup returns an empty group file.
func NewGroup() *GroupFile {
	return &GroupFile{}
}

func LoadGroup(path string) (*GroupFile, error) {
	b, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseGroup(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

func ParseGroup(b []byte) (*GroupFile, error) {
	pf, err := parseLines(b, 4, func(parts []string) (*GroupEntry, error) {
		gid, err := atoi(parts[2], "group.gid")
		if err != nil {
			return nil, err
		}
		members := []string{}
		for _, m := range strings.Split(parts[3], ",") {
			if strings.TrimSpace(m) != "" {
				members = append(members, m)
			}
		}
		return &GroupEntry{Name: parts[0], Passwd: parts[1], GID: gid, Members: members}, nil
	})
	if err != nil {
		return nil, err
	}
	return &GroupFile{pf: pf}, nil
}

func (f *GroupFile) Find(name string) *GroupEntry {
	return f.pf.find(func(e *GroupEntry) bool { return e.Name == name })
}

func (f *GroupFile) FindByGID(gid int) *GroupEntry {
	return f.pf.find(func(e *GroupEntry) bool { return e.GID == gid })
}

func (f *GroupFile) List() []GroupEntry {
	out := make([]GroupEntry, 0)
	for _, e := range f.pf.entries() {
		c := *e
		c.Members = slices.Clone(e.Members)
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].GID < out[j].GID })
	return out
}

// Put replaces the entry with the same gid, or appends e.
func (f *GroupFile) Put(e GroupEntry) bool {
	return f.pf.put(e, func(old *GroupEntry) bool { return old.GID == e.GID })
}

func (f *GroupFile) Bytes() []byte {
	return f.pf.bytes(func(e *GroupEntry) string {
		return fmt.Sprintf("%s:%s:%d:%s", e.Name, e.Passwd, e.GID, strings.Join(e.Members, ","))
	})
}
