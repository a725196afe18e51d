// Package fixture describes a set of users and groups as a YAML document.
//
// A fixture can be turned into an in-memory directory with Build, or written
// out as a fake etc/ tree with Materialize so code that reads passwd files
// directly can be tested too.
//
//	current_uid: 1000
//	users:
//	  - uid: 1000
//	    name: bobbins
//	    primary_group: 100
//	    home_dir: /home/bobbins
//	    shell: /bin/bash
//	    password: hunter2
//	groups:
//	  - gid: 100
//	    name: funkyppl
//	    members: [other_person]
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hnrobert/lusers/internal/logger"
	"github.com/hnrobert/lusers/internal/users"
	"github.com/hnrobert/lusers/internal/users/mock"
)

type Fixture struct {
	CurrentUID int     `yaml:"current_uid"`
	Users      []User  `yaml:"users"`
	Groups     []Group `yaml:"groups"`
}

type User struct {
	UID          int    `yaml:"uid"`
	Name         string `yaml:"name"`
	PrimaryGroup int    `yaml:"primary_group"`
	HomeDir      string `yaml:"home_dir"`
	Shell        string `yaml:"shell"`
	// Password is only used by Materialize. Empty means a locked account.
	Password string `yaml:"password,omitempty"`
}

type Group struct {
	GID     int      `yaml:"gid"`
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"`
}

func (u User) record() users.User {
	return users.User{
		UID:          u.UID,
		Name:         u.Name,
		PrimaryGroup: u.PrimaryGroup,
		HomeDir:      u.HomeDir,
		Shell:        u.Shell,
	}
}

func (g Group) record() users.Group {
	members := g.Members
	if members == nil {
		members = []string{}
	}
	return users.Group{GID: g.GID, Name: g.Name, Members: members}
}

// Load reads and parses the fixture at path.
func Load(path string) (*Fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a fixture document. Unknown keys are rejected; an empty
// document is an empty fixture with current uid 0.
func Parse(b []byte) (*Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &f, nil
}

// Marshal encodes f as YAML.
func (f *Fixture) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Build returns a directory holding the fixture's entries. Entries are added
// in document order, so a repeated id keeps the last entry.
func (f *Fixture) Build() *mock.MockUsers {
	m := mock.WithCurrentUID(f.CurrentUID)
	for _, u := range f.Users {
		if prev, ok := m.AddUser(u.record()); ok {
			logger.Warn("fixture: uid %d: %q replaces %q", u.UID, u.Name, prev.Name)
		}
	}
	for _, g := range f.Groups {
		if prev, ok := m.AddGroup(g.record()); ok {
			logger.Warn("fixture: gid %d: %q replaces %q", g.GID, g.Name, prev.Name)
		}
	}
	logger.Debug("fixture: built directory with %d users, %d groups, current uid %d",
		len(f.Users), len(f.Groups), f.CurrentUID)
	return m
}

// FromSource captures every entry of src as a fixture. Passwords are not
// available from a source and are left empty.
func FromSource(src users.Source) *Fixture {
	f := &Fixture{CurrentUID: src.CurrentUID()}
	for _, u := range src.AllUsers() {
		f.Users = append(f.Users, User{
			UID:          u.UID,
			Name:         u.Name,
			PrimaryGroup: u.PrimaryGroup,
			HomeDir:      u.HomeDir,
			Shell:        u.Shell,
		})
	}
	for _, g := range src.AllGroups() {
		f.Groups = append(f.Groups, Group{GID: g.GID, Name: g.Name, Members: g.Members})
	}
	return f
}
