package usermgr

import (
	"fmt"
)

type ShadowFile struct {
	pf parsedFile[ShadowEntry]
}

// NewShadow returns an empty shadow file.
func NewShadow() *ShadowFile {
	return &ShadowFile{}
}

func LoadShadow(path string) (*ShadowFile, error) {
	b, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseShadow(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return f, nil
}

func ParseShadow(b []byte) (*ShadowFile, error) {
	pf, err := parseLines(b, 2, func(parts []string) (*ShadowEntry, error) {
		for len(parts) < 9 {
			parts = append(parts, "")
		}
		return &ShadowEntry{
			Name:       parts[0],
			Hash:       parts[1],
			LastChange: parts[2],
			Min:        parts[3],
			Max:        parts[4],
			Warn:       parts[5],
			Inactive:   parts[6],
			Expire:     parts[7],
			Reserved:   parts[8],
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &ShadowFile{pf: pf}, nil
}

func (f *ShadowFile) Find(name string) *ShadowEntry {
	return f.pf.find(func(e *ShadowEntry) bool { return e.Name == name })
}

// Put replaces the entry with the same name, or appends e.
func (f *ShadowFile) Put(e ShadowEntry) bool {
	return f.pf.put(e, func(old *ShadowEntry) bool { return old.Name == e.Name })
}

func (f *ShadowFile) Bytes() []byte {
	return f.pf.bytes(func(e *ShadowEntry) string {
		return fmt.Sprintf("%s:%s:%s:%s:%s:%s:%s:%s:%s",
			e.Name, e.Hash, e.LastChange, e.Min, e.Max, e.Warn, e.Inactive, e.Expire, e.Reserved)
	})
}
