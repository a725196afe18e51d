// Package report renders the contents of an identity source as Markdown or
// HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hnrobert/lusers/internal/users"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown returns an identity summary followed by user and group tables.
func Markdown(src users.Source) string {
	var b strings.Builder

	b.WriteString("# Identity\n\n")
	b.WriteString("| | id | name |\n|---|---|---|\n")
	writeIdentity(&b, "current user", src.CurrentUID(), src.CurrentUsername)
	writeIdentity(&b, "current group", src.CurrentGID(), src.CurrentGroupname)
	writeIdentity(&b, "effective user", src.EffectiveUID(), src.EffectiveUsername)
	writeIdentity(&b, "effective group", src.EffectiveGID(), src.EffectiveGroupname)

	all := src.AllUsers()
	fmt.Fprintf(&b, "\n# Users (%d)\n\n", len(all))
	b.WriteString("| uid | name | group | home | shell |\n|---|---|---|---|---|\n")
	for _, u := range all {
		fmt.Fprintf(&b, "| %d | %s | %d | %s | %s |\n",
			u.UID, cell(u.Name), u.PrimaryGroup, cell(u.HomeDir), cell(u.Shell))
	}

	groups := src.AllGroups()
	fmt.Fprintf(&b, "\n# Groups (%d)\n\n", len(groups))
	b.WriteString("| gid | name | members |\n|---|---|---|\n")
	for _, g := range groups {
		fmt.Fprintf(&b, "| %d | %s | %s |\n", g.GID, cell(g.Name), cell(strings.Join(g.Members, ", ")))
	}
	return b.String()
}

// HTML renders Markdown(src) to an HTML fragment.
func HTML(src users.Source) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(src)), &buf); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return buf.String(), nil
}

func writeIdentity(b *strings.Builder, label string, id int, name func() (string, bool)) {
	n, ok := name()
	if !ok {
		n = "-"
	}
	fmt.Fprintf(b, "| %s | %d | %s |\n", label, id, cell(n))
}

var cellEscaper = strings.NewReplacer(`|`, `\|`, "\n", " ", "<", "&lt;", ">", "&gt;")

func cell(s string) string {
	if s == "" {
		return " "
	}
	return cellEscaper.Replace(s)
}
