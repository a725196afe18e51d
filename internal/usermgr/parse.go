package usermgr

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/hnrobert/lusers/internal/hostfs"
	"github.com/hnrobert/lusers/internal/logger"
)

type rawLine[T any] struct {
	raw   string
	entry *T
}

type parsedFile[T any] struct {
	lines []rawLine[T]
}

func (pf *parsedFile[T]) entries() []*T {
	out := make([]*T, 0, len(pf.lines))
	for i := range pf.lines {
		if pf.lines[i].entry != nil {
			out = append(out, pf.lines[i].entry)
		}
	}
	return out
}

func (pf *parsedFile[T]) find(match func(*T) bool) *T {
	for _, e := range pf.entries() {
		if match(e) {
			return e
		}
	}
	return nil
}

// put overwrites the first entry that match accepts, or appends e.
// It reports whether an entry was overwritten.
func (pf *parsedFile[T]) put(e T, match func(*T) bool) bool {
	for i := range pf.lines {
		if pf.lines[i].entry != nil && match(pf.lines[i].entry) {
			*pf.lines[i].entry = e
			return true
		}
	}
	pf.lines = append(pf.lines, rawLine[T]{entry: &e})
	return false
}

func (pf *parsedFile[T]) bytes(format func(*T) string) []byte {
	var buf strings.Builder
	for _, ln := range pf.lines {
		if ln.entry != nil {
			buf.WriteString(format(ln.entry))
		} else {
			buf.WriteString(ln.raw)
		}
		buf.WriteByte('\n')
	}
	return []byte(buf.String())
}

// parseLines splits b into lines and hands every line with at least minFields
// colon-separated fields to parse. Everything else, including lines parse
// rejects (NIS "+::::::" entries, non-numeric ids), is kept raw.
func parseLines[T any](b []byte, minFields int, parse func([]string) (*T, error)) (parsedFile[T], error) {
	var pf parsedFile[T]
	s := bufio.NewScanner(bytes.NewReader(b))
	buf := make([]byte, 0, 64*1024)
	s.Buffer(buf, 1024*1024)
	n := 0
	for s.Scan() {
		n++
		line := s.Text()
		trim := strings.TrimSpace(line)
		if trim == "" || strings.HasPrefix(trim, "#") {
			pf.lines = append(pf.lines, rawLine[T]{raw: line})
			continue
		}
		// Keep trailing empty fields.
		parts := strings.Split(line, ":")
		if len(parts) < minFields {
			pf.lines = append(pf.lines, rawLine[T]{raw: line})
			continue
		}
		e, err := parse(parts)
		if err != nil {
			logger.Warn("usermgr: line %d kept verbatim: %v", n, err)
			pf.lines = append(pf.lines, rawLine[T]{raw: line})
			continue
		}
		pf.lines = append(pf.lines, rawLine[T]{entry: e})
	}
	if err := s.Err(); err != nil {
		return parsedFile[T]{}, err
	}
	return pf, nil
}

func loadFile(path string) ([]byte, error) {
	b, err := hostfs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

func atoi(field, ctx string) (int, error) {
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("invalid int %q in %s: %w", field, ctx, err)
	}
	return n, nil
}
