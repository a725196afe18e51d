package hostfs

// Package hostfs maps absolute host paths into a root directory and provides
// locked, atomic file access under it.
//
// A root of "/" reads the live system files; any other root is treated as a
// fake filesystem tree, for example one written by fixture.Materialize:
//   <root>/etc/passwd
//   <root>/etc/shadow
//   <root>/etc/group
//   <root>/home/...
