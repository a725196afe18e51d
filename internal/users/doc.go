package users

// Package users defines the user and group records shared by every identity
// source, and the Users interface that callers should be written against.
//
// Two implementations live below this package:
//   mock       in-memory directory for tests (users/mock)
//   hostusers  passwd/group files under a root directory (users/hostusers)
