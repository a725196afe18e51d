package usermgr

// Package usermgr parses and formats passwd(5), group(5) and shadow(5) files.
//
// Comments, blank lines and lines with too few fields are kept verbatim so a
// loaded file can be written back without losing anything it did not
// understand.
