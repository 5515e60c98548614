// Package query interprets lookup strings against a catalog store.
//
// An input is either a run of literal characters, each looked up by
// codepoint, or a list of keyed groups such as
//
//	grade=1,jlpt=4
//	radical=水&strokes<6
//
// Groups are separated by union separators (space, comma, semicolon) or
// intersection separators (& and +). The separator after a group decides how
// the next group combines with the running result.
package query
