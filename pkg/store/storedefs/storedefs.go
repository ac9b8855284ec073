// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// do not need to depend on bbolt.
package storedefs

import "errors"

// ErrNoMatchingCmd is the error returned when a PrevCmd query completes with
// no result.
var ErrNoMatchingCmd = errors.New("no matching command line")

// Store is an interface satisfied by the storage service.
type Store interface {
	NextCmdSeq() (int, error)
	AddCmd(text string) (int, error)
	CmdsWithSeq(from, upto int) ([]Cmd, error)
	PrevCmd(upto int, prefix string) (Cmd, error)
	TrimCmds(keep int) error
}

// Cmd is an entry in the history: a chunk of code entered at the REPL.
type Cmd struct {
	Text string
	Seq  int
}
