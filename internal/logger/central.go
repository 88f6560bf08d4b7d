// Package logger keeps a bounded, in-memory journal of tagged messages shared
// by the whole program. A tag names the part of the program that logged the
// message. A message logged again straight away bumps the repeat count of
// the previous entry instead of adding a new one.
package logger

import (
	"fmt"
	"io"
)

// Capacity is the number of entries kept before the oldest are dropped.
const Capacity = 256

var std = newJournal(Capacity)

func Log(tag, detail string) {
	std.add(tag, detail)
}

func Logf(tag, format string, args ...interface{}) {
	std.add(tag, fmt.Sprintf(format, args...))
}

// Clear empties the journal.
func Clear() {
	std.reset()
}

// Write prints every entry to w. It returns false if there was nothing to
// print.
func Write(w io.Writer) bool {
	entries := std.last(-1)
	writeEntries(w, entries)
	return len(entries) > 0
}

// Tail prints the n most recent entries to w.
func Tail(w io.Writer, n int) {
	writeEntries(w, std.last(n))
}

// SetEcho copies each message to w as it is logged, repeats included. Pass
// nil to stop.
func SetEcho(w io.Writer) {
	std.setEcho(w)
}
