package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry is one message in the journal. Count is the number of times the
// same message was logged in a row.
type Entry struct {
	Time   time.Time
	Tag    string
	Detail string
	Count  int
}

func (e Entry) String() string {
	if e.Count > 1 {
		return fmt.Sprintf("%s: %s (repeat x%d)", e.Tag, e.Detail, e.Count)
	}
	return fmt.Sprintf("%s: %s", e.Tag, e.Detail)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// journal is a fixed capacity ring of entries. Once full, each new entry
// overwrites the oldest.
type journal struct {
	mu    sync.Mutex
	ring  []Entry
	first int // index of the oldest entry
	size  int
	echo  io.Writer
	now   func() time.Time
}

func newJournal(capacity int) *journal {
	if capacity < 1 {
		capacity = 1
	}
	return &journal{
		ring: make([]Entry, capacity),
		now:  time.Now,
	}
}

// newest returns the most recent entry or nil
func (j *journal) newest() *Entry {
	if j.size == 0 {
		return nil
	}
	return &j.ring[(j.first+j.size-1)%len(j.ring)]
}

func (j *journal) add(tag, detail string) {
	tag = strings.TrimSpace(lineBreaks.Replace(tag))
	detail = strings.TrimSpace(lineBreaks.Replace(detail))

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.echo != nil {
		fmt.Fprintf(j.echo, "%s: %s\n", tag, detail)
	}

	if last := j.newest(); last != nil && last.Tag == tag && last.Detail == detail {
		last.Count++
		last.Time = j.now()
		return
	}

	e := Entry{Time: j.now(), Tag: tag, Detail: detail, Count: 1}
	if j.size < len(j.ring) {
		j.ring[(j.first+j.size)%len(j.ring)] = e
		j.size++
		return
	}
	j.ring[j.first] = e
	j.first = (j.first + 1) % len(j.ring)
}

// last returns up to n of the most recent entries, oldest first. A negative
// n returns everything.
func (j *journal) last(n int) []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()

	if n < 0 || n > j.size {
		n = j.size
	}
	out := make([]Entry, 0, n)
	for i := j.size - n; i < j.size; i++ {
		out = append(out, j.ring[(j.first+i)%len(j.ring)])
	}
	return out
}

func (j *journal) reset() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.first, j.size = 0, 0
}

func (j *journal) setEcho(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.echo = w
}

func writeEntries(w io.Writer, entries []Entry) {
	for _, e := range entries {
		fmt.Fprintln(w, e.String())
	}
}
