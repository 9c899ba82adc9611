package game

const statusMaxEntries = 60

// StatusEntry is a single line in the status log.
type StatusEntry struct {
	Tick    int
	Source  string // entity id that produced the message
	Message string
}

// StatusLog is a ring buffer of player-facing status messages. Front-ends
// show the newest line as the status bar and the tail as a scrollback panel.
type StatusLog struct {
	entries []StatusEntry
	head    int
	count   int
}

// NewStatusLog creates a status log with a fixed capacity.
func NewStatusLog() *StatusLog {
	return &StatusLog{
		entries: make([]StatusEntry, statusMaxEntries),
	}
}

// Add appends an entry to the log.
func (sl *StatusLog) Add(tick int, source, msg string) {
	sl.entries[sl.head] = StatusEntry{
		Tick:    tick,
		Source:  source,
		Message: msg,
	}
	sl.head = (sl.head + 1) % statusMaxEntries
	if sl.count < statusMaxEntries {
		sl.count++
	}
}

// Recent returns entries in chronological order (oldest first).
func (sl *StatusLog) Recent() []StatusEntry {
	result := make([]StatusEntry, sl.count)
	for i := 0; i < sl.count; i++ {
		idx := (sl.head - sl.count + i + statusMaxEntries) % statusMaxEntries
		result[i] = sl.entries[idx]
	}
	return result
}

// Latest returns the newest message, or "" when empty.
func (sl *StatusLog) Latest() string {
	if sl.count == 0 {
		return ""
	}
	return sl.entries[(sl.head-1+statusMaxEntries)%statusMaxEntries].Message
}

// Len returns the number of buffered entries.
func (sl *StatusLog) Len() int { return sl.count }
