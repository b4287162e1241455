package history

// Log is the ordered record of what the user did during one session.
// Entries are only ever appended.
type Log struct {
	entries []string
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Append(entry string) {
	l.entries = append(l.entries, entry)
}

// Entries returns a copy of all entries in the order they were appended.
func (l *Log) Entries() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int { return len(l.entries) }

func (l *Log) Empty() bool { return len(l.entries) == 0 }
