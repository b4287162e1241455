package storage

// Transcript persists the interaction log on request.
// Save replaces whatever was stored before; it never appends.
// Path names the location shown to the user.
type Transcript interface {
	Save(entries []string) error
	Path() string
}
