package journal

import "time"

// Entry is one journal record. Key is derived from Timestamp and identifies
// the record inside its owner's namespace; two saves mapping to the same key
// silently overwrite (last write wins).
type Entry struct {
	Key       string
	Title     string
	Mood      string
	Tags      []string
	Content   string
	Timestamp time.Time
}
