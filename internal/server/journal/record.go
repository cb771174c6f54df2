package journal

import (
	"strings"
	"time"
)

// Record layout markers. A record is a title line, optional mood/tags lines,
// a content marker line, then the trimmed body.
const (
	titleMarker   = "Title:"
	moodMarker    = "Mood:"
	tagsMarker    = "Tags:"
	contentMarker = "Content:"

	// recordSuffix distinguishes entry records from other per-user files
	// (theme.json) sharing the namespace.
	recordSuffix = "-entry.txt"
)

// KeyGranularity controls the resolution of timestamp-derived record keys.
// With day keys, two saves on the same calendar day collide and the second
// wins; second keys narrow the window to one second.
type KeyGranularity string

const (
	KeyDay    KeyGranularity = "day"
	KeySecond KeyGranularity = "second"
)

const (
	keyLayoutDay    = "2006-01-02"
	keyLayoutSecond = "2006-01-02-150405"
)

// ParseKeyGranularity maps a config string to a KeyGranularity, defaulting
// to second resolution.
func ParseKeyGranularity(s string) KeyGranularity {
	if s == string(KeyDay) {
		return KeyDay
	}
	return KeySecond
}

// recordKey derives the record key for ts. Zero-padded components keep
// lexicographic order aligned with chronological order.
func recordKey(ts time.Time, g KeyGranularity) string {
	if g == KeyDay {
		return ts.Format(keyLayoutDay)
	}
	return ts.Format(keyLayoutSecond)
}

// keyTimestamp recovers the timestamp encoded in a record key; a key in
// neither layout yields the zero time.
func keyTimestamp(key string) time.Time {
	if ts, err := time.Parse(keyLayoutSecond, key); err == nil {
		return ts
	}
	if ts, err := time.Parse(keyLayoutDay, key); err == nil {
		return ts
	}
	return time.Time{}
}

// encodeRecord renders the on-disk record body: title line, optional mood and
// tags lines, content marker, trimmed body, trailing newline.
func encodeRecord(e *Entry) []byte {
	var b strings.Builder

	b.WriteString(titleMarker + " " + e.Title + "\n")
	if e.Mood != "" {
		b.WriteString(moodMarker + " " + e.Mood + "\n")
	}
	if len(e.Tags) > 0 {
		b.WriteString(tagsMarker + " " + strings.Join(e.Tags, ",") + "\n")
	}
	b.WriteString(contentMarker + "\n")
	b.WriteString(strings.TrimSpace(e.Content) + "\n")

	return []byte(b.String())
}

// parseRecord interprets one record body. A record whose first line carries
// the title marker is parsed field by field; anything else is treated as
// untitled content, with the key standing in for the title and the whole
// trimmed text as the body. parseRecord is total: malformed input degrades,
// it never fails.
func parseRecord(key string, data []byte) *Entry {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")

	if !strings.HasPrefix(lines[0], titleMarker) {
		return &Entry{
			Key:       key,
			Title:     key,
			Content:   strings.TrimSpace(text),
			Timestamp: keyTimestamp(key),
		}
	}

	e := &Entry{
		Key:       key,
		Title:     strings.TrimSpace(strings.TrimPrefix(lines[0], titleMarker)),
		Timestamp: keyTimestamp(key),
	}

	rest := lines[1:]
	for i, line := range rest {
		switch {
		case strings.HasPrefix(line, contentMarker):
			e.Content = strings.TrimSpace(strings.Join(rest[i+1:], "\n"))
			return e
		case strings.HasPrefix(line, moodMarker):
			e.Mood = strings.TrimSpace(strings.TrimPrefix(line, moodMarker))
		case strings.HasPrefix(line, tagsMarker):
			for _, tag := range strings.Split(strings.TrimPrefix(line, tagsMarker), ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					e.Tags = append(e.Tags, tag)
				}
			}
		}
	}

	// no content marker: title-only record
	return e
}
