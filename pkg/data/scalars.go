package data

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Text is a string attribute that tolerates whatever the API sends. Numbers and
// booleans are kept as their literal text; null, objects and arrays leave it
// empty instead of failing the whole decode.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*t = ""
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			*t = Text(s)
		}
	case '{', '[', 'n':
	default:
		*t = Text(b)
	}
	return nil
}

func (t Text) String() string {
	return string(t)
}

// Known reports whether the value carries information. SWAPI uses "unknown"
// and "n/a" as placeholders.
func (t Text) Known() bool {
	switch strings.ToLower(strings.TrimSpace(string(t))) {
	case "", "unknown", "n/a", "none":
		return false
	}
	return true
}

// OptInt is an optional integer. Absent, null or malformed values leave it unset.
type OptInt struct {
	Value int
	Valid bool
}

func Int(v int) OptInt {
	return OptInt{Value: v, Valid: true}
}

func (o *OptInt) UnmarshalJSON(b []byte) error {
	*o = OptInt{}
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if n, err := strconv.Atoi(s); err == nil {
		*o = Int(n)
	}
	return nil
}

func (o OptInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(o.Value)), nil
}

func (o OptInt) String() string {
	if !o.Valid {
		return ""
	}
	return strconv.Itoa(o.Value)
}

// Refs is a reference field: URLs of related resources. A missing or malformed
// field decodes as empty and non-string elements are dropped.
type Refs []string

func (r *Refs) UnmarshalJSON(b []byte) error {
	*r = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil
	}
	out := make(Refs, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil && s != "" {
			out = append(out, s)
		}
	}
	*r = out
	return nil
}

// One wraps a single-URL reference (like homeworld) as a Refs value.
func One(u Text) Refs {
	if u == "" {
		return nil
	}
	return Refs{string(u)}
}
