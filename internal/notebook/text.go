package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnexpectedType indicates a multiline field held neither a string nor an array of strings.
var ErrUnexpectedType = errors.New("expected string or array of strings")

// Text is a multiline string field. Notebooks store these either as one
// string or as a list of lines; lists are joined with no separator since
// each line keeps its own trailing newline.
type Text string

// UnmarshalJSON accepts a JSON string, an array of strings, or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := joinJSON(data, "")
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

// String returns the normalized text.
func (t Text) String() string { return string(t) }

// Lines is a multiline field whose array form is joined with newlines.
// Error tracebacks use this form: each frame is a separate string
// without a trailing newline.
type Lines string

// UnmarshalJSON accepts a JSON string, an array of strings, or null.
func (l *Lines) UnmarshalJSON(data []byte) error {
	s, err := joinJSON(data, "\n")
	if err != nil {
		return err
	}
	*l = Lines(s)
	return nil
}

// String returns the normalized text.
func (l Lines) String() string { return string(l) }

// joinJSON decodes a string-or-array JSON value into a single string.
func joinJSON(data []byte, sep string) (string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case '[':
		var parts []string
		if err := json.Unmarshal(trimmed, &parts); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnexpectedType, err)
		}
		return strings.Join(parts, sep), nil
	default:
		return "", fmt.Errorf("%w: got %.20s", ErrUnexpectedType, trimmed)
	}
}

// MIMEEntry is one representation inside a MIME bundle.
type MIMEEntry struct {
	MIME string
	Data string
}

// MIMEBundle maps MIME types to payloads while keeping the key order of
// the source document, so "first type found" has a stable meaning.
type MIMEBundle []MIMEEntry

// UnmarshalJSON decodes a JSON object of MIME type -> payload.
// Payloads that are not text (for example application/json objects) are
// dropped since nothing can render them.
func (b *MIMEBundle) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*b = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("mime bundle: expected object, got %v", tok)
	}

	var entries MIMEBundle
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("mime bundle: unexpected key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		var payload Text
		if err := payload.UnmarshalJSON(raw); err != nil {
			continue
		}
		entries = append(entries, MIMEEntry{MIME: key, Data: string(payload)})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}

	*b = entries
	return nil
}

// Get returns the payload for mime and whether the key was present.
func (b MIMEBundle) Get(mime string) (string, bool) {
	for _, e := range b {
		if e.MIME == mime {
			return e.Data, true
		}
	}
	return "", false
}

// First returns the first entry in document order.
func (b MIMEBundle) First() (MIMEEntry, bool) {
	if len(b) == 0 {
		return MIMEEntry{}, false
	}
	return b[0], true
}
