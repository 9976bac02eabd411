package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// TagList is a list of free-text tags (emotion labels) that tolerates every
// serialized shape the journal has ever produced: a native JSON array, a
// JSON-bracket string, a Postgres array literal ("{a,b}"), a comma-delimited
// string, or a single bare token. It always stores back as a JSON array.
type TagList []string

// ParseTags classifies the raw shape and normalizes it to a flat tag list.
// Unparseable input degrades to whatever tokens can be salvaged, never to an
// error.
func ParseTags(raw string) TagList {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, "[") {
		var arr []string
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			return cleanTags(arr)
		}
		// Malformed JSON array. Strip the brackets and fall through to the
		// delimiter split.
		raw = strings.Trim(raw, "[]")
	}

	if strings.HasPrefix(raw, "{") {
		raw = strings.Trim(raw, "{}")
	}

	return cleanTags(strings.Split(raw, ","))
}

func cleanTags(tokens []string) TagList {
	out := make(TagList, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		tok = strings.Trim(tok, `"'`)
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, tok)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Scan implements sql.Scanner so legacy text columns load transparently.
func (l *TagList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		*l = ParseTags(string(v))
		return nil
	case string:
		*l = ParseTags(v)
		return nil
	default:
		return fmt.Errorf("taglist: cannot scan %T", value)
	}
}

// Value implements driver.Valuer. Tags always persist as a JSON array.
func (l TagList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("taglist: marshal: %w", err)
	}
	return string(b), nil
}

// UnmarshalJSON accepts either a JSON array or any of the legacy string
// shapes, so API payloads and CSV-sourced JSON both decode.
func (l *TagList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = cleanTags(arr)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = ParseTags(s)
		return nil
	}
	if string(b) == "null" {
		*l = nil
		return nil
	}
	return fmt.Errorf("taglist: unsupported JSON shape: %s", string(b))
}
