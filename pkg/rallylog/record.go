package rallylog

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// DefaultWho is the speaker label used when an entry has no "who" field.
const DefaultWho = "user"

// Record is one element of a log array, keyed by field name. Values are kept
// raw so that presence and arbitrary JSON shapes survive decoding. Elements
// that are not JSON objects decode to a nil Record.
type Record map[string]json.RawMessage

// Entry is a Record with display defaults applied.
type Entry struct {
	Round  string
	Who    string
	Prompt string
	Output string
}

// Resolve applies the display defaults for the record at position i.
func (r Record) Resolve(i int) Entry {
	e := Entry{
		Round: strconv.Itoa(i),
		Who:   DefaultWho,
	}
	if raw, ok := r["round"]; ok {
		e.Round = displayValue(raw)
	}
	if raw, ok := r["who"]; ok {
		e.Who = displayValue(raw)
	}
	if raw := r["prompt"]; truthy(raw) {
		e.Prompt = displayValue(raw)
	}
	if raw := r["output"]; truthy(raw) {
		e.Output = displayValue(raw)
	}
	return e
}

// Text returns the field's text: a JSON string is unquoted, anything else
// is returned as compact JSON. Missing fields yield "".
func (r Record) Text(key string) string {
	raw, ok := r[key]
	if !ok {
		return ""
	}
	return displayValue(raw)
}

// Has reports whether the field is present with a non-empty value.
func (r Record) Has(key string) bool {
	return truthy(r[key])
}

// Number returns the field as a number, or 0 if it is missing or not numeric.
func (r Record) Number(key string) float64 {
	raw := bytes.TrimSpace(r[key])
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return 0
}

// Resolve applies display defaults to every record, in order.
func Resolve(records []Record) []Entry {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = r.Resolve(i)
	}
	return entries
}

func displayValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// truthy mirrors the loose emptiness test used by the tools that write these
// logs: null, false, 0, "", [] and {} all count as empty.
func truthy(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	switch raw[0] {
	case 'n', 'f':
		return false
	case 't':
		return true
	case '"':
		return len(raw) > 2
	case '[', '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return true
		}
		return buf.Len() > 2
	default:
		f, err := strconv.ParseFloat(string(raw), 64)
		return err != nil || f != 0
	}
}
