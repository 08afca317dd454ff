// Package header implements the frontmatter codec for rule and skill
// documents: a structured block delimited by `---` lines at the top of a
// markdown file.
//
// The codec deliberately does not use a general-purpose YAML parser. The
// header vocabulary is closed: scalar strings, booleans, decimal numbers,
// and flat block lists of strings. Anything beyond that (nested maps, flow
// lists, multi-line scalars, anchors) is unsupported and causes the whole
// block to be treated as opaque text rather than be mis-parsed.
package header

import (
	"strconv"
	"strings"
)

// Record is an order-preserving set of header fields. Values are one of
// string, bool, int, float64, or []string.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Get returns the raw value for key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// GetString returns the value for key if it is a string.
func (r *Record) GetString(key string) (string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetBool returns the value for key if it is a boolean.
func (r *Record) GetBool(key string) (bool, bool) {
	v, ok := r.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// GetStrings returns the value for key if it is a string list.
func (r *Record) GetStrings(key string) ([]string, bool) {
	v, ok := r.Get(key)
	if !ok {
		return nil, false
	}
	list, ok := v.([]string)
	return list, ok
}

// Set stores a value, appending the key if new and keeping its position if
// it already exists. Setting a nil value removes the key.
func (r *Record) Set(key string, value any) {
	if value == nil {
		r.Delete(key)
		return
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Delete removes a field if present.
func (r *Record) Delete(key string) {
	if r == nil {
		return
	}
	if _, exists := r.values[key]; !exists {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Document is the result of splitting a rule or skill file into its header
// and body. Header is nil when the file has no parseable frontmatter.
type Document struct {
	Header *Record
	Body   string
}

const delimiter = "---"

// Parse splits content into a header record and body. If the content does
// not begin with the delimiter line, or no closing delimiter is found before
// end of input, the header is nil and the body is the content unchanged.
// Parse never fails; malformed headers pass through as plain text.
func Parse(content string) Document {
	rest, ok := cutDelimiterLine(content)
	if !ok {
		return Document{Body: content}
	}

	lines := strings.Split(rest, "\n")
	record := NewRecord()
	var listKey string
	closed := false
	bodyStart := 0

	for i, line := range lines {
		trimmed := strings.TrimRight(line, "\r")
		if trimmed == delimiter {
			closed = true
			bodyStart = i + 1
			break
		}

		// Block list item under the most recent empty-valued key.
		if listKey != "" {
			if item, ok := listItem(trimmed); ok {
				existing, _ := record.GetStrings(listKey)
				record.Set(listKey, append(existing, item))
				continue
			}
			listKey = ""
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			// An empty value starts list collection for this key.
			listKey = key
			record.Set(key, []string{})
			continue
		}
		record.Set(key, coerceScalar(value))
	}

	if !closed {
		return Document{Body: content}
	}

	body := strings.Join(lines[bodyStart:], "\n")
	return Document{Header: record, Body: trimLeadingBlankLines(body)}
}

// Serialize renders a record back into header-block text (without the
// surrounding delimiters). Nil values never occur in a Record; empty records
// serialize to the empty string.
func Serialize(record *Record) string {
	if record.Len() == 0 {
		return ""
	}
	var b strings.Builder
	for _, key := range record.keys {
		value := record.values[key]
		switch v := value.(type) {
		case []string:
			b.WriteString(key)
			b.WriteString(":\n")
			for _, item := range v {
				b.WriteString("  - ")
				b.WriteString(quote(item))
				b.WriteString("\n")
			}
		case bool:
			b.WriteString(key)
			b.WriteString(": ")
			b.WriteString(strconv.FormatBool(v))
			b.WriteString("\n")
		case int:
			b.WriteString(key)
			b.WriteString(": ")
			b.WriteString(strconv.Itoa(v))
			b.WriteString("\n")
		case float64:
			b.WriteString(key)
			b.WriteString(": ")
			b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
			b.WriteString("\n")
		case string:
			b.WriteString(key)
			b.WriteString(": ")
			b.WriteString(renderScalar(v))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Build reassembles a document from a header record and body. When the
// record is nil or empty the body is returned unchanged.
func Build(record *Record, body string) string {
	if record.Len() == 0 {
		return body
	}
	var b strings.Builder
	b.WriteString(delimiter)
	b.WriteString("\n")
	b.WriteString(Serialize(record))
	b.WriteString(delimiter)
	b.WriteString("\n\n")
	b.WriteString(body)
	return b.String()
}

// cutDelimiterLine strips the opening delimiter line, handling both Unix
// and Windows line endings. Returns false if content does not start with
// the delimiter on a line of its own.
func cutDelimiterLine(content string) (string, bool) {
	if rest, ok := strings.CutPrefix(content, delimiter+"\n"); ok {
		return rest, true
	}
	if rest, ok := strings.CutPrefix(content, delimiter+"\r\n"); ok {
		return rest, true
	}
	return "", false
}

// listItem matches "two-space indent, dash, optional quotes".
func listItem(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "  - ")
	if !ok {
		// A bare dash with no value is still a (empty) list item.
		if strings.TrimRight(line, " ") == "  -" {
			return "", true
		}
		return "", false
	}
	return unquote(strings.TrimSpace(rest)), true
}

// coerceScalar converts a raw value string into its typed form: booleans,
// decimal numbers, then quoted or bare strings.
func coerceScalar(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return unquote(raw)
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		inner := s[1 : len(s)-1]
		return strings.ReplaceAll(inner, `\"`, `"`)
	}
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return s[1 : len(s)-1]
	}
	return s
}

// renderScalar writes a string value, quoting whenever the bare form would
// not re-parse as the same string: colons, quotes and comment markers are
// ambiguous, the empty value position starts list collection, and bare
// boolean or numeric lookalikes would coerce to a different type.
func renderScalar(s string) string {
	if s == "" || strings.ContainsAny(s, `:"#`) {
		return quote(s)
	}
	if _, ok := coerceScalar(s).(string); !ok {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

func trimLeadingBlankLines(body string) string {
	for {
		line, rest, ok := strings.Cut(body, "\n")
		if !ok {
			if strings.TrimSpace(body) == "" {
				return strings.TrimLeft(body, " \t")
			}
			return body
		}
		if strings.TrimSpace(line) != "" {
			return body
		}
		body = rest
	}
}
