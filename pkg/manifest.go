package pkg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an ordered JSON object. Nested objects inside a Manifest are
// always of this type.
type Object = orderedmap.OrderedMap[string, any]

// Section names a string-to-string mapping inside the manifest.
type Section string

const (
	SectionDependencies    Section = "dependencies"
	SectionDevDependencies Section = "devDependencies"
	SectionScripts         Section = "scripts"
)

// Entry is one key/value pair of a Section.
type Entry struct {
	Key   string
	Value string
}

// Manifest is a package.json document that keeps every key, known or not,
// in its original order. Values are string, json.Number, bool, nil, []any or
// *Object.
type Manifest struct {
	fields *Object
}

func NewManifest() *Manifest {
	return &Manifest{fields: orderedmap.New[string, any]()}
}

// ParseManifest decodes data into a Manifest. The top level must be a JSON
// object and nothing may follow it.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}
	fields, err := decodeObject(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level object")
	}
	return &Manifest{fields: fields}, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); ok {
		switch d {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", d)
	}
	return tok, nil
}

// decodeObject reads members up to and including the closing brace.
func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := orderedmap.New[string, any]()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

// Encode renders the manifest with two-space indentation and a trailing
// newline. HTML characters are written as-is.
func (m *Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeObject(&buf, m.fields, ""); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, v any, indent string) error {
	switch val := v.(type) {
	case *Object:
		return writeObject(buf, val, indent)
	case []any:
		return writeArray(buf, val, indent)
	}

	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	enc.SetIndent(indent, "  ")
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(scratch.Bytes(), []byte("\n")))
	return nil
}

func writeObject(buf *bytes.Buffer, obj *Object, indent string) error {
	if obj == nil {
		buf.WriteString("null")
		return nil
	}
	if obj.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}
	inner := indent + "  "
	buf.WriteString("{\n")
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		buf.WriteString(inner)
		if err := writeValue(buf, pair.Key, inner); err != nil {
			return err
		}
		buf.WriteString(": ")
		if err := writeValue(buf, pair.Value, inner); err != nil {
			return fmt.Errorf("key %q: %w", pair.Key, err)
		}
		if pair.Next() != nil {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent)
	buf.WriteByte('}')
	return nil
}

func writeArray(buf *bytes.Buffer, arr []any, indent string) error {
	if len(arr) == 0 {
		buf.WriteString("[]")
		return nil
	}
	inner := indent + "  "
	buf.WriteString("[\n")
	for i, v := range arr {
		buf.WriteString(inner)
		if err := writeValue(buf, v, inner); err != nil {
			return err
		}
		if i < len(arr)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(indent)
	buf.WriteByte(']')
	return nil
}

func (m *Manifest) Get(key string) (any, bool) {
	return m.fields.Get(key)
}

// Set stores value under key. An existing key keeps its position; a new key
// is appended.
func (m *Manifest) Set(key string, value any) {
	m.fields.Set(key, value)
}

func (m *Manifest) Delete(key string) bool {
	_, ok := m.fields.Delete(key)
	return ok
}

func (m *Manifest) Len() int {
	return m.fields.Len()
}

func (m *Manifest) Keys() []string {
	keys := make([]string, 0, m.fields.Len())
	for pair := m.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// StringField returns the value under key, or "" when it is absent or not a
// string.
func (m *Manifest) StringField(key string) string {
	v, ok := m.fields.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func (m *Manifest) SetStringField(key, value string) {
	m.fields.Set(key, value)
}

func (m *Manifest) section(s Section, create bool) *Object {
	if v, ok := m.fields.Get(string(s)); ok {
		if obj, ok := v.(*Object); ok && obj != nil {
			return obj
		}
	}
	if !create {
		return nil
	}
	obj := orderedmap.New[string, any]()
	m.fields.Set(string(s), obj)
	return obj
}

// Entry returns the string stored under key in section s.
func (m *Manifest) Entry(s Section, key string) (string, bool) {
	obj := m.section(s, false)
	if obj == nil {
		return "", false
	}
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// Entries lists the string entries of section s in document order.
func (m *Manifest) Entries(s Section) []Entry {
	obj := m.section(s, false)
	if obj == nil {
		return nil
	}
	entries := make([]Entry, 0, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		if str, ok := pair.Value.(string); ok {
			entries = append(entries, Entry{Key: pair.Key, Value: str})
		}
	}
	return entries
}

// SetEntry creates section s if needed and stores value under key,
// replacing any previous value.
func (m *Manifest) SetEntry(s Section, key, value string) {
	m.section(s, true).Set(key, value)
}

// DeleteEntry removes key from section s. The section itself is kept.
func (m *Manifest) DeleteEntry(s Section, key string) bool {
	obj := m.section(s, false)
	if obj == nil {
		return false
	}
	_, ok := obj.Delete(key)
	return ok
}
