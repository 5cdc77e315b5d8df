package amiplus

import (
	"fmt"
	"sort"
)

// FieldSet offers typed helpers on top of the decoded field map.
type FieldSet struct {
	data map[string]float64
}

// FieldSet returns a FieldSet wrapper for the result's fields.
func (r Result) FieldSet() FieldSet {
	return FieldSet{data: r.Fields}
}

// Map exposes the underlying map for callers that still need raw access.
func (fs FieldSet) Map() map[string]float64 {
	return fs.data
}

// Has reports whether the field was decoded.
func (fs FieldSet) Has(key string) bool {
	_, ok := fs.data[key]
	return ok
}

// Raw returns the stored value and whether it was present.
func (fs FieldSet) Raw(key string) (float64, bool) {
	if fs.data == nil {
		return 0, false
	}
	v, ok := fs.data[key]
	return v, ok
}

// Float returns the field or an error naming the missing key.
func (fs FieldSet) Float(key string) (float64, error) {
	v, ok := fs.Raw(key)
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}
	return v, nil
}

// Names returns the decoded field names in sorted order.
func (fs FieldSet) Names() []string {
	names := make([]string, 0, len(fs.data))
	for k := range fs.data {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
