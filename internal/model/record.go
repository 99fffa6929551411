package model

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// TempIDPrefix marks client-generated ids awaiting backend confirmation.
const TempIDPrefix = "tmp-"

// NewTempID generates a locally-unique temporary record id.
func NewTempID() string {
	return TempIDPrefix + uuid.NewString()
}

// IsTempID reports whether id was generated locally and not yet reconciled
// with a backend-assigned canonical id.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// Record is a flat set of named fields. Values are strings (text and
// date fields) or float64 (numeric fields); JSON round-trips preserve
// that split because encoding/json decodes numbers as float64.
type Record map[string]any

// ID returns the record's identity field, or "" when unset.
func (r Record) ID() string {
	return r.Text("id")
}

// SetID assigns the identity field.
func (r Record) SetID(id string) {
	r["id"] = id
}

// Text returns the named field as a string. Non-string values yield "".
func (r Record) Text(field string) string {
	if s, ok := r[field].(string); ok {
		return s
	}
	return ""
}

// Number returns the named field as a float64. Strings that parse as
// numbers are coerced; anything else yields 0.
func (r Record) Number(field string) float64 {
	switch v := r[field].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// Has reports whether the named field is present.
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Clone returns a shallow copy. Record values are scalars, so a shallow
// copy is a full copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// NewRecord builds a record of the given kind from caller-supplied fields
// merged over the schema defaults. A temp id is assigned when the partial
// carries none.
func NewRecord(schema Schema, partial Record) Record {
	rec := make(Record, len(schema.Fields)+2)
	for _, f := range schema.Fields {
		if f.Derived {
			continue
		}
		rec[f.Name] = f.Default
	}
	for k, v := range partial {
		rec[k] = v
	}
	if rec.ID() == "" {
		rec.SetID(NewTempID())
	}
	return rec
}
