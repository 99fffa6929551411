// Package model defines the record kinds, field schemas, and collection
// types shared by every layer of the application.
package model

import "fmt"

// Kind identifies a record kind. The value doubles as the backend REST
// resource name and as the local cache namespace key.
type Kind string

// Supported record kinds.
const (
	KindBudget              Kind = "budget-section-items"
	KindProjectTracking     Kind = "project-tracking"
	KindSubscriptionModel   Kind = "subscription-model"
	KindSubscriptionRevenue Kind = "subscription-revenue"
)

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindBudget, KindProjectTracking, KindSubscriptionModel, KindSubscriptionRevenue}
}

// ParseKind converts a resource name into a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown record kind %q", s)
}

// FieldKind classifies how a base field is validated and coerced.
type FieldKind int

// Field kinds.
const (
	FieldText FieldKind = iota
	FieldNumeric
	FieldDate
)

// FieldSpec describes a single field of a record kind.
type FieldSpec struct {
	Default any
	Name    string
	Kind    FieldKind
	Derived bool
}

// Schema describes the full field layout of a record kind.
type Schema struct {
	Kind     Kind
	SeqField string // contiguous 1-based sequence index (srNo / slNo)
	Section  string // grouping field; empty when the kind has no sections
	Fields   []FieldSpec
}

// Field returns the FieldSpec for a named field.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// BaseFields returns the user-editable fields in declaration order.
func (s Schema) BaseFields() []FieldSpec {
	out := make([]FieldSpec, 0, len(s.Fields))
	for _, f := range s.Fields {
		if !f.Derived {
			out = append(out, f)
		}
	}
	return out
}

// DerivedFields returns the computed, read-only fields in declaration order.
func (s Schema) DerivedFields() []FieldSpec {
	out := make([]FieldSpec, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.Derived {
			out = append(out, f)
		}
	}
	return out
}
