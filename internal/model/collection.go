package model

import (
	"encoding/json"
	"fmt"

	"github.com/finsheet/finsheet/internal/common"
)

// Collection is the ordered sequence of records for one kind. Budget
// collections are partitioned into sections by the schema's section field;
// sequence numbering restarts at 1 within each section.
type Collection struct {
	Kind    Kind
	Records []Record
}

// NewCollection returns an empty collection for a kind.
func NewCollection(kind Kind) *Collection {
	return &Collection{Kind: kind}
}

// Len returns the number of records.
func (c *Collection) Len() int {
	return len(c.Records)
}

// At returns the record at index, or an error when out of range.
func (c *Collection) At(index int) (Record, error) {
	if index < 0 || index >= len(c.Records) {
		return nil, fmt.Errorf("%w: %d of %d", common.ErrIndexRange, index, len(c.Records))
	}
	return c.Records[index], nil
}

// Append adds a record and renumbers sequence indices.
func (c *Collection) Append(rec Record) {
	c.Records = append(c.Records, rec)
	c.Renumber()
}

// Remove deletes the record at index and renumbers the remainder
// contiguously from 1. It returns the removed record.
func (c *Collection) Remove(index int) (Record, error) {
	rec, err := c.At(index)
	if err != nil {
		return nil, err
	}
	c.Records = append(c.Records[:index], c.Records[index+1:]...)
	c.Renumber()
	return rec, nil
}

// Replace swaps the record at index.
func (c *Collection) Replace(index int, rec Record) error {
	if _, err := c.At(index); err != nil {
		return err
	}
	c.Records[index] = rec
	return nil
}

// Renumber rewrites the schema's sequence field as a contiguous 1-based
// index. When the schema declares a section field, numbering restarts at 1
// for each section; records keep their overall order either way.
func (c *Collection) Renumber() {
	schema := SchemaFor(c.Kind)
	if schema.Section == "" {
		for i, rec := range c.Records {
			rec[schema.SeqField] = float64(i + 1)
		}
		return
	}
	counts := make(map[string]int)
	for _, rec := range c.Records {
		section := rec.Text(schema.Section)
		counts[section]++
		rec[schema.SeqField] = float64(counts[section])
	}
}

// IndexByID returns the position of the record with the given id, or -1.
func (c *Collection) IndexByID(id string) int {
	for i, rec := range c.Records {
		if rec.ID() == id {
			return i
		}
	}
	return -1
}

// ReplaceID rewrites the single record whose id equals tempID to carry
// canonicalID. Exactly one record matches by the uniqueness invariant; it
// returns false when none does (the record was removed before the backend
// confirmed it).
func (c *Collection) ReplaceID(tempID, canonicalID string) bool {
	i := c.IndexByID(tempID)
	if i < 0 {
		return false
	}
	c.Records[i].SetID(canonicalID)
	return true
}

// CheckUniqueIDs verifies the id-uniqueness invariant.
func (c *Collection) CheckUniqueIDs() error {
	seen := make(map[string]struct{}, len(c.Records))
	for _, rec := range c.Records {
		id := rec.ID()
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", common.ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Clone deep-copies the collection.
func (c *Collection) Clone() *Collection {
	out := &Collection{Kind: c.Kind, Records: make([]Record, len(c.Records))}
	for i, rec := range c.Records {
		out.Records[i] = rec.Clone()
	}
	return out
}

// MarshalJSON serializes the collection as a bare record array, matching
// the backend wire format and the local cache payload.
func (c *Collection) MarshalJSON() ([]byte, error) {
	if c.Records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Records)
}

// UnmarshalJSON restores a collection from a record array. The kind must
// be assigned by the caller afterwards when decoding into a zero value.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	c.Records = records
	return nil
}
