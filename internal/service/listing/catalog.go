package listing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/flightdb/internal/domain"
)

var ErrUnknownTable = errors.New("unknown table")

// Result is a filtered list ready for serialization. Stale is set when the
// latest fetch failed and Rows come from an earlier successful one.
type Result struct {
	Table domain.Table `json:"table"`
	Rows  any          `json:"data"`
	Count int          `json:"count"`
	Stale bool         `json:"stale"`
}

// Entry is the untyped face of a View.
type Entry interface {
	Table() domain.Table
	List(ctx context.Context, term string) Result
	CreateJSON(ctx context.Context, raw []byte) (domain.Record, error)
}

func (v *View[T, In]) List(ctx context.Context, term string) Result {
	rows, err := v.Search(ctx, term)
	return Result{Table: v.table, Rows: rows, Count: len(rows), Stale: err != nil}
}

// CreateJSON decodes raw into the insert input of the view and creates it.
func (v *View[T, In]) CreateJSON(ctx context.Context, raw []byte) (domain.Record, error) {
	var input In
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	created, err := v.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	return *created, nil
}

type Catalog struct {
	entries map[domain.Table]Entry
	order   []domain.Table
}

func NewCatalog(entries ...Entry) *Catalog {
	c := &Catalog{entries: make(map[domain.Table]Entry, len(entries))}
	for _, e := range entries {
		if _, dup := c.entries[e.Table()]; !dup {
			c.order = append(c.order, e.Table())
		}
		c.entries[e.Table()] = e
	}
	return c
}

func (c *Catalog) Get(table domain.Table) (Entry, error) {
	e, ok := c.entries[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return e, nil
}

func (c *Catalog) Tables() []domain.Table {
	out := make([]domain.Table, len(c.order))
	copy(out, c.order)
	return out
}

var _ Entry = (*View[domain.Airline, domain.NewAirline])(nil)
