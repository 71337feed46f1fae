package clean

import (
	"strconv"
	"strings"

	"github.com/ppiankov/noisepop/internal/model"
)

// Cleaner turns raw delimited rows into typed records
type Cleaner struct {
	locationColumn   string
	populationColumn string
	excludeLocation  string
	notApplicable    string
}

// NewCleaner creates a cleaner for the given column configuration.
// Empty names fall back to the dataset defaults.
func NewCleaner(cols model.ColumnsConfig) *Cleaner {
	c := &Cleaner{
		locationColumn:   cols.Location,
		populationColumn: cols.Population,
		excludeLocation:  cols.ExcludeLocation,
		notApplicable:    cols.NotApplicable,
	}
	if c.locationColumn == "" {
		c.locationColumn = model.DefaultLocationColumn
	}
	if c.populationColumn == "" {
		c.populationColumn = model.DefaultPopulationColumn
	}
	if c.excludeLocation == "" {
		c.excludeLocation = model.DefaultExcludeLocation
	}
	if c.notApplicable == "" {
		c.notApplicable = model.DefaultNotApplicable
	}
	return c
}

// Clean converts one raw row. The second result is false when the row is
// the rollup bucket and must be left out of the dataset.
func (c *Cleaner) Clean(raw model.RawRecord) (model.Record, bool) {
	if loc, ok := raw.Get(c.locationColumn); ok && loc == c.excludeLocation {
		return model.Record{}, false
	}

	rec := model.Record{Fields: make([]model.Field, len(raw))}
	for i, f := range raw {
		v := c.CleanValue(f.Value)
		rec.Fields[i] = model.Field{Name: f.Name, Value: v}

		switch f.Name {
		case c.locationColumn:
			rec.Location = f.Value
		case c.populationColumn:
			rec.Population = v
		}
	}
	return rec, true
}

// LocationColumn returns the name of the distinguished location column
func (c *Cleaner) LocationColumn() string { return c.locationColumn }

// PopulationColumn returns the name of the distinguished population column
func (c *Cleaner) PopulationColumn() string { return c.populationColumn }

// CleanRecord re-cleans an already typed record
func (c *Cleaner) CleanRecord(rec model.Record) (model.Record, bool) {
	return c.Clean(rec.Raw())
}

// CleanValue applies marker substitution and integer coercion to one value
func (c *Cleaner) CleanValue(s string) model.Value {
	if s == c.notApplicable {
		return model.Int(0)
	}
	if i, ok := parseInt(s); ok {
		return model.Int(i)
	}
	return model.String(s)
}

// parseInt accepts a base-10 integer with an optional sign and surrounding
// whitespace
func parseInt(s string) (int64, bool) {
	t := strings.TrimSpace(s)
	if t == "" {
		return 0, false
	}
	i, err := strconv.ParseInt(t, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}
