package summary

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/ppiankov/noisepop/internal/model"
)

// Engine computes statistics over a cleaned Dataset
type Engine struct {
	populationColumn string
	exposureColumns  []string
}

// NewEngine creates an engine for the given column configuration
func NewEngine(cols model.ColumnsConfig) *Engine {
	e := &Engine{
		populationColumn: cols.Population,
		exposureColumns:  slices.Clone(cols.Exposure),
	}
	if e.populationColumn == "" {
		e.populationColumn = model.DefaultPopulationColumn
	}
	if len(e.exposureColumns) == 0 {
		e.exposureColumns = slices.Clone(model.DefaultExposureColumns)
	}
	return e
}

// Summarize computes column and row counts, both extremal records and their
// exposure metrics
func (e *Engine) Summarize(ds *model.Dataset) (model.Summary, error) {
	most, err := e.MostPopulated(ds)
	if err != nil {
		return model.Summary{}, err
	}
	least, err := e.LeastPopulated(ds)
	if err != nil {
		return model.Summary{}, err
	}

	maxX, err := e.extreme(most)
	if err != nil {
		return model.Summary{}, err
	}
	minX, err := e.extreme(least)
	if err != nil {
		return model.Summary{}, err
	}

	return model.Summary{
		Columns:        ds.At(0).Len(),
		Rows:           ds.Len(),
		MostPopulated:  maxX,
		LeastPopulated: minX,
	}, nil
}

// MostPopulated returns the first record holding the largest population
func (e *Engine) MostPopulated(ds *model.Dataset) (model.Record, error) {
	return e.selectBy(ds, func(candidate, best int64) bool { return candidate > best })
}

// LeastPopulated returns the first record holding the smallest population
func (e *Engine) LeastPopulated(ds *model.Dataset) (model.Record, error) {
	return e.selectBy(ds, func(candidate, best int64) bool { return candidate < best })
}

// selectBy scans once; the strict comparison keeps the earliest record on ties
func (e *Engine) selectBy(ds *model.Dataset, better func(candidate, best int64) bool) (model.Record, error) {
	if ds.Len() == 0 {
		return model.Record{}, ErrEmptyDataset
	}

	var (
		best    model.Record
		bestPop int64
	)
	for i := 0; i < ds.Len(); i++ {
		rec := ds.At(i)
		pop, err := e.population(rec)
		if err != nil {
			return model.Record{}, err
		}
		if i == 0 || better(pop, bestPop) {
			best, bestPop = rec, pop
		}
	}
	return best, nil
}

func (e *Engine) population(rec model.Record) (int64, error) {
	pop, ok := rec.Population.AsInt()
	if !ok {
		return 0, &DataError{Location: rec.Location, Column: e.populationColumn, Reason: fmt.Sprintf("population %q is not an integer", rec.Population.Raw())}
	}
	return pop, nil
}

// Exposure sums the highest-band exposure counts of rec
func (e *Engine) Exposure(rec model.Record) (int64, error) {
	var sum int64
	for _, col := range e.exposureColumns {
		v, ok := rec.Get(col)
		if !ok {
			return 0, &DataError{Location: rec.Location, Column: col, Reason: "missing"}
		}
		n, ok := v.AsInt()
		if !ok {
			return 0, &DataError{Location: rec.Location, Column: col, Reason: fmt.Sprintf("%q is not an integer", v.Raw())}
		}
		if (n > 0 && sum > math.MaxInt64-n) || (n < 0 && sum < math.MinInt64-n) {
			return 0, &DataError{Location: rec.Location, Column: col, Reason: "exposure total overflows int64"}
		}
		sum += n
	}
	return sum, nil
}

// Percentage returns exposure as a percentage of population. A population
// that is not positive is a DataError.
func Percentage(exposure, population int64) (float64, error) {
	if population <= 0 {
		return 0, &DataError{Column: "population", Reason: fmt.Sprintf("population %d is not positive", population)}
	}
	return float64(exposure) / float64(population) * 100, nil
}

// FormatPercent renders p with two decimals and a percent sign
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

func (e *Engine) extreme(rec model.Record) (model.Extreme, error) {
	pop, err := e.population(rec)
	if err != nil {
		return model.Extreme{}, err
	}
	exp, err := e.Exposure(rec)
	if err != nil {
		return model.Extreme{}, err
	}
	pct, err := Percentage(exp, pop)
	var de *DataError
	if errors.As(err, &de) {
		de.Location = rec.Location
		de.Column = e.populationColumn
		return model.Extreme{}, de
	}

	return model.Extreme{
		Location:   rec.Location,
		Population: pop,
		Exposure:   exp,
		Percentage: pct,
		Record:     rec,
	}, nil
}
