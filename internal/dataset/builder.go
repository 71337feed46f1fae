package dataset

import (
	"iter"
	"slices"

	"go.uber.org/zap"

	"github.com/ppiankov/noisepop/internal/clean"
	"github.com/ppiankov/noisepop/internal/model"
)

// Builder accumulates cleaned records into a Dataset
type Builder struct {
	cleaner *clean.Cleaner
	logger  *zap.Logger
}

// NewBuilder creates a builder. A nil logger disables logging.
func NewBuilder(cleaner *clean.Cleaner, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{cleaner: cleaner, logger: logger}
}

// Build cleans every raw record in a single forward pass and keeps the
// non-dropped ones in input order. All kept records must share the columns
// of the first kept record.
func (b *Builder) Build(rows iter.Seq2[model.RawRecord, error]) (*model.Dataset, error) {
	var (
		records []model.Record
		schema  []string
		row     int
		dropped int
	)

	for raw, err := range rows {
		if err != nil {
			return nil, err
		}
		row++

		rec, ok := b.cleaner.Clean(raw)
		if !ok {
			dropped++
			loc, _ := raw.Get(b.cleaner.LocationColumn())
			b.logger.Debug("Dropped rollup row", zap.Int("row", row), zap.String("location", loc))
			continue
		}

		cols := rec.Columns()
		if schema == nil {
			schema = cols
		} else if !slices.Equal(schema, cols) {
			return nil, &SchemaError{Row: row, Want: schema, Got: cols}
		}
		records = append(records, rec)
	}

	b.logger.Debug("Dataset built",
		zap.Int("rows_read", row),
		zap.Int("rows_kept", len(records)),
		zap.Int("rows_dropped", dropped))

	return model.NewDataset(records), nil
}
