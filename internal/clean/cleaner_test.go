package clean

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/noisepop/internal/model"
)

var valueComparer = cmp.Comparer(func(a, b model.Value) bool { return a.Equal(b) })

func newDefaultCleaner() *Cleaner {
	return NewCleaner(model.DefaultConfig().Columns)
}

func TestCleaner_ExcludesRollupRow(t *testing.T) {
	c := newDefaultCleaner()
	raw := model.RawRecord{
		{Name: "Location/Agglomeration", Value: "Major sources (outside agglomerations)"},
		{Name: "AgglomerationPopulation", Value: "999"},
	}

	_, ok := c.Clean(raw)
	assert.False(t, ok, "rollup row must be dropped")
}

func TestCleaner_KeepsRowWithoutLocationColumn(t *testing.T) {
	c := newDefaultCleaner()
	rec, ok := c.Clean(model.RawRecord{{Name: "Other", Value: "1"}})
	require.True(t, ok)
	assert.Equal(t, "", rec.Location)
}

func TestCleaner_NotApplicableBecomesZero(t *testing.T) {
	c := newDefaultCleaner()
	rec, ok := c.Clean(model.RawRecord{
		{Name: "Location/Agglomeration", Value: "Cork"},
		{Name: "Industry_Pop_Lden>=75dB", Value: "n/a"},
	})
	require.True(t, ok)

	v, found := rec.Get("Industry_Pop_Lden>=75dB")
	require.True(t, found)
	got, isInt := v.AsInt()
	assert.True(t, isInt)
	assert.Equal(t, int64(0), got)
}

func TestCleaner_CleanValue(t *testing.T) {
	c := newDefaultCleaner()
	tests := []struct {
		in   string
		want model.Value
	}{
		{"100", model.Int(100)},
		{"-7", model.Int(-7)},
		{"+3", model.Int(3)},
		{" 42 ", model.Int(42)},
		{"0", model.Int(0)},
		{"n/a", model.Int(0)},
		{"N/A", model.String("N/A")},
		{"", model.String("")},
		{"1.5", model.String("1.5")},
		{"1,000", model.String("1,000")},
		{"Dublin", model.String("Dublin")},
		{"99999999999999999999", model.String("99999999999999999999")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := c.CleanValue(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("CleanValue(%q) = %v (%s), want %v (%s)", tt.in, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestCleaner_LocationStaysString(t *testing.T) {
	c := newDefaultCleaner()
	rec, ok := c.Clean(model.RawRecord{
		{Name: "Location/Agglomeration", Value: "Limerick"},
		{Name: "AgglomerationPopulation", Value: "94192"},
	})
	require.True(t, ok)

	assert.Equal(t, "Limerick", rec.Location)
	v, _ := rec.Get("Location/Agglomeration")
	assert.Equal(t, model.KindString, v.Kind())
	pop, isInt := rec.Population.AsInt()
	assert.True(t, isInt)
	assert.Equal(t, int64(94192), pop)
}

func TestCleaner_RollupAndMarkerRows(t *testing.T) {
	c := newDefaultCleaner()
	first := model.RawRecord{
		{Name: "Location/Agglomeration", Value: "A"},
		{Name: "AgglomerationPopulation", Value: "100"},
		{Name: "Industry_Pop_Lden>=75dB", Value: "n/a"},
		{Name: "Railways_Pop_Lden>=75dB", Value: "5"},
		{Name: "Road_Pop_Lden>=75dB", Value: "5"},
	}

	got, ok := c.Clean(first)
	require.True(t, ok)

	want := model.Record{
		Location:   "A",
		Population: model.Int(100),
		Fields: []model.Field{
			{Name: "Location/Agglomeration", Value: model.String("A")},
			{Name: "AgglomerationPopulation", Value: model.Int(100)},
			{Name: "Industry_Pop_Lden>=75dB", Value: model.Int(0)},
			{Name: "Railways_Pop_Lden>=75dB", Value: model.Int(5)},
			{Name: "Road_Pop_Lden>=75dB", Value: model.Int(5)},
		},
	}
	if diff := cmp.Diff(want, got, valueComparer); diff != "" {
		t.Errorf("Clean() mismatch (-want +got):\n%s", diff)
	}
}

func TestCleaner_Idempotent(t *testing.T) {
	c := newDefaultCleaner()
	first, ok := c.Clean(model.RawRecord{
		{Name: "Location/Agglomeration", Value: "Galway"},
		{Name: "AgglomerationPopulation", Value: "79934"},
		{Name: "Road_Pop_Lden>=75dB", Value: "n/a"},
		{Name: "Note", Value: "estimated"},
	})
	require.True(t, ok)

	second, ok := c.CleanRecord(first)
	require.True(t, ok)

	if diff := cmp.Diff(first, second, valueComparer); diff != "" {
		t.Errorf("re-cleaning changed the record (-first +second):\n%s", diff)
	}
}

func TestCleaner_CustomColumns(t *testing.T) {
	c := NewCleaner(model.ColumnsConfig{
		Location:        "Town",
		Population:      "People",
		ExcludeLocation: "TOTAL",
		NotApplicable:   "-",
	})

	_, ok := c.Clean(model.RawRecord{{Name: "Town", Value: "TOTAL"}})
	assert.False(t, ok)

	rec, ok := c.Clean(model.RawRecord{{Name: "Town", Value: "Sligo"}, {Name: "People", Value: "-"}})
	require.True(t, ok)
	assert.Equal(t, "Sligo", rec.Location)
	assert.True(t, rec.Population.Equal(model.Int(0)))
}
