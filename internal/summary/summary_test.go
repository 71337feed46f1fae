package summary

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/noisepop/internal/model"
)

func rec(location string, population int64, industry, rail, road int64) model.Record {
	return model.Record{
		Location:   location,
		Population: model.Int(population),
		Fields: []model.Field{
			{Name: "Location/Agglomeration", Value: model.String(location)},
			{Name: "AgglomerationPopulation", Value: model.Int(population)},
			{Name: "Industry_Pop_Lden>=75dB", Value: model.Int(industry)},
			{Name: "Railways_Pop_Lden>=75dB", Value: model.Int(rail)},
			{Name: "Road_Pop_Lden>=75dB", Value: model.Int(road)},
		},
	}
}

func newEngine() *Engine {
	return NewEngine(model.DefaultConfig().Columns)
}

func TestEngine_ExtremesIgnoreInputOrder(t *testing.T) {
	orders := [][]model.Record{
		{rec("Dublin", 9300000, 0, 0, 0), rec("Kilkenny", 105000, 0, 0, 0), rec("Cork", 400000, 0, 0, 0)},
		{rec("Kilkenny", 105000, 0, 0, 0), rec("Cork", 400000, 0, 0, 0), rec("Dublin", 9300000, 0, 0, 0)},
		{rec("Cork", 400000, 0, 0, 0), rec("Dublin", 9300000, 0, 0, 0), rec("Kilkenny", 105000, 0, 0, 0)},
	}

	e := newEngine()
	for i, records := range orders {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			ds := model.NewDataset(records)

			most, err := e.MostPopulated(ds)
			require.NoError(t, err)
			assert.Equal(t, "Dublin", most.Location)

			least, err := e.LeastPopulated(ds)
			require.NoError(t, err)
			assert.Equal(t, "Kilkenny", least.Location)
		})
	}
}

func TestEngine_TiesPickEarliest(t *testing.T) {
	ds := model.NewDataset([]model.Record{
		rec("First", 500, 0, 0, 0),
		rec("Second", 500, 0, 0, 0),
		rec("Third", 500, 0, 0, 0),
	})
	e := newEngine()

	most, err := e.MostPopulated(ds)
	require.NoError(t, err)
	assert.Equal(t, "First", most.Location)

	least, err := e.LeastPopulated(ds)
	require.NoError(t, err)
	assert.Equal(t, "First", least.Location)
}

func TestEngine_TiesPickEarliestExtremalRecord(t *testing.T) {
	ds := model.NewDataset([]model.Record{
		rec("Mid", 300, 0, 0, 0),
		rec("BigA", 900, 0, 0, 0),
		rec("SmallA", 100, 0, 0, 0),
		rec("BigB", 900, 0, 0, 0),
		rec("SmallB", 100, 0, 0, 0),
	})
	e := newEngine()

	most, err := e.MostPopulated(ds)
	require.NoError(t, err)
	assert.Equal(t, "BigA", most.Location)

	least, err := e.LeastPopulated(ds)
	require.NoError(t, err)
	assert.Equal(t, "SmallA", least.Location)
}

func TestEngine_EmptyDataset(t *testing.T) {
	e := newEngine()
	ds := model.NewDataset(nil)

	_, err := e.MostPopulated(ds)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = e.LeastPopulated(ds)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = e.Summarize(ds)
	var empty EmptyDatasetError
	assert.True(t, errors.As(err, &empty))
}

func TestEngine_Exposure(t *testing.T) {
	e := newEngine()
	got, err := e.Exposure(rec("A", 100, 0, 5, 5))
	require.NoError(t, err)
	assert.Equal(t, int64(10), got)
}

func TestEngine_ExposureMissingColumn(t *testing.T) {
	e := newEngine()
	r := model.Record{Location: "A", Population: model.Int(100)}

	_, err := e.Exposure(r)
	require.Error(t, err)
	assert.True(t, IsDataError(err))
}

func TestEngine_ExposureNonInteger(t *testing.T) {
	e := newEngine()
	r := rec("A", 100, 0, 0, 0)
	r.Fields[4].Value = model.String("unknown")

	_, err := e.Exposure(r)
	var de *DataError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Road_Pop_Lden>=75dB", de.Column)
}

func TestEngine_ExposureOverflow(t *testing.T) {
	e := newEngine()
	_, err := e.Exposure(rec("Huge", 100, math.MaxInt64, 1, 0))

	var de *DataError
	require.True(t, errors.As(err, &de), "expected DataError, got %v", err)
	assert.Equal(t, "Huge", de.Location)
	assert.Equal(t, "Railways_Pop_Lden>=75dB", de.Column)
}

func TestNewEngine_CopiesExposureColumns(t *testing.T) {
	cols := model.DefaultConfig().Columns
	e := NewEngine(cols)
	cols.Exposure[0] = "Changed"

	saved := model.DefaultExposureColumns[0]
	def := NewEngine(model.ColumnsConfig{})
	model.DefaultExposureColumns[0] = "Changed"
	t.Cleanup(func() { model.DefaultExposureColumns[0] = saved })

	assert.Equal(t, "Industry_Pop_Lden>=75dB", e.exposureColumns[0])
	assert.Equal(t, "Industry_Pop_Lden>=75dB", def.exposureColumns[0])
}

func TestEngine_NonIntegerPopulation(t *testing.T) {
	e := newEngine()
	bad := rec("Bad", 0, 0, 0, 0)
	bad.Population = model.String("lots")

	_, err := e.MostPopulated(model.NewDataset([]model.Record{rec("Good", 10, 0, 0, 0), bad}))
	var de *DataError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Bad", de.Location)
}

func TestEngine_ZeroPopulationIsDataError(t *testing.T) {
	e := newEngine()
	_, err := e.Summarize(model.NewDataset([]model.Record{rec("Ghost", 0, 0, 0, 0)}))

	var de *DataError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Ghost", de.Location)
	assert.Equal(t, "AgglomerationPopulation", de.Column)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		exposure, population int64
		want                 string
	}{
		{10, 100, "10.00%"},
		{0, 100, "0.00%"},
		{1, 3, "33.33%"},
		{2, 3, "66.67%"},
		{12800, 1110627, "1.15%"},
	}
	for _, tt := range tests {
		p, err := Percentage(tt.exposure, tt.population)
		require.NoError(t, err)
		assert.Equal(t, tt.want, FormatPercent(p))
	}

	_, err := Percentage(1, 0)
	assert.True(t, IsDataError(err))
	_, err = Percentage(1, -5)
	assert.True(t, IsDataError(err))
}

func TestSummarize_SingleAgglomeration(t *testing.T) {
	e := newEngine()
	s, err := e.Summarize(model.NewDataset([]model.Record{rec("A", 100, 0, 5, 5)}))
	require.NoError(t, err)

	assert.Equal(t, 5, s.Columns)
	assert.Equal(t, 1, s.Rows)
	assert.Equal(t, int64(10), s.MostPopulated.Exposure)
	assert.Equal(t, "10.00%", FormatPercent(s.MostPopulated.Percentage))
	assert.Equal(t, "A", s.LeastPopulated.Location)
}

func TestNarrative(t *testing.T) {
	e := newEngine()
	s, err := e.Summarize(model.NewDataset([]model.Record{
		rec("Kilkenny", 105000, 0, 0, 210),
		rec("Dublin", 9300000, 100, 900, 92000),
	}))
	require.NoError(t, err)

	want := "The dataset has 5 columns and 2 rows. " +
		"The most populated agglomeration is Dublin with a population of 9300000, of whom 93000 (1.00%) are exposed to Lden >= 75dB noise from industry, railways and roads. " +
		"The least populated agglomeration is Kilkenny with a population of 105000, of whom 210 (0.20%) are exposed to Lden >= 75dB noise from industry, railways and roads."
	assert.Equal(t, want, Narrative(s))
}
