package model

// RawField is one uncleaned column of a delimited row
type RawField struct {
	Name  string
	Value string
}

// RawRecord is a header-keyed row exactly as read from delimited text
type RawRecord []RawField

// Get returns the raw value stored under name
func (r RawRecord) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Field is one cleaned column
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value Value  `json:"value" yaml:"value"`
}

// Record is a cleaned row. Location and Population mirror the distinguished
// columns; Fields keeps every column in header order.
type Record struct {
	Location   string  `json:"location" yaml:"location"`
	Population Value   `json:"population" yaml:"population"`
	Fields     []Field `json:"fields" yaml:"fields"`
}

// Get returns the cleaned value stored under name
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Len returns the number of columns
func (r Record) Len() int { return len(r.Fields) }

// Columns returns the column names in header order
func (r Record) Columns() []string {
	cols := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		cols[i] = f.Name
	}
	return cols
}

// Raw converts the record back to its delimited-text form
func (r Record) Raw() RawRecord {
	raw := make(RawRecord, len(r.Fields))
	for i, f := range r.Fields {
		raw[i] = RawField{Name: f.Name, Value: f.Value.Raw()}
	}
	return raw
}

// Dataset is the ordered, read-only set of cleaned records
type Dataset struct {
	records []Record
}

// NewDataset wraps records; the slice is copied
func NewDataset(records []Record) *Dataset {
	cp := make([]Record, len(records))
	copy(cp, records)
	return &Dataset{records: cp}
}

// Len returns the number of records
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the i-th record in input order
func (d *Dataset) At(i int) Record { return d.records[i] }

// Records returns a copy of all records
func (d *Dataset) Records() []Record {
	cp := make([]Record, len(d.records))
	copy(cp, d.records)
	return cp
}

// Columns returns the column names of the first record, or nil when empty
func (d *Dataset) Columns() []string {
	if d.Len() == 0 {
		return nil
	}
	return d.records[0].Columns()
}
