package master

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/types"
)

type fakeSource struct {
	records map[string][]types.Record
	err     error
	calls   int
}

func (f *fakeSource) MasterRecords(_ context.Context, source string) ([]types.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[source], nil
}

func buyerField() schema.FieldDescriptor {
	return schema.FieldDescriptor{
		Name: "buyer", Label: "Buyer", Type: schema.FieldMasterDropdown,
		MasterSource: "buyer_master", MasterDisplayField: "buyerName",
	}
}

func TestResolve_LabelsFromDisplayField(t *testing.T) {
	src := &fakeSource{records: map[string][]types.Record{
		"buyer_master": {
			{"id": "b1", "buyerName": "Acme Exports"},
			{"id": "b2", "buyerName": "Globex"},
		},
	}}
	r := NewResolver(src, zerolog.Nop())

	opts := r.Resolve(context.Background(), buyerField())
	require.Len(t, opts, 2)
	assert.Equal(t, types.Option{ID: "b1", Label: "Acme Exports"}, opts[0])
	assert.Equal(t, types.Option{ID: "b2", Label: "Globex"}, opts[1])
}

func TestResolve_DisplayFieldFallback(t *testing.T) {
	fd := buyerField()
	records := []types.Record{
		{"id": "b1", "name": "By Name"},         // display field absent
		{"id": "b2"},                            // falls through to id
		{"buyerName": "No Id Row"},              // id falls back to label
		{},                                      // nothing usable, dropped
	}
	opts := Options(fd, records)
	require.Len(t, opts, 3)
	assert.Equal(t, types.Option{ID: "b1", Label: "By Name"}, opts[0])
	assert.Equal(t, types.Option{ID: "b2", Label: "b2"}, opts[1])
	assert.Equal(t, types.Option{ID: "No Id Row", Label: "No Id Row"}, opts[2])
}

func TestResolve_SourceErrorDegradesToEmpty(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	r := NewResolver(src, zerolog.Nop())

	opts := r.Resolve(context.Background(), buyerField())
	assert.NotNil(t, opts)
	assert.Empty(t, opts)
}

func TestResolveAll_FetchesEachSourceOnce(t *testing.T) {
	sc := &schema.Schema{
		ID:   "s",
		Name: "S",
		Fields: []schema.FieldDescriptor{
			{Name: "buyer", Type: schema.FieldMasterDropdown, MasterSource: "buyer_master", MasterDisplayField: "buyerName", Order: 0},
			{Name: "altBuyer", Type: schema.FieldMasterDropdown, MasterSource: "buyer_master", MasterDisplayField: "buyerName", Order: 1},
			{Name: "color", Type: schema.FieldMasterDropdown, MasterSource: "color_master", MasterDisplayField: "colorName", Order: 2},
			{Name: "notes", Type: schema.FieldText, Order: 3},
		},
	}
	src := &fakeSource{records: map[string][]types.Record{
		"buyer_master": {{"id": "b1", "buyerName": "Acme"}},
		"color_master": {{"id": "c1", "colorName": "Navy"}},
	}}
	r := NewResolver(src, zerolog.Nop())

	got := r.ResolveAll(context.Background(), sc)
	assert.Equal(t, 2, src.calls)
	require.Len(t, got, 2)
	assert.Len(t, got["buyer_master"], 1)
	assert.Len(t, got["color_master"], 1)
}
