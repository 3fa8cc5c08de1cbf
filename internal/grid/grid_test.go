package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgworks/dynaform/internal/schema"
	"github.com/mfgworks/dynaform/internal/types"
)

func gridSchema() *schema.Schema {
	return &schema.Schema{
		ID:   "machine_master",
		Name: "Machine Master",
		Fields: []schema.FieldDescriptor{
			{ID: "1", Name: "name", Label: "Name", Type: schema.FieldText, Order: 0},
			{ID: "2", Name: "department", Label: "Department", Type: schema.FieldDropdown, Order: 1},
			{ID: "3", Name: "shift", Label: "Shift", Type: schema.FieldDropdown, Order: 2},
			{ID: "4", Name: "capacity", Label: "Capacity", Type: schema.FieldNumber, Order: 3},
			{ID: "5", Name: "installed", Label: "Installed", Type: schema.FieldDate, Order: 4},
		},
	}
}

func gridRecords() []types.Record {
	return []types.Record{
		{"id": "r1", "name": "Cutter A", "department": "A", "shift": "day", "capacity": float64(40), "installed": "2021-04-02"},
		{"id": "r2", "name": "Cutter B", "department": "A", "shift": "night", "capacity": float64(25), "installed": "2020-01-15"},
		{"id": "r3", "name": "Dyer", "department": "B", "shift": "day", "capacity": float64(110), "installed": "2022-08-30"},
		{"id": "r4", "name": "Presser", "department": "B", "shift": "day", "capacity": float64(9), "installed": "2019-11-01"},
		{"id": "r5", "name": "Stitcher", "department": "C", "shift": "night", "capacity": float64(60), "installed": "2023-02-20"},
	}
}

func TestApply_SearchMatchesAnyField(t *testing.T) {
	res := Apply(gridSchema(), gridRecords(), Query{Search: "cutter"})
	assert.Len(t, res.Rows, 2)

	// Search hits non-text fields through their stringified value.
	res = Apply(gridSchema(), gridRecords(), Query{Search: "110"})
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Dyer", res.Rows[0]["name"])

	res = Apply(gridSchema(), gridRecords(), Query{Search: ""})
	assert.Len(t, res.Rows, 5)

	res = Apply(gridSchema(), gridRecords(), Query{Search: "zzz"})
	assert.Empty(t, res.Rows)
}

func TestApply_FiltersConjoin(t *testing.T) {
	q := Query{Filters: map[string]string{"department": "a", "shift": "day"}}
	res := Apply(gridSchema(), gridRecords(), q)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Cutter A", res.Rows[0]["name"])
}

func TestApply_FilterOnMissingValueFails(t *testing.T) {
	records := append(gridRecords(), types.Record{"id": "r6", "name": "Orphan"})
	res := Apply(gridSchema(), records, Query{Filters: map[string]string{"department": "a"}})
	for _, rec := range res.Rows {
		assert.NotEqual(t, "Orphan", rec["name"])
	}
}

func TestApply_RowCountMonotone(t *testing.T) {
	sc := gridSchema()
	records := gridRecords()

	all := Apply(sc, records, Query{})
	searched := Apply(sc, records, Query{Search: "day"})
	filtered := Apply(sc, records, Query{Search: "day", Filters: map[string]string{"department": "b"}})

	assert.LessOrEqual(t, len(all.Rows), len(records))
	assert.LessOrEqual(t, len(searched.Rows), len(all.Rows))
	assert.LessOrEqual(t, len(filtered.Rows), len(searched.Rows))

	// Re-applying the same filter to its own output changes nothing.
	again := Apply(sc, filtered.Rows, Query{Search: "day", Filters: map[string]string{"department": "b"}})
	assert.Equal(t, filtered.Rows, again.Rows)
}

func TestApply_SortNumericAndString(t *testing.T) {
	sc := gridSchema()
	records := gridRecords()

	res := Apply(sc, records, Query{Sort: Sort{Field: "capacity", Direction: DirectionAsc}})
	got := make([]float64, len(res.Rows))
	for i, rec := range res.Rows {
		got[i] = rec["capacity"].(float64)
	}
	assert.Equal(t, []float64{9, 25, 40, 60, 110}, got)

	res = Apply(sc, records, Query{Sort: Sort{Field: "name", Direction: DirectionDesc}})
	assert.Equal(t, "Stitcher", res.Rows[0]["name"])
	assert.Equal(t, "Cutter A", res.Rows[len(res.Rows)-1]["name"])
}

func TestApply_SortStableOnTies(t *testing.T) {
	res := Apply(gridSchema(), gridRecords(), Query{Sort: Sort{Field: "department", Direction: DirectionAsc}})
	// Within department A, original order r1 then r2 must hold.
	require.Len(t, res.Rows, 5)
	assert.Equal(t, "r1", res.Rows[0]["id"])
	assert.Equal(t, "r2", res.Rows[1]["id"])
}

func TestSort_Cycle(t *testing.T) {
	s := Sort{}
	s = s.Cycle("name")
	assert.Equal(t, Sort{Field: "name", Direction: DirectionAsc}, s)
	s = s.Cycle("name")
	assert.Equal(t, Sort{Field: "name", Direction: DirectionDesc}, s)
	s = s.Cycle("name")
	assert.Equal(t, Sort{}, s)

	// Clicking a different column starts a fresh ascending sort.
	s = Sort{Field: "name", Direction: DirectionDesc}.Cycle("department")
	assert.Equal(t, Sort{Field: "department", Direction: DirectionAsc}, s)
}

func TestApply_GroupScenario(t *testing.T) {
	res := Apply(gridSchema(), gridRecords(), Query{GroupBy: "department"})
	require.True(t, res.Grouped)
	require.Len(t, res.Groups, 3)
	assert.Equal(t, "A", res.Groups[0].Key)
	assert.Len(t, res.Groups[0].Rows, 2)
	assert.Equal(t, "B", res.Groups[1].Key)
	assert.Len(t, res.Groups[1].Rows, 2)
	assert.Equal(t, "C", res.Groups[2].Key)
	assert.Len(t, res.Groups[2].Rows, 1)
}

func TestApply_GroupPartitionsRows(t *testing.T) {
	q := Query{Filters: map[string]string{"shift": "day"}, GroupBy: "department"}
	res := Apply(gridSchema(), gridRecords(), q)

	var regrouped []types.Record
	for _, g := range res.Groups {
		regrouped = append(regrouped, g.Rows...)
	}
	assert.ElementsMatch(t, res.Rows, regrouped)
}

func TestApply_GroupMissingValueBucket(t *testing.T) {
	records := append(gridRecords(), types.Record{"id": "r6", "name": "Orphan", "department": ""})
	res := Apply(gridSchema(), records, Query{GroupBy: "department"})
	require.Len(t, res.Groups, 4)
	assert.Equal(t, "Ungrouped", res.Groups[3].Key)
}

func TestApply_SubGrouping(t *testing.T) {
	res := Apply(gridSchema(), gridRecords(), Query{GroupBy: "department", SubGroupBy: "shift"})
	require.Len(t, res.Groups, 3)

	deptA := res.Groups[0]
	assert.Empty(t, deptA.Rows)
	require.Len(t, deptA.Sub, 2)
	assert.Equal(t, "day", deptA.Sub[0].Key)
	assert.Equal(t, "night", deptA.Sub[1].Key)

	// Sub-group identical to group is ignored.
	res = Apply(gridSchema(), gridRecords(), Query{GroupBy: "department", SubGroupBy: "department"})
	for _, g := range res.Groups {
		assert.Empty(t, g.Sub)
		assert.NotEmpty(t, g.Rows)
	}
}

func TestApply_GroupingOnlyCategorical(t *testing.T) {
	// Numeric and date fields never group.
	for _, field := range []string{"capacity", "installed", "nonexistent"} {
		res := Apply(gridSchema(), gridRecords(), Query{GroupBy: field})
		assert.False(t, res.Grouped, "groupBy %q", field)
		assert.Empty(t, res.Groups)
	}
}

func TestApply_SortOrderPreservedInGroups(t *testing.T) {
	q := Query{Sort: Sort{Field: "capacity", Direction: DirectionDesc}, GroupBy: "department"}
	res := Apply(gridSchema(), gridRecords(), q)

	// Group order follows first appearance in the sorted row set.
	require.Len(t, res.Groups, 3)
	assert.Equal(t, "B", res.Groups[0].Key)

	deptB := res.Groups[0]
	require.Len(t, deptB.Rows, 2)
	assert.Equal(t, float64(110), deptB.Rows[0]["capacity"])
	assert.Equal(t, float64(9), deptB.Rows[1]["capacity"])
}
