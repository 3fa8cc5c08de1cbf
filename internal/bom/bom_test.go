package bom

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfgworks/dynaform/internal/types"
)

func testPair() *Pair {
	cfg := DefaultFormConfig()
	return NewPair(cfg.FabricSchema(), cfg.TrimsSchema())
}

func TestNewPair_OneTablePerSide(t *testing.T) {
	p := testPair()
	require.Len(t, p.Fabric, 1)
	require.Len(t, p.Trims, 1)
	assert.Equal(t, "BOM Table 1", p.Fabric[0].Name)
	assert.Equal(t, "Trims for BOM Table 1", p.Trims[0].Name)
	assert.Equal(t, p.Fabric[0].ID, p.Trims[0].ID)

	// Each new table starts with one default row, serial 1.
	require.Len(t, p.Fabric[0].Rows, 1)
	require.Len(t, p.Trims[0].Rows, 1)
	assert.Equal(t, float64(1), p.Fabric[0].Rows[0]["srNo"])
}

func TestAddTable_CreatesCompanion(t *testing.T) {
	p := testPair()
	id := p.AddTable()
	require.Len(t, p.Fabric, 2)
	require.Len(t, p.Trims, 2)
	assert.Equal(t, "BOM Table 2", p.Fabric[1].Name)
	assert.Equal(t, "Trims for BOM Table 2", p.Trims[1].Name)
	assert.Equal(t, id, p.Fabric[1].ID)
	assert.Equal(t, id, p.Trims[1].ID)
	assert.Len(t, p.Fabric[1].Rows, 1)
	assert.Len(t, p.Trims[1].Rows, 1)
}

func TestAddCompanionTable_TrimsOnly(t *testing.T) {
	p := testPair()
	id := p.AddCompanionTable()
	require.Len(t, p.Fabric, 1)
	require.Len(t, p.Trims, 2)
	assert.Equal(t, "Trims Table 2", p.Trims[1].Name)
	assert.Equal(t, id, p.Trims[1].ID)
	assert.Len(t, p.Trims[1].Rows, 1)

	// A trims-only table deletes alone, even with a single pair left.
	require.NoError(t, p.DeleteTable(id))
	assert.Len(t, p.Fabric, 1)
	assert.Len(t, p.Trims, 1)
}

func TestAddTable_NamesFollowIDs(t *testing.T) {
	p := testPair()
	p.AddTable()
	require.NoError(t, p.DeleteTable(1))

	// The replacement takes a fresh id, so its name cannot collide with
	// the surviving "BOM Table 2".
	id := p.AddTable()
	assert.Equal(t, 3, id)
	assert.Equal(t, "BOM Table 2", p.Fabric[0].Name)
	assert.Equal(t, "BOM Table 3", p.Fabric[1].Name)
	assert.Equal(t, "Trims for BOM Table 3", p.Trims[1].Name)
}

func TestCopyTable_ClonesBothSides(t *testing.T) {
	p := testPair()
	require.NoError(t, p.SetCell(SideFabric, 1, 0, "comboName", "Main"))
	require.NoError(t, p.SetCell(SideTrims, 1, 0, "qtyPerPc", float64(4)))

	require.NoError(t, p.CopyTable(1))
	require.Len(t, p.Fabric, 2)
	require.Len(t, p.Trims, 2)

	dupFabric, dupTrims := p.Fabric[1], p.Trims[1]
	assert.Equal(t, "BOM Table 1 (Copy)", dupFabric.Name)
	assert.Equal(t, "Trims for BOM Table 1 (Copy)", dupTrims.Name)
	assert.Equal(t, dupFabric.ID, dupTrims.ID)
	require.Len(t, dupFabric.Rows, 1)
	assert.Equal(t, "Main", dupFabric.Rows[0]["comboName"])
	assert.Equal(t, float64(4), dupTrims.Rows[0]["qtyPerPc"])

	// Copies are deep: editing the duplicate leaves the original alone.
	require.NoError(t, p.SetCell(SideFabric, dupFabric.ID, 0, "comboName", "Pocket"))
	assert.Equal(t, "Main", p.Fabric[0].Rows[0]["comboName"])
}

func TestDeleteTable_RemovesPair(t *testing.T) {
	p := testPair()
	id := p.AddTable()
	require.NoError(t, p.DeleteTable(id))
	assert.Len(t, p.Fabric, 1)
	assert.Len(t, p.Trims, 1)
}

func TestDeleteTable_LastTableGuard(t *testing.T) {
	p := testPair()
	err := p.DeleteTable(1)
	assert.ErrorIs(t, err, ErrLastTable)
	// Failed delete changes nothing.
	assert.Len(t, p.Fabric, 1)
	assert.Len(t, p.Trims, 1)
}

func TestAddThenDeleteRoundTrip(t *testing.T) {
	p := testPair()
	before, err := json.Marshal(p)
	require.NoError(t, err)

	id := p.AddTable()
	require.NoError(t, p.DeleteTable(id))

	after, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestRows_SerialRenumbering(t *testing.T) {
	p := testPair()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.AddRow(SideFabric, 1))
	}
	rows := p.Fabric[0].Rows
	require.Len(t, rows, 4)
	for i, row := range rows {
		assert.Equal(t, float64(i+1), row["srNo"])
	}

	require.NoError(t, p.DeleteRow(SideFabric, 1, 0))
	rows = p.Fabric[0].Rows
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, float64(i+1), row["srNo"])
	}
}

func TestCopyRow_InsertsAfterOriginal(t *testing.T) {
	p := testPair()
	require.NoError(t, p.AddRow(SideTrims, 1))
	require.NoError(t, p.SetCell(SideTrims, 1, 0, "qtyPerPc", float64(4)))

	require.NoError(t, p.CopyRow(SideTrims, 1, 0))
	rows := p.Trims[0].Rows
	require.Len(t, rows, 3)
	assert.Equal(t, float64(4), rows[1]["qtyPerPc"])
	for i, row := range rows {
		assert.Equal(t, float64(i+1), row["srNo"])
	}
}

func TestRowOps_Errors(t *testing.T) {
	p := testPair()
	assert.ErrorIs(t, p.AddRow(SideFabric, 99), ErrTableNotFound)
	assert.ErrorIs(t, p.DeleteRow(SideFabric, 1, 5), ErrRowOutOfRange)
	assert.ErrorIs(t, p.CopyRow(SideTrims, 1, -1), ErrRowOutOfRange)
	assert.ErrorIs(t, p.CopyTable(99), ErrTableNotFound)
	p.AddTable()
	assert.ErrorIs(t, p.DeleteTable(99), ErrTableNotFound)
}

func TestSetCell_RecalculatesRow(t *testing.T) {
	p := testPair()
	require.NoError(t, p.SetCell(SideFabric, 1, 0, "consumption", float64(2)))
	require.NoError(t, p.SetCell(SideFabric, 1, 0, "wastagePct", float64(10)))
	assert.Equal(t, 2.2, p.Fabric[0].Rows[0]["requirement"])
}

func TestComboOptions_DistinctFirstSeen(t *testing.T) {
	p := testPair()
	for i := 0; i < 3; i++ {
		require.NoError(t, p.AddRow(SideFabric, 1))
	}
	require.NoError(t, p.SetCell(SideFabric, 1, 0, "comboName", "Main"))
	require.NoError(t, p.SetCell(SideFabric, 1, 1, "comboName", "Main"))
	require.NoError(t, p.SetCell(SideFabric, 1, 2, "comboName", "Pocket"))
	// Row 3 stays empty.

	assert.Equal(t, []string{"Main", "Pocket"}, p.ComboOptions(1, "comboName"))
}

func TestComboOptions_ScopedToOneTable(t *testing.T) {
	p := testPair()
	id := p.AddTable()
	require.NoError(t, p.SetCell(SideFabric, 1, 0, "comboName", "Main"))
	require.NoError(t, p.SetCell(SideFabric, id, 0, "comboName", "Collar"))

	// Each table offers only its own combos to its companion.
	assert.Equal(t, []string{"Main"}, p.ComboOptions(1, "comboName"))
	assert.Equal(t, []string{"Collar"}, p.ComboOptions(id, "comboName"))
	assert.Empty(t, p.ComboOptions(99, "comboName"))
}

func TestPair_JSONRoundTrip(t *testing.T) {
	p := testPair()
	require.NoError(t, p.SetCell(SideFabric, 1, 0, "comboName", "Main"))

	body, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"fabricTables"`)
	assert.Contains(t, string(body), `"trimsTables"`)
	assert.Contains(t, string(body), `"items"`)

	var back Pair
	require.NoError(t, json.Unmarshal(body, &back))
	cfg := DefaultFormConfig()
	back.Bind(cfg.FabricSchema(), cfg.TrimsSchema())
	require.Len(t, back.Fabric, 1)
	assert.Equal(t, "Main", back.Fabric[0].Rows[0]["comboName"])
	assert.Equal(t, []string{"Main"}, back.ComboOptions(1, "comboName"))
}

func TestDefaultFormConfig_SchemasValid(t *testing.T) {
	cfg := DefaultFormConfig()
	assert.NoError(t, cfg.HeaderSchema().Validate())
	assert.NoError(t, cfg.FabricSchema().Validate())
	assert.NoError(t, cfg.TrimsSchema().Validate())

	// Both row sides carry the serial and combo columns the coordinator
	// depends on.
	require.NotNil(t, cfg.FabricSchema().FieldByName("srNo"))
	require.NotNil(t, cfg.FabricSchema().FieldByName("comboName"))
	require.NotNil(t, cfg.TrimsSchema().FieldByName("comboName"))
}

func TestNextID_NeverReused(t *testing.T) {
	p := testPair()
	id2 := p.AddTable()
	require.NoError(t, p.DeleteTable(1))
	id3 := p.AddTable()
	assert.Greater(t, id3, id2)

	// Ids stay unique within each side and aligned across sides.
	for _, side := range [][]Table{p.Fabric, p.Trims} {
		seen := map[int]bool{}
		for _, tbl := range side {
			assert.False(t, seen[tbl.ID], "duplicate table id %d", tbl.ID)
			seen[tbl.ID] = true
		}
	}
	for i := range p.Fabric {
		assert.Equal(t, p.Fabric[i].ID, p.Trims[i].ID)
	}
}

func TestRecord_CloneIndependence(t *testing.T) {
	rec := types.Record{"sizes": []string{"S", "M"}}
	dup := rec.Clone()
	dup["sizes"].([]string)[0] = "XL"
	assert.Equal(t, "S", rec["sizes"].([]string)[0])
}
