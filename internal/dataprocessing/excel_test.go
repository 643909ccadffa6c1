package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "draft.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadCombinedWorkbook(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Unnamed: 0_level_0_Rnd", "Unnamed: 1_level_0_Pick", "Unnamed: 2_level_0_Tm", "Unnamed: 3_level_0_Player", "Unnamed: 4_level_0_Pos", "Unnamed: 5_level_0_Age", "Misc_AP1", "Unnamed: 27_level_0_College/Univ", "Year"},
		{"1", "13", "STL", "Aaron Donald", "DT", "23", "8", "Pittsburgh", "2014"},
		{"Rnd", "Pick", "Tm", "Player", "Pos", "Age", "AP1", "College/Univ", "Year"},
		{"2", "47", "SEA", "Bobby Wagner", "ILB", "22", "6", "Utah St.", "2012"},
		{"7", "255", "NWE", "Some Player", "QB", "23", "0", "Nowhere St.", "2014"},
		{"3", "", "DAL", "", "WR", "", "0", "", "2014"},
	})

	players, err := LoadCombinedWorkbook(path, nil)
	require.NoError(t, err)
	require.Len(t, players, 3)

	assert.Equal(t, "aaron donald", players[0].NameNorm)
	assert.True(t, players[0].IsAllPro)
	assert.Equal(t, "LB", players[1].Position, "positions are normalized on load")
	assert.True(t, players[1].IsAllPro)
	assert.False(t, players[2].IsAllPro)
}

func TestLoadCombinedWorkbookRenamedHeaders(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"round", "pick", "team", "player_name", "position", "age", "ap1_count", "college", "year"},
		{"1", "1", "CIN", "Joe Burrow", "QB", "23", "0", "LSU", "2020"},
	})

	players, err := LoadCombinedWorkbook(path, nil)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "joe burrow", players[0].NameNorm)
}

func TestLoadCombinedWorkbookMissingColumn(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"round", "pick", "team", "player_name", "position"},
		{"1", "1", "CIN", "Joe Burrow", "QB"},
	})

	_, err := LoadCombinedWorkbook(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required column")
}
