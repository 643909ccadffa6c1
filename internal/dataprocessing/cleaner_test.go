package dataprocessing

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRawCSV(t *testing.T, path string, header []string, records [][]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	require.NoError(t, w.Write(header))
	require.NoError(t, w.WriteAll(records))
	w.Flush()
	require.NoError(t, w.Error())
}

var rawDraftHeader = []string{"year", "round", "pick", "team", "player_name", "position", "age", "college"}
var rawAllProHeader = []string{"year", "player_name", "position", "team"}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Aaron Donald", "aaron donald"},
		{"Ja'Marr Chase", "jamarr chase"},
		{"Odell Beckham Jr.", "odell beckham"},
		{"Robert Griffin III", "robert griffin"},
		{"Kenneth Walker  III ", "kenneth walker"},
		{"D.K. Metcalf", "dk metcalf"},
		{"Calvin Johnson HOF", "calvin johnson"},
		{"  Patrick   Mahomes  ", "patrick mahomes"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.input), "input %q", tt.input)
	}
}

func TestNormalizePosition(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"OLB", "LB"},
		{"ILB", "LB"},
		{"MLB", "LB"},
		{"FB", "RB"},
		{"FS", "S"},
		{"SS", "S"},
		{"LT", "OT"},
		{"RG", "OG"},
		{"NT", "DT"},
		{"QB", "QB"},
		{" WR ", "WR"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePosition(tt.input), "input %q", tt.input)
	}
}

func TestCleanDraft(t *testing.T) {
	rawDir := t.TempDir()

	writeRawCSV(t, filepath.Join(rawDir, "draft_2014.csv"), rawDraftHeader, [][]string{
		{"2014", "1", "13", "STL", "Aaron Donald", "DT", "23", "Pittsburgh"},
		{"2014", "Rnd", "Pick", "Tm", "Player", "Pos", "Age", "College/Univ"}, // repeated header row
		{"2014", "2", "53", "GNB", "Davante Adams", "WR", "21", "Fresno St."},
		{"2014", "3", "", "NE", "", "QB", "", ""}, // missing player name
		{"2014", "x", "99", "DAL", "Bad Row", "OT", "22", ""},
	})
	writeRawCSV(t, filepath.Join(rawDir, "draft_2015.csv"), rawDraftHeader, [][]string{
		{"2015", "1", "1", "TAM", "Jameis Winston", "QB", "21", "Florida St."},
	})

	picks, err := NewCleaner(nil).CleanDraft(rawDir)
	require.NoError(t, err)
	require.Len(t, picks, 3)

	assert.Equal(t, "aaron donald", picks[0].NameNorm)
	assert.Equal(t, 13, picks[0].Pick)
	assert.Equal(t, "DT", picks[0].Position)
	assert.Equal(t, 2015, picks[2].Year)
}

func TestCleanDraftNoFiles(t *testing.T) {
	_, err := NewCleaner(nil).CleanDraft(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no draft CSV files")
}

func TestCleanAllProDeduplicates(t *testing.T) {
	rawDir := t.TempDir()

	writeRawCSV(t, filepath.Join(rawDir, "allpro_2018.csv"), rawAllProHeader, [][]string{
		{"2018", "Aaron Donald", "DT", "LAR"},
		{"2018", "Aaron Donald", "DT", "LAR"}, // duplicate: listed on two team tables
		{"2018", "Bobby Wagner", "LB", "SEA"},
		{"2018", "", "QB", ""}, // no name
	})
	writeRawCSV(t, filepath.Join(rawDir, "allpro_2019.csv"), rawAllProHeader, [][]string{
		{"2019", "Aaron Donald", "DT", "LAR"},
	})

	selections, err := NewCleaner(nil).CleanAllPro(rawDir)
	require.NoError(t, err)
	require.Len(t, selections, 3)

	// Invariant: no duplicate (normalized name, year) pairs survive.
	type key struct {
		name string
		year int
	}
	seen := make(map[key]bool)
	for _, s := range selections {
		k := key{s.NameNorm, s.Year}
		assert.False(t, seen[k], "duplicate pair %v", k)
		seen[k] = true
	}
}

func TestCleanDraftPositionNormalization(t *testing.T) {
	rawDir := t.TempDir()
	writeRawCSV(t, filepath.Join(rawDir, "draft_2012.csv"), rawDraftHeader, [][]string{
		{"2012", "2", "47", "SEA", "Bobby Wagner", "ILB", "22", "Utah St."},
		{"2012", "4", "106", "WAS", "Kirk Cousins", "QB", "23", "Michigan St."},
	})

	picks, err := NewCleaner(nil).CleanDraft(rawDir)
	require.NoError(t, err)
	require.Len(t, picks, 2)
	assert.Equal(t, "LB", picks[0].Position)
	assert.Equal(t, "QB", picks[1].Position)
}
