package dataprocessing

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pick(year, round, pickNo int, name, pos string) DraftPick {
	return DraftPick{
		Year:     year,
		Round:    round,
		Pick:     pickNo,
		Player:   name,
		Position: pos,
		NameNorm: NormalizeName(name),
	}
}

func selection(year int, name string) AllProSelection {
	return AllProSelection{Year: year, Player: name, NameNorm: NormalizeName(name)}
}

func TestMergeFlagsAllPros(t *testing.T) {
	picks := []DraftPick{
		pick(2014, 1, 13, "Aaron Donald", "DT"),
		pick(2014, 1, 22, "Johnny Manziel", "QB"),
		pick(2016, 5, 165, "Tyreek Hill", "WR"),
	}
	selections := []AllProSelection{
		selection(2018, "Aaron Donald"),
		selection(2020, "Tyreek Hill"),
	}

	merged := Merge(picks, selections)
	require.Len(t, merged, len(picks), "merge must never drop a draftee")

	assert.True(t, merged[0].IsAllPro)
	assert.False(t, merged[1].IsAllPro)
	assert.True(t, merged[2].IsAllPro)
}

func TestMergeIgnoresSelectionYear(t *testing.T) {
	// The flag answers "did this player ever make All-Pro", so a selection
	// from any season counts.
	picks := []DraftPick{pick(2010, 1, 6, "Russell Okung", "OT")}
	selections := []AllProSelection{selection(2024, "Russell Okung")}

	merged := Merge(picks, selections)
	assert.True(t, merged[0].IsAllPro)
}

func TestMergeEmptyAllPro(t *testing.T) {
	picks := []DraftPick{pick(2014, 7, 250, "Mr Irrelevant", "RB")}
	merged := Merge(picks, nil)
	require.Len(t, merged, 1)
	assert.False(t, merged[0].IsAllPro)
}

func TestFilterCohort(t *testing.T) {
	players := Merge([]DraftPick{
		pick(2009, 1, 1, "Matthew Stafford", "QB"),
		pick(2010, 1, 6, "Russell Okung", "OT"),
		pick(2021, 1, 12, "Micah Parsons", "LB"),
		pick(2022, 1, 1, "Travon Walker", "DE"),
	}, nil)

	cohort := FilterCohort(players, 2010, 2021)
	require.Len(t, cohort, 2)
	for _, p := range cohort {
		assert.GreaterOrEqual(t, p.Year, 2010)
		assert.LessOrEqual(t, p.Year, 2021)
	}
}

func TestValidateKnownAllPros(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	// Build a dataset covering a few known All-Pros, one unflagged.
	picks := []DraftPick{
		pick(2014, 1, 13, "Aaron Donald", "DT"),
		pick(2017, 1, 10, "Patrick Mahomes", "QB"),
	}
	selections := []AllProSelection{selection(2018, "Aaron Donald")}
	players := Merge(picks, selections)

	issues := ValidateKnownAllPros(logger, players)

	byName := make(map[string]ValidationIssue)
	for _, issue := range issues {
		byName[issue.Name] = issue
	}

	assert.NotContains(t, byName, "aaron donald")
	require.Contains(t, byName, "patrick mahomes")
	assert.Equal(t, "missing is_allpro flag", byName["patrick mahomes"].Reason)
	// Players outside the dataset are reported as absent, not as flag bugs.
	require.Contains(t, byName, "drew brees")
	assert.Equal(t, "not in draft data", byName["drew brees"].Reason)
}
