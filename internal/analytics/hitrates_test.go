package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftpulse/internal/dataprocessing"
)

// cohort builds n players in the given round/position, the first allPros of
// which carry the flag.
func cohort(round int, position string, n, allPros int) []dataprocessing.CohortPlayer {
	players := make([]dataprocessing.CohortPlayer, n)
	for i := range players {
		players[i] = dataprocessing.CohortPlayer{
			DraftPick: dataprocessing.DraftPick{
				Year:     2015,
				Round:    round,
				Pick:     (round-1)*32 + i + 1,
				Position: position,
			},
			IsAllPro: i < allPros,
		}
	}
	return players
}

func TestHitRatesByRound(t *testing.T) {
	// A round with 32 picks and 6 All-Pros reports 18.75%.
	players := append(cohort(1, "QB", 32, 6), cohort(2, "WR", 32, 2)...)

	rates := HitRatesByRound(players)
	require.Len(t, rates, 2)

	assert.Equal(t, 1, rates[0].Round)
	assert.Equal(t, 6, rates[0].AllProCount)
	assert.Equal(t, 32, rates[0].TotalPlayers)
	assert.InDelta(t, 0.1875, rates[0].HitRate, 1e-9)

	assert.Equal(t, 2, rates[1].Round)
	assert.InDelta(t, 0.0625, rates[1].HitRate, 1e-9)
}

func TestHitRatesByRoundCountsConsistent(t *testing.T) {
	players := append(cohort(1, "QB", 20, 5), cohort(3, "LB", 45, 3)...)

	for _, r := range HitRatesByRound(players) {
		assert.InDelta(t, float64(r.AllProCount)/float64(r.TotalPlayers), r.HitRate, 1e-9)
	}
}

func TestHitRatesByPositionThresholdAndOrder(t *testing.T) {
	players := append(cohort(1, "EDGE", 25, 10), cohort(1, "QB", 30, 6)...)
	players = append(players, cohort(1, "K", 5, 1)...) // below threshold

	rates := HitRatesByPosition(players, 20)
	require.Len(t, rates, 2)

	assert.Equal(t, "EDGE", rates[0].Position, "sorted descending by rate")
	assert.Equal(t, "QB", rates[1].Position)
	for _, r := range rates {
		assert.GreaterOrEqual(t, r.TotalPlayers, 20)
	}
}

func TestHeatmapMasksSmallCells(t *testing.T) {
	players := append(cohort(1, "QB", 12, 3), cohort(2, "QB", 4, 1)...)
	players = append(players, cohort(1, "WR", 15, 3)...)

	hm := HeatmapByPositionRound(players, 10)
	require.Equal(t, []string{"QB", "WR"}, hm.Positions)
	require.Equal(t, []int{1, 2}, hm.Rounds)

	// QB round 1: 12 players, cell visible.
	require.NotNil(t, hm.Rates[0][0])
	assert.InDelta(t, 0.25, *hm.Rates[0][0], 1e-9)
	assert.Equal(t, 12, hm.Counts[0][0])

	// QB round 2: 4 players, masked but counted.
	assert.Nil(t, hm.Rates[0][1])
	assert.Equal(t, 4, hm.Counts[0][1])

	// WR round 2: no players at all.
	assert.Nil(t, hm.Rates[1][1])
	assert.Equal(t, 0, hm.Counts[1][1])
}

func TestHitRateByPickRollingMean(t *testing.T) {
	// Three picks, hit rates 1.0, 0.0, 0.5. Window 2 (behind 1, ahead 0):
	// rolling = [1.0, 0.5, 0.25].
	players := []dataprocessing.CohortPlayer{
		{DraftPick: dataprocessing.DraftPick{Pick: 1}, IsAllPro: true},
		{DraftPick: dataprocessing.DraftPick{Pick: 2}, IsAllPro: false},
		{DraftPick: dataprocessing.DraftPick{Pick: 3}, IsAllPro: true},
		{DraftPick: dataprocessing.DraftPick{Pick: 3}, IsAllPro: false},
	}

	rates := HitRateByPick(players, 2)
	require.Len(t, rates, 3)

	assert.InDelta(t, 1.0, rates[0].RollingHitRate, 1e-9)
	assert.InDelta(t, 0.5, rates[1].RollingHitRate, 1e-9)
	assert.InDelta(t, 0.25, rates[2].RollingHitRate, 1e-9)
}

func TestHitRateByPickSorted(t *testing.T) {
	players := append(cohort(2, "WR", 32, 2), cohort(1, "QB", 32, 6)...)
	rates := HitRateByPick(players, 10)

	for i := 1; i < len(rates); i++ {
		assert.Greater(t, rates[i].Pick, rates[i-1].Pick)
	}
}

func TestValueTable(t *testing.T) {
	// WR: r1 rate 0.2, r3-5 rate 0.1 -> ratio 0.5.
	players := append(cohort(1, "WR", 10, 2), cohort(4, "WR", 20, 2)...)
	// QB: r1 rate 0 -> undefined ratio, sorts last.
	players = append(players, cohort(1, "QB", 10, 0)...)
	players = append(players, cohort(3, "QB", 20, 1)...)
	// RB: r3-5 sample too small, dropped.
	players = append(players, cohort(1, "RB", 10, 1)...)
	players = append(players, cohort(5, "RB", 5, 1)...)

	rows := ValueTable(players, 5, 10)
	require.Len(t, rows, 2)

	assert.Equal(t, "WR", rows[0].Position)
	require.NotNil(t, rows[0].Ratio)
	assert.InDelta(t, 0.5, *rows[0].Ratio, 1e-9)

	assert.Equal(t, "QB", rows[1].Position)
	assert.Nil(t, rows[1].Ratio)
}

func TestSummarize(t *testing.T) {
	players := append(cohort(1, "QB", 32, 6), cohort(2, "WR", 32, 2)...)
	for i := range players {
		if players[i].Round == 2 {
			players[i].Year = 2018
		}
	}

	s := Summarize(players, 20)
	assert.Equal(t, 64, s.TotalPlayers)
	assert.Equal(t, 8, s.TotalAllPros)
	assert.InDelta(t, 0.1875, s.Round1HitRate, 1e-9)
	assert.Equal(t, "QB", s.BestPosition)
	assert.Equal(t, 2015, s.YearMin)
	assert.Equal(t, 2018, s.YearMax)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 20)
	assert.Zero(t, s.TotalPlayers)
	assert.Zero(t, s.Round1HitRate)
	assert.Empty(t, s.BestPosition)
}
