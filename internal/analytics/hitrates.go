package analytics

import (
	"sort"

	"draftpulse/internal/dataprocessing"
)

type tally struct {
	allPro int
	total  int
}

func (t tally) rate() float64 {
	if t.total == 0 {
		return 0
	}
	return float64(t.allPro) / float64(t.total)
}

func (t *tally) add(isAllPro bool) {
	t.total++
	if isAllPro {
		t.allPro++
	}
}

// HitRatesByRound groups the cohort by draft round and computes the All-Pro
// hit rate per round, sorted by round.
func HitRatesByRound(players []dataprocessing.CohortPlayer) []RoundHitRate {
	tallies := make(map[int]*tally)
	for _, p := range players {
		t, ok := tallies[p.Round]
		if !ok {
			t = &tally{}
			tallies[p.Round] = t
		}
		t.add(p.IsAllPro)
	}

	out := make([]RoundHitRate, 0, len(tallies))
	for round, t := range tallies {
		out = append(out, RoundHitRate{
			Round:        round,
			AllProCount:  t.allPro,
			TotalPlayers: t.total,
			HitRate:      t.rate(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Round < out[j].Round })
	return out
}

// HitRatesByPosition groups by position, drops small samples, and sorts
// descending by hit rate. Ties break alphabetically so output is stable.
func HitRatesByPosition(players []dataprocessing.CohortPlayer, minPlayers int) []PositionHitRate {
	tallies := make(map[string]*tally)
	for _, p := range players {
		t, ok := tallies[p.Position]
		if !ok {
			t = &tally{}
			tallies[p.Position] = t
		}
		t.add(p.IsAllPro)
	}

	out := make([]PositionHitRate, 0, len(tallies))
	for pos, t := range tallies {
		if t.total < minPlayers {
			continue
		}
		out = append(out, PositionHitRate{
			Position:     pos,
			AllProCount:  t.allPro,
			TotalPlayers: t.total,
			HitRate:      t.rate(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].HitRate != out[j].HitRate {
			return out[i].HitRate > out[j].HitRate
		}
		return out[i].Position < out[j].Position
	})
	return out
}

// HeatmapByPositionRound pivots the cohort into a position × round grid.
// Cells with fewer than minCell players get a nil rate; their raw counts are
// still reported.
func HeatmapByPositionRound(players []dataprocessing.CohortPlayer, minCell int) Heatmap {
	type cellKey struct {
		pos   string
		round int
	}
	tallies := make(map[cellKey]*tally)
	posSet := make(map[string]bool)
	roundSet := make(map[int]bool)

	for _, p := range players {
		k := cellKey{p.Position, p.Round}
		t, ok := tallies[k]
		if !ok {
			t = &tally{}
			tallies[k] = t
		}
		t.add(p.IsAllPro)
		posSet[p.Position] = true
		roundSet[p.Round] = true
	}

	positions := make([]string, 0, len(posSet))
	for pos := range posSet {
		positions = append(positions, pos)
	}
	sort.Strings(positions)

	rounds := make([]int, 0, len(roundSet))
	for round := range roundSet {
		rounds = append(rounds, round)
	}
	sort.Ints(rounds)

	rates := make([][]*float64, len(positions))
	counts := make([][]int, len(positions))
	for i, pos := range positions {
		rates[i] = make([]*float64, len(rounds))
		counts[i] = make([]int, len(rounds))
		for j, round := range rounds {
			t, ok := tallies[cellKey{pos, round}]
			if !ok {
				continue
			}
			counts[i][j] = t.total
			if t.total >= minCell {
				rate := t.rate()
				rates[i][j] = &rate
			}
		}
	}

	return Heatmap{Positions: positions, Rounds: rounds, Rates: rates, Counts: counts}
}

// HitRateByPick groups by overall pick number and smooths with a centered
// rolling mean over the given window. Windows are truncated at the
// boundaries rather than padded, so every pick gets a smoothed value.
func HitRateByPick(players []dataprocessing.CohortPlayer, window int) []PickHitRate {
	if window <= 0 {
		window = 10
	}

	tallies := make(map[int]*tally)
	for _, p := range players {
		t, ok := tallies[p.Pick]
		if !ok {
			t = &tally{}
			tallies[p.Pick] = t
		}
		t.add(p.IsAllPro)
	}

	out := make([]PickHitRate, 0, len(tallies))
	for pickNo, t := range tallies {
		out = append(out, PickHitRate{
			Pick:         pickNo,
			AllProCount:  t.allPro,
			TotalPlayers: t.total,
			HitRate:      t.rate(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Pick < out[j].Pick })

	// Centered window: for row i the window covers rows [i-behind, i+ahead]
	// where behind = window/2 and ahead = window-1-behind, clamped at the
	// boundaries.
	behind := window / 2
	ahead := window - 1 - behind
	for i := range out {
		lo := i - behind
		if lo < 0 {
			lo = 0
		}
		hi := i + ahead
		if hi > len(out)-1 {
			hi = len(out) - 1
		}
		sum := 0.0
		for j := lo; j <= hi; j++ {
			sum += out[j].HitRate
		}
		out[i].RollingHitRate = sum / float64(hi-lo+1)
	}

	return out
}

// ValueTable compares rounds 3–5 hit rates to round 1 per position,
// surfacing positions where mid-round picks overperform. Positions below
// the sample gates are dropped; rows sort descending by ratio with
// undefined ratios (round 1 rate of zero) last.
func ValueTable(players []dataprocessing.CohortPlayer, r1Min, r35Min int) []ValueTableRow {
	r1 := make(map[string]*tally)
	r35 := make(map[string]*tally)

	for _, p := range players {
		switch {
		case p.Round == 1:
			t, ok := r1[p.Position]
			if !ok {
				t = &tally{}
				r1[p.Position] = t
			}
			t.add(p.IsAllPro)
		case p.Round >= 3 && p.Round <= 5:
			t, ok := r35[p.Position]
			if !ok {
				t = &tally{}
				r35[p.Position] = t
			}
			t.add(p.IsAllPro)
		}
	}

	var out []ValueTableRow
	for pos, t1 := range r1 {
		t35, ok := r35[pos]
		if !ok {
			continue
		}
		if t1.total < r1Min || t35.total < r35Min {
			continue
		}
		row := ValueTableRow{
			Position: pos,
			R1Rate:   t1.rate(),
			R35Rate:  t35.rate(),
			R1Count:  t1.total,
			R35Count: t35.total,
		}
		if row.R1Rate > 0 {
			ratio := row.R35Rate / row.R1Rate
			row.Ratio = &ratio
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].Ratio, out[j].Ratio
		switch {
		case ri == nil && rj == nil:
			return out[i].Position < out[j].Position
		case ri == nil:
			return false
		case rj == nil:
			return true
		case *ri != *rj:
			return *ri > *rj
		default:
			return out[i].Position < out[j].Position
		}
	})
	return out
}

// Summarize computes the KPI strip for the filtered cohort.
func Summarize(players []dataprocessing.CohortPlayer, minPlayers int) Summary {
	s := Summary{}
	if len(players) == 0 {
		return s
	}

	var r1 tally
	s.YearMin = players[0].Year
	s.YearMax = players[0].Year
	for _, p := range players {
		s.TotalPlayers++
		if p.IsAllPro {
			s.TotalAllPros++
		}
		if p.Round == 1 {
			r1.add(p.IsAllPro)
		}
		if p.Year < s.YearMin {
			s.YearMin = p.Year
		}
		if p.Year > s.YearMax {
			s.YearMax = p.Year
		}
	}
	s.Round1HitRate = r1.rate()

	if byPos := HitRatesByPosition(players, minPlayers); len(byPos) > 0 {
		s.BestPosition = byPos[0].Position
		s.BestPositionRate = byPos[0].HitRate
	}
	return s
}
