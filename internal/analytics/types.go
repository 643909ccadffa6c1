package analytics

// RoundHitRate is the All-Pro hit rate for one draft round.
type RoundHitRate struct {
	Round        int     `json:"round"`
	AllProCount  int     `json:"allpro_count"`
	TotalPlayers int     `json:"total_players"`
	HitRate      float64 `json:"hit_rate"`
}

// PositionHitRate is the All-Pro hit rate for one position group.
type PositionHitRate struct {
	Position     string  `json:"position"`
	AllProCount  int     `json:"allpro_count"`
	TotalPlayers int     `json:"total_players"`
	HitRate      float64 `json:"hit_rate"`
}

// Heatmap is the position × round hit-rate pivot. Rates[i][j] is the rate
// for Positions[i] in Rounds[j]; cells below the sample threshold are nil so
// the dashboard can gray them out.
type Heatmap struct {
	Positions []string     `json:"positions"`
	Rounds    []int        `json:"rounds"`
	Rates     [][]*float64 `json:"rates"`
	Counts    [][]int      `json:"counts"`
}

// PickHitRate is the hit rate at one overall pick number, with a centered
// rolling mean to smooth the small per-pick samples.
type PickHitRate struct {
	Pick           int     `json:"pick"`
	AllProCount    int     `json:"allpro_count"`
	TotalPlayers   int     `json:"total_players"`
	HitRate        float64 `json:"hit_rate"`
	RollingHitRate float64 `json:"rolling_hit_rate"`
}

// ValueTableRow compares a position's mid-round (3–5) hit rate to its round
// 1 hit rate. Ratio is nil when the round 1 rate is zero.
type ValueTableRow struct {
	Position string   `json:"position"`
	R1Rate   float64  `json:"r1_rate"`
	R35Rate  float64  `json:"r35_rate"`
	Ratio    *float64 `json:"late_round_to_r1_ratio"`
	R1Count  int      `json:"r1_count"`
	R35Count int      `json:"r35_count"`
}

// Summary carries the dashboard KPI strip.
type Summary struct {
	TotalPlayers     int     `json:"total_players"`
	TotalAllPros     int     `json:"total_allpros"`
	Round1HitRate    float64 `json:"round1_hit_rate"`
	BestPosition     string  `json:"best_position"`
	BestPositionRate float64 `json:"best_position_rate"`
	YearMin          int     `json:"year_min"`
	YearMax          int     `json:"year_max"`
}
