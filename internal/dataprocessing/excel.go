package dataprocessing

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// workbookColumns maps PFR's flattened multi-level export headers onto the
// standard schema. The combined workbook already carries AP1 counts, so it
// yields the merged dataset without scraping.
var workbookColumns = map[string]string{
	"Unnamed: 0_level_0_Rnd":           "round",
	"Unnamed: 1_level_0_Pick":          "pick",
	"Unnamed: 2_level_0_Tm":            "team",
	"Unnamed: 3_level_0_Player":        "player_name",
	"Unnamed: 4_level_0_Pos":           "position",
	"Unnamed: 5_level_0_Age":           "age",
	"Misc_AP1":                         "ap1_count",
	"Unnamed: 27_level_0_College/Univ": "college",
	"Year":                             "year",
}

// LoadCombinedWorkbook reads a combined NFL draft Excel export and returns
// the merged dataset directly: a row's is_allpro flag is set when its AP1
// count is positive.
func LoadCombinedWorkbook(path string, logger *slog.Logger) ([]CohortPlayer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	index, err := mapWorkbookHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var players []CohortPlayer
	var dropped int
	for _, row := range rows[1:] {
		player, ok := parseWorkbookRow(row, index)
		if !ok {
			dropped++
			continue
		}
		players = append(players, player)
	}

	logger.Info("loaded combined workbook",
		slog.String("sheet", sheets[0]),
		slog.Int("rows", len(players)),
		slog.Int("dropped", dropped))

	return players, nil
}

// mapWorkbookHeader resolves standard column names to cell indices. Both the
// raw PFR export headers and already-renamed headers are accepted.
func mapWorkbookHeader(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if mapped, ok := workbookColumns[name]; ok {
			name = mapped
		}
		index[strings.ToLower(name)] = i
	}

	for _, required := range []string{"round", "pick", "team", "player_name", "position", "ap1_count", "year"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("workbook is missing required column %q", required)
		}
	}
	return index, nil
}

func parseWorkbookRow(row []string, index map[string]int) (CohortPlayer, bool) {
	cell := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	// Repeated PFR header rows surface as round == "Rnd".
	if cell("round") == "Rnd" {
		return CohortPlayer{}, false
	}
	player := cell("player_name")
	if player == "" {
		return CohortPlayer{}, false
	}

	round, err := strconv.Atoi(cell("round"))
	if err != nil {
		return CohortPlayer{}, false
	}
	pick, err := strconv.Atoi(cell("pick"))
	if err != nil {
		return CohortPlayer{}, false
	}
	year, err := strconv.Atoi(cell("year"))
	if err != nil {
		return CohortPlayer{}, false
	}

	// Header remnants leave the string "AP1" here; treat anything
	// non-numeric as zero.
	ap1 := 0
	if n, err := strconv.Atoi(cell("ap1_count")); err == nil {
		ap1 = n
	}

	return CohortPlayer{
		DraftPick: DraftPick{
			Year:     year,
			Round:    round,
			Pick:     pick,
			Team:     cell("team"),
			Player:   player,
			Position: NormalizePosition(cell("position")),
			Age:      cell("age"),
			College:  cell("college"),
			NameNorm: NormalizeName(player),
		},
		IsAllPro: ap1 > 0,
	}, true
}
