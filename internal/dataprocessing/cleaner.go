package dataprocessing

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Cleaner normalizes, deduplicates, and type-casts raw PFR data.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a cleaner. A nil logger falls back to slog.Default.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger.With(slog.String("component", "cleaner"))}
}

// CleanDraft concatenates all draft_YYYY.csv files under rawDir, drops PFR's
// repeated header rows and rows without a player name, casts the numeric
// columns, and normalizes positions and names.
func (c *Cleaner) CleanDraft(rawDir string) ([]DraftPick, error) {
	files, err := filepath.Glob(filepath.Join(rawDir, "draft_*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list draft files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no draft CSV files found in %s", rawDir)
	}
	sort.Strings(files)

	var picks []DraftPick
	var dropped int
	for _, file := range files {
		records, err := readCSVRecords(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		for _, rec := range records {
			pick, ok := cleanDraftRecord(rec)
			if !ok {
				dropped++
				continue
			}
			picks = append(picks, pick)
		}
	}

	c.logger.Info("cleaned draft data",
		slog.Int("files", len(files)),
		slog.Int("rows", len(picks)),
		slog.Int("dropped", dropped))

	return picks, nil
}

// cleanDraftRecord converts one raw CSV record into a DraftPick. Records
// are rejected when they are PFR's repeated header row, are missing the
// player name, or carry non-numeric round/pick/year cells.
func cleanDraftRecord(rec []string) (DraftPick, bool) {
	if len(rec) < 6 {
		return DraftPick{}, false
	}
	year, round, pick := rec[0], rec[1], rec[2]
	if strings.TrimSpace(round) == "Rnd" {
		return DraftPick{}, false
	}
	player := strings.TrimSpace(rec[4])
	if player == "" {
		return DraftPick{}, false
	}

	yearN, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return DraftPick{}, false
	}
	roundN, err := strconv.Atoi(strings.TrimSpace(round))
	if err != nil {
		return DraftPick{}, false
	}
	pickN, err := strconv.Atoi(strings.TrimSpace(pick))
	if err != nil {
		return DraftPick{}, false
	}

	age := ""
	if len(rec) > 6 {
		age = strings.TrimSpace(rec[6])
	}
	college := ""
	if len(rec) > 7 {
		college = strings.TrimSpace(rec[7])
	}

	return DraftPick{
		Year:     yearN,
		Round:    roundN,
		Pick:     pickN,
		Team:     strings.TrimSpace(rec[3]),
		Player:   player,
		Position: NormalizePosition(rec[5]),
		Age:      age,
		College:  college,
		NameNorm: NormalizeName(player),
	}, true
}

// CleanAllPro concatenates all allpro_YYYY.csv files under rawDir, drops
// rows without a player name, and deduplicates on (normalized name, year).
func (c *Cleaner) CleanAllPro(rawDir string) ([]AllProSelection, error) {
	files, err := filepath.Glob(filepath.Join(rawDir, "allpro_*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to list allpro files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no allpro CSV files found in %s", rawDir)
	}
	sort.Strings(files)

	type key struct {
		name string
		year int
	}
	seen := make(map[key]bool)

	var selections []AllProSelection
	var dropped, duplicates int
	for _, file := range files {
		records, err := readCSVRecords(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file, err)
		}
		for _, rec := range records {
			if len(rec) < 3 {
				dropped++
				continue
			}
			player := strings.TrimSpace(rec[1])
			if player == "" {
				dropped++
				continue
			}
			year, err := strconv.Atoi(strings.TrimSpace(rec[0]))
			if err != nil {
				dropped++
				continue
			}

			norm := NormalizeName(player)
			k := key{name: norm, year: year}
			if seen[k] {
				duplicates++
				continue
			}
			seen[k] = true

			team := ""
			if len(rec) > 3 {
				team = strings.TrimSpace(rec[3])
			}
			selections = append(selections, AllProSelection{
				Year:     year,
				Player:   player,
				Position: strings.TrimSpace(rec[2]),
				Team:     team,
				NameNorm: norm,
			})
		}
	}

	c.logger.Info("cleaned all-pro data",
		slog.Int("files", len(files)),
		slog.Int("rows", len(selections)),
		slog.Int("dropped", dropped),
		slog.Int("duplicates", duplicates))

	return selections, nil
}
