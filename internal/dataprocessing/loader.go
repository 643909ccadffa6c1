package dataprocessing

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// readCSVRecords reads a CSV file and returns its data records, skipping the
// header row. Raw PFR files occasionally carry ragged rows, so per-record
// field counts are not enforced.
func readCSVRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}

// LoadMergedDataset reads the processed merged CSV back into memory. The
// dashboard and report commands consume the pipeline output through this.
func LoadMergedDataset(path string) ([]CohortPlayer, error) {
	records, err := readCSVRecords(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read merged dataset: %w", err)
	}

	players := make([]CohortPlayer, 0, len(records))
	for i, rec := range records {
		if len(rec) < 10 {
			return nil, fmt.Errorf("merged dataset row %d has %d columns, want 10", i+2, len(rec))
		}
		year, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("merged dataset row %d: bad year %q", i+2, rec[0])
		}
		round, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("merged dataset row %d: bad round %q", i+2, rec[1])
		}
		pick, err := strconv.Atoi(rec[2])
		if err != nil {
			return nil, fmt.Errorf("merged dataset row %d: bad pick %q", i+2, rec[2])
		}

		players = append(players, CohortPlayer{
			DraftPick: DraftPick{
				Year:     year,
				Round:    round,
				Pick:     pick,
				Team:     rec[3],
				Player:   rec[4],
				Position: rec[5],
				Age:      rec[6],
				College:  rec[7],
				NameNorm: rec[8],
			},
			IsAllPro: strings.TrimSpace(rec[9]) == "1",
		})
	}
	return players, nil
}
