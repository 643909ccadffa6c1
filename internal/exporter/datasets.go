package exporter

import (
	"strconv"

	"draftpulse/internal/analytics"
	"draftpulse/internal/config"
	"draftpulse/internal/dataprocessing"
)

// WriteDraftPicks saves the cleaned draft dataset.
func (w *CSVWriter) WriteDraftPicks(path string, picks []dataprocessing.DraftPick) error {
	records := make([][]string, len(picks))
	for i, p := range picks {
		records[i] = p.Record()
	}
	return w.WriteSimpleCSV(path, dataprocessing.CleanedDraftHeaders, records)
}

// WriteAllProSelections saves the cleaned All-Pro dataset.
func (w *CSVWriter) WriteAllProSelections(path string, selections []dataprocessing.AllProSelection) error {
	records := make([][]string, len(selections))
	for i, s := range selections {
		records[i] = s.Record()
	}
	return w.WriteSimpleCSV(path, dataprocessing.CleanedAllProHeaders, records)
}

// WriteMergedDataset saves the merged cohort dataset the dashboard serves.
func (w *CSVWriter) WriteMergedDataset(path string, players []dataprocessing.CohortPlayer) error {
	records := make([][]string, len(players))
	for i, p := range players {
		records[i] = p.Record()
	}
	return w.WriteSimpleCSV(path, config.MergedHeaders, records)
}

// WriteRoundHitRates saves the per-round aggregate.
func (w *CSVWriter) WriteRoundHitRates(path string, rates []analytics.RoundHitRate) error {
	records := make([][]string, len(rates))
	for i, r := range rates {
		records[i] = []string{
			strconv.Itoa(r.Round),
			strconv.Itoa(r.AllProCount),
			strconv.Itoa(r.TotalPlayers),
			strconv.FormatFloat(r.HitRate, 'f', 6, 64),
		}
	}
	return w.WriteSimpleCSV(path, []string{"round", "allpro_count", "total_players", "hit_rate"}, records)
}

// WritePositionHitRates saves the per-position aggregate.
func (w *CSVWriter) WritePositionHitRates(path string, rates []analytics.PositionHitRate) error {
	records := make([][]string, len(rates))
	for i, r := range rates {
		records[i] = []string{
			r.Position,
			strconv.Itoa(r.AllProCount),
			strconv.Itoa(r.TotalPlayers),
			strconv.FormatFloat(r.HitRate, 'f', 6, 64),
		}
	}
	return w.WriteSimpleCSV(path, []string{"position", "allpro_count", "total_players", "hit_rate"}, records)
}
