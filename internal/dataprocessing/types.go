package dataprocessing

import "strconv"

// DraftPick is one cleaned row of an NFL draft class.
type DraftPick struct {
	Year     int    `json:"year" csv:"year"`
	Round    int    `json:"round" csv:"round"`
	Pick     int    `json:"pick" csv:"pick"`
	Team     string `json:"team" csv:"team"`
	Player   string `json:"player_name" csv:"player_name"`
	Position string `json:"position" csv:"position"`
	Age      string `json:"age" csv:"age"`
	College  string `json:"college" csv:"college"`
	NameNorm string `json:"player_name_norm" csv:"player_name_norm"`
}

// AllProSelection is one cleaned First-Team All-Pro selection.
type AllProSelection struct {
	Year     int    `json:"year" csv:"year"`
	Player   string `json:"player_name" csv:"player_name"`
	Position string `json:"position" csv:"position"`
	Team     string `json:"team" csv:"team"`
	NameNorm string `json:"player_name_norm" csv:"player_name_norm"`
}

// CohortPlayer is a draft pick carrying the merged All-Pro outcome flag.
type CohortPlayer struct {
	DraftPick
	IsAllPro bool `json:"is_allpro" csv:"is_allpro"`
}

// Record renders the pick as a merged-dataset CSV record. Column order
// matches config.MergedHeaders.
func (p CohortPlayer) Record() []string {
	flag := "0"
	if p.IsAllPro {
		flag = "1"
	}
	return []string{
		strconv.Itoa(p.Year),
		strconv.Itoa(p.Round),
		strconv.Itoa(p.Pick),
		p.Team,
		p.Player,
		p.Position,
		p.Age,
		p.College,
		p.NameNorm,
		flag,
	}
}

// Record renders the selection as a cleaned All-Pro CSV record.
func (s AllProSelection) Record() []string {
	return []string{
		strconv.Itoa(s.Year),
		s.Player,
		s.Position,
		s.Team,
		s.NameNorm,
	}
}

// Record renders the pick as a cleaned draft CSV record.
func (p DraftPick) Record() []string {
	return []string{
		strconv.Itoa(p.Year),
		strconv.Itoa(p.Round),
		strconv.Itoa(p.Pick),
		p.Team,
		p.Player,
		p.Position,
		p.Age,
		p.College,
		p.NameNorm,
	}
}

// CleanedDraftHeaders is the column order produced by DraftPick.Record.
var CleanedDraftHeaders = []string{"year", "round", "pick", "team", "player_name", "position", "age", "college", "player_name_norm"}

// CleanedAllProHeaders is the column order produced by AllProSelection.Record.
var CleanedAllProHeaders = []string{"year", "player_name", "position", "team", "player_name_norm"}
