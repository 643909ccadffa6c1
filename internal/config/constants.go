package config

// Pro Football Reference page templates. The draft page carries the full
// draft table under #drafts; the All-Pro page lists First-Team selections in
// its first table.
const (
	DraftPagePath  = "/draft/%d-nfl-draft.htm"
	AllProPagePath = "/years/%d/allpro.htm"
)

// CSV column headers shared by the scraper, processor, and exporter. Order
// matters: the loader reads these positionally.
var (
	RawDraftHeaders  = []string{"year", "round", "pick", "team", "player_name", "position", "age", "college"}
	RawAllProHeaders = []string{"year", "player_name", "position", "team"}
	MergedHeaders    = []string{"year", "round", "pick", "team", "player_name", "position", "age", "college", "player_name_norm", "is_allpro"}
)
