package dataprocessing

import (
	"log/slog"
	"sort"
	"strconv"
)

// knownAllPros lists players who verifiably earned at least one First-Team
// All-Pro selection, keyed by normalized name and draft year. Used as a
// post-merge sanity check for name-matching regressions.
var knownAllPros = map[string]int{
	"aaron donald":     2014,
	"patrick mahomes":  2017,
	"davante adams":    2014,
	"travis kelce":     2013,
	"tyreek hill":      2016,
	"lamar jackson":    2018,
	"joey bosa":        2016,
	"myles garrett":    2017,
	"nick bosa":        2019,
	"micah parsons":    2021,
	"justin jefferson": 2020,
	"jamarr chase":     2021,
	"trent williams":   2010,
	"bobby wagner":     2012,
	"richard sherman":  2011,
	"earl thomas":      2010,
	"calvin johnson":   2007,
	"cam newton":       2011,
	"luke kuechly":     2012,
	"drew brees":       2001,
}

// Merge flags every draft pick whose normalized name appears anywhere in the
// All-Pro dataset. The selection year is deliberately ignored: the question
// is whether the drafted player ever made a First-Team All-Pro roster, not
// when. Every input pick appears in the output exactly once.
func Merge(picks []DraftPick, selections []AllProSelection) []CohortPlayer {
	allProNames := make(map[string]bool, len(selections))
	for _, s := range selections {
		if s.NameNorm != "" {
			allProNames[s.NameNorm] = true
		}
	}

	players := make([]CohortPlayer, len(picks))
	for i, pick := range picks {
		players[i] = CohortPlayer{
			DraftPick: pick,
			IsAllPro:  allProNames[pick.NameNorm],
		}
	}
	return players
}

// FilterCohort keeps only draft classes within [start, end]. Classes through
// 2021 have had at least three full seasons by end of 2024, giving a fair
// window to earn All-Pro honors.
func FilterCohort(players []CohortPlayer, start, end int) []CohortPlayer {
	out := make([]CohortPlayer, 0, len(players))
	for _, p := range players {
		if p.Year >= start && p.Year <= end {
			out = append(out, p)
		}
	}
	return out
}

// ValidationIssue describes one known All-Pro that failed the post-merge
// sanity check.
type ValidationIssue struct {
	Name      string
	DraftYear int
	Reason    string
}

// ValidateKnownAllPros checks ~20 known All-Pro players against the merged
// dataset and logs any that are missing or unflagged. A non-empty return
// usually means a name-normalization regression.
func ValidateKnownAllPros(logger *slog.Logger, players []CohortPlayer) []ValidationIssue {
	if logger == nil {
		logger = slog.Default()
	}

	byKey := make(map[string]CohortPlayer, len(players))
	for _, p := range players {
		byKey[playerKey(p.NameNorm, p.Year)] = p
	}

	names := make([]string, 0, len(knownAllPros))
	for name := range knownAllPros {
		names = append(names, name)
	}
	sort.Strings(names)

	var issues []ValidationIssue
	for _, name := range names {
		draftYear := knownAllPros[name]
		player, found := byKey[playerKey(name, draftYear)]
		switch {
		case !found:
			// Expected for draft years outside the scraped range.
			issues = append(issues, ValidationIssue{Name: name, DraftYear: draftYear, Reason: "not in draft data"})
		case !player.IsAllPro:
			issues = append(issues, ValidationIssue{Name: name, DraftYear: draftYear, Reason: "missing is_allpro flag"})
			logger.Warn("known all-pro not flagged",
				slog.String("player", name),
				slog.Int("draft_year", draftYear))
		}
	}

	if len(issues) == 0 {
		logger.Info("all known all-pros validated")
	} else {
		logger.Warn("known all-pro validation finished with issues",
			slog.Int("issues", len(issues)))
	}
	return issues
}

func playerKey(nameNorm string, year int) string {
	return nameNorm + "|" + strconv.Itoa(year)
}
