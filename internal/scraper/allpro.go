package scraper

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"draftpulse/internal/config"
)

// AllProTeam fetches the All-Pro page for a season and returns raw CSV
// records in config.RawAllProHeaders order. The first table on the page
// holds the First-Team selections.
func (c *Client) AllProTeam(ctx context.Context, year int) ([][]string, error) {
	body, err := c.fetch(ctx, fmt.Sprintf(config.AllProPagePath, year))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse all-pro page for %d: %w", year, err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: all-pro table for year %d", ErrTableNotFound, year)
	}

	yearStr := strconv.Itoa(year)
	var records [][]string
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") {
			return
		}
		cells := tr.Find("th, td")
		if cells.Length() < 2 {
			return
		}

		cell := func(i int) string {
			return strings.TrimSpace(cells.Eq(i).Text())
		}
		team := ""
		if cells.Length() > 2 {
			team = cell(2)
		}
		records = append(records, []string{
			yearStr,
			cell(1), // player
			cell(0), // position
			team,
		})
	})

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: all-pro table for year %d has no rows", ErrTableNotFound, year)
	}
	return records, nil
}
