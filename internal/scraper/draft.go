package scraper

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"draftpulse/internal/config"
)

// DraftClass fetches the draft page for a year and returns raw CSV records
// in config.RawDraftHeaders order. Cells stay as strings; the processor owns
// type coercion so re-cleaning never needs a re-scrape.
func (c *Client) DraftClass(ctx context.Context, year int) ([][]string, error) {
	body, err := c.fetch(ctx, fmt.Sprintf(config.DraftPagePath, year))
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse draft page for %d: %w", year, err)
	}

	table := doc.Find("table#drafts").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("%w: #drafts for year %d", ErrTableNotFound, year)
	}

	yearStr := strconv.Itoa(year)
	var records [][]string
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") {
			return
		}
		cells := tr.Find("th, td")
		if cells.Length() < 6 {
			return
		}

		cell := func(i int) string {
			return strings.TrimSpace(cells.Eq(i).Text())
		}
		college := ""
		if cells.Length() > 7 {
			college = cell(7)
		}
		records = append(records, []string{
			yearStr,
			cell(0), // round
			cell(1), // pick
			cell(2), // team
			cell(3), // player
			cell(4), // position
			cell(5), // age
			college,
		})
	})

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: #drafts for year %d has no rows", ErrTableNotFound, year)
	}
	return records, nil
}
