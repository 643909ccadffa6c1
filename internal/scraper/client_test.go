package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"draftpulse/internal/config"
)

const draftPageHTML = `<!DOCTYPE html>
<html><body>
<table id="drafts">
<thead><tr><th>Rnd</th><th>Pick</th><th>Tm</th><th>Player</th><th>Pos</th><th>Age</th><th>To</th><th>College/Univ</th></tr></thead>
<tbody>
<tr><th>1</th><td>13</td><td>STL</td><td>Aaron Donald</td><td>DT</td><td>23</td><td>2024</td><td>Pittsburgh</td></tr>
<tr class="thead"><th>Rnd</th><td>Pick</td><td>Tm</td><td>Player</td><td>Pos</td><td>Age</td><td>To</td><td>College/Univ</td></tr>
<tr><th>2</th><td>53</td><td>GNB</td><td>Davante Adams</td><td>WR</td><td>21</td><td>2024</td><td>Fresno St.</td></tr>
</tbody>
</table>
</body></html>`

const allProPageHTML = `<!DOCTYPE html>
<html><body>
<table id="all_pro">
<thead><tr><th>Pos</th><th>Player</th><th>Tm</th></tr></thead>
<tbody>
<tr><th>QB</th><td>Patrick Mahomes</td><td>KAN</td></tr>
<tr><th>DT</th><td>Aaron Donald</td><td>LAR</td></tr>
</tbody>
</table>
<table id="second_team"><tbody><tr><th>QB</th><td>Someone Else</td><td>BUF</td></tr></tbody></table>
</body></html>`

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.ScraperConfig{
		BaseURL:   server.URL,
		Delay:     time.Millisecond,
		Timeout:   5 * time.Second,
		RetryWait: 10 * time.Millisecond,
		UserAgent: "draftpulse-test",
	}
	return NewClient(cfg, nil)
}

func TestDraftClassParsing(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/draft/2014-nfl-draft.htm", r.URL.Path)
		w.Write([]byte(draftPageHTML))
	}))

	records, err := client.DraftClass(context.Background(), 2014)
	require.NoError(t, err)
	require.Len(t, records, 2, "repeated mid-table header rows are skipped")

	assert.Equal(t, []string{"2014", "1", "13", "STL", "Aaron Donald", "DT", "23", "Pittsburgh"}, records[0])
	assert.Equal(t, "Davante Adams", records[1][4])
}

func TestDraftClassMissingTable(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>nothing here</p></body></html>"))
	}))

	_, err := client.DraftClass(context.Background(), 2014)
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestAllProTeamParsing(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/years/2018/allpro.htm", r.URL.Path)
		w.Write([]byte(allProPageHTML))
	}))

	records, err := client.AllProTeam(context.Background(), 2018)
	require.NoError(t, err)
	require.Len(t, records, 2, "only the first table counts")

	assert.Equal(t, []string{"2018", "Patrick Mahomes", "QB", "KAN"}, records[0])
	assert.Equal(t, []string{"2018", "Aaron Donald", "DT", "LAR"}, records[1])
}

func TestFetchRetriesOn429(t *testing.T) {
	var calls atomic.Int32
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(draftPageHTML))
	}))

	records, err := client.DraftClass(context.Background(), 2014)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetchGivesUpAfterSecond429(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := client.DraftClass(context.Background(), 2014)
	require.ErrorIs(t, err, ErrRateLimited)
}

func TestFetchUnexpectedStatus(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.DraftClass(context.Background(), 2014)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 404")
}

func TestFetchHonorsContextCancel(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.DraftClass(ctx, 2014)
	require.ErrorIs(t, err, context.Canceled)
}
