package contributions_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/hacktoberspam/internal/adapter/driven/contributions"
	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
)

const legacyCalendar = `<html><body>
<svg width="828" height="128" class="js-calendar-graph-svg">
  <g transform="translate(10, 20)">
    <g transform="translate(0, 0)">
      <rect class="day" width="10" height="10" x="11" y="0" fill="#ebedf0" data-count="0" data-date="2025-01-01"></rect>
      <rect class="day" width="10" height="10" x="11" y="12" fill="#c6e48b" data-count="4" data-date="2025-01-02"></rect>
      <rect class="day" width="10" height="10" x="11" y="24" fill="#7bc96f" data-count="11" data-date="2025-09-30"></rect>
    </g>
  </g>
</svg>
</body></html>`

const tableCalendar = `<html><body>
<table class="ContributionCalendar-grid">
  <tbody>
    <tr>
      <td tabindex="0" data-ix="0" data-date="2025-01-05" id="contribution-day-component-0-0" data-level="0" class="ContributionCalendar-day"></td>
      <td tabindex="0" data-ix="1" data-date="2025-01-12" id="contribution-day-component-0-1" data-level="2" class="ContributionCalendar-day"></td>
      <td tabindex="0" data-ix="2" data-date="2025-01-19" id="contribution-day-component-0-2" data-level="4" class="ContributionCalendar-day"></td>
    </tr>
  </tbody>
</table>
<tool-tip for="contribution-day-component-0-0" class="sr-only">No contributions on January 5th.</tool-tip>
<tool-tip for="contribution-day-component-0-1" class="sr-only">7 contributions on January 12th.</tool-tip>
<tool-tip for="contribution-day-component-0-2" class="sr-only">1,024 contributions on January 19th.</tool-tip>
</body></html>`

func day(s string) time.Time {
	d, _ := time.Parse(time.DateOnly, s)
	return d
}

func TestParseCalendar_LegacySVG(t *testing.T) {
	days, err := contributions.ParseCalendar(strings.NewReader(legacyCalendar))

	require.NoError(t, err)
	assert.Equal(t, []model.ContributionDay{
		{Date: day("2025-01-01"), Count: 0},
		{Date: day("2025-01-02"), Count: 4},
		{Date: day("2025-09-30"), Count: 11},
	}, days)
}

func TestParseCalendar_TableWithTooltips(t *testing.T) {
	days, err := contributions.ParseCalendar(strings.NewReader(tableCalendar))

	require.NoError(t, err)
	assert.Equal(t, []model.ContributionDay{
		{Date: day("2025-01-05"), Count: 0},
		{Date: day("2025-01-12"), Count: 7},
		{Date: day("2025-01-19"), Count: 1024},
	}, days)
}

func TestParseCalendar_NoCells(t *testing.T) {
	_, err := contributions.ParseCalendar(strings.NewReader("<html><body><p>Not found</p></body></html>"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, contributions.ErrNoCalendar))
}

func TestParseCalendar_UnrecognizedTooltip(t *testing.T) {
	page := `<table><tr><td data-date="2025-01-05" id="c0" data-level="1"></td></tr></table>
<tool-tip for="c0">Lots of activity</tool-tip>`

	_, err := contributions.ParseCalendar(strings.NewReader(page))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized tooltip")
}

func TestParseCalendar_IgnoresUnrelatedDateAttributes(t *testing.T) {
	page := `<div data-date="2025-01-01">heading</div>` + legacyCalendar

	days, err := contributions.ParseCalendar(strings.NewReader(page))

	require.NoError(t, err)
	assert.Len(t, days, 3)
}

func TestScraper_Contributions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/alice/contributions", r.URL.Path)
		assert.Equal(t, "2025-01-01", r.URL.Query().Get("from"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(legacyCalendar))
	}))
	defer server.Close()

	scraper := contributions.NewScraperWithHTTPClient(server.Client(), server.URL+"/")
	days, err := scraper.Contributions(context.Background(), "alice", 2025)

	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, 15, model.SumContributionsBefore(days, time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)))
}

func TestScraper_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	scraper := contributions.NewScraperWithHTTPClient(server.Client(), server.URL)
	_, err := scraper.Contributions(context.Background(), "ghost", 2025)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

type stubGraph struct {
	days  []model.ContributionDay
	err   error
	calls int
}

func (s *stubGraph) Contributions(_ context.Context, _ string, _ int) ([]model.ContributionDay, error) {
	s.calls++
	return s.days, s.err
}

func TestFallback_FirstSuccessWins(t *testing.T) {
	first := &stubGraph{days: []model.ContributionDay{{Date: day("2025-01-01"), Count: 1}}}
	second := &stubGraph{err: errors.New("unused")}

	days, err := contributions.Fallback{first, second}.Contributions(context.Background(), "alice", 2025)

	require.NoError(t, err)
	assert.Len(t, days, 1)
	assert.Equal(t, 0, second.calls)
}

func TestFallback_UsesNextSourceOnError(t *testing.T) {
	first := &stubGraph{err: errors.New("markup changed")}
	second := &stubGraph{days: []model.ContributionDay{{Date: day("2025-01-01"), Count: 2}}}

	days, err := contributions.Fallback{first, second}.Contributions(context.Background(), "alice", 2025)

	require.NoError(t, err)
	assert.Equal(t, 2, days[0].Count)
	assert.Equal(t, 1, first.calls)
}

func TestFallback_AllFail(t *testing.T) {
	first := &stubGraph{err: errors.New("markup changed")}
	second := &stubGraph{err: errors.New("graphql down")}

	_, err := contributions.Fallback{first, second}.Contributions(context.Background(), "alice", 2025)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "markup changed")
	assert.Contains(t, err.Error(), "graphql down")
}
