// Package contributions implements the ContributionGraph port by reading a
// user's public contribution calendar from the GitHub web UI.
package contributions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ericfisherdev/hacktoberspam/internal/domain/model"
	"github.com/ericfisherdev/hacktoberspam/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ContributionGraph = (*Scraper)(nil)

// DefaultServerURL is the github.com web UI.
const DefaultServerURL = "https://github.com"

// maxPageBytes caps how much of the calendar page is read.
const maxPageBytes = 4 << 20

// ErrNoCalendar is returned when the page contains no recognizable calendar cells.
var ErrNoCalendar = errors.New("no contribution calendar cells found")

// Scraper fetches and parses the contribution calendar page at
// {server}/users/{login}/contributions.
type Scraper struct {
	httpClient *http.Client
	serverURL  string
}

// NewScraper creates a Scraper for the given web UI base URL. An empty
// serverURL means github.com.
func NewScraper(serverURL string) *Scraper {
	return NewScraperWithHTTPClient(&http.Client{Timeout: 10 * time.Second}, serverURL)
}

// NewScraperWithHTTPClient creates a Scraper with a custom http.Client.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewScraperWithHTTPClient(httpClient *http.Client, serverURL string) *Scraper {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	return &Scraper{
		httpClient: httpClient,
		serverURL:  strings.TrimSuffix(serverURL, "/"),
	}
}

// Contributions returns the per-day contribution counts shown on login's
// calendar for the year starting January 1st of year.
func (s *Scraper) Contributions(ctx context.Context, login string, year int) ([]model.ContributionDay, error) {
	pageURL := fmt.Sprintf("%s/users/%s/contributions?from=%d-01-01", s.serverURL, url.PathEscape(login), year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating contribution page request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching contribution page for %s: %w", login, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching contribution page for %s: HTTP %d", login, resp.StatusCode)
	}

	days, err := ParseCalendar(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("parsing contribution page for %s: %w", login, err)
	}
	return days, nil
}

// countPattern matches the leading count of a tooltip such as
// "12 contributions on March 3rd." or "1,024 contributions on ...".
var countPattern = regexp.MustCompile(`^(\d[\d,]*)\s+contributions?\b`)

// calendarCell is a day cell before its count has been resolved.
type calendarCell struct {
	id       string
	date     time.Time
	count    int
	hasCount bool
}

// ParseCalendar extracts (date, count) pairs from a contribution calendar page.
//
// Two markups are understood: the legacy SVG calendar, where each
// <rect class="day"> carries data-date and data-count, and the current table
// calendar, where each <td data-date data-level id> cell's count only appears
// in a <tool-tip for="id"> element.
func ParseCalendar(r io.Reader) ([]model.ContributionDay, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var cells []calendarCell
	tooltips := make(map[string]string)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "tool-tip" {
				if id := attr(n, "for"); id != "" {
					tooltips[id] = strings.TrimSpace(textContent(n))
				}
			} else if cell, ok := parseCell(n); ok {
				cells = append(cells, cell)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	days := make([]model.ContributionDay, 0, len(cells))
	for _, cell := range cells {
		if !cell.hasCount {
			text, ok := tooltips[cell.id]
			if !ok {
				continue
			}
			count, err := parseTooltipCount(text)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cell.date.Format(time.DateOnly), err)
			}
			cell.count = count
		}
		days = append(days, model.ContributionDay{Date: cell.date, Count: cell.count})
	}

	if len(days) == 0 {
		return nil, ErrNoCalendar
	}
	return days, nil
}

// parseCell recognizes a calendar day element: it must carry data-date and
// either data-count or data-level.
func parseCell(n *html.Node) (calendarCell, bool) {
	if n.DataAtom != atom.Td && n.Data != "rect" {
		return calendarCell{}, false
	}

	rawDate := attr(n, "data-date")
	if rawDate == "" {
		return calendarCell{}, false
	}
	date, err := time.Parse(time.DateOnly, rawDate)
	if err != nil {
		return calendarCell{}, false
	}

	cell := calendarCell{id: attr(n, "id"), date: date}
	if rawCount := attr(n, "data-count"); rawCount != "" {
		count, err := strconv.Atoi(rawCount)
		if err != nil {
			return calendarCell{}, false
		}
		cell.count = count
		cell.hasCount = true
		return cell, true
	}
	if !hasAttr(n, "data-level") {
		return calendarCell{}, false
	}
	return cell, true
}

// parseTooltipCount reads the count out of a calendar tooltip.
func parseTooltipCount(text string) (int, error) {
	if strings.HasPrefix(text, "No contributions") {
		return 0, nil
	}
	m := countPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("unrecognized tooltip %q", text)
	}
	return strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return sb.String()
}
