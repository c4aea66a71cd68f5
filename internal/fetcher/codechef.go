package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/abhishek622/coderstat/pkg/model"
)

const codechefProfileURL = "https://www.codechef.com/users"

var (
	ccHighestRatingPattern  = regexp.MustCompile(`(?i)Highest\s+Rating\s*(\d+)`)
	ccProblemsSolvedPattern = regexp.MustCompile(`(?i)Total\s+Problems\s+Solved:\s*(\d+)`)
	ccContestCountPattern   = regexp.MustCompile(`(?i)Contests\s*\((\d+)\)`)
	digitsPattern           = regexp.MustCompile(`\d+`)
)

// Any of these present means the page is a profile, even if some fields moved.
const ccProfileMarkers = ".user-details-container, .rating-number, .rating-ranks, .problems-solved"

type CodeChefClient struct {
	opts options
}

func NewCodeChefClient(opts ...Option) *CodeChefClient {
	return &CodeChefClient{opts: newOptions("", codechefProfileURL, opts)}
}

func (c *CodeChefClient) Platform() model.Platform {
	return model.PlatformCodeChef
}

func (c *CodeChefClient) FetchStats(ctx context.Context, username string) model.PlatformStats {
	return guard(model.PlatformCodeChef, username, c.opts.now(), func() (model.PlatformStats, error) {
		return c.fetch(ctx, username)
	})
}

func (c *CodeChefClient) fetch(ctx context.Context, username string) (model.PlatformStats, error) {
	body, err := c.opts.http.Get(ctx, c.opts.profileURL+"/"+url.PathEscape(username))
	if err != nil {
		return model.PlatformStats{}, fmt.Errorf("codechef: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return model.PlatformStats{}, fmt.Errorf("codechef: %w: %v", ErrUnexpectedResponse, err)
	}
	if doc.Find(ccProfileMarkers).Length() == 0 {
		return model.PlatformStats{}, fmt.Errorf("codechef: %w: %s", ErrUserNotFound, username)
	}
	return parseCodeChefProfile(doc, username), nil
}

// parseCodeChefProfile is best-effort: a field whose element is missing keeps
// its zero/nil default.
func parseCodeChefProfile(doc *goquery.Document, username string) model.PlatformStats {
	stats := model.NewStats(model.PlatformCodeChef, username, time.Time{})
	text := doc.Text()

	if rating, ok := extractCodeChefRating(doc); ok {
		stats.Rating = &rating
	}
	if highest, ok := extractHighestRating(doc); ok {
		stats.HighestRating = &highest
	}
	global, country := extractRanks(doc)
	stats.GlobalRank = model.StringPtr(global)
	stats.CountryRank = model.StringPtr(country)
	if solved, ok := extractProblemsSolved(text); ok {
		stats.SolvedCount = solved
	}
	if contests, ok := extractContestCount(text); ok {
		stats.TotalContest = contests
	}
	return stats
}

// extractCodeChefRating reads the current rating. Unrated users are shown as
// "?", which yields no value.
func extractCodeChefRating(doc *goquery.Document) (string, bool) {
	raw := strings.ReplaceAll(doc.Find(".rating-number").First().Text(), "?", "")
	rating := digitsPattern.FindString(raw)
	return rating, rating != ""
}

func extractHighestRating(doc *goquery.Document) (string, bool) {
	if v, ok := firstSubmatch(ccHighestRatingPattern, doc.Find(".rating-header").Text()); ok {
		return v, true
	}
	return firstSubmatch(ccHighestRatingPattern, doc.Text())
}

// extractRanks returns the global rank (first list item) and country rank
// (last list item). Non-numeric ranks such as "Inactive" are dropped.
func extractRanks(doc *goquery.Document) (global, country string) {
	items := doc.Find(".rating-ranks ul li")
	if items.Length() == 0 {
		return "", ""
	}
	global = rankValue(items.First())
	if items.Length() > 1 {
		country = rankValue(items.Last())
	}
	return global, country
}

func rankValue(li *goquery.Selection) string {
	text := li.Find("strong").First().Text()
	if strings.TrimSpace(text) == "" {
		text = li.Text()
	}
	return digitsPattern.FindString(text)
}

func extractProblemsSolved(text string) (string, bool) {
	return firstSubmatch(ccProblemsSolvedPattern, text)
}

func extractContestCount(text string) (string, bool) {
	return firstSubmatch(ccContestCountPattern, text)
}
