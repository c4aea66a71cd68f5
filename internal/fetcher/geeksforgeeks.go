package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/abhishek622/coderstat/pkg/model"
	"go.uber.org/zap"
)

const (
	gfgSubmissionsURL = "https://practiceapi.geeksforgeeks.org/api/v1/user/problems/submissions"
	gfgProfileURL     = "https://www.geeksforgeeks.org/user"
)

// The profile page embeds its hydration JSON, sometimes string-escaped, so
// the quotes around keys may be preceded by a backslash.
var (
	gfgScorePattern         = regexp.MustCompile(`\\?"score\\?"\s*:\s*(\d+)`)
	gfgInstituteRankPattern = regexp.MustCompile(`\\?"institute_rank\\?"\s*:\s*(\d+)`)
	gfgTotalSolvedPattern   = regexp.MustCompile(`\\?"total_problems_solved\\?"\s*:\s*(\d+)`)
)

type gfgSubmissionsRequest struct {
	Handle      string `json:"handle"`
	RequestType string `json:"requestType"`
	Year        string `json:"year"`
	Month       string `json:"month"`
}

type gfgSubmissionsResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Result  json.RawMessage `json:"result"`
}

type gfgSubmission struct {
	Slug  string `json:"slug"`
	PName string `json:"pname"`
	Lang  string `json:"lang"`
}

// gfgSolved is the submissions API reduced to per-tier counts.
type gfgSolved struct {
	Total     int
	School    int
	Basic     int
	Easy      int
	Medium    int
	Hard      int
	Languages map[string]int
}

func (s gfgSolved) fundamental() int {
	return s.School + s.Basic
}

type GeeksforGeeksClient struct {
	opts options
}

func NewGeeksforGeeksClient(opts ...Option) *GeeksforGeeksClient {
	return &GeeksforGeeksClient{opts: newOptions(gfgSubmissionsURL, gfgProfileURL, opts)}
}

func (c *GeeksforGeeksClient) Platform() model.Platform {
	return model.PlatformGeeksforGeeks
}

func (c *GeeksforGeeksClient) FetchStats(ctx context.Context, username string) model.PlatformStats {
	return guard(model.PlatformGeeksforGeeks, username, c.opts.now(), func() (model.PlatformStats, error) {
		return c.fetch(ctx, username)
	})
}

// fetch combines the submissions API with the public profile page. Either may
// fail on its own; only when both fail is the whole fetch an error.
func (c *GeeksforGeeksClient) fetch(ctx context.Context, username string) (model.PlatformStats, error) {
	stats := model.NewStats(model.PlatformGeeksforGeeks, username, c.opts.now())

	solved, subErr := c.fetchSubmissions(ctx, username)
	if subErr == nil {
		stats.FundamentalCount = strconv.Itoa(solved.fundamental())
		stats.EasyCount = strconv.Itoa(solved.Easy)
		stats.MediumCount = strconv.Itoa(solved.Medium)
		stats.HardCount = strconv.Itoa(solved.Hard)
		stats.SolvedCount = strconv.Itoa(solved.Total)
		c.opts.logger.Debug("geeksforgeeks: submissions parsed",
			zap.String("username", username),
			zap.Int("solved", solved.Total),
			zap.Any("languages", solved.Languages),
		)
	} else {
		c.opts.logger.Warn("geeksforgeeks: submissions fetch failed",
			zap.String("username", username),
			zap.Error(subErr),
		)
	}

	page, pageErr := c.fetchProfilePage(ctx, username)
	if pageErr == nil {
		score, hasScore := extractScore(page)
		rank, hasRank := extractInstituteRank(page)
		total, hasTotal := extractTotalSolved(page)
		if hasScore {
			stats.Rating = &score
		}
		if hasRank {
			stats.GlobalRank = &rank
		}
		if hasTotal && stats.SolvedCount == "0" {
			stats.SolvedCount = total
		}
		if !hasScore && !hasRank && !hasTotal {
			pageErr = fmt.Errorf("%w: no profile data in page", ErrUnexpectedResponse)
		}
	}
	if pageErr != nil {
		c.opts.logger.Warn("geeksforgeeks: profile page fetch failed",
			zap.String("username", username),
			zap.Error(pageErr),
		)
	}

	if subErr != nil && pageErr != nil {
		return model.PlatformStats{}, fmt.Errorf("geeksforgeeks: submissions: %w; profile page: %w", subErr, pageErr)
	}
	return stats, nil
}

func (c *GeeksforGeeksClient) fetchSubmissions(ctx context.Context, username string) (gfgSolved, error) {
	body, err := c.opts.http.PostJSON(ctx, c.opts.baseURL+"/", gfgSubmissionsRequest{Handle: username}, nil)
	if err != nil {
		return gfgSolved{}, err
	}
	return parseGfGSubmissions(body)
}

func (c *GeeksforGeeksClient) fetchProfilePage(ctx context.Context, username string) (string, error) {
	body, err := c.opts.http.Get(ctx, c.opts.profileURL+"/"+url.PathEscape(username)+"/?tab=activity")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func parseGfGSubmissions(body []byte) (gfgSolved, error) {
	var resp gfgSubmissionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return gfgSolved{}, fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if resp.Status != "" && !strings.EqualFold(resp.Status, "success") {
		msg := resp.Message
		if msg == "" {
			msg = "status " + resp.Status
		}
		if strings.Contains(strings.ToLower(msg), "not found") {
			return gfgSolved{}, fmt.Errorf("%w: %s", ErrUserNotFound, msg)
		}
		return gfgSolved{}, fmt.Errorf("%w: %s", ErrUnexpectedResponse, msg)
	}

	out := gfgSolved{Languages: map[string]int{}}
	result := bytes.TrimSpace(resp.Result)
	if len(result) > 0 && result[0] == '{' {
		var categories map[string]map[string]gfgSubmission
		if err := json.Unmarshal(result, &categories); err != nil {
			return gfgSolved{}, fmt.Errorf("%w: result: %v", ErrUnexpectedResponse, err)
		}
		for category, problems := range categories {
			switch category {
			case "School":
				out.School = len(problems)
			case "Basic":
				out.Basic = len(problems)
			case "Easy":
				out.Easy = len(problems)
			case "Medium":
				out.Medium = len(problems)
			case "Hard":
				out.Hard = len(problems)
			default:
				continue
			}
			for _, p := range problems {
				if p.Lang != "" {
					out.Languages[p.Lang]++
				}
			}
		}
	}

	out.Total = resp.Count
	if out.Total <= 0 {
		out.Total = out.fundamental() + out.Easy + out.Medium + out.Hard
	}
	return out, nil
}

func extractScore(html string) (string, bool) {
	return firstSubmatch(gfgScorePattern, html)
}

func extractInstituteRank(html string) (string, bool) {
	return firstSubmatch(gfgInstituteRankPattern, html)
}

func extractTotalSolved(html string) (string, bool) {
	return firstSubmatch(gfgTotalSolvedPattern, html)
}

func firstSubmatch(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}
