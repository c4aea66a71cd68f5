package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/abhishek622/coderstat/pkg/model"
)

const (
	codeforcesAPIURL     = "https://codeforces.com/api"
	codeforcesContestURL = "https://codeforces.com/contest/"
)

type cfEnvelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

type cfUser struct {
	Handle    string `json:"handle"`
	Rating    int    `json:"rating"`
	MaxRating int    `json:"maxRating"`
	Rank      string `json:"rank"`
}

type cfSubmission struct {
	ContestID int    `json:"contestId"`
	Verdict   string `json:"verdict"`
	Problem   struct {
		ContestID int    `json:"contestId"`
		Index     string `json:"index"`
		Name      string `json:"name"`
	} `json:"problem"`
}

type cfContest struct {
	ID               int    `json:"id"`
	Name             string `json:"name"`
	Phase            string `json:"phase"`
	DurationSeconds  int64  `json:"durationSeconds"`
	StartTimeSeconds int64  `json:"startTimeSeconds"`
}

type CodeforcesClient struct {
	opts options
}

func NewCodeforcesClient(opts ...Option) *CodeforcesClient {
	return &CodeforcesClient{opts: newOptions(codeforcesAPIURL, "", opts)}
}

func (c *CodeforcesClient) Platform() model.Platform {
	return model.PlatformCodeforces
}

func (c *CodeforcesClient) FetchStats(ctx context.Context, username string) model.PlatformStats {
	return guard(model.PlatformCodeforces, username, c.opts.now(), func() (model.PlatformStats, error) {
		return c.fetch(ctx, username)
	})
}

func (c *CodeforcesClient) fetch(ctx context.Context, username string) (model.PlatformStats, error) {
	var users []cfUser
	if err := c.call(ctx, "user.info", url.Values{"handles": {username}}, &users); err != nil {
		return model.PlatformStats{}, err
	}
	if len(users) == 0 {
		return model.PlatformStats{}, fmt.Errorf("codeforces user.info: %w: %s", ErrUserNotFound, username)
	}

	var submissions []cfSubmission
	if err := c.call(ctx, "user.status", url.Values{"handle": {username}}, &submissions); err != nil {
		return model.PlatformStats{}, err
	}

	return normalizeCodeforces(username, users[0], submissions), nil
}

func normalizeCodeforces(username string, user cfUser, submissions []cfSubmission) model.PlatformStats {
	stats := model.NewStats(model.PlatformCodeforces, username, time.Time{})
	stats.SolvedCount = strconv.Itoa(countSolved(submissions))

	rated := user.Rating != 0 || user.MaxRating != 0
	if rated {
		stats.Rating = model.StringPtr(strconv.Itoa(user.Rating))
		stats.HighestRating = model.StringPtr(strconv.Itoa(user.MaxRating))
		// Codeforces has no contest count endpoint; a rating implies at
		// least one rated contest.
		stats.TotalContest = "1"
	}
	stats.GlobalRank = model.StringPtr(user.Rank)
	return stats
}

// countSolved counts distinct problems with at least one accepted submission.
func countSolved(submissions []cfSubmission) int {
	seen := make(map[string]struct{}, len(submissions))
	for _, s := range submissions {
		if s.Verdict != "OK" {
			continue
		}
		contestID := s.Problem.ContestID
		if contestID == 0 {
			contestID = s.ContestID
		}
		index := s.Problem.Index
		if index == "" {
			index = s.Problem.Name
		}
		seen[strconv.Itoa(contestID)+"/"+index] = struct{}{}
	}
	return len(seen)
}

// call invokes one API method and decodes its result into out. Codeforces
// reports failures as a JSON envelope even on 4xx responses, so the body of
// a StatusError is inspected before giving up.
func (c *CodeforcesClient) call(ctx context.Context, method string, params url.Values, out any) error {
	endpoint := c.opts.baseURL + "/" + method + "?" + params.Encode()
	body, err := c.opts.http.Get(ctx, endpoint)
	if err != nil {
		var serr *StatusError
		if !errors.As(err, &serr) || len(serr.Body) == 0 {
			return fmt.Errorf("codeforces %s: %w", method, err)
		}
		body = serr.Body
	}

	var env cfEnvelope
	if derr := json.Unmarshal(body, &env); derr != nil {
		if err != nil {
			return fmt.Errorf("codeforces %s: %w", method, err)
		}
		return fmt.Errorf("codeforces %s: %w: %v", method, ErrUnexpectedResponse, derr)
	}
	if env.Status != "OK" {
		comment := env.Comment
		if comment == "" {
			comment = "status " + env.Status
		}
		if strings.Contains(strings.ToLower(comment), "not found") {
			return fmt.Errorf("codeforces %s: %w: %s", method, ErrUserNotFound, comment)
		}
		return fmt.Errorf("codeforces %s: %s", method, comment)
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("codeforces %s: %w: %v", method, ErrUnexpectedResponse, err)
	}
	return nil
}

func (c *CodeforcesClient) Upcoming(ctx context.Context) ([]model.Contest, error) {
	var contests []cfContest
	if err := c.call(ctx, "contest.list", url.Values{"gym": {"false"}}, &contests); err != nil {
		return nil, err
	}

	out := make([]model.Contest, 0, 8)
	for _, ct := range contests {
		if ct.Phase != "BEFORE" {
			continue
		}
		out = append(out, model.Contest{
			Platform:  model.PlatformCodeforces,
			Name:      ct.Name,
			URL:       codeforcesContestURL + strconv.Itoa(ct.ID),
			StartTime: time.Unix(ct.StartTimeSeconds, 0).UTC(),
			Duration:  time.Duration(ct.DurationSeconds) * time.Second,
		})
	}
	return out, nil
}
