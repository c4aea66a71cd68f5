package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/abhishek622/coderstat/pkg/model"
)

const (
	leetcodeGraphQLURL = "https://leetcode.com/graphql"
	leetcodeContestURL = "https://leetcode.com/contest/"
	leetcodeRefererURL = "https://leetcode.com/"
	leetcodeStatsQuery = `
query userProblemsSolved($username: String!) {
  matchedUser(username: $username) {
    submitStatsGlobal {
      acSubmissionNum {
        difficulty
        count
      }
    }
  }
  userContestRanking(username: $username) {
    attendedContestsCount
    rating
    globalRanking
  }
}`
	leetcodeContestsQuery = `
query upcomingContests {
  upcomingContests {
    title
    titleSlug
    startTime
    duration
  }
}`
)

type GraphQLRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type leetcodeStatsResponse struct {
	Data struct {
		MatchedUser *struct {
			SubmitStats struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStatsGlobal"`
		} `json:"matchedUser"`
		UserContestRanking *struct {
			AttendedContestsCount int     `json:"attendedContestsCount"`
			Rating                float64 `json:"rating"`
			GlobalRanking         int     `json:"globalRanking"`
		} `json:"userContestRanking"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type leetcodeContestsResponse struct {
	Data struct {
		UpcomingContests []struct {
			Title     string `json:"title"`
			TitleSlug string `json:"titleSlug"`
			StartTime int64  `json:"startTime"`
			Duration  int64  `json:"duration"`
		} `json:"upcomingContests"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type LeetCodeClient struct {
	opts options
}

func NewLeetCodeClient(opts ...Option) *LeetCodeClient {
	return &LeetCodeClient{opts: newOptions(leetcodeGraphQLURL, "", opts)}
}

func (c *LeetCodeClient) Platform() model.Platform {
	return model.PlatformLeetCode
}

func (c *LeetCodeClient) FetchStats(ctx context.Context, username string) model.PlatformStats {
	return guard(model.PlatformLeetCode, username, c.opts.now(), func() (model.PlatformStats, error) {
		return c.fetch(ctx, username)
	})
}

func (c *LeetCodeClient) fetch(ctx context.Context, username string) (model.PlatformStats, error) {
	body, err := c.query(ctx, GraphQLRequest{
		Query:         leetcodeStatsQuery,
		Variables:     map[string]interface{}{"username": username},
		OperationName: "userProblemsSolved",
	})
	if err != nil {
		return model.PlatformStats{}, err
	}
	return parseLeetCodeStats(body, username)
}

func (c *LeetCodeClient) query(ctx context.Context, q GraphQLRequest) ([]byte, error) {
	body, err := c.opts.http.PostJSON(ctx, c.opts.baseURL, q, map[string]string{
		"Referer": leetcodeRefererURL,
	})
	if err != nil {
		return nil, fmt.Errorf("leetcode: %w", err)
	}
	return body, nil
}

func parseLeetCodeStats(body []byte, username string) (model.PlatformStats, error) {
	var resp leetcodeStatsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.PlatformStats{}, fmt.Errorf("leetcode: %w: %v", ErrUnexpectedResponse, err)
	}

	user := resp.Data.MatchedUser
	if user == nil {
		if len(resp.Errors) > 0 && !leetcodeUserMissing(resp.Errors[0].Message) {
			return model.PlatformStats{}, fmt.Errorf("leetcode: %w: %s", ErrUnexpectedResponse, resp.Errors[0].Message)
		}
		return model.PlatformStats{}, fmt.Errorf("leetcode: %w: %s", ErrUserNotFound, username)
	}

	stats := model.NewStats(model.PlatformLeetCode, username, time.Time{})
	// Tier 0 is "All", then Easy, Medium, Hard.
	tiers := []*string{&stats.SolvedCount, &stats.EasyCount, &stats.MediumCount, &stats.HardCount}
	for i, tier := range user.SubmitStats.AcSubmissionNum {
		if i >= len(tiers) {
			break
		}
		*tiers[i] = strconv.Itoa(tier.Count)
	}

	if ranking := resp.Data.UserContestRanking; ranking != nil {
		rating := strconv.FormatFloat(math.Round(ranking.Rating), 'f', 0, 64)
		stats.Rating = &rating
		if ranking.GlobalRanking > 0 {
			stats.GlobalRank = model.StringPtr(strconv.Itoa(ranking.GlobalRanking))
		}
		stats.TotalContest = strconv.Itoa(ranking.AttendedContestsCount)
	}
	return stats, nil
}

// leetcodeUserMissing reports whether a GraphQL error means the account
// does not exist, as opposed to rate limiting or a schema failure.
func leetcodeUserMissing(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "does not exist") || strings.Contains(msg, "not found")
}

func (c *LeetCodeClient) Upcoming(ctx context.Context) ([]model.Contest, error) {
	body, err := c.query(ctx, GraphQLRequest{
		Query:         leetcodeContestsQuery,
		Variables:     map[string]interface{}{},
		OperationName: "upcomingContests",
	})
	if err != nil {
		return nil, err
	}

	var resp leetcodeContestsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("leetcode: %w: %v", ErrUnexpectedResponse, err)
	}
	if len(resp.Errors) > 0 && len(resp.Data.UpcomingContests) == 0 {
		return nil, fmt.Errorf("leetcode: %w: %s", ErrUnexpectedResponse, resp.Errors[0].Message)
	}

	out := make([]model.Contest, 0, len(resp.Data.UpcomingContests))
	for _, ct := range resp.Data.UpcomingContests {
		out = append(out, model.Contest{
			Platform:  model.PlatformLeetCode,
			Name:      ct.Title,
			URL:       leetcodeContestURL + ct.TitleSlug,
			StartTime: time.Unix(ct.StartTime, 0).UTC(),
			Duration:  time.Duration(ct.Duration) * time.Second,
		})
	}
	return out, nil
}
