package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/abhishek622/coderstat/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codechefServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ravi_dev", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fixture(t, "codechef_profile.html"))
	})
	mux.HandleFunc("/new_coder", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fixture(t, "codechef_unrated.html"))
	})
	mux.HandleFunc("/redirected", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Practice coding</h1></body></html>`))
	})
	return httptest.NewServer(mux)
}

func TestCodeChefClient_FetchStats(t *testing.T) {
	srv := codechefServer(t)
	defer srv.Close()

	testCases := []struct {
		name     string
		username string
		want     func(t *testing.T, s model.PlatformStats)
	}{
		{
			name:     "rated user",
			username: "ravi_dev",
			want: func(t *testing.T, s model.PlatformStats) {
				assert.Empty(t, s.Error)
				require.NotNil(t, s.Rating)
				assert.Equal(t, "1854", *s.Rating)
				require.NotNil(t, s.HighestRating)
				assert.Equal(t, "1923", *s.HighestRating)
				require.NotNil(t, s.GlobalRank)
				assert.Equal(t, "4521", *s.GlobalRank)
				require.NotNil(t, s.CountryRank)
				assert.Equal(t, "3987", *s.CountryRank)
				assert.Equal(t, "287", s.SolvedCount)
				assert.Equal(t, "34", s.TotalContest)
				assert.Equal(t, "0", s.EasyCount)
				assert.Equal(t, "0", s.FundamentalCount)
			},
		},
		{
			name:     "unrated user shows question mark",
			username: "new_coder",
			want: func(t *testing.T, s model.PlatformStats) {
				assert.Empty(t, s.Error)
				assert.Nil(t, s.Rating)
				assert.Nil(t, s.HighestRating)
				assert.Nil(t, s.GlobalRank)
				assert.Nil(t, s.CountryRank)
				assert.Equal(t, "3", s.SolvedCount)
				assert.Equal(t, "0", s.TotalContest)
			},
		},
		{
			name:     "profile page 404",
			username: "missing",
			want: func(t *testing.T, s model.PlatformStats) {
				assertFailed(t, s, model.PlatformCodeChef, "missing")
				assert.Equal(t, "0", s.SolvedCount)
				assert.Nil(t, s.Rating)
				assert.Contains(t, s.Error, "404")
			},
		},
		{
			name:     "redirected to a non-profile page",
			username: "redirected",
			want: func(t *testing.T, s model.PlatformStats) {
				assertFailed(t, s, model.PlatformCodeChef, "redirected")
				assert.Contains(t, s.Error, "user not found")
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCodeChefClient(testOptions(srv.URL)...)
			s := c.FetchStats(context.Background(), tc.username)
			assert.Equal(t, model.PlatformCodeChef, s.Platform)
			assert.Equal(t, tc.username, s.Username)
			assert.Equal(t, fixedNow, s.LastUpdated)
			tc.want(t, s)
		})
	}
}

func TestCodeChefExtractors(t *testing.T) {
	doc := func(t *testing.T, html string) *goquery.Document {
		d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		require.NoError(t, err)
		return d
	}

	testCases := []struct {
		name        string
		html        string
		rating      string
		highest     string
		global      string
		country     string
		solved      string
		contestsNum string
	}{
		{
			name:    "bare question mark rating",
			html:    `<div class="rating-number">?</div>`,
			rating:  "",
			highest: "",
		},
		{
			name:        "highest rating outside header",
			html:        `<div class="rating-number">1500</div><p>Highest Rating 1610</p><h3>Contests (5)</h3>`,
			rating:      "1500",
			highest:     "1610",
			contestsNum: "5",
		},
		{
			name:   "single rank item",
			html:   `<div class="rating-ranks"><ul><li><strong>77</strong> Global Rank</li></ul></div>`,
			global: "77",
		},
		{
			name:    "rank without strong",
			html:    `<div class="rating-ranks"><ul><li>120 Global Rank</li><li>14 Country Rank</li></ul></div>`,
			global:  "120",
			country: "14",
		},
		{
			name:   "solved label",
			html:   `<section class="problems-solved"><h3>Total Problems Solved: 1024</h3></section>`,
			solved: "1024",
		},
		{
			name: "renamed markup",
			html: `<div class="new-rating">1500</div>`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := doc(t, tc.html)

			rating, ok := extractCodeChefRating(d)
			assert.Equal(t, tc.rating != "", ok)
			assert.Equal(t, tc.rating, rating)

			highest, ok := extractHighestRating(d)
			assert.Equal(t, tc.highest != "", ok)
			assert.Equal(t, tc.highest, highest)

			global, country := extractRanks(d)
			assert.Equal(t, tc.global, global)
			assert.Equal(t, tc.country, country)

			solved, ok := extractProblemsSolved(d.Text())
			assert.Equal(t, tc.solved != "", ok)
			assert.Equal(t, tc.solved, solved)

			contests, ok := extractContestCount(d.Text())
			assert.Equal(t, tc.contestsNum != "", ok)
			assert.Equal(t, tc.contestsNum, contests)
		})
	}
}
