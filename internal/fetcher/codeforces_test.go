package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abhishek622/coderstat/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codeforcesServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/user.info", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("handles") {
		case "tourist_fan":
			_, _ = w.Write(fixture(t, "codeforces_user_info.json"))
		case "unrated":
			_, _ = w.Write([]byte(`{"status":"OK","result":[{"handle":"unrated","rank":""}]}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"status":"FAILED","comment":"handles: User with handle ` +
				r.URL.Query().Get("handles") + ` not found"}`))
		}
	})
	mux.HandleFunc("/user.status", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("handle") {
		case "tourist_fan":
			_, _ = w.Write(fixture(t, "codeforces_user_status.json"))
		default:
			_, _ = w.Write([]byte(`{"status":"OK","result":[]}`))
		}
	})
	mux.HandleFunc("/contest.list", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(fixture(t, "codeforces_contests.json"))
	})
	return httptest.NewServer(mux)
}

func TestCodeforcesClient_FetchStats(t *testing.T) {
	srv := codeforcesServer(t)
	defer srv.Close()

	testCases := []struct {
		name     string
		username string
		want     func(t *testing.T, s model.PlatformStats)
	}{
		{
			name:     "rated user",
			username: "tourist_fan",
			want: func(t *testing.T, s model.PlatformStats) {
				assert.Empty(t, s.Error)
				// 1A accepted twice, 1B once; 4A and 4C never accepted.
				assert.Equal(t, "2", s.SolvedCount)
				require.NotNil(t, s.Rating)
				assert.Equal(t, "1724", *s.Rating)
				require.NotNil(t, s.HighestRating)
				assert.Equal(t, "1893", *s.HighestRating)
				require.NotNil(t, s.GlobalRank)
				assert.Equal(t, "expert", *s.GlobalRank)
				assert.Equal(t, "1", s.TotalContest)
				assert.Equal(t, "0", s.EasyCount)
				assert.Equal(t, "0", s.MediumCount)
				assert.Equal(t, "0", s.HardCount)
			},
		},
		{
			name:     "unrated user",
			username: "unrated",
			want: func(t *testing.T, s model.PlatformStats) {
				assert.Empty(t, s.Error)
				assert.Equal(t, "0", s.SolvedCount)
				assert.Nil(t, s.Rating)
				assert.Nil(t, s.HighestRating)
				assert.Nil(t, s.GlobalRank)
				assert.Equal(t, "0", s.TotalContest)
			},
		},
		{
			name:     "unknown handle",
			username: "nobody",
			want: func(t *testing.T, s model.PlatformStats) {
				assertFailed(t, s, model.PlatformCodeforces, "nobody")
				assert.Contains(t, s.Error, "User with handle nobody not found")
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCodeforcesClient(testOptions(srv.URL)...)
			s := c.FetchStats(context.Background(), tc.username)
			assert.Equal(t, model.PlatformCodeforces, s.Platform)
			assert.Equal(t, tc.username, s.Username)
			tc.want(t, s)
		})
	}
}

func TestCountSolved(t *testing.T) {
	sub := func(contestID int, index, verdict string) cfSubmission {
		var s cfSubmission
		s.ContestID = contestID
		s.Problem.ContestID = contestID
		s.Problem.Index = index
		s.Verdict = verdict
		return s
	}
	testCases := []struct {
		name        string
		submissions []cfSubmission
		want        int
	}{
		{
			name: "duplicate accepted submissions count once",
			submissions: []cfSubmission{
				sub(1, "A", "OK"),
				sub(1, "A", "OK"),
				sub(1, "B", "OK"),
			},
			want: 2,
		},
		{
			name: "same index in different contests",
			submissions: []cfSubmission{
				sub(1, "A", "OK"),
				sub(2, "A", "OK"),
			},
			want: 2,
		},
		{
			name: "only accepted verdicts",
			submissions: []cfSubmission{
				sub(1, "A", "WRONG_ANSWER"),
				sub(1, "A", "COMPILATION_ERROR"),
				sub(1, "B", "TESTING"),
			},
			want: 0,
		},
		{
			name: "no submissions",
			want: 0,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, countSolved(tc.submissions))
		})
	}
}

func TestCodeforcesClient_Upcoming(t *testing.T) {
	srv := codeforcesServer(t)
	defer srv.Close()

	c := NewCodeforcesClient(testOptions(srv.URL)...)
	contests, err := c.Upcoming(context.Background())
	require.NoError(t, err)
	require.Len(t, contests, 2)
	assert.Equal(t, "Codeforces Round 1060 (Div. 2)", contests[0].Name)
	assert.Equal(t, "https://codeforces.com/contest/2150", contests[0].URL)
	assert.Equal(t, 2*time.Hour, contests[0].Duration)
	assert.Equal(t, model.PlatformCodeforces, contests[1].Platform)
}

func TestCodeforcesClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		switch r.URL.Path {
		case "/user.info":
			_, _ = w.Write(fixture(t, "codeforces_user_info.json"))
		default:
			_, _ = w.Write(fixture(t, "codeforces_user_status.json"))
		}
	}))
	defer srv.Close()

	h := NewHTTP(HTTPConfig{Timeout: time.Second, Retries: 1, Backoff: time.Millisecond})
	c := NewCodeforcesClient(testOptions(srv.URL, WithHTTP(h))...)
	s := c.FetchStats(context.Background(), "tourist_fan")
	assert.Empty(t, s.Error)
	assert.Equal(t, "2", s.SolvedCount)
	assert.Equal(t, int32(3), calls.Load())
}
