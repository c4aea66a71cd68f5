package fetcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abhishek622/coderstat/internal/metrics"
	"github.com/abhishek622/coderstat/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClient struct {
	platform model.Platform
	fail     bool
	delay    time.Duration
	calls    atomic.Int32
}

func (s *stubClient) Platform() model.Platform { return s.platform }

func (s *stubClient) FetchStats(ctx context.Context, username string) model.PlatformStats {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.fail {
		return model.FailedStats(s.platform, username, errors.New("upstream down"), fixedNow)
	}
	st := model.NewStats(s.platform, username, fixedNow)
	st.SolvedCount = "10"
	return st
}

type stubContests struct {
	platform model.Platform
	contests []model.Contest
	err      error
}

func (s stubContests) Platform() model.Platform { return s.platform }

func (s stubContests) Upcoming(context.Context) ([]model.Contest, error) {
	return s.contests, s.err
}

func TestAggregator_FetchAll(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	leetcode := &stubClient{platform: model.PlatformLeetCode, delay: 20 * time.Millisecond}
	codeforces := &stubClient{platform: model.PlatformCodeforces, fail: true}
	codechef := &stubClient{platform: model.PlatformCodeChef}
	a := NewAggregator(zap.NewNop(), m, 2, leetcode, codeforces, codechef)
	a.now = func() time.Time { return fixedNow }

	handles := []model.PlatformHandle{
		{Platform: model.PlatformLeetCode, Username: "asha"},
		{Platform: model.PlatformCodeforces, Username: "asha_cf"},
		{Platform: model.PlatformGeeksforGeeks, Username: "asha_gfg"},
		{Platform: model.PlatformCodeChef, Username: "asha_cc"},
	}
	got := a.FetchAll(context.Background(), handles)
	require.Len(t, got, len(handles))

	for i, h := range handles {
		assert.Equal(t, h.Platform, got[i].Platform)
		assert.Equal(t, h.Username, got[i].Username)
	}
	assert.False(t, got[0].Failed())
	assert.Equal(t, "10", got[0].SolvedCount)
	assert.True(t, got[1].Failed())
	assert.True(t, got[2].Failed(), "unregistered platform yields an error record")
	assert.Contains(t, got[2].Error, "unknown platform")
	assert.False(t, got[3].Failed())

	assert.Equal(t, float64(1), testutil.ToFloat64(m.FetchTotal.WithLabelValues("LeetCode", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FetchTotal.WithLabelValues("Codeforces", "error")))
}

func TestAggregator_FetchStats(t *testing.T) {
	a := NewAggregator(nil, nil, 0, &stubClient{platform: model.PlatformLeetCode})

	s, err := a.FetchStats(context.Background(), model.PlatformLeetCode, "asha")
	require.NoError(t, err)
	assert.Equal(t, "10", s.SolvedCount)

	_, err = a.FetchStats(context.Background(), model.PlatformCodeChef, "asha")
	assert.ErrorIs(t, err, model.ErrUnknownPlatform)
}

func TestAggregator_UpcomingContests(t *testing.T) {
	at := func(h int) time.Time { return fixedNow.Add(time.Duration(h) * time.Hour) }

	testCases := []struct {
		name    string
		sources []ContestClient
		want    []string
		wantErr bool
	}{
		{
			name: "merged and sorted, started contests dropped",
			sources: []ContestClient{
				stubContests{platform: model.PlatformLeetCode, contests: []model.Contest{
					{Name: "Weekly 2", StartTime: at(30)},
					{Name: "Weekly 1", StartTime: at(-2)},
				}},
				stubContests{platform: model.PlatformCodeforces, contests: []model.Contest{
					{Name: "Round B", StartTime: at(5)},
					{Name: "Round A", StartTime: at(5)},
				}},
			},
			want: []string{"Round A", "Round B", "Weekly 2"},
		},
		{
			name: "failing source is skipped",
			sources: []ContestClient{
				stubContests{platform: model.PlatformLeetCode, err: errors.New("boom")},
				stubContests{platform: model.PlatformCodeforces, contests: []model.Contest{
					{Name: "Round A", StartTime: at(1)},
				}},
			},
			want: []string{"Round A"},
		},
		{
			name: "all sources failing",
			sources: []ContestClient{
				stubContests{platform: model.PlatformLeetCode, err: errors.New("boom")},
			},
			wantErr: true,
		},
		{
			name: "no sources",
			want: []string{},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAggregator(zap.NewNop(), nil, 0)
			a.now = func() time.Time { return fixedNow }
			a.AddContestSources(tc.sources...)

			got, err := a.UpcomingContests(context.Background())
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}
