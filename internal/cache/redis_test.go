package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRedis implements the two commands JSONCache issues; any other call
// panics on the nil embedded interface.
type memRedis struct {
	redis.Cmdable
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
	keys   []string
}

func newMemRedis() *memRedis {
	return &memRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memRedis) Get(_ context.Context, key string) *redis.StringCmd {
	m.keys = append(m.keys, key)
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	m.keys = append(m.keys, key)
	if m.setErr != nil {
		return redis.NewStatusResult("", m.setErr)
	}
	b, _ := value.([]byte)
	m.data[key] = string(b)
	m.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

type entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONCache_Get(t *testing.T) {
	testCases := []struct {
		name    string
		stored  map[string]string
		getErr  error
		wantHit bool
		want    entry
		wantErr string
	}{
		{
			name:    "miss",
			wantHit: false,
		},
		{
			name:    "hit",
			stored:  map[string]string{"coderstat:stats:lc:asha": `{"name":"asha","count":7}`},
			wantHit: true,
			want:    entry{Name: "asha", Count: 7},
		},
		{
			name:    "corrupt value",
			stored:  map[string]string{"coderstat:stats:lc:asha": `{"name":`},
			wantErr: "decode cached stats:lc:asha",
		},
		{
			name:    "redis down",
			getErr:  errors.New("dial tcp: connection refused"),
			wantErr: "redis get stats:lc:asha",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rdb := newMemRedis()
			for k, v := range tc.stored {
				rdb.data[k] = v
			}
			rdb.getErr = tc.getErr
			c := NewJSONCache(rdb, "coderstat:")

			var got entry
			hit, err := c.Get(context.Background(), "stats:lc:asha", &got)
			assert.Equal(t, []string{"coderstat:stats:lc:asha"}, rdb.keys)
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				assert.False(t, hit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantHit, hit)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestJSONCache_SetThenGet(t *testing.T) {
	rdb := newMemRedis()
	c := NewJSONCache(rdb, "coderstat:")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "contests:upcoming", entry{Name: "Weekly Contest 470", Count: 2}, time.Hour))
	assert.Equal(t, `{"name":"Weekly Contest 470","count":2}`, rdb.data["coderstat:contests:upcoming"])
	assert.Equal(t, time.Hour, rdb.ttls["coderstat:contests:upcoming"])

	var got entry
	hit, err := c.Get(ctx, "contests:upcoming", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, entry{Name: "Weekly Contest 470", Count: 2}, got)
}

func TestJSONCache_SetErrors(t *testing.T) {
	t.Run("unencodable value", func(t *testing.T) {
		rdb := newMemRedis()
		err := NewJSONCache(rdb, "coderstat:").Set(context.Background(), "k", make(chan int), time.Minute)
		assert.ErrorContains(t, err, "encode k")
		assert.Empty(t, rdb.keys)
	})

	t.Run("redis down", func(t *testing.T) {
		rdb := newMemRedis()
		rdb.setErr = errors.New("dial tcp: connection refused")
		err := NewJSONCache(rdb, "coderstat:").Set(context.Background(), "k", entry{}, time.Minute)
		assert.ErrorContains(t, err, "redis set k")
		assert.Equal(t, []string{"coderstat:k"}, rdb.keys)
	})
}

func TestNoop(t *testing.T) {
	var c Noop
	require.NoError(t, c.Set(context.Background(), "k", entry{Name: "x"}, time.Minute))

	var got entry
	hit, err := c.Get(context.Background(), "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Zero(t, got)
}
