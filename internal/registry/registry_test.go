package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momoplay/rank-server/internal/domain/rank"
)

func testConfigs() []rank.Config {
	return []rank.Config{
		{Appid: "app-one", AppSecret: "secret-one", RankKey: "weekly", CronExpression: "0 0 * * 1"},
		{Appid: "app-one", AppSecret: "secret-one", RankKey: "daily", CronExpression: "0 0 * * *"},
		{Appid: "app-two", AppSecret: "secret-two", RankKey: "season"},
	}
}

// fixedClock pins the registry clock so update-time assertions are exact.
func fixedClock(r *Registry, millis int64) {
	r.now = func() time.Time { return time.UnixMilli(millis) }
}

func TestBootstrap(t *testing.T) {
	r := New()
	fixedClock(r, 1000)
	r.Bootstrap(testConfigs())

	assert.EqualValues(t, 1000, r.UpdatedAt())
	assert.True(t, r.Contains("app-one", "weekly"))
	assert.True(t, r.Contains("app-one", "daily"))
	assert.True(t, r.Contains("app-two", "season"))
	assert.False(t, r.Contains("app-one", "season"))

	secret, ok := r.Secret("app-one")
	require.True(t, ok)
	assert.Equal(t, "secret-one", secret)

	_, ok = r.Secret("app-three")
	assert.False(t, ok)
}

func TestAddBumpsUpdateTime(t *testing.T) {
	r := New()
	fixedClock(r, 1000)
	r.Bootstrap(nil)

	fixedClock(r, 2000)
	r.Add(rank.Config{Appid: "app-new", AppSecret: "secret-new", RankKey: "weekly"}, 7)

	assert.EqualValues(t, 2000, r.UpdatedAt())
	assert.True(t, r.Contains("app-new", "weekly"))

	secret, ok := r.Secret("app-new")
	require.True(t, ok)
	assert.Equal(t, "secret-new", secret)

	entries := r.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, 7, entries[0].JobID)
}

func TestRemoveLastBoardDropsSecret(t *testing.T) {
	r := New()
	fixedClock(r, 1000)
	r.Bootstrap(testConfigs())

	fixedClock(r, 2000)
	removed, ok := r.Remove("app-two", "season")
	require.True(t, ok)
	assert.Equal(t, "app-two", removed.Appid)
	assert.EqualValues(t, 2000, r.UpdatedAt())

	_, ok = r.Secret("app-two")
	assert.False(t, ok, "last board removal should drop the tenant secret")
}

func TestRemoveKeepsSecretForSiblingBoards(t *testing.T) {
	r := New()
	fixedClock(r, 1000)
	r.Bootstrap(testConfigs())

	_, ok := r.Remove("app-one", "weekly")
	require.True(t, ok)

	secret, ok := r.Secret("app-one")
	require.True(t, ok, "tenant still has the daily board")
	assert.Equal(t, "secret-one", secret)
	assert.False(t, r.Contains("app-one", "weekly"))
	assert.True(t, r.Contains("app-one", "daily"))
}

func TestRemoveUnknownBoard(t *testing.T) {
	r := New()
	fixedClock(r, 1000)
	r.Bootstrap(testConfigs())

	fixedClock(r, 2000)
	_, ok := r.Remove("app-one", "monthly")
	assert.False(t, ok)
	assert.EqualValues(t, 1000, r.UpdatedAt(), "failed removal must not bump the update time")
}

func TestUpdateTimeStrictlyIncreasesWithinOneMillisecond(t *testing.T) {
	r := New()
	fixedClock(r, 1000)
	r.Bootstrap(nil)

	r.Add(rank.Config{Appid: "app-one", AppSecret: "secret-one", RankKey: "weekly"}, 0)
	afterAdd := r.UpdatedAt()
	r.Remove("app-one", "weekly")
	afterRemove := r.UpdatedAt()

	assert.Greater(t, afterAdd, int64(1000), "same-millisecond mutation must still advance the cursor")
	assert.Greater(t, afterRemove, afterAdd)
}

func TestReplaceAll(t *testing.T) {
	r := New()
	fixedClock(r, 1000)
	r.Bootstrap(testConfigs())

	next := []rank.Config{
		{Appid: "app-three", AppSecret: "secret-three", RankKey: "weekly"},
	}
	r.ReplaceAll(5000, next)

	assert.EqualValues(t, 5000, r.UpdatedAt(), "replica adopts the master update time")
	assert.True(t, r.Contains("app-three", "weekly"))
	assert.False(t, r.Contains("app-one", "weekly"))

	_, ok := r.Secret("app-one")
	assert.False(t, ok, "secrets are rebuilt from the snapshot")
	secret, ok := r.Secret("app-three")
	require.True(t, ok)
	assert.Equal(t, "secret-three", secret)
}

func TestReplaceAllSameTimeIsNoop(t *testing.T) {
	r := New()
	fixedClock(r, 1000)
	r.Bootstrap(testConfigs())

	r.ReplaceAll(1000, nil)

	assert.True(t, r.Contains("app-one", "weekly"), "matching update time must not replace anything")
	_, ok := r.Secret("app-one")
	assert.True(t, ok)
}

func TestSetJobID(t *testing.T) {
	r := New()
	fixedClock(r, 1000)
	r.Bootstrap(testConfigs())

	r.SetJobID("app-one", "weekly", 42)

	var found bool
	for _, e := range r.Entries() {
		if e.Appid == "app-one" && e.RankKey == "weekly" {
			found = true
			assert.Equal(t, 42, e.JobID)
		}
	}
	require.True(t, found)
}

func TestSnapshotCursorMatchesConfigList(t *testing.T) {
	r := New()
	fixedClock(r, 1000)
	r.Bootstrap(nil)

	// With the clock pinned, every Add advances the cursor by exactly
	// one, so a snapshot taken after k mutations must carry cursor
	// 1000+k together with a k-entry list. A newer cursor paired with
	// an older list would make a replica record the cursor, compare
	// equal on the next poll, and never fetch the mutated board.
	const mutations = 2000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < mutations; i++ {
			r.Add(rank.Config{Appid: "app-load", AppSecret: "secret-load", RankKey: "board"}, 0)
		}
	}()

	for {
		updateTime, configs := r.Snapshot()
		require.EqualValues(t, updateTime-1000, len(configs),
			"snapshot cursor must describe exactly the config list it was taken with")
		select {
		case <-done:
			updateTime, configs = r.Snapshot()
			assert.EqualValues(t, 1000+mutations, updateTime)
			assert.Len(t, configs, mutations)
			return
		default:
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	r := New()
	fixedClock(r, 1000)
	r.Bootstrap(testConfigs())

	updateTime, configs := r.Snapshot()
	assert.EqualValues(t, 1000, updateTime)
	require.Len(t, configs, 3)

	configs[0].Appid = "mutated"
	assert.True(t, r.Contains("app-one", "weekly"), "mutating the snapshot must not affect the registry")
}
