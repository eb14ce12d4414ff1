package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/momoplay/rank-server/internal/apierr"
	"github.com/momoplay/rank-server/internal/domain/rank"
	"github.com/momoplay/rank-server/internal/registry"
	"github.com/momoplay/rank-server/internal/repo"
	"github.com/momoplay/rank-server/internal/scheduler"
)

// memDurable is an in-memory DurableStore for service tests.
type memDurable struct {
	configs   []rank.Config
	rows      map[string][]rank.UserScore // keyed by appid/rankKey
	insertErr error
	cleared   []string
	deleted   []string
}

func newMemDurable() *memDurable {
	return &memDurable{rows: map[string][]rank.UserScore{}}
}

func boardKey(appid, rankKey string) string { return appid + "/" + rankKey }

func (m *memDurable) UpsertScore(_ context.Context, appid, rankKey string, row rank.UserScore) error {
	key := boardKey(appid, rankKey)
	for i, r := range m.rows[key] {
		if r.Openid == row.Openid {
			m.rows[key][i] = row
			return nil
		}
	}
	m.rows[key] = append(m.rows[key], row)
	return nil
}

func (m *memDurable) UserScore(_ context.Context, appid, rankKey, openid string) (rank.UserScore, error) {
	for _, r := range m.rows[boardKey(appid, rankKey)] {
		if r.Openid == openid {
			return r, nil
		}
	}
	return rank.UserScore{}, repo.ErrScoreNotFound
}

func (m *memDurable) PageScores(_ context.Context, appid, rankKey string, offset, limit int64) ([]rank.UserScore, error) {
	rows := m.rows[boardKey(appid, rankKey)]
	if offset >= int64(len(rows)) {
		return nil, nil
	}
	end := offset + limit
	if end > int64(len(rows)) {
		end = int64(len(rows))
	}
	return rows[offset:end], nil
}

func (m *memDurable) ClearScores(_ context.Context, appid, rankKey string) error {
	key := boardKey(appid, rankKey)
	m.cleared = append(m.cleared, key)
	delete(m.rows, key)
	return nil
}

func (m *memDurable) Configs(context.Context) ([]rank.Config, error) {
	return append([]rank.Config(nil), m.configs...), nil
}

func (m *memDurable) InsertConfig(_ context.Context, cfg rank.Config) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, c := range m.configs {
		if c.Appid == cfg.Appid && c.RankKey == cfg.RankKey {
			return fmt.Errorf("insert config: %w", repo.ErrDuplicateConfig)
		}
	}
	m.configs = append(m.configs, cfg)
	return nil
}

func (m *memDurable) DeleteConfig(_ context.Context, appid, rankKey string) error {
	m.deleted = append(m.deleted, boardKey(appid, rankKey))
	for i, c := range m.configs {
		if c.Appid == appid && c.RankKey == rankKey {
			m.configs = append(m.configs[:i], m.configs[i+1:]...)
			break
		}
	}
	return nil
}

// memIndex is an in-memory IndexStore for service tests. Locked because
// the read path's detached backfill writes it from another goroutine.
type memIndex struct {
	mu        sync.Mutex
	scores    map[string]map[string]float64 // board → openid → encoded
	nicknames map[string]map[string]string  // appid → openid → nick
	cleared   []string
}

func newMemIndex() *memIndex {
	return &memIndex{
		scores:    map[string]map[string]float64{},
		nicknames: map[string]map[string]string{},
	}
}

func (m *memIndex) AddScore(_ context.Context, appid, rankKey, openid string, encoded float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := boardKey(appid, rankKey)
	if m.scores[key] == nil {
		m.scores[key] = map[string]float64{}
	}
	m.scores[key][openid] = encoded
	return nil
}

func (m *memIndex) Score(_ context.Context, appid, rankKey, openid string) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	encoded, ok := m.scores[boardKey(appid, rankKey)][openid]
	if !ok {
		return 0, false, nil
	}
	return rank.DecodeScore(encoded), true, nil
}

func (m *memIndex) Rank(_ context.Context, appid, rankKey, openid string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	board := m.scores[boardKey(appid, rankKey)]
	mine, ok := board[openid]
	if !ok {
		return 0, nil
	}
	pos := int64(1)
	for _, s := range board {
		if s > mine {
			pos++
		}
	}
	return pos, nil
}

func (m *memIndex) Top(_ context.Context, appid, rankKey string, n int64) ([]rank.IndexEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n <= 0 {
		return nil, nil
	}
	board := m.scores[boardKey(appid, rankKey)]
	entries := make([]rank.IndexEntry, 0, len(board))
	for openid, s := range board {
		entries = append(entries, rank.IndexEntry{Openid: openid, Encoded: s})
	}
	for i := 0; i < len(entries); i++ { // small N; selection sort is fine
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Encoded > entries[i].Encoded {
				entries[i], entries[j] = entries[j], entries[i]
			}
		}
	}
	if int64(len(entries)) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func (m *memIndex) SetNickname(_ context.Context, appid, openid, nickName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.nicknames[appid] == nil {
		m.nicknames[appid] = map[string]string{}
	}
	m.nicknames[appid][openid] = nickName
	return nil
}

func (m *memIndex) Nickname(_ context.Context, appid, openid string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	nick, ok := m.nicknames[appid][openid]
	if !ok {
		return "", repo.ErrNicknameNotFound
	}
	return nick, nil
}

func (m *memIndex) Clear(_ context.Context, appid, rankKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := boardKey(appid, rankKey)
	m.cleared = append(m.cleared, key)
	delete(m.scores, key)
	return nil
}

func newConfigFixture(t *testing.T, durable *memDurable, index *memIndex) (*ConfigService, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	sched := scheduler.New(zap.NewNop())
	svc := NewConfigService(zap.NewNop(), repo.New(zap.NewNop(), durable, index), reg, sched)
	return svc, reg
}

func TestBootstrapPopulatesRegistry(t *testing.T) {
	durable := newMemDurable()
	durable.configs = []rank.Config{
		{Appid: "app1", AppSecret: "secret-one", RankKey: "daily", CronExpression: "0 0 0 * * *"},
		{Appid: "app1", AppSecret: "secret-one", RankKey: "weekly"},
		{Appid: "app2", AppSecret: "secret-two", RankKey: "daily"},
	}
	svc, reg := newConfigFixture(t, durable, newMemIndex())

	require.NoError(t, svc.Bootstrap(context.Background(), false))

	_, configs := reg.Snapshot()
	assert.Len(t, configs, 3)

	secret, ok := reg.Secret("app1")
	require.True(t, ok)
	assert.Equal(t, "secret-one", secret)

	// The cron-bearing board got a scheduler handle.
	for _, e := range reg.Entries() {
		if e.RankKey == "daily" && e.Appid == "app1" {
			assert.NotZero(t, e.JobID)
		} else {
			assert.Zero(t, e.JobID)
		}
	}
}

func TestBootstrapSyncRedisRebuildsIndex(t *testing.T) {
	durable := newMemDurable()
	durable.configs = []rank.Config{{Appid: "app1", AppSecret: "secret-one", RankKey: "daily"}}
	durable.rows["app1/daily"] = []rank.UserScore{
		{Openid: "u1", NickName: "Alice", Score: 10},
		{Openid: "u2", NickName: "Bob", Score: 20},
	}
	index := newMemIndex()
	svc, _ := newConfigFixture(t, durable, index)

	require.NoError(t, svc.Bootstrap(context.Background(), true))

	assert.Len(t, index.scores["app1/daily"], 2)
	assert.Equal(t, "Alice", index.nicknames["app1"]["u1"])
}

func TestAddConfig(t *testing.T) {
	svc, reg := newConfigFixture(t, newMemDurable(), newMemIndex())
	require.NoError(t, svc.Bootstrap(context.Background(), false))

	cfg := rank.Config{Appid: "app1", AppSecret: "secret-one", RankKey: "daily", CronExpression: "0 0 0 * * *"}
	require.NoError(t, svc.AddConfig(context.Background(), cfg))

	assert.True(t, reg.Contains("app1", "daily"))
	secret, ok := reg.Secret("app1")
	require.True(t, ok)
	assert.Equal(t, "secret-one", secret)

	entries := reg.Entries()
	require.Len(t, entries, 1)
	assert.NotZero(t, entries[0].JobID, "cron-bearing board must carry a job handle")
}

func TestAddConfigRejectsInvalidCron(t *testing.T) {
	svc, reg := newConfigFixture(t, newMemDurable(), newMemIndex())
	require.NoError(t, svc.Bootstrap(context.Background(), false))

	cfg := rank.Config{Appid: "app1", AppSecret: "secret-one", RankKey: "daily", CronExpression: "not a cron"}
	err := svc.AddConfig(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeCommonRequest, apierr.Resolve(err).Code)
	assert.False(t, reg.Contains("app1", "daily"))
}

func TestAddConfigRejectsSecretMismatch(t *testing.T) {
	svc, _ := newConfigFixture(t, newMemDurable(), newMemIndex())
	require.NoError(t, svc.Bootstrap(context.Background(), false))

	require.NoError(t, svc.AddConfig(context.Background(),
		rank.Config{Appid: "app1", AppSecret: "secret-one", RankKey: "daily"}))

	err := svc.AddConfig(context.Background(),
		rank.Config{Appid: "app1", AppSecret: "different", RankKey: "weekly"})
	require.Error(t, err)
	assert.Equal(t, apierr.CodeCommonRequest, apierr.Resolve(err).Code)
}

func TestAddConfigRejectsDuplicate(t *testing.T) {
	svc, _ := newConfigFixture(t, newMemDurable(), newMemIndex())
	require.NoError(t, svc.Bootstrap(context.Background(), false))

	cfg := rank.Config{Appid: "app1", AppSecret: "secret-one", RankKey: "daily"}
	require.NoError(t, svc.AddConfig(context.Background(), cfg))

	err := svc.AddConfig(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, apierr.CodeUniqueConstraintViolation, apierr.Resolve(err).Code)
}

func TestAddConfigMapsDurableDuplicate(t *testing.T) {
	// The registry misses it but MySQL knows: another process already
	// inserted the row. The durable 1062 still maps to the 409-class code.
	durable := newMemDurable()
	durable.insertErr = fmt.Errorf("insert config: %w", repo.ErrDuplicateConfig)
	svc, _ := newConfigFixture(t, durable, newMemIndex())
	require.NoError(t, svc.Bootstrap(context.Background(), false))

	err := svc.AddConfig(context.Background(),
		rank.Config{Appid: "app1", AppSecret: "secret-one", RankKey: "daily"})
	require.Error(t, err)
	assert.Equal(t, apierr.CodeUniqueConstraintViolation, apierr.Resolve(err).Code)
}

func TestAddConfigHidesSQLDetail(t *testing.T) {
	durable := newMemDurable()
	durable.insertErr = errors.New("Error 1146: Table 'rank.rank_table_config' doesn't exist")
	svc, _ := newConfigFixture(t, durable, newMemIndex())
	require.NoError(t, svc.Bootstrap(context.Background(), false))

	err := svc.AddConfig(context.Background(),
		rank.Config{Appid: "app1", AppSecret: "secret-one", RankKey: "daily"})
	require.Error(t, err)

	e := apierr.Resolve(err)
	assert.Equal(t, apierr.CodeSomethingWentWrong, e.Code)
	assert.NotContains(t, e.Msg, "1146", "SQL detail must not reach the client")
}

func TestDeleteConfigTearsDownEverything(t *testing.T) {
	durable := newMemDurable()
	index := newMemIndex()
	svc, reg := newConfigFixture(t, durable, index)
	require.NoError(t, svc.Bootstrap(context.Background(), false))

	cfg := rank.Config{Appid: "app1", AppSecret: "secret-one", RankKey: "daily", CronExpression: "0 0 0 * * *"}
	require.NoError(t, svc.AddConfig(context.Background(), cfg))
	require.NoError(t, svc.DeleteConfig(context.Background(), "app1", "daily"))

	assert.False(t, reg.Contains("app1", "daily"))
	_, ok := reg.Secret("app1")
	assert.False(t, ok, "last board of the tenant drops the secret")
	assert.Contains(t, durable.deleted, "app1/daily")
	assert.Contains(t, durable.cleared, "app1/daily")
	assert.Contains(t, index.cleared, "app1/daily")
}

func TestDeleteConfigKeepsSharedSecret(t *testing.T) {
	svc, reg := newConfigFixture(t, newMemDurable(), newMemIndex())
	require.NoError(t, svc.Bootstrap(context.Background(), false))

	require.NoError(t, svc.AddConfig(context.Background(),
		rank.Config{Appid: "app1", AppSecret: "secret-one", RankKey: "daily"}))
	require.NoError(t, svc.AddConfig(context.Background(),
		rank.Config{Appid: "app1", AppSecret: "secret-one", RankKey: "weekly"}))

	require.NoError(t, svc.DeleteConfig(context.Background(), "app1", "daily"))

	secret, ok := reg.Secret("app1")
	require.True(t, ok, "sibling board keeps the tenant authenticating")
	assert.Equal(t, "secret-one", secret)
}

func TestDeleteConfigNotFound(t *testing.T) {
	svc, _ := newConfigFixture(t, newMemDurable(), newMemIndex())
	require.NoError(t, svc.Bootstrap(context.Background(), false))

	err := svc.DeleteConfig(context.Background(), "ghost", "daily")
	require.Error(t, err)
	assert.Equal(t, apierr.CodeCommonRequest, apierr.Resolve(err).Code)
}

func TestAddThenDeleteRestoresInitialState(t *testing.T) {
	svc, reg := newConfigFixture(t, newMemDurable(), newMemIndex())
	require.NoError(t, svc.Bootstrap(context.Background(), false))
	before, _ := reg.Snapshot()

	cfg := rank.Config{Appid: "app1", AppSecret: "secret-one", RankKey: "daily"}
	require.NoError(t, svc.AddConfig(context.Background(), cfg))
	require.NoError(t, svc.DeleteConfig(context.Background(), "app1", "daily"))

	after, configs := reg.Snapshot()
	assert.Empty(t, configs)
	_, ok := reg.Secret("app1")
	assert.False(t, ok)
	assert.GreaterOrEqual(t, after, before, "update time never runs backwards")
}
