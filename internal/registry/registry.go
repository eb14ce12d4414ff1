// Package registry keeps the active leaderboard configuration in process
// memory. It is the single source the hot request path consults: the
// signature middleware resolves app secrets here and never touches MySQL.
package registry

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/momoplay/rank-server/internal/domain/rank"
)

// Entry is one active board plus its reset-job handle. A zero JobID means
// no job: boards without a cron expression, and every board on a replica.
type Entry struct {
	rank.Config
	JobID int
}

// Registry holds the config list, the appid → secret map, and the last
// mutation timestamp replicas compare against. The list and the secret
// map are guarded separately so secret lookups on the request path never
// contend with config-list work.
type Registry struct {
	mu      sync.Mutex
	entries []Entry

	secmu   sync.RWMutex
	secrets map[string]string

	updatedAt atomic.Int64 // unix milliseconds

	now func() time.Time
}

// New builds an empty registry.
func New() *Registry {
	return &Registry{
		secrets: make(map[string]string),
		now:     time.Now,
	}
}

// Bootstrap installs the authoritative config list at startup and stamps
// the registry with the local clock.
func (r *Registry) Bootstrap(configs []rank.Config) {
	r.secmu.Lock()
	for _, cfg := range configs {
		r.secrets[cfg.Appid] = cfg.AppSecret
	}
	r.secmu.Unlock()

	entries := make([]Entry, 0, len(configs))
	for _, cfg := range configs {
		entries = append(entries, Entry{Config: cfg})
	}
	r.mu.Lock()
	r.entries = entries
	r.bump()
	r.mu.Unlock()
}

// bump advances the update time to the wall clock, or one past the
// previous value when two mutations land in the same millisecond. The
// cursor must move on every mutation or replicas skip the snapshot.
// Callers hold mu: the cursor and the config list change together, so
// Snapshot never pairs a newer cursor with an older list.
func (r *Registry) bump() {
	now := r.now().UnixMilli()
	for {
		prev := r.updatedAt.Load()
		next := now
		if next <= prev {
			next = prev + 1
		}
		if r.updatedAt.CompareAndSwap(prev, next) {
			return
		}
	}
}

// Add appends one board and its secret, bumping the update time.
func (r *Registry) Add(cfg rank.Config, jobID int) {
	r.secmu.Lock()
	r.secrets[cfg.Appid] = cfg.AppSecret
	r.secmu.Unlock()

	r.mu.Lock()
	r.entries = append(r.entries, Entry{Config: cfg, JobID: jobID})
	r.bump()
	r.mu.Unlock()
}

// Remove deletes the board, returning its entry for job cancellation.
// The appid's secret is dropped only when this was the tenant's last
// board, so sibling boards keep authenticating.
func (r *Registry) Remove(appid, rankKey string) (Entry, bool) {
	r.mu.Lock()
	idx := -1
	tenantBoards := 0
	for i, e := range r.entries {
		if e.Appid == appid {
			tenantBoards++
			if e.RankKey == rankKey {
				idx = i
			}
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return Entry{}, false
	}
	removed := r.entries[idx]
	r.entries = append(r.entries[:idx], r.entries[idx+1:]...)
	r.bump()
	r.mu.Unlock()

	if tenantBoards <= 1 {
		r.secmu.Lock()
		delete(r.secrets, appid)
		r.secmu.Unlock()
	}
	return removed, true
}

// ReplaceAll swaps in the master's snapshot wholesale, adopting the
// master's update time. Secrets are rebuilt from the snapshot so deleted
// tenants stop authenticating on replicas too. A snapshot carrying the
// already-applied timestamp is a no-op.
func (r *Registry) ReplaceAll(updateTime int64, configs []rank.Config) {
	if r.updatedAt.Load() == updateTime {
		return
	}

	secrets := make(map[string]string, len(configs))
	entries := make([]Entry, 0, len(configs))
	for _, cfg := range configs {
		secrets[cfg.Appid] = cfg.AppSecret
		entries = append(entries, Entry{Config: cfg})
	}

	r.secmu.Lock()
	r.secrets = secrets
	r.secmu.Unlock()

	r.mu.Lock()
	r.entries = entries
	r.updatedAt.Store(updateTime)
	r.mu.Unlock()
}

// SetJobID records the scheduler handle for a board after boot-time
// scheduling.
func (r *Registry) SetJobID(appid, rankKey string, jobID int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.entries {
		if r.entries[i].Appid == appid && r.entries[i].RankKey == rankKey {
			r.entries[i].JobID = jobID
		}
	}
}

// Contains reports whether the board is registered.
func (r *Registry) Contains(appid, rankKey string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.entries {
		if e.Appid == appid && e.RankKey == rankKey {
			return true
		}
	}
	return false
}

// Secret resolves the tenant's app secret.
func (r *Registry) Secret(appid string) (string, bool) {
	r.secmu.RLock()
	defer r.secmu.RUnlock()
	secret, ok := r.secrets[appid]
	return secret, ok
}

// Snapshot returns the update time and a copy of the active configs.
// Both are read under the config lock so the cursor always describes
// exactly this list.
func (r *Registry) Snapshot() (int64, []rank.Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	configs := make([]rank.Config, 0, len(r.entries))
	for _, e := range r.entries {
		configs = append(configs, e.Config)
	}
	return r.updatedAt.Load(), configs
}

// Entries returns a copy of the active entries with their job handles.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// UpdatedAt returns the last mutation time in unix milliseconds.
func (r *Registry) UpdatedAt() int64 {
	return r.updatedAt.Load()
}
