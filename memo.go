package conditional

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/always-cache/conditional/cache"
	"github.com/always-cache/conditional/rfc9111"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrNoResult is returned when a producer returns neither a result nor an error.
var ErrNoResult = errors.New("producer returned no result")

// Memo caches results by key on top of a CacheProvider.
//
// Production is not deduplicated: concurrent misses for the same key each
// call their producer, and the last write wins.
type Memo struct {
	provider cache.CacheProvider
	log      zerolog.Logger
	now      func() time.Time
}

// NewMemo returns a memo storing results in the given provider.
// It logs to the global zerolog logger until given one with WithLogger.
func NewMemo(provider cache.CacheProvider) *Memo {
	return &Memo{
		provider: provider,
		log:      log.Logger.With().Str("component", "memo").Logger(),
		now:      time.Now,
	}
}

// WithLogger returns a copy of the memo logging to logger.
// The copy shares the provider.
func (m *Memo) WithLogger(logger zerolog.Logger) *Memo {
	mc := *m
	mc.log = logger.With().Str("component", "memo").Logger()
	return &mc
}

// GetOrCompute returns the result stored under key, or calls produce and
// stores its result. The boolean reports whether the result came from the
// store, in which case produce was not called.
//
// Only 200 (OK) results a shared cache may reuse are stored: not no-store,
// private or no-cache, and without Vary. Producer errors are returned as-is
// and never stored. A failure to store a produced result is logged, and the
// result returned anyway.
func (m *Memo) GetOrCompute(key string, produce func() (*Result, error)) (*Result, bool, error) {
	if res, ok, err := m.get(key); err != nil {
		return nil, false, err
	} else if ok {
		return res, true, nil
	}

	res, err := produce()
	if err != nil {
		return nil, false, err
	}
	if res == nil {
		return nil, false, ErrNoResult
	}
	m.Store(key, res)
	return res, false, nil
}

// Store stores a produced result under key if it is storable, reporting
// whether it was. Failures are logged.
func (m *Memo) Store(key string, res *Result) bool {
	if !storable(res) {
		return false
	}
	if err := m.put(key, res); err != nil {
		m.log.Error().Err(err).Str("key", key).Msg("Could not store result")
		return false
	}
	return true
}

func (m *Memo) get(key string) (*Result, bool, error) {
	b, ok, err := m.provider.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("memo get %q: %w", key, err)
	}
	if !ok {
		m.log.Trace().Str("key", key).Msg("Miss")
		return nil, false, nil
	}
	res, storedAt, err := bytesToResult(b)
	if err != nil {
		// a corrupt entry is replaced by a fresh result
		m.log.Error().Err(err).Str("key", key).Msg("Could not decode stored result, purging")
		if err := m.provider.Purge(key); err != nil {
			return nil, false, fmt.Errorf("memo purge %q: %w", key, err)
		}
		return nil, false, nil
	}
	// the result has aged while stored
	if res.Age != nil && !storedAt.IsZero() {
		if resident := m.now().Sub(storedAt); resident > 0 {
			res.Age = Duration(*res.Age + resident)
		}
	}
	m.log.Trace().Str("key", key).Msg("Hit")
	return res, true, nil
}

func (m *Memo) put(key string, res *Result) error {
	now := m.now()
	b, err := resultToBytes(res, now)
	if err != nil {
		return err
	}
	expires := m.expiration(res, now)
	if !expires.After(now) {
		m.log.Trace().Str("key", key).Msg("Result already stale, not storing")
		return nil
	}
	m.log.Trace().Str("key", key).Time("expires", expires).Msg("Storing result")
	return m.provider.Put(key, expires, b)
}

// expiration returns the time at which a result stored now becomes stale:
// the freshness lifetime of its cache headers minus its age, or
// DefaultMaxAge if the headers carry no explicit expiration time.
func (m *Memo) expiration(res *Result, now time.Time) time.Time {
	h := make(http.Header)
	Decision{Proceed, res.CacheDirectives}.WriteHeaders(h)
	expires, ok := rfc9111.GetExpiration(h, now)
	if !ok {
		return now.Add(DefaultMaxAge)
	}
	if res.Age != nil {
		expires = expires.Add(-*res.Age)
	}
	return expires
}

// storable reports whether a shared store may keep the result. Keys do not
// include request fields, so results varying on them are not stored.
// No-cache results would need revalidation on every use.
func storable(res *Result) bool {
	return !res.notModified &&
		res.status() == http.StatusOK &&
		!res.Flags.Has(NoStore) &&
		!res.Flags.Has(Private) &&
		!res.Flags.Has(NoCache) &&
		!rfc9111.HasVary(res.Header)
}

// Purge removes the result stored under key.
func (m *Memo) Purge(key string) error {
	m.log.Trace().Str("key", key).Msg("Purging")
	return m.provider.Purge(key)
}

// PurgePrefix removes all results stored under keys with the given prefix,
// returning the number of keys purged.
func (m *Memo) PurgePrefix(prefix string) (int, error) {
	var keys []string
	if err := m.provider.Keys(prefix, func(key string) {
		keys = append(keys, key)
	}); err != nil {
		return 0, err
	}
	for i, key := range keys {
		if err := m.Purge(key); err != nil {
			return i, err
		}
	}
	return len(keys), nil
}
