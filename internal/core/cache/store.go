package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/spendwise_client/internal/apperrors"
	"github.com/SscSPs/spendwise_client/internal/core/domain"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// ErrStoreClosed is returned by reads on a store that is not initialized or already disposed.
var ErrStoreClosed = errors.New("query cache is not running")

// FetchPolicy decides how a read uses the cached value.
type FetchPolicy int

const (
	// CacheAndNetwork returns any cached value immediately and revalidates it in the background.
	CacheAndNetwork FetchPolicy = iota
	// CacheFirst only goes to the network when there is no fresh cached value.
	CacheFirst
)

// Key identifies a named query together with its variables.
type Key struct {
	Kind domain.QueryKind
	Vars string // Canonical JSON of the variables, empty when the query has none
}

// NewKey builds the cache key of kind with vars. A nil vars gives the variable-less key.
func NewKey(kind domain.QueryKind, vars any) (Key, error) {
	if vars == nil {
		return Key{Kind: kind}, nil
	}
	raw, err := json.Marshal(vars)
	if err != nil {
		return Key{}, fmt.Errorf("cache key for %s: %w", kind, err)
	}
	return Key{Kind: kind, Vars: string(raw)}, nil
}

func (k Key) String() string {
	if k.Vars == "" {
		return k.Kind.String()
	}
	return k.Kind.String() + "|" + k.Vars
}

// Fetcher loads the current value of a query from the remote service.
type Fetcher func(ctx context.Context) (any, error)

// Result is what a read hands to the presentation layer.
type Result[T any] struct {
	Data    T
	Loading bool // A network request for this key is still outstanding
	Stale   bool // Data was invalidated and has not been refreshed yet
	Err     error
}

type entry struct {
	value     any
	hasValue  bool
	stale     bool
	fetchedAt time.Time
	fetcher   Fetcher
	born      uint64 // Sequence number when the entry was created
	applied   uint64 // Sequence number of the request whose value is stored
}

// Store is the query cache: the latest known result of each named query, with a staleness flag.
// It has to be started with Init and stopped with Dispose.
type Store struct {
	mu      sync.Mutex
	entries *lru.Cache[Key, *entry]
	seq     uint64

	flight  singleflight.Group
	bg      sync.WaitGroup
	bgCtx   context.Context
	cancel  context.CancelFunc
	running bool

	purgeHooks []func()

	logger          *slog.Logger
	now             func() time.Time
	refreshTimeout  time.Duration
	revalidateAfter time.Duration
}

// StoreOption is a functional option for configuring the store.
type StoreOption func(*Store)

// WithLogger sets the logger used for background refresh failures.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithRefreshTimeout bounds each background revalidation.
func WithRefreshTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		s.refreshTimeout = d
	}
}

// WithRevalidateAfter skips cache-and-network revalidation of values younger than d.
func WithRevalidateAfter(d time.Duration) StoreOption {
	return func(s *Store) {
		s.revalidateAfter = d
	}
}

// NewStore creates a store holding at most size query results.
func NewStore(size int, options ...StoreOption) (*Store, error) {
	entries, err := lru.New[Key, *entry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}
	s := &Store{
		entries:        entries,
		logger:         slog.Default(),
		now:            time.Now,
		refreshTimeout: 30 * time.Second,
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// Init starts the store. Background revalidations run under ctx.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.bgCtx, s.cancel = context.WithCancel(ctx)
	s.running = true
}

// Dispose stops background work, waits for it and drops every entry.
func (s *Store) Dispose() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.bg.Wait()
	s.entries.Purge()
}

// Wait blocks until all background revalidations started so far have finished.
func (s *Store) Wait() {
	s.bg.Wait()
}

// Purge drops every entry and then runs the hooks registered with OnPurge. Completions of requests issued
// before the purge are discarded.
func (s *Store) Purge() {
	s.mu.Lock()
	s.entries.Purge()
	hooks := append([]func(){}, s.purgeHooks...)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

// OnPurge registers fn to run after every Purge. Views derived from cached queries use it to drop what
// they accumulated.
func (s *Store) OnPurge(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeHooks = append(s.purgeHooks, fn)
}

// Evict drops a single entry.
func (s *Store) Evict(key Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries.Remove(key)
}

// Len returns the number of cached queries.
func (s *Store) Len() int {
	return s.entries.Len()
}

// Keys returns the cached keys, oldest first.
func (s *Store) Keys() []Key {
	return s.entries.Keys()
}

// IsStale reports whether key is cached and marked stale.
func (s *Store) IsStale(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries.Peek(key)
	return ok && e.stale
}

// Peek returns the cached value of key without touching the network.
func Peek[T any](s *Store, key Key) (T, bool) {
	var zero T
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries.Peek(key)
	if !ok || !e.hasValue {
		return zero, false
	}
	v, ok := e.value.(T)
	return v, ok
}

// Read serves key under policy, loading it with fetch when needed.
func Read[T any](ctx context.Context, s *Store, key Key, policy FetchPolicy, fetch func(ctx context.Context) (T, error)) Result[T] {
	var zero T
	fetcher := func(ctx context.Context) (any, error) {
		return fetch(ctx)
	}

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return Result[T]{Err: ErrStoreClosed}
	}
	e := s.register(key, fetcher)
	cached, hasValue, stale, fetchedAt := e.value, e.hasValue, e.stale, e.fetchedAt
	s.mu.Unlock()

	if hasValue {
		data, ok := cached.(T)
		if !ok {
			return Result[T]{Err: fmt.Errorf("cached %s holds %T", key, cached)}
		}
		switch {
		case policy == CacheFirst && !stale:
			return Result[T]{Data: data}
		case policy == CacheAndNetwork:
			if !stale && s.revalidateAfter > 0 && s.now().Sub(fetchedAt) < s.revalidateAfter {
				return Result[T]{Data: data}
			}
			s.revalidate(key)
			return Result[T]{Data: data, Loading: true, Stale: stale}
		}
		// cache-first with a stale value: refresh before answering, fall back to the stale value on failure
		v, err := s.refresh(ctx, key)
		if err != nil {
			return Result[T]{Data: data, Stale: true, Err: err}
		}
		return typed[T](key, v)
	}

	v, err := s.refresh(ctx, key)
	if err != nil {
		return Result[T]{Data: zero, Err: err}
	}
	return typed[T](key, v)
}

func typed[T any](key Key, v any) Result[T] {
	data, ok := v.(T)
	if !ok {
		var zero T
		return Result[T]{Data: zero, Err: fmt.Errorf("fetched %s holds %T", key, v)}
	}
	return Result[T]{Data: data}
}

// register returns the entry of key, creating it if needed, and records the latest fetcher. Callers hold s.mu.
func (s *Store) register(key Key, fetcher Fetcher) *entry {
	e, ok := s.entries.Get(key)
	if !ok {
		s.seq++
		e = &entry{born: s.seq}
		s.entries.Add(key, e)
	}
	e.fetcher = fetcher
	return e
}

// issue hands out the next request sequence number for key. Callers hold s.mu.
func (s *Store) issue(key Key) (Fetcher, uint64, bool) {
	e, ok := s.entries.Peek(key)
	if !ok || e.fetcher == nil {
		return nil, 0, false
	}
	s.seq++
	return e.fetcher, s.seq, true
}

// apply stores v as the result of request seq unless a newer request already won or the entry was
// dropped since the request was issued. Callers hold s.mu.
func (s *Store) apply(key Key, seq uint64, v any) bool {
	e, ok := s.entries.Peek(key)
	if !ok || seq < e.born || seq < e.applied {
		return false
	}
	e.value = v
	e.hasValue = true
	e.stale = false
	e.applied = seq
	e.fetchedAt = s.now()
	return true
}

// refresh fetches key now and applies the result. If the result was superseded the newer cached value is returned.
func (s *Store) refresh(ctx context.Context, key Key) (any, error) {
	s.mu.Lock()
	fetcher, seq, ok := s.issue(key)
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, apperrors.ErrSuperseded)
	}

	v, err := fetcher(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.apply(key, seq, v) {
		return v, nil
	}
	if e, ok := s.entries.Peek(key); ok && e.hasValue {
		return e.value, nil
	}
	return nil, fmt.Errorf("%s: %w", key, apperrors.ErrSuperseded)
}

// revalidate refreshes key in the background, at most once at a time per key.
func (s *Store) revalidate(key Key) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	bgCtx := s.bgCtx
	s.bg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.bg.Done()
		_, err, _ := s.flight.Do(key.String(), func() (any, error) {
			ctx, cancel := context.WithTimeout(bgCtx, s.refreshTimeout)
			defer cancel()
			return s.refresh(ctx, key)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("Background revalidation failed", slog.String("query", key.String()), slog.String("error", err.Error()))
		}
	}()
}

type refreshTarget struct {
	key     Key
	fetcher Fetcher
	seq     uint64
}

// Invalidate marks every cached query of the given kinds stale and refetches them concurrently.
// Either all refetched values are applied or none are: on any failure the entries stay stale with
// their previous values and the error is returned. A query answering apperrors.ErrNotFound
// (e.g. a single account after its deletion) is evicted, which counts as refreshed.
func (s *Store) Invalidate(ctx context.Context, kinds QuerySet) error {
	if kinds == 0 {
		return nil
	}

	s.mu.Lock()
	var targets []refreshTarget
	for _, key := range s.entries.Keys() {
		if !kinds.Has(key.Kind) {
			continue
		}
		e, _ := s.entries.Peek(key)
		e.stale = true
		if fetcher, seq, ok := s.issue(key); ok {
			targets = append(targets, refreshTarget{key: key, fetcher: fetcher, seq: seq})
		}
	}
	s.mu.Unlock()

	values := make([]any, len(targets))
	gone := make([]bool, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			v, err := t.fetcher(gctx)
			if errors.Is(err, apperrors.ErrNotFound) {
				gone[i] = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("refetch %s: %w", t.key, err)
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("Invalidation refresh failed, dependent queries left stale",
			slog.String("queries", kinds.String()), slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range targets {
		if gone[i] {
			if e, ok := s.entries.Peek(t.key); ok && t.seq >= e.born {
				s.entries.Remove(t.key)
			}
			continue
		}
		s.apply(t.key, t.seq, values[i])
	}
	return nil
}
