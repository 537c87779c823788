// Package query is the app's data-fetch layer: a process-wide cache of
// remote query results with request de-duplication.
//
// A view describes each remote read as a Descriptor, resolves it with
// Fetch (blocking) or Peek (cache only), and renders from the resulting
// State. Combine folds several States into one loading/error/ready phase.
package query

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Descriptor names one remote read. Key identifies the cached value and
// must include anything the result depends on (e.g. the user ID). Name is
// a low-cardinality label used for metrics and logs.
type Descriptor[T any] struct {
	Name  string
	Key   string
	Fetch func(ctx context.Context) (T, error)
}

// Options configures a Client.
type Options struct {
	Store     Store
	StaleTime time.Duration // age after which Fetch goes back to the API
	TTL       time.Duration // how long entries are retained
	Metrics   *Metrics
	Logger    *zap.Logger
}

// Client is the shared query cache. Build one at startup and pass it to
// every handler; it is safe for concurrent use.
type Client struct {
	store     Store
	staleTime time.Duration
	ttl       time.Duration
	metrics   *Metrics
	log       *zap.Logger
	group     singleflight.Group
	now       func() time.Time

	// flights tracks running fetches by key so Invalidate can detach them.
	// writes is held for reading while a flight stores its result and for
	// writing while Invalidate marks flights stale.
	mu      sync.Mutex
	flights map[string]*flight
	writes  sync.RWMutex
}

// flight is one running fetch. A stale flight still answers the callers
// already waiting on it but does not cache its result.
type flight struct {
	stale atomic.Bool
}

// NewClient builds a Client. A nil Store means an in-memory store.
func NewClient(opts Options) *Client {
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.StaleTime <= 0 {
		opts.StaleTime = 30 * time.Second
	}
	if opts.TTL < opts.StaleTime {
		opts.TTL = 10 * opts.StaleTime
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Client{
		store:     opts.Store,
		staleTime: opts.StaleTime,
		ttl:       opts.TTL,
		metrics:   opts.Metrics,
		log:       opts.Logger,
		now:       time.Now,
		flights:   make(map[string]*flight),
	}
}

// Store returns the backing store.
func (c *Client) Store() Store { return c.store }

// Close releases the backing store.
func (c *Client) Close() error { return c.store.Close() }

// Invalidate drops every cached entry whose key starts with prefix, so the
// next Fetch goes to the API. Fetches already running under the prefix are
// forgotten: later callers start a new fetch, and the old one's result is
// not cached.
func (c *Client) Invalidate(ctx context.Context, prefix string) error {
	c.writes.Lock()
	c.mu.Lock()
	for key, f := range c.flights {
		if strings.HasPrefix(key, prefix) {
			f.stale.Store(true)
			c.group.Forget(key)
		}
	}
	c.mu.Unlock()
	c.writes.Unlock()

	n, err := c.store.DeletePrefix(ctx, prefix)
	if err != nil {
		c.log.Warn("query invalidate failed", zap.String("prefix", prefix), zap.Error(err))
		return err
	}
	c.log.Debug("query invalidated", zap.String("prefix", prefix), zap.Int("entries", n))
	return nil
}

type entry struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Data      json.RawMessage `json:"data"`
}

// Fetch resolves d. A fresh cached value is returned without I/O;
// otherwise one fetch per key runs at a time and concurrent callers share
// its result. Errors are returned in the State and never cached.
//
// The fetch itself is detached from ctx: a caller whose ctx ends stops
// waiting and gets ctx.Err(), but the flight runs on for the callers
// sharing it and its result is still cached for the next render.
func Fetch[T any](ctx context.Context, c *Client, d Descriptor[T]) State[T] {
	if v, fresh, ok := lookup[T](ctx, c, d); ok && fresh {
		return State[T]{Data: v}
	}

	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(d.Key, func() (any, error) {
		f := c.begin(d.Key)
		defer c.end(d.Key, f)

		start := c.now()
		v, err := d.Fetch(detached)
		elapsed := c.now().Sub(start).Seconds()
		if err != nil {
			c.metrics.fetched(label(d), "error", elapsed)
			c.log.Warn("query fetch failed", zap.String("query", label(d)), zap.Error(err))
			return nil, err
		}
		c.metrics.fetched(label(d), "ok", elapsed)
		c.keep(detached, d.Key, v, f)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return State[T]{Err: res.Err}
		}
		return State[T]{Data: res.Val.(T)}
	case <-ctx.Done():
		return State[T]{Err: ctx.Err()}
	}
}

// Peek returns whatever is cached for d, fresh or stale, without any
// network I/O. With nothing cached the State is loading.
func Peek[T any](ctx context.Context, c *Client, d Descriptor[T]) State[T] {
	if v, _, ok := lookup[T](ctx, c, d); ok {
		return State[T]{Data: v}
	}
	return State[T]{IsLoading: true}
}

func lookup[T any](ctx context.Context, c *Client, d Descriptor[T]) (v T, fresh bool, ok bool) {
	raw, found, err := c.store.Get(ctx, d.Key)
	if err != nil {
		c.log.Warn("query cache read failed", zap.String("query", label(d)), zap.Error(err))
		c.metrics.lookup(label(d), "miss")
		return v, false, false
	}
	if !found {
		c.metrics.lookup(label(d), "miss")
		return v, false, false
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		c.metrics.lookup(label(d), "miss")
		return v, false, false
	}
	if err := json.Unmarshal(e.Data, &v); err != nil {
		c.metrics.lookup(label(d), "miss")
		return v, false, false
	}

	fresh = c.now().Sub(e.FetchedAt) < c.staleTime
	if fresh {
		c.metrics.lookup(label(d), "hit")
	} else {
		c.metrics.lookup(label(d), "stale")
	}
	return v, fresh, true
}

func (c *Client) begin(key string) *flight {
	f := &flight{}
	c.mu.Lock()
	c.flights[key] = f
	c.mu.Unlock()
	return f
}

func (c *Client) end(key string, f *flight) {
	c.mu.Lock()
	if c.flights[key] == f {
		delete(c.flights, key)
	}
	c.mu.Unlock()
}

// keep caches a flight's result unless Invalidate marked it stale.
func (c *Client) keep(ctx context.Context, key string, v any, f *flight) {
	c.writes.RLock()
	defer c.writes.RUnlock()
	if f.stale.Load() {
		c.log.Debug("query result discarded after invalidate", zap.String("key", key))
		return
	}
	c.put(ctx, key, v)
}

func (c *Client) put(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("query cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	raw, err := json.Marshal(entry{FetchedAt: c.now(), Data: data})
	if err != nil {
		return
	}
	if err := c.store.Set(context.WithoutCancel(ctx), key, raw, c.ttl); err != nil {
		c.log.Warn("query cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func label[T any](d Descriptor[T]) string {
	if d.Name != "" {
		return d.Name
	}
	return "unnamed"
}
