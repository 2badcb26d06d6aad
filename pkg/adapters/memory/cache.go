package memory

import (
	"container/list"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/frasig/pkg/domain"
	"github.com/aretw0/frasig/pkg/ports"
)

// DefaultMaxEntries bounds a Cache created without WithMaxEntries.
const DefaultMaxEntries = 10000

type entry struct {
	text      string
	sentences []domain.Sentence
	expires   time.Time
}

// Cache implements ports.ParseCache in memory.
// Entries are kept in insertion order; since every entry shares the same TTL
// the oldest entry is also the first to expire.
// Safe for concurrent use.
type Cache struct {
	mu         sync.Mutex
	data       map[string]*list.Element
	order      *list.List
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithMaxEntries caps the number of stored entries; the oldest are evicted
// first. A value <= 0 removes the cap.
func WithMaxEntries(n int) CacheOption {
	return func(c *Cache) {
		c.maxEntries = n
	}
}

// NewCache creates an in-memory cache. A ttl of 0 keeps entries until they
// are pushed out by the entry cap.
func NewCache(ttl time.Duration, opts ...CacheOption) *Cache {
	c := &Cache{
		data:       make(map[string]*list.Element),
		order:      list.New(),
		ttl:        ttl,
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the cached sentences.
func (c *Cache) Get(ctx context.Context, text string) ([]domain.Sentence, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.data[text]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	e := el.Value.(*entry)
	if c.expired(e, c.now()) {
		c.remove(el)
		return nil, ports.ErrCacheMiss
	}
	return slices.Clone(e.sentences), nil
}

// Set stores a copy of sentences and drops expired or excess entries.
func (c *Cache) Set(ctx context.Context, text string, sentences []domain.Sentence) error {
	e := &entry{text: text, sentences: slices.Clone(sentences)}
	if e.sentences == nil {
		e.sentences = []domain.Sentence{}
	}
	now := c.now()
	if c.ttl > 0 {
		e.expires = now.Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.data[text]; ok {
		c.remove(el)
	}
	c.data[text] = c.order.PushBack(e)
	c.evict(now)
	return nil
}

// Len returns the number of stored entries. Expired entries not yet purged
// are included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.data)
}

func (c *Cache) evict(now time.Time) {
	for el := c.order.Front(); el != nil; el = c.order.Front() {
		over := c.maxEntries > 0 && c.order.Len() > c.maxEntries
		if !over && !c.expired(el.Value.(*entry), now) {
			return
		}
		c.remove(el)
	}
}

func (c *Cache) expired(e *entry, now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

func (c *Cache) remove(el *list.Element) {
	c.order.Remove(el)
	delete(c.data, el.Value.(*entry).text)
}
