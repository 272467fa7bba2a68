package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const existsPrefix = "wiki:exists:"

var (
	valueFound   = []byte{1}
	valueMissing = []byte{0}
)

// Lookup is the decorated encyclopedia lookup.
type Lookup interface {
	Exists(ctx context.Context, title string) (bool, error)
}

// LookupCache caches Exists answers, positive and negative. Failed lookups
// are passed through and never cached. Cache I/O problems are logged and
// fall back to the wrapped lookup.
type LookupCache struct {
	db   *badger.DB
	next Lookup
	ttl  time.Duration
	log  *slog.Logger
}

// NewLookupCache wraps next. ttl <= 0 keeps entries forever.
func NewLookupCache(db *badger.DB, next Lookup, ttl time.Duration, logger *slog.Logger) *LookupCache {
	return &LookupCache{
		db:   db,
		next: next,
		ttl:  ttl,
		log:  logger.With("adapter", "lookup_cache"),
	}
}

// Exists returns the cached answer for title or asks the wrapped lookup.
func (c *LookupCache) Exists(ctx context.Context, title string) (bool, error) {
	key := existsKey(title)

	found, hit, err := c.get(key)
	if err != nil {
		c.log.WarnContext(ctx, "cache read failed", slog.String("title", title), slog.String("error", err.Error()))
	}
	if hit {
		c.log.DebugContext(ctx, "cache hit", slog.String("title", title), slog.Bool("exists", found))
		return found, nil
	}

	found, err = c.next.Exists(ctx, title)
	if err != nil {
		return false, err
	}

	if err := c.set(key, found); err != nil {
		c.log.WarnContext(ctx, "cache write failed", slog.String("title", title), slog.String("error", err.Error()))
	}
	return found, nil
}

func (c *LookupCache) get(key []byte) (found, hit bool, err error) {
	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			hit = true
			found = len(val) == 1 && val[0] == valueFound[0]
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, false, nil
	}
	return found, hit, err
}

func (c *LookupCache) set(key []byte, found bool) error {
	val := valueMissing
	if found {
		val = valueFound
	}
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key, val)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

func existsKey(title string) []byte {
	return []byte(existsPrefix + strings.ToLower(strings.TrimSpace(title)))
}
