package seatmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-ShowtimeService/internal/domain"
)

const (
	keyPrefix   = "showtime:seatmap:"
	pingTimeout = 5 * time.Second
)

// Options for the redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to redis and checks the connection
func NewClient(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrCache, opts.Addr, err)
	}
	return client, nil
}

// Cache keeps read-only seat maps in redis. Each entry is a hash holding the map and the
// grid version it was built from; a map never replaces one built from a newer grid.
// Invalidate leaves a tombstone that rejects refills until it expires.
type Cache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewCache creates a seat map cache; entries and tombstones expire after ttl
func NewCache(client redis.Cmdable, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

const (
	fieldMap = "m"

	// tombstoneVersion is above any grid version and still exact as a Lua number
	tombstoneVersion = int64(1)<<53 - 1
)

// KEYS[1] entry; ARGV version, encoded map, ttl ms
var setScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'v')
if current and tonumber(current) >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'm', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// KEYS entries; ARGV tombstone version, ttl ms
var invalidateScript = redis.NewScript(`
for _, key in ipairs(KEYS) do
	redis.call('DEL', key)
	redis.call('HSET', key, 'v', ARGV[1])
	redis.call('PEXPIRE', key, ARGV[2])
end
return #KEYS
`)

func key(screeningID int64) string {
	return keyPrefix + strconv.FormatInt(screeningID, 10)
}

// Get returns the cached seat map or ErrCacheMiss
func (c *Cache) Get(ctx context.Context, screeningID int64) (*domain.SeatMap, error) {
	data, err := c.client.HGet(ctx, key(screeningID), fieldMap).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get: %w", ErrCache, err)
	}

	var m domain.SeatMap
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrCache, err)
	}
	return &m, nil
}

// Set stores the seat map unless the entry holds a map of the same or a newer version
// or a tombstone
func (c *Cache) Set(ctx context.Context, m *domain.SeatMap) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrCache, err)
	}

	err = setScript.Run(ctx, c.client, []string{key(m.ScreeningID)},
		m.Version, data, c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("%w: set: %w", ErrCache, err)
	}
	return nil
}

// Invalidate drops cached seat maps of the given screenings and blocks refills for ttl
func (c *Cache) Invalidate(ctx context.Context, screeningIDs ...int64) error {
	if len(screeningIDs) == 0 {
		return nil
	}
	keys := make([]string, len(screeningIDs))
	for i, id := range screeningIDs {
		keys[i] = key(id)
	}

	err := invalidateScript.Run(ctx, c.client, keys, tombstoneVersion, c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("%w: invalidate: %w", ErrCache, err)
	}
	return nil
}

// NoopCache never stores anything. Used when redis is disabled.
type NoopCache struct{}

func (NoopCache) Get(context.Context, int64) (*domain.SeatMap, error) {
	return nil, ErrCacheMiss
}

func (NoopCache) Set(context.Context, *domain.SeatMap) error {
	return nil
}

func (NoopCache) Invalidate(context.Context, ...int64) error {
	return nil
}
