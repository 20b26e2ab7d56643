package tripcache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"fleet/internal/core/domain/model/kernel"
	"fleet/internal/core/ports"
	"fleet/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "fleet:trip:"

var _ ports.TripCache = (*RedisTripCache)(nil)
var _ ports.TripChangeNotifier = (*RedisTripCache)(nil)

// DeletedVersion fences a deleted trip against every later fill.
const DeletedVersion = math.MaxInt64

// KEYS[1] entry, KEYS[2] fence; ARGV[1] version, ARGV[2] payload, ARGV[3] ttl ms.
var setScript = redis.NewScript(`
local fence = tonumber(redis.call('GET', KEYS[2]) or '0')
if tonumber(ARGV[1]) < fence then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// KEYS[1] entry, KEYS[2] fence; ARGV[1] committed version, ARGV[2] ttl ms.
var invalidateScript = redis.NewScript(`
local fence = redis.call('GET', KEYS[2])
if not fence or tonumber(ARGV[1]) > tonumber(fence) then
	fence = ARGV[1]
end
redis.call('SET', KEYS[2], fence, 'PX', ARGV[2])
redis.call('DEL', KEYS[1])
return 1
`)

// RedisTripCache stores serialized trip views under fleet:trip:{<id>}.
// Entries expire after ttl and are dropped when a committed unit of work
// reports the trip as changed. The drop leaves a version fence under
// fleet:trip:{<id>}:fence, also living for ttl, that refuses older fills.
// Both keys share a hash tag so the scripts also run on a cluster.
type RedisTripCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisTripCache(client redis.UniversalClient, ttl time.Duration) (*RedisTripCache, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidError("ttl")
	}
	return &RedisTripCache{client: client, ttl: ttl}, nil
}

// Dial connects to addr and pings it once.
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

// Key is the cache entry of a trip.
func Key(id kernel.UUID) string {
	return keyPrefix + "{" + id.String() + "}"
}

// FenceKey holds the highest committed version reported for a trip.
func FenceKey(id kernel.UUID) string {
	return Key(id) + ":fence"
}

func (c *RedisTripCache) Get(ctx context.Context, id kernel.UUID) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.NewStorageFailureError("trip cache get", err)
	}
	return payload, true, nil
}

// Set stores payload read at version unless a newer version has been
// committed since.
func (c *RedisTripCache) Set(ctx context.Context, id kernel.UUID, version int64, payload []byte) error {
	err := setScript.Run(ctx, c.client, []string{Key(id), FenceKey(id)},
		version, payload, c.ttl.Milliseconds()).Err()
	if err != nil {
		return errs.NewStorageFailureError("trip cache set", err)
	}
	return nil
}

// Invalidate drops the entry and raises the fence to committed.
func (c *RedisTripCache) Invalidate(ctx context.Context, id kernel.UUID, committed int64) error {
	err := invalidateScript.Run(ctx, c.client, []string{Key(id), FenceKey(id)},
		committed, c.ttl.Milliseconds()).Err()
	if err != nil {
		return errs.NewStorageFailureError("trip cache invalidate", err)
	}
	return nil
}

// TripsChanged invalidates every changed trip. Deleted trips are fenced
// with DeletedVersion.
func (c *RedisTripCache) TripsChanged(ctx context.Context, changes []ports.TripChange) error {
	var errList []error
	for _, change := range changes {
		committed := int64(DeletedVersion)
		if change.Trip != nil {
			committed = change.Trip.Version()
		}
		if err := c.Invalidate(ctx, change.TripID, committed); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
