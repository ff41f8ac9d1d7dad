package cache

import (
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// key names definition
const (
	TrainListKey = "catalog:trains" // cached train catalog, JSON encoded

	RateLimitKey = "ratelimit:%s:%s" // first '%s' is route scope, second '%s' is client ip
)

// The catalog is immutable after seeding, so a TTL stands in for
// invalidation.
const TrainListTTL = 10 * time.Minute

func MakeRateLimitKey(scope string, clientIP string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, clientIP)
}

// lua scripts
var rateLimitScript = redis.NewScript(`
-- KEYS[1]: window counter key
-- ARGV[1]: window length in milliseconds
local count = redis.call("INCR", KEYS[1])
if count == 1 then
    redis.call("PEXPIRE", KEYS[1], tonumber(ARGV[1]))
end
return count
`)
