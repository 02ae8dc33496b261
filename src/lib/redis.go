package lib

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

const quoteCacheTTL = 5 * time.Minute

// CalendarVersion is a monotonic counter per property, bumped on every
// calendar write (generation, claims, releases). Cached quotes embed
// the version in their key, so a write silently orphans them instead of
// requiring explicit invalidation.
func CalendarVersion(propertyID uint) int64 {
	rd := GetRedisClient()
	if rd == nil {
		return 0
	}
	val, err := rd.Get(context.Background(), fmt.Sprintf("calver:%d", propertyID)).Int64()
	if err != nil && err != redis.Nil {
		log.Printf("[redis] Error reading calendar version for property %d: %s\n", propertyID, err.Error())
		return 0
	}
	return val
}

func BumpCalendarVersion(propertyID uint) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Incr(context.Background(), fmt.Sprintf("calver:%d", propertyID)).Err(); err != nil {
		log.Printf("[redis] Error bumping calendar version for property %d: %s\n", propertyID, err.Error())
	}
}

func QuoteCacheKey(propertyID uint, version int64, checkIn, checkOut string, guests int) string {
	return fmt.Sprintf("quote:%d:%d:%s:%s:%d", propertyID, version, checkIn, checkOut, guests)
}

// GetCachedQuote returns the cached availability response body for the
// key, or "" on miss. Cache errors behave like misses.
func GetCachedQuote(key string) string {
	rd := GetRedisClient()
	if rd == nil {
		return ""
	}
	val, err := rd.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return ""
	}
	if err != nil {
		log.Printf("[redis] Error reading cached quote %s: %s\n", key, err.Error())
		return ""
	}
	return val
}

func SetCachedQuote(key, body string) {
	rd := GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Set(context.Background(), key, body, quoteCacheTTL).Err(); err != nil {
		log.Printf("[redis] Error caching quote %s: %s\n", key, err.Error())
	}
}
