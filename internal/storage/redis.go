package storage

import (
	"context"
	"strconv"
	"strings"
	"time"

	"campus-food-backend/internal/domain"
	"campus-food-backend/internal/service"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "ratings:alltime"

// RedisStatsCache mirrors recomputed rating numbers so dashboards can
// read them without touching the document store. It is never the source
// of truth; every read path falls back to the documents.
type RedisStatsCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	return &RedisStatsCache{Client: client, TTL: ttl}
}

func itemStatsKey(storeID, itemID int) string {
	return "item:" + strconv.Itoa(storeID) + ":" + strconv.Itoa(itemID)
}

func (c *RedisStatsCache) SetItemStats(ctx context.Context, storeID, itemID int, rating float64, count int) error {
	key := itemStatsKey(storeID, itemID)
	if err := c.Client.HSet(ctx, key, map[string]interface{}{
		"rating":       rating,
		"review_count": count,
		"last_updated": time.Now().Unix(),
	}).Err(); err != nil {
		return err
	}
	return c.Client.Expire(ctx, key, c.TTL).Err()
}

func (c *RedisStatsCache) UpdateLeaderboard(ctx context.Context, storeID, itemID int, rating float64) error {
	member := strconv.Itoa(storeID) + ":" + strconv.Itoa(itemID)
	return c.Client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  rating,
		Member: member,
	}).Err()
}

func (c *RedisStatsCache) TopRated(ctx context.Context, limit int) ([]domain.TopRatedItem, error) {
	results, err := c.Client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	var items []domain.TopRatedItem
	for _, result := range results {
		member, ok := result.Member.(string)
		if !ok {
			continue
		}
		parts := strings.SplitN(member, ":", 2)
		if len(parts) != 2 {
			continue
		}
		storeID, _ := strconv.Atoi(parts[0])
		itemID, _ := strconv.Atoi(parts[1])
		items = append(items, domain.TopRatedItem{
			StoreID: storeID,
			ItemID:  itemID,
			Rating:  result.Score,
		})
	}
	return items, nil
}

var _ service.StatsCache = (*RedisStatsCache)(nil)
