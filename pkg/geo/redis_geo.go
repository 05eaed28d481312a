package geo

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisIndex stores points in a Redis GEO sorted set.
type RedisIndex struct {
	client *redis.Client
	key    string
}

func NewRedisIndex(addr, password, key string) *RedisIndex {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &RedisIndex{client: c, key: key}
}

func (r *RedisIndex) Upsert(ctx context.Context, id string, lat, lng float64) error {
	return r.client.GeoAdd(ctx, r.key, &redis.GeoLocation{Name: id, Longitude: lng, Latitude: lat}).Err()
}

func (r *RedisIndex) Remove(ctx context.Context, id string) error {
	return r.client.ZRem(ctx, r.key, id).Err()
}

func (r *RedisIndex) Within(ctx context.Context, lat, lng, miles float64) ([]string, error) {
	return r.client.GeoSearch(ctx, r.key, &redis.GeoSearchQuery{
		Longitude:  lng,
		Latitude:   lat,
		Radius:     miles,
		RadiusUnit: "mi",
		Sort:       "ASC",
	}).Result()
}

func (r *RedisIndex) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisIndex) Close() error {
	return r.client.Close()
}
