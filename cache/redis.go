package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/extremtechniker/gokey/logger"
	"github.com/extremtechniker/gokey/model"
	"github.com/extremtechniker/gokey/session"
	"github.com/extremtechniker/gokey/util"
	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

func InitRedis(ctx context.Context) error {
	redisDb, err := strconv.ParseInt(util.MustGetenv("REDIS_DB", "0"), 10, 32)
	if err != nil {
		return fmt.Errorf("parse REDIS_DB: %w", err)
	}
	Rdb = redis.NewClient(&redis.Options{
		Addr:     util.MustGetenv("REDIS_ADDR", "localhost:6379"),
		Password: util.MustGetenv("REDIS_PASS", ""),
		DB:       int(redisDb),
	})
	if err := Rdb.Ping(ctx).Err(); err != nil {
		if strings.Contains(err.Error(), "maint_notifications") {
			logger.Logger.Warn("Redis maint_notifications unsupported, continuing.")
			return nil
		}
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func SessionKey(id string) string {
	return "session:" + id
}

// RedisStore keeps sessions as JSON under SessionKey, expiring with the session.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, sess *model.Session) (string, error) {
	ttl := sess.TTL(time.Now())
	if ttl == 0 {
		return "", session.ErrExpired
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	if err := s.client.Set(ctx, SessionKey(sess.ID), b, ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set: %w", err)
	}
	return sess.ID, nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*model.Session, error) {
	b, err := s.client.Get(ctx, SessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var sess model.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, SessionKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
