package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/pkg/logger"
)

// TopCommentCache 热评快照缓存。相关度与 viewer 无关，可以全局共享；
// TTL 即允许的陈旧窗口。缓存故障只记日志，调用方回落到批量查询。
type TopCommentCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewTopCommentCache(rdb *redis.Client, ttl time.Duration) *TopCommentCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &TopCommentCache{rdb: rdb, ttl: ttl}
}

func topCommentKey(postID string) string { return fmt.Sprintf("topcomment:%s", postID) }

// GetMany 一次 MGET 取回已缓存的热评快照，未命中/解码失败的帖子不出现在结果里
func (c *TopCommentCache) GetMany(ctx context.Context, postIDs []string) map[string]*repository.TopComment {
	if c == nil || c.rdb == nil || len(postIDs) == 0 {
		return nil
	}
	keys := make([]string, len(postIDs))
	for i, id := range postIDs {
		keys[i] = topCommentKey(id)
	}
	vals, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		logger.Warn("top comment cache read failed", zap.Error(err))
		return nil
	}
	result := make(map[string]*repository.TopComment, len(postIDs))
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var tc repository.TopComment
		if err := json.Unmarshal([]byte(s), &tc); err != nil {
			continue
		}
		result[postIDs[i]] = &tc
	}
	return result
}

// SetMany 管道批量写入快照
func (c *TopCommentCache) SetMany(ctx context.Context, tops map[string]*repository.TopComment) {
	if c == nil || c.rdb == nil || len(tops) == 0 {
		return
	}
	pipe := c.rdb.Pipeline()
	for postID, tc := range tops {
		payload, err := json.Marshal(tc)
		if err != nil {
			continue
		}
		pipe.Set(ctx, topCommentKey(postID), payload, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("top comment cache write failed", zap.Error(err))
	}
}
