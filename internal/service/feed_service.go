package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/pkg/logger"
)

// FeedItem 信息流条目：帖子 + 可选的热评
type FeedItem struct {
	*model.Post
	TopComment *repository.TopComment `json:"top_comment,omitempty"`
}

// FeedService 热门信息流读取
type FeedService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	cache    *TopCommentCache // 可为 nil（未配置 redis）

	defaultPageSize int
	maxPageSize     int
	now             func() time.Time
}

func NewFeedService(posts repository.PostRepository, comments repository.CommentRepository, cache *TopCommentCache, defaultPageSize, maxPageSize int) *FeedService {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	if maxPageSize <= 0 {
		maxPageSize = 50
	}
	return &FeedService{
		posts:           posts,
		comments:        comments,
		cache:           cache,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		now:             time.Now,
	}
}

// GetFeed 按持久化的 hot_score 降序取一页。游标解不开时降级为第一页
// （分页宁可降级也不让整个信息流报错），只记一条 warn。
func (s *FeedService) GetFeed(ctx context.Context, limit int, rawCursor string, withTopComments bool) (pagination.Page[*FeedItem], error) {
	limit = pagination.ClampLimit(limit, s.defaultPageSize, s.maxPageSize)

	var cursor *pagination.PostCursor
	if rawCursor != "" {
		c, err := pagination.DecodePostCursor(rawCursor)
		if err != nil {
			logger.Warn("unreadable feed cursor, falling back to first page", zap.Error(err))
		} else {
			cursor = &c
		}
	}

	posts, err := s.posts.ListFeed(ctx, cursor, limit)
	if err != nil {
		return pagination.Page[*FeedItem]{}, err
	}
	page := pagination.BuildPage(posts, limit, func(p *model.Post) string {
		return pagination.EncodePostCursor(pagination.PostCursor{HotScore: p.HotScore, ID: p.ID})
	})

	items := make([]*FeedItem, len(page.Data))
	for i, p := range page.Data {
		items[i] = &FeedItem{Post: p}
	}

	if withTopComments && len(items) > 0 {
		ids := make([]string, len(items))
		for i, it := range items {
			ids[i] = it.ID
		}
		tops := s.topComments(ctx, ids)
		for _, it := range items {
			it.TopComment = tops[it.ID]
		}
	}

	return pagination.Page[*FeedItem]{Data: items, NextCursor: page.NextCursor, HasMore: page.HasMore}, nil
}

// topComments 为一批帖子各取一条热评：先查缓存，未命中的帖子合并成
// 一条批量查询（整页最多一次 DB 查询，不做 N+1）。失败只影响热评展示。
func (s *FeedService) topComments(ctx context.Context, postIDs []string) map[string]*repository.TopComment {
	result := make(map[string]*repository.TopComment, len(postIDs))
	missing := postIDs
	if s.cache != nil {
		cached := s.cache.GetMany(ctx, postIDs)
		missing = make([]string, 0, len(postIDs))
		for _, id := range postIDs {
			if tc, ok := cached[id]; ok {
				result[id] = tc
			} else {
				missing = append(missing, id)
			}
		}
	}
	if len(missing) == 0 {
		return result
	}

	candidates, err := s.comments.ListRootCommentsOfPosts(ctx, missing)
	if err != nil {
		logger.Error("load top comment candidates failed", zap.Error(err))
		return result
	}
	tops := repository.SelectTopComments(candidates, s.now())
	if s.cache != nil {
		s.cache.SetMany(ctx, tops)
	}
	for id, tc := range tops {
		result[id] = tc
	}
	return result
}
