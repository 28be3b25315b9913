package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/ranking"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/pkg/logger"
)

// ErrCommentNotFound 父评论不存在
var ErrCommentNotFound = errors.New("comment not found")

// CommentService 评论与回复的排序读取
type CommentService struct {
	comments repository.CommentRepository

	defaultPageSize int
	maxPageSize     int
}

func NewCommentService(comments repository.CommentRepository, defaultPageSize, maxPageSize int) *CommentService {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	if maxPageSize <= 0 {
		maxPageSize = 50
	}
	return &CommentService{comments: comments, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

// ListRootComments 根评论一页：被@ > 本人 > 其他，同档按互动分，再按 id。
// viewerID 为空表示匿名，全部按 0 档处理。
func (s *CommentService) ListRootComments(ctx context.Context, viewerID, postID string, limit int, rawCursor string) (pagination.Page[*repository.RankedComment], error) {
	limit = pagination.ClampLimit(limit, s.defaultPageSize, s.maxPageSize)

	var cursor *pagination.CommentCursor
	if rawCursor != "" {
		c, err := pagination.DecodeCommentCursor(rawCursor)
		if err != nil {
			logger.Warn("unreadable comment cursor, falling back to first page", zap.Error(err))
		} else {
			cursor = &c
		}
	}

	rows, err := s.comments.ListRootComments(ctx, postID, viewerID, cursor, limit)
	if err != nil {
		return pagination.Page[*repository.RankedComment]{}, err
	}
	return pagination.BuildPage(rows, limit, func(c *repository.RankedComment) string {
		return pagination.EncodeCommentCursor(pagination.CommentCursor{
			Priority:        c.Priority,
			EngagementScore: c.EngagementScore,
			ID:              c.ID,
		})
	}), nil
}

// ListReplies 回复一页。已知的不对称行为：第一页把@到 viewer 的回复
// 全量前置（不设上限，被@很多时第一页会明显超出名义页大小），
// hasMore 与游标只由非@子查询推导；后续页仅按 id 升序翻非@回复。
func (s *CommentService) ListReplies(ctx context.Context, viewerID, parentID string, limit int, rawCursor string) (pagination.Page[*repository.RankedComment], error) {
	limit = pagination.ClampLimit(limit, s.defaultPageSize, s.maxPageSize)

	if _, err := s.comments.GetByID(ctx, parentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pagination.Page[*repository.RankedComment]{}, ErrCommentNotFound
		}
		return pagination.Page[*repository.RankedComment]{}, err
	}

	afterID := ""
	firstPage := true
	if rawCursor != "" {
		c, err := pagination.DecodeReplyCursor(rawCursor)
		if err != nil {
			logger.Warn("unreadable reply cursor, falling back to first page", zap.Error(err))
		} else {
			afterID = c.ID
			firstPage = false
		}
	}

	others, err := s.comments.ListOtherReplies(ctx, parentID, viewerID, afterID, limit)
	if err != nil {
		return pagination.Page[*repository.RankedComment]{}, err
	}
	page := pagination.BuildPage(others, limit, func(c *model.Comment) string {
		return pagination.EncodeReplyCursor(pagination.ReplyCursor{ID: c.ID})
	})

	items := make([]*repository.RankedComment, 0, len(page.Data))
	if firstPage {
		mentioned, err := s.comments.ListMentionedReplies(ctx, parentID, viewerID)
		if err != nil {
			return pagination.Page[*repository.RankedComment]{}, err
		}
		for _, m := range mentioned {
			items = append(items, rankedReply(m, 1))
		}
	}
	for _, c := range page.Data {
		items = append(items, rankedReply(c, 0))
	}

	return pagination.Page[*repository.RankedComment]{Data: items, NextCursor: page.NextCursor, HasMore: page.HasMore}, nil
}

func rankedReply(c *model.Comment, priority int) *repository.RankedComment {
	return &repository.RankedComment{
		Comment:         *c,
		Priority:        priority,
		EngagementScore: ranking.EngagementScore(c.ReactionsCount, c.RepliesCount),
	}
}
