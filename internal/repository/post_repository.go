package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
)

type PostRepository interface {
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// ListFeed 按 (hot_score DESC, id DESC) 取 ACTIVE 帖子，多取一条用于判断 hasMore。
	// cursor 非空时应用 keyset 谓词：hot_score < ? OR (hot_score = ? AND id < ?)
	ListFeed(ctx context.Context, cursor *pagination.PostCursor, limit int) ([]*model.Post, error)
	// ListRecentActive 热度重算的候选集：ACTIVE 且 created_at 在时间窗内
	ListRecentActive(ctx context.Context, since time.Time) ([]*model.Post, error)
	// BulkUpdateHotScores 单事务批量覆写 hot_score
	BulkUpdateHotScores(ctx context.Context, scores map[string]float64) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListFeed(ctx context.Context, cursor *pagination.PostCursor, limit int) ([]*model.Post, error) {
	q := r.db.WithContext(ctx).Where("status = ?", model.PostStatusActive)
	if cursor != nil {
		q = q.Where("hot_score < ? OR (hot_score = ? AND id < ?)",
			cursor.HotScore, cursor.HotScore, cursor.ID)
	}
	var posts []*model.Post
	err := q.Order("hot_score DESC, id DESC").Limit(limit + 1).Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListRecentActive(ctx context.Context, since time.Time) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Select("id", "reactions_count", "comments_count", "shares_count", "created_at").
		Where("status = ? AND created_at >= ?", model.PostStatusActive, since).
		Find(&posts).Error
	return posts, err
}

// 每条 UPDATE 覆盖的行数上限，避免超长 SQL
const bulkScoreChunk = 500

func (r *postRepository) BulkUpdateHotScores(ctx context.Context, scores map[string]float64) error {
	if len(scores) == 0 {
		return nil
	}
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(ids); start += bulkScoreChunk {
			end := start + bulkScoreChunk
			if end > len(ids) {
				end = len(ids)
			}
			chunk := ids[start:end]

			var sb strings.Builder
			args := make([]any, 0, len(chunk)*2+1)
			sb.WriteString("UPDATE posts SET hot_score = CASE id ")
			for _, id := range chunk {
				sb.WriteString("WHEN ? THEN ? ")
				args = append(args, id, scores[id])
			}
			sb.WriteString("END WHERE id IN ?")
			args = append(args, chunk)

			if err := tx.Exec(sb.String(), args...).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
