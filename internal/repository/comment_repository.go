package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/ranking"
)

// RankedComment 查询期投影：评论 + 针对当前 viewer 计算的排序键。
// priority / engagement_score 不落库（priority 与 viewer 相关）。
type RankedComment struct {
	model.Comment
	Priority        int   `json:"priority"`
	EngagementScore int64 `json:"engagement_score"`
}

// TopComment 单帖最高相关度的根评论
type TopComment struct {
	model.Comment
	RelevanceScore float64 `json:"relevance_score"`
}

type CommentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	// ListRootComments 根评论，按 (priority DESC, engagement_score DESC, id DESC)，
	// 多取一条；cursor 非空时应用三键 keyset 谓词
	ListRootComments(ctx context.Context, postID, viewerID string, cursor *pagination.CommentCursor, limit int) ([]*RankedComment, error)
	// ListMentionedReplies @到 viewer 的回复，按 id 升序，不限量（仅第一页使用）
	ListMentionedReplies(ctx context.Context, parentID, viewerID string) ([]*model.Comment, error)
	// ListOtherReplies 非@回复，按 id 升序多取一条；afterID 非空时取 id > afterID
	ListOtherReplies(ctx context.Context, parentID, viewerID, afterID string, limit int) ([]*model.Comment, error)
	// ListRootCommentsOfPosts 一批帖子的全部根评论（热评选取的候选集，单条查询）
	ListRootCommentsOfPosts(ctx context.Context, postIDs []string) ([]*model.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// priority 是 viewer 相关的计算列，keyset 谓词里不能引用 SELECT 别名，
// 只能原样重复表达式，三个析取分支与排序键一一对应。
const priorityExpr = "CASE WHEN mentioned_user_id = ? THEN 2 WHEN author_id = ? THEN 1 ELSE 0 END"
const engagementExpr = "reactions_count + replies_count"

func (r *commentRepository) ListRootComments(ctx context.Context, postID, viewerID string, cursor *pagination.CommentCursor, limit int) ([]*RankedComment, error) {
	sql := fmt.Sprintf(
		"SELECT comments.*, %s AS priority, %s AS engagement_score FROM comments WHERE post_id = ? AND parent_id IS NULL",
		priorityExpr, engagementExpr)
	args := []any{viewerID, viewerID, postID}

	if cursor != nil {
		sql += fmt.Sprintf(
			" AND (%s < ? OR (%s = ? AND %s < ?) OR (%s = ? AND %s = ? AND id < ?))",
			priorityExpr, priorityExpr, engagementExpr, priorityExpr, engagementExpr)
		args = append(args,
			viewerID, viewerID, cursor.Priority,
			viewerID, viewerID, cursor.Priority, cursor.EngagementScore,
			viewerID, viewerID, cursor.Priority, cursor.EngagementScore, cursor.ID)
	}

	sql += " ORDER BY priority DESC, engagement_score DESC, id DESC LIMIT ?"
	args = append(args, limit+1)

	var rows []*RankedComment
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

func (r *commentRepository) ListMentionedReplies(ctx context.Context, parentID, viewerID string) ([]*model.Comment, error) {
	if viewerID == "" {
		return nil, nil
	}
	var replies []*model.Comment
	err := r.db.WithContext(ctx).
		Where("parent_id = ? AND mentioned_user_id = ?", parentID, viewerID).
		Order("id ASC").
		Find(&replies).Error
	return replies, err
}

func (r *commentRepository) ListOtherReplies(ctx context.Context, parentID, viewerID, afterID string, limit int) ([]*model.Comment, error) {
	q := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Where("mentioned_user_id IS NULL OR mentioned_user_id <> ?", viewerID)
	if afterID != "" {
		q = q.Where("id > ?", afterID)
	}
	var replies []*model.Comment
	err := q.Order("id ASC").Limit(limit + 1).Find(&replies).Error
	return replies, err
}

func (r *commentRepository) ListRootCommentsOfPosts(ctx context.Context, postIDs []string) ([]*model.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id IN ? AND parent_id IS NULL", postIDs).
		Find(&comments).Error
	return comments, err
}

// SelectTopComments 按相关度为每个帖子挑一条热评；相同分数取 id 较大者，
// 保证结果确定。没有根评论的帖子不出现在结果里。
func SelectTopComments(comments []*model.Comment, now time.Time) map[string]*TopComment {
	result := make(map[string]*TopComment)
	for _, c := range comments {
		score := ranking.Relevance(c.ReactionsCount, c.RepliesCount, c.CreatedAt, now)
		cur, ok := result[c.PostID]
		if !ok || score > cur.RelevanceScore || (score == cur.RelevanceScore && c.ID > cur.ID) {
			result[c.PostID] = &TopComment{Comment: *c, RelevanceScore: score}
		}
	}
	return result
}
