package model

import "time"

// Comment 评论；ParentID 为空表示根评论，否则为某条根评论下的回复
type Comment struct {
	ID       string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID   string  `json:"post_id" gorm:"type:varchar(36);index:idx_comment_post;not null"`
	ParentID *string `json:"parent_id,omitempty" gorm:"type:varchar(36);index:idx_comment_parent"`
	AuthorID string  `json:"author_id" gorm:"type:varchar(36);not null"`
	// MentionedUserID 被@的用户，用于回复/评论的优先级排序
	MentionedUserID *string   `json:"mentioned_user_id,omitempty" gorm:"type:varchar(36);index:idx_comment_mentioned"`
	Content         string    `json:"content" gorm:"type:varchar(2000);not null"`
	ReactionsCount  int64     `json:"reactions_count" gorm:"not null;default:0"`
	RepliesCount    int64     `json:"replies_count" gorm:"not null;default:0"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
}

func (Comment) TableName() string { return "comments" }

// IsRoot 是否为根评论
func (c *Comment) IsRoot() bool { return c.ParentID == nil }
