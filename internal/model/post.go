package model

import "time"

// Post 帖子（计数字段由外部计数服务维护，本服务只读）
type Post struct {
	ID             string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	AuthorID       string `json:"author_id" gorm:"type:varchar(36);index:idx_post_author"`
	Content        string `json:"content" gorm:"type:text"`
	ReactionsCount int64  `json:"reactions_count" gorm:"not null;default:0"`
	CommentsCount  int64  `json:"comments_count" gorm:"not null;default:0"`
	SharesCount    int64  `json:"shares_count" gorm:"not null;default:0"`
	// HotScore 由后台任务周期重算并落库；仅 status=ACTIVE 时有意义
	HotScore  float64   `json:"hot_score" gorm:"index:idx_post_hot;not null;default:0"`
	Status    string    `json:"status" gorm:"type:varchar(16);index;not null;default:'ACTIVE'"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// Post 状态常量
const (
	PostStatusActive  = "ACTIVE"
	PostStatusHidden  = "HIDDEN"
	PostStatusDeleted = "DELETED"
)
