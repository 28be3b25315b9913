package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/social-feed/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	// :memory: 按连接隔离，池里只留一条连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}))
	return db
}

func seedPost(t *testing.T, db *gorm.DB, id string, hotScore float64, status string) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:        id,
		AuthorID:  "author-" + id,
		Content:   "content " + id,
		HotScore:  hotScore,
		Status:    status,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

type commentSeed struct {
	id        string
	postID    string
	parentID  *string
	authorID  string
	mentioned *string
	reactions int64
	replies   int64
	createdAt time.Time
}

func seedComment(t *testing.T, db *gorm.DB, s commentSeed) *model.Comment {
	t.Helper()
	if s.authorID == "" {
		s.authorID = "author-" + s.id
	}
	if s.createdAt.IsZero() {
		s.createdAt = time.Now().Add(-time.Hour)
	}
	c := &model.Comment{
		ID:              s.id,
		PostID:          s.postID,
		ParentID:        s.parentID,
		AuthorID:        s.authorID,
		MentionedUserID: s.mentioned,
		Content:         "comment " + s.id,
		ReactionsCount:  s.reactions,
		RepliesCount:    s.replies,
		CreatedAt:       s.createdAt,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func strptr(s string) *string { return &s }
