package service

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

func seedActivePost(t *testing.T, db *gorm.DB, id string, hotScore float64, createdAt time.Time) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:        id,
		AuthorID:  "author-" + id,
		Content:   "content " + id,
		HotScore:  hotScore,
		Status:    model.PostStatusActive,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedReply(t *testing.T, db *gorm.DB, id, postID, parentID string, mentioned *string) *model.Comment {
	t.Helper()
	c := &model.Comment{
		ID:              id,
		PostID:          postID,
		ParentID:        &parentID,
		AuthorID:        "author-" + id,
		MentionedUserID: mentioned,
		Content:         "reply " + id,
		CreatedAt:       time.Now().Add(-time.Hour),
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func strptr(s string) *string { return &s }
