package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/ranking"
	"github.com/d60-Lab/social-feed/internal/repository"
)

func TestHotScoreJobRunOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewPostRepository(db)
	ctx := context.Background()

	now := time.Now()
	fresh := &model.Post{
		ID: "fresh", AuthorID: "a", Status: model.PostStatusActive,
		ReactionsCount: 10, CommentsCount: 2, SharesCount: 0,
		CreatedAt: now.Add(-time.Hour),
	}
	require.NoError(t, db.Create(fresh).Error)
	// 时间窗外的帖子保留上一次算出的分数
	stale := &model.Post{
		ID: "stale", AuthorID: "a", Status: model.PostStatusActive,
		ReactionsCount: 100, HotScore: 7.5,
		CreatedAt: now.Add(-100 * time.Hour),
	}
	require.NoError(t, db.Create(stale).Error)
	hidden := &model.Post{
		ID: "hidden", AuthorID: "a", Status: model.PostStatusHidden,
		ReactionsCount: 100, CreatedAt: now.Add(-time.Hour),
	}
	require.NoError(t, db.Create(hidden).Error)

	job := NewHotScoreJob(repo, time.Minute, 72*time.Hour)
	job.now = func() time.Time { return now }
	job.RunOnce(ctx)

	// First 的查询条件会带上 dest 里已填充的主键，每次查询用新变量
	var gotFresh, gotStale, gotHidden model.Post
	require.NoError(t, db.First(&gotFresh, "id = ?", "fresh").Error)
	want := ranking.HotScore(10, 2, 0, fresh.CreatedAt, now)
	assert.InDelta(t, want, gotFresh.HotScore, 1e-9)

	require.NoError(t, db.First(&gotStale, "id = ?", "stale").Error)
	assert.InDelta(t, 7.5, gotStale.HotScore, 1e-12)

	require.NoError(t, db.First(&gotHidden, "id = ?", "hidden").Error)
	assert.InDelta(t, 0, gotHidden.HotScore, 1e-12)
}

func TestHotScoreJobIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewPostRepository(db)
	ctx := context.Background()

	now := time.Now()
	p := &model.Post{
		ID: "p1", AuthorID: "a", Status: model.PostStatusActive,
		ReactionsCount: 5, CreatedAt: now.Add(-2 * time.Hour),
	}
	require.NoError(t, db.Create(p).Error)

	job := NewHotScoreJob(repo, time.Minute, 72*time.Hour)
	job.now = func() time.Time { return now }
	job.RunOnce(ctx)
	var first model.Post
	require.NoError(t, db.First(&first, "id = ?", "p1").Error)

	// 计数未变时重跑结果相同：任务只做覆写，无读改写依赖
	job.RunOnce(ctx)
	var second model.Post
	require.NoError(t, db.First(&second, "id = ?", "p1").Error)
	assert.Equal(t, first.HotScore, second.HotScore)
}

func TestHotScoreJobSkipsOverlappingRun(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewPostRepository(db)
	ctx := context.Background()

	now := time.Now()
	p := &model.Post{
		ID: "p1", AuthorID: "a", Status: model.PostStatusActive,
		ReactionsCount: 5, CreatedAt: now.Add(-time.Hour),
	}
	require.NoError(t, db.Create(p).Error)

	job := NewHotScoreJob(repo, time.Minute, 72*time.Hour)
	job.now = func() time.Time { return now }

	// 模拟上一轮还在执行：本轮必须被跳过，不产生写入
	job.running.Store(true)
	job.RunOnce(ctx)
	var skipped model.Post
	require.NoError(t, db.First(&skipped, "id = ?", "p1").Error)
	assert.InDelta(t, 0, skipped.HotScore, 1e-12)

	job.running.Store(false)
	job.RunOnce(ctx)
	var scored model.Post
	require.NoError(t, db.First(&scored, "id = ?", "p1").Error)
	assert.Greater(t, scored.HotScore, 0.0)
}

func TestHotScoreJobStartStop(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewPostRepository(db)

	now := time.Now()
	p := &model.Post{
		ID: "p1", AuthorID: "a", Status: model.PostStatusActive,
		ReactionsCount: 5, CreatedAt: now.Add(-time.Hour),
	}
	require.NoError(t, db.Create(p).Error)

	job := NewHotScoreJob(repo, time.Hour, 72*time.Hour)
	stop := job.Start()
	// 启动即触发一轮；轮询等待落库完成
	require.Eventually(t, func() bool {
		var got model.Post
		if err := db.First(&got, "id = ?", "p1").Error; err != nil {
			return false
		}
		return got.HotScore > 0
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, stop(context.Background()))
}
