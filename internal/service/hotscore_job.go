package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/social-feed/internal/ranking"
	"github.com/d60-Lab/social-feed/internal/repository"
	"github.com/d60-Lab/social-feed/pkg/logger"
)

// HotScoreJob 周期重算近期 ACTIVE 帖子的 hot_score 并批量落库。
// 任务幂等：只用当前计数覆写分数，失败的周期直接放弃，下个 tick 重来。
// 时间窗外的帖子保留最后一次分数，自然沉出信息流头部。
type HotScoreJob struct {
	posts    repository.PostRepository
	interval time.Duration
	window   time.Duration
	now      func() time.Time

	running atomic.Bool
}

func NewHotScoreJob(posts repository.PostRepository, interval, window time.Duration) *HotScoreJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if window <= 0 {
		window = 72 * time.Hour
	}
	return &HotScoreJob{posts: posts, interval: interval, window: window, now: time.Now}
}

// Start 启动定时循环；启动即跑一轮，之后每个 interval 跑一轮。
// 返回停止函数。
func (j *HotScoreJob) Start() func(context.Context) error {
	stop := make(chan struct{})
	go func() {
		j.RunOnce(context.Background())
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				j.RunOnce(context.Background())
			}
		}
	}()
	return func(ctx context.Context) error {
		close(stop)
		return nil
	}
}

// RunOnce 单飞保护：上一轮没结束时新 tick 直接跳过，不排队，
// 避免重叠执行造成重复批量写。
func (j *HotScoreJob) RunOnce(ctx context.Context) {
	if !j.running.CompareAndSwap(false, true) {
		logger.Warn("hot score recalculation still running, skipping tick")
		return
	}
	defer j.running.Store(false)

	now := j.now()
	posts, err := j.posts.ListRecentActive(ctx, now.Add(-j.window))
	if err != nil {
		logger.Error("hot score scan failed", zap.Error(err))
		return
	}
	if len(posts) == 0 {
		return
	}

	scores := make(map[string]float64, len(posts))
	for _, p := range posts {
		scores[p.ID] = ranking.HotScore(p.ReactionsCount, p.CommentsCount, p.SharesCount, p.CreatedAt, now)
	}

	if err := j.posts.BulkUpdateHotScores(ctx, scores); err != nil {
		logger.Error("hot score bulk update failed, abandoning cycle", zap.Error(err))
		return
	}
	logger.Info("hot score recalculated", zap.Int("posts", len(scores)))
}
