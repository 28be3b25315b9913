package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/social-feed/internal/model"
	"github.com/d60-Lab/social-feed/internal/pagination"
	"github.com/d60-Lab/social-feed/internal/ranking"
	"github.com/d60-Lab/social-feed/internal/repository"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

// 本地基准：灌 N 条帖子，预算好 hot_score，然后整趟 keyset 翻页，
// 统计单页查询延迟分位数。
func main() {
	n := envInt("N", 50000)
	pageSize := envInt("PAGE", 20)

	db := must(gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}))
	sqlDB := must(db.DB())
	// :memory: 按连接隔离，池里只留一条连接
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&model.Post{}); err != nil {
		panic(err)
	}

	now := time.Now()
	batch := make([]*model.Post, 0, 1000)
	for i := 0; i < n; i++ {
		createdAt := now.Add(-time.Duration(rand.Intn(72)) * time.Hour)
		p := &model.Post{
			ID:             uuid.New().String(),
			AuthorID:       uuid.New().String(),
			Content:        fmt.Sprintf("post %d", i),
			ReactionsCount: int64(rand.Intn(500)),
			CommentsCount:  int64(rand.Intn(100)),
			SharesCount:    int64(rand.Intn(50)),
			Status:         model.PostStatusActive,
			CreatedAt:      createdAt,
		}
		p.HotScore = ranking.HotScore(p.ReactionsCount, p.CommentsCount, p.SharesCount, p.CreatedAt, now)
		batch = append(batch, p)
		if len(batch) == 1000 {
			if err := db.CreateInBatches(batch, 1000).Error; err != nil {
				panic(err)
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := db.CreateInBatches(batch, 1000).Error; err != nil {
			panic(err)
		}
	}

	repo := repository.NewPostRepository(db)
	ctx := context.Background()

	var lats []time.Duration
	var cursor *pagination.PostCursor
	pages := 0
	total := 0
	for {
		t0 := time.Now()
		posts, err := repo.ListFeed(ctx, cursor, pageSize)
		if err != nil {
			panic(err)
		}
		lats = append(lats, time.Since(t0))
		page := pagination.BuildPage(posts, pageSize, func(p *model.Post) string {
			return pagination.EncodePostCursor(pagination.PostCursor{HotScore: p.HotScore, ID: p.ID})
		})
		pages++
		total += len(page.Data)
		if !page.HasMore {
			break
		}
		c := must(pagination.DecodePostCursor(*page.NextCursor))
		cursor = &c
	}

	fmt.Printf("posts=%d pages=%d items=%d page_size=%d\n", n, pages, total, pageSize)
	fmt.Printf("page latency p50=%v p95=%v p99=%v max=%v\n",
		pct(lats, 0.50), pct(lats, 0.95), pct(lats, 0.99), pct(lats, 1.0))
}
