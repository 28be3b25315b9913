package ranking

import (
	"math"
	"time"
)

// 排序打分的全部常量。权重 1/3/5 对应互动成本递增、信号递强；
// +2 小时偏移避免新帖除零放大；1.8 为重力指数，越大衰减越快。
const (
	ReactionWeight = 1.0
	CommentWeight  = 3.0
	ShareWeight    = 5.0
	ReplyWeight    = 1.5

	Gravity        = 1.8
	AgeOffsetHours = 2.0
)

// 评论优先级档位：被@ > 本人所发 > 其他
const (
	PriorityMentioned = 2
	PriorityAuthor    = 1
	PriorityNone      = 0
)

// HotScore 信息流热度分：interaction / (ageHours+2)^1.8
func HotScore(reactions, comments, shares int64, createdAt, now time.Time) float64 {
	interaction := float64(reactions)*ReactionWeight +
		float64(comments)*CommentWeight +
		float64(shares)*ShareWeight
	return interaction / decay(createdAt, now)
}

// Relevance 热评相关度分：(reactions + replies*1.5) / (ageHours+2)^1.8
func Relevance(reactions, replies int64, createdAt, now time.Time) float64 {
	points := float64(reactions) + float64(replies)*ReplyWeight
	return points / decay(createdAt, now)
}

func decay(createdAt, now time.Time) float64 {
	ageHours := now.Sub(createdAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	return math.Pow(ageHours+AgeOffsetHours, Gravity)
}

// CommentPriority 根评论三档优先级，viewer 为空（匿名）恒为 0
func CommentPriority(viewerID, authorID string, mentionedUserID *string) int {
	if viewerID == "" {
		return PriorityNone
	}
	if mentionedUserID != nil && *mentionedUserID == viewerID {
		return PriorityMentioned
	}
	if authorID == viewerID {
		return PriorityAuthor
	}
	return PriorityNone
}

// ReplyPriority 回复两档优先级：被@为 1，其余为 0
func ReplyPriority(viewerID string, mentionedUserID *string) int {
	if viewerID != "" && mentionedUserID != nil && *mentionedUserID == viewerID {
		return 1
	}
	return 0
}

// EngagementScore 同档内的互动分
func EngagementScore(reactions, replies int64) int64 { return reactions + replies }
