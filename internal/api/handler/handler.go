package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/response"
)

// Handler 聚合各读取服务的 HTTP 入口
type Handler struct {
	feedService    *service.FeedService
	commentService *service.CommentService
}

func New(feedService *service.FeedService, commentService *service.CommentService) *Handler {
	return &Handler{feedService: feedService, commentService: commentService}
}

// limitParam 解析 limit 参数；非整数直接 400，范围收敛交给 service
func limitParam(c *gin.Context) (int, bool) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		response.BadRequest(c, "limit must be an integer")
		return 0, false
	}
	return limit, true
}

// Register 挂载路由
func (h *Handler) Register(r gin.IRouter) {
	v1 := r.Group("/api/v1")
	v1.GET("/feed", h.GetFeed)
	v1.GET("/posts/:post_id/comments", h.ListComments)
	v1.GET("/comments/:comment_id/replies", h.ListReplies)
}
