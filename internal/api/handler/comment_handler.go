package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/internal/api/middleware"
	"github.com/d60-Lab/social-feed/internal/service"
	"github.com/d60-Lab/social-feed/pkg/response"
)

// ListComments 帖子下的根评论（被@ > 本人 > 其他，三键 keyset 分页）
// @Summary 根评论列表
// @Tags 评论
// @Produce json
// @Param post_id path string true "帖子ID"
// @Param limit query int false "页大小" default(10)
// @Param cursor query string false "上一页返回的游标"
// @Success 200 {object} response.Response{data=response.PageData}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/posts/{post_id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	postID := c.Param("post_id")
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	cursor := c.Query("cursor")

	page, err := h.commentService.ListRootComments(c.Request.Context(), middleware.ViewerID(c), postID, limit, cursor)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Page(c, page.Data, response.Pagination{NextCursor: page.NextCursor, HasMore: page.HasMore})
}

// ListReplies 评论下的回复。第一页会把@到当前用户的回复全量前置，
// 返回条数可能超过 limit（既有行为，游标只覆盖非@部分）。
// @Summary 回复列表
// @Tags 评论
// @Produce json
// @Param comment_id path string true "父评论ID"
// @Param limit query int false "页大小" default(10)
// @Param cursor query string false "上一页返回的游标"
// @Success 200 {object} response.Response{data=response.PageData}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/comments/{comment_id}/replies [get]
func (h *Handler) ListReplies(c *gin.Context) {
	parentID := c.Param("comment_id")
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	cursor := c.Query("cursor")

	page, err := h.commentService.ListReplies(c.Request.Context(), middleware.ViewerID(c), parentID, limit, cursor)
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Page(c, page.Data, response.Pagination{NextCursor: page.NextCursor, HasMore: page.HasMore})
}
