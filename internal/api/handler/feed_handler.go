package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-feed/pkg/response"
)

// GetFeed 热门信息流（keyset 游标分页）
// @Summary 热门信息流
// @Tags 信息流
// @Produce json
// @Param limit query int false "页大小" default(10)
// @Param cursor query string false "上一页返回的游标"
// @Param with_top_comments query bool false "是否附带每帖热评" default(true)
// @Success 200 {object} response.Response{data=response.PageData}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/feed [get]
func (h *Handler) GetFeed(c *gin.Context) {
	limit, ok := limitParam(c)
	if !ok {
		return
	}
	cursor := c.Query("cursor")
	withTop := c.DefaultQuery("with_top_comments", "true") == "true"

	page, err := h.feedService.GetFeed(c.Request.Context(), limit, cursor, withTop)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Page(c, page.Data, response.Pagination{NextCursor: page.NextCursor, HasMore: page.HasMore})
}
