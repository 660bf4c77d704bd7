package post

import (
	"strconv"

	"social-backend/internal/errors"
	"social-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedHandler 处理三种信息流的HTTP请求
type FeedHandler struct {
	feedService *service.FeedService
}

func NewFeedHandler(feedService *service.FeedService) *FeedHandler {
	return &FeedHandler{feedService}
}

// Feed 返回当前用户的好友动态
func (h *FeedHandler) Feed(c *gin.Context) {
	userID := c.GetInt("user_id")

	posts, err := h.feedService.Feed(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
	}, "")
}

// Trending 返回热门公开帖子
func (h *FeedHandler) Trending(c *gin.Context) {
	posts, err := h.feedService.Trending(queryLimit(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
	}, "")
}

// Suggested 返回二度人脉的推荐帖子
func (h *FeedHandler) Suggested(c *gin.Context) {
	userID := c.GetInt("user_id")

	posts, err := h.feedService.Suggested(userID, queryLimit(c))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
	}, "")
}

// queryLimit 解析 limit 查询参数，缺失或非法时返回0（由服务层使用默认值）
func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
