package post

import (
	"social-backend/internal/errors"
	"social-backend/internal/service"
	"social-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CommentHandler 处理评论相关的HTTP请求
type CommentHandler struct {
	postService *service.PostService
}

func NewCommentHandler(postService *service.PostService) *CommentHandler {
	return &CommentHandler{postService}
}

// AddComment 给帖子添加评论或回复
func (h *CommentHandler) AddComment(c *gin.Context) {
	postID, ok := pathID(c, "无效的帖子ID")
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	var commentData struct {
		Content     string `json:"content" binding:"required"`
		ParentID    *int   `json:"parentId"`
		TaggedUsers []int  `json:"taggedUsers"`
	}

	if err := c.ShouldBindJSON(&commentData); err != nil {
		util.Logger.Warn("添加评论失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	comment, err := h.postService.AddComment(postID, userID, commentData.Content, commentData.ParentID, commentData.TaggedUsers)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCreated(c, gin.H{
		"comment": comment,
	}, "评论添加成功")
}

// GetComments 返回帖子的评论树
func (h *CommentHandler) GetComments(c *gin.Context) {
	postID, ok := pathID(c, "无效的帖子ID")
	if !ok {
		return
	}

	comments, err := h.postService.GetPostComments(postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"comments": comments,
	}, "")
}
