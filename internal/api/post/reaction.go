package post

import (
	"social-backend/internal/errors"
	"social-backend/internal/model"
	"social-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ReactionHandler 处理帖子和评论的反应相关HTTP请求
type ReactionHandler struct {
	postService *service.PostService
}

func NewReactionHandler(postService *service.PostService) *ReactionHandler {
	return &ReactionHandler{postService}
}

type reactionRequest struct {
	Type string `json:"type" binding:"required,reaction_kind"`
}

// SetPostReaction 设置当前用户对帖子的反应，覆盖之前的反应
func (h *ReactionHandler) SetPostReaction(c *gin.Context) {
	postID, ok := pathID(c, "无效的帖子ID")
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	req, ok := bindReaction(c)
	if !ok {
		return
	}

	post, err := h.postService.SetPostReaction(postID, userID, model.ReactionKind(req.Type))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"post": post,
	}, "反应已设置")
}

// ClearPostReaction 移除当前用户对帖子的指定反应
func (h *ReactionHandler) ClearPostReaction(c *gin.Context) {
	postID, ok := pathID(c, "无效的帖子ID")
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	req, ok := bindReaction(c)
	if !ok {
		return
	}

	post, err := h.postService.ClearPostReaction(postID, userID, model.ReactionKind(req.Type))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"post": post,
	}, "反应已移除")
}

// SetCommentReaction 设置当前用户对评论的反应
func (h *ReactionHandler) SetCommentReaction(c *gin.Context) {
	commentID, ok := pathID(c, "无效的评论ID")
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	req, ok := bindReaction(c)
	if !ok {
		return
	}

	comment, err := h.postService.SetCommentReaction(commentID, userID, model.ReactionKind(req.Type))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"comment": comment,
	}, "反应已设置")
}

// ClearCommentReaction 移除当前用户对评论的指定反应
func (h *ReactionHandler) ClearCommentReaction(c *gin.Context) {
	commentID, ok := pathID(c, "无效的评论ID")
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	req, ok := bindReaction(c)
	if !ok {
		return
	}

	comment, err := h.postService.ClearCommentReaction(commentID, userID, model.ReactionKind(req.Type))
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"comment": comment,
	}, "反应已移除")
}

func bindReaction(c *gin.Context) (*reactionRequest, bool) {
	var req reactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的反应类型", err))
		return nil, false
	}
	return &req, true
}
