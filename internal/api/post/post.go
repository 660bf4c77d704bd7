package post

import (
	"strconv"

	"social-backend/internal/errors"
	"social-backend/internal/model"
	"social-backend/internal/service"
	"social-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PostHandler 处理帖子相关的HTTP请求
type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler 创建一个新的 PostHandler 实例
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService}
}

// CreatePost 创建新帖子
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetInt("user_id")

	var postData struct {
		Content         string `json:"content" binding:"required"`
		PostType        string `json:"postType"`
		ImageURL        string `json:"imageUrl"`
		VideoURL        string `json:"videoUrl"`
		LinkURL         string `json:"linkUrl"`
		LinkTitle       string `json:"linkTitle"`
		LinkDescription string `json:"linkDescription"`
		LinkImage       string `json:"linkImage"`
		Privacy         string `json:"privacy"`
		Location        string `json:"location"`
		TaggedUsers     []int  `json:"taggedUsers"`
	}

	if err := c.ShouldBindJSON(&postData); err != nil {
		util.Logger.Warn("创建帖子失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	post, err := h.postService.CreatePost(userID, &model.Post{
		Content:         postData.Content,
		PostType:        model.PostType(postData.PostType),
		ImageURL:        postData.ImageURL,
		VideoURL:        postData.VideoURL,
		LinkURL:         postData.LinkURL,
		LinkTitle:       postData.LinkTitle,
		LinkDescription: postData.LinkDescription,
		LinkImage:       postData.LinkImage,
		Privacy:         model.Privacy(postData.Privacy),
		Location:        postData.Location,
		TaggedUsers:     postData.TaggedUsers,
	})
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCreated(c, gin.H{
		"post": post,
	}, "帖子创建成功")
}

// GetPost 获取单个帖子
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, "无效的帖子ID")
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	post, err := h.postService.GetPostByID(postID, userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"post": post,
	}, "")
}

// GetUserPosts 获取指定用户对当前用户可见的帖子
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	targetID, ok := pathID(c, "无效的用户ID")
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	posts, err := h.postService.GetUserPosts(targetID, userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"posts": posts,
	}, "")
}

// SharePost 转发帖子
func (h *PostHandler) SharePost(c *gin.Context) {
	postID, ok := pathID(c, "无效的帖子ID")
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	var shareData struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&shareData); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	post, err := h.postService.SharePost(userID, postID, shareData.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	errors.HandleCreated(c, gin.H{
		"post": post,
	}, "帖子转发成功")
}

func pathID(c *gin.Context, message string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, message, err))
		return 0, false
	}
	return id, true
}
