package user

import (
	"fmt"

	"social-backend/config"
	"social-backend/internal/errors"
	"social-backend/internal/model"
	"social-backend/internal/service"
	"social-backend/internal/storage"
	"social-backend/internal/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	userService *service.UserService
	storage     *storage.LocalStorage
}

func NewProfileHandler(userService *service.UserService, storage *storage.LocalStorage) *ProfileHandler {
	return &ProfileHandler{userService, storage}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		util.Logger.Error("获取用户资料失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"user": user,
	}, "")
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var updateData struct {
		FullName       string            `json:"fullName"`
		Bio            string            `json:"bio"`
		Location       string            `json:"location"`
		ProfilePicture string            `json:"profilePicture"`
		CoverPhoto     string            `json:"coverPhoto"`
		Education      []model.Education `json:"education"`
		Work           []model.Work      `json:"work"`
	}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		util.Logger.Warn("更新用户资料失败，无效的请求数据", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求数据", err))
		return
	}

	user, err := h.userService.UpdateProfile(userID, &model.User{
		FullName:       updateData.FullName,
		Bio:            updateData.Bio,
		Location:       updateData.Location,
		ProfilePicture: updateData.ProfilePicture,
		CoverPhoto:     updateData.CoverPhoto,
		Education:      updateData.Education,
		Work:           updateData.Work,
	})
	if err != nil {
		util.Logger.Error("更新用户资料失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"user": user,
	}, "资料更新成功")
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID := c.GetInt("user_id")

	file, err := c.FormFile("avatar")
	if err != nil {
		util.Logger.Error("获取上传文件失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无法获取上传文件", err))
		return
	}

	filename := util.UniqueFilename(file.Filename)
	path := fmt.Sprintf("avatars/%d/%s", userID, filename)

	avatarURL, err := h.storage.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("上传头像失败", zap.Error(err))
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "上传头像失败", err))
		return
	}

	fullAvatarURL := fmt.Sprintf("%s/uploads/%s", config.AppConfig.BackendURL, avatarURL)

	if err := h.userService.UpdateAvatar(userID, fullAvatarURL); err != nil {
		util.Logger.Error("更新用户头像失败", zap.Error(err))
		errors.HandleError(c, err)
		return
	}

	errors.HandleSuccess(c, gin.H{
		"avatar_url": fullAvatarURL,
	}, "头像上传成功")
}
