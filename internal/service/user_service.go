package service

import (
	"social-backend/internal/errors"
	"social-backend/internal/model"
	"social-backend/internal/repository/interfaces"
	"social-backend/internal/util"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"golang.org/x/crypto/bcrypt"
)

// UserService 处理与用户账号相关的业务逻辑
type UserService struct {
	userRepo       interfaces.UserRepository
	tokenBlacklist map[string]time.Time
	blacklistMutex sync.RWMutex
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository) *UserService {
	return &UserService{
		userRepo:       userRepo,
		tokenBlacklist: make(map[string]time.Time),
	}
}

// IsUsernameTaken 检查用户名是否已被使用
func (s *UserService) IsUsernameTaken(username string) (bool, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// Register 注册新用户，password 为明文密码
func (s *UserService) Register(user *model.User, password string) error {
	if len(password) < 6 {
		return errors.New(errors.ErrWeakPassword, "密码长度至少为6个字符")
	}

	// 检查用户名是否已被使用
	taken, err := s.IsUsernameTaken(user.Username)
	if err != nil {
		return err
	}
	if taken {
		return errors.New(errors.ErrUserExists, "username already exists")
	}

	// 生成密码哈希
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return err
	}

	util.Logger.Info("用户注册成功",
		zap.Int("user_id", user.ID),
		zap.String("username", user.Username))
	return nil
}

// Login 用户登录，验证成功返回用户信息
func (s *UserService) Login(username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		util.Logger.Warn("登录失败，用户不存在", zap.String("username", username))
		return nil, errors.New(errors.ErrInvalidCredentials, "用户名或密码错误")
	}

	// 验证密码
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		util.Logger.Warn("登录失败，密码不正确", zap.Int("user_id", user.ID))
		return nil, errors.New(errors.ErrInvalidCredentials, "用户名或密码错误")
	}

	util.Logger.Info("用户登录成功", zap.Int("user_id", user.ID))
	return user, nil
}

// GetUserByID 通过ID获取用户信息
func (s *UserService) GetUserByID(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return user, nil
}

// UpdateProfile 更新用户资料，只覆盖允许修改的字段
func (s *UserService) UpdateProfile(userID int, update *model.User) (*model.User, error) {
	var updated *model.User
	found, err := s.userRepo.Mutate(userID, func(user *model.User) error {
		user.FullName = update.FullName
		user.Bio = update.Bio
		user.Location = update.Location
		if update.ProfilePicture != "" {
			user.ProfilePicture = update.ProfilePicture
		}
		if update.CoverPhoto != "" {
			user.CoverPhoto = update.CoverPhoto
		}
		if update.Education != nil {
			user.Education = update.Education
		}
		if update.Work != nil {
			user.Work = update.Work
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return updated, nil
}

// UpdateAvatar 更新用户头像
func (s *UserService) UpdateAvatar(userID int, avatarURL string) error {
	found, err := s.userRepo.Mutate(userID, func(user *model.User) error {
		user.ProfilePicture = avatarURL
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return nil
}

// SearchUsers 按用户名或姓名做不区分大小写的子串搜索，返回摘要列表。
// 查询为空白时返回空结果而不是全量用户。
func (s *UserService) SearchUsers(query string) ([]*model.UserSummary, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []*model.UserSummary{}, nil
	}

	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	result := []*model.UserSummary{}
	for _, user := range users {
		if strings.Contains(strings.ToLower(user.Username), query) ||
			strings.Contains(strings.ToLower(user.FullName), query) {
			result = append(result, user.Summary())
		}
	}
	return result, nil
}

// Logout 将当前令牌加入黑名单，令牌立即失效
func (s *UserService) Logout(token string, userID int) {
	s.blacklistMutex.Lock()
	s.tokenBlacklist[token] = time.Now().Add(24 * time.Hour) // 令牌在黑名单中保留24小时
	s.blacklistMutex.Unlock()
	util.Logger.Info("用户注销，令牌已加入黑名单", zap.Int("user_id", userID))
}

func (s *UserService) IsTokenBlacklisted(token string) bool {
	s.blacklistMutex.RLock()
	defer s.blacklistMutex.RUnlock()
	expiry, exists := s.tokenBlacklist[token]
	if !exists {
		return false
	}
	return time.Now().Before(expiry)
}

type UserServiceInterface interface {
	Register(user *model.User, password string) error
	Login(username, password string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateProfile(userID int, update *model.User) (*model.User, error)
	UpdateAvatar(userID int, avatarURL string) error
	Logout(token string, userID int)
	IsTokenBlacklisted(token string) bool
}

// 确保 UserService 实现了 UserServiceInterface
var _ UserServiceInterface = (*UserService)(nil)
