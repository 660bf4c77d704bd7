package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"social-backend/internal/errors"
	"social-backend/internal/model"
	"social-backend/internal/service"
	"social-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	util.InitLogger("error")
	os.Exit(m.Run())
}

// MockUserService 是 UserServiceInterface 的模拟实现
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(user *model.User, password string) error {
	args := m.Called(user, password)
	return args.Error(0)
}

func (m *MockUserService) Login(username, password string) (*model.User, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(userID int, update *model.User) (*model.User, error) {
	args := m.Called(userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateAvatar(userID int, avatarURL string) error {
	args := m.Called(userID, avatarURL)
	return args.Error(0)
}

func (m *MockUserService) Logout(token string, userID int) {
	m.Called(token, userID)
}

func (m *MockUserService) IsTokenBlacklisted(token string) bool {
	args := m.Called(token)
	return args.Bool(0)
}

// 确保 MockUserService 实现了 UserServiceInterface
var _ service.UserServiceInterface = (*MockUserService)(nil)

func newAuthRouter(mockService *MockUserService) *gin.Engine {
	handler := NewAuthHandler(mockService)
	router := gin.New()
	router.POST("/register", handler.Register)
	router.POST("/login", handler.Login)
	return router
}

// TestRegisterHandler 测试注册处理器
func TestRegisterHandler(t *testing.T) {
	mockService := new(MockUserService)
	router := newAuthRouter(mockService)

	mockService.On("Register", mock.AnythingOfType("*model.User"), "password123").Return(nil)

	body := []byte(`{"username": "testuser", "password": "password123", "fullName": "Test User"}`)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	mockService.AssertExpectations(t)
}

// TestRegisterHandlerConflict 测试用户名已存在返回409
func TestRegisterHandlerConflict(t *testing.T) {
	mockService := new(MockUserService)
	router := newAuthRouter(mockService)

	mockService.On("Register", mock.AnythingOfType("*model.User"), "password123").
		Return(errors.New(errors.ErrUserExists, "username already exists"))

	body := []byte(`{"username": "existinguser", "password": "password123"}`)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// TestRegisterHandlerMissingFields 测试缺少必填字段返回400
func TestRegisterHandlerMissingFields(t *testing.T) {
	mockService := new(MockUserService)
	router := newAuthRouter(mockService)

	body := []byte(`{"username": "testuser"}`)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register")
}

// TestLoginHandler 测试登录处理器
func TestLoginHandler(t *testing.T) {
	mockService := new(MockUserService)
	router := newAuthRouter(mockService)

	mockService.On("Login", "testuser", "password123").
		Return(&model.User{ID: 1, Username: "testuser"}, nil)

	body := []byte(`{"username": "testuser", "password": "password123"}`)
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"username"`
			} `json:"user"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, "testuser", resp.Data.User.Username)
}

// TestLoginHandlerInvalidCredentials 测试登录失败返回401
func TestLoginHandlerInvalidCredentials(t *testing.T) {
	mockService := new(MockUserService)
	router := newAuthRouter(mockService)

	mockService.On("Login", "testuser", "wrongpassword").
		Return(nil, errors.New(errors.ErrInvalidCredentials, "用户名或密码错误"))

	body := []byte(`{"username": "testuser", "password": "wrongpassword"}`)
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
