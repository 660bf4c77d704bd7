package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"social-backend/config"
	"social-backend/internal/api/post"
	"social-backend/internal/api/stats"
	"social-backend/internal/api/user"
	"social-backend/internal/middleware"
	"social-backend/internal/repository/memory"
	"social-backend/internal/service"
	"social-backend/internal/storage"
	"social-backend/internal/util"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			util.Logger.Error("程序发生严重错误", zap.Any("error", r))
		}
	}()

	// 初始化配置
	config.Init()

	// 初始化日志
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	util.Logger.Info("应用程序启动")

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("reaction_kind", util.ValidateReactionKind)
	}

	// 确保上传文件夹存在
	ensureUploadsFolder()

	localStorage, err := storage.NewLocalStorage(config.AppConfig.LocalStoragePath)
	if err != nil {
		util.Logger.Fatal("初始化本地存储失败", zap.Error(err))
	}

	// 初始化内存存储并写入演示数据
	userRepo := memory.NewUserRepository()
	postRepo := memory.NewPostRepository()
	if err := memory.Seed(userRepo, postRepo); err != nil {
		util.Logger.Fatal("初始化演示数据失败", zap.Error(err))
	}

	// 初始化服务和处理器
	userService := service.NewUserService(userRepo)
	emailService := service.NewEmailService(userRepo)
	notificationService := service.NewNotificationService(userRepo)
	friendService := service.NewFriendService(userRepo, notificationService, emailService)
	postService := service.NewPostService(postRepo, userRepo, notificationService)
	feedService := service.NewFeedService(postRepo, userRepo, postService)

	errorMonitor := middleware.NewErrorMonitor()
	statsService := service.NewStatsService(userRepo, postRepo, errorMonitor)

	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService, localStorage)
	userHandler := user.NewUserHandler(userService, friendService)
	notificationHandler := user.NewNotificationHandler(notificationService)
	postHandler := post.NewPostHandler(postService)
	commentHandler := post.NewCommentHandler(postService)
	reactionHandler := post.NewReactionHandler(postService)
	feedHandler := post.NewFeedHandler(feedService)
	statsHandler := stats.NewStatsHandler(statsService)

	// 设置 Gin 路由
	r := gin.Default()

	// 添加中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.ErrorMonitorMiddleware(errorMonitor))

	// 配置 CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.AppConfig.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
	}
	corsConfig.ExposeHeaders = []string{
		"Content-Length",
		"Content-Type",
		"Access-Control-Allow-Origin",
	}
	r.Use(cors.New(corsConfig))

	// 静态文件的CORS单独处理
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			c.Header("Access-Control-Allow-Origin", config.AppConfig.FrontendURL)
			c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Origin, Content-Type")

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(200)
				return
			}
		}
		c.Next()
	})

	// 配置静态文件服务
	r.Static("/uploads", config.AppConfig.LocalStoragePath)

	// 定义 API 路由
	api := r.Group("/api")
	{
		// 认证路由
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 需要认证的路由
		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware(userService))
		{
			authorized.POST("/logout", authHandler.Logout)
			authorized.POST("/refresh-token", authHandler.RefreshToken)

			// 个人资料
			authorized.GET("/profile", profileHandler.GetProfile)
			authorized.PUT("/profile", profileHandler.UpdateProfile)
			authorized.POST("/profile/avatar", profileHandler.UploadAvatar)

			// 用户与好友关系
			authorized.GET("/users", userHandler.SearchUsers)
			authorized.GET("/users/:id", userHandler.GetUser)
			authorized.GET("/users/:id/profile", userHandler.GetUserProfile)
			authorized.GET("/users/:id/friends", userHandler.GetFriends)
			authorized.POST("/users/:id/friend-request", userHandler.SendFriendRequest)
			authorized.POST("/users/:id/accept-friend", userHandler.AcceptFriendRequest)
			authorized.POST("/users/:id/reject-friend", userHandler.RejectFriendRequest)
			authorized.DELETE("/users/:id/friend", userHandler.RemoveFriend)
			authorized.GET("/friend-requests", userHandler.GetFriendRequests)

			// 通知
			authorized.GET("/notifications", notificationHandler.List)
			authorized.POST("/notifications/:id/read", notificationHandler.MarkRead)

			// 帖子
			authorized.POST("/posts", postHandler.CreatePost)
			authorized.GET("/posts/:id", postHandler.GetPost)
			authorized.GET("/users/:id/posts", postHandler.GetUserPosts)
			authorized.POST("/posts/:id/share", postHandler.SharePost)

			// 反应
			authorized.POST("/posts/:id/reactions", reactionHandler.SetPostReaction)
			authorized.DELETE("/posts/:id/reactions", reactionHandler.ClearPostReaction)
			authorized.POST("/comments/:id/reactions", reactionHandler.SetCommentReaction)
			authorized.DELETE("/comments/:id/reactions", reactionHandler.ClearCommentReaction)

			// 评论
			authorized.POST("/posts/:id/comments", commentHandler.AddComment)
			authorized.GET("/posts/:id/comments", commentHandler.GetComments)

			// 信息流
			authorized.GET("/posts/feed", feedHandler.Feed)
			authorized.GET("/posts/trending", feedHandler.Trending)
			authorized.GET("/posts/suggested", feedHandler.Suggested)

			// 系统统计
			authorized.GET("/stats", statsHandler.GetStats)
		}
	}

	// 创建一个带有超时的 http.Server
	srv := &http.Server{
		Addr:    ":" + config.AppConfig.Port,
		Handler: r,
	}

	// 在一个新的 goroutine 中启动服务器
	go func() {
		util.Logger.Info("服务器正在启动", zap.String("port", config.AppConfig.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("启动服务器失败", zap.Error(err))
		}
	}()

	// 等待中断信号以优雅地关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Fatal("服务器强制关闭", zap.Error(err))
	}

	util.Logger.Info("服务器已优雅关闭")
}

// 确保上传文件夹存在
func ensureUploadsFolder() {
	uploadsPath := config.AppConfig.LocalStoragePath
	if err := os.MkdirAll(uploadsPath, 0755); err != nil {
		util.Logger.Fatal("创建上传文件夹失败", zap.Error(err), zap.String("path", uploadsPath))
	}
	util.Logger.Info("上传文件夹已创建或已存在", zap.String("path", uploadsPath))
}
