package service

import (
	"social-backend/internal/errors"
	"social-backend/internal/repository/interfaces"
)

// ErrorCounter 提供按错误码统计的错误数量，由错误监控中间件实现
type ErrorCounter interface {
	GetErrorCounts() map[errors.ErrorCode]int
}

type StatsService struct {
	userRepo     interfaces.UserRepository
	postRepo     interfaces.PostRepository
	errorCounter ErrorCounter
}

func NewStatsService(userRepo interfaces.UserRepository, postRepo interfaces.PostRepository, errorCounter ErrorCounter) *StatsService {
	return &StatsService{
		userRepo:     userRepo,
		postRepo:     postRepo,
		errorCounter: errorCounter,
	}
}

func (s *StatsService) GetSystemStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	userCount, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	stats["total_users"] = userCount

	postCount, err := s.postRepo.Count()
	if err != nil {
		return nil, err
	}
	stats["total_posts"] = postCount

	commentCount, err := s.postRepo.CountAllComments()
	if err != nil {
		return nil, err
	}
	stats["total_comments"] = commentCount

	// 汇总所有帖子的反应数和转发数
	posts, err := s.postRepo.FindAll()
	if err != nil {
		return nil, err
	}
	var totalReactions, totalShares int
	for _, post := range posts {
		totalReactions += post.Reactions.Total()
		totalShares += post.ShareCount
	}
	stats["total_reactions"] = totalReactions
	stats["total_shares"] = totalShares

	if s.errorCounter != nil {
		errorCounts := make(map[int]int)
		for code, count := range s.errorCounter.GetErrorCounts() {
			errorCounts[int(code)] = count
		}
		stats["error_counts"] = errorCounts
	}

	return stats, nil
}
