package service

import (
	"sort"
	"time"

	"social-backend/internal/errors"
	"social-backend/internal/model"
	"social-backend/internal/repository/interfaces"
)

// 排行模式的默认返回数量
const defaultFeedLimit = 10

// FeedService 实现三种信息流：好友动态、热门和推荐
type FeedService struct {
	postRepo    interfaces.PostRepository
	userRepo    interfaces.UserRepository
	postService *PostService
}

func NewFeedService(postRepo interfaces.PostRepository, userRepo interfaces.UserRepository, postService *PostService) *FeedService {
	return &FeedService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		postService: postService,
	}
}

// Feed 返回查看者的好友动态：
// 作者必须是查看者本人或其好友，且帖子对查看者可见，最新的在前。
func (s *FeedService) Feed(viewerID int) ([]*model.Post, error) {
	viewer, err := s.userRepo.FindByID(viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	authors := map[int]bool{viewerID: true}
	for _, id := range viewer.Friends {
		authors[id] = true
	}

	posts, err := s.postRepo.FindAll()
	if err != nil {
		return nil, err
	}

	feed := []*model.Post{}
	for _, post := range posts {
		if !authors[post.UserID] {
			continue
		}
		visible, err := s.postService.canView(post, viewerID)
		if err != nil {
			return nil, err
		}
		if !visible {
			continue
		}
		decorated, err := s.postService.Decorate(post)
		if err != nil {
			return nil, err
		}
		feed = append(feed, decorated)
	}

	sortNewestFirst(feed)
	return feed, nil
}

// Trending 按热度返回全站帖子，不做可见范围过滤。
// 热度 = (反应数 + 评论数×2 + 转发数×3) × 时效系数，
// 时效系数在72小时内随帖子年龄线性衰减，之后恒为1。
func (s *FeedService) Trending(limit int) ([]*model.Post, error) {
	posts, err := s.postRepo.FindAll()
	if err != nil {
		return nil, err
	}

	candidates := []*model.Post{}
	scores := map[int]float64{}
	for _, post := range posts {
		comments, err := s.postRepo.CountComments(post.ID)
		if err != nil {
			return nil, err
		}
		engagement := float64(post.Reactions.Total() + comments*2 + post.ShareCount*3)
		scores[post.ID] = engagement * recencyBoost(post.CreatedAt, 72)
		candidates = append(candidates, post)
	}

	return s.rank(candidates, scores, limit)
}

// Suggested 返回二度人脉（好友的好友）的公开原创帖子。
// 热度 = (反应数 + 评论数 + 转发数) × 时效系数，时效窗口为一周。
func (s *FeedService) Suggested(viewerID, limit int) ([]*model.Post, error) {
	viewer, err := s.userRepo.FindByID(viewerID)
	if err != nil {
		return nil, err
	}
	if viewer == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	direct := map[int]bool{viewerID: true}
	for _, id := range viewer.Friends {
		direct[id] = true
	}

	// 收集好友的好友，去掉本人和一度好友
	secondDegree := map[int]bool{}
	for _, friendID := range viewer.Friends {
		friend, err := s.userRepo.FindByID(friendID)
		if err != nil {
			return nil, err
		}
		if friend == nil {
			continue
		}
		for _, id := range friend.Friends {
			if !direct[id] {
				secondDegree[id] = true
			}
		}
	}

	posts, err := s.postRepo.FindAll()
	if err != nil {
		return nil, err
	}

	candidates := []*model.Post{}
	scores := map[int]float64{}
	for _, post := range posts {
		if !secondDegree[post.UserID] {
			continue
		}
		if post.Privacy != model.PrivacyPublic || post.OriginalPostID != nil {
			continue
		}
		comments, err := s.postRepo.CountComments(post.ID)
		if err != nil {
			return nil, err
		}
		engagement := float64(post.Reactions.Total() + comments + post.ShareCount)
		scores[post.ID] = engagement * recencyBoost(post.CreatedAt, 168)
		candidates = append(candidates, post)
	}

	return s.rank(candidates, scores, limit)
}

// rank 按分数降序排列（相同分数保持插入顺序），截断并填充读取时字段
func (s *FeedService) rank(posts []*model.Post, scores map[int]float64, limit int) ([]*model.Post, error) {
	sort.SliceStable(posts, func(i, j int) bool {
		return scores[posts[i].ID] > scores[posts[j].ID]
	})

	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}

	result := []*model.Post{}
	for _, post := range posts {
		decorated, err := s.postService.Decorate(post)
		if err != nil {
			return nil, err
		}
		result = append(result, decorated)
	}
	return result, nil
}

// recencyBoost 计算时效系数：1 + max(0, 1 - 帖子年龄小时数/窗口)
func recencyBoost(createdAt time.Time, windowHours float64) float64 {
	age := time.Since(createdAt).Hours()
	boost := 1 - age/windowHours
	if boost < 0 {
		boost = 0
	}
	return 1 + boost
}
