package service

import (
	"testing"
	"time"

	"social-backend/internal/model"
	"social-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
)

// newFeedFixture 构建一个小型社交图：
// alice(1) <-> bob(2)，bob(2) <-> dave(4)，carol(3) 与任何人都不是好友。
// 对 alice 来说 dave 是二度人脉。
func newFeedFixture(t *testing.T) (*memory.UserRepository, *memory.PostRepository, *FeedService) {
	t.Helper()
	userRepo := memory.NewUserRepository()
	postRepo := memory.NewPostRepository()

	users := []*model.User{
		{Username: "alice", Friends: []int{2}},
		{Username: "bob", Friends: []int{1, 4}},
		{Username: "carol"},
		{Username: "dave", Friends: []int{2}},
	}
	for _, user := range users {
		assert.NoError(t, userRepo.Create(user))
	}

	notification := NewNotificationService(userRepo)
	postService := NewPostService(postRepo, userRepo, notification)
	return userRepo, postRepo, NewFeedService(postRepo, userRepo, postService)
}

func seedFeedPost(t *testing.T, postRepo *memory.PostRepository, userID int, content string, privacy model.Privacy, age time.Duration, fill func(*model.Post)) *model.Post {
	t.Helper()
	post := &model.Post{
		UserID:    userID,
		Content:   content,
		PostType:  model.PostTypeText,
		Privacy:   privacy,
		Reactions: model.NewReactionSet(model.PostReactionKinds),
		CreatedAt: time.Now().Add(-age),
	}
	if fill != nil {
		fill(post)
	}
	assert.NoError(t, postRepo.Create(post))
	return post
}

// TestFeedExcludesStrangers 测试动态只包含本人和好友的帖子，最新的在前
func TestFeedExcludesStrangers(t *testing.T) {
	_, postRepo, svc := newFeedFixture(t)

	seedFeedPost(t, postRepo, 1, "by alice", model.PrivacyPublic, 3*time.Hour, nil)
	seedFeedPost(t, postRepo, 2, "by bob", model.PrivacyPublic, 1*time.Hour, nil)
	seedFeedPost(t, postRepo, 3, "by carol", model.PrivacyPublic, 30*time.Minute, nil)
	seedFeedPost(t, postRepo, 4, "by dave", model.PrivacyPublic, 10*time.Minute, nil)

	feed, err := svc.Feed(1)
	assert.NoError(t, err)
	assert.Len(t, feed, 2)
	assert.Equal(t, "by bob", feed[0].Content)
	assert.Equal(t, "by alice", feed[1].Content)
}

// TestFeedPrivacyFilter 测试动态同时应用可见范围过滤
func TestFeedPrivacyFilter(t *testing.T) {
	_, postRepo, svc := newFeedFixture(t)

	seedFeedPost(t, postRepo, 2, "bob public", model.PrivacyPublic, time.Hour, nil)
	seedFeedPost(t, postRepo, 2, "bob friends", model.PrivacyFriends, time.Hour, nil)
	seedFeedPost(t, postRepo, 2, "bob private", model.PrivacyPrivate, time.Hour, nil)

	feed, err := svc.Feed(1)
	assert.NoError(t, err)
	assert.Len(t, feed, 2)
	for _, post := range feed {
		assert.NotEqual(t, "bob private", post.Content)
	}
}

// TestFeedEmpty 测试没有可见帖子时返回空数组而不是null
func TestFeedEmpty(t *testing.T) {
	_, _, svc := newFeedFixture(t)

	feed, err := svc.Feed(3)
	assert.NoError(t, err)
	assert.NotNil(t, feed)
	assert.Len(t, feed, 0)
}

// TestTrendingRecencyBoost 测试新帖子的热度加成可以超过互动更多的老帖子
func TestTrendingRecencyBoost(t *testing.T) {
	_, postRepo, svc := newFeedFixture(t)

	// 老帖子：5个反应，时效系数已衰减到1，热度 5
	seedFeedPost(t, postRepo, 2, "old popular", model.PrivacyPublic, 200*time.Hour, func(p *model.Post) {
		for userID := 1; userID <= 5; userID++ {
			p.Reactions.Set(userID, model.ReactionLike)
		}
	})
	// 新帖子：3个反应，时效系数接近2，热度约 6
	seedFeedPost(t, postRepo, 3, "fresh", model.PrivacyPublic, time.Hour, func(p *model.Post) {
		for userID := 1; userID <= 3; userID++ {
			p.Reactions.Set(userID, model.ReactionLike)
		}
	})

	posts, err := svc.Trending(0)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "fresh", posts[0].Content)
	assert.Equal(t, "old popular", posts[1].Content)
}

// TestTrendingLimit 测试热门列表遵守数量限制
func TestTrendingLimit(t *testing.T) {
	_, postRepo, svc := newFeedFixture(t)

	for i := 0; i < 12; i++ {
		seedFeedPost(t, postRepo, 2, "public", model.PrivacyPublic, time.Hour, nil)
	}

	posts, err := svc.Trending(0)
	assert.NoError(t, err)
	// 默认限制为10
	assert.Len(t, posts, 10)

	posts, err = svc.Trending(3)
	assert.NoError(t, err)
	assert.Len(t, posts, 3)
}

// TestTrendingIgnoresPrivacy 测试热门按互动量排序，不按可见范围过滤
func TestTrendingIgnoresPrivacy(t *testing.T) {
	_, postRepo, svc := newFeedFixture(t)

	seedFeedPost(t, postRepo, 3, "cold public", model.PrivacyPublic, time.Hour, nil)
	seedFeedPost(t, postRepo, 2, "hot friends-only", model.PrivacyFriends, time.Hour, func(p *model.Post) {
		for userID := 1; userID <= 10; userID++ {
			p.Reactions.Set(userID, model.ReactionLike)
		}
		p.ShareCount = 5
	})

	posts, err := svc.Trending(0)
	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "hot friends-only", posts[0].Content)
	assert.Equal(t, "cold public", posts[1].Content)
}

// TestSuggestedSecondDegree 测试推荐只包含二度人脉的公开原创帖子
func TestSuggestedSecondDegree(t *testing.T) {
	_, postRepo, svc := newFeedFixture(t)

	original := seedFeedPost(t, postRepo, 4, "dave public", model.PrivacyPublic, time.Hour, nil)
	seedFeedPost(t, postRepo, 4, "dave private", model.PrivacyPrivate, time.Hour, nil)
	// 转发的帖子不进入推荐
	seedFeedPost(t, postRepo, 4, "dave share", model.PrivacyPublic, time.Hour, func(p *model.Post) {
		p.OriginalPostID = &original.ID
	})
	// 一度好友和陌生人的帖子都不进入推荐
	seedFeedPost(t, postRepo, 2, "bob public", model.PrivacyPublic, time.Hour, nil)
	seedFeedPost(t, postRepo, 3, "carol public", model.PrivacyPublic, time.Hour, nil)

	posts, err := svc.Suggested(1, 0)
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, "dave public", posts[0].Content)
	assert.Equal(t, "dave", posts[0].User.Username)
}

// TestSuggestedEmptyGraph 测试没有好友时推荐为空数组
func TestSuggestedEmptyGraph(t *testing.T) {
	_, postRepo, svc := newFeedFixture(t)

	seedFeedPost(t, postRepo, 2, "bob public", model.PrivacyPublic, time.Hour, nil)

	posts, err := svc.Suggested(3, 0)
	assert.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Len(t, posts, 0)
}
