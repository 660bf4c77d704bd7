package service

import (
	"sync"
	"testing"

	"social-backend/internal/errors"
	"social-backend/internal/model"
	"social-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
)

func newPostFixture(t *testing.T) (*memory.UserRepository, *memory.PostRepository, *PostService) {
	t.Helper()
	userRepo := memory.NewUserRepository()
	postRepo := memory.NewPostRepository()
	for _, username := range []string{"alice", "bob", "carol"} {
		err := userRepo.Create(&model.User{Username: username, FullName: username})
		assert.NoError(t, err)
	}
	notification := NewNotificationService(userRepo)
	return userRepo, postRepo, NewPostService(postRepo, userRepo, notification)
}

// TestCreatePostValidation 测试创建帖子的校验逻辑
func TestCreatePostValidation(t *testing.T) {
	_, _, svc := newPostFixture(t)

	_, err := svc.CreatePost(1, &model.Post{Content: "   "})
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))

	_, err = svc.CreatePost(1, &model.Post{Content: "hello", PostType: "unknown"})
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))

	_, err = svc.CreatePost(1, &model.Post{Content: "hello", Privacy: "secret"})
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))
}

// TestCreatePostTypeFieldFiltering 测试类型不匹配的可选字段被清空
func TestCreatePostTypeFieldFiltering(t *testing.T) {
	_, _, svc := newPostFixture(t)

	post, err := svc.CreatePost(1, &model.Post{
		Content:  "just text",
		PostType: model.PostTypeText,
		ImageURL: "https://example.com/image.jpg",
		VideoURL: "https://example.com/video.mp4",
		LinkURL:  "https://example.com",
	})
	assert.NoError(t, err)
	assert.Empty(t, post.ImageURL)
	assert.Empty(t, post.VideoURL)
	assert.Empty(t, post.LinkURL)

	// 默认值
	assert.Equal(t, model.PrivacyPublic, post.Privacy)
	assert.Equal(t, "alice", post.User.Username)
}

// TestPostReactionOverwrite 测试同一用户的反应互相覆盖，始终只保留一个
func TestPostReactionOverwrite(t *testing.T) {
	_, postRepo, svc := newPostFixture(t)

	created, err := svc.CreatePost(1, &model.Post{Content: "hello"})
	assert.NoError(t, err)

	_, err = svc.SetPostReaction(created.ID, 2, model.ReactionLike)
	assert.NoError(t, err)
	_, err = svc.SetPostReaction(created.ID, 2, model.ReactionLove)
	assert.NoError(t, err)

	post, _ := postRepo.FindByID(created.ID)
	assert.Equal(t, 1, post.Reactions.Total())
	kind, _ := post.Reactions.KindOf(2)
	assert.Equal(t, model.ReactionLove, kind)
}

// TestPostReactionConcurrent 测试大量用户同时反应时一个都不丢失
func TestPostReactionConcurrent(t *testing.T) {
	_, postRepo, svc := newPostFixture(t)

	created, err := svc.CreatePost(1, &model.Post{Content: "hello"})
	assert.NoError(t, err)

	const reactors = 50
	var wg sync.WaitGroup
	for i := 0; i < reactors; i++ {
		wg.Add(1)
		go func(userID int) {
			defer wg.Done()
			_, err := svc.SetPostReaction(created.ID, userID, model.ReactionLike)
			assert.NoError(t, err)
		}(i + 2)
	}
	wg.Wait()

	post, _ := postRepo.FindByID(created.ID)
	assert.Equal(t, reactors, post.Reactions.Total())
}

// TestClearPostReactionTwice 测试重复移除反应失败且不产生任何修改
func TestClearPostReactionTwice(t *testing.T) {
	_, postRepo, svc := newPostFixture(t)

	created, err := svc.CreatePost(1, &model.Post{Content: "hello"})
	assert.NoError(t, err)

	_, err = svc.SetPostReaction(created.ID, 2, model.ReactionLike)
	assert.NoError(t, err)

	// 类型不匹配时失败，反应保持不变
	_, err = svc.ClearPostReaction(created.ID, 2, model.ReactionLove)
	assert.Equal(t, errors.ErrReactionNotSet, errors.CodeOf(err))
	post, _ := postRepo.FindByID(created.ID)
	assert.Equal(t, 1, post.Reactions.Total())

	_, err = svc.ClearPostReaction(created.ID, 2, model.ReactionLike)
	assert.NoError(t, err)

	// 第二次移除继续失败
	_, err = svc.ClearPostReaction(created.ID, 2, model.ReactionLike)
	assert.Equal(t, errors.ErrReactionNotSet, errors.CodeOf(err))
	post, _ = postRepo.FindByID(created.ID)
	assert.Equal(t, 0, post.Reactions.Total())
}

// TestSharePost 测试转发引用原帖、沿用原帖的媒体字段、标记原作者并增加转发数
func TestSharePost(t *testing.T) {
	_, postRepo, svc := newPostFixture(t)

	original, err := svc.CreatePost(1, &model.Post{
		Content:  "original",
		PostType: model.PostTypeImage,
		ImageURL: "https://example.com/sunset.jpg",
		Location: "Lisbon",
	})
	assert.NoError(t, err)

	share, err := svc.SharePost(2, original.ID, "check this out")
	assert.NoError(t, err)
	assert.Equal(t, original.ID, *share.OriginalPostID)
	assert.Equal(t, []int{1}, share.TaggedUsers)
	assert.Equal(t, model.PostTypeImage, share.PostType)
	assert.Equal(t, "https://example.com/sunset.jpg", share.ImageURL)
	assert.Equal(t, "Lisbon", share.Location)
	assert.NotNil(t, share.OriginalPost)
	assert.Equal(t, "original", share.OriginalPost.Content)

	stored, _ := postRepo.FindByID(original.ID)
	assert.Equal(t, 1, stored.ShareCount)

	_, err = svc.SharePost(2, 99, "missing")
	assert.Equal(t, errors.ErrPostNotFound, errors.CodeOf(err))
}

// TestCommentTree 测试评论树的结构：根按创建顺序，回复按追加顺序
func TestCommentTree(t *testing.T) {
	_, _, svc := newPostFixture(t)

	post, err := svc.CreatePost(1, &model.Post{Content: "hello"})
	assert.NoError(t, err)

	c1, err := svc.AddComment(post.ID, 2, "first root", nil, nil)
	assert.NoError(t, err)
	c2, err := svc.AddComment(post.ID, 3, "reply to first", &c1.ID, nil)
	assert.NoError(t, err)
	_, err = svc.AddComment(post.ID, 1, "another reply to first", &c1.ID, nil)
	assert.NoError(t, err)
	_, err = svc.AddComment(post.ID, 2, "nested reply", &c2.ID, nil)
	assert.NoError(t, err)

	roots, err := svc.GetPostComments(post.ID)
	assert.NoError(t, err)
	assert.Len(t, roots, 1)
	assert.Equal(t, "first root", roots[0].Content)
	assert.Len(t, roots[0].Replies, 2)
	assert.Equal(t, "reply to first", roots[0].Replies[0].Content)
	assert.Equal(t, "another reply to first", roots[0].Replies[1].Content)
	assert.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "nested reply", roots[0].Replies[0].Replies[0].Content)

	// 作者摘要在每个节点上
	assert.Equal(t, "bob", roots[0].User.Username)
}

// TestAddCommentParentValidation 测试写入时的父评论校验
func TestAddCommentParentValidation(t *testing.T) {
	_, _, svc := newPostFixture(t)

	postA, _ := svc.CreatePost(1, &model.Post{Content: "post a"})
	postB, _ := svc.CreatePost(1, &model.Post{Content: "post b"})

	// 父评论不存在
	missing := 99
	_, err := svc.AddComment(postA.ID, 2, "reply", &missing, nil)
	assert.Equal(t, errors.ErrCommentNotFound, errors.CodeOf(err))

	// 父评论属于另一个帖子
	other, err := svc.AddComment(postB.ID, 2, "on post b", nil, nil)
	assert.NoError(t, err)
	_, err = svc.AddComment(postA.ID, 2, "cross-post reply", &other.ID, nil)
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))
}

// TestCommentTreeLenientFallback 测试存储中悬空的父引用按根评论处理
func TestCommentTreeLenientFallback(t *testing.T) {
	_, postRepo, svc := newPostFixture(t)

	post, _ := svc.CreatePost(1, &model.Post{Content: "hello"})

	// 绕过服务层直接写入一条父评论已不存在的评论
	missing := 99
	err := postRepo.CreateComment(&model.Comment{
		PostID:    post.ID,
		UserID:    2,
		Content:   "orphan",
		ParentID:  &missing,
		Reactions: model.NewReactionSet(model.CommentReactionKinds),
	})
	assert.NoError(t, err)

	roots, err := svc.GetPostComments(post.ID)
	assert.NoError(t, err)
	assert.Len(t, roots, 1)
	assert.Equal(t, "orphan", roots[0].Content)
}

// TestCommentReactionKinds 测试评论反应限制为 like 和 love
func TestCommentReactionKinds(t *testing.T) {
	_, _, svc := newPostFixture(t)

	post, _ := svc.CreatePost(1, &model.Post{Content: "hello"})
	comment, err := svc.AddComment(post.ID, 2, "nice", nil, nil)
	assert.NoError(t, err)

	_, err = svc.SetCommentReaction(comment.ID, 1, model.ReactionLove)
	assert.NoError(t, err)

	_, err = svc.SetCommentReaction(comment.ID, 1, model.ReactionWow)
	assert.Equal(t, errors.ErrValidation, errors.CodeOf(err))
}

// TestPostVisibility 测试帖子可见范围
func TestPostVisibility(t *testing.T) {
	userRepo, _, svc := newPostFixture(t)

	// alice 和 bob 是好友
	alice, _ := userRepo.FindByID(1)
	alice.Friends = []int{2}
	assert.NoError(t, userRepo.Update(alice))
	bob, _ := userRepo.FindByID(2)
	bob.Friends = []int{1}
	assert.NoError(t, userRepo.Update(bob))

	friendsPost, _ := svc.CreatePost(1, &model.Post{Content: "friends only", Privacy: model.PrivacyFriends})
	privatePost, _ := svc.CreatePost(1, &model.Post{Content: "private", Privacy: model.PrivacyPrivate})

	// 好友可见 friends 帖子
	_, err := svc.GetPostByID(friendsPost.ID, 2)
	assert.NoError(t, err)

	// 陌生人不可见
	_, err = svc.GetPostByID(friendsPost.ID, 3)
	assert.Equal(t, errors.ErrPostNotFound, errors.CodeOf(err))

	// 私密帖子只有作者可见
	_, err = svc.GetPostByID(privatePost.ID, 1)
	assert.NoError(t, err)
	_, err = svc.GetPostByID(privatePost.ID, 2)
	assert.Equal(t, errors.ErrPostNotFound, errors.CodeOf(err))
}

// TestCommentNotification 测试评论和反应的通知发放
func TestCommentNotification(t *testing.T) {
	userRepo, _, svc := newPostFixture(t)

	post, _ := svc.CreatePost(1, &model.Post{Content: "hello"})

	_, err := svc.AddComment(post.ID, 2, "nice post", nil, nil)
	assert.NoError(t, err)
	_, err = svc.SetPostReaction(post.ID, 3, model.ReactionLike)
	assert.NoError(t, err)

	alice, _ := userRepo.FindByID(1)
	assert.Len(t, alice.Notifications, 2)
	assert.Equal(t, model.NotificationComment, alice.Notifications[0].Type)
	assert.Equal(t, model.NotificationPostReaction, alice.Notifications[1].Type)

	// 自己的操作不产生通知
	_, err = svc.SetPostReaction(post.ID, 1, model.ReactionLike)
	assert.NoError(t, err)
	alice, _ = userRepo.FindByID(1)
	assert.Len(t, alice.Notifications, 2)
}
