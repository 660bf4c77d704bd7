package service

import (
	"sort"
	"strings"

	"social-backend/internal/errors"
	"social-backend/internal/model"
	"social-backend/internal/repository/interfaces"
	"social-backend/internal/util"

	"go.uber.org/zap"
)

// PostService 处理帖子、评论和反应相关的业务逻辑
type PostService struct {
	postRepo     interfaces.PostRepository
	userRepo     interfaces.UserRepository
	notification *NotificationService
}

func NewPostService(postRepo interfaces.PostRepository, userRepo interfaces.UserRepository, notification *NotificationService) *PostService {
	return &PostService{
		postRepo:     postRepo,
		userRepo:     userRepo,
		notification: notification,
	}
}

// CreatePost 创建新帖子。
// 类型相关的可选字段只在帖子类型匹配时保留，其余一律清空。
func (s *PostService) CreatePost(userID int, post *model.Post) (*model.Post, error) {
	if strings.TrimSpace(post.Content) == "" {
		return nil, errors.New(errors.ErrValidation, "帖子内容不能为空")
	}

	if post.PostType == "" {
		post.PostType = model.PostTypeText
	}
	if !post.PostType.IsValid() {
		return nil, errors.New(errors.ErrValidation, "未知的帖子类型")
	}

	if post.Privacy == "" {
		post.Privacy = model.PrivacyPublic
	}
	if !post.Privacy.IsValid() {
		return nil, errors.New(errors.ErrValidation, "未知的可见范围")
	}

	if post.PostType != model.PostTypeImage {
		post.ImageURL = ""
	}
	if post.PostType != model.PostTypeVideo {
		post.VideoURL = ""
	}
	if post.PostType != model.PostTypeLink {
		post.LinkURL = ""
		post.LinkTitle = ""
		post.LinkDescription = ""
		post.LinkImage = ""
	}

	post.UserID = userID
	post.Reactions = model.NewReactionSet(model.PostReactionKinds)
	post.ShareCount = 0
	post.OriginalPostID = nil

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	util.Logger.Info("帖子创建成功",
		zap.Int("post_id", post.ID),
		zap.Int("user_id", userID),
		zap.String("post_type", string(post.PostType)))
	return s.Decorate(post)
}

// GetPostByID 获取单个帖子，对查看者不可见时返回帖子不存在
func (s *PostService) GetPostByID(postID, viewerID int) (*model.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}

	visible, err := s.canView(post, viewerID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	return s.Decorate(post)
}

// GetUserPosts 返回指定用户对查看者可见的帖子，最新的在前
func (s *PostService) GetUserPosts(targetUserID, viewerID int) ([]*model.Post, error) {
	target, err := s.userRepo.FindByID(targetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	posts, err := s.postRepo.FindByUserID(targetUserID)
	if err != nil {
		return nil, err
	}

	visible := []*model.Post{}
	for _, post := range posts {
		ok, err := s.canView(post, viewerID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		decorated, err := s.Decorate(post)
		if err != nil {
			return nil, err
		}
		visible = append(visible, decorated)
	}

	sortNewestFirst(visible)
	return visible, nil
}

// SharePost 转发帖子：创建引用原帖的新帖子，标记原作者并增加原帖的转发数。
// 转发帖沿用原帖的媒体字段和位置，这样原帖被删改前转发内容仍然完整。
func (s *PostService) SharePost(userID, originalID int, content string) (*model.Post, error) {
	original, err := s.postRepo.FindByID(originalID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, errors.New(errors.ErrPostNotFound, "原帖不存在")
	}

	share := &model.Post{
		UserID:          userID,
		Content:         content,
		PostType:        original.PostType,
		ImageURL:        original.ImageURL,
		VideoURL:        original.VideoURL,
		LinkURL:         original.LinkURL,
		LinkTitle:       original.LinkTitle,
		LinkDescription: original.LinkDescription,
		LinkImage:       original.LinkImage,
		Location:        original.Location,
		Privacy:         model.PrivacyPublic,
		TaggedUsers:     []int{original.UserID},
		Reactions:       model.NewReactionSet(model.PostReactionKinds),
		OriginalPostID:  &originalID,
	}
	if err := s.postRepo.Create(share); err != nil {
		return nil, err
	}

	if _, err := s.postRepo.Mutate(originalID, func(p *model.Post) error {
		p.ShareCount++
		return nil
	}); err != nil {
		return nil, err
	}

	util.Logger.Info("帖子转发成功",
		zap.Int("post_id", share.ID),
		zap.Int("original_post_id", originalID),
		zap.Int("user_id", userID))
	return s.Decorate(share)
}

// SetPostReaction 设置用户对帖子的反应，覆盖之前的反应。
// 修改在仓库锁内完成，多个用户同时反应不会互相覆盖。
func (s *PostService) SetPostReaction(postID, userID int, kind model.ReactionKind) (*model.Post, error) {
	var post *model.Post
	found, err := s.postRepo.Mutate(postID, func(p *model.Post) error {
		if !p.Reactions.Set(userID, kind) {
			return errors.New(errors.ErrValidation, "未知的反应类型")
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}

	if err := s.notification.Notify(post.UserID, userID, model.NotificationPostReaction, &post.ID); err != nil {
		util.Logger.Error("创建帖子反应通知失败", zap.Error(err))
	}
	return s.Decorate(post)
}

// ClearPostReaction 移除用户对帖子的指定反应。
// 用户当前反应不是该类型时返回失败，不做任何修改。
func (s *PostService) ClearPostReaction(postID, userID int, kind model.ReactionKind) (*model.Post, error) {
	var post *model.Post
	found, err := s.postRepo.Mutate(postID, func(p *model.Post) error {
		if !p.Reactions.Allows(kind) {
			return errors.New(errors.ErrValidation, "未知的反应类型")
		}
		if !p.Reactions.Clear(userID, kind) {
			return errors.New(errors.ErrReactionNotSet, "当前没有该类型的反应")
		}
		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	return s.Decorate(post)
}

// AddComment 给帖子添加评论。
// parentID 非空时父评论必须存在且属于同一帖子。
func (s *PostService) AddComment(postID, userID int, content string, parentID *int, taggedUsers []int) (*model.Comment, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}

	if strings.TrimSpace(content) == "" {
		return nil, errors.New(errors.ErrValidation, "评论内容不能为空")
	}

	var parent *model.Comment
	if parentID != nil {
		parent, err = s.postRepo.FindCommentByID(*parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, errors.New(errors.ErrCommentNotFound, "父评论不存在")
		}
		if parent.PostID != postID {
			return nil, errors.New(errors.ErrValidation, "父评论不属于该帖子")
		}
	}

	comment := &model.Comment{
		PostID:      postID,
		UserID:      userID,
		Content:     content,
		ParentID:    parentID,
		TaggedUsers: taggedUsers,
		Reactions:   model.NewReactionSet(model.CommentReactionKinds),
	}
	if err := s.postRepo.CreateComment(comment); err != nil {
		return nil, err
	}

	if err := s.notification.Notify(post.UserID, userID, model.NotificationComment, &post.ID); err != nil {
		util.Logger.Error("创建评论通知失败", zap.Error(err))
	}
	// 回复时同时通知父评论作者
	if parent != nil && parent.UserID != post.UserID {
		if err := s.notification.Notify(parent.UserID, userID, model.NotificationComment, &post.ID); err != nil {
			util.Logger.Error("创建回复通知失败", zap.Error(err))
		}
	}

	return s.decorateComment(comment)
}

// GetPostComments 返回帖子的评论树。
// 根评论按创建顺序排列，回复按追加顺序排列；
// 父评论缺失或跨帖子引用时按根评论处理。
func (s *PostService) GetPostComments(postID int) ([]*model.Comment, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}

	comments, err := s.postRepo.FindCommentsByPostID(postID)
	if err != nil {
		return nil, err
	}

	// 两遍构建：先登记所有节点，再挂接父子关系
	byID := make(map[int]*model.Comment, len(comments))
	for _, comment := range comments {
		comment.Replies = []*model.Comment{}
		if _, err := s.decorateComment(comment); err != nil {
			return nil, err
		}
		byID[comment.ID] = comment
	}

	roots := []*model.Comment{}
	for _, comment := range comments {
		if comment.ParentID != nil {
			if parent, ok := byID[*comment.ParentID]; ok {
				parent.Replies = append(parent.Replies, comment)
				continue
			}
		}
		roots = append(roots, comment)
	}
	return roots, nil
}

// SetCommentReaction 设置用户对评论的反应，评论只允许 like 和 love
func (s *PostService) SetCommentReaction(commentID, userID int, kind model.ReactionKind) (*model.Comment, error) {
	var comment *model.Comment
	found, err := s.postRepo.MutateComment(commentID, func(c *model.Comment) error {
		if !c.Reactions.Set(userID, kind) {
			return errors.New(errors.ErrValidation, "评论不支持该反应类型")
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New(errors.ErrCommentNotFound, "评论不存在")
	}

	if err := s.notification.Notify(comment.UserID, userID, model.NotificationCommentReaction, &comment.PostID); err != nil {
		util.Logger.Error("创建评论反应通知失败", zap.Error(err))
	}
	return s.decorateComment(comment)
}

// ClearCommentReaction 移除用户对评论的指定反应
func (s *PostService) ClearCommentReaction(commentID, userID int, kind model.ReactionKind) (*model.Comment, error) {
	var comment *model.Comment
	found, err := s.postRepo.MutateComment(commentID, func(c *model.Comment) error {
		if !c.Reactions.Allows(kind) {
			return errors.New(errors.ErrValidation, "评论不支持该反应类型")
		}
		if !c.Reactions.Clear(userID, kind) {
			return errors.New(errors.ErrReactionNotSet, "当前没有该类型的反应")
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.New(errors.ErrCommentNotFound, "评论不存在")
	}
	return s.decorateComment(comment)
}

// canView 检查帖子对查看者是否可见
func (s *PostService) canView(post *model.Post, viewerID int) (bool, error) {
	if post.UserID == viewerID || post.Privacy == model.PrivacyPublic {
		return true, nil
	}
	if post.Privacy == model.PrivacyPrivate {
		return false, nil
	}

	author, err := s.userRepo.FindByID(post.UserID)
	if err != nil {
		return false, err
	}
	if author == nil {
		return false, nil
	}
	return author.IsFriend(viewerID), nil
}

// Decorate 填充帖子的读取时字段：作者摘要、被标记用户、
// 评论数、反应数以及转发帖引用的原帖（递归展开）。
func (s *PostService) Decorate(post *model.Post) (*model.Post, error) {
	return s.decoratePost(post, make(map[int]bool))
}

func (s *PostService) decoratePost(post *model.Post, seen map[int]bool) (*model.Post, error) {
	seen[post.ID] = true

	author, err := s.userRepo.FindByID(post.UserID)
	if err != nil {
		return nil, err
	}
	if author != nil {
		post.User = author.Summary()
	}

	post.TaggedUserInfo = nil
	for _, id := range post.TaggedUsers {
		tagged, err := s.userRepo.FindByID(id)
		if err != nil {
			return nil, err
		}
		if tagged != nil {
			post.TaggedUserInfo = append(post.TaggedUserInfo, tagged.Summary())
		}
	}

	count, err := s.postRepo.CountComments(post.ID)
	if err != nil {
		return nil, err
	}
	post.CommentCount = count
	post.ReactionCount = post.Reactions.Total()

	if post.OriginalPostID != nil && !seen[*post.OriginalPostID] {
		original, err := s.postRepo.FindByID(*post.OriginalPostID)
		if err != nil {
			return nil, err
		}
		if original != nil {
			if _, err := s.decoratePost(original, seen); err != nil {
				return nil, err
			}
			post.OriginalPost = original
		}
	}
	return post, nil
}

func (s *PostService) decorateComment(comment *model.Comment) (*model.Comment, error) {
	author, err := s.userRepo.FindByID(comment.UserID)
	if err != nil {
		return nil, err
	}
	if author != nil {
		comment.User = author.Summary()
	}
	if comment.Replies == nil {
		comment.Replies = []*model.Comment{}
	}
	return comment, nil
}

func sortNewestFirst(posts []*model.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}
