package memory

import (
	"sync"
	"time"

	"social-backend/internal/model"
	"social-backend/internal/repository/interfaces"
)

// PostRepository 是 PostRepository 接口的内存实现，同时保存帖子和评论。
// 与用户仓库相同：写操作串行化，读操作返回副本。
type PostRepository struct {
	mu            sync.RWMutex
	posts         map[int]*model.Post
	comments      map[int]*model.Comment
	nextPostID    int
	nextCommentID int
}

// NewPostRepository 创建一个新的内存帖子仓库
func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts:         make(map[int]*model.Post),
		comments:      make(map[int]*model.Comment),
		nextPostID:    1,
		nextCommentID: 1,
	}
}

func (r *PostRepository) Create(post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = r.nextPostID
	r.nextPostID++

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = post.CreatedAt
	if post.TaggedUsers == nil {
		post.TaggedUsers = []int{}
	}

	r.posts[post.ID] = copyPost(post)
	return nil
}

func (r *PostRepository) FindByID(id int) (*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	return copyPost(post), nil
}

// FindAll 按创建顺序（即插入顺序）返回所有帖子
func (r *PostRepository) FindAll() ([]*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*model.Post, 0, len(r.posts))
	for id := 1; id < r.nextPostID; id++ {
		if post, ok := r.posts[id]; ok {
			posts = append(posts, copyPost(post))
		}
	}
	return posts, nil
}

func (r *PostRepository) FindByUserID(userID int) ([]*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := []*model.Post{}
	for id := 1; id < r.nextPostID; id++ {
		if post, ok := r.posts[id]; ok && post.UserID == userID {
			posts = append(posts, copyPost(post))
		}
	}
	return posts, nil
}

// Mutate 在持有写锁的情况下对帖子执行读-改-写。
// fn 收到的是副本，fn 返回 nil 时副本写回存储；
// 帖子不存在时返回 false 且不调用 fn。
func (r *PostRepository) Mutate(id int, fn func(*model.Post) error) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.posts[id]
	if !ok {
		return false, nil
	}

	work := copyPost(stored)
	if err := fn(work); err != nil {
		return true, err
	}
	work.UpdatedAt = time.Now()
	r.posts[id] = copyPost(work)
	return true, nil
}

func (r *PostRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.posts), nil
}

func (r *PostRepository) CreateComment(comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment.ID = r.nextCommentID
	r.nextCommentID++

	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = comment.CreatedAt
	if comment.TaggedUsers == nil {
		comment.TaggedUsers = []int{}
	}

	r.comments[comment.ID] = copyComment(comment)
	return nil
}

func (r *PostRepository) FindCommentByID(id int) (*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	return copyComment(comment), nil
}

// FindCommentsByPostID 按创建顺序返回帖子下的全部评论
func (r *PostRepository) FindCommentsByPostID(postID int) ([]*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := []*model.Comment{}
	for id := 1; id < r.nextCommentID; id++ {
		if comment, ok := r.comments[id]; ok && comment.PostID == postID {
			comments = append(comments, copyComment(comment))
		}
	}
	return comments, nil
}

// MutateComment 与 Mutate 相同，作用于评论
func (r *PostRepository) MutateComment(id int, fn func(*model.Comment) error) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.comments[id]
	if !ok {
		return false, nil
	}

	work := copyComment(stored)
	if err := fn(work); err != nil {
		return true, err
	}
	work.UpdatedAt = time.Now()
	r.comments[id] = copyComment(work)
	return true, nil
}

func (r *PostRepository) CountComments(postID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, comment := range r.comments {
		if comment.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (r *PostRepository) CountAllComments() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.comments), nil
}

// copyPost 复制帖子，同时丢弃读取时附加的展示字段，保证它们不会被写回存储
func copyPost(post *model.Post) *model.Post {
	clone := *post
	clone.TaggedUsers = append([]int{}, post.TaggedUsers...)
	clone.Reactions = post.Reactions.Clone()
	if post.OriginalPostID != nil {
		id := *post.OriginalPostID
		clone.OriginalPostID = &id
	}
	clone.User = nil
	clone.TaggedUserInfo = nil
	clone.OriginalPost = nil
	clone.CommentCount = 0
	clone.ReactionCount = 0
	return &clone
}

func copyComment(comment *model.Comment) *model.Comment {
	clone := *comment
	clone.TaggedUsers = append([]int{}, comment.TaggedUsers...)
	clone.Reactions = comment.Reactions.Clone()
	if comment.ParentID != nil {
		id := *comment.ParentID
		clone.ParentID = &id
	}
	clone.User = nil
	clone.Replies = nil
	return &clone
}

// 确保 PostRepository 实现了接口
var _ interfaces.PostRepository = (*PostRepository)(nil)
