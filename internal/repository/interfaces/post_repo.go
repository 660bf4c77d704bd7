package interfaces

import "social-backend/internal/model"

// PostRepository 接口定义了帖子和评论仓库应该实现的方法。
// Mutate 与 MutateComment 在仓库锁内完成读-改-写，
// 并发的修改不会互相覆盖。
type PostRepository interface {
	Create(post *model.Post) error
	FindByID(id int) (*model.Post, error)
	FindAll() ([]*model.Post, error)
	FindByUserID(userID int) ([]*model.Post, error)
	Mutate(id int, fn func(*model.Post) error) (bool, error)
	Count() (int, error)

	CreateComment(comment *model.Comment) error
	FindCommentByID(id int) (*model.Comment, error)
	FindCommentsByPostID(postID int) ([]*model.Comment, error)
	MutateComment(id int, fn func(*model.Comment) error) (bool, error)
	CountComments(postID int) (int, error)
	CountAllComments() (int, error)
}
