package interfaces

import "social-backend/internal/model"

// UserRepository 接口定义了用户仓库应该实现的方法
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	Update(user *model.User) error
	Mutate(id int, fn func(*model.User) error) (bool, error)
	FindAll() ([]*model.User, error)
	Count() (int, error)
}
