package memory

import (
	"sync"
	"time"

	"social-backend/internal/model"
	"social-backend/internal/repository/interfaces"
)

// UserRepository 是 UserRepository 接口的内存实现。
// 所有数据只存在于进程内存中，进程重启后回到种子数据。
// 所有写操作通过互斥锁串行化，读操作返回副本，调用方修改副本不会影响存储。
type UserRepository struct {
	mu     sync.RWMutex
	users  map[int]*model.User
	nextID int
}

// NewUserRepository 创建一个新的内存用户仓库
func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:  make(map[int]*model.User),
		nextID: 1,
	}
}

func (r *UserRepository) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextID
	r.nextID++

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	if user.Friends == nil {
		user.Friends = []int{}
	}
	if user.FriendRequests == nil {
		user.FriendRequests = []int{}
	}

	r.users[user.ID] = copyUser(user)
	return nil
}

func (r *UserRepository) FindByID(id int) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(user), nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, nil
}

func (r *UserRepository) Update(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return nil
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = copyUser(user)
	return nil
}

// Mutate 在持有写锁的情况下对用户执行读-改-写。
// fn 收到的是副本，fn 返回 nil 时副本写回存储；
// 用户不存在时返回 false 且不调用 fn。
func (r *UserRepository) Mutate(id int, fn func(*model.User) error) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[id]
	if !ok {
		return false, nil
	}

	work := copyUser(stored)
	if err := fn(work); err != nil {
		return true, err
	}
	work.UpdatedAt = time.Now()
	r.users[id] = copyUser(work)
	return true, nil
}

func (r *UserRepository) FindAll() ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.users))
	// 按ID升序返回，保证遍历顺序稳定
	for id := 1; id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			users = append(users, copyUser(user))
		}
	}
	return users, nil
}

func (r *UserRepository) Count() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

func copyUser(user *model.User) *model.User {
	clone := *user
	clone.Friends = append([]int{}, user.Friends...)
	clone.FriendRequests = append([]int{}, user.FriendRequests...)
	clone.Education = append([]model.Education{}, user.Education...)
	clone.Work = append([]model.Work{}, user.Work...)
	clone.Notifications = append([]model.Notification{}, user.Notifications...)
	return &clone
}

// 确保 UserRepository 实现了接口
var _ interfaces.UserRepository = (*UserRepository)(nil)
