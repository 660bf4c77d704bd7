package model

import "time"

// User 结构体表示用户模型
type User struct {
	ID             int            `json:"id"`
	Username       string         `json:"username"`
	PasswordHash   string         `json:"-"` // 密码哈希不应在JSON中暴露
	Email          string         `json:"-"` // 仅用于通知邮件，不对外暴露
	FullName       string         `json:"fullName"`
	ProfilePicture string         `json:"profilePicture"`
	CoverPhoto     string         `json:"coverPhoto,omitempty"`
	Bio            string         `json:"bio"`
	Location       string         `json:"location,omitempty"`
	Education      []Education    `json:"education,omitempty"`
	Work           []Work         `json:"work,omitempty"`
	Friends        []int          `json:"friends"`
	FriendRequests []int          `json:"-"` // 待处理请求只通过专门的接口返回
	Notifications  []Notification `json:"notifications,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// Education 教育经历条目
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Year   string `json:"year"`
}

// Work 工作经历条目
type Work struct {
	Company  string `json:"company"`
	Position string `json:"position"`
	Year     string `json:"year"`
}

// Notification 用户通知
type Notification struct {
	ID         int       `json:"id"`
	Type       string    `json:"type"`
	FromUserID int       `json:"fromUserId"`
	EntityID   *int      `json:"entityId,omitempty"` // 相关的帖子或评论ID
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"createdAt"`
}

// 通知类型
const (
	NotificationFriendRequest   = "FRIEND_REQUEST"
	NotificationFriendAccept    = "FRIEND_ACCEPT"
	NotificationPostReaction    = "POST_REACTION"
	NotificationCommentReaction = "COMMENT_REACTION"
	NotificationComment         = "COMMENT"
)

// UserSummary 是附加在帖子和评论上的作者摘要信息
type UserSummary struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture"`
	Location       string `json:"location,omitempty"`
}

// Summary 返回该用户的摘要信息
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		ProfilePicture: u.ProfilePicture,
		Location:       u.Location,
	}
}

// IsFriend 检查指定用户是否在好友列表中
func (u *User) IsFriend(userID int) bool {
	for _, id := range u.Friends {
		if id == userID {
			return true
		}
	}
	return false
}

// HasPendingRequestFrom 检查是否存在来自指定用户的待处理好友请求
func (u *User) HasPendingRequestFrom(userID int) bool {
	for _, id := range u.FriendRequests {
		if id == userID {
			return true
		}
	}
	return false
}
