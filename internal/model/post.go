package model

import "time"

// PostType 表示帖子类型
type PostType string

const (
	PostTypeText  PostType = "text"
	PostTypeImage PostType = "image"
	PostTypeVideo PostType = "video"
	PostTypeLink  PostType = "link"
)

// IsValid 检查是否为已知的帖子类型
func (t PostType) IsValid() bool {
	switch t {
	case PostTypeText, PostTypeImage, PostTypeVideo, PostTypeLink:
		return true
	}
	return false
}

// Privacy 表示帖子的可见范围
type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyFriends Privacy = "friends"
	PrivacyPrivate Privacy = "private"
)

// IsValid 检查是否为已知的可见范围
func (p Privacy) IsValid() bool {
	switch p {
	case PrivacyPublic, PrivacyFriends, PrivacyPrivate:
		return true
	}
	return false
}

// Post 结构体表示帖子模型。
// 类型相关的可选字段只在 PostType 匹配时填充。
type Post struct {
	ID              int         `json:"id"`
	UserID          int         `json:"userId"`
	Content         string      `json:"content"`
	PostType        PostType    `json:"postType"`
	ImageURL        string      `json:"imageUrl,omitempty"`
	VideoURL        string      `json:"videoUrl,omitempty"`
	LinkURL         string      `json:"linkUrl,omitempty"`
	LinkTitle       string      `json:"linkTitle,omitempty"`
	LinkDescription string      `json:"linkDescription,omitempty"`
	LinkImage       string      `json:"linkImage,omitempty"`
	Privacy         Privacy     `json:"privacy"`
	Location        string      `json:"location,omitempty"`
	TaggedUsers     []int       `json:"taggedUsers"`
	Reactions       ReactionSet `json:"reactions"`
	ShareCount      int         `json:"shareCount"`
	OriginalPostID  *int        `json:"originalPostId,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`

	// 以下字段在读取时填充，不属于存储的数据
	User           *UserSummary   `json:"user,omitempty"`
	TaggedUserInfo []*UserSummary `json:"taggedUsersInfo,omitempty"`
	OriginalPost   *Post          `json:"originalPost,omitempty"`
	CommentCount   int            `json:"commentCount"`
	ReactionCount  int            `json:"reactionCount"`
}

// LinkData 链接类型帖子的附加信息
type LinkData struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Comment 结构体表示评论模型。
// ParentID 指向同一帖子下的另一条评论，构成不限深度的回复树。
type Comment struct {
	ID          int         `json:"id"`
	PostID      int         `json:"postId"`
	UserID      int         `json:"userId"`
	Content     string      `json:"content"`
	ParentID    *int        `json:"parentId,omitempty"`
	TaggedUsers []int       `json:"taggedUsers"`
	Reactions   ReactionSet `json:"reactions"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`

	// 读取时填充
	User    *UserSummary `json:"user,omitempty"`
	Replies []*Comment   `json:"replies"`
}
