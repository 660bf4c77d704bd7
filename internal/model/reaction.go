package model

import (
	"encoding/json"
	"sort"
)

// ReactionKind 表示反应类型
type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionLove  ReactionKind = "love"
	ReactionHaha  ReactionKind = "haha"
	ReactionWow   ReactionKind = "wow"
	ReactionSad   ReactionKind = "sad"
	ReactionAngry ReactionKind = "angry"
)

// PostReactionKinds 帖子允许的全部反应类型，顺序同时决定序列化顺序
var PostReactionKinds = []ReactionKind{
	ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry,
}

// CommentReactionKinds 评论只允许 like 和 love
var CommentReactionKinds = []ReactionKind{ReactionLike, ReactionLove}

// IsValid 检查是否为已知的反应类型
func (k ReactionKind) IsValid() bool {
	switch k {
	case ReactionLike, ReactionLove, ReactionHaha, ReactionWow, ReactionSad, ReactionAngry:
		return true
	}
	return false
}

// ReactionSet 记录一个目标（帖子或评论）上的全部反应。
// 每个用户只保存一个当前反应类型，"一人一反应"由结构本身保证，
// 序列化时再展开成 类型->用户ID列表 的形式。
type ReactionSet struct {
	kinds  []ReactionKind
	byUser map[int]ReactionKind
}

// NewReactionSet 创建一个限定反应类型集合的 ReactionSet
func NewReactionSet(kinds []ReactionKind) ReactionSet {
	return ReactionSet{
		kinds:  kinds,
		byUser: make(map[int]ReactionKind),
	}
}

// Allows 检查该目标是否允许此反应类型
func (r *ReactionSet) Allows(kind ReactionKind) bool {
	for _, k := range r.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Set 设置用户的反应，覆盖该用户之前的任何反应。
// 反应类型不在允许集合内时返回 false。
func (r *ReactionSet) Set(userID int, kind ReactionKind) bool {
	if !r.Allows(kind) {
		return false
	}
	if r.byUser == nil {
		r.byUser = make(map[int]ReactionKind)
	}
	r.byUser[userID] = kind
	return true
}

// Clear 移除用户在指定类型上的反应。
// 用户当前反应不是该类型时返回 false，且不做任何修改。
func (r *ReactionSet) Clear(userID int, kind ReactionKind) bool {
	current, ok := r.byUser[userID]
	if !ok || current != kind {
		return false
	}
	delete(r.byUser, userID)
	return true
}

// KindOf 返回用户当前的反应类型
func (r *ReactionSet) KindOf(userID int) (ReactionKind, bool) {
	kind, ok := r.byUser[userID]
	return kind, ok
}

// Users 返回对目标做出指定反应的用户ID列表（升序）
func (r *ReactionSet) Users(kind ReactionKind) []int {
	ids := []int{}
	for userID, k := range r.byUser {
		if k == kind {
			ids = append(ids, userID)
		}
	}
	sort.Ints(ids)
	return ids
}

// Total 返回所有类型的反应总数
func (r *ReactionSet) Total() int {
	return len(r.byUser)
}

// Clone 返回一个独立副本，存储层返回快照时使用
func (r *ReactionSet) Clone() ReactionSet {
	clone := ReactionSet{
		kinds:  r.kinds,
		byUser: make(map[int]ReactionKind, len(r.byUser)),
	}
	for userID, kind := range r.byUser {
		clone.byUser[userID] = kind
	}
	return clone
}

// MarshalJSON 输出 {"like":[1,2],"love":[],...}，与前端约定的格式一致
func (r ReactionSet) MarshalJSON() ([]byte, error) {
	out := make(map[ReactionKind][]int, len(r.kinds))
	for _, kind := range r.kinds {
		out[kind] = r.Users(kind)
	}
	return json.Marshal(out)
}
