package memory

import (
	"time"

	"social-backend/internal/model"
	"social-backend/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seed 向内存仓库写入演示数据。
// 数据只存在于内存中，每次启动都会重新生成。
// 所有演示账号的密码都是 password123。
func Seed(userRepo *UserRepository, postRepo *PostRepository) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	passwordHash := string(hash)

	users := []*model.User{
		{
			Username:       "johndoe",
			FullName:       "John Doe",
			Bio:            "Software developer and hiking enthusiast",
			Location:       "Seattle, WA",
			ProfilePicture: "https://randomuser.me/api/portraits/men/1.jpg",
			Education:      []model.Education{{School: "University of Washington", Degree: "BS Computer Science", Year: "2015"}},
			Work:           []model.Work{{Company: "TechCorp", Position: "Senior Developer", Year: "2019"}},
			Friends:        []int{2, 3, 4},
			FriendRequests: []int{7},
		},
		{
			Username:       "janedoe",
			FullName:       "Jane Doe",
			Bio:            "Graphic designer with a passion for sustainability",
			Location:       "Portland, OR",
			ProfilePicture: "https://randomuser.me/api/portraits/women/2.jpg",
			Friends:        []int{1, 3, 5},
			FriendRequests: []int{8},
		},
		{
			Username:       "mikesmith",
			FullName:       "Mike Smith",
			Bio:            "Photographer chasing the perfect light",
			Location:       "San Francisco, CA",
			ProfilePicture: "https://randomuser.me/api/portraits/men/3.jpg",
			Friends:        []int{1, 2, 6},
		},
		{
			Username:       "sarahjohnson",
			FullName:       "Sarah Johnson",
			Bio:            "Yoga instructor and wellness coach",
			Location:       "Los Angeles, CA",
			ProfilePicture: "https://randomuser.me/api/portraits/women/4.jpg",
			Friends:        []int{1, 7},
		},
		{
			Username:       "davidwilson",
			FullName:       "David Wilson",
			Bio:            "Music producer",
			Location:       "Nashville, TN",
			ProfilePicture: "https://randomuser.me/api/portraits/men/5.jpg",
			Friends:        []int{2, 8},
		},
		{
			Username:       "emilychen",
			FullName:       "Emily Chen",
			Bio:            "Data scientist who cooks",
			Location:       "Boston, MA",
			ProfilePicture: "https://randomuser.me/api/portraits/women/6.jpg",
			Friends:        []int{3},
		},
		{
			Username:       "robertjohnson",
			FullName:       "Robert Johnson",
			Bio:            "Personal trainer",
			Location:       "Miami, FL",
			ProfilePicture: "https://randomuser.me/api/portraits/men/7.jpg",
			Friends:        []int{4},
		},
		{
			Username:       "oliviamartinez",
			FullName:       "Olivia Martinez",
			Bio:            "Travel blogger",
			Location:       "Austin, TX",
			ProfilePicture: "https://randomuser.me/api/portraits/women/8.jpg",
			Friends:        []int{5},
		},
	}

	now := time.Now()
	for _, user := range users {
		user.PasswordHash = passwordHash
		user.Email = user.Username + "@example.com"
		user.CreatedAt = now.AddDate(0, -6, 0)
		if err := userRepo.Create(user); err != nil {
			return err
		}
	}

	// 给 John 一条与待处理请求对应的通知
	john, _ := userRepo.FindByID(1)
	john.Notifications = []model.Notification{
		{ID: 1, Type: model.NotificationFriendRequest, FromUserID: 7, CreatedAt: now.Add(-3 * time.Hour)},
	}
	if err := userRepo.Update(john); err != nil {
		return err
	}

	posts := []*model.Post{
		seedPost(1, "Just finished hiking Mount Rainier! The views were amazing. #hiking #nature",
			model.PostTypeImage, model.PrivacyPublic, now.Add(-14*time.Hour), func(p *model.Post) {
				p.ImageURL = "https://picsum.photos/id/10/800/600"
				p.Location = "Mount Rainier, WA"
				p.TaggedUsers = []int{3}
				p.Reactions.Set(2, model.ReactionLike)
				p.Reactions.Set(3, model.ReactionLike)
				p.Reactions.Set(4, model.ReactionLove)
				p.ShareCount = 3
			}),
		seedPost(2, "Finished a new logo design for a client today. What do you think? #design",
			model.PostTypeImage, model.PrivacyPublic, now.Add(-30*time.Hour), func(p *model.Post) {
				p.ImageURL = "https://picsum.photos/id/20/800/600"
				p.Location = "Portland Design Studio"
				p.Reactions.Set(1, model.ReactionLike)
				p.Reactions.Set(3, model.ReactionLike)
				p.Reactions.Set(8, model.ReactionLove)
				p.ShareCount = 2
			}),
		seedPost(3, "Captured this sunset at the beach yesterday. No filters needed! #photography",
			model.PostTypeImage, model.PrivacyPublic, now.Add(-50*time.Hour), func(p *model.Post) {
				p.ImageURL = "https://picsum.photos/id/30/800/600"
				p.Location = "Ocean Beach, San Francisco"
				p.Reactions.Set(1, model.ReactionLike)
				p.Reactions.Set(2, model.ReactionLike)
				p.Reactions.Set(6, model.ReactionLove)
				p.Reactions.Set(4, model.ReactionWow)
				p.ShareCount = 6
			}),
		seedPost(4, "Morning yoga session to start the day right. #yoga #wellness",
			model.PostTypeText, model.PrivacyFriends, now.Add(-8*time.Hour), func(p *model.Post) {
				p.Reactions.Set(7, model.ReactionLike)
				p.ShareCount = 1
			}),
		seedPost(5, "Just released a new track! Check it out. #music",
			model.PostTypeLink, model.PrivacyPublic, now.Add(-80*time.Hour), func(p *model.Post) {
				p.LinkURL = "https://soundcloud.com/example/track"
				p.LinkTitle = "New Summer Beats - David Wilson"
				p.LinkDescription = "The latest electronic track from Nashville-based producer David Wilson"
				p.LinkImage = "https://picsum.photos/id/50/800/600"
				p.Location = "Harmony Studios, Nashville"
				p.Reactions.Set(1, model.ReactionLike)
				p.Reactions.Set(2, model.ReactionLike)
				p.Reactions.Set(8, model.ReactionLove)
				p.ShareCount = 4
			}),
		seedPost(6, "Made this amazing ramen from scratch today! Recipe in comments. #cooking",
			model.PostTypeImage, model.PrivacyPublic, now.Add(-26*time.Hour), func(p *model.Post) {
				p.ImageURL = "https://picsum.photos/id/60/800/600"
				p.Location = "Boston, MA"
				p.Reactions.Set(2, model.ReactionLove)
				p.Reactions.Set(4, model.ReactionWow)
				p.ShareCount = 7
			}),
		seedPost(7, "New personal record on deadlift today! #fitness",
			model.PostTypeVideo, model.PrivacyPublic, now.Add(-5*time.Hour), func(p *model.Post) {
				p.VideoURL = "https://example.com/videos/deadlift.mp4"
				p.Location = "FitLife Gym, Miami"
				p.TaggedUsers = []int{1}
				p.Reactions.Set(1, model.ReactionLike)
				p.Reactions.Set(4, model.ReactionLike)
				p.Reactions.Set(3, model.ReactionWow)
				p.ShareCount = 2
			}),
		seedPost(8, "Just landed in Paris for a week of exploration! Any recommendations? #travel",
			model.PostTypeImage, model.PrivacyPublic, now.Add(-100*time.Hour), func(p *model.Post) {
				p.ImageURL = "https://picsum.photos/id/70/800/600"
				p.Location = "Paris, France"
				p.Reactions.Set(2, model.ReactionLike)
				p.Reactions.Set(5, model.ReactionLike)
				p.Reactions.Set(4, model.ReactionLove)
				p.ShareCount = 3
			}),
		seedPost(1, "Excited to announce I'm starting a new project next week! #coding",
			model.PostTypeText, model.PrivacyPrivate, now.Add(-2*time.Hour), nil),
	}

	for _, post := range posts {
		if err := postRepo.Create(post); err != nil {
			return err
		}
	}

	// John 转发 Mike 的摄影帖
	originalID := 3
	share := seedPost(1, "Mike always captures the most amazing shots! #repost",
		model.PostTypeImage, model.PrivacyPublic, now.Add(-1*time.Hour), func(p *model.Post) {
			p.ImageURL = "https://picsum.photos/id/30/800/600"
			p.TaggedUsers = []int{3}
			p.Reactions.Set(2, model.ReactionLike)
			p.Reactions.Set(3, model.ReactionLike)
		})
	share.OriginalPostID = &originalID
	if err := postRepo.Create(share); err != nil {
		return err
	}

	comments := []*model.Comment{
		seedComment(1, 2, "Looks amazing! I need to go there sometime.", nil, now.Add(-13*time.Hour), func(c *model.Comment) {
			c.Reactions.Set(1, model.ReactionLike)
			c.Reactions.Set(3, model.ReactionLike)
		}),
		seedComment(1, 3, "Great shot! What camera did you use?", nil, now.Add(-12*time.Hour), func(c *model.Comment) {
			c.Reactions.Set(1, model.ReactionLike)
		}),
		seedComment(1, 1, "Thanks! Just used my phone camera actually.", intPtr(2), now.Add(-11*time.Hour), nil),
		seedComment(2, 1, "Love the color scheme! Very modern.", nil, now.Add(-29*time.Hour), func(c *model.Comment) {
			c.Reactions.Set(2, model.ReactionLike)
		}),
		seedComment(6, 8, "This looks delicious! Can you share the recipe?", nil, now.Add(-25*time.Hour), nil),
		seedComment(6, 6, "Thanks! Homemade broth, fresh noodles, chashu pork and a soft-boiled egg.", intPtr(5), now.Add(-24*time.Hour), func(c *model.Comment) {
			c.Reactions.Set(8, model.ReactionLike)
			c.Reactions.Set(2, model.ReactionLove)
		}),
		seedComment(5, 1, "Congrats! Great sound on this one.", nil, now.Add(-79*time.Hour), nil),
		seedComment(5, 5, "Thanks John! More coming soon.", intPtr(7), now.Add(-78*time.Hour), nil),
	}

	for _, comment := range comments {
		if err := postRepo.CreateComment(comment); err != nil {
			return err
		}
	}

	util.Logger.Info("演示数据初始化完成",
		zap.Int("users", len(users)),
		zap.Int("posts", len(posts)+1),
		zap.Int("comments", len(comments)))
	return nil
}

func seedPost(userID int, content string, postType model.PostType, privacy model.Privacy, createdAt time.Time, fill func(*model.Post)) *model.Post {
	post := &model.Post{
		UserID:    userID,
		Content:   content,
		PostType:  postType,
		Privacy:   privacy,
		Reactions: model.NewReactionSet(model.PostReactionKinds),
		CreatedAt: createdAt,
	}
	if fill != nil {
		fill(post)
	}
	return post
}

func seedComment(postID, userID int, content string, parentID *int, createdAt time.Time, fill func(*model.Comment)) *model.Comment {
	comment := &model.Comment{
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		ParentID:  parentID,
		Reactions: model.NewReactionSet(model.CommentReactionKinds),
		CreatedAt: createdAt,
	}
	if fill != nil {
		fill(comment)
	}
	return comment
}

func intPtr(v int) *int {
	return &v
}
