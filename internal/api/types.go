package api

import "time"

const serverTimestampLayout = "2006-01-02 15:04:05"

// Category identifies a study-group topic.
type Category string

// Categories accepted by the server.
const (
	CategoryProgramming   Category = "PROGRAMMING"
	CategoryLanguage      Category = "LANGUAGE"
	CategoryCertification Category = "CERTIFICATION"
	CategoryHobby         Category = "HOBBY"
	CategoryExercise      Category = "EXERCISE"
	CategoryEtc           Category = "ETC"
)

// Categories lists every category in display order.
func Categories() []Category {
	return []Category{
		CategoryProgramming,
		CategoryLanguage,
		CategoryCertification,
		CategoryHobby,
		CategoryExercise,
		CategoryEtc,
	}
}

// DisplayName returns a human-readable label for the category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryProgramming:
		return "Programming"
	case CategoryLanguage:
		return "Language"
	case CategoryCertification:
		return "Certification"
	case CategoryHobby:
		return "Hobby"
	case CategoryExercise:
		return "Exercise"
	case CategoryEtc:
		return "Other"
	default:
		return string(c)
	}
}

// PostType distinguishes free-board posts from notices.
type PostType string

const (
	PostTypeFree   PostType = "FREE"
	PostTypeNotice PostType = "NOTICE"
)

// PostTypeFromString normalizes a post type value, defaulting to FREE.
func PostTypeFromString(value string) PostType {
	if PostType(value) == PostTypeNotice {
		return PostTypeNotice
	}
	return PostTypeFree
}

// DisplayName returns a human-readable label for the post type.
func (p PostType) DisplayName() string {
	if p == PostTypeNotice {
		return "Notice"
	}
	return "Post"
}

// AuthResponse mirrors the payload returned by the auth endpoints.
type AuthResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Nickname string `json:"nickname"`
}

// SignupRequest is the body for POST /api/auth/signup.
type SignupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Nickname  string `json:"nickname"`
	BirthDate string `json:"birthDate"` // "2000-01-01"
}

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Group describes a study group in list responses.
type Group struct {
	GroupID        int64    `json:"groupId"`
	GroupName      string   `json:"groupName"`
	Description    string   `json:"description"`
	Category       Category `json:"category"`
	LeaderID       int64    `json:"leaderId"`
	LeaderNickname string   `json:"leaderNickname"`
	MaxMembers     int      `json:"maxMembers"`
	CurrentMembers int      `json:"currentMembers"`
	CreatedAt      string   `json:"createdAt"`
	IsMember       bool     `json:"isMember"`
}

// GroupRequest is the body for POST /api/groups.
type GroupRequest struct {
	GroupName   string   `json:"groupName"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	MaxMembers  int      `json:"maxMembers"`
}

// GroupListResponse wraps group list endpoints.
type GroupListResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Groups  []Group `json:"groups"`
}

// GroupDetail mirrors /api/groups/{id}/detail.
type GroupDetail struct {
	GroupID        int64         `json:"groupId"`
	GroupName      string        `json:"name"`
	Description    string        `json:"description"`
	Category       Category      `json:"category"`
	CurrentMembers int           `json:"currentMembers"`
	MaxMembers     int           `json:"maxMembers"`
	CreatedAt      string        `json:"createdAt"`
	Joined         bool          `json:"joined"`
	Leader         bool          `json:"leader"`
	Members        []GroupMember `json:"members"`
}

// GroupMember describes one member in a group detail response.
type GroupMember struct {
	UserID       int64  `json:"userId"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
	Leader       bool   `json:"leader"`
	JoinedAt     string `json:"joinedAt"`
	New          bool   `json:"isNew"`
}

// Post describes a board post in list responses.
type Post struct {
	PostID       int64    `json:"postId"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	PostType     PostType `json:"postType"`
	Username     string   `json:"username"`
	UserID       int64    `json:"userId"`
	CreatedAt    string   `json:"createdAt"`
	CommentCount int      `json:"commentCount"`
	GroupID      int64    `json:"groupId"`
}

// PostDetail mirrors /api/posts/{id}.
type PostDetail struct {
	PostID    int64     `json:"postId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	PostType  PostType  `json:"postType"`
	Username  string    `json:"username"`
	UserID    int64     `json:"userId"`
	CreatedAt string    `json:"createdAt"`
	Comments  []Comment `json:"comments"`
	GroupID   int64     `json:"groupId"`
	Leader    bool      `json:"isLeader"`
}

// Comment describes one comment on a post.
type Comment struct {
	CommentID int64  `json:"commentId"`
	Content   string `json:"content"`
	Username  string `json:"username"`
	UserID    int64  `json:"userId"`
	CreatedAt string `json:"createdAt"`
}

type postListResponse struct {
	Posts []Post `json:"posts"`
}

// CreatePostRequest is the body for POST /api/groups/{id}/posts.
type CreatePostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	PostType PostType `json:"postType"`
}

// UpdatePostRequest is the body for PUT /api/posts/{id}.
type UpdatePostRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	PostType PostType `json:"postType"`
}

// Photo describes one gallery photo.
type Photo struct {
	PhotoID          int64  `json:"photoId"`
	GroupID          int64  `json:"groupId"`
	UserID           int64  `json:"userId"`
	Username         string `json:"username"`
	ImageURL         string `json:"imageUrl"`
	OriginalFilename string `json:"originalFilename"`
	Description      string `json:"description"`
	FileSize         int64  `json:"fileSize"`
	CreatedAt        string `json:"createdAt"`
}

// Message is one chat message. Immutable once created; CreatedAt is
// server-assigned and monotonic per group.
type Message struct {
	MessageID int64  `json:"messageId"`
	GroupID   int64  `json:"groupId"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// ParsedCreatedAt returns the timestamp as time.Time when possible.
func (m Message) ParsedCreatedAt() time.Time {
	return parseTime(m.CreatedAt)
}

// UserProfile mirrors /api/users/{id}/profile.
type UserProfile struct {
	UserID       int64  `json:"userId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Nickname     string `json:"nickname"`
	BirthDate    string `json:"birthDate"`
	ProfileImage string `json:"profileImage"`
	Bio          string `json:"bio"`
	CreatedAt    string `json:"createdAt"`
	PostCount    int    `json:"postCount"`
	CommentCount int    `json:"commentCount"`
	PhotoCount   int    `json:"photoCount"`
	GroupCount   int    `json:"groupCount"`
}

// UpdateProfileRequest is the body for PUT /api/users/{id}/profile.
type UpdateProfileRequest struct {
	Nickname     string `json:"nickname,omitempty"`
	Bio          string `json:"bio,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(serverTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
