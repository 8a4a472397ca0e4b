package models

// ID is a server entity identifier. Numeric and string ids both normalize
// to their decimal/string form so that 42 and "42" address the same entity.
type ID string

func (id ID) String() string { return string(id) }

// Identifiable is implemented by every entity a store can hold.
type Identifiable interface {
	EntityID() ID
}

// Commentable entities embed a comment list and a denormalized counter.
// Implementations return modified copies and never mutate the receiver.
type Commentable[T any] interface {
	Identifiable
	WithComment(c Comment) T
	WithoutComment(id ID) (T, bool)
	WithCommentCount(delta int) T
}

// Author is the attribution attached to articles, threads and comments.
type Author struct {
	ID          ID     `json:"id,omitempty"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

// User is the authenticated identity held by the session.
type User struct {
	ID          ID     `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email,omitempty"`
	AvatarURL   string `json:"avatarUrl"`
	IsAdmin     bool   `json:"isAdmin"`
	Role        string `json:"role,omitempty"`
	Bio         string `json:"bio,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

func (u User) EntityID() ID { return u.ID }

// Author returns the attribution form of u.
func (u User) Author() Author {
	return Author{ID: u.ID, Username: u.Username, DisplayName: u.DisplayName, AvatarURL: u.AvatarURL}
}

type Category struct {
	ID           ID     `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	ArticleCount int    `json:"articleCount"`
}

func (c Category) EntityID() ID { return c.ID }

type Comment struct {
	ID        ID     `json:"id"`
	ParentID  ID     `json:"parentId,omitempty"`
	Content   string `json:"content"`
	Author    Author `json:"author"`
	CreatedAt string `json:"createdAt,omitempty"`
	DateLabel string `json:"dateLabel"`
}

func (c Comment) EntityID() ID { return c.ID }

// UserSummary is an entry of the admin user list.
type UserSummary struct {
	ID          ID     `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	AvatarURL   string `json:"avatarUrl"`
	Role        string `json:"role"`
	IsAdmin     bool   `json:"isAdmin"`
	IsActive    bool   `json:"isActive"`
	JoinedAt    string `json:"joinedAt,omitempty"`
}

func (u UserSummary) EntityID() ID { return u.ID }

// Profile is the public profile of a user, addressed by username.
type Profile struct {
	ID             ID     `json:"id"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayName"`
	AvatarURL      string `json:"avatarUrl"`
	Bio            string `json:"bio"`
	ArticlesCount  int    `json:"articlesCount"`
	FollowersCount int    `json:"followersCount"`
	FollowingCount int    `json:"followingCount"`
	JoinedAt       string `json:"joinedAt,omitempty"`
}

// EntityID is the username since profiles are fetched by it.
func (p Profile) EntityID() ID { return ID(p.Username) }

type Activity struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

type DashboardStats struct {
	TotalArticles    int        `json:"totalArticles"`
	TotalUsers       int        `json:"totalUsers"`
	TotalThreads     int        `json:"totalThreads"`
	TotalComments    int        `json:"totalComments"`
	PopularArticles  []Article  `json:"popularArticles"`
	RecentActivities []Activity `json:"recentActivities"`
}

type DataPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type Analytics struct {
	Period string           `json:"period"`
	Series []DataPoint      `json:"series"`
	Totals map[string]int64 `json:"totals"`
}
