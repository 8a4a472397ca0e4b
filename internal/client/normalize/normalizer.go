package normalize

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/courtside/internal/client/models"
)

const (
	DefaultAvatar       = "/assets/images/default-avatar.png"
	DefaultArticleImage = "/assets/images/default-article.jpg"
	DefaultCategory     = "Uncategorized"
	UnknownAuthor       = "Unknown Author"
	UnknownUser         = "Unknown User"
	RecentLabel         = "Recent"
	UntitledArticle     = "Untitled Article"
	UntitledThread      = "Untitled Thread"
	NoExcerpt           = "No excerpt available."
	NoContent           = "No content available."

	excerptLength = 150
	dateLayout    = "January 2, 2006"
)

// Normalizer holds the server origin used to absolutize media paths.
// The zero value leaves relative paths untouched.
type Normalizer struct {
	Origin string
}

func New(origin string) *Normalizer {
	return &Normalizer{Origin: strings.TrimRight(origin, "/")}
}

// MediaURL resolves a media reference. Fields are consulted in order
// (callers pass camelCase, snake_case, then generic aliases); the first
// non-empty one wins, otherwise def. The result is made absolute against
// the origin unless it already carries a scheme.
func (n *Normalizer) MediaURL(m map[string]any, def string, keys ...string) string {
	u := str(m, keys...)
	if u == "" {
		u = def
	}
	return n.absolute(u)
}

func (n *Normalizer) absolute(u string) string {
	if u == "" || n.Origin == "" || isAbsolute(u) {
		return u
	}
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return n.Origin + u
}

func isAbsolute(u string) bool {
	l := strings.ToLower(u)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://") ||
		strings.HasPrefix(l, "data:") || strings.HasPrefix(l, "//")
}

func (n *Normalizer) avatar(m map[string]any) string {
	return n.MediaURL(m, DefaultAvatar, "avatarUrl", "avatar_url", "avatar", "image")
}

// DateLabel renders a server timestamp for display, or RecentLabel when
// absent. Unparseable values are shown as sent.
func DateLabel(raw string) string {
	if raw == "" {
		return RecentLabel
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateLayout)
		}
	}
	return raw
}

// User normalizes an identity document. IsAdmin comes only from a boolean
// isAdmin, is_admin or admin field.
func (n *Normalizer) User(raw any) models.User {
	m := object(raw)
	u := models.User{
		ID:          id(m),
		Username:    str(m, "username", "user_name", "email"),
		Email:       str(m, "email"),
		AvatarURL:   n.avatar(m),
		Role:        str(m, "role"),
		Bio:         str(m, "bio"),
		CreatedAt:   str(m, "createdAt", "created_at", "joinedDate", "joined_at"),
		DisplayName: str(m, "displayName", "display_name", "fullName", "full_name", "name"),
	}
	u.IsAdmin, _ = boolean(m, "isAdmin", "is_admin", "admin")
	if u.DisplayName == "" {
		u.DisplayName = u.Username
	}
	if u.DisplayName == "" {
		u.DisplayName = UnknownUser
	}
	if u.Role == "" {
		u.Role = "user"
	}
	return u
}

// Author normalizes an attribution given as a bare name or an object.
// fallback is used when no name can be found.
func (n *Normalizer) Author(raw any, fallback string) models.Author {
	if s, ok := raw.(string); ok && strings.TrimSpace(s) != "" {
		s = strings.TrimSpace(s)
		return models.Author{Username: s, DisplayName: s, AvatarURL: n.absolute(DefaultAvatar)}
	}
	m := object(raw)
	a := models.Author{
		ID:          id(m),
		Username:    str(m, "username", "user_name"),
		DisplayName: str(m, "displayName", "display_name", "fullName", "full_name", "name"),
		AvatarURL:   n.avatar(m),
	}
	if a.Username == "" {
		a.Username = str(m, "name")
	}
	if a.DisplayName == "" {
		a.DisplayName = a.Username
	}
	if a.DisplayName == "" {
		a.DisplayName = fallback
	}
	return a
}

// Category normalizes a category given as a bare name or an object; both
// forms of the same name yield equal values.
func (n *Normalizer) Category(raw any) models.Category {
	m := object(raw)
	c := models.Category{
		ID:           id(m),
		Name:         name(raw, "name", "title"),
		Slug:         str(m, "slug"),
		Description:  str(m, "description"),
		ArticleCount: integer(m, "articleCount", "article_count", "articles_count", "count"),
	}
	if c.Name == "" {
		c.Name = DefaultCategory
	}
	if c.Slug == "" {
		c.Slug = slugify(c.Name)
	}
	return c
}

func (n *Normalizer) Comment(raw any) models.Comment {
	m := object(raw)
	c := models.Comment{
		ID:        id(m),
		ParentID:  id(m, "articleId", "article_id", "threadId", "thread_id"),
		Content:   str(m, "content", "body", "text"),
		Author:    n.Author(firstNonNil(m, "author", "user"), UnknownUser),
		CreatedAt: str(m, "createdAt", "created_at", "date"),
	}
	if c.Author.ID == "" {
		c.Author.ID = id(m, "userId", "user_id")
	}
	c.DateLabel = DateLabel(c.CreatedAt)
	return c
}

func (n *Normalizer) Comments(raw any) []models.Comment {
	items := list(raw)
	out := make([]models.Comment, 0, len(items))
	for _, it := range items {
		out = append(out, n.Comment(it))
	}
	return out
}

func (n *Normalizer) Article(raw any) models.Article {
	m := object(raw)
	a := models.Article{
		ID:          id(m),
		Title:       str(m, "title"),
		Slug:        str(m, "slug"),
		Content:     str(m, "content", "body"),
		Excerpt:     str(m, "excerpt", "summary"),
		ImageURL:    n.MediaURL(m, DefaultArticleImage, "imageUrl", "image_url", "image"),
		Category:    name(firstNonNil(m, "category", "category_name", "categoryName"), "name", "title"),
		CategoryID:  id(m, "categoryId", "category_id"),
		Tags:        tags(firstNonNil(m, "tags")),
		Author:      n.Author(firstNonNil(m, "author", "user"), UnknownAuthor),
		PublishedAt: str(m, "publishedDate", "publishedAt", "published_at", "createdAt", "created_at", "date"),
		Status:      str(m, "status"),
		Views:       integer(m, "views", "view_count", "viewCount"),
		Likes:       integer(m, "likes", "like_count", "likeCount"),
		Comments:    n.Comments(m["comments"]),
	}
	a.Featured, _ = boolean(m, "featured", "isFeatured", "is_featured")
	if a.CategoryID == "" {
		a.CategoryID = id(object(m["category"]))
	}
	if a.Title == "" {
		a.Title = UntitledArticle
	}
	if a.Excerpt == "" && a.Content != "" {
		a.Excerpt = truncate(a.Content, excerptLength)
	}
	if a.Excerpt == "" {
		a.Excerpt = NoExcerpt
	}
	if a.Content == "" {
		a.Content = NoContent
	}
	if a.Category == "" {
		a.Category = DefaultCategory
	}
	a.CommentCount = commentCount(m, len(a.Comments))
	a.DateLabel = DateLabel(a.PublishedAt)
	return a
}

func (n *Normalizer) Thread(raw any) models.Thread {
	m := object(raw)
	t := models.Thread{
		ID:        id(m),
		Title:     str(m, "title"),
		Content:   str(m, "content", "body"),
		Category:  name(firstNonNil(m, "category", "category_name"), "name", "title"),
		Author:    n.Author(firstNonNil(m, "user", "author"), UnknownUser),
		CreatedAt: str(m, "createdAt", "created_at", "date"),
		Views:     integer(m, "views", "view_count", "viewCount"),
		Comments:  n.Comments(m["comments"]),
	}
	if t.Title == "" {
		t.Title = UntitledThread
	}
	if t.Content == "" {
		t.Content = NoContent
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	t.CommentCount = commentCount(m, len(t.Comments))
	t.DateLabel = DateLabel(t.CreatedAt)
	return t
}

// commentCount prefers the server counter and falls back to the number of
// embedded comments.
func commentCount(m map[string]any, embedded int) int {
	for _, k := range []string{"commentCount", "comment_count", "commentsCount", "comments_count"} {
		if _, ok := m[k]; ok {
			return max(integer(m, k), embedded)
		}
	}
	return embedded
}

func tags(raw any) []string {
	out := []string{}
	if s, ok := raw.(string); ok {
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	for _, it := range list(raw) {
		if t := name(it, "name", "title"); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (n *Normalizer) UserSummary(raw any) models.UserSummary {
	m := object(raw)
	u := n.User(raw)
	s := models.UserSummary{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		AvatarURL:   u.AvatarURL,
		Role:        u.Role,
		IsAdmin:     u.IsAdmin,
		JoinedAt:    u.CreatedAt,
	}
	active, ok := boolean(m, "isActive", "is_active", "active")
	s.IsActive = active || !ok
	return s
}

func (n *Normalizer) Profile(raw any) models.Profile {
	m := object(raw)
	u := n.User(raw)
	return models.Profile{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		AvatarURL:      u.AvatarURL,
		Bio:            u.Bio,
		ArticlesCount:  integer(m, "articlesCount", "articles_count"),
		FollowersCount: integer(m, "followersCount", "followers_count"),
		FollowingCount: integer(m, "followingCount", "following_count"),
		JoinedAt:       u.CreatedAt,
	}
}

func (n *Normalizer) Stats(raw any) models.DashboardStats {
	m := object(raw)
	s := models.DashboardStats{
		TotalArticles:    integer(m, "totalArticles", "total_articles", "articles"),
		TotalUsers:       integer(m, "totalUsers", "total_users", "users"),
		TotalThreads:     integer(m, "totalThreads", "total_threads", "threads"),
		TotalComments:    integer(m, "totalComments", "total_comments", "comments"),
		PopularArticles:  []models.Article{},
		RecentActivities: []models.Activity{},
	}
	for _, it := range list(firstNonNil(m, "popularArticles", "popular_articles")) {
		s.PopularArticles = append(s.PopularArticles, n.Article(it))
	}
	for _, it := range list(firstNonNil(m, "recentActivities", "recent_activities")) {
		am := object(it)
		s.RecentActivities = append(s.RecentActivities, models.Activity{
			Type:        str(am, "type"),
			Description: str(am, "description", "message", "text"),
			CreatedAt:   str(am, "createdAt", "created_at", "date"),
		})
	}
	return s
}

func (n *Normalizer) Analytics(raw any) models.Analytics {
	m := object(raw)
	a := models.Analytics{
		Period: str(m, "period"),
		Series: []models.DataPoint{},
		Totals: map[string]int64{},
	}
	for _, it := range list(firstNonNil(m, "series", "data", "points")) {
		pm := object(it)
		a.Series = append(a.Series, models.DataPoint{
			Label: str(pm, "label", "date", "name"),
			Value: number(firstNonNil(pm, "value", "count", "total")),
		})
	}
	for k, v := range object(m["totals"]) {
		a.Totals[k] = int64(number(v))
	}
	return a
}
