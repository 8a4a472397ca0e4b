package fakeapi

import (
	"slices"
	"strings"
	"time"
)

type user struct {
	ID        int
	Username  string
	Email     string
	Password  string
	FullName  string
	Bio       string
	Role      string
	Active    bool
	CreatedAt time.Time
}

func (u *user) admin() bool { return u.Role == "admin" }

type category struct {
	ID          int
	Name        string
	Description string
}

type article struct {
	ID         int
	Title      string
	Content    string
	Excerpt    string
	ImageURL   string
	CategoryID int
	Tags       []string
	AuthorID   int
	Status     string
	Featured   bool
	Views      int
	CreatedAt  time.Time
}

type thread struct {
	ID        int
	Title     string
	Content   string
	Category  string
	UserID    int
	Views     int
	CreatedAt time.Time
}

const (
	onArticle = "article"
	onThread  = "thread"
)

type comment struct {
	ID        int
	On        string
	ParentID  int
	UserID    int
	Content   string
	CreatedAt time.Time
}

// seed fills an empty server with a small fixed dataset.
func (s *Server) seed() {
	t0 := s.now().Add(-72 * time.Hour).UTC().Truncate(time.Second)

	s.users = []*user{
		{ID: s.id(), Username: "admin", Email: "admin@courtside.dev", Password: "Admin123", FullName: "Court Admin", Role: "admin", Active: true, CreatedAt: t0},
		{ID: s.id(), Username: "hooper", Email: "hooper@courtside.dev", Password: "Hooper123", FullName: "Jordan Hooper", Bio: "Pick-and-roll enthusiast.", Role: "user", Active: true, CreatedAt: t0},
	}
	s.categories = []*category{
		{ID: s.id(), Name: "NBA", Description: "National Basketball Association"},
		{ID: s.id(), Name: "WNBA", Description: "Women's National Basketball Association"},
		{ID: s.id(), Name: "EuroLeague", Description: "Top-tier European club competition"},
	}
	nba, wnba, euro := s.categories[0].ID, s.categories[1].ID, s.categories[2].ID
	admin, hooper := s.users[0].ID, s.users[1].ID

	s.articles = []*article{
		{ID: s.id(), Title: "Trade deadline winners", Content: "Contenders loaded up on wings and shooting before the deadline.", ImageURL: "/uploads/deadline.jpg", CategoryID: nba, Tags: []string{"trades", "analysis"}, AuthorID: admin, Status: "published", Featured: true, Views: 420, CreatedAt: t0.Add(time.Hour)},
		{ID: s.id(), Title: "Rookie ladder, week 12", Content: "Guards keep climbing while the bigs adjust to NBA spacing.", CategoryID: nba, Tags: []string{"rookies"}, AuthorID: hooper, Status: "published", Views: 180, CreatedAt: t0.Add(2 * time.Hour)},
		{ID: s.id(), Title: "Expansion and the WNBA calendar", Content: "Two new franchises reshape the schedule.", CategoryID: wnba, Tags: []string{"expansion"}, AuthorID: admin, Status: "published", Views: 95, CreatedAt: t0.Add(3 * time.Hour)},
		{ID: s.id(), Title: "Final Four preview", Content: "Defense travels, and so do the favorites.", CategoryID: euro, AuthorID: hooper, Status: "draft", Views: 12, CreatedAt: t0.Add(4 * time.Hour)},
	}
	s.threads = []*thread{
		{ID: s.id(), Title: "Best pick-and-roll duo ever?", Content: "Stockton and Malone, no contest.", Category: "NBA", UserID: hooper, Views: 64, CreatedAt: t0.Add(5 * time.Hour)},
		{ID: s.id(), Title: "EuroLeague streaming options", Content: "What does everyone use?", Category: "EuroLeague", UserID: admin, Views: 21, CreatedAt: t0.Add(6 * time.Hour)},
	}
	s.comments = []*comment{
		{ID: s.id(), On: onArticle, ParentID: s.articles[0].ID, UserID: hooper, Content: "Great breakdown.", CreatedAt: t0.Add(7 * time.Hour)},
		{ID: s.id(), On: onThread, ParentID: s.threads[0].ID, UserID: admin, Content: "Nash and Amare deserve a mention.", CreatedAt: t0.Add(8 * time.Hour)},
	}
}

func (s *Server) id() int {
	s.nextID++
	return s.nextID
}

func find[T any](items []*T, match func(*T) bool) *T {
	if i := slices.IndexFunc(items, match); i >= 0 {
		return items[i]
	}
	return nil
}

func remove[T any](items []*T, match func(*T) bool) ([]*T, bool) {
	out := slices.DeleteFunc(slices.Clone(items), match)
	return out, len(out) != len(items)
}

func (s *Server) userByID(id int) *user {
	return find(s.users, func(u *user) bool { return u.ID == id })
}

func (s *Server) articleByID(id int) *article {
	return find(s.articles, func(a *article) bool { return a.ID == id })
}

func (s *Server) threadByID(id int) *thread {
	return find(s.threads, func(t *thread) bool { return t.ID == id })
}

func (s *Server) categoryByID(id int) *category {
	return find(s.categories, func(c *category) bool { return c.ID == id })
}

func (s *Server) categoryByName(name string) *category {
	return find(s.categories, func(c *category) bool { return strings.EqualFold(c.Name, name) })
}

func (s *Server) commentsOn(on string, parentID int) []*comment {
	var out []*comment
	for _, c := range s.comments {
		if c.On == on && c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out
}
