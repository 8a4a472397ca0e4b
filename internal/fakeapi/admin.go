package fakeapi

import (
	"cmp"
	"net/http"
	"slices"
	"strings"
	"time"
)

func (s *Server) adminListArticles(w http.ResponseWriter, r *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := slices.Clone(s.articles)
	if st := r.URL.Query().Get("status"); st != "" {
		items = slices.DeleteFunc(items, func(a *article) bool { return a.Status != st })
	}
	items, meta := page(r, items)
	writeJSON(w, http.StatusOK, obj{"articles": mapViews(items, s.articleSummary), "pagination": meta})
}

func (s *Server) adminGetArticle(w http.ResponseWriter, r *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.articleByID(pathID(r, "id"))
	if a == nil {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	writeJSON(w, http.StatusOK, obj{"article": s.articleDetail(a)})
}

func (s *Server) adminListUsers(w http.ResponseWriter, r *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, meta := page(r, s.users)
	writeJSON(w, http.StatusOK, obj{"users": mapViews(items, userView), "total": meta["total"]})
}

func (s *Server) adminGetUser(w http.ResponseWriter, r *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByID(pathID(r, "id"))
	if u == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, obj{"user": userView(u)})
}

func (s *Server) adminUpdateUser(w http.ResponseWriter, r *http.Request, _ *user) {
	var in struct {
		FullName string `json:"full_name"`
		Bio      string `json:"bio"`
		IsActive *bool  `json:"is_active"`
	}
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByID(pathID(r, "id"))
	if u == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	u.FullName = cmp.Or(in.FullName, u.FullName)
	u.Bio = cmp.Or(in.Bio, u.Bio)
	if in.IsActive != nil {
		u.Active = *in.IsActive
	}
	writeJSON(w, http.StatusOK, obj{"user": userView(u)})
}

func (s *Server) adminUpdateRole(w http.ResponseWriter, r *http.Request, caller *user) {
	var in struct {
		Role string `json:"role"`
	}
	if err := readJSON(r, &in); err != nil || (in.Role != "user" && in.Role != "admin") {
		writeError(w, http.StatusBadRequest, "Role must be user or admin")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.userByID(pathID(r, "id"))
	if u == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if u.ID == caller.ID && in.Role != "admin" {
		writeError(w, http.StatusBadRequest, "Cannot demote yourself")
		return
	}
	u.Role = in.Role
	writeJSON(w, http.StatusOK, obj{"user": userView(u)})
}

func (s *Server) adminDeleteUser(w http.ResponseWriter, r *http.Request, caller *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r, "id")
	if id == caller.ID {
		writeError(w, http.StatusBadRequest, "Cannot delete yourself")
		return
	}
	var ok bool
	if s.users, ok = remove(s.users, func(u *user) bool { return u.ID == id }); !ok {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminListCategories(w http.ResponseWriter, _ *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, obj{"categories": mapViews(s.categories, s.categoryView)})
}

type categoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) adminCreateCategory(w http.ResponseWriter, r *http.Request, _ *user) {
	var in categoryInput
	if err := readJSON(r, &in); err != nil || strings.TrimSpace(in.Name) == "" {
		writeError(w, http.StatusBadRequest, "Category name is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.categoryByName(in.Name) != nil {
		writeError(w, http.StatusConflict, "Category already exists")
		return
	}
	c := &category{ID: s.id(), Name: in.Name, Description: in.Description}
	s.categories = append(s.categories, c)
	writeJSON(w, http.StatusCreated, obj{"category": s.categoryView(c)})
}

func (s *Server) adminUpdateCategory(w http.ResponseWriter, r *http.Request, _ *user) {
	var in categoryInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.categoryByID(pathID(r, "id"))
	if c == nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	c.Name = cmp.Or(in.Name, c.Name)
	c.Description = cmp.Or(in.Description, c.Description)
	writeJSON(w, http.StatusOK, obj{"category": s.categoryView(c)})
}

func (s *Server) adminDeleteCategory(w http.ResponseWriter, r *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r, "id")
	if slices.ContainsFunc(s.articles, func(a *article) bool { return a.CategoryID == id }) {
		writeError(w, http.StatusConflict, "Category has articles")
		return
	}
	var ok bool
	if s.categories, ok = remove(s.categories, func(c *category) bool { return c.ID == id }); !ok {
		writeError(w, http.StatusNotFound, "Category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminListComments(w http.ResponseWriter, r *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, meta := page(r, s.comments)
	writeJSON(w, http.StatusOK, obj{"comments": mapViews(items, s.commentView), "meta": meta})
}

func (s *Server) adminDeleteComment(w http.ResponseWriter, r *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r, "id")
	var ok bool
	if s.comments, ok = remove(s.comments, func(c *comment) bool { return c.ID == id }); !ok {
		writeError(w, http.StatusNotFound, "Comment not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) adminListThreads(w http.ResponseWriter, r *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, meta := page(r, s.threads)
	writeJSON(w, http.StatusOK, obj{"threads": mapViews(items, s.threadSummary), "meta": meta})
}

func (s *Server) adminGetThread(w http.ResponseWriter, r *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.threadByID(pathID(r, "id"))
	if t == nil {
		writeError(w, http.StatusNotFound, "Thread not found")
		return
	}
	writeJSON(w, http.StatusOK, obj{"thread": s.threadDetail(t)})
}

func (s *Server) adminStats(w http.ResponseWriter, _ *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	popular := slices.Clone(s.articles)
	slices.SortStableFunc(popular, func(a, b *article) int { return cmp.Compare(b.Views, a.Views) })
	popular = popular[:min(3, len(popular))]

	var activity []obj
	for _, u := range s.users {
		activity = append(activity, obj{"type": "user", "message": u.Username + " joined", "created_at": stamp(u.CreatedAt)})
	}
	for _, a := range s.articles {
		activity = append(activity, obj{"type": "article", "message": "New article: " + a.Title, "created_at": stamp(a.CreatedAt)})
	}
	slices.SortStableFunc(activity, func(a, b obj) int {
		return strings.Compare(b["created_at"].(string), a["created_at"].(string))
	})
	activity = activity[:min(5, len(activity))]

	writeJSON(w, http.StatusOK, obj{"data": obj{
		"total_articles":    len(s.articles),
		"total_users":       len(s.users),
		"total_threads":     len(s.threads),
		"total_comments":    len(s.comments),
		"popular_articles":  mapViews(popular, s.articleSummary),
		"recent_activities": activity,
	}})
}

var analyticsPeriods = map[string]int{"week": 7, "month": 30, "year": 365}

// adminAnalytics reports daily counts of new articles for the period
// (week, month or year; default week).
func (s *Server) adminAnalytics(w http.ResponseWriter, r *http.Request, _ *user) {
	period := r.URL.Query().Get("period")
	days, ok := analyticsPeriods[period]
	if !ok {
		period, days = "week", 7
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.now().UTC().Truncate(24 * time.Hour)
	series := make([]obj, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		n := 0
		for _, a := range s.articles {
			if a.CreatedAt.UTC().Truncate(24 * time.Hour).Equal(day) {
				n++
			}
		}
		series = append(series, obj{"date": day.Format("2006-01-02"), "count": n})
	}

	writeJSON(w, http.StatusOK, obj{
		"period": period,
		"series": series,
		"totals": obj{
			"articles": len(s.articles),
			"users":    len(s.users),
			"threads":  len(s.threads),
			"comments": len(s.comments),
		},
	})
}
