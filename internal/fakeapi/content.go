package fakeapi

import (
	"cmp"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

type articleInput struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt"`
	ImageURL   string   `json:"imageUrl"`
	CategoryID any      `json:"categoryId"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status"`
	Featured   bool     `json:"featured"`
}

type threadInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// toInt accepts JSON numbers and numeric strings.
func toInt(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case string:
		n, _ := strconv.Atoi(t)
		return n
	}
	return 0
}

func canModify(u *user, ownerID int) bool {
	return u.admin() || u.ID == ownerID
}

func (s *Server) published() []*article {
	return slices.DeleteFunc(slices.Clone(s.articles), func(a *article) bool { return a.Status == "draft" })
}

func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.published()
	if cat := r.URL.Query().Get("category"); cat != "" {
		items = slices.DeleteFunc(items, func(a *article) bool {
			c := s.categoryByID(a.CategoryID)
			return c == nil || (!strings.EqualFold(c.Name, cat) && strconv.Itoa(c.ID) != cat)
		})
	}
	items, meta := page(r, items)
	writeJSON(w, http.StatusOK, obj{"articles": mapViews(items, s.articleSummary), "meta": meta})
}

func (s *Server) popularArticles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.published()
	slices.SortStableFunc(items, func(a, b *article) int { return cmp.Compare(b.Views, a.Views) })
	items = items[:min(queryInt(r, "limit", 5), len(items))]
	writeJSON(w, http.StatusOK, obj{"data": mapViews(items, s.articleSummary)})
}

func (s *Server) relatedArticles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := r.URL.Query()
	exclude := toInt(q.Get("articleId"))
	categoryID := toInt(q.Get("categoryId"))
	if categoryID == 0 {
		if a := s.articleByID(exclude); a != nil {
			categoryID = a.CategoryID
		}
	}

	items := slices.DeleteFunc(s.published(), func(a *article) bool {
		return a.ID == exclude || (categoryID != 0 && a.CategoryID != categoryID)
	})
	items = items[:min(queryInt(r, "limit", 3), len(items))]
	writeJSON(w, http.StatusOK, mapViews(items, s.articleSummary))
}

func (s *Server) searchArticles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	items := slices.DeleteFunc(s.published(), func(a *article) bool {
		return q != "" && !strings.Contains(strings.ToLower(a.Title+" "+a.Content), q)
	})
	writeJSON(w, http.StatusOK, obj{"results": mapViews(items, s.articleSummary), "total": len(items)})
}

func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.articleByID(pathID(r, "id"))
	if a == nil {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	a.Views++
	writeJSON(w, http.StatusOK, obj{"article": s.articleDetail(a)})
}

func (s *Server) createArticle(w http.ResponseWriter, r *http.Request, u *user) {
	var in articleInput
	if err := readJSON(r, &in); err != nil || in.Title == "" || in.Content == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := &article{
		ID:         s.id(),
		Title:      in.Title,
		Content:    in.Content,
		Excerpt:    in.Excerpt,
		ImageURL:   in.ImageURL,
		CategoryID: toInt(in.CategoryID),
		Tags:       in.Tags,
		AuthorID:   u.ID,
		Status:     cmp.Or(in.Status, "published"),
		Featured:   in.Featured,
		CreatedAt:  s.now(),
	}
	s.articles = append([]*article{a}, s.articles...)
	writeJSON(w, http.StatusCreated, obj{"article": s.articleDetail(a)})
}

func (s *Server) updateArticle(w http.ResponseWriter, r *http.Request, u *user) {
	var in articleInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.articleByID(pathID(r, "id"))
	if a == nil {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	if !canModify(u, a.AuthorID) {
		writeError(w, http.StatusForbidden, "Not allowed to edit this article")
		return
	}
	a.Title = cmp.Or(in.Title, a.Title)
	a.Content = cmp.Or(in.Content, a.Content)
	a.Excerpt = cmp.Or(in.Excerpt, a.Excerpt)
	a.ImageURL = cmp.Or(in.ImageURL, a.ImageURL)
	a.CategoryID = cmp.Or(toInt(in.CategoryID), a.CategoryID)
	a.Status = cmp.Or(in.Status, a.Status)
	a.Featured = in.Featured
	if in.Tags != nil {
		a.Tags = in.Tags
	}
	writeJSON(w, http.StatusOK, obj{"article": s.articleDetail(a)})
}

func (s *Server) deleteArticle(w http.ResponseWriter, r *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.articleByID(pathID(r, "id"))
	if a == nil {
		writeError(w, http.StatusNotFound, "Article not found")
		return
	}
	if !canModify(u, a.AuthorID) {
		writeError(w, http.StatusForbidden, "Not allowed to delete this article")
		return
	}
	s.articles, _ = remove(s.articles, func(x *article) bool { return x.ID == a.ID })
	s.comments, _ = remove(s.comments, func(c *comment) bool { return c.On == onArticle && c.ParentID == a.ID })
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) parentExists(on string, id int) bool {
	if on == onArticle {
		return s.articleByID(id) != nil
	}
	return s.threadByID(id) != nil
}

// addComment answers with the bare comment record; the author is not
// expanded.
func (s *Server) addComment(on string) handler {
	return func(w http.ResponseWriter, r *http.Request, u *user) {
		var in struct {
			Content string `json:"content"`
		}
		if err := readJSON(r, &in); err != nil || strings.TrimSpace(in.Content) == "" {
			writeError(w, http.StatusBadRequest, "Comment content is required")
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		parentID := pathID(r, "id")
		if !s.parentExists(on, parentID) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		c := &comment{ID: s.id(), On: on, ParentID: parentID, UserID: u.ID, Content: in.Content, CreatedAt: s.now()}
		s.comments = append(s.comments, c)
		writeJSON(w, http.StatusCreated, obj{"comment": obj{
			"id":         c.ID,
			"content":    c.Content,
			"user_id":    c.UserID,
			"created_at": stamp(c.CreatedAt),
		}})
	}
}

func (s *Server) deleteComment(on string) handler {
	return func(w http.ResponseWriter, r *http.Request, u *user) {
		s.mu.Lock()
		defer s.mu.Unlock()

		parentID, cid := pathID(r, "id"), pathID(r, "cid")
		c := find(s.comments, func(c *comment) bool { return c.ID == cid && c.On == on && c.ParentID == parentID })
		if c == nil {
			writeError(w, http.StatusNotFound, "Comment not found")
			return
		}
		if !canModify(u, c.UserID) {
			writeError(w, http.StatusForbidden, "Not allowed to delete this comment")
			return
		}
		s.comments, _ = remove(s.comments, func(x *comment) bool { return x.ID == cid })
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) listThreads(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.threads
	if cat := r.URL.Query().Get("category"); cat != "" {
		items = slices.DeleteFunc(slices.Clone(items), func(t *thread) bool { return !strings.EqualFold(t.Category, cat) })
	}
	writeJSON(w, http.StatusOK, mapViews(items, s.threadSummary))
}

func (s *Server) getThread(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.threadByID(pathID(r, "id"))
	if t == nil {
		writeError(w, http.StatusNotFound, "Thread not found")
		return
	}
	t.Views++
	writeJSON(w, http.StatusOK, obj{"data": s.threadDetail(t)})
}

func (s *Server) createThread(w http.ResponseWriter, r *http.Request, u *user) {
	var in threadInput
	if err := readJSON(r, &in); err != nil || in.Title == "" || in.Content == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := &thread{
		ID:        s.id(),
		Title:     in.Title,
		Content:   in.Content,
		Category:  cmp.Or(in.Category, "General"),
		UserID:    u.ID,
		CreatedAt: s.now(),
	}
	s.threads = append([]*thread{t}, s.threads...)
	writeJSON(w, http.StatusCreated, obj{"thread": s.threadSummary(t)})
}

func (s *Server) updateThread(w http.ResponseWriter, r *http.Request, u *user) {
	var in threadInput
	if err := readJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.threadByID(pathID(r, "id"))
	if t == nil {
		writeError(w, http.StatusNotFound, "Thread not found")
		return
	}
	if !canModify(u, t.UserID) {
		writeError(w, http.StatusForbidden, "Not allowed to edit this thread")
		return
	}
	t.Title = cmp.Or(in.Title, t.Title)
	t.Content = cmp.Or(in.Content, t.Content)
	t.Category = cmp.Or(in.Category, t.Category)
	writeJSON(w, http.StatusOK, obj{"thread": s.threadDetail(t)})
}

func (s *Server) deleteThread(w http.ResponseWriter, r *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.threadByID(pathID(r, "id"))
	if t == nil {
		writeError(w, http.StatusNotFound, "Thread not found")
		return
	}
	if !canModify(u, t.UserID) {
		writeError(w, http.StatusForbidden, "Not allowed to delete this thread")
		return
	}
	s.threads, _ = remove(s.threads, func(x *thread) bool { return x.ID == t.ID })
	s.comments, _ = remove(s.comments, func(c *comment) bool { return c.On == onThread && c.ParentID == t.ID })
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, obj{"data": mapViews(s.categories, s.categoryView)})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := mux.Vars(r)["username"]
	u := find(s.users, func(u *user) bool { return strings.EqualFold(u.Username, name) })
	if u == nil {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	v := userView(u)
	delete(v, "email")
	v["articles_count"] = len(s.articlesBy(u.ID))
	v["followers_count"] = 0
	v["following_count"] = 0
	writeJSON(w, http.StatusOK, obj{"user": v})
}

func (s *Server) articlesBy(userID int) []*article {
	return slices.DeleteFunc(s.published(), func(a *article) bool { return a.AuthorID != userID })
}

func (s *Server) userArticles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, obj{"articles": mapViews(s.articlesBy(pathID(r, "id")), s.articleSummary)})
}
