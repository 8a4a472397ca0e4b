package fakeapi

import (
	"strings"
	"time"
)

// The views below intentionally disagree on field spelling and nesting.

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func userView(u *user) obj {
	return obj{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"full_name":  u.FullName,
		"bio":        u.Bio,
		"role":       u.Role,
		"is_admin":   u.admin(),
		"is_active":  u.Active,
		"created_at": stamp(u.CreatedAt),
	}
}

func (s *Server) authorView(id int) any {
	u := s.userByID(id)
	if u == nil {
		return nil
	}
	return obj{"id": u.ID, "username": u.Username, "fullName": u.FullName}
}

func (s *Server) categoryView(c *category) obj {
	count := 0
	for _, a := range s.articles {
		if a.CategoryID == c.ID {
			count++
		}
	}
	return obj{
		"id":            c.ID,
		"name":          c.Name,
		"slug":          strings.ToLower(c.Name),
		"description":   c.Description,
		"article_count": count,
	}
}

// articleSummary is the snake_case list form with a category object.
func (s *Server) articleSummary(a *article) obj {
	v := obj{
		"id":            a.ID,
		"title":         a.Title,
		"excerpt":       a.Excerpt,
		"content":       a.Content,
		"tags":          a.Tags,
		"author":        s.authorView(a.AuthorID),
		"status":        a.Status,
		"is_featured":   a.Featured,
		"view_count":    a.Views,
		"comment_count": len(s.commentsOn(onArticle, a.ID)),
		"published_at":  stamp(a.CreatedAt),
	}
	if a.ImageURL != "" {
		v["image_url"] = a.ImageURL
	}
	if c := s.categoryByID(a.CategoryID); c != nil {
		v["category"] = obj{"id": c.ID, "name": c.Name}
	}
	return v
}

// articleDetail is the camelCase form with a bare category name and
// embedded comments.
func (s *Server) articleDetail(a *article) obj {
	v := obj{
		"id":            a.ID,
		"title":         a.Title,
		"content":       a.Content,
		"tags":          strings.Join(a.Tags, ","),
		"user":          s.authorView(a.AuthorID),
		"status":        a.Status,
		"featured":      a.Featured,
		"views":         a.Views,
		"categoryId":    a.CategoryID,
		"publishedDate": stamp(a.CreatedAt),
		"comments":      s.commentViews(onArticle, a.ID),
	}
	if a.Excerpt != "" {
		v["summary"] = a.Excerpt
	}
	if a.ImageURL != "" {
		v["imageUrl"] = a.ImageURL
	}
	if c := s.categoryByID(a.CategoryID); c != nil {
		v["category"] = c.Name
	}
	return v
}

func (s *Server) threadSummary(t *thread) obj {
	return obj{
		"id":            t.ID,
		"title":         t.Title,
		"content":       t.Content,
		"category":      t.Category,
		"user":          s.authorView(t.UserID),
		"views":         t.Views,
		"comment_count": len(s.commentsOn(onThread, t.ID)),
		"created_at":    stamp(t.CreatedAt),
	}
}

func (s *Server) threadDetail(t *thread) obj {
	v := s.threadSummary(t)
	v["comments"] = s.commentViews(onThread, t.ID)
	return v
}

func (s *Server) commentView(c *comment) obj {
	v := obj{
		"id":         c.ID,
		"content":    c.Content,
		"user":       s.authorView(c.UserID),
		"created_at": stamp(c.CreatedAt),
	}
	if c.On == onArticle {
		v["article_id"] = c.ParentID
	} else {
		v["thread_id"] = c.ParentID
	}
	return v
}

func (s *Server) commentViews(on string, parentID int) []obj {
	out := []obj{}
	for _, c := range s.commentsOn(on, parentID) {
		out = append(out, s.commentView(c))
	}
	return out
}

func mapViews[T any](items []*T, fn func(*T) obj) []obj {
	out := make([]obj, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}
