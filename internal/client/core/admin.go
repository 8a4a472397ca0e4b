package core

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/normalize"
	"github.com/dmitrijs2005/courtside/internal/client/store"
)

// Admin groups the moderation stores. Every endpoint requires an admin
// session; the server enforces it.
type Admin struct {
	Articles   *store.Store[models.Article]
	Users      *store.Store[models.UserSummary]
	Categories *store.Store[models.Category]
	Comments   *store.Store[models.Comment]
	Threads    *store.Store[models.Thread]
	Stats      *store.Singleton[models.DashboardStats]
	Analytics  *store.Singleton[models.Analytics]
}

func newAdmin(c *Core, opts []store.Option) *Admin {
	n := c.Normalizer
	return &Admin{
		Articles: store.New(c.Gateway, c.Session, store.Config[models.Article]{
			Name: "admin-articles", Path: "/admin/articles", Decode: n.Article, EntityKeys: []string{"article"},
		}, opts...),
		Users: store.New(c.Gateway, c.Session, store.Config[models.UserSummary]{
			Name: "admin-users", Path: "/admin/users", Decode: n.UserSummary, EntityKeys: []string{"user"},
		}, opts...),
		Categories: store.New(c.Gateway, c.Session, store.Config[models.Category]{
			Name: "admin-categories", Path: "/admin/categories", Decode: n.Category, EntityKeys: []string{"category"},
		}, opts...),
		Comments: store.New(c.Gateway, c.Session, store.Config[models.Comment]{
			Name: "admin-comments", Path: "/admin/comments", Decode: n.Comment, EntityKeys: []string{"comment"},
		}, opts...),
		Threads: store.New(c.Gateway, c.Session, store.Config[models.Thread]{
			Name: "admin-threads", Path: "/admin/threads", Decode: n.Thread, EntityKeys: []string{"thread"},
		}, opts...),
		Stats: store.NewSingleton(c.Gateway, "/admin/stats", func(raw any) models.DashboardStats {
			return n.Stats(normalize.Entity(raw, "stats"))
		}, c.Logger),
		Analytics: store.NewSingleton(c.Gateway, "/admin/analytics", func(raw any) models.Analytics {
			return n.Analytics(normalize.Entity(raw, "analytics"))
		}, c.Logger),
	}
}

// SetRole changes the role of a user.
func (a *Admin) SetRole(ctx context.Context, id models.ID, role string) (models.UserSummary, error) {
	return a.Users.Patch(ctx, id, "role", models.RoleInput{Role: role})
}

// LoadAnalytics fetches analytics for a period such as "week" or "month".
func (a *Admin) LoadAnalytics(ctx context.Context, period string) (models.Analytics, error) {
	var params url.Values
	if period != "" {
		params = url.Values{"period": {period}}
	}
	return a.Analytics.Fetch(ctx, params)
}
