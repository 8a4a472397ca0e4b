package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/store"
	"github.com/dmitrijs2005/courtside/internal/common"
)

var errAdminOnly = errors.New("admin access required")

func (a *App) requireAdmin() error {
	if !a.isAdmin() {
		return a.report(errAdminOnly)
	}
	return nil
}

func (a *App) Users(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if err := a.core.Admin.Users.FetchAll(ctx, nil); err != nil {
		return a.report(err)
	}
	for _, u := range a.core.Admin.Users.Items() {
		state := "active"
		if !u.IsActive {
			state = "inactive"
		}
		fmt.Fprintf(a.out, "[%s] %s <%s> %s, %s\n", u.ID, u.Username, u.Email, u.Role, state)
	}
	return nil
}

// Role changes the role of a user to "user" or "admin".
func (a *App) Role(ctx context.Context, id, role string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	u, err := a.core.Admin.SetRole(ctx, models.ID(id), role)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "%s is now %s\n", u.Username, u.Role)
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	s, err := a.core.Admin.Stats.Fetch(ctx, nil)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "articles: %d\nusers: %d\nthreads: %d\ncomments: %d\n",
		s.TotalArticles, s.TotalUsers, s.TotalThreads, s.TotalComments)
	if len(s.PopularArticles) > 0 {
		fmt.Fprintln(a.out, "\nPopular:")
		for _, art := range s.PopularArticles {
			fmt.Fprintf(a.out, "  %s (%d views)\n", art.Title, art.Views)
		}
	}
	if len(s.RecentActivities) > 0 {
		fmt.Fprintln(a.out, "\nRecent activity:")
		for _, act := range s.RecentActivities {
			fmt.Fprintf(a.out, "  %s\n", act.Description)
		}
	}
	return nil
}

// BulkDelete removes several entities of one kind (articles, threads,
// comments, users, categories). Each id is removed independently; the
// failures are listed.
func (a *App) BulkDelete(ctx context.Context, kind string, ids []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	list := make([]models.ID, 0, len(ids))
	for _, id := range ids {
		list = append(list, models.ID(id))
	}

	admin := a.core.Admin
	var (
		res store.BulkResult
		err error
	)
	switch kind {
	case "articles":
		res, err = admin.Articles.RemoveMany(ctx, list)
	case "threads":
		res, err = admin.Threads.RemoveMany(ctx, list)
	case "comments":
		res, err = admin.Comments.RemoveMany(ctx, list)
	case "users":
		res, err = admin.Users.RemoveMany(ctx, list)
	case "categories":
		res, err = admin.Categories.RemoveMany(ctx, list)
	default:
		return a.report(fmt.Errorf("unknown kind %q", kind))
	}

	fmt.Fprintf(a.out, "Deleted %d of %d\n", len(res.Removed), len(res.Removed)+len(res.Failed))
	failed := make([]string, 0, len(res.Failed))
	for id := range res.Failed {
		failed = append(failed, string(id))
	}
	sort.Strings(failed)
	for _, id := range failed {
		fmt.Fprintf(a.out, "  %s: %s\n", id, common.Message(res.Failed[models.ID(id)]))
	}
	return err
}
