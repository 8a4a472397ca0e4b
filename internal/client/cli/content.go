package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/courtside/internal/client/core"
	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/store"
)

// Articles lists the latest articles, or the search results when a query
// is given.
func (a *App) Articles(ctx context.Context, args []string) error {
	if len(args) > 0 {
		if err := a.core.Feeds.LoadSearch(ctx, strings.Join(args, " ")); err != nil {
			return a.report(err)
		}
		items := a.core.Feeds.Search.Items()
		if len(items) == 0 {
			fmt.Fprintln(a.out, "Nothing found.")
		}
		for _, it := range items {
			printArticleLine(a.out, it)
		}
		return nil
	}

	if err := a.core.Articles.FetchAll(ctx, nil); err != nil {
		return a.report(err)
	}
	for _, it := range a.core.Articles.Items() {
		printArticleLine(a.out, it)
	}
	return nil
}

// Article shows one article with its comments and related reading.
func (a *App) Article(ctx context.Context, id string) error {
	art, err := a.core.Articles.FetchOne(ctx, models.ID(id))
	if err != nil {
		return a.report(err)
	}
	printArticle(a.out, art)

	q := core.RelatedQuery{ArticleID: art.ID, CategoryID: art.CategoryID, Tags: art.Tags, Limit: 3}
	if err := a.core.Feeds.LoadRelated(ctx, q); err == nil {
		if related := a.core.Feeds.Related.Items(); len(related) > 0 {
			fmt.Fprintln(a.out, "\nRelated:")
			for _, r := range related {
				printArticleLine(a.out, r)
			}
		}
	}
	return nil
}

func (a *App) Threads(ctx context.Context) error {
	if err := a.core.Threads.FetchAll(ctx, nil); err != nil {
		return a.report(err)
	}
	for _, it := range a.core.Threads.Items() {
		printThreadLine(a.out, it)
	}
	return nil
}

func (a *App) Thread(ctx context.Context, id string) error {
	t, err := a.core.Threads.FetchOne(ctx, models.ID(id))
	if err != nil {
		return a.report(err)
	}
	printThread(a.out, t)
	return nil
}

// NewThread prompts for a title, category and body and starts a thread.
func (a *App) NewThread(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	category, err := getSimpleText(a.reader, "Enter category (optional)", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Enter text (double Enter to finish):", a.out)
	if err != nil {
		return err
	}

	t, err := a.core.Threads.Create(ctx, models.ThreadInput{Title: title, Content: content, Category: category})
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Thread %s created\n", t.ID)
	return nil
}

func (a *App) RmThread(ctx context.Context, id string) error {
	if err := a.core.Threads.Remove(ctx, models.ID(id)); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Thread deleted")
	return nil
}

// Comment prompts for a comment on an article or a thread.
// kind is "article" or "thread".
func (a *App) Comment(ctx context.Context, kind, id string) error {
	content, err := getMultiline(a.reader, "Enter comment (double Enter to finish):", a.out)
	if err != nil {
		return err
	}
	in := models.CommentInput{Content: content}

	var c models.Comment
	switch kind {
	case "article":
		c, err = store.AddComment(ctx, a.core.Articles, models.ID(id), in)
	case "thread":
		c, err = store.AddComment(ctx, a.core.Threads, models.ID(id), in)
	default:
		return a.report(fmt.Errorf("unknown kind %q, want article or thread", kind))
	}
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Comment %s added\n", c.ID)
	return nil
}

func (a *App) Uncomment(ctx context.Context, kind, id, commentID string) error {
	var err error
	switch kind {
	case "article":
		err = store.DeleteComment(ctx, a.core.Articles, models.ID(id), models.ID(commentID))
	case "thread":
		err = store.DeleteComment(ctx, a.core.Threads, models.ID(id), models.ID(commentID))
	default:
		err = fmt.Errorf("unknown kind %q, want article or thread", kind)
	}
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Comment deleted")
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	if err := a.core.Categories.FetchAll(ctx, nil); err != nil {
		return a.report(err)
	}
	for _, c := range a.core.Categories.Items() {
		fmt.Fprintf(a.out, "[%s] %s (%d articles)\n", c.ID, c.Name, c.ArticleCount)
	}
	return nil
}
