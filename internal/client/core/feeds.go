package core

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/store"
)

// Feeds are read-only article lists served by dedicated endpoints. Each
// feed has its own store so they do not overwrite the main list.
type Feeds struct {
	Popular *store.Store[models.Article]
	Related *store.Store[models.Article]
	Search  *store.Store[models.Article]
	ByUser  *store.Store[models.Article]
}

func newFeeds(c *Core, opts []store.Option) *Feeds {
	feed := func(name string) *store.Store[models.Article] {
		return store.New(c.Gateway, c.Session, store.Config[models.Article]{
			Name: name, Path: "/articles", Decode: c.Normalizer.Article, EntityKeys: []string{"article"},
		}, opts...)
	}
	return &Feeds{
		Popular: feed("popular"),
		Related: feed("related"),
		Search:  feed("search"),
		ByUser:  feed("user-articles"),
	}
}

// RelatedQuery selects articles similar to an article.
type RelatedQuery struct {
	ArticleID  models.ID
	CategoryID models.ID
	Tags       []string
	Limit      int
}

func limitParam(v url.Values, limit int) url.Values {
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	return v
}

func (f *Feeds) LoadPopular(ctx context.Context, limit int) error {
	return f.Popular.FetchAllAt(ctx, "/articles/popular", limitParam(url.Values{}, limit))
}

func (f *Feeds) LoadRelated(ctx context.Context, q RelatedQuery) error {
	v := url.Values{}
	if q.ArticleID != "" {
		v.Set("articleId", string(q.ArticleID))
	}
	if q.CategoryID != "" {
		v.Set("categoryId", string(q.CategoryID))
	}
	if len(q.Tags) > 0 {
		v.Set("tags", strings.Join(q.Tags, ","))
	}
	return f.Related.FetchAllAt(ctx, "/articles/related", limitParam(v, q.Limit))
}

func (f *Feeds) LoadSearch(ctx context.Context, query string) error {
	return f.Search.FetchAllAt(ctx, "/articles/search", url.Values{"q": {query}})
}

func (f *Feeds) LoadByUser(ctx context.Context, userID models.ID) error {
	return f.ByUser.FetchAllAt(ctx, "/users/"+url.PathEscape(string(userID))+"/articles", nil)
}
