package models

type Article struct {
	ID           ID        `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug,omitempty"`
	Excerpt      string    `json:"excerpt"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"imageUrl"`
	Category     string    `json:"category"`
	CategoryID   ID        `json:"categoryId,omitempty"`
	Tags         []string  `json:"tags"`
	Author       Author    `json:"author"`
	PublishedAt  string    `json:"publishedAt,omitempty"`
	DateLabel    string    `json:"dateLabel"`
	Status       string    `json:"status,omitempty"`
	Featured     bool      `json:"featured"`
	Views        int       `json:"views"`
	Likes        int       `json:"likes"`
	CommentCount int       `json:"commentCount"`
	Comments     []Comment `json:"comments"`
}

func (a Article) EntityID() ID { return a.ID }

func (a Article) WithComment(c Comment) Article {
	a.Comments = appendComment(a.Comments, c)
	a.CommentCount++
	return a
}

func (a Article) WithoutComment(id ID) (Article, bool) {
	var ok bool
	a.Comments, ok = dropComment(a.Comments, id)
	if ok {
		a.CommentCount = max(a.CommentCount-1, 0)
	}
	return a, ok
}

func (a Article) WithCommentCount(delta int) Article {
	a.CommentCount = max(a.CommentCount+delta, 0)
	return a
}

type Thread struct {
	ID           ID        `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Category     string    `json:"category"`
	Author       Author    `json:"author"`
	CreatedAt    string    `json:"createdAt,omitempty"`
	DateLabel    string    `json:"dateLabel"`
	Views        int       `json:"views"`
	CommentCount int       `json:"commentCount"`
	Comments     []Comment `json:"comments"`
}

func (t Thread) EntityID() ID { return t.ID }

func (t Thread) WithComment(c Comment) Thread {
	t.Comments = appendComment(t.Comments, c)
	t.CommentCount++
	return t
}

func (t Thread) WithoutComment(id ID) (Thread, bool) {
	var ok bool
	t.Comments, ok = dropComment(t.Comments, id)
	if ok {
		t.CommentCount = max(t.CommentCount-1, 0)
	}
	return t, ok
}

func (t Thread) WithCommentCount(delta int) Thread {
	t.CommentCount = max(t.CommentCount+delta, 0)
	return t
}

// appendComment returns a new slice; the input backing array is shared with
// other snapshots and must not be written.
func appendComment(list []Comment, c Comment) []Comment {
	out := make([]Comment, 0, len(list)+1)
	out = append(out, list...)
	return append(out, c)
}

func dropComment(list []Comment, id ID) ([]Comment, bool) {
	out := make([]Comment, 0, len(list))
	found := false
	for _, c := range list {
		if c.ID == id {
			found = true
			continue
		}
		out = append(out, c)
	}
	return out, found
}
