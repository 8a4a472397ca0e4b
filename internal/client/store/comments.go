package store

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/courtside/internal/client/gateway"
	"github.com/dmitrijs2005/courtside/internal/client/models"
	"github.com/dmitrijs2005/courtside/internal/client/normalize"
)

func commentsPath[T models.Identifiable](s *Store[T], parentID models.ID) string {
	return s.itemPath(parentID) + "/comments"
}

// AddComment posts a comment on parentID. The comment is appended to
// Current when it is the parent and the comment counter of the matching
// list entry is incremented. A comment returned without an author is
// attributed to the signed-in user.
func AddComment[T models.Commentable[T]](ctx context.Context, s *Store[T], parentID models.ID, in models.CommentInput) (models.Comment, error) {
	var c models.Comment
	if err := validate(in); err != nil {
		return c, s.fail(ctx, err)
	}
	s.begin("")

	resp, err := s.doer.Send(ctx, gateway.Post(commentsPath(s, parentID), in))
	if err == nil {
		var raw any
		if raw, err = resp.JSON(); err == nil {
			c = s.opts.norm.Comment(normalize.Entity(raw, "comment"))
			if c.Content == "" {
				c.Content = in.Content
			}
			if c.ParentID == "" {
				c.ParentID = parentID
			}
			if c.Author.ID == "" && c.Author.Username == "" && s.identity != nil {
				if u := s.identity.User(); u != nil {
					c.Author = u.Author()
				}
			}
		}
	}

	s.finish(ctx, "", 0, err, func(st *State[T]) {
		if st.Current != nil && (*st.Current).EntityID() == parentID {
			cur := (*st.Current).WithComment(c)
			st.Current = &cur
		}
		if i := indexOf(st.Items, parentID); i >= 0 {
			st.Items[i] = st.Items[i].WithCommentCount(1)
		}
	})
	return c, err
}

// DeleteComment removes commentID from parentID and updates Current and
// the list counter accordingly.
func DeleteComment[T models.Commentable[T]](ctx context.Context, s *Store[T], parentID, commentID models.ID) error {
	s.begin("")

	path := commentsPath(s, parentID) + "/" + url.PathEscape(string(commentID))
	_, err := s.doer.Send(ctx, gateway.Delete(path))

	s.finish(ctx, "", 0, err, func(st *State[T]) {
		if st.Current != nil && (*st.Current).EntityID() == parentID {
			cur, _ := (*st.Current).WithoutComment(commentID)
			st.Current = &cur
		}
		if i := indexOf(st.Items, parentID); i >= 0 {
			st.Items[i] = st.Items[i].WithCommentCount(-1)
		}
	})
	return err
}
