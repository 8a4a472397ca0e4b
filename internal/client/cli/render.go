package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/courtside/internal/client/models"
)

func printArticleLine(w io.Writer, a models.Article) {
	fmt.Fprintf(w, "[%s] %s | %s | %s | %s | %d comments\n",
		a.ID, a.Title, a.Category, a.Author.DisplayName, a.DateLabel, a.CommentCount)
}

func printThreadLine(w io.Writer, t models.Thread) {
	fmt.Fprintf(w, "[%s] %s | %s | %s | %d replies\n",
		t.ID, t.Title, t.Category, t.Author.DisplayName, t.CommentCount)
}

func printComments(w io.Writer, comments []models.Comment) {
	if len(comments) == 0 {
		fmt.Fprintln(w, "No comments yet.")
		return
	}
	for _, c := range comments {
		fmt.Fprintf(w, "  #%s %s (%s): %s\n", c.ID, c.Author.DisplayName, c.DateLabel, c.Content)
	}
}

func printArticle(w io.Writer, a models.Article) {
	fmt.Fprintln(w, a.Title)
	fmt.Fprintf(w, "%s | by %s | %s\n", a.Category, a.Author.DisplayName, a.DateLabel)
	if len(a.Tags) > 0 {
		fmt.Fprintln(w, "tags:", strings.Join(a.Tags, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.Content)
	fmt.Fprintln(w)
	printComments(w, a.Comments)
}

func printThread(w io.Writer, t models.Thread) {
	fmt.Fprintln(w, t.Title)
	fmt.Fprintf(w, "%s | by %s | %s\n", t.Category, t.Author.DisplayName, t.DateLabel)
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.Content)
	fmt.Fprintln(w)
	printComments(w, t.Comments)
}
