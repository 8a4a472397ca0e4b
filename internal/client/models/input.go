package models

import (
	"errors"
	"regexp"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Validatable is implemented by inputs checked before any network call.
type Validatable interface {
	Validate() error
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Email, validation.Required, is.Email),
		validation.Field(&c.Password, validation.Required),
	)
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

func (r Registration) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required,
			validation.Length(3, 20),
			validation.Match(usernamePattern).Error("may contain only letters, digits and underscores"),
		),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(8, 0),
			validation.By(strongPassword),
		),
	)
}

func strongPassword(value interface{}) error {
	s, _ := value.(string)
	var digit, upper bool
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	if !digit || !upper {
		return errors.New("must contain a digit and an uppercase letter")
	}
	return nil
}

type ArticleInput struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Excerpt    string   `json:"excerpt,omitempty"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	CategoryID ID       `json:"categoryId,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Status     string   `json:"status,omitempty"`
	Featured   bool     `json:"featured,omitempty"`
}

func (a ArticleInput) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&a.Content, validation.Required),
		validation.Field(&a.ImageURL, is.URL),
		validation.Field(&a.Status, validation.In("draft", "published")),
	)
}

type ThreadInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category,omitempty"`
}

func (t ThreadInput) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Title, validation.Required, validation.Length(3, 200)),
		validation.Field(&t.Content, validation.Required),
	)
}

type CommentInput struct {
	Content string `json:"content"`
}

func (c CommentInput) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Content, validation.Required, validation.Length(1, 2000)),
	)
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (c CategoryInput) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Name, validation.Required, validation.Length(2, 50)),
	)
}

type RoleInput struct {
	Role string `json:"role"`
}

func (r RoleInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required, validation.In("user", "admin")),
	)
}
