package transport

import (
	"regexp"
	"strings"
	"time"

	"github.com/techgit41/Advanced-Todo-App/repository"
	"github.com/techgit41/Advanced-Todo-App/usecase/todo"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate returns per-field messages; an empty map means the request is
// well-formed.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if len(r.Username) < 3 {
		errs["username"] = "username must be at least 3 characters"
	} else if !usernameRe.MatchString(r.Username) {
		errs["username"] = "username may only contain letters, numbers and underscores"
	}
	if !emailRe.MatchString(r.Email) {
		errs["email"] = "valid email required"
	}
	if len(r.Password) < 6 {
		errs["password"] = "password must be at least 6 characters"
	}
	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.Email == "" {
		errs["email"] = "email is required"
	}
	if r.Password == "" {
		errs["password"] = "password is required"
	}
	return errs
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r ChangePasswordRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if r.CurrentPassword == "" {
		errs["currentPassword"] = "current password is required"
	}
	if len(r.NewPassword) < 6 {
		errs["newPassword"] = "new password must be at least 6 characters"
	}
	return errs
}

type CreateTodoRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"dueDate"`
	Completed   bool     `json:"completed"`
	Tags        []string `json:"tags"`
}

// ToInput converts the request into a use-case input, parsing the optional
// RFC 3339 due date.
func (r CreateTodoRequest) ToInput() (todo.CreateInput, error) {
	input := todo.CreateInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Priority:    r.Priority,
		Completed:   r.Completed,
		Tags:        r.Tags,
	}
	if r.DueDate != "" {
		due, err := time.Parse(time.RFC3339, r.DueDate)
		if err != nil {
			return input, err
		}
		input.DueDate = &due
	}
	return input, nil
}

// UpdateTodoRequest holds a partial update; nil fields were absent from the
// request body and are left untouched. An empty dueDate string clears the
// stored due date.
type UpdateTodoRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Priority    *string   `json:"priority"`
	DueDate     *string   `json:"dueDate"`
	Completed   *bool     `json:"completed"`
	Tags        *[]string `json:"tags"`
}

// ToPatch converts the request into a repository patch.
func (r UpdateTodoRequest) ToPatch() (repository.TodoPatch, error) {
	patch := repository.TodoPatch{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Priority:    r.Priority,
		Completed:   r.Completed,
	}
	if r.DueDate != nil {
		patch.HasDueDate = true
		if trimmed := strings.TrimSpace(*r.DueDate); trimmed != "" {
			due, err := time.Parse(time.RFC3339, trimmed)
			if err != nil {
				return patch, err
			}
			patch.DueDate = &due
		}
	}
	if r.Tags != nil {
		patch.HasTags = true
		patch.Tags = *r.Tags
	}
	return patch, nil
}
