package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     RegisterRequest
		badKeys []string
	}{
		{
			name: "valid",
			req:  RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"},
		},
		{
			name:    "short username",
			req:     RegisterRequest{Username: "al", Email: "alice@example.com", Password: "secret123"},
			badKeys: []string{"username"},
		},
		{
			name:    "username with spaces",
			req:     RegisterRequest{Username: "alice smith", Email: "alice@example.com", Password: "secret123"},
			badKeys: []string{"username"},
		},
		{
			name:    "bad email",
			req:     RegisterRequest{Username: "alice", Email: "not-an-email", Password: "secret123"},
			badKeys: []string{"email"},
		},
		{
			name:    "short password",
			req:     RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "12345"},
			badKeys: []string{"password"},
		},
		{
			name:    "everything wrong",
			req:     RegisterRequest{},
			badKeys: []string{"username", "email", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			require.Len(t, errs, len(tt.badKeys))
			for _, key := range tt.badKeys {
				require.Contains(t, errs, key)
			}
		})
	}
}

func TestLoginRequestValidate(t *testing.T) {
	t.Parallel()

	require.Empty(t, LoginRequest{Email: "a@b.c", Password: "x"}.Validate())

	errs := LoginRequest{}.Validate()
	require.Contains(t, errs, "email")
	require.Contains(t, errs, "password")
}

func TestChangePasswordRequestValidate(t *testing.T) {
	t.Parallel()

	require.Empty(t, ChangePasswordRequest{CurrentPassword: "old", NewPassword: "longenough"}.Validate())

	errs := ChangePasswordRequest{NewPassword: "short"}.Validate()
	require.Contains(t, errs, "currentPassword")
	require.Contains(t, errs, "newPassword")
}

func TestCreateTodoRequestToInput(t *testing.T) {
	t.Parallel()

	input, err := CreateTodoRequest{Title: "buy milk", DueDate: "2026-04-01T10:00:00Z"}.ToInput()
	require.NoError(t, err)
	require.Equal(t, "buy milk", input.Title)
	require.NotNil(t, input.DueDate)
	require.Equal(t, time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC), input.DueDate.UTC())

	input, err = CreateTodoRequest{Title: "no due date"}.ToInput()
	require.NoError(t, err)
	require.Nil(t, input.DueDate)

	_, err = CreateTodoRequest{Title: "bad date", DueDate: "tomorrow"}.ToInput()
	require.Error(t, err)
}

func TestUpdateTodoRequestToPatch(t *testing.T) {
	t.Parallel()

	title := "renamed"
	empty := ""
	when := "2026-04-01T10:00:00Z"
	tags := []string{"home"}

	patch, err := UpdateTodoRequest{Title: &title}.ToPatch()
	require.NoError(t, err)
	require.Equal(t, "renamed", *patch.Title)
	require.Nil(t, patch.Description)
	require.False(t, patch.HasDueDate)
	require.False(t, patch.HasTags)

	patch, err = UpdateTodoRequest{DueDate: &when}.ToPatch()
	require.NoError(t, err)
	require.True(t, patch.HasDueDate)
	require.NotNil(t, patch.DueDate)

	// empty string means "clear the due date"
	patch, err = UpdateTodoRequest{DueDate: &empty}.ToPatch()
	require.NoError(t, err)
	require.True(t, patch.HasDueDate)
	require.Nil(t, patch.DueDate)

	patch, err = UpdateTodoRequest{Tags: &tags}.ToPatch()
	require.NoError(t, err)
	require.True(t, patch.HasTags)
	require.Equal(t, []string{"home"}, patch.Tags)

	bad := "next tuesday"
	_, err = UpdateTodoRequest{DueDate: &bad}.ToPatch()
	require.Error(t, err)
}
