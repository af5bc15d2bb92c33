package utils

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"brytashop-be/internal/auth"

	"github.com/stretchr/testify/assert"
)

func TestUserContext(t *testing.T) {
	t.Run("SetUserContext and getters", func(t *testing.T) {
		perms := []auth.Permission{auth.PermissionUser, auth.PermissionItemCreate}
		ctx := SetUserContext(context.Background(), 100, "user@example.com", perms)

		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, uint(100), id)
		assert.Equal(t, "user@example.com", GetUserEmailFromContext(ctx))
		assert.Equal(t, perms, GetUserPermissionsFromContext(ctx))
	})

	t.Run("Empty context", func(t *testing.T) {
		_, ok := GetUserIDFromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, GetUserPermissionsFromContext(context.Background()))
	})

	t.Run("Zero id is anonymous", func(t *testing.T) {
		ctx := SetUserContext(context.Background(), 0, "", nil)
		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestGetActorFromContext(t *testing.T) {
	ctx := SetUserContext(context.Background(), 7, "a@b.c", []auth.Permission{auth.PermissionAdmin})

	actor, ok := GetActorFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, auth.Actor{ID: 7, Email: "a@b.c", Permissions: []auth.Permission{auth.PermissionAdmin}}, actor)

	_, ok = GetActorFromContext(context.Background())
	assert.False(t, ok)
}

func TestToUint(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  uint
		expectErr bool
	}{
		{"Valid number", "123", 123, false},
		{"Zero", "0", 0, false},
		{"Negative number", "-1", 0, true},
		{"Non-numeric string", "abc", 0, true},
		{"Empty string", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ToUint(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestStrPtr(t *testing.T) {
	assert.Equal(t, "x", *StrPtr("x"))
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "error message", http.StatusBadRequest)

	resp := w.Result()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]string
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "error message", body["error"])
}
