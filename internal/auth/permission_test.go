package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name    string
		have    []Permission
		allowed []Permission
		wantErr bool
	}{
		{"admin allowed", []Permission{PermissionUser, PermissionAdmin}, []Permission{PermissionAdmin, PermissionPermissionUpdate}, false},
		{"second allowed matches", []Permission{PermissionPermissionUpdate}, []Permission{PermissionAdmin, PermissionPermissionUpdate}, false},
		{"no overlap", []Permission{PermissionUser}, []Permission{PermissionAdmin, PermissionItemDelete}, true},
		{"no permissions at all", nil, []Permission{PermissionAdmin}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HasPermission(tt.have, tt.allowed...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInsufficientPermissions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHasPermission_Message(t *testing.T) {
	err := HasPermission([]Permission{PermissionUser}, PermissionAdmin, PermissionPermissionUpdate)
	assert.EqualError(t, err,
		"you do not have sufficient permissions: ADMIN, PERMISSIONUPDATE. you have: USER")
}

func TestActor_Can(t *testing.T) {
	a := Actor{ID: 1, Permissions: []Permission{PermissionItemDelete}}
	assert.True(t, a.Can(PermissionAdmin, PermissionItemDelete))
	assert.False(t, a.Can(PermissionAdmin))
}

func TestParsePermissions(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		perms, err := ParsePermissions([]string{"admin", " ITEMCREATE "})
		assert.NoError(t, err)
		assert.Equal(t, []Permission{PermissionAdmin, PermissionItemCreate}, perms)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := ParsePermissions([]string{"USER", "ROOT"})
		assert.ErrorIs(t, err, ErrInvalidPermission)
	})
}
