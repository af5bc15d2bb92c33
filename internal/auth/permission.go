package auth

import (
	"errors"
	"fmt"
	"strings"
)

type Permission string

const (
	PermissionAdmin            Permission = "ADMIN"
	PermissionUser             Permission = "USER"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

var AllPermissions = []Permission{
	PermissionAdmin,
	PermissionUser,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

var (
	ErrNotLoggedIn             = errors.New("you must be logged in to do that")
	ErrInsufficientPermissions = errors.New("you do not have sufficient permissions")
	ErrInvalidPermission       = errors.New("invalid permission")
)

func (p Permission) IsValid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID          uint
	Email       string
	Permissions []Permission
}

func (a Actor) Can(allowed ...Permission) bool {
	return HasPermission(a.Permissions, allowed...) == nil
}

// HasPermission succeeds when have and allowed share at least one permission.
func HasPermission(have []Permission, allowed ...Permission) error {
	for _, p := range have {
		for _, a := range allowed {
			if p == a {
				return nil
			}
		}
	}
	return fmt.Errorf("%w: %s. you have: %s",
		ErrInsufficientPermissions, join(allowed), join(have))
}

// ParsePermissions validates raw permission names.
func ParsePermissions(raw []string) ([]Permission, error) {
	out := make([]Permission, 0, len(raw))
	for _, r := range raw {
		p := Permission(strings.ToUpper(strings.TrimSpace(r)))
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPermission, r)
		}
		out = append(out, p)
	}
	return out, nil
}

func join(ps []Permission) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = string(p)
	}
	return strings.Join(parts, ", ")
}
