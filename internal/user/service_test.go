package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) (*User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByResetToken(ctx context.Context, token string, at time.Time) (*User, error) {
	args := m.Called(ctx, token, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) SetResetToken(ctx context.Context, id uint, token string, expiry time.Time) error {
	return m.Called(ctx, id, token, expiry).Error(0)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id uint, hash, resetToken string) (*User, error) {
	args := m.Called(ctx, id, hash, resetToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) UpdatePermissions(ctx context.Context, id uint, perms []auth.Permission) (*User, error) {
	args := m.Called(ctx, id, perms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg mail.Message) error {
	return m.Called(ctx, msg).Error(0)
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, mailer mail.Mailer) *service {
	svc := NewService(repo, auth.NewTokenManager("testsecret"), mailer, "http://shop.test/").(*service)
	svc.now = func() time.Time { return fixedNow }
	svc.newResetToken = func() (string, error) { return "deadbeef", nil }
	return svc
}

func TestService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))

		repo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Email == "john@example.com" &&
				u.Name == "John" &&
				CheckPasswordHash("secret", u.Password) &&
				len(u.Permissions) == 1 && u.Permissions[0] == auth.PermissionUser
		})).Return(&User{ID: 7, Email: "john@example.com"}, nil)

		u, token, err := svc.Signup(ctx, SignupParams{Email: "  John@Example.COM ", Name: "John", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, uint(7), u.ID)
		assert.NotEmpty(t, token)

		claims, err := auth.NewTokenManager("testsecret").Parse(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.UserID)
		repo.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))
		repo.On("Create", ctx, mock.Anything).Return(nil, ErrEmailExists)

		_, _, err := svc.Signup(ctx, SignupParams{Email: "a@b.c", Name: "A", Password: "x"})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockMailer))
		_, _, err := svc.Signup(ctx, SignupParams{Email: "a@b.c"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestService_Signin(t *testing.T) {
	ctx := context.Background()
	hash, err := HashPassword("secret")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))
		repo.On("FindByEmail", ctx, "john@example.com").Return(&User{ID: 2, Password: hash}, nil)

		u, token, err := svc.Signin(ctx, "John@example.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, uint(2), u.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))
		repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, ErrUserNotFound)

		_, _, err := svc.Signin(ctx, "ghost@example.com", "secret")
		assert.EqualError(t, err, "no such user found for email ghost@example.com")
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))
		repo.On("FindByEmail", ctx, "john@example.com").Return(&User{ID: 2, Password: hash}, nil)

		_, _, err := svc.Signin(ctx, "john@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})
}

func TestService_RequestReset(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		mailer := new(MockMailer)
		svc := newTestService(repo, mailer)

		repo.On("FindByEmail", ctx, "john@example.com").Return(&User{ID: 3, Email: "john@example.com"}, nil)
		repo.On("SetResetToken", ctx, uint(3), "deadbeef", fixedNow.Add(time.Hour)).Return(nil)
		mailer.On("Send", ctx, mock.MatchedBy(func(m mail.Message) bool {
			return m.To == "john@example.com" &&
				strings.Contains(m.HTML, "http://shop.test/reset?resetToken=deadbeef")
		})).Return(nil)

		require.NoError(t, svc.RequestReset(ctx, "john@example.com"))
		repo.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))
		repo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, ErrUserNotFound)

		err := svc.RequestReset(ctx, "ghost@example.com")
		assert.EqualError(t, err, "no such user found for email ghost@example.com")
	})

	t.Run("MailFailure", func(t *testing.T) {
		repo := new(MockRepository)
		mailer := new(MockMailer)
		svc := newTestService(repo, mailer)

		repo.On("FindByEmail", ctx, "john@example.com").Return(&User{ID: 3, Email: "john@example.com"}, nil)
		repo.On("SetResetToken", ctx, uint(3), "deadbeef", mock.Anything).Return(nil)
		mailer.On("Send", ctx, mock.Anything).Return(errors.New("smtp down"))

		err := svc.RequestReset(ctx, "john@example.com")
		assert.ErrorContains(t, err, "smtp down")
	})
}

func TestService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("Mismatch", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockMailer))
		_, _, err := svc.ResetPassword(ctx, ResetPasswordParams{ResetToken: "t", Password: "a", ConfirmPassword: "b"})
		assert.ErrorIs(t, err, ErrPasswordMismatch)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))
		repo.On("FindByResetToken", ctx, "t", fixedNow).Return(nil, ErrInvalidResetToken)

		_, _, err := svc.ResetPassword(ctx, ResetPasswordParams{ResetToken: "t", Password: "a", ConfirmPassword: "a"})
		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))
		repo.On("FindByResetToken", ctx, "t", fixedNow).Return(&User{ID: 5}, nil)
		repo.On("UpdatePassword", ctx, uint(5), mock.MatchedBy(func(h string) bool {
			return CheckPasswordHash("newpass", h)
		}), "t").Return(&User{ID: 5}, nil)

		u, token, err := svc.ResetPassword(ctx, ResetPasswordParams{ResetToken: "t", Password: "newpass", ConfirmPassword: "newpass"})
		require.NoError(t, err)
		assert.Equal(t, uint(5), u.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("TokenConsumedConcurrently", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))
		repo.On("FindByResetToken", ctx, "t", fixedNow).Return(&User{ID: 5}, nil)
		repo.On("UpdatePassword", ctx, uint(5), mock.Anything, "t").Return(nil, ErrInvalidResetToken)

		_, token, err := svc.ResetPassword(ctx, ResetPasswordParams{ResetToken: "t", Password: "newpass", ConfirmPassword: "newpass"})
		assert.ErrorIs(t, err, ErrInvalidResetToken)
		assert.Empty(t, token)
	})
}

func TestService_UpdatePermissions(t *testing.T) {
	ctx := context.Background()
	admin := auth.Actor{ID: 1, Permissions: []auth.Permission{auth.PermissionAdmin}}

	t.Run("NotLoggedIn", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockMailer))
		_, err := svc.UpdatePermissions(ctx, auth.Actor{}, 2, nil)
		assert.ErrorIs(t, err, auth.ErrNotLoggedIn)
	})

	t.Run("Forbidden", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockMailer))
		actor := auth.Actor{ID: 3, Permissions: []auth.Permission{auth.PermissionUser}}
		_, err := svc.UpdatePermissions(ctx, actor, 2, []auth.Permission{auth.PermissionAdmin})
		assert.ErrorIs(t, err, auth.ErrInsufficientPermissions)
	})

	t.Run("InvalidPermission", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockMailer))
		_, err := svc.UpdatePermissions(ctx, admin, 2, []auth.Permission{"ROOT"})
		assert.ErrorIs(t, err, auth.ErrInvalidPermission)
	})

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))
		want := []auth.Permission{auth.PermissionUser, auth.PermissionItemCreate}
		repo.On("UpdatePermissions", ctx, uint(2), want).Return(&User{ID: 2, Permissions: want}, nil)

		u, err := svc.UpdatePermissions(ctx, admin, 2,
			[]auth.Permission{auth.PermissionUser, auth.PermissionItemCreate, auth.PermissionUser})
		require.NoError(t, err)
		assert.Equal(t, want, u.Permissions)
	})

	t.Run("NormalizesCase", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))
		want := []auth.Permission{auth.PermissionItemCreate}
		repo.On("UpdatePermissions", ctx, uint(2), want).Return(&User{ID: 2, Permissions: want}, nil)

		_, err := svc.UpdatePermissions(ctx, admin, 2, []auth.Permission{" itemcreate "})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Forbidden", func(t *testing.T) {
		svc := newTestService(new(MockRepository), new(MockMailer))
		_, err := svc.List(ctx, auth.Actor{ID: 1, Permissions: []auth.Permission{auth.PermissionUser}})
		assert.ErrorIs(t, err, auth.ErrInsufficientPermissions)
	})

	t.Run("PermissionUpdateMayList", func(t *testing.T) {
		repo := new(MockRepository)
		svc := newTestService(repo, new(MockMailer))
		repo.On("List", ctx).Return([]*User{{ID: 1}, {ID: 2}}, nil)

		users, err := svc.List(ctx, auth.Actor{ID: 1, Permissions: []auth.Permission{auth.PermissionPermissionUpdate}})
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func TestRandomResetToken(t *testing.T) {
	tok, err := randomResetToken()
	require.NoError(t, err)
	assert.Len(t, tok, 40)
}
