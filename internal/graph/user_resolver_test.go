package graph

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"brytashop-be/internal/auth"
	"brytashop-be/internal/graph/model"
	"brytashop-be/internal/transport"
	"brytashop-be/internal/user"
	"brytashop-be/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func httpCtx() (context.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/query", nil)
	return transport.WithHTTP(context.Background(), r, w), w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	return nil
}

func TestMutationResolver_Signup(t *testing.T) {
	t.Run("SetsCookie", func(t *testing.T) {
		svc := new(MockUserService)
		mr := &mutationResolver{&Resolver{UserSvc: svc}}
		ctx, w := httpCtx()

		svc.On("Signup", ctx, user.SignupParams{Email: "a@b.c", Name: "A", Password: "pw"}).
			Return(&user.User{ID: 4, Email: "a@b.c", Name: "A", Permissions: []auth.Permission{auth.PermissionUser}}, "jwt-token", nil)

		res, err := mr.Signup(ctx, model.SignupInput{Email: "a@b.c", Name: "A", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, "4", res.ID)
		assert.Equal(t, []model.Permission{model.PermissionUser}, res.Permissions)

		c := sessionCookie(w)
		require.NotNil(t, c)
		assert.Equal(t, "jwt-token", c.Value)
		assert.True(t, c.HttpOnly)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		svc := new(MockUserService)
		mr := &mutationResolver{&Resolver{UserSvc: svc}}
		ctx, w := httpCtx()
		svc.On("Signup", ctx, mock.Anything).Return(nil, "", user.ErrEmailExists)

		_, err := mr.Signup(ctx, model.SignupInput{Email: "a@b.c"})
		assert.ErrorIs(t, err, user.ErrEmailExists)
		assert.Nil(t, sessionCookie(w))
	})
}

func TestMutationResolver_Signin(t *testing.T) {
	svc := new(MockUserService)
	mr := &mutationResolver{&Resolver{UserSvc: svc}}
	ctx, w := httpCtx()
	svc.On("Signin", ctx, "a@b.c", "pw").Return(&user.User{ID: 4}, "jwt-token", nil)

	res, err := mr.Signin(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "4", res.ID)
	assert.NotNil(t, sessionCookie(w))
}

func TestMutationResolver_Signout(t *testing.T) {
	mr := &mutationResolver{&Resolver{}}
	ctx, w := httpCtx()

	res, err := mr.Signout(ctx)
	require.NoError(t, err)
	assert.Equal(t, "See you soon", *res.Message)

	c := sessionCookie(w)
	require.NotNil(t, c)
	assert.Equal(t, -1, c.MaxAge)
}

func TestMutationResolver_RequestReset(t *testing.T) {
	svc := new(MockUserService)
	mr := &mutationResolver{&Resolver{UserSvc: svc}}
	ctx := context.Background()

	svc.On("RequestReset", ctx, "a@b.c").Return(nil)
	res, err := mr.RequestReset(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "Thanks!", *res.Message)

	svc.On("RequestReset", ctx, "x@b.c").Return(errors.New("no such user found for email x@b.c"))
	_, err = mr.RequestReset(ctx, "x@b.c")
	assert.EqualError(t, err, "no such user found for email x@b.c")
}

func TestMutationResolver_ResetPassword(t *testing.T) {
	svc := new(MockUserService)
	mr := &mutationResolver{&Resolver{UserSvc: svc}}
	ctx, w := httpCtx()

	svc.On("ResetPassword", ctx, user.ResetPasswordParams{ResetToken: "t", Password: "p", ConfirmPassword: "p"}).
		Return(&user.User{ID: 2}, "jwt-token", nil)

	res, err := mr.ResetPassword(ctx, "t", "p", "p")
	require.NoError(t, err)
	assert.Equal(t, "2", res.ID)
	assert.NotNil(t, sessionCookie(w))
}

func TestMutationResolver_UpdatePermissions(t *testing.T) {
	svc := new(MockUserService)
	mr := &mutationResolver{&Resolver{UserSvc: svc}}
	ctx := utils.SetUserContext(context.Background(), 1, "admin@b.c", []auth.Permission{auth.PermissionAdmin})
	actor, _ := utils.GetActorFromContext(ctx)

	svc.On("UpdatePermissions", ctx, actor, uint(9), []auth.Permission{auth.PermissionItemCreate}).
		Return(&user.User{ID: 9, Permissions: []auth.Permission{auth.PermissionItemCreate}}, nil)

	res, err := mr.UpdatePermissions(ctx, []model.Permission{model.PermissionItemcreate}, "9")
	require.NoError(t, err)
	assert.Equal(t, []model.Permission{model.PermissionItemcreate}, res.Permissions)

	_, err = mr.UpdatePermissions(ctx, nil, "abc")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestQueryResolver_Me(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		qr := &queryResolver{&Resolver{UserSvc: new(MockUserService)}}
		res, err := qr.Me(context.Background())
		assert.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("SignedIn", func(t *testing.T) {
		svc := new(MockUserService)
		qr := &queryResolver{&Resolver{UserSvc: svc}}
		ctx := utils.SetUserContext(context.Background(), 3, "a@b.c", nil)
		svc.On("GetByID", ctx, uint(3)).Return(&user.User{ID: 3, Name: "Ann"}, nil)

		res, err := qr.Me(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ann", res.Name)
	})
}

func TestQueryResolver_Users(t *testing.T) {
	svc := new(MockUserService)
	qr := &queryResolver{&Resolver{UserSvc: svc}}
	ctx := utils.SetUserContext(context.Background(), 1, "", []auth.Permission{auth.PermissionAdmin})
	svc.On("List", ctx, mock.Anything).Return([]*user.User{{ID: 1}, {ID: 2}}, nil)

	res, err := qr.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, res, 2)
}

func TestHasPermissionDirective(t *testing.T) {
	next := func(ctx context.Context) (interface{}, error) { return "ok", nil }
	allowed := []model.Permission{model.PermissionAdmin, model.PermissionPermissionupdate}

	_, err := HasPermissionDirective(context.Background(), nil, next, allowed)
	assert.ErrorIs(t, err, auth.ErrNotLoggedIn)

	ctx := utils.SetUserContext(context.Background(), 1, "", []auth.Permission{auth.PermissionUser})
	_, err = HasPermissionDirective(ctx, nil, next, allowed)
	assert.EqualError(t, err, "you do not have sufficient permissions: ADMIN, PERMISSIONUPDATE. you have: USER")

	ctx = utils.SetUserContext(context.Background(), 1, "", []auth.Permission{auth.PermissionPermissionUpdate})
	res, err := HasPermissionDirective(ctx, nil, next, allowed)
	require.NoError(t, err)
	assert.Equal(t, "ok", res)
}
