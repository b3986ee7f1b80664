package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/ghugn/chem-class-git/internal/domain/auth"
	"github.com/ghugn/chem-class-git/internal/domain/model"
	"github.com/ghugn/chem-class-git/internal/mocks"
	"github.com/ghugn/chem-class-git/internal/ports"
	"github.com/ghugn/chem-class-git/internal/testutil"
)

func newAuthService(t *testing.T) (*AuthService, *mocks.MockAccountAPI) {
	t.Helper()
	ctrl := gomock.NewController(t)
	accounts := mocks.NewMockAccountAPI(ctrl)
	return NewAuthService(AuthServiceOptions{Accounts: accounts, Logger: testutil.DiscardLogger()}), accounts
}

func TestNewAuthService_RequiresAccounts(t *testing.T) {
	assert.Panics(t, func() { NewAuthService(AuthServiceOptions{}) })
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		location string
	}{
		{name: "admin goes to admin home", role: "ADMIN", location: "/admin"},
		{name: "student goes to student home", role: "STUDENT", location: "/student"},
		{name: "unknown role goes back to login", role: "PARENT", location: "/login"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, accounts := newAuthService(t)
			creds := ports.Credentials{Email: "a@example.com", Password: "secret"}
			accounts.EXPECT().Login(gomock.Any(), creds).Return(ports.AuthResult{
				Token: "tok",
				User:  domainauth.User{ID: "1", Email: creds.Email, Role: tt.role},
			}, nil)

			sess, _ := newMemSession(t, nil)
			res, err := svc.Login(context.Background(), sess, ports.Credentials{Email: "  a@example.com ", Password: "secret"})
			require.NoError(t, err)
			assert.Equal(t, tt.location, res.Location)
			assert.True(t, sess.IsAuthenticated())
		})
	}
}

func TestAuthService_LoginFailureLeavesSessionEmpty(t *testing.T) {
	svc, accounts := newAuthService(t)
	accounts.EXPECT().Login(gomock.Any(), gomock.Any()).Return(ports.AuthResult{}, errors.New("HTTP 401"))

	sess, _ := newMemSession(t, nil)
	_, err := svc.Login(context.Background(), sess, ports.Credentials{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.False(t, sess.IsAuthenticated())
}

func TestAuthService_LoginRequiresCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	sess, _ := newMemSession(t, nil)
	_, err := svc.Login(context.Background(), sess, ports.Credentials{Email: " "})
	require.Error(t, err)
}

func TestAuthService_Register(t *testing.T) {
	svc, accounts := newAuthService(t)
	in := ports.Registration{Email: "b@example.com", Password: "123456", FullName: "Bình", ClassID: "3"}
	accounts.EXPECT().Register(gomock.Any(), in).Return(ports.AuthResult{
		Token: "tok",
		User:  domainauth.User{ID: "2", FullName: "Bình", Role: "STUDENT"},
	}, nil)

	sess, _ := newMemSession(t, nil)
	res, err := svc.Register(context.Background(), sess, in)
	require.NoError(t, err)
	assert.Equal(t, "/student", res.Location)
	role, ok := sess.UserRole()
	assert.True(t, ok)
	assert.Equal(t, domainauth.RoleStudent, role)
}

func TestAuthService_RegistrationClassesDegrades(t *testing.T) {
	svc, accounts := newAuthService(t)
	accounts.EXPECT().RegistrationClasses(gomock.Any()).Return(nil, errors.New("boom"))
	assert.Empty(t, svc.RegistrationClasses(context.Background()))

	accounts.EXPECT().RegistrationClasses(gomock.Any()).Return([]model.Class{{ID: "1", Name: "Hóa 10"}}, nil)
	assert.Len(t, svc.RegistrationClasses(context.Background()), 1)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Run("student keeps phone and merges result", func(t *testing.T) {
		svc, accounts := newAuthService(t)
		sess, _ := newMemSession(t, map[string]string{
			SessionTokenKey: "tok",
			SessionUserKey:  `{"id":1,"full_name":"An","email":"an@example.com","role":"STUDENT"}`,
		})
		in := ports.ProfileUpdate{FullName: "An Nguyễn", Email: "an@example.com", Phone: "0901", CurrentPassword: "old"}
		accounts.EXPECT().UpdateProfile(gomock.Any(), "tok", in).
			Return(map[string]any{"full_name": "An Nguyễn", "phone": "0901"}, nil)

		require.NoError(t, svc.UpdateProfile(context.Background(), sess, in))
		u, ok := sess.User()
		require.True(t, ok)
		assert.Equal(t, "An Nguyễn", u.FullName)
		assert.Equal(t, "STUDENT", u.Role)
	})

	t.Run("admin drops phone", func(t *testing.T) {
		svc, accounts := newAuthService(t)
		sess, _ := newMemSession(t, map[string]string{
			SessionTokenKey: "tok",
			SessionUserKey:  `{"id":1,"role":"ADMIN"}`,
		})
		accounts.EXPECT().UpdateProfile(gomock.Any(), "tok", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, in ports.ProfileUpdate) (map[string]any, error) {
				assert.Empty(t, in.Phone)
				return nil, nil
			})

		require.NoError(t, svc.UpdateProfile(context.Background(), sess, ports.ProfileUpdate{Phone: "0901"}))
	})

	t.Run("api error is returned and session untouched", func(t *testing.T) {
		svc, accounts := newAuthService(t)
		sess, _ := newMemSession(t, map[string]string{
			SessionTokenKey: "tok",
			SessionUserKey:  `{"full_name":"An","role":"STUDENT"}`,
		})
		accounts.EXPECT().UpdateProfile(gomock.Any(), "tok", gomock.Any()).Return(nil, errors.New("wrong password"))

		require.Error(t, svc.UpdateProfile(context.Background(), sess, ports.ProfileUpdate{}))
		u, _ := sess.User()
		assert.Equal(t, "An", u.FullName)
	})

	t.Run("requires a session", func(t *testing.T) {
		svc, _ := newAuthService(t)
		sess, _ := newMemSession(t, nil)
		require.Error(t, svc.UpdateProfile(context.Background(), sess, ports.ProfileUpdate{}))
	})
}

func TestAuthService_Logout(t *testing.T) {
	svc, _ := newAuthService(t)
	sess, store := newMemSession(t, map[string]string{SessionTokenKey: "tok", SessionUserKey: `{"role":"ADMIN"}`})
	require.NoError(t, svc.Logout(context.Background(), sess))
	assert.False(t, sess.IsAuthenticated())
	assert.Equal(t, 0, store.Len())
}
