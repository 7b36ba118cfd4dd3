package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"pawhaven/internal/db"
	"pawhaven/internal/entities"
)

type fakeUserRepo struct {
	users  map[string]*db.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*db.User{}, nextID: 1}
}

func (f *fakeUserRepo) GetByEmail(email string) (*db.User, error) {
	return f.users[email], nil
}

func (f *fakeUserRepo) GetByID(id int) (*db.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CreateUser(name, email, password, phone, role string) (int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	id := f.nextID
	f.nextID++
	f.users[email] = &db.User{ID: id, Name: name, Email: email, PasswordHash: string(hash), Phone: phone, Role: role}
	return id, nil
}

func (f *fakeUserRepo) UpdateProfile(id int, name, phone string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.Name = name
			u.Phone = phone
			return nil
		}
	}
	return nil
}

type fakeTokenStore struct {
	revoked map[string]bool
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{revoked: map[string]bool{}}
}

func (f *fakeTokenStore) Revoke(_ context.Context, jti string, _ time.Duration) error {
	f.revoked[jti] = true
	return nil
}

func (f *fakeTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], nil
}

const testSecret = "test-secret"

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, newFakeTokenStore(), testSecret)

	id, err := svc.Register(entities.RegisterRequest{
		Name: "Marta", Email: "marta@example.com", Password: "hunter22", Phone: "+390000000",
	})
	require.NoError(t, err)
	require.Equal(t, 1, id)

	_, err = svc.Register(entities.RegisterRequest{
		Name: "Marta", Email: "marta@example.com", Password: "other", Phone: "",
	})
	require.Error(t, err)

	tokenString, err := svc.Login("marta@example.com", "hunter22")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, "marta@example.com", claims["email"])
	require.Equal(t, "user", claims["role"])
	require.NotEmpty(t, claims["jti"])

	_, err = svc.Login("marta@example.com", "wrong")
	require.Error(t, err)
	_, err = svc.Login("nobody@example.com", "hunter22")
	require.Error(t, err)
}

func TestAuthService_LogoutRevokesToken(t *testing.T) {
	repo := newFakeUserRepo()
	tokens := newFakeTokenStore()
	svc := NewAuthService(repo, tokens, testSecret)

	_, err := svc.Register(entities.RegisterRequest{
		Name: "Marta", Email: "marta@example.com", Password: "hunter22",
	})
	require.NoError(t, err)

	tokenString, err := svc.Login("marta@example.com", "hunter22")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokenString))

	token, _ := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	jti := token.Claims.(jwt.MapClaims)["jti"].(string)
	revoked, err := tokens.IsRevoked(context.Background(), jti)
	require.NoError(t, err)
	require.True(t, revoked)

	require.Error(t, svc.Logout(context.Background(), "not-a-token"))
}
