package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"tutortribe/internal/db"
)

const (
	testSecret = "test-secret"
	testDomain = "@pesu.pes.edu"
	testTTL    = 30 * time.Minute
)

type fakeUserRepo struct {
	users   map[string]*db.User
	lookups int
}

func (f *fakeUserRepo) GetByUsername(username string) (*db.User, error) {
	f.lookups++
	return f.users[username], nil
}

func (f *fakeUserRepo) GetByID(id int) (*db.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListUsers() ([]db.User, error) {
	var out []db.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{users: map[string]*db.User{
		"tutor@pesu.pes.edu": {
			ID:           7,
			Username:     "tutor@pesu.pes.edu",
			PasswordHash: hashPassword(t, "secret-pw"),
			Role:         db.RoleTutor,
		},
	}}
	return NewAuthService(repo, testSecret, testTTL, testDomain), repo
}

func TestLoginRejectsForeignDomainBeforeLookup(t *testing.T) {
	svc, repo := newAuthFixture(t)

	_, err := svc.Login("someone@gmail.com", "whatever")

	assert.ErrorIs(t, err, ErrDomainNotAllowed)
	assert.Equal(t, 0, repo.lookups, "store must not be touched for foreign domains")
}

func TestLoginDomainCheckIsCaseInsensitive(t *testing.T) {
	svc, repo := newAuthFixture(t)

	// Passes the domain gate despite the uppercase suffix; the exact-match
	// lookup then misses, so credentials fail.
	_, err := svc.Login("tutor@PESU.PES.EDU", "secret-pw")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, repo.lookups)
}

func TestLoginUnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, unknownErr := svc.Login("nobody@pesu.pes.edu", "secret-pw")
	_, wrongPwErr := svc.Login("tutor@pesu.pes.edu", "not-the-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongPwErr, "failure modes must be indistinguishable")
}

func TestLoginIssuesTokenPair(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.Login("tutor@pesu.pes.edu", "secret-pw")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "read write", resp.Scope)
	assert.Equal(t, int(testTTL.Seconds()), resp.ExpiresIn)
	assert.Equal(t, 7, resp.User.ID)
	assert.Equal(t, "tutor@pesu.pes.edu", resp.User.Username)
	assert.Equal(t, db.RoleTutor, resp.User.Role)

	access := parseToken(t, resp.AccessToken)
	assert.Equal(t, float64(7), access["sub"])
	assert.Equal(t, "tutor@pesu.pes.edu", access["username"])
	assert.Equal(t, "tutor", access["role"])
	exp, _ := access["exp"].(float64)
	assert.InDelta(t, time.Now().Add(testTTL).Unix(), exp, 5)

	refresh := parseToken(t, resp.RefreshToken)
	assert.Equal(t, float64(7), refresh["sub"])
	assert.NotContains(t, refresh, "username")
	assert.NotContains(t, refresh, "role")
	refreshExp, _ := refresh["exp"].(float64)
	assert.InDelta(t, time.Now().Add(refreshTokenTTL).Unix(), refreshExp, 5)
}

func parseToken(t *testing.T, raw string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}
