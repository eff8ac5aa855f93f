package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"fintrack/internal/common"
	"fintrack/internal/logging"
	"fintrack/internal/models"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func insertKey(t *testing.T, db *sql.DB, k, v string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO session(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

func getKey(t *testing.T, db *sql.DB, k string) string {
	t.Helper()
	var v string
	err := db.QueryRow(`SELECT value FROM session WHERE key=?`, k).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return ""
	}
	require.NoError(t, err)
	return v
}

func countKeys(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM session`).Scan(&n))
	return n
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ---- fake client ----

// fakeClient implements api.Client for session service unit tests.
type fakeClient struct {
	LoginTokens    *models.AuthTokens
	LoginUser      *models.User
	LoginErr       error
	RegisterTokens *models.AuthTokens
	RegisterUser   *models.User
	RegisterErr    error
	RefreshRet     *models.AuthTokens
	RefreshUser    *models.User
	RefreshErr     error
	ProfileRet     *models.User
	ProfileErr     error
	UpdateRet      *models.User
	UpdateErr      error
	ChangeErr      error
	LogoutErr      error

	LastLoginEmail    string
	LastLoginPassword string
	LastRegisterName  string
	LastRefreshToken  string
	LastSetAccess     string
	LastSetRefresh    string
	SetTokensCalls    int
	LogoutCalls       int
	ChangeCalls       int
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.AuthTokens, *models.User, error) {
	f.LastLoginEmail, f.LastLoginPassword = email, password
	return f.LoginTokens, f.LoginUser, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, name, email, password string, monthlyIncome float64) (*models.AuthTokens, *models.User, error) {
	f.LastRegisterName = name
	return f.RegisterTokens, f.RegisterUser, f.RegisterErr
}

func (f *fakeClient) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, *models.User, error) {
	f.LastRefreshToken = refreshToken
	return f.RefreshRet, f.RefreshUser, f.RefreshErr
}

func (f *fakeClient) Profile(ctx context.Context) (*models.User, error) {
	return f.ProfileRet, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, name, email string) (*models.User, error) {
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	f.ChangeCalls++
	return f.ChangeErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) SetTokens(accessToken, refreshToken string) {
	f.SetTokensCalls++
	f.LastSetAccess, f.LastSetRefresh = accessToken, refreshToken
}

// ---- tests ----

func TestRestore_EmptyStorage_StaysAnonymous(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{}
	s := NewSessionService(fc, db, testLogger())

	s.Restore(context.Background())

	require.Nil(t, s.CurrentUser())
	require.False(t, s.IsAuthenticated())
	require.Equal(t, 0, countKeys(t, db))
}

func TestRestore_ValidRecord_HydratesSession(t *testing.T) {
	db := setupDB(t)
	insertKey(t, db, "user", `{"id":"U1","email":"a@x.com","name":"A","isActive":true}`)
	insertKey(t, db, "access_token", "t1")
	insertKey(t, db, "refresh_token", "r1")

	fc := &fakeClient{}
	s := NewSessionService(fc, db, testLogger())

	s.Restore(context.Background())

	require.True(t, s.IsAuthenticated())
	require.Equal(t, "U1", s.CurrentUser().ID)
	require.Equal(t, "A", s.CurrentUser().Name)
	require.Equal(t, "t1", fc.LastSetAccess)
	require.Equal(t, "r1", fc.LastSetRefresh)
}

func TestRestore_UndefinedLiteral_TreatedAsAbsent(t *testing.T) {
	db := setupDB(t)
	insertKey(t, db, "user", "undefined")
	insertKey(t, db, "access_token", "t1")
	insertKey(t, db, "refresh_token", "r1")

	s := NewSessionService(&fakeClient{}, db, testLogger())
	s.Restore(context.Background())

	require.False(t, s.IsAuthenticated())
	require.Nil(t, s.CurrentUser())
	require.Equal(t, 0, countKeys(t, db), "corrupt record must be fully cleared")
}

func TestRestore_UnparseableUser_ClearsAllKeys(t *testing.T) {
	db := setupDB(t)
	insertKey(t, db, "user", `{"id":`)
	insertKey(t, db, "access_token", "t1")
	insertKey(t, db, "refresh_token", "r1")

	s := NewSessionService(&fakeClient{}, db, testLogger())
	s.Restore(context.Background())

	require.False(t, s.IsAuthenticated())
	require.Equal(t, 0, countKeys(t, db))
}

func TestRestore_PartialRecord_ClearsAllKeys(t *testing.T) {
	db := setupDB(t)
	insertKey(t, db, "access_token", "t1") // token without user

	s := NewSessionService(&fakeClient{}, db, testLogger())
	s.Restore(context.Background())

	require.False(t, s.IsAuthenticated())
	require.Equal(t, 0, countKeys(t, db))
}

func TestLogin_PersistsExactlyThreeKeys(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{
		LoginTokens: &models.AuthTokens{AccessToken: "t1", RefreshToken: "r1"},
		LoginUser:   &models.User{ID: "U1", Name: "A"},
	}
	s := NewSessionService(fc, db, testLogger())
	s.Restore(context.Background())

	user, err := s.Login(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)

	require.Equal(t, "a@x.com", fc.LastLoginEmail)
	require.Equal(t, "pw1", fc.LastLoginPassword)

	require.Equal(t, 3, countKeys(t, db))
	require.Equal(t, "t1", getKey(t, db, "access_token"))
	require.Equal(t, "r1", getKey(t, db, "refresh_token"))

	var stored models.User
	require.NoError(t, json.Unmarshal([]byte(getKey(t, db, "user")), &stored))
	require.Equal(t, *user, stored)

	require.True(t, s.IsAuthenticated())
	require.Equal(t, "U1", s.CurrentUser().ID)
}

func TestLogin_RemoteError_PropagatesAndWritesNothing(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{LoginErr: common.ErrorInvalidCredentials}
	s := NewSessionService(fc, db, testLogger())
	s.Restore(context.Background())

	_, err := s.Login(context.Background(), "a@x.com", "wrong")
	require.ErrorIs(t, err, common.ErrorInvalidCredentials)

	require.False(t, s.IsAuthenticated())
	require.Equal(t, 0, countKeys(t, db))
}

func TestRegister_EstablishesSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{
		RegisterTokens: &models.AuthTokens{AccessToken: "t1", RefreshToken: "r1"},
		RegisterUser:   &models.User{ID: "U2", Name: "B", MonthlyIncome: 2500},
	}
	s := NewSessionService(fc, db, testLogger())
	s.Restore(context.Background())

	user, err := s.Register(context.Background(), "B", "b@x.com", "pw1", 2500)
	require.NoError(t, err)
	require.Equal(t, "B", fc.LastRegisterName)
	require.Equal(t, "U2", user.ID)
	require.True(t, s.IsAuthenticated())
	require.Equal(t, 3, countKeys(t, db))
}

func TestLogout_ServerFailure_StillClearsLocally(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{
		LoginTokens: &models.AuthTokens{AccessToken: "t1", RefreshToken: "r1"},
		LoginUser:   &models.User{ID: "U1", Name: "A"},
		LogoutErr:   errors.New("connection refused"),
	}
	s := NewSessionService(fc, db, testLogger())
	s.Restore(context.Background())

	_, err := s.Login(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)
	require.True(t, s.IsAuthenticated())

	require.NoError(t, s.Logout(context.Background()))

	require.Equal(t, 1, fc.LogoutCalls)
	require.False(t, s.IsAuthenticated())
	require.Nil(t, s.CurrentUser())
	require.Equal(t, 0, countKeys(t, db))
	require.Equal(t, "", fc.LastSetAccess, "client tokens must be dropped")
}

func TestUpdateProfile_ReplacesUserKeepsTokens(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{
		LoginTokens: &models.AuthTokens{AccessToken: "t1", RefreshToken: "r1"},
		LoginUser:   &models.User{ID: "U1", Name: "A", Email: "a@x.com"},
		UpdateRet:   &models.User{ID: "U1", Name: "Anna", Email: "anna@x.com"},
	}
	s := NewSessionService(fc, db, testLogger())
	s.Restore(context.Background())

	_, err := s.Login(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)

	user, err := s.UpdateProfile(context.Background(), "Anna", "anna@x.com")
	require.NoError(t, err)
	require.Equal(t, "Anna", user.Name)
	require.Equal(t, "Anna", s.CurrentUser().Name)

	var stored models.User
	require.NoError(t, json.Unmarshal([]byte(getKey(t, db, "user")), &stored))
	require.Equal(t, "Anna", stored.Name)

	require.Equal(t, "t1", getKey(t, db, "access_token"))
	require.Equal(t, "r1", getKey(t, db, "refresh_token"))
}

func TestChangePassword_DoesNotTouchSession(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{
		LoginTokens: &models.AuthTokens{AccessToken: "t1", RefreshToken: "r1"},
		LoginUser:   &models.User{ID: "U1", Name: "A"},
	}
	s := NewSessionService(fc, db, testLogger())
	s.Restore(context.Background())

	_, err := s.Login(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)

	require.NoError(t, s.ChangePassword(context.Background(), "pw1", "pw2"))
	require.Equal(t, 1, fc.ChangeCalls)

	require.True(t, s.IsAuthenticated())
	require.Equal(t, "t1", getKey(t, db, "access_token"))
	require.Equal(t, "U1", s.CurrentUser().ID)
}

func TestRefresh_UsesStoredTokenAndPersistsRotation(t *testing.T) {
	db := setupDB(t)
	insertKey(t, db, "user", `{"id":"U1","name":"A"}`)
	insertKey(t, db, "access_token", "t1")
	insertKey(t, db, "refresh_token", "r1")

	fc := &fakeClient{
		RefreshRet:  &models.AuthTokens{AccessToken: "t2", RefreshToken: "r2"},
		RefreshUser: &models.User{ID: "U1", Name: "A"},
	}
	s := NewSessionService(fc, db, testLogger())
	s.Restore(context.Background())

	require.NoError(t, s.Refresh(context.Background()))

	require.Equal(t, "r1", fc.LastRefreshToken)
	require.Equal(t, "t2", getKey(t, db, "access_token"))
	require.Equal(t, "r2", getKey(t, db, "refresh_token"))
}

func TestRefresh_WithoutStoredToken_Unauthorized(t *testing.T) {
	db := setupDB(t)
	s := NewSessionService(&fakeClient{}, db, testLogger())
	s.Restore(context.Background())

	err := s.Refresh(context.Background())
	require.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestRoundTrip_LoginThenRestartRestoresEqualUser(t *testing.T) {
	db := setupDB(t)
	orig := &models.User{
		ID: "U1", Email: "a@x.com", Name: "A", Age: 30, Profession: "engineer",
		City: "Riga", MonthlyIncome: 2500.50, IsActive: true,
		AccountCreatedDate: "2024-01-02T03:04:05Z", LastLogin: "2024-06-07T08:09:10Z",
	}
	fc := &fakeClient{
		LoginTokens: &models.AuthTokens{AccessToken: "t1", RefreshToken: "r1"},
		LoginUser:   orig,
	}
	s := NewSessionService(fc, db, testLogger())
	s.Restore(context.Background())

	_, err := s.Login(context.Background(), "a@x.com", "pw1")
	require.NoError(t, err)

	// simulated restart: a fresh service over the same database
	s2 := NewSessionService(&fakeClient{}, db, testLogger())
	s2.Restore(context.Background())

	require.True(t, s2.IsAuthenticated())
	require.Equal(t, *orig, *s2.CurrentUser())
}

func TestIsAuthenticated_PreHydrationTokenFallback(t *testing.T) {
	db := setupDB(t)
	insertKey(t, db, "access_token", "stale")

	s := NewSessionService(&fakeClient{}, db, testLogger())

	// before hydration a stored token is trusted as-is
	require.True(t, s.IsAuthenticated())

	// hydration finds the record partial, repairs it, and the fallback ends
	s.Restore(context.Background())
	require.False(t, s.IsAuthenticated())
}
