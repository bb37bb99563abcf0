package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/khushi-1907/virtual-study-group/internal/config"
	"github.com/khushi-1907/virtual-study-group/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	prev := config.AppConfig
	config.AppConfig = &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", Expiry: "24h"},
	}
	t.Cleanup(func() { config.AppConfig = prev })

	h := NewAuthHandler(db, service.NewMultiProviderEmailService(nil))
	r := gin.New()
	r.POST("/api/signup", h.Signup)
	r.POST("/api/login", h.Login)
	r.POST("/api/reset-password/:token", h.ResetPassword)
	return r, mock
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSignupCreatesUser(t *testing.T) {
	r, mock := authRouter(t)

	mock.ExpectQuery("SELECT id FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postJSON(r, "/api/signup",
		`{"name":"Alice Johnson","email":"alice@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"token"`)
	assert.Contains(t, w.Body.String(), "alice@example.com")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupDuplicateEmail(t *testing.T) {
	r, mock := authRouter(t)

	mock.ExpectQuery("SELECT id FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	w := postJSON(r, "/api/signup",
		`{"name":"Alice Johnson","email":"alice@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two concurrent signups can both pass the existence check; the loser of the
// INSERT race must still get the duplicate-email error, not a 500.
func TestSignupDuplicateEmailInsertRace(t *testing.T) {
	r, mock := authRouter(t)

	mock.ExpectQuery("SELECT id FROM users WHERE email").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	w := postJSON(r, "/api/signup",
		`{"name":"Alice Johnson","email":"alice@example.com","password":"secret1"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWrongPassword(t *testing.T) {
	r, mock := authRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "email", "password_hash", "role", "created_at"}).
			AddRow(uuid.New().String(), "Alice Johnson", "alice@example.com", string(hash), "student", time.Now()))

	w := postJSON(r, "/api/login",
		`{"email":"alice@example.com","password":"wrong-password"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid login credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	r, mock := authRouter(t)

	mock.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "email", "password_hash", "role", "created_at"}))

	w := postJSON(r, "/api/login",
		`{"email":"nobody@example.com","password":"whatever"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid login credentials")
}

func TestResetPasswordExpiredToken(t *testing.T) {
	r, mock := authRouter(t)

	// an expired or unknown token matches no row
	mock.ExpectQuery("SELECT id FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := postJSON(r, "/api/reset-password/deadbeef", `{"password":"new-secret"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Password reset token is invalid or has expired")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordConsumesToken(t *testing.T) {
	r, mock := authRouter(t)

	userID := uuid.New()
	mock.ExpectQuery("SELECT id FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(userID.String()))
	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := postJSON(r, "/api/reset-password/sometoken", `{"password":"new-secret"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
