package handlers

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/khushi-1907/virtual-study-group/internal/models"
	"github.com/khushi-1907/virtual-study-group/internal/service"
	"github.com/khushi-1907/virtual-study-group/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

const resetTokenTTL = time.Hour

type AuthHandler struct {
	db    *sql.DB
	email *service.MultiProviderEmailService
}

func NewAuthHandler(db *sql.DB, email *service.MultiProviderEmailService) *AuthHandler {
	return &AuthHandler{db: db, email: email}
}

// generateResetToken returns a random hex token for password resets.
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existingID uuid.UUID
	err := h.db.QueryRow("SELECT id FROM users WHERE email = $1", req.Email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	userID := uuid.New()
	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, userID, req.Name, req.Email, string(hashedPassword), models.RoleStudent, now, now)
	if err != nil {
		// concurrent signups can both pass the SELECT above; the unique
		// index on email is the arbiter
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := utils.GenerateJWT(userID, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": models.UserResponse{
			ID:        userID,
			Name:      req.Name,
			Email:     req.Email,
			Role:      models.RoleStudent,
			CreatedAt: now,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, name, email, password_hash, role, created_at
		FROM users WHERE email = $1
	`, req.Email).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login credentials"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": models.UserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
		"token": token,
	})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	email, exists := c.Get("email")
	if !exists {
		var req models.ForgotPasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		email = req.Email
	}

	var user models.User
	err := h.db.QueryRow("SELECT id, name, email FROM users WHERE email = $1", email).
		Scan(&user.ID, &user.Name, &user.Email)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	resetToken, err := generateResetToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reset token"})
		return
	}

	expiresAt := time.Now().Add(resetTokenTTL)
	_, err = h.db.Exec(`
		UPDATE users SET reset_token = $1, reset_token_expires_at = $2, updated_at = $3
		WHERE id = $4
	`, resetToken, expiresAt, time.Now(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reset token"})
		return
	}

	// Email delivery is best effort: the token still works if every
	// provider is down, it just has to reach the user another way.
	if err := h.email.SendPasswordResetEmail(c.Request.Context(), service.ResetEmailData{
		Email:     user.Email,
		Name:      user.Name,
		Token:     resetToken,
		ExpiresIn: int(resetTokenTTL.Minutes()),
	}); err != nil {
		slog.Warn("failed to send password reset email", "email", user.Email, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Password reset token generated",
		"resetToken": resetToken,
	})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Param("token")

	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var userID uuid.UUID
	err := h.db.QueryRow(`
		SELECT id FROM users
		WHERE reset_token = $1 AND reset_token_expires_at > $2
	`, token, time.Now()).Scan(&userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password reset token is invalid or has expired"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify reset token"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	_, err = h.db.Exec(`
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expires_at = NULL, updated_at = $2
		WHERE id = $3
	`, string(hashedPassword), time.Now(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
