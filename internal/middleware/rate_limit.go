package middleware

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// resetRequestInterval is the minimum gap between reset-token requests for
// the same email. Issued tokens live for an hour, so the issue time can be
// derived from reset_token_expires_at.
const resetRequestInterval = time.Minute

// PasswordResetRateLimit rejects repeated forgot-password requests for the
// same email within the cooldown window.
func PasswordResetRateLimit(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var requestBody struct {
			Email string `json:"email"`
		}

		if err := c.ShouldBindJSON(&requestBody); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			c.Abort()
			return
		}

		email := requestBody.Email
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
			c.Abort()
			return
		}

		var expiresAt *time.Time
		err := db.QueryRow(`
			SELECT reset_token_expires_at FROM users WHERE email = $1
		`, email).Scan(&expiresAt)

		if err != nil && err != sql.ErrNoRows {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			c.Abort()
			return
		}

		if expiresAt != nil {
			issuedAt := expiresAt.Add(-time.Hour)
			if since := time.Since(issuedAt); since >= 0 && since < resetRequestInterval {
				retryAfter := resetRequestInterval - since
				c.JSON(http.StatusTooManyRequests, gin.H{
					"error":       "Rate limit exceeded",
					"message":     "A reset token was issued recently. Please wait before requesting another.",
					"retry_after": retryAfter.Seconds(),
				})
				c.Abort()
				return
			}
		}

		// Body is consumed; hand the email to the handler via context.
		c.Set("email", email)
		c.Next()
	}
}
