package routes

import (
	"strings"
	"testing"

	"github.com/khushi-1907/virtual-study-group/internal/config"
	"github.com/khushi-1907/virtual-study-group/internal/handlers"
	"github.com/khushi-1907/virtual-study-group/internal/service"
	"github.com/khushi-1907/virtual-study-group/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRoutePaths(t *testing.T) {
	gin.SetMode(gin.TestMode)

	prev := config.AppConfig
	config.AppConfig = &config.Config{
		Upload: config.UploadConfig{Dir: t.TempDir(), PublicPath: "/uploads"},
	}
	t.Cleanup(func() { config.AppConfig = prev })

	r := gin.New()
	SetupRoutes(r,
		handlers.NewAuthHandler(nil, service.NewMultiProviderEmailService(nil)),
		handlers.NewGroupHandler(nil),
		handlers.NewMessageHandler(nil, nil),
		handlers.NewFileHandler(nil, nil),
		handlers.NewSummaryHandler(nil),
		ws.NewHub(nil),
		nil, nil, nil, nil,
	)

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /api/health",
		"POST /api/signup",
		"POST /api/login",
		"POST /api/forgot-password",
		"POST /api/reset-password/:token",
		"GET /api/groups",
		"POST /api/groups",
		"POST /api/groups/:id/join",
		"GET /api/groups/:id/messages",
		"POST /api/groups/:id/messages",
		"POST /api/groups/:id/upload",
		"GET /api/groups/:id/files",
		"POST /api/summarize",
		"GET /api/ws",
	}
	for _, want := range expected {
		assert.True(t, registered[want], "missing route %s", want)
	}

	// auth endpoints live directly under /api, no extra path segment
	for key := range registered {
		path := strings.SplitN(key, " ", 2)[1]
		assert.False(t, strings.HasPrefix(path, "/api/auth/"), "unexpected route %s", key)
	}
}
