package http

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"auth-panel/internal/domain"
	"auth-panel/internal/session"
)

// Sessions is the session holder the pages drive.
type Sessions interface {
	Snapshot() session.State
	Login(ctx context.Context, creds domain.Credentials) error
	Register(ctx context.Context, reg domain.Registration) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// Handler wires HTTP routes to the session holder.
type Handler struct {
	sessions  Sessions
	logger    *logrus.Logger
	templates *template.Template
	location  *time.Location
	now       func() time.Time
}

func NewHandler(sessions Sessions, logger *logrus.Logger) (*Handler, error) {
	if logger == nil {
		logger = logrus.New()
	}
	h := &Handler{
		sessions: sessions,
		logger:   logger,
		location: time.Local,
		now:      time.Now,
	}
	tmpl, err := parseTemplates(h.formatDate)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	h.templates = tmpl
	return h, nil
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.SetHTMLTemplate(h.templates)
	router.Use(requestID(), requestLogger(h.logger), requestMetrics(), sameOrigin())

	router.GET("/healthz", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, DashboardPath)
	})

	guest := router.Group("/", Guard(h.sessions, RequireAnonymous))
	{
		guest.GET(LoginPath, h.showLogin)
		guest.POST(LoginPath, h.submitLogin)
		guest.GET(RegisterPath, h.showRegister)
		guest.POST(RegisterPath, h.submitRegister)
	}

	protected := router.Group("/", Guard(h.sessions, RequireAuthenticated))
	{
		protected.GET(DashboardPath, h.showDashboard)
		protected.POST(DashboardPath+"/refresh", h.refreshDashboard)
		protected.POST("/logout", h.logout)
	}

	router.NoRoute(h.notFound)
}

func (h *Handler) health(c *gin.Context) {
	st := h.sessions.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"initializing":  st.Initializing,
		"authenticated": st.Authenticated,
	})
}

func (h *Handler) notFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "not_found.html", gin.H{
		"Title": "Página não encontrada",
		"User":  h.sessions.Snapshot().User,
	})
}
