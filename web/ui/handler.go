// Package ui serves the server-rendered HTML pages. It authenticates with
// redis-backed cookie sessions rather than the API's bearer tokens.
package ui

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"ipocket/internal/audit"
	"ipocket/internal/auth"
	"ipocket/internal/config"
	"ipocket/internal/iprange"
	"ipocket/internal/model"
	"ipocket/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler serves the UI pages
type Handler struct {
	db       *gorm.DB
	sessions *session.Store
	cfg      *config.Config
	ranges   *iprange.Service
	audit    *audit.Service
}

// Register mounts the UI routes and templates on the engine
func Register(r *gin.Engine, db *gorm.DB, sessions *session.Store, cfg *config.Config) {
	h := &Handler{
		db:       db,
		sessions: sessions,
		cfg:      cfg,
		ranges:   iprange.NewService(db),
		audit:    audit.NewService(db),
	}

	tmpl := template.Must(template.ParseFS(templateFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	r.GET("/login", h.loginPage)
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)

	authed := r.Group("")
	authed.Use(h.sessionRequired())
	{
		authed.GET("/", h.dashboard)
		authed.GET("/ranges/:id", h.rangeDetail)
	}
}

// sessionRequired resolves the session cookie and redirects anonymous
// visitors to the login page
func (h *Handler) sessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(h.cfg.Session.CookieName)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		data, err := h.sessions.Get(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				c.String(http.StatusInternalServerError, "session store unavailable")
				c.Abort()
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("session", data)
		c.Next()
	}
}

func (h *Handler) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	fail := func(msg string) {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Error": msg})
	}

	var user model.User
	if err := h.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail("Invalid credentials")
			return
		}
		c.String(http.StatusInternalServerError, "database error")
		return
	}

	if !user.IsActive {
		fail("Account is inactive")
		return
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		fail("Invalid credentials")
		return
	}

	id, err := h.sessions.Create(c.Request.Context(), session.Data{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to create session")
		return
	}

	maxAge := h.cfg.Session.TTLMinutes * 60
	c.SetCookie(h.cfg.Session.CookieName, id, maxAge, "/", "", h.cfg.Session.CookieSecure, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) logout(c *gin.Context) {
	if id, err := c.Cookie(h.cfg.Session.CookieName); err == nil {
		_ = h.sessions.Delete(c.Request.Context(), id)
	}
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.cfg.Session.CookieSecure, true)
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) dashboard(c *gin.Context) {
	data := c.MustGet("session").(*session.Data)

	utilization, err := h.ranges.Utilization()
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to compute utilization")
		return
	}

	recent, err := h.audit.ListByTarget(model.AuditTargetIPAsset, 20)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to load activity")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Username": data.Username,
		"Ranges":   utilization,
		"Audit":    recent,
	})
}

func (h *Handler) rangeDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid range id")
		return
	}

	breakdown, err := h.ranges.Breakdown(id)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to compute breakdown")
		return
	}
	if breakdown == nil {
		c.String(http.StatusNotFound, "range not found")
		return
	}

	c.HTML(http.StatusOK, "range.html", gin.H{
		"Breakdown": breakdown,
	})
}
