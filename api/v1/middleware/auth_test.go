package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ipocket/internal/auth"
	"ipocket/internal/httpx"

	"github.com/gin-gonic/gin"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(), func(c *gin.Context) {
		httpx.OK(c, gin.H{"username": c.GetString("username")})
	})
	r.POST("/mutate", AuthRequired(), EditorRequired(), func(c *gin.Context) {
		httpx.OK(c, nil)
	})
	return r
}

func token(t *testing.T, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(1, "alice", role, time.Now().Add(time.Hour), "ipocket")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	return tok
}

func TestAuthRequired_MissingHeader(t *testing.T) {
	auth.InitJWT("test-secret")
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthRequired_MalformedHeader(t *testing.T) {
	auth.InitJWT("test-secret")
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	auth.InitJWT("test-secret")
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "Viewer"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestEditorRequired_ViewerRejected(t *testing.T) {
	auth.InitJWT("test-secret")
	r := setupRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "Viewer"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestEditorRequired_EditorAllowed(t *testing.T) {
	auth.InitJWT("test-secret")
	r := setupRouter()

	for _, role := range []string{"Editor", "Admin"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/mutate", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, role))
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("role %s: status = %d, want %d", role, w.Code, http.StatusOK)
		}
	}
}
