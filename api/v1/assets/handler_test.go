package assets

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ipocket/internal/httpx"

	"github.com/gin-gonic/gin"
)

func TestGetByIP_MissingParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(nil)
	r.GET("/api/v1/assets/by-ip", h.GetByIP)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets/by-ip", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var resp httpx.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Code != httpx.CodeParamMissing {
		t.Errorf("code = %d, want %d", resp.Code, httpx.CodeParamMissing)
	}
}
