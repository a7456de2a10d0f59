package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"intent-pipeline/pkg/log"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mw := New(log.NewNop())

	var seen string
	r := gin.New()
	r.Use(mw.RequestID(), mw.AccessLog())
	r.GET("/ping", func(c *gin.Context) {
		seen, _ = c.Request.Context().Value(log.RequestIDKey).(string)
		c.Status(http.StatusNoContent)
	})

	t.Run("Generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if seen == "" || w.Header().Get(HeaderRequestID) != seen {
			t.Errorf("ctx id %q, header %q", seen, w.Header().Get(HeaderRequestID))
		}
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(HeaderRequestID, "req-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if seen != "req-42" || w.Header().Get(HeaderRequestID) != "req-42" {
			t.Errorf("ctx id %q, header %q", seen, w.Header().Get(HeaderRequestID))
		}
	})
}
