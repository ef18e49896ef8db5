package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"cocktail_rig/internal/service"
)

// newMiddlewareOnlyRouter guards a single endpoint that echoes the operator ID.
func newMiddlewareOnlyRouter(auth *mockAuth) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(&service.Service{Authorization: auth}, nil)
	r.GET("/secure", h.userIdMiddleware, func(c *gin.Context) {
		uid, _ := c.Get(ctxUserID)
		c.JSON(http.StatusOK, gin.H{"ok": true, "userId": uid})
	})
	return r
}

func TestUserIDMiddleware_Rejects(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		parseErr error
		wantMsg  string
	}{
		{"missing_header", "", nil, errNoAuthHeader},
		{"wrong_scheme", "Token abc", nil, errBadAuthHeader},
		{"bearer_without_token", "Bearer", nil, errBadAuthHeader},
		{"bearer_blank_token", "Bearer   ", nil, errBadAuthHeader},
		{"expired_token", "Bearer expired", service.ErrInvalidToken, errBadToken},
		{"unknown_signature", "Bearer forged", errors.New("signature is invalid"), errBadToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseID: 7, parseErr: tc.parseErr}
			r := newMiddlewareOnlyRouter(auth)

			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status=%d, want 401 (body=%s)", w.Code, w.Body.String())
			}
			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.wantMsg {
				t.Fatalf("error=%q, want %q", out.Error, tc.wantMsg)
			}
		})
	}
}

func TestUserIDMiddleware_AcceptsBearerToken(t *testing.T) {
	auth := &mockAuth{parseID: 123}
	r := newMiddlewareOnlyRouter(auth)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		OK     bool `json:"ok"`
		UserID int  `json:"userId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.OK || resp.UserID != 123 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if auth.lastParseToken != "good-token" {
		t.Fatalf("ParseToken got %q, want %q", auth.lastParseToken, "good-token")
	}
}
