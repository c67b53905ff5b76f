package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/permissions"
	"github.com/snap-point/social-api/testutil"
	"github.com/snap-point/social-api/utils"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokens(t *testing.T) *utils.TokenManager {
	t.Helper()
	m, err := utils.NewTokenManager("middleware-secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// whoami echoes the resolved user id, or 0 for anonymous.
func whoami(c *gin.Context) {
	var id uint
	if u := utils.GetUser(c); u != nil {
		id = u.ID
	}
	c.JSON(http.StatusOK, gin.H{"user_id": id})
}

func newAuthRouter(db *gorm.DB, tokens *utils.TokenManager) *gin.Engine {
	r := gin.New()
	r.Use(Authenticate(db, tokens), TrackLastActivity(db))
	r.GET("/whoami", whoami)
	r.POST("/private", Require(permissions.IsAuthenticated{}), whoami)
	r.DELETE("/staff", Require(permissions.IsAdminUser{}), whoami)
	return r
}

func do(r http.Handler, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body
}

func TestAuthenticate(t *testing.T) {
	db := testutil.NewTestDB(t)
	tokens := newTokens(t)
	alice := testutil.CreateUser(t, db, "alice", "password123", false)
	bob := testutil.CreateUser(t, db, "bob", "password123", false)
	db.Model(bob).Update("is_active", false)

	access, _, _ := tokens.NewAccessToken(alice.ID)
	refresh, _, _ := tokens.NewRefreshToken(alice.ID)
	bobAccess, _, _ := tokens.NewAccessToken(bob.ID)
	ghostAccess, _, _ := tokens.NewAccessToken(9999)

	r := newAuthRouter(db, tokens)

	tests := []struct {
		name       string
		auth       string
		wantStatus int
		wantUser   float64
		wantCode   string
	}{
		{"no header", "", http.StatusOK, 0, ""},
		{"other scheme", "Basic abc", http.StatusOK, 0, ""},
		{"valid access", "Bearer " + access, http.StatusOK, float64(alice.ID), ""},
		{"missing token", "Bearer", http.StatusUnauthorized, 0, "bad_authorization_header"},
		{"garbage token", "Bearer nope", http.StatusUnauthorized, 0, "token_not_valid"},
		{"refresh used as access", "Bearer " + refresh, http.StatusUnauthorized, 0, "token_not_valid"},
		{"inactive user", "Bearer " + bobAccess, http.StatusUnauthorized, 0, "user_inactive"},
		{"deleted user", "Bearer " + ghostAccess, http.StatusUnauthorized, 0, "user_not_found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, "/whoami", tt.auth)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			body := decode(t, w)
			if tt.wantStatus == http.StatusOK {
				if body["user_id"] != tt.wantUser {
					t.Errorf("user_id = %v, want %v", body["user_id"], tt.wantUser)
				}
				return
			}
			if body["code"] != tt.wantCode {
				t.Errorf("code = %v, want %v", body["code"], tt.wantCode)
			}
			if w.Header().Get("WWW-Authenticate") == "" {
				t.Error("missing WWW-Authenticate header")
			}
		})
	}
}

func TestRequire(t *testing.T) {
	db := testutil.NewTestDB(t)
	tokens := newTokens(t)
	alice := testutil.CreateUser(t, db, "alice", "password123", false)
	admin := testutil.CreateUser(t, db, "admin", "password123", true)
	aliceToken, _, _ := tokens.NewAccessToken(alice.ID)
	adminToken, _, _ := tokens.NewAccessToken(admin.ID)

	r := newAuthRouter(db, tokens)

	tests := []struct {
		name       string
		method     string
		path       string
		auth       string
		wantStatus int
	}{
		{"anon private", http.MethodPost, "/private", "", http.StatusUnauthorized},
		{"user private", http.MethodPost, "/private", "Bearer " + aliceToken, http.StatusOK},
		{"anon staff", http.MethodDelete, "/staff", "", http.StatusUnauthorized},
		{"user staff", http.MethodDelete, "/staff", "Bearer " + aliceToken, http.StatusForbidden},
		{"admin staff", http.MethodDelete, "/staff", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.auth)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusForbidden {
				if got := decode(t, w)["detail"]; got != permissionDeniedMsg {
					t.Errorf("detail = %v", got)
				}
			}
		})
	}
}

func TestTrackLastActivity(t *testing.T) {
	db := testutil.NewTestDB(t)
	tokens := newTokens(t)
	alice := testutil.CreateUser(t, db, "alice", "password123", false)
	access, _, _ := tokens.NewAccessToken(alice.ID)

	r := newAuthRouter(db, tokens)

	do(r, http.MethodGet, "/whoami", "")
	var fresh models.User
	db.First(&fresh, alice.ID)
	if fresh.LastActivity != nil {
		t.Fatal("anonymous request touched last_activity")
	}

	before := time.Now().UTC().Add(-time.Second)
	if w := do(r, http.MethodGet, "/whoami", "Bearer "+access); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	db.First(&fresh, alice.ID)
	if fresh.LastActivity == nil || fresh.LastActivity.Before(before) {
		t.Errorf("last_activity = %v, want >= %v", fresh.LastActivity, before)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	r := gin.New()
	r.POST("/token", rl.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, do(r, http.MethodPost, "/token", "").Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 200 429]", codes)
	}

	if rl.Size() != 1 {
		t.Errorf("Size() = %d, want 1", rl.Size())
	}
	rl.Cleanup(0)
	if rl.Size() != 0 {
		t.Errorf("Size() after cleanup = %d, want 0", rl.Size())
	}

	var nilLimiter *RateLimiter
	r2 := gin.New()
	r2.GET("/", nilLimiter.Handler(), func(c *gin.Context) { c.Status(http.StatusOK) })
	if w := do(r2, http.MethodGet, "/", ""); w.Code != http.StatusOK {
		t.Errorf("nil limiter status = %d", w.Code)
	}
}

func TestRequestLoggerAndMetrics(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogger(), Metrics())
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := promtest.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/things/:id", "204"))

	req := httptest.NewRequest(http.MethodGet, "/things/1", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "abc" {
		t.Errorf("request id header = %q, want abc", got)
	}

	w = do(r, http.MethodGet, "/things/2", "")
	if got := w.Header().Get(RequestIDHeader); strings.TrimSpace(got) == "" {
		t.Error("expected generated request id")
	}

	after := promtest.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/things/:id", "204"))
	if after-before != 2 {
		t.Errorf("request counter delta = %v, want 2", after-before)
	}
}
