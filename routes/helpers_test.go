package routes

import (
	"bytes"
	"io"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/snap-point/social-api/blacklist"
	"github.com/snap-point/social-api/config"
	"github.com/snap-point/social-api/logging"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/storage"
	"github.com/snap-point/social-api/testutil"
	"github.com/snap-point/social-api/utils"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logging.Init(logging.Config{Level: "disabled", Output: io.Discard})
	utils.RegisterValidators()
	os.Exit(m.Run())
}

type testAPI struct {
	t      *testing.T
	db     *gorm.DB
	cfg    *config.Config
	tokens *utils.TokenManager
	media  *storage.MemoryStore
	router *gin.Engine
}

type apiOption func(*config.Config)

func newTestAPI(t *testing.T, opts ...apiOption) *testAPI {
	t.Helper()

	cfg := config.Default()
	cfg.Auth.JWTSecret = "routes-test-secret"
	for _, opt := range opts {
		opt(cfg)
	}

	tokens, err := utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenLifetime, cfg.Auth.RefreshTokenLifetime)
	if err != nil {
		t.Fatal(err)
	}

	db := testutil.NewTestDB(t)
	media := storage.NewMemoryStore("https://media.example.com")
	r := gin.New()
	SetupRoutes(r, Dependencies{
		DB:        db,
		Config:    cfg,
		Tokens:    tokens,
		Blacklist: blacklist.NewGormBlacklist(db),
		Media:     media,
	})

	return &testAPI{t: t, db: db, cfg: cfg, tokens: tokens, media: media, router: r}
}

// bearer returns an Authorization header value for user.
func (a *testAPI) bearer(user *models.User) string {
	a.t.Helper()
	access, _, err := a.tokens.NewAccessToken(user.ID)
	if err != nil {
		a.t.Fatal(err)
	}
	return "Bearer " + access
}

// do sends body as JSON unless it is nil.
func (a *testAPI) do(method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			a.t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) user(username string) *models.User {
	a.t.Helper()
	return testutil.CreateUser(a.t, a.db, username, "password123", false)
}

func (a *testAPI) staff(username string) *models.User {
	a.t.Helper()
	return testutil.CreateUser(a.t, a.db, username, "password123", true)
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", w.Code, want, w.Body.String())
	}
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body
}

type pageBody struct {
	Count    int64                    `json:"count"`
	Next     *string                  `json:"next"`
	Previous *string                  `json:"previous"`
	Results  []map[string]interface{} `json:"results"`
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) pageBody {
	t.Helper()
	var body pageBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode page %q: %v", w.Body.String(), err)
	}
	return body
}

// field returns the string value of key in each result.
func field(results []map[string]interface{}, key string) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		s, _ := r[key].(string)
		out = append(out, s)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
