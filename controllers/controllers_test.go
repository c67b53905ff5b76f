package controllers

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/snap-point/social-api/config"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/storage"
)

func TestContainsPattern(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Spider", "%spider%"},
		{"50%", `%50\%%`},
		{"a_b", `%a\_b%`},
		{`back\slash`, `%back\\slash%`},
	}
	for _, tt := range tests {
		if got := containsPattern(tt.in); got != tt.want {
			t.Errorf("containsPattern(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPageSize(t *testing.T) {
	gin.SetMode(gin.TestMode)
	p := NewPaginator(config.APIConfig{DefaultPageSize: 10, MaxPageSize: 50})

	tests := []struct {
		query string
		want  int
	}{
		{"", 10},
		{"page_size=5", 5},
		{"page_size=500", 50},
		{"page_size=-1", 10},
		{"page_size=abc", 10},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/items?"+tt.query, nil)
		if got := p.pageSize(c); got != tt.want {
			t.Errorf("pageSize(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

func TestPageURL(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "http://api.test/api/user/posts?username=bob&page=2", nil)
	c.Request.Header.Set("X-Forwarded-Proto", "https")

	if got := *pageURL(c, 3); got != "https://api.test/api/user/posts?page=3&username=bob" {
		t.Errorf("pageURL(3) = %s", got)
	}
	if got := *pageURL(c, 1); got != "https://api.test/api/user/posts?username=bob" {
		t.Errorf("pageURL(1) = %s", got)
	}
}

func TestMediaKey(t *testing.T) {
	owner := &models.User{Username: "alice", FirstName: "Alice", LastName: "Smith"}
	key := mediaKey(owner, ".jpg")
	if !strings.HasPrefix(key, "media/uploads/users/posts/alice-smith-") || !strings.HasSuffix(key, ".jpg") {
		t.Errorf("mediaKey() = %q", key)
	}
	if mediaKey(owner, ".jpg") == key {
		t.Error("mediaKey() repeated a key")
	}

	nameless := &models.User{Username: "bob"}
	if key := mediaKey(nameless, ".png"); !strings.HasPrefix(key, "media/uploads/users/posts/bob-") {
		t.Errorf("mediaKey() without names = %q", key)
	}
}

func TestMediaURL(t *testing.T) {
	key := "media/uploads/users/posts/a.png"
	store := storage.NewMemoryStore("https://cdn.test")

	if got := mediaURL(store, &key); got == nil || *got != "https://cdn.test/"+key {
		t.Errorf("mediaURL() = %v", got)
	}
	if got := mediaURL(nil, &key); got == nil || *got != key {
		t.Errorf("mediaURL(nil store) = %v", got)
	}
	empty := ""
	if mediaURL(store, nil) != nil || mediaURL(store, &empty) != nil {
		t.Error("mediaURL() should be nil without a key")
	}
}
