package routes

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/snap-point/social-api/models"
	"github.com/snap-point/social-api/testutil"
)

func TestLikesCountByDate(t *testing.T) {
	api := newTestAPI(t)
	alice := api.user("alice")
	post := testutil.CreatePost(t, api.db, alice, "p")
	for _, day := range []int{10, 15, 20} {
		like := models.Like{
			PostID:    post.ID,
			UserID:    alice.ID,
			CreatedAt: time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC),
		}
		if err := api.db.Create(&like).Error; err != nil {
			t.Fatal(err)
		}
	}
	auth := api.bearer(alice)

	tests := []struct {
		query string
		want  string
	}{
		{"", "Number of likes in period: 3"},
		{"?date_from=2024-01-10", "Number of likes in period from 2024-01-10: 3"},
		{"?date_from=2024-01-11", "Number of likes in period from 2024-01-11: 2"},
		{"?date_to=2024-01-15", "Number of likes in period to 2024-01-15: 2"},
		{"?date_to=2024-01-14", "Number of likes in period to 2024-01-14: 1"},
		{"?date_from=2024-01-11&date_to=2024-01-15", "Number of likes in period from 2024-01-11 to 2024-01-15: 1"},
		{"?date_from=2024-1-11&date_to=2024-1-15", "Number of likes in period from 2024-1-11 to 2024-1-15: 1"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := api.do(http.MethodGet, "/api/user/analytics/likes"+tt.query, auth, nil)
			expectStatus(t, w, http.StatusOK)
			var got string
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatalf("body %q is not a JSON string: %v", w.Body.String(), err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLikesCountByDateBoundaries(t *testing.T) {
	api := newTestAPI(t)
	alice := api.user("alice")
	post := testutil.CreatePost(t, api.db, alice, "p")
	stamps := []time.Time{
		time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 0, 1, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 2, 1, 0, 0, 1, 0, time.UTC),
	}
	for _, at := range stamps {
		like := models.Like{PostID: post.ID, UserID: alice.ID, CreatedAt: at}
		if err := api.db.Create(&like).Error; err != nil {
			t.Fatal(err)
		}
	}

	w := api.do(http.MethodGet, "/api/user/analytics/likes?date_from=2024-01-01&date_to=2024-01-31", api.bearer(alice), nil)
	expectStatus(t, w, http.StatusOK)
	var got string
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	// Midnight of date_from is excluded, midnight after date_to is included.
	if want := "Number of likes in period from 2024-01-01 to 2024-01-31: 2"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLikesCountByDateErrors(t *testing.T) {
	api := newTestAPI(t)
	alice := api.user("alice")

	expectStatus(t, api.do(http.MethodGet, "/api/user/analytics/likes", "", nil), http.StatusUnauthorized)

	w := api.do(http.MethodGet, "/api/user/analytics/likes?date_from=01/10/2024&date_to=2024-13-01", api.bearer(alice), nil)
	expectStatus(t, w, http.StatusBadRequest)
	body := decodeMap(t, w)
	for _, key := range []string{"date_from", "date_to"} {
		msgs, _ := body[key].([]interface{})
		if len(msgs) != 1 || !strings.Contains(msgs[0].(string), "YYYY-MM-DD") {
			t.Errorf("%s errors = %v", key, body[key])
		}
	}
}

func TestPagination(t *testing.T) {
	api := newTestAPI(t)
	alice := api.user("alice")
	for i := 0; i < 12; i++ {
		testutil.CreatePost(t, api.db, alice, "post")
	}

	w := api.do(http.MethodGet, "/api/user/posts", "", nil)
	expectStatus(t, w, http.StatusOK)
	page := decodePage(t, w)
	if page.Count != 12 || len(page.Results) != 10 {
		t.Fatalf("count=%d results=%d, want 12/10", page.Count, len(page.Results))
	}
	if page.Previous != nil || page.Next == nil || !strings.HasSuffix(*page.Next, "/api/user/posts?page=2") {
		t.Errorf("next=%v previous=%v", page.Next, page.Previous)
	}

	w = api.do(http.MethodGet, "/api/user/posts?page=2", "", nil)
	expectStatus(t, w, http.StatusOK)
	page = decodePage(t, w)
	if len(page.Results) != 2 || page.Next != nil || page.Previous == nil {
		t.Fatalf("page 2 = %+v", page)
	}
	if strings.Contains(*page.Previous, "page=") {
		t.Errorf("previous link to page 1 keeps the page param: %s", *page.Previous)
	}

	w = api.do(http.MethodGet, "/api/user/posts?page_size=5&page=last", "", nil)
	expectStatus(t, w, http.StatusOK)
	if got := len(decodePage(t, w).Results); got != 2 {
		t.Errorf("last page results = %d, want 2", got)
	}

	w = api.do(http.MethodGet, "/api/user/posts?page_size=1000", "", nil)
	expectStatus(t, w, http.StatusOK)
	if got := len(decodePage(t, w).Results); got != 12 {
		t.Errorf("results = %d, want 12", got)
	}

	for _, q := range []string{"page=3", "page=0", "page=abc"} {
		w := api.do(http.MethodGet, "/api/user/posts?"+q, "", nil)
		expectStatus(t, w, http.StatusNotFound)
		if got := decodeMap(t, w)["detail"]; got != "Invalid page." {
			t.Errorf("%s detail = %v", q, got)
		}
	}
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t)
	w := api.do(http.MethodGet, "/healthz", "", nil)
	expectStatus(t, w, http.StatusOK)
}
