package feed

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/config"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/db"
)

// feedBackend records the query each table saw and replies with canned
// rows.
type feedBackend struct {
	mu      sync.Mutex
	queries map[string]url.Values
	bodies  map[string]string
	srv     *httptest.Server
}

func newFeedBackend(t *testing.T) *feedBackend {
	t.Helper()

	b := &feedBackend{
		queries: make(map[string]url.Values),
		bodies:  make(map[string]string),
	}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
		b.mu.Lock()
		b.queries[table] = r.URL.Query()
		body, ok := b.bodies[table]
		b.mu.Unlock()
		if !ok {
			body = "[]"
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, body)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func (b *feedBackend) set(table, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bodies[table] = body
}

func (b *feedBackend) query(table string) url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queries[table]
}

func newFeedService(t *testing.T, backend *feedBackend) *Service {
	t.Helper()
	cfg := &config.Config{
		SupabaseURL:     backend.srv.URL,
		SupabaseAnonKey: "anon-key",
	}
	return NewService(db.NewClient(cfg))
}

func TestClothesFeedNewestFirst(t *testing.T) {
	backend := newFeedBackend(t)
	backend.set("clothing_items", `[
		{"id":"c2","user_id":"u1","title":"Silk Scarf","image_url":"http://img/2.jpg","likes_count":3,"created_at":"2026-08-30T12:00:00Z"},
		{"id":"c1","user_id":"u1","title":"Denim Jacket","image_url":"http://img/1.jpg","likes_count":8,"created_at":"2026-08-29T12:00:00Z"}
	]`)

	svc := newFeedService(t, backend)
	items, err := svc.Clothes("token")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Silk Scarf", items[0].Title)
	assert.Equal(t, 8, items[1].LikesCount)

	// Ordering and the page cap are the backend's job
	q := backend.query("clothing_items")
	assert.Equal(t, "20", q.Get("limit"))
	assert.True(t, strings.HasPrefix(q.Get("order"), "created_at.desc"))
}

func TestOutfitsFeedEmpty(t *testing.T) {
	backend := newFeedBackend(t)
	svc := newFeedService(t, backend)

	posts, err := svc.Outfits("token")
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestParseFilterDefaultsToAll(t *testing.T) {
	assert.Equal(t, FilterClothes, ParseFilter("clothes"))
	assert.Equal(t, FilterOutfits, ParseFilter("outfits"))
	assert.Equal(t, FilterBrands, ParseFilter("brands"))
	assert.Equal(t, FilterAll, ParseFilter(""))
	assert.Equal(t, FilterAll, ParseFilter("garbage"))
}

func TestSearchClothesUsesContainsPattern(t *testing.T) {
	backend := newFeedBackend(t)
	backend.set("clothing_items", `[{"id":"c1","title":"Blue Jeans","brand":"Levis","image_url":"http://img/1.jpg","created_at":"2026-08-29T12:00:00Z"}]`)

	svc := newFeedService(t, backend)
	results, err := svc.Search("token", "jeans", FilterClothes)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "clothes", results[0].Type)
	assert.Equal(t, "Blue Jeans", results[0].Title)
	assert.Equal(t, "Levis", results[0].Subtitle)

	q := backend.query("clothing_items")
	assert.Equal(t, "ilike.%jeans%", q.Get("title"))
}

func TestSearchAllMergesClothesAndOutfits(t *testing.T) {
	backend := newFeedBackend(t)
	backend.set("clothing_items", `[{"id":"c1","title":"Summer Dress","image_url":"http://img/1.jpg","created_at":"2026-08-29T12:00:00Z"}]`)
	backend.set("outfit_posts", `[{"id":"o1","user_id":"u2","title":"Summer Fit","image_url":"http://img/o1.jpg","created_at":"2026-08-30T12:00:00Z"}]`)

	svc := newFeedService(t, backend)
	results, err := svc.Search("token", "summer", FilterAll)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "clothes", results[0].Type)
	assert.Equal(t, "outfit", results[1].Type)
}

func TestSearchBrandsMatchesName(t *testing.T) {
	backend := newFeedBackend(t)
	backend.set("brands", `[{"id":"b1","name":"Khaadi","website":"https://khaadi.test"}]`)

	svc := newFeedService(t, backend)
	results, err := svc.Search("token", "kha", FilterBrands)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "brand", results[0].Type)
	assert.Equal(t, "Khaadi", results[0].Title)

	q := backend.query("brands")
	assert.Equal(t, "ilike.%kha%", q.Get("name"))
}

func TestSavedClothesUnwrapsJoinedRows(t *testing.T) {
	backend := newFeedBackend(t)
	backend.set("clothing_likes", `[
		{"user_id":"u1","item_id":"c1","clothing_items":{"id":"c1","image_url":"http://img/1.jpg","title":"Denim Jacket","created_at":"2026-08-29T12:00:00Z"}},
		{"user_id":"u1","item_id":"gone","clothing_items":null}
	]`)

	svc := newFeedService(t, backend)
	items, err := svc.SavedClothes("token", "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Denim Jacket", items[0].Title)
	assert.Equal(t, "http://img/1.jpg", items[0].ImageURL)

	q := backend.query("clothing_likes")
	assert.Equal(t, "eq.u1", q.Get("user_id"))
}

func TestUploadsMergeBothKinds(t *testing.T) {
	backend := newFeedBackend(t)
	backend.set("clothing_items", `[{"id":"c1","image_url":"http://img/1.jpg","title":"Denim Jacket","created_at":"2026-08-29T12:00:00Z"}]`)
	backend.set("outfit_posts", `[{"id":"o1","image_url":"http://img/o1.jpg","title":"Festival Fit","created_at":"2026-08-30T12:00:00Z"}]`)

	svc := newFeedService(t, backend)
	items, err := svc.Uploads("token", "u1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Denim Jacket", items[0].Title)
	assert.Equal(t, "Festival Fit", items[1].Title)
}
