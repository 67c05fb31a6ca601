package likes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/config"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/db"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/models"
)

// likeBackend is a stateful stand-in for the like tables and the toggle
// routine: each routine call flips the row and moves the counter with it.
type likeBackend struct {
	mu      sync.Mutex
	liked   bool
	count   int
	lastRPC map[string]string
	srv     *httptest.Server
}

func newLikeBackend(t *testing.T, count int) *likeBackend {
	t.Helper()

	b := &likeBackend{count: count}
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/clothing_likes", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		liked := b.liked
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if liked {
			row, _ := json.Marshal([]models.Like{{UserID: "user-1", ItemID: "42"}})
			w.Write(row)
			return
		}
		io.WriteString(w, "[]")
	})
	mux.HandleFunc("/rest/v1/rpc/toggle_clothing_like", func(w http.ResponseWriter, r *http.Request) {
		var params map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))

		b.mu.Lock()
		b.lastRPC = params
		b.liked = !b.liked
		if b.liked {
			b.count++
		} else {
			b.count--
		}
		resp, _ := json.Marshal(map[string]any{"liked": b.liked, "likes_count": b.count})
		b.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.Write(resp)
	})

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

type recordingPublisher struct {
	mu      sync.Mutex
	updates []string
	counts  []int
}

func (p *recordingPublisher) PublishLikeUpdate(kind, itemID string, likesCount int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, kind+"/"+itemID)
	p.counts = append(p.counts, likesCount)
}

func newTestService(t *testing.T, backend *likeBackend, pub Publisher) *Service {
	t.Helper()
	cfg := &config.Config{
		SupabaseURL:     backend.srv.URL,
		SupabaseAnonKey: "anon-key",
	}
	return NewService(db.NewClient(cfg), pub)
}

func TestParseKind(t *testing.T) {
	kind, ok := ParseKind("clothing")
	require.True(t, ok)
	assert.Equal(t, KindClothing, kind)

	kind, ok = ParseKind("outfit")
	require.True(t, ok)
	assert.Equal(t, KindOutfit, kind)

	_, ok = ParseKind("hats")
	assert.False(t, ok)
}

func TestIsLikedAbsenceIsFalse(t *testing.T) {
	backend := newLikeBackend(t, 5)
	svc := newTestService(t, backend, nil)

	liked, err := svc.IsLiked("token", KindClothing, "user-1", "42")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestToggleLikesAndBumpsCounter(t *testing.T) {
	backend := newLikeBackend(t, 5)
	pub := &recordingPublisher{}
	svc := newTestService(t, backend, pub)

	result, err := svc.Toggle("token", KindClothing, "user-1", "42")
	require.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 6, result.LikesCount)

	assert.Equal(t, "user-1", backend.lastRPC["p_user_id"])
	assert.Equal(t, "42", backend.lastRPC["p_item_id"])

	liked, err := svc.IsLiked("token", KindClothing, "user-1", "42")
	require.NoError(t, err)
	assert.True(t, liked)

	require.Len(t, pub.updates, 1)
	assert.Equal(t, "clothing/42", pub.updates[0])
	assert.Equal(t, 6, pub.counts[0])
}

func TestToggleTwiceRestoresOriginalState(t *testing.T) {
	backend := newLikeBackend(t, 5)
	svc := newTestService(t, backend, nil)

	first, err := svc.Toggle("token", KindClothing, "user-1", "42")
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, 6, first.LikesCount)

	second, err := svc.Toggle("token", KindClothing, "user-1", "42")
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, 5, second.LikesCount)

	liked, err := svc.IsLiked("token", KindClothing, "user-1", "42")
	require.NoError(t, err)
	assert.False(t, liked)
}
