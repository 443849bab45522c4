package strapi

import (
	"net/http"
	"testing"

	"github.com/localrivet/gomcp/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(h http.Handler) (*Handler, func(), *int) {
	calls := 0
	counting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if h != nil {
			h.ServeHTTP(w, r)
		}
	})
	client, ts := newTestClient(counting)
	return NewHandler(client), ts.Close, &calls
}

func TestHandlerMissingArgsNeverReachBackend(t *testing.T) {
	h, done, calls := newTestHandler(nil)
	defer done()

	_, err := h.GetEntries(GetEntriesArgs{})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = h.GetEntry(GetEntryArgs{ContentType: "api::article.article"})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = h.CreateEntry(CreateEntryArgs{ContentType: "api::article.article"})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = h.UpdateEntry(UpdateEntryArgs{ContentType: "api::article.article", ID: "5"})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = h.DeleteEntry(DeleteEntryArgs{ContentType: "api::article.article"})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = h.UploadMedia(UploadMediaArgs{FileName: "a.jpg", FileType: "image/jpeg"})
	assert.ErrorIs(t, err, ErrInvalidParams)

	assert.Zero(t, *calls)
}

func TestHandlerDeleteConfirmation(t *testing.T) {
	var requests []string
	h, done, calls := newTestHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer done()

	out, err := h.DeleteEntry(DeleteEntryArgs{ContentType: "api::article.article", ID: "5"})
	require.NoError(t, err)
	assert.Contains(t, out, "5")
	assert.Contains(t, out, "api::article.article")
	assert.Equal(t, 1, *calls)
	assert.Equal(t, []string{"DELETE /api/article/5"}, requests)
}

func TestHandlerGetEntriesPagination(t *testing.T) {
	h, done, _ := newTestHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("pagination[page]"))
		assert.Equal(t, "10", r.URL.Query().Get("pagination[pageSize]"))
		w.Write([]byte(`{"data": [], "meta": {}}`))
	}))
	defer done()

	out, err := h.GetEntries(GetEntriesArgs{
		ContentType: "api::article.article",
		// tool arguments arrive as loosely typed JSON maps
		Pagination: map[string]interface{}{"page": float64(2), "pageSize": float64(10)},
	})
	require.NoError(t, err)
	assert.Contains(t, out, `"data"`)
}

func TestHandlerGetEntryRendersJSON(t *testing.T) {
	h, done, _ := newTestHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": {"id": 5, "attributes": {"title": "hi"}}}`))
	}))
	defer done()

	out, err := h.GetEntry(GetEntryArgs{ContentType: "api::article.article", ID: "5"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 5, "attributes": {"title": "hi"}}`, out)
}

func TestHandlerReadResource(t *testing.T) {
	h, done, _ := newTestHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/article":
			assert.Equal(t, "2", r.URL.Query().Get("pagination[page]"))
			w.Write([]byte(`{"data": [{"id": 1}], "meta": {}}`))
		case "/api/article/5":
			w.Write([]byte(`{"data": {"id": 5}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": {"status": 404, "message": "Not Found"}}`))
		}
	}))
	defer done()

	res, err := h.ReadResource("strapi://content-type/api::article.article?page=2")
	require.NoError(t, err)
	list, ok := res.Data.(*EntryList)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id": 1}]`, string(list.Data))

	res, err = h.ReadResource("strapi://content-type/api::article.article/5")
	require.NoError(t, err)

	_, err = h.ReadResource("strapi://content-type/api::missing.missing/1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = h.ReadResource("not-a-resource")
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestHandlerListContentTypes(t *testing.T) {
	h, done, calls := newTestHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(contentTypesBody))
	}))
	defer done()

	out, err := h.ListContentTypes()
	require.NoError(t, err)
	assert.Contains(t, out, "api::article.article")
	assert.NotContains(t, out, "plugin::users-permissions.user")

	// second call serves the cache
	_, err = h.ListContentTypes()
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
}

func TestNewServerBuilds(t *testing.T) {
	h, done, _ := newTestHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(contentTypesBody))
	}))
	defer done()

	srv := NewServer(h.client)
	var _ server.Server = srv
	require.NotNil(t, srv)
}
