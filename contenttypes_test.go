package strapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contentTypesBody = `{
	"data": [
		{"uid": "api::article.article", "schema": {"collectionName": "article", "displayName": "Article", "description": "Blog articles"}},
		{"uid": "plugin::users-permissions.user", "schema": {"displayName": "User"}},
		{"uid": "admin::permission", "schema": {"displayName": "Permission"}},
		{"uid": "api::category.category", "schema": {"collectionName": "category"}}
	]
}`

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	ts := httptest.NewServer(handler)
	client := NewClient(&ClientOptions{BaseURL: ts.URL, Token: "test-token"})
	return client, ts
}

func TestContentTypesListFiltersInternal(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/content-types", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(contentTypesBody))
	}))
	defer ts.Close()

	types, err := client.ContentTypes.List()
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "api::article.article", types[0].UID)
	assert.Equal(t, "Article", types[0].DisplayName)
	assert.Equal(t, "Blog articles", types[0].Description)
	// display name falls back to the title-cased collection name
	assert.Equal(t, "api::category.category", types[1].UID)
	assert.Equal(t, "Category", types[1].DisplayName)
}

func TestContentTypesListCached(t *testing.T) {
	calls := 0
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(contentTypesBody))
	}))
	defer ts.Close()

	first, err := client.ContentTypes.List()
	require.NoError(t, err)
	second, err := client.ContentTypes.List()
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	// the cached slice is served as-is, not re-fetched or copied
	assert.Same(t, &first[0], &second[0])
}

func TestContentTypesListFailureNotCached(t *testing.T) {
	calls := 0
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(contentTypesBody))
	}))
	defer ts.Close()

	_, err := client.ContentTypes.List()
	assert.ErrorIs(t, err, ErrBackend)

	types, err := client.ContentTypes.List()
	require.NoError(t, err)
	assert.Len(t, types, 2)
	assert.Equal(t, 2, calls)
}

func TestContentTypesDevModeEndpoint(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/content-type-builder/content-types", r.URL.Path)
		w.Write([]byte(contentTypesBody))
	}))
	defer ts.Close()
	client.Options.DevMode = true

	_, err := client.ContentTypes.List()
	require.NoError(t, err)
}

func TestContentTypesGet(t *testing.T) {
	client, ts := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(contentTypesBody))
	}))
	defer ts.Close()

	ct, err := client.ContentTypes.Get("api::article.article")
	require.NoError(t, err)
	require.NotNil(t, ct)
	assert.Equal(t, "article", ct.CollectionName)

	ct, err = client.ContentTypes.Get("api::missing.missing")
	require.NoError(t, err)
	assert.Nil(t, ct)
}

func TestCollectionFromUID(t *testing.T) {
	collection, err := collectionFromUID("api::article.article")
	require.NoError(t, err)
	assert.Equal(t, "article", collection)

	_, err = collectionFromUID("article")
	assert.ErrorIs(t, err, ErrInvalidParams)
}
