package strapi

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// internalPrefixes name the backend's system namespaces. Types in these
// namespaces never surface through the adapter.
var internalPrefixes = []string{"admin::", "plugin::", "strapi::"}

// contentTypeCache holds the fetched descriptors for the process
// lifetime. A zero ttl means the cache never expires; the injected clock
// keeps a future refresh policy a configuration change rather than a
// rewrite.
type contentTypeCache struct {
	now       func() time.Time
	ttl       time.Duration
	fetchedAt time.Time
	types     []ContentType
}

func newContentTypeCache(now func() time.Time) *contentTypeCache {
	return &contentTypeCache{now: now}
}

func (c *contentTypeCache) get() ([]ContentType, bool) {
	if c.types == nil {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.types, true
}

func (c *contentTypeCache) set(types []ContentType) {
	c.types = types
	c.fetchedAt = c.now()
}

type ContentTypesService struct {
	client *Client
	cache  *contentTypeCache
}

// List returns the backend's content-type descriptors, fetching them on
// the first successful call and serving the cache afterwards. A failed
// fetch leaves the cache empty so the next call tries again.
func (s *ContentTypesService) List() ([]ContentType, error) {
	if types, ok := s.cache.get(); ok {
		return types, nil
	}

	path := pathContentTypes
	if s.client.Options.DevMode {
		path = pathContentTypesDev
	}

	body, err := s.client.get(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch content types: %s", ErrBackend, err.Error())
	}

	var res contentTypesResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("%w: malformed content types response: %s", ErrBackend, err.Error())
	}

	types := make([]ContentType, 0, len(res.Data))
	for _, item := range res.Data {
		if isInternalUID(item.UID) {
			continue
		}
		types = append(types, item.descriptor())
	}

	s.cache.set(types)
	return types, nil
}

// Get returns the descriptor for a single UID, or nil when the backend
// does not expose it.
func (s *ContentTypesService) Get(uid string) (*ContentType, error) {
	types, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range types {
		if types[i].UID == uid {
			return &types[i], nil
		}
	}
	return nil, nil
}

func isInternalUID(uid string) bool {
	for _, prefix := range internalPrefixes {
		if strings.HasPrefix(uid, prefix) {
			return true
		}
	}
	return false
}

func (item contentTypeItem) descriptor() ContentType {
	ct := ContentType{
		UID:            item.UID,
		CollectionName: item.CollectionName,
		DisplayName:    item.DisplayName,
		Description:    item.Description,
	}
	if ct.CollectionName == "" {
		ct.CollectionName = item.Schema.CollectionName
	}
	if ct.CollectionName == "" {
		ct.CollectionName = item.APIID
	}
	if ct.CollectionName == "" {
		if collection, err := collectionFromUID(item.UID); err == nil {
			ct.CollectionName = collection
		}
	}
	if ct.DisplayName == "" {
		ct.DisplayName = item.Schema.DisplayName
	}
	if ct.DisplayName == "" {
		ct.DisplayName = item.Info.DisplayName
	}
	if ct.DisplayName == "" {
		ct.DisplayName = cases.Title(language.Und).String(ct.CollectionName)
	}
	if ct.Description == "" {
		ct.Description = item.Schema.Description
	}
	if ct.Description == "" {
		ct.Description = item.Info.Description
	}
	return ct
}

// collectionFromUID derives the REST path segment from a namespaced UID:
// api::article.article names the "article" collection.
func collectionFromUID(uid string) (string, error) {
	i := strings.LastIndex(uid, ".")
	if i < 0 || i == len(uid)-1 {
		return "", fmt.Errorf("%w: content type %q has no collection segment", ErrInvalidParams, uid)
	}
	return uid[i+1:], nil
}
