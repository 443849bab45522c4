package strapi

import (
	"encoding/json"
)

// ContentType describes one backend collection. Derived entirely from the
// backend's metadata endpoint; immutable once fetched.
type ContentType struct {
	UID            string `json:"uid"`
	CollectionName string `json:"collectionName"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description"`
}

// EntryList is the backend's collection response: opaque records plus
// opaque pagination metadata, passed through unmodified in shape.
type EntryList struct {
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// contentTypeItem covers both metadata endpoint variants: the plain
// listing carries flat fields, the content-type-builder variant nests
// them under schema (or info on older versions).
type contentTypeItem struct {
	UID            string `json:"uid"`
	APIID          string `json:"apiID"`
	CollectionName string `json:"collectionName"`
	DisplayName    string `json:"displayName"`
	Description    string `json:"description"`
	Schema         struct {
		CollectionName string `json:"collectionName"`
		DisplayName    string `json:"displayName"`
		Description    string `json:"description"`
	} `json:"schema"`
	Info struct {
		DisplayName string `json:"displayName"`
		Description string `json:"description"`
	} `json:"info"`
}

type contentTypesResponse struct {
	Data []contentTypeItem `json:"data"`
}

type entryEnvelope struct {
	Data json.RawMessage `json:"data"`
}

type errorResponse struct {
	Error struct {
		Status  int    `json:"status"`
		Name    string `json:"name"`
		Message string `json:"message"`
	} `json:"error"`
}
