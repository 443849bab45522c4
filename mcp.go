package strapi

import (
	"encoding/json"
	"fmt"

	"github.com/localrivet/gomcp/server"
	"github.com/mitchellh/mapstructure"
)

const ServerName = "strapi-mcp"

// Handler implements the named MCP operations on top of the client
// services. Required arguments are checked here, before any backend call;
// a missing argument never reaches the network.
type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

type GetEntriesArgs struct {
	ContentType string                 `json:"contentType"`
	Filters     map[string]interface{} `json:"filters,omitempty"`
	Pagination  map[string]interface{} `json:"pagination,omitempty"`
	Sort        []string               `json:"sort,omitempty"`
	Populate    interface{}            `json:"populate,omitempty"`
}

type GetEntryArgs struct {
	ContentType string `json:"contentType"`
	ID          string `json:"id"`
}

type CreateEntryArgs struct {
	ContentType string                 `json:"contentType"`
	Data        map[string]interface{} `json:"data"`
}

type UpdateEntryArgs struct {
	ContentType string                 `json:"contentType"`
	ID          string                 `json:"id"`
	Data        map[string]interface{} `json:"data"`
}

type DeleteEntryArgs struct {
	ContentType string `json:"contentType"`
	ID          string `json:"id"`
}

type UploadMediaArgs struct {
	FileData string `json:"fileData"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

func (h *Handler) ListContentTypes() (string, error) {
	types, err := h.client.ContentTypes.List()
	if err != nil {
		return "", err
	}
	return jsonText(types)
}

func (h *Handler) GetEntries(args GetEntriesArgs) (string, error) {
	if args.ContentType == "" {
		return "", fmt.Errorf("%w: contentType is required", ErrInvalidParams)
	}

	query := &Query{
		Filters:  args.Filters,
		Sort:     args.Sort,
		Populate: args.Populate,
	}
	if args.Pagination != nil {
		pagination := &Pagination{}
		if err := mapstructure.Decode(args.Pagination, pagination); err != nil {
			return "", fmt.Errorf("%w: pagination: %s", ErrInvalidParams, err.Error())
		}
		query.Pagination = pagination
	}

	list, err := h.client.Entries.List(args.ContentType, query)
	if err != nil {
		return "", err
	}
	return jsonText(list)
}

func (h *Handler) GetEntry(args GetEntryArgs) (string, error) {
	if args.ContentType == "" {
		return "", fmt.Errorf("%w: contentType is required", ErrInvalidParams)
	}
	if args.ID == "" {
		return "", fmt.Errorf("%w: id is required", ErrInvalidParams)
	}

	record, err := h.client.Entries.Get(args.ContentType, args.ID)
	if err != nil {
		return "", err
	}
	return rawText(record)
}

func (h *Handler) CreateEntry(args CreateEntryArgs) (string, error) {
	if args.ContentType == "" {
		return "", fmt.Errorf("%w: contentType is required", ErrInvalidParams)
	}
	if args.Data == nil {
		return "", fmt.Errorf("%w: data is required", ErrInvalidParams)
	}

	record, err := h.client.Entries.Create(args.ContentType, args.Data)
	if err != nil {
		return "", err
	}
	return rawText(record)
}

func (h *Handler) UpdateEntry(args UpdateEntryArgs) (string, error) {
	if args.ContentType == "" {
		return "", fmt.Errorf("%w: contentType is required", ErrInvalidParams)
	}
	if args.ID == "" {
		return "", fmt.Errorf("%w: id is required", ErrInvalidParams)
	}
	if args.Data == nil {
		return "", fmt.Errorf("%w: data is required", ErrInvalidParams)
	}

	record, err := h.client.Entries.Update(args.ContentType, args.ID, args.Data)
	if err != nil {
		return "", err
	}
	return rawText(record)
}

// DeleteEntry returns a confirmation message instead of JSON: the backend
// answers a delete with no body.
func (h *Handler) DeleteEntry(args DeleteEntryArgs) (string, error) {
	if args.ContentType == "" {
		return "", fmt.Errorf("%w: contentType is required", ErrInvalidParams)
	}
	if args.ID == "" {
		return "", fmt.Errorf("%w: id is required", ErrInvalidParams)
	}

	if err := h.client.Entries.Delete(args.ContentType, args.ID); err != nil {
		return "", err
	}
	return fmt.Sprintf("Deleted entry %s from %s", args.ID, args.ContentType), nil
}

func (h *Handler) UploadMedia(args UploadMediaArgs) (string, error) {
	if args.FileData == "" {
		return "", fmt.Errorf("%w: fileData is required", ErrInvalidParams)
	}
	if args.FileName == "" {
		return "", fmt.Errorf("%w: fileName is required", ErrInvalidParams)
	}
	if args.FileType == "" {
		return "", fmt.Errorf("%w: fileType is required", ErrInvalidParams)
	}

	asset, err := h.client.Upload.Upload(args.FileData, args.FileName, args.FileType)
	if err != nil {
		return "", err
	}
	return rawText(asset)
}

// ReadResource serves the resource-read path: parse the address, then
// route to a single-entry get or a constrained list. Failures here
// propagate as protocol faults, unlike tool failures.
func (h *Handler) ReadResource(uri string) (server.JSONResource, error) {
	addr, err := ParseResourceURI(uri)
	if err != nil {
		return server.JSONResource{}, err
	}

	if addr.EntryID != "" {
		record, err := h.client.Entries.Get(addr.ContentTypeUID, addr.EntryID)
		if err != nil {
			return server.JSONResource{}, err
		}
		return server.JSONResource{Data: record}, nil
	}

	list, err := h.client.Entries.List(addr.ContentTypeUID, addr.Query)
	if err != nil {
		return server.JSONResource{}, err
	}
	return server.JSONResource{Data: list}, nil
}

// NewServer wires the MCP surface: the named tools, the two template
// resources, and one advertised resource per content type. The directory
// fetch at startup is best-effort; when the backend is down the template
// resources still serve reads and the directory is fetched lazily later.
func NewServer(client *Client) server.Server {
	h := NewHandler(client)

	srv := server.NewServer(ServerName).
		Tool("list_content_types", "List all content types available in Strapi",
			func(ctx *server.Context, args struct{}) (string, error) {
				return h.ListContentTypes()
			}).
		Tool("get_entries", "Get entries of a content type, with optional filters, pagination, sort and populate",
			func(ctx *server.Context, args GetEntriesArgs) (string, error) {
				return h.GetEntries(args)
			}).
		Tool("get_entry", "Get a single entry by id",
			func(ctx *server.Context, args GetEntryArgs) (string, error) {
				return h.GetEntry(args)
			}).
		Tool("create_entry", "Create a new entry",
			func(ctx *server.Context, args CreateEntryArgs) (string, error) {
				return h.CreateEntry(args)
			}).
		Tool("update_entry", "Update an existing entry",
			func(ctx *server.Context, args UpdateEntryArgs) (string, error) {
				return h.UpdateEntry(args)
			}).
		Tool("delete_entry", "Delete an entry",
			func(ctx *server.Context, args DeleteEntryArgs) (string, error) {
				return h.DeleteEntry(args)
			}).
		Tool("upload_media", "Upload a base64-encoded file to the media library",
			func(ctx *server.Context, args UploadMediaArgs) (string, error) {
				return h.UploadMedia(args)
			})

	readHandler := func(ctx *server.Context, params map[string]interface{}) (server.JSONResource, error) {
		return h.ReadResource(ctx.Request.ResourcePath)
	}
	srv.Resource("strapi://content-type/{uid}", "Entries of a Strapi content type", readHandler)
	srv.Resource("strapi://content-type/{uid}/{id}", "A single Strapi entry", readHandler)

	if types, err := client.ContentTypes.List(); err == nil {
		for _, ct := range types {
			desc := ct.DisplayName
			if ct.Description != "" {
				desc = fmt.Sprintf("%s: %s", ct.DisplayName, ct.Description)
			}
			srv.Resource(ContentTypeResourceURI(ct.UID), desc, readHandler)
		}
	}

	return srv
}

func jsonText(v interface{}) (string, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func rawText(raw json.RawMessage) (string, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", fmt.Errorf("%w: malformed record: %s", ErrBackend, err.Error())
	}
	return jsonText(v)
}
