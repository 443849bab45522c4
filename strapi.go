package strapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	timeout        = 10 * time.Second
	defaultBaseURL = "http://localhost:1337"

	pathContentTypes    = "/api/content-types"
	pathContentTypesDev = "/api/content-type-builder/content-types"
	pathCollection      = "/api/%s"
	pathEntry           = "/api/%s/%s"
	pathUpload          = "/api/upload"
)

type Client struct {
	client  *http.Client
	Options *ClientOptions
	common  service

	ContentTypes *ContentTypesService
	Entries      *EntriesService
	Upload       *UploadService
}

type ClientOptions struct {
	BaseURL string
	Token   string
	DevMode bool
}

type service struct {
	client *Client
}

func NewClient(options *ClientOptions) *Client {
	if options.BaseURL == "" {
		options.BaseURL = defaultBaseURL
	}
	c := &Client{
		Options: options,
		client: &http.Client{
			Timeout: timeout,
		},
	}
	c.common.client = c
	c.ContentTypes = &ContentTypesService{client: c, cache: newContentTypeCache(time.Now)}
	c.Entries = (*EntriesService)(&c.common)
	c.Upload = (*UploadService)(&c.common)
	return c
}

func (c *Client) get(path string, query url.Values) ([]byte, error) {
	return c.req(http.MethodGet, path, query, "", nil)
}

func (c *Client) post(path string, body io.Reader) ([]byte, error) {
	return c.req(http.MethodPost, path, nil, "application/json", body)
}

func (c *Client) put(path string, body io.Reader) ([]byte, error) {
	return c.req(http.MethodPut, path, nil, "application/json", body)
}

func (c *Client) delete(path string) ([]byte, error) {
	return c.req(http.MethodDelete, path, nil, "", nil)
}

func (c *Client) req(method string, path string, query url.Values, contentType string, body io.Reader) ([]byte, error) {
	u := strings.TrimRight(c.Options.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequest(method, u, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.Options.Token))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices {
		return io.ReadAll(res.Body)
	}

	apiErr := &apiError{Status: res.StatusCode, Message: res.Status}
	var e errorResponse
	if err := json.NewDecoder(res.Body).Decode(&e); err == nil && e.Error.Message != "" {
		apiErr.Message = e.Error.Message
	}
	return nil, apiErr
}

// encodeQuery flattens the translated query map into Strapi's bracket
// convention: filters[title][$contains]=hello, pagination[page]=1,
// sort[0]=title:asc. Values are encoded as-is, never re-shaped.
func encodeQuery(params map[string]interface{}) url.Values {
	q := url.Values{}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		encodeQueryValue(q, k, params[k])
	}
	return q
}

func encodeQueryValue(q url.Values, key string, value interface{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			encodeQueryValue(q, fmt.Sprintf("%s[%s]", key, k), v[k])
		}
	case []interface{}:
		for i, item := range v {
			encodeQueryValue(q, fmt.Sprintf("%s[%d]", key, i), item)
		}
	case []string:
		for i, item := range v {
			q.Set(fmt.Sprintf("%s[%d]", key, i), item)
		}
	case nil:
		// skip
	default:
		q.Set(key, fmt.Sprintf("%v", v))
	}
}
