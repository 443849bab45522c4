package strapi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ResourceAddress is the parsed form of a strapi:// resource URI. When
// EntryID is set the query is ignored: single-record reads are not
// filterable.
type ResourceAddress struct {
	ContentTypeUID string
	EntryID        string
	Query          *Query
}

var resourcePattern = regexp.MustCompile(`^strapi://content-type/([^/?]+)(?:/([^/?]+))?(?:\?(.*))?$`)

// ContentTypeResourceURI formats the address of a whole collection.
func ContentTypeResourceURI(uid string) string {
	return fmt.Sprintf("strapi://content-type/%s", uid)
}

// EntryResourceURI formats the address of a single entry.
func EntryResourceURI(uid string, entryID string) string {
	return fmt.Sprintf("strapi://content-type/%s/%s", uid, entryID)
}

// ParseResourceURI parses a resource URI against the fixed grammar
// strapi://content-type/{uid}[/{id}][?query]. Grammar failures are local
// structural errors; no backend call is ever attempted here.
func ParseResourceURI(raw string) (*ResourceAddress, error) {
	m := resourcePattern.FindStringSubmatch(raw)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, raw)
	}

	addr := &ResourceAddress{
		ContentTypeUID: m[1],
		EntryID:        m[2],
	}
	if addr.EntryID != "" || m[3] == "" {
		return addr, nil
	}

	query, err := parseResourceQuery(m[3])
	if err != nil {
		return nil, err
	}
	addr.Query = query
	return addr, nil
}

func parseResourceQuery(raw string) (*Query, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
	}

	query := &Query{}
	hasAny := false

	if v := values.Get("filters"); v != "" {
		var filters map[string]interface{}
		if err := json.Unmarshal([]byte(v), &filters); err != nil {
			return nil, fmt.Errorf("%w: filters must be a JSON object: %s", ErrInvalidQuery, err.Error())
		}
		query.Filters = filters
		hasAny = true
	}

	pagination := &Pagination{}
	hasPagination := false
	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: page must be an integer: %q", ErrInvalidQuery, v)
		}
		pagination.Page = page
		hasPagination = true
	}
	if v := values.Get("pageSize"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%w: pageSize must be an integer: %q", ErrInvalidQuery, v)
		}
		pagination.PageSize = pageSize
		hasPagination = true
	}
	if hasPagination {
		query.Pagination = pagination
		hasAny = true
	}

	if v := values.Get("sort"); v != "" {
		query.Sort = strings.Split(v, ",")
		hasAny = true
	}

	if v := values.Get("populate"); v != "" {
		query.Populate = parsePopulate(v)
		hasAny = true
	}

	if !hasAny {
		return nil, nil
	}
	return query, nil
}

// parsePopulate resolves the encoding ambiguity of the populate
// parameter: a JSON document (list or object) wins, anything else is a
// comma-separated list of relation names.
func parsePopulate(raw string) interface{} {
	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		switch parsed.(type) {
		case []interface{}, map[string]interface{}:
			return parsed
		}
	}
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		list := make([]interface{}, 0, len(parts))
		for _, p := range parts {
			list = append(list, p)
		}
		return list
	}
	return raw
}
