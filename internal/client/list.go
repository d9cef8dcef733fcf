package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/listview"
)

// listBody is the union of the object shapes list endpoints return.
type listBody[T any] struct {
	Content       []T    `json:"content"`
	Items         []T    `json:"items"`
	TotalElements *int64 `json:"total_elements"`
	Total         *int64 `json:"total"`
	TotalPages    int    `json:"total_pages"`
}

// DecodeList normalizes a list payload into a FetchResult. It accepts a bare
// array, a page object with "content" or an object with "items".
func DecodeList[T any](data json.RawMessage, pageSize int) (listview.FetchResult[T], error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return listview.FetchResult[T]{Items: []T{}, TotalPages: 1}, nil
	}

	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return listview.FetchResult[T]{}, domain.NewAppError(domain.CodeInternal, "decode list", err)
		}
		return result(items, len(items), 0, pageSize), nil
	}

	var body listBody[T]
	if err := json.Unmarshal(data, &body); err != nil {
		return listview.FetchResult[T]{}, domain.NewAppError(domain.CodeInternal, "decode list", err)
	}
	items := body.Content
	if items == nil {
		items = body.Items
	}
	total := len(items)
	switch {
	case body.TotalElements != nil:
		total = int(*body.TotalElements)
	case body.Total != nil:
		total = int(*body.Total)
	}
	return result(items, total, body.TotalPages, pageSize), nil
}

func result[T any](items []T, total, pages, pageSize int) listview.FetchResult[T] {
	if items == nil {
		items = []T{}
	}
	if pages < 1 {
		pages = listview.PageCount(total, pageSize)
	}
	return listview.FetchResult[T]{Items: items, TotalCount: total, TotalPages: pages}
}

// ListQuery translates controller params into API query parameters. Page
// stays 0-indexed. Filters are sent as-is.
func ListQuery(p listview.ListParams) url.Values {
	q := url.Values{}
	if p.Size > 0 {
		q.Set("page", strconv.Itoa(p.Page))
		q.Set("size", strconv.Itoa(p.Size))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Sort != "" {
		q.Set("sort", p.Sort)
	}
	for k, v := range p.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// List fetches path with query and normalizes the payload.
func List[T any](ctx context.Context, c *Client, path string, query url.Values, pageSize int) (listview.FetchResult[T], error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, query, nil, &raw); err != nil {
		return listview.FetchResult[T]{}, err
	}
	return DecodeList[T](raw, pageSize)
}
