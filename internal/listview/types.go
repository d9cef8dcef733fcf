// Package listview implements the data pipeline behind an admin list screen:
// fetch, search, filter, sort, paginate and optimistic mutation with rollback.
package listview

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"maps"
	"time"
)

const (
	// DefaultPageSize is used when Config.PageSize is not set.
	DefaultPageSize = 10
	// MaxPageSize matches the largest page the admin API serves.
	MaxPageSize = 100
	// DefaultDebounce is the quiet period before a search refetch.
	DefaultDebounce = 300 * time.Millisecond
)

// ErrClosed is returned by operations on a closed Controller.
var ErrClosed = errors.New("listview: controller closed")

// Paging selects where pages are cut.
type Paging int

const (
	// PagingServer asks the data source for one page at a time.
	PagingServer Paging = iota
	// PagingClient fetches the full collection and pages it locally.
	PagingClient
)

// Status is the controller's loading/error signal.
type Status int

const (
	StatusIdle Status = iota
	StatusFetching
	StatusMutating
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusFetching:
		return "fetching"
	case StatusMutating:
		return "mutating"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Query is the user-controlled intent. Page is 1-indexed.
type Query struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
	Sort     string
}

func (q Query) clone() Query {
	q.Filters = maps.Clone(q.Filters)
	if q.Filters == nil {
		q.Filters = map[string]string{}
	}
	return q
}

// ListParams is what a DataSource receives. Page is 0-indexed. Page and Size
// are zero when the controller pages locally.
type ListParams struct {
	Page    int
	Size    int
	Search  string
	Sort    string
	Filters map[string]string
}

// FetchResult is a normalized list response.
type FetchResult[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
}

// DataSource loads one page, or the whole collection, of entities.
type DataSource[T any] interface {
	List(ctx context.Context, params ListParams) (FetchResult[T], error)
}

// SourceFunc adapts a function to DataSource.
type SourceFunc[T any] func(ctx context.Context, params ListParams) (FetchResult[T], error)

// List implements DataSource.
func (f SourceFunc[T]) List(ctx context.Context, params ListParams) (FetchResult[T], error) {
	return f(ctx, params)
}

// Filter describes how one named filter is matched locally. Value is compared
// for exact equality unless Match is set.
type Filter[T any] struct {
	Value func(T) string
	Match func(item T, value string) bool
}

func (f Filter[T]) matches(item T, value string) bool {
	if f.Match != nil {
		return f.Match(item, value)
	}
	if f.Value == nil {
		return true
	}
	return f.Value(item) == value
}

// Rules is the pure description of how a collection is projected into a view.
type Rules[T any, K cmp.Ordered] struct {
	ID           func(T) K
	SearchFields []func(T) string
	Filters      map[string]Filter[T]
	Sorts        map[string]func(a, b T) int
	Paging       Paging
}

// Timer is the handle returned by an AfterFunc scheduler.
type Timer interface {
	Stop() bool
}

// Config configures a Controller.
type Config[T any, K cmp.Ordered] struct {
	Rules[T, K]

	Source      DataSource[T]
	DefaultSort string
	PageSize    int
	Debounce    time.Duration
	Logger      *slog.Logger

	// AfterFunc schedules debounced work. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer
}

// PendingAction is the snapshot taken when an optimistic mutation starts.
type PendingAction[T any, K cmp.Ordered] struct {
	ID        K
	Operation string
	Previous  T
	Index     int
	Removed   bool

	gen       uint64
	patch     func(T) (T, error)
	followers []K // ids after the entity when it was removed
}

// View is a consistent read of everything a list screen renders.
type View[T any] struct {
	Items      []T
	Query      Query
	TotalCount int
	TotalPages int
	Status     Status
	Err        error
}

// EventKind names a state change.
type EventKind int

const (
	EventQueryChanged EventKind = iota
	EventFetchStarted
	EventFetched
	EventFetchFailed
	EventMutationStarted
	EventMutationSettled
	EventRolledBack
	EventErrorDismissed
)

// Event is delivered to subscribers after a state change.
type Event struct {
	Kind   EventKind
	Status Status
}
