package pkg

import (
	"context"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/svcadmin/internal/domain"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// reservedParams lists query parameter names used for pagination, sorting and
// search, not for filtering.
var reservedParams = map[string]bool{
	"page":   true,
	"size":   true,
	"sort":   true,
	"search": true,
}

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// FieldKind describes how a filter value is converted before it reaches SQL.
type FieldKind int

const (
	KindString FieldKind = iota
	KindBool
	KindInt
)

// FilterField maps a public filter name onto a column.
type FilterField struct {
	Column string
	Kind   FieldKind
}

// ListOptions declares which columns a List query may search, filter and sort on.
type ListOptions struct {
	SearchColumns []string
	Filters       map[string]FilterField
	SortFields    []string
	DefaultSort   string
	// KeyColumn is used as the final ORDER BY term so pages are stable.
	KeyColumn string
}

// ParsePageRequest extracts pagination, sorting, search and filtering parameters
// from query params. The "page" parameter is 0-indexed on the wire and is
// returned 1-indexed.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	if page < 0 {
		page = 0
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			filter[key] = values[0]
		}
	}

	return domain.PageRequest{
		Page:     page + 1,
		PageSize: pageSize,
		Sort:     c.Query("sort"),
		Search:   strings.TrimSpace(c.Query("search")),
		Filter:   filter,
	}
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET based on the page request.
func Paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		page := req.Page
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * req.PageSize
		return db.Offset(offset).Limit(req.PageSize)
	}
}

// Sort returns a GORM scope that applies ORDER BY based on the page request.
// Only field names present in the allowed list are accepted; others fall back
// to fallback. Field names are validated against a strict pattern to prevent
// SQL injection.
func Sort(req domain.PageRequest, allowed []string, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if order, ok := parseSort(req.Sort, allowed); ok {
			return db.Order(order)
		}
		if order, ok := parseSort(fallback, allowed); ok {
			return db.Order(order)
		}
		return db
	}
}

func parseSort(sort string, allowed []string) (string, bool) {
	parts := strings.SplitN(sort, ":", 2)
	if len(parts) != 2 {
		return "", false
	}

	field := strings.TrimSpace(parts[0])
	direction := strings.TrimSpace(strings.ToLower(parts[1]))

	if direction != "asc" && direction != "desc" {
		return "", false
	}
	if !validFieldName.MatchString(field) {
		return "", false
	}
	if !isAllowed(field, allowed) {
		return "", false
	}
	return field + " " + direction, true
}

// Filter returns a GORM scope that applies WHERE conditions based on the page request filters.
// Only filter keys present in allowed are applied; others are silently ignored, as
// are values that do not parse as the field's kind.
// Keys ending with "__like" produce a LIKE '%value%' condition on string fields.
func Filter(req domain.PageRequest, allowed map[string]FilterField) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range req.Filter {
			name, like := strings.CutSuffix(key, "__like")
			field, ok := allowed[name]
			if !ok || !validFieldName.MatchString(field.Column) {
				continue
			}
			if like {
				if field.Kind != KindString {
					continue
				}
				db = db.Where(field.Column+" LIKE ?", "%"+value+"%")
				continue
			}
			v, ok := convertFilterValue(value, field.Kind)
			if !ok {
				continue
			}
			db = db.Where(field.Column+" = ?", v)
		}
		return db
	}
}

func convertFilterValue(value string, kind FieldKind) (any, bool) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(value)
		return b, err == nil
	case KindInt:
		n, err := strconv.Atoi(value)
		return n, err == nil
	default:
		return value, true
	}
}

// Search returns a GORM scope matching req.Search as a case-insensitive
// substring of any of the given columns.
func Search(req domain.PageRequest, columns []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if req.Search == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + escapeLike(strings.ToLower(req.Search)) + "%"
		conds := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, col := range columns {
			if !validFieldName.MatchString(col) {
				continue
			}
			conds = append(conds, "LOWER("+col+") LIKE ? ESCAPE '\\'")
			args = append(args, pattern)
		}
		if len(conds) == 0 {
			return db
		}
		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ListPage counts and loads one page of T using the scopes above.
// Errors are returned unmapped; repositories translate them with MapDBError.
func ListPage[T any](ctx context.Context, db *gorm.DB, req domain.PageRequest, opts ListOptions) (*domain.Page[T], error) {
	var total int64
	var model T
	filtered := func() *gorm.DB {
		return db.WithContext(ctx).Model(&model).Scopes(
			Filter(req, opts.Filters),
			Search(req, opts.SearchColumns),
		)
	}

	if err := filtered().Count(&total).Error; err != nil {
		return nil, err
	}

	var items []T
	query := filtered().Scopes(
		Paginate(req),
		Sort(req, opts.SortFields, opts.DefaultSort),
		orderByKey(opts.KeyColumn),
	)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}

	return NewPage(items, total, req), nil
}

// orderByKey appends the key column as the last ORDER BY term.
func orderByKey(column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if column == "" || !validFieldName.MatchString(column) {
			return db
		}
		return db.Order(column + " asc")
	}
}

// NewPage creates a Page with computed TotalPages. TotalPages is at least 1 so
// that an empty result still has a first page to show.
func NewPage[T any](items []T, total int64, req domain.PageRequest) *domain.Page[T] {
	totalPages := 1
	if req.PageSize > 0 && total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(req.PageSize)))
	}

	if items == nil {
		items = []T{}
	}

	page := req.Page - 1
	if page < 0 {
		page = 0
	}

	return &domain.Page[T]{
		Content:       items,
		TotalElements: total,
		TotalPages:    totalPages,
		Page:          page,
		Size:          req.PageSize,
	}
}

// isAllowed checks if a field name is in the allowed list.
func isAllowed(field string, allowed []string) bool {
	return slices.Contains(allowed, field)
}
