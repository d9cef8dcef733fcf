package console

import (
	"cmp"
	"context"
	"strconv"

	"github.com/simp-lee/svcadmin/internal/client"
	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/listview"
)

// Reviews is the reviews list screen. The API returns every review, so
// search, sort and paging all happen locally.
type Reviews struct {
	*listview.Controller[domain.Review, uint]
	api *client.Client
}

// NewReviews creates the reviews controller.
func NewReviews(api *client.Client, opts Options) (*Reviews, error) {
	rules := listview.Rules[domain.Review, uint]{
		ID: func(r domain.Review) uint { return r.ID },
		SearchFields: []func(domain.Review) string{
			func(r domain.Review) string { return r.CustomerName },
			func(r domain.Review) string { return r.ProviderName },
			func(r domain.Review) string { return r.ServiceName },
			func(r domain.Review) string { return r.Comment },
		},
		Filters: map[string]listview.Filter[domain.Review]{
			"rating": {Value: func(r domain.Review) string { return strconv.Itoa(r.Rating) }},
		},
		Sorts: map[string]func(a, b domain.Review) int{
			"date-desc":   func(a, b domain.Review) int { return b.CreatedAt.Compare(a.CreatedAt) },
			"date-asc":    func(a, b domain.Review) int { return a.CreatedAt.Compare(b.CreatedAt) },
			"rating-desc": func(a, b domain.Review) int { return cmp.Compare(b.Rating, a.Rating) },
			"rating-asc":  func(a, b domain.Review) int { return cmp.Compare(a.Rating, b.Rating) },
		},
		Paging: listview.PagingClient,
	}
	src := listview.SourceFunc[domain.Review](api.ListReviews)

	c, err := newController(opts, rules, src, "date-desc")
	if err != nil {
		return nil, err
	}
	return &Reviews{Controller: c, api: api}, nil
}

// Delete removes the review.
func (r *Reviews) Delete(ctx context.Context, id uint) error {
	return r.Remove(ctx, id, string(OpDeleteReview), func(ctx context.Context) error {
		return r.api.DeleteReview(ctx, id)
	})
}
