package console

import (
	"cmp"
	"context"
	"strconv"
	"strings"

	"github.com/simp-lee/svcadmin/internal/client"
	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/listview"
)

// Provider status labels.
const (
	ProviderActive  = "active"
	ProviderPending = "pending"
)

var providerSorts = map[string]string{
	"name-asc":    "name:asc",
	"rating-desc": "rating:desc",
	"newest":      "created_at:desc",
}

// ProviderStatus returns the label shown for p.
func ProviderStatus(p domain.Provider) string {
	if p.Verified {
		return ProviderActive
	}
	return ProviderPending
}

// Providers is the providers list screen.
type Providers struct {
	*listview.Controller[domain.Provider, uint]
	api *client.Client
}

// NewProviders creates the providers controller. Pages are cut by the API.
func NewProviders(api *client.Client, opts Options) (*Providers, error) {
	rules := listview.Rules[domain.Provider, uint]{
		ID: func(p domain.Provider) uint { return p.ID },
		SearchFields: []func(domain.Provider) string{
			func(p domain.Provider) string { return p.Name },
			func(p domain.Provider) string { return p.Email },
			func(p domain.Provider) string { return p.Category },
			func(p domain.Provider) string { return p.Location },
		},
		Filters: map[string]listview.Filter[domain.Provider]{
			"verified": {Value: func(p domain.Provider) string { return strconv.FormatBool(p.Verified) }},
			"category": {Value: func(p domain.Provider) string { return p.Category }},
			"status": {Match: func(p domain.Provider, v string) bool {
				return strings.EqualFold(ProviderStatus(p), strings.TrimSpace(v))
			}},
		},
		Sorts: map[string]func(a, b domain.Provider) int{
			"name-asc":    func(a, b domain.Provider) int { return cmp.Compare(a.Name, b.Name) },
			"rating-desc": func(a, b domain.Provider) int { return cmp.Compare(b.Rating, a.Rating) },
			"newest":      func(a, b domain.Provider) int { return b.CreatedAt.Compare(a.CreatedAt) },
		},
		Paging: listview.PagingServer,
	}
	src := listview.SourceFunc[domain.Provider](func(ctx context.Context, p listview.ListParams) (listview.FetchResult[domain.Provider], error) {
		return api.ListProviders(ctx, translateSort(p, providerSorts))
	})

	c, err := newController(opts, rules, src, "name-asc")
	if err != nil {
		return nil, err
	}
	return &Providers{Controller: c, api: api}, nil
}

// Approve verifies an unverified provider.
func (p *Providers) Approve(ctx context.Context, id uint) error {
	patch := func(pr domain.Provider) (domain.Provider, error) {
		if pr.Verified {
			return pr, domain.NewAppError(domain.CodeConflict, "provider is already verified", nil)
		}
		pr.Verified = true
		return pr, nil
	}
	return p.Mutate(ctx, id, string(OpApprove), patch, func(ctx context.Context) (*domain.Provider, error) {
		return p.api.VerifyProvider(ctx, id)
	})
}

// Reject declines a provider's application.
func (p *Providers) Reject(ctx context.Context, id uint) error {
	return p.clearVerified(ctx, id, OpReject)
}

// Unverify withdraws a provider's verification.
func (p *Providers) Unverify(ctx context.Context, id uint) error {
	return p.clearVerified(ctx, id, OpUnverify)
}

func (p *Providers) clearVerified(ctx context.Context, id uint, op Operation) error {
	patch := func(pr domain.Provider) (domain.Provider, error) {
		pr.Verified = false
		return pr, nil
	}
	return p.Mutate(ctx, id, string(op), patch, func(ctx context.Context) (*domain.Provider, error) {
		return p.api.UnverifyProvider(ctx, id)
	})
}
