package console

import (
	"cmp"
	"context"
	"strconv"

	"github.com/simp-lee/svcadmin/internal/client"
	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/listview"
)

// Service status labels. A service is Active exactly when it is verified.
const (
	ServiceActive   = "Active"
	ServiceInactive = "Inactive"
)

var serviceSorts = map[string]string{
	"name-asc":   "name:asc",
	"price-asc":  "price:asc",
	"price-desc": "price:desc",
}

// ServiceStatus returns the label shown for s.
func ServiceStatus(s domain.Service) string {
	if s.Verified {
		return ServiceActive
	}
	return ServiceInactive
}

// Services is the services list screen.
type Services struct {
	*listview.Controller[domain.Service, uint]
	api *client.Client
}

// NewServices creates the services controller. Pages are cut by the API.
func NewServices(api *client.Client, opts Options) (*Services, error) {
	rules := listview.Rules[domain.Service, uint]{
		ID: func(s domain.Service) uint { return s.ID },
		SearchFields: []func(domain.Service) string{
			func(s domain.Service) string { return s.Name },
			func(s domain.Service) string { return s.Category },
			func(s domain.Service) string { return s.ProviderName },
		},
		Filters: map[string]listview.Filter[domain.Service]{
			"category": {Value: func(s domain.Service) string { return s.Category }},
			"status":   {Value: ServiceStatus},
			"featured": {Value: func(s domain.Service) string { return strconv.FormatBool(s.Featured) }},
		},
		Sorts: map[string]func(a, b domain.Service) int{
			"name-asc":   func(a, b domain.Service) int { return cmp.Compare(a.Name, b.Name) },
			"price-asc":  func(a, b domain.Service) int { return cmp.Compare(a.Price, b.Price) },
			"price-desc": func(a, b domain.Service) int { return cmp.Compare(b.Price, a.Price) },
		},
		Paging: listview.PagingServer,
	}
	src := listview.SourceFunc[domain.Service](func(ctx context.Context, p listview.ListParams) (listview.FetchResult[domain.Service], error) {
		return api.ListServices(ctx, translateSort(p, serviceSorts))
	})

	c, err := newController(opts, rules, src, "name-asc")
	if err != nil {
		return nil, err
	}
	return &Services{Controller: c, api: api}, nil
}

// ToggleFeatured flips the service's featured flag.
func (s *Services) ToggleFeatured(ctx context.Context, id uint) error {
	current, ok := s.Get(id)
	if !ok {
		return domain.NewAppError(domain.CodeNotFound, "service is not in the list", nil)
	}
	want := !current.Featured
	patch := func(sv domain.Service) (domain.Service, error) {
		sv.Featured = want
		return sv, nil
	}
	return s.Mutate(ctx, id, string(OpToggleFeatured), patch, func(ctx context.Context) (*domain.Service, error) {
		return s.api.SetServiceFeatured(ctx, id, want)
	})
}

// ToggleStatus switches the service between Active and Inactive.
func (s *Services) ToggleStatus(ctx context.Context, id uint) error {
	current, ok := s.Get(id)
	if !ok {
		return domain.NewAppError(domain.CodeNotFound, "service is not in the list", nil)
	}
	want := !current.Verified
	patch := func(sv domain.Service) (domain.Service, error) {
		sv.Verified = want
		return sv, nil
	}
	return s.Mutate(ctx, id, string(OpToggleStatus), patch, func(ctx context.Context) (*domain.Service, error) {
		return s.api.SetServiceActive(ctx, id, want)
	})
}

// Delete removes the service.
func (s *Services) Delete(ctx context.Context, id uint) error {
	return s.Remove(ctx, id, string(OpDeleteService), func(ctx context.Context) error {
		return s.api.DeleteService(ctx, id)
	})
}
