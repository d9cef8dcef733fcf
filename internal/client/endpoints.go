package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/listview"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	var resp tokenResponse
	if err := c.send(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp, false); err != nil {
		return "", time.Time{}, err
	}
	return resp.Token, time.Unix(resp.ExpiresAt, 0), nil
}

func idPath(resource string, id uint, action ...string) string {
	p := resource + "/" + strconv.FormatUint(uint64(id), 10)
	for _, a := range action {
		p += "/" + a
	}
	return p
}

// ListBookings returns one page of bookings.
func (c *Client) ListBookings(ctx context.Context, p listview.ListParams) (listview.FetchResult[domain.Booking], error) {
	return List[domain.Booking](ctx, c, "/bookings", ListQuery(p), p.Size)
}

// UpdateBookingStatus moves a booking to status.
func (c *Client) UpdateBookingStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	var b domain.Booking
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/bookings/"+url.PathEscape(id)+"/status", nil, body, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListProviders returns one page of providers.
func (c *Client) ListProviders(ctx context.Context, p listview.ListParams) (listview.FetchResult[domain.Provider], error) {
	return List[domain.Provider](ctx, c, "/providers", ListQuery(p), p.Size)
}

// VerifyProvider marks a provider verified.
func (c *Client) VerifyProvider(ctx context.Context, id uint) (*domain.Provider, error) {
	return c.patchProvider(ctx, idPath("/providers", id, "verify"))
}

// UnverifyProvider clears a provider's verification.
func (c *Client) UnverifyProvider(ctx context.Context, id uint) (*domain.Provider, error) {
	return c.patchProvider(ctx, idPath("/providers", id, "unverify"))
}

func (c *Client) patchProvider(ctx context.Context, path string) (*domain.Provider, error) {
	var p domain.Provider
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListServices returns one page of services.
func (c *Client) ListServices(ctx context.Context, p listview.ListParams) (listview.FetchResult[domain.Service], error) {
	return List[domain.Service](ctx, c, "/services", ListQuery(p), p.Size)
}

// SetServiceFeatured sets or clears a service's featured flag.
func (c *Client) SetServiceFeatured(ctx context.Context, id uint, featured bool) (*domain.Service, error) {
	return c.patchService(ctx, idPath("/services", id, "featured"), map[string]bool{"featured": featured})
}

// SetServiceActive activates or deactivates a service.
func (c *Client) SetServiceActive(ctx context.Context, id uint, active bool) (*domain.Service, error) {
	return c.patchService(ctx, idPath("/services", id, "status"), map[string]bool{"active": active})
}

func (c *Client) patchService(ctx context.Context, path string, body any) (*domain.Service, error) {
	var s domain.Service
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteService removes a service.
func (c *Client) DeleteService(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, idPath("/services", id), nil, nil, nil)
}

// ListReviews returns every review. Paging happens in the caller.
func (c *Client) ListReviews(ctx context.Context, p listview.ListParams) (listview.FetchResult[domain.Review], error) {
	q := url.Values{}
	if rating := p.Filters["rating"]; rating != "" {
		q.Set("rating", rating)
	}
	return List[domain.Review](ctx, c, "/reviews", q, 0)
}

// DeleteReview removes a review.
func (c *Client) DeleteReview(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, idPath("/reviews", id), nil, nil, nil)
}

// Settings returns the platform settings.
func (c *Client) Settings(ctx context.Context) (*domain.Settings, error) {
	var s domain.Settings
	if err := c.do(ctx, http.MethodGet, "/settings", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSettings replaces the platform settings.
func (c *Client) UpdateSettings(ctx context.Context, s domain.Settings) (*domain.Settings, error) {
	var saved domain.Settings
	if err := c.do(ctx, http.MethodPut, "/settings", nil, s, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// ReportSummary returns the dashboard figures.
func (c *Client) ReportSummary(ctx context.Context) (*domain.ReportSummary, error) {
	var r domain.ReportSummary
	if err := c.do(ctx, http.MethodGet, "/reports/summary", nil, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
