package domain

import "context"

// Provider is a business offering services on the marketplace.
type Provider struct {
	BaseModel
	Name     string  `gorm:"size:100;not null" json:"name"`
	Email    string  `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone    string  `gorm:"size:40" json:"phone"`
	Category string  `gorm:"size:60;index" json:"category"`
	Location string  `gorm:"size:100" json:"location"`
	Verified bool    `gorm:"not null;default:false" json:"verified"`
	Rating   float64 `json:"rating"`
}

// ProviderRepository defines the data access interface for providers.
type ProviderRepository interface {
	Create(ctx context.Context, provider *Provider) error
	GetByID(ctx context.Context, id uint) (*Provider, error)
	List(ctx context.Context, req PageRequest) (*Page[Provider], error)
	SetVerified(ctx context.Context, id uint, verified bool) (*Provider, error)
}

// ProviderService defines the business logic interface for providers.
type ProviderService interface {
	GetProvider(ctx context.Context, id uint) (*Provider, error)
	ListProviders(ctx context.Context, req PageRequest) (*Page[Provider], error)
	Verify(ctx context.Context, id uint) (*Provider, error)
	Unverify(ctx context.Context, id uint) (*Provider, error)
}
