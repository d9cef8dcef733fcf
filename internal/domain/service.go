package domain

import "context"

// Service is a bookable offering listed by a provider.
//
// Verified doubles as the listing's activation flag: a service is shown as
// "Active" when verified and "Inactive" otherwise.
type Service struct {
	BaseModel
	Name         string  `gorm:"size:100;not null" json:"name"`
	Category     string  `gorm:"size:60;index" json:"category"`
	ProviderName string  `gorm:"size:100" json:"provider_name"`
	Price        float64 `json:"price"`
	Verified     bool    `gorm:"not null;default:false" json:"verified"`
	Featured     bool    `gorm:"not null;default:false" json:"featured"`
}

// ServiceRepository defines the data access interface for services.
type ServiceRepository interface {
	Create(ctx context.Context, service *Service) error
	GetByID(ctx context.Context, id uint) (*Service, error)
	List(ctx context.Context, req PageRequest) (*Page[Service], error)
	UpdateFlags(ctx context.Context, id uint, fields map[string]any) (*Service, error)
	Delete(ctx context.Context, id uint) error
}

// CatalogService defines the business logic interface for the service catalog.
type CatalogService interface {
	GetService(ctx context.Context, id uint) (*Service, error)
	ListServices(ctx context.Context, req PageRequest) (*Page[Service], error)
	SetFeatured(ctx context.Context, id uint, featured bool) (*Service, error)
	SetActive(ctx context.Context, id uint, active bool) (*Service, error)
	DeleteService(ctx context.Context, id uint) error
}
