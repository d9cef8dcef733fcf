package domain

import "context"

// Admin is a console operator account.
type Admin struct {
	BaseModel
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
}

// AdminRepository defines the data access interface for admin accounts.
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByID(ctx context.Context, id uint) (*Admin, error)
	GetByEmail(ctx context.Context, email string) (*Admin, error)
}
