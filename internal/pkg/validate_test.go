package pkg

import (
	"errors"
	"testing"

	"github.com/simp-lee/svcadmin/internal/domain"
)

func TestValidateStruct(t *testing.T) {
	type inner struct {
		Currency string `json:"currency" binding:"required,len=3"`
	}
	type form struct {
		Name  string `json:"name" binding:"required"`
		Inner inner  `json:"inner"`
	}

	if err := ValidateStruct(&form{Name: "ok", Inner: inner{Currency: "USD"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := ValidateStruct(&form{Inner: inner{Currency: "US"}})
	var appErr *domain.AppError
	if !errors.As(err, &appErr) || appErr.Code != domain.CodeValidation {
		t.Fatalf("expected validation AppError, got %v", err)
	}
	if _, ok := appErr.Fields["name"]; !ok {
		t.Errorf("expected 'name' error, got %v", appErr.Fields)
	}
	if _, ok := appErr.Fields["inner.currency"]; !ok {
		t.Errorf("expected 'inner.currency' error, got %v", appErr.Fields)
	}
}
