package service

import (
	"context"
	"errors"
	"testing"
)

func floatPtr(f float64) *float64 { return &f }

func TestCreateProductValidationErrors(t *testing.T) {
	svc := &CatalogService{}

	tests := []struct {
		name    string
		input   CreateProductInput
		wantErr error
	}{
		{
			name:    "missing_name",
			input:   CreateProductInput{Price: floatPtr(9.99)},
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing_price",
			input:   CreateProductInput{Name: "Widget"},
			wantErr: ErrMissingFields,
		},
		{
			name:    "missing_both",
			input:   CreateProductInput{Description: "only a description"},
			wantErr: ErrMissingFields,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), test.input)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("expected %v, got %v", test.wantErr, err)
			}
		})
	}
}
