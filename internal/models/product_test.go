package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func ptr[T any](v T) *T { return &v }

func validProductInput() ProductInput {
	return ProductInput{
		Name:        ptr("Linen Shirt"),
		Price:       ptr(decimal.NewFromInt(1299)),
		SizeIDs:     []uuid.UUID{uuid.New()},
		CategoryID:  ptr(uuid.New()),
		Color:       ptr("white"),
		Description: ptr("Breathable linen"),
	}
}

func TestProductInput_ValidateCreate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *ProductInput)
		wantErr string
	}{
		{"valid", func(in *ProductInput) {}, ""},
		{"missing name", func(in *ProductInput) { in.Name = nil }, "name is required"},
		{"missing sizes", func(in *ProductInput) { in.SizeIDs = nil }, "sizes is required"},
		{"missing category", func(in *ProductInput) { in.CategoryID = nil }, "categoryId is required"},
		{"cheap", func(in *ProductInput) { in.Price = ptr(decimal.NewFromInt(99)) }, "price must be greater than or equal to 100"},
		{"negative discount", func(in *ProductInput) { in.DiscountAmount = ptr(decimal.NewFromInt(-1)) }, "discountAmount must not be negative"},
		{"percentage above 100", func(in *ProductInput) {
			in.Discount = ptr(DiscountPercentage)
			in.DiscountAmount = ptr(decimal.NewFromInt(150))
		}, "discountAmount must not exceed 100 for a percentage discount"},
		{"fixed above 100", func(in *ProductInput) {
			in.Discount = ptr(DiscountFixed)
			in.DiscountAmount = ptr(decimal.NewFromInt(150))
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validProductInput()
			tt.mutate(&in)

			err := in.ValidateCreate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateCreate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ValidateCreate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestProductInput_ApplyKeepsAbsentFields(t *testing.T) {
	p := Product{Name: "Shirt", Color: "blue", Inventory: 4, Featured: true}

	in := ProductInput{Color: ptr("white"), Inventory: ptr(0), Featured: ptr(false)}
	if err := in.ValidateUpdate(); err != nil {
		t.Fatalf("ValidateUpdate() unexpected error: %v", err)
	}
	in.Apply(&p)

	if p.Name != "Shirt" || p.Color != "white" || p.Inventory != 0 || p.Featured {
		t.Errorf("Apply() = %+v", p)
	}
	if p.InStock() {
		t.Error("product with zero inventory should be out of stock")
	}
}

func TestProduct_LineItem(t *testing.T) {
	p := Product{
		ID:             uuid.New(),
		Price:          decimal.NewFromInt(1000),
		Discount:       DiscountPercentage,
		DiscountAmount: decimal.NewFromInt(10),
	}

	item := p.LineItem()
	if item.ID != p.ID || !item.Price.Equal(p.Price) || item.Discount != DiscountPercentage || !item.DiscountAmount.Equal(p.DiscountAmount) {
		t.Errorf("LineItem() = %+v", item)
	}
}
