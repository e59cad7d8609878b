package entity

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProduct() *Product {
	ref := "/static/images/a.png"

	return &Product{
		ID:          5,
		Name:        "Widget",
		Description: "A small widget",
		Price:       9.99,
		Quantity:    3,
		ImageURL:    &ref,
	}
}

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *Product)
		wantField string
	}{
		{name: "valid", mutate: func(*Product) {}},
		{name: "zero quantity", mutate: func(p *Product) { p.Quantity = 0 }},
		{name: "max quantity", mutate: func(p *Product) { p.Quantity = ProductQuantityMax }},
		{name: "no image", mutate: func(p *Product) { p.ImageURL = nil }},
		{name: "name at limit", mutate: func(p *Product) { p.Name = strings.Repeat("é", ProductNameMaxLength) }},
		{name: "description at limit", mutate: func(p *Product) { p.Description = strings.Repeat("d", ProductDescriptionMaxLength) }},
		{name: "empty name", mutate: func(p *Product) { p.Name = "" }, wantField: "name"},
		{name: "name over limit", mutate: func(p *Product) { p.Name = strings.Repeat("é", ProductNameMaxLength+1) }, wantField: "name"},
		{name: "empty description", mutate: func(p *Product) { p.Description = "" }, wantField: "description"},
		{name: "description over limit", mutate: func(p *Product) { p.Description = strings.Repeat("d", ProductDescriptionMaxLength+1) }, wantField: "description"},
		{name: "zero price", mutate: func(p *Product) { p.Price = 0 }, wantField: "price"},
		{name: "negative price", mutate: func(p *Product) { p.Price = -10 }, wantField: "price"},
		{name: "NaN price", mutate: func(p *Product) { p.Price = math.NaN() }, wantField: "price"},
		{name: "positive infinite price", mutate: func(p *Product) { p.Price = math.Inf(1) }, wantField: "price"},
		{name: "negative infinite price", mutate: func(p *Product) { p.Price = math.Inf(-1) }, wantField: "price"},
		{name: "negative quantity", mutate: func(p *Product) { p.Quantity = -1 }, wantField: "quantity"},
		{name: "quantity beyond column range", mutate: func(p *Product) { p.Quantity = ProductQuantityMax + 1 }, wantField: "quantity"},
		{name: "image reference too long", mutate: func(p *Product) {
			ref := strings.Repeat("x", ProductImageURLMaxLength+1)
			p.ImageURL = &ref
		}, wantField: "image_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := validProduct()
			tt.mutate(product)

			err := product.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)

				return
			}

			var constraintErr *ConstraintError
			require.ErrorAs(t, err, &constraintErr)
			assert.Equal(t, tt.wantField, constraintErr.Field)
		})
	}
}

func TestProduct_Validate_InfinitePriceMessage(t *testing.T) {
	product := validProduct()
	product.Price = math.Inf(1)

	assert.EqualError(t, product.Validate(), "price must be a finite number")
}

func TestProductPatch_IsEmpty(t *testing.T) {
	assert.True(t, ProductPatch{}.IsEmpty())
	assert.False(t, ProductPatch{Quantity: Some(0)}.IsEmpty())
	assert.False(t, ProductPatch{Name: Some("")}.IsEmpty())
}

func TestProductPatch_ApplyTo(t *testing.T) {
	original := validProduct()
	before := *original

	updated := ProductPatch{Quantity: Some(20)}.ApplyTo(original)

	assert.Equal(t, 20, updated.Quantity)
	assert.Equal(t, before.Name, updated.Name)
	assert.Equal(t, before.Description, updated.Description)
	assert.Equal(t, before.Price, updated.Price)
	assert.Same(t, before.ImageURL, updated.ImageURL)
	assert.Equal(t, before, *original)
	assert.NotSame(t, original, updated)
}

func TestProductPatch_ApplyTo_PresentZeroValues(t *testing.T) {
	updated := ProductPatch{
		Name:        Some("Gadget"),
		Description: Some("Renamed"),
		Price:       Some(1.5),
		Quantity:    Some(0),
	}.ApplyTo(validProduct())

	assert.Equal(t, "Gadget", updated.Name)
	assert.Equal(t, "Renamed", updated.Description)
	assert.Equal(t, 1.5, updated.Price)
	assert.Equal(t, 0, updated.Quantity)
}
