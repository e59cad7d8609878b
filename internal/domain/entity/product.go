package entity

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

// Field constraints shared by creation and partial update.
const (
	ProductNameMaxLength        = 100
	ProductDescriptionMaxLength = 500
	ProductImageURLMaxLength    = 255

	// ProductQuantityMax is the largest value the INTEGER quantity column holds.
	ProductQuantityMax = math.MaxInt32
)

// Product is a catalog record.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	Quantity    int
	ImageURL    *string // Reference to a stored blob, nil when the product has no image.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ConstraintError names the first product constraint a value violates.
type ConstraintError struct {
	Field      string
	Constraint string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Constraint)
}

// Validate checks every field constraint of the product.
func (p *Product) Validate() error {
	if err := validateName(p.Name); err != nil {
		return err
	}
	if err := validateDescription(p.Description); err != nil {
		return err
	}
	if err := validatePrice(p.Price); err != nil {
		return err
	}
	if err := validateQuantity(p.Quantity); err != nil {
		return err
	}
	if p.ImageURL != nil {
		return validateImageURL(*p.ImageURL)
	}

	return nil
}

// ProductPatch is a sparse update. Only fields with Set == true are applied.
type ProductPatch struct {
	Name        Optional[string]
	Description Optional[string]
	Price       Optional[float64]
	Quantity    Optional[int]
}

// IsEmpty reports whether the patch carries no field at all.
func (p ProductPatch) IsEmpty() bool {
	return !p.Name.Set && !p.Description.Set && !p.Price.Set && !p.Quantity.Set
}

// ApplyTo returns a copy of product with the present fields replaced.
// The receiver product is never modified.
func (p ProductPatch) ApplyTo(product *Product) *Product {
	updated := *product
	updated.Name = p.Name.OrElse(product.Name)
	updated.Description = p.Description.OrElse(product.Description)
	updated.Price = p.Price.OrElse(product.Price)
	updated.Quantity = p.Quantity.OrElse(product.Quantity)

	return &updated
}

func validateName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return &ConstraintError{Field: "name", Constraint: "must not be empty"}
	}
	if n > ProductNameMaxLength {
		return &ConstraintError{Field: "name", Constraint: fmt.Sprintf("must be at most %d characters", ProductNameMaxLength)}
	}

	return nil
}

func validateDescription(description string) error {
	n := utf8.RuneCountInString(description)
	if n == 0 {
		return &ConstraintError{Field: "description", Constraint: "must not be empty"}
	}
	if n > ProductDescriptionMaxLength {
		return &ConstraintError{Field: "description", Constraint: fmt.Sprintf("must be at most %d characters", ProductDescriptionMaxLength)}
	}

	return nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return &ConstraintError{Field: "price", Constraint: "must be a finite number"}
	}
	if price <= 0 {
		return &ConstraintError{Field: "price", Constraint: "must be greater than 0"}
	}

	return nil
}

func validateQuantity(quantity int) error {
	if quantity < 0 {
		return &ConstraintError{Field: "quantity", Constraint: "must be 0 or greater"}
	}
	if quantity > ProductQuantityMax {
		return &ConstraintError{Field: "quantity", Constraint: fmt.Sprintf("must be at most %d", ProductQuantityMax)}
	}

	return nil
}

func validateImageURL(ref string) error {
	if utf8.RuneCountInString(ref) > ProductImageURLMaxLength {
		return &ConstraintError{Field: "image_url", Constraint: fmt.Sprintf("must be at most %d characters", ProductImageURLMaxLength)}
	}

	return nil
}
