package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Item is an inventory record. IDs and timestamps are assigned by the store.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	InStock     bool      `json:"inStock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Item categories.
const (
	CategoryElectronics = "Electronics"
	CategoryClothing    = "Clothing"
	CategoryBooks       = "Books"
	CategoryHome        = "Home"
	CategoryOther       = "Other"
)

// ItemInput holds the user-supplied fields of an item. Price and InStock are
// pointers so that an absent field can be told apart from a zero value.
type ItemInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=500"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required,oneof=Electronics Clothing Books Home Other"`
	InStock     *bool    `json:"inStock"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes a single failed constraint on an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return e.Message }

// Normalize trims text fields and applies defaults (category Other, inStock
// true). Defaults are applied before validation, so an absent category or
// stock flag is never a validation failure.
func (in *ItemInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = CategoryOther
	}
	if in.InStock == nil {
		inStock := true
		in.InStock = &inStock
	}
}

// Validate checks the input against the item schema and returns one error per
// failing field, in field declaration order. A nil result means valid input.
func (in ItemInput) Validate() []FieldError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "item", Message: "invalid item"}}
	}

	ferrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		ferrs = append(ferrs, fieldError(fe))
	}
	return ferrs
}

// fieldError translates a validator error into the item schema's message for
// that field and constraint.
func fieldError(fe validator.FieldError) FieldError {
	field := fe.Field()
	var message string

	switch fe.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", field)
	case "max":
		message = fmt.Sprintf("%s cannot be more than %s characters", field, fe.Param())
	case "gte":
		message = fmt.Sprintf("%s cannot be negative", field)
	case "oneof":
		message = fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		message = fmt.Sprintf("%s is invalid", field)
	}

	return FieldError{Field: strings.ToLower(field[:1]) + field[1:], Message: message}
}
