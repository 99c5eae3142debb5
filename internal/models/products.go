// Package models implements a way to store catalog products in memory
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// A Product is a single catalog position identified by its SKU
type Product struct {
	SKU         string    `json:"sku" db:"sku"`
	Name        string    `json:"name" db:"name"`
	Brand       string    `json:"brand" db:"brand"`
	Category    string    `json:"category" db:"category"`
	Description string    `json:"description" db:"description"`
	PriceCents  int64     `json:"price_cents" db:"price_cents"`
	Currency    string    `json:"currency" db:"currency"`
	Stock       int       `json:"stock" db:"stock"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// A ValidationError is a custom error type for data validation
type ValidationError struct {
	Field   string
	Struct  string
	Message string
}

// Error is an interface implementation for errors
func (e ValidationError) Error() string {
	return fmt.Sprintf("Validation error in field %s.%s: %s", e.Struct, e.Field, e.Message)
}

var skuPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// Validate checks that the product can be stored and served
func (p *Product) Validate() error {
	if strings.TrimSpace(p.SKU) == "" {
		return ValidationError{Field: "SKU", Struct: "Product", Message: "must not be empty"}
	}
	if !skuPattern.MatchString(p.SKU) {
		return ValidationError{Field: "SKU", Struct: "Product", Message: "must contain only letters, digits, '-' and '_'"}
	}
	if strings.TrimSpace(p.Name) == "" {
		return ValidationError{Field: "Name", Struct: "Product", Message: "must not be empty"}
	}
	if p.PriceCents < 0 {
		return ValidationError{Field: "PriceCents", Struct: "Product", Message: "must not be negative"}
	}
	if len(p.Currency) != 3 {
		return ValidationError{Field: "Currency", Struct: "Product", Message: "must be a three-letter code"}
	}
	if p.Stock < 0 {
		return ValidationError{Field: "Stock", Struct: "Product", Message: "must not be negative"}
	}
	return nil
}
