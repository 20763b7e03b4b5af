package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Core product fields collected by the initial questions
const (
	FieldName        = "name"
	FieldBrand       = "brand"
	FieldCategory    = "category"
	FieldDescription = "description"
)

// Well-known extension fields read by scoring and recommendations
const (
	FieldIngredients           = "ingredients"
	FieldCertifications        = "certifications"
	FieldCountryOfOrigin       = "country_of_origin"
	FieldManufacturingLocation = "manufacturing_location"
	FieldManufacturingDate     = "manufacturing_date"
	FieldExpiryDate            = "expiry_date"
	FieldSustainability        = "sustainability_efforts"
)

// Categories accepted for the category field
const (
	CategoryFood         = "Food & Beverage"
	CategoryPersonalCare = "Personal Care"
	CategoryHousehold    = "Household"
	CategoryElectronics  = "Electronics"
	CategoryClothing     = "Clothing"
	CategoryOther        = "Other"
)

// Categories lists the accepted categories in display order
var Categories = []string{
	CategoryFood,
	CategoryPersonalCare,
	CategoryHousehold,
	CategoryElectronics,
	CategoryClothing,
	CategoryOther,
}

// IsCategory reports whether c is one of the accepted categories
func IsCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ProductData holds the answers collected for a product.
// The four core fields are typed; every other answer lives in Extra
// keyed by question id.
type ProductData struct {
	Name        string
	Brand       string
	Category    string
	Description string
	Extra       map[string]any
}

// String returns the string answer for key, or "" if absent or not a string
func (p ProductData) String(key string) string {
	switch key {
	case FieldName:
		return p.Name
	case FieldBrand:
		return p.Brand
	case FieldCategory:
		return p.Category
	case FieldDescription:
		return p.Description
	}
	if s, ok := p.Extra[key].(string); ok {
		return s
	}
	return ""
}

// Strings returns the list answer for key.
// ok is false when the key is absent or not a list of strings.
func (p ProductData) Strings(key string) (values []string, ok bool) {
	switch v := p.Extra[key].(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, isStr := item.(string)
			if !isStr {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// Bool returns the boolean answer for key
func (p ProductData) Bool(key string) (value, ok bool) {
	value, ok = p.Extra[key].(bool)
	return value, ok
}

// Has reports whether an answer exists for key
func (p ProductData) Has(key string) bool {
	switch key {
	case FieldName, FieldBrand, FieldCategory, FieldDescription:
		return p.String(key) != ""
	}
	_, ok := p.Extra[key]
	return ok
}

// Set stores an answer. Core keys only accept strings; other values are ignored for them.
func (p *ProductData) Set(key string, value any) {
	switch key {
	case FieldName, FieldBrand, FieldCategory, FieldDescription:
		s, _ := value.(string)
		switch key {
		case FieldName:
			p.Name = s
		case FieldBrand:
			p.Brand = s
		case FieldCategory:
			p.Category = s
		case FieldDescription:
			p.Description = s
		}
		return
	}
	if p.Extra == nil {
		p.Extra = make(map[string]any)
	}
	p.Extra[key] = value
}

// Merge copies every answer in other over p
func (p *ProductData) Merge(other ProductData) {
	for _, key := range []string{FieldName, FieldBrand, FieldCategory, FieldDescription} {
		if v := other.String(key); v != "" {
			p.Set(key, v)
		}
	}
	for k, v := range other.Extra {
		p.Set(k, v)
	}
}

// Keys returns the answered keys: core fields first, then extensions sorted
func (p ProductData) Keys() []string {
	keys := make([]string, 0, 4+len(p.Extra))
	for _, k := range []string{FieldName, FieldBrand, FieldCategory, FieldDescription} {
		if p.String(k) != "" {
			keys = append(keys, k)
		}
	}
	extra := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// Value returns the raw answer for key
func (p ProductData) Value(key string) any {
	switch key {
	case FieldName, FieldBrand, FieldCategory, FieldDescription:
		return p.String(key)
	}
	return p.Extra[key]
}

// Validate checks the core fields at the request boundary
func (p ProductData) Validate() error {
	return p.ValidateFields(FieldName, FieldBrand, FieldCategory, FieldDescription)
}

// ValidateFields requires the given core fields. A set category must be known.
func (p ProductData) ValidateFields(keys ...string) error {
	var fields []string
	for _, k := range keys {
		if strings.TrimSpace(p.String(k)) == "" {
			fields = append(fields, k)
		}
	}
	if p.Category != "" && !IsCategory(p.Category) {
		fields = append(fields, FieldCategory)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Map flattens the product into one map
func (p ProductData) Map() map[string]any {
	out := make(map[string]any, 4+len(p.Extra))
	for k, v := range p.Extra {
		out[k] = v
	}
	for _, k := range []string{FieldName, FieldBrand, FieldCategory, FieldDescription} {
		if v := p.String(k); v != "" {
			out[k] = v
		}
	}
	return out
}

// MarshalJSON writes the product as one flat object
func (p ProductData) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Map())
}

// UnmarshalJSON lifts core keys into typed fields and keeps the rest in Extra.
// A core key holding a non-string value is dropped.
func (p *ProductData) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = ProductData{}
	for k, v := range raw {
		p.Set(k, v)
	}
	return nil
}

// ValidationError lists the request fields that failed validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid or missing fields: %s", strings.Join(e.Fields, ", "))
}
