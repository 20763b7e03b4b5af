package model

import "time"

// ProductRecord is a saved product with its score
type ProductRecord struct {
	ID                string      `json:"id"`
	UserID            string      `json:"userId"`
	Name              string      `json:"name"`
	Brand             string      `json:"brand"`
	Category          string      `json:"category"`
	Description       string      `json:"description"`
	Data              ProductData `json:"data"`
	TransparencyScore int         `json:"transparencyScore"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

// NewProductRecord copies the core fields of data into a record
func NewProductRecord(userID string, data ProductData, score int) *ProductRecord {
	now := time.Now().UTC()
	return &ProductRecord{
		UserID:            userID,
		Name:              data.Name,
		Brand:             data.Brand,
		Category:          data.Category,
		Description:       data.Description,
		Data:              data,
		TransparencyScore: score,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// SaveProductRequest is the request body for saving a product
type SaveProductRequest struct {
	ProductData ProductData `json:"productData"`
}

// SaveProductResponse is returned after a product is saved
type SaveProductResponse struct {
	Success           bool      `json:"success"`
	ProductID         string    `json:"productId"`
	TransparencyScore int       `json:"transparencyScore"`
	CreatedAt         time.Time `json:"createdAt"`
}
