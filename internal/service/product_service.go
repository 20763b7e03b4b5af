package service

import (
	"context"
	"errors"
	"transparency/internal/model"
	"transparency/internal/repository"
	"transparency/internal/scoring"
)

var ErrProductNotFound = errors.New("product not found")

// ProductService scores products and stores them per company
type ProductService struct {
	products repository.ProductRepo
}

// NewProductService creates a new product service
func NewProductService(products repository.ProductRepo) *ProductService {
	return &ProductService{products: products}
}

// Analyze scores data without storing anything
func (s *ProductService) Analyze(data model.ProductData) (*model.AnalyzeResponse, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	score := scoring.Score(data)
	return &model.AnalyzeResponse{
		Success:           true,
		TransparencyScore: score,
		Recommendations:   scoring.Recommend(data, score),
		Analysis:          scoring.Analyze(score),
	}, nil
}

// Save scores data and stores it for userID
func (s *ProductService) Save(ctx context.Context, userID string, data model.ProductData) (*model.SaveProductResponse, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	rec := model.NewProductRecord(userID, data, scoring.Score(data))
	id, err := s.products.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return &model.SaveProductResponse{
		Success:           true,
		ProductID:         id,
		TransparencyScore: rec.TransparencyScore,
		CreatedAt:         rec.CreatedAt,
	}, nil
}

// List returns the caller's products, newest first
func (s *ProductService) List(ctx context.Context, userID string) ([]*model.ProductRecord, error) {
	return s.products.ListByUser(ctx, userID)
}

// Get returns ErrProductNotFound for missing products and for other users' products
func (s *ProductService) Get(ctx context.Context, userID, id string) (*model.ProductRecord, error) {
	p, err := s.products.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}
