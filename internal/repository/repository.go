package repository

import (
	"context"
	"errors"
	"transparency/internal/model"
)

// ErrEmailTaken is returned when registering an email that already has an account
var ErrEmailTaken = errors.New("user already exists")

// Lookups that find nothing return (nil, nil), as every store does.

// ProductRepo stores scored products
type ProductRepo interface {
	Create(ctx context.Context, product *model.ProductRecord) (string, error)
	GetByID(ctx context.Context, userID, id string) (*model.ProductRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*model.ProductRecord, error)
}

// ReportRepo stores generated reports
type ReportRepo interface {
	Create(ctx context.Context, report *model.ReportRecord) (string, error)
	GetByID(ctx context.Context, id string) (*model.ReportRecord, error)
}

// UserRepo stores company accounts
type UserRepo interface {
	Create(ctx context.Context, user *model.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
