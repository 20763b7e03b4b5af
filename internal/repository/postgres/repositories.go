package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"transparency/internal/model"
	"transparency/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// ProductRepository
type productRepo struct{ db *DB }

func NewProductRepo(db *DB) repository.ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.ProductRecord) (string, error) {
	data, err := json.Marshal(p.Data)
	if err != nil {
		return "", err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err = r.db.Pool.Exec(ctx, `
        INSERT INTO products (id, user_id, name, brand, category, description, data, transparency_score, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, p.ID, p.UserID, p.Name, p.Brand, p.Category, p.Description, data, p.TransparencyScore, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

const productColumns = `id, user_id, name, COALESCE(brand, ''), COALESCE(category, ''), COALESCE(description, ''), data, transparency_score, created_at, updated_at`

func scanProduct(row pgx.Row) (*model.ProductRecord, error) {
	var p model.ProductRecord
	var data []byte
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Brand, &p.Category, &p.Description, &data, &p.TransparencyScore, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &p.Data); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) GetByID(ctx context.Context, userID, id string) (*model.ProductRecord, error) {
	p, err := scanProduct(r.db.Pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND user_id = $2`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *productRepo) ListByUser(ctx context.Context, userID string) ([]*model.ProductRecord, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*model.ProductRecord{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ReportRepository
type reportRepo struct{ db *DB }

func NewReportRepo(db *DB) repository.ReportRepo { return &reportRepo{db: db} }

func (r *reportRepo) Create(ctx context.Context, rec *model.ReportRecord) (string, error) {
	body, err := json.Marshal(rec.Report)
	if err != nil {
		return "", err
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err = r.db.Pool.Exec(ctx, `
        INSERT INTO reports (id, product_id, user_id, report_data, created_at)
        VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
    `, rec.ID, rec.ProductID, rec.UserID, body, rec.CreatedAt)
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (r *reportRepo) GetByID(ctx context.Context, id string) (*model.ReportRecord, error) {
	var rec model.ReportRecord
	var body []byte
	err := r.db.Pool.QueryRow(ctx, `
        SELECT id, COALESCE(product_id, ''), COALESCE(user_id, ''), report_data, created_at
        FROM reports WHERE id = $1
    `, id).Scan(&rec.ID, &rec.ProductID, &rec.UserID, &body, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Report = &model.TransparencyReport{}
	if err := json.Unmarshal(body, rec.Report); err != nil {
		return nil, err
	}
	return &rec, nil
}

// UserRepository
type userRepo struct{ db *DB }

func NewUserRepo(db *DB) repository.UserRepo { return &userRepo{db: db} }

func (r *userRepo) Create(ctx context.Context, u *model.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	u.Email = strings.ToLower(u.Email)
	_, err := r.db.Pool.Exec(ctx, `
        INSERT INTO users (id, email, password_hash, company_name, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `, u.ID, u.Email, u.PasswordHash, u.CompanyName, u.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return "", repository.ErrEmailTaken
	}
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.get(ctx, `email = $1`, strings.ToLower(email))
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.get(ctx, `id = $1`, id)
}

func (r *userRepo) get(ctx context.Context, where string, arg string) (*model.User, error) {
	var u model.User
	err := r.db.Pool.QueryRow(ctx, `
        SELECT id, email, password_hash, COALESCE(company_name, ''), created_at
        FROM users WHERE `+where, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CompanyName, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
