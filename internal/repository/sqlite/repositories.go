package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"
	"transparency/internal/model"
	"transparency/internal/repository"

	"github.com/google/uuid"
)

// Fixed-width so text ordering matches time ordering
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) { return time.Parse(timeLayout, s) }

type scanner interface {
	Scan(dest ...any) error
}

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
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO products (id, user_id, name, brand, category, description, data, transparency_score, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.Brand, p.Category, p.Description, string(data), p.TransparencyScore,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

const productColumns = `id, user_id, name, COALESCE(brand, ''), COALESCE(category, ''), COALESCE(description, ''), data, transparency_score, created_at, updated_at`

func scanProduct(row scanner) (*model.ProductRecord, error) {
	var p model.ProductRecord
	var data, created, updated string
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Brand, &p.Category, &p.Description, &data, &p.TransparencyScore, &created, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &p.Data); err != nil {
		return nil, err
	}
	var err error
	if p.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) GetByID(ctx context.Context, userID, id string) (*model.ProductRecord, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ? AND user_id = ?`, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *productRepo) ListByUser(ctx context.Context, userID string) ([]*model.ProductRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE user_id = ? ORDER BY created_at DESC`, userID)
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
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reports (id, product_id, user_id, report_data, created_at)
		VALUES (?, NULLIF(?, ''), NULLIF(?, ''), ?, ?)`,
		rec.ID, rec.ProductID, rec.UserID, string(body), formatTime(rec.CreatedAt))
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (r *reportRepo) GetByID(ctx context.Context, id string) (*model.ReportRecord, error) {
	var rec model.ReportRecord
	var body, created string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, COALESCE(product_id, ''), COALESCE(user_id, ''), report_data, created_at
		FROM reports WHERE id = ?`, id).Scan(&rec.ID, &rec.ProductID, &rec.UserID, &body, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Report = &model.TransparencyReport{}
	if err := json.Unmarshal([]byte(body), rec.Report); err != nil {
		return nil, err
	}
	if rec.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &rec, nil
}

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
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, company_name, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.CompanyName, formatTime(u.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return "", repository.ErrEmailTaken
		}
		return "", err
	}
	return u.ID, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.get(ctx, `email = ?`, strings.ToLower(email))
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.get(ctx, `id = ?`, id)
}

func (r *userRepo) get(ctx context.Context, where, arg string) (*model.User, error) {
	var u model.User
	var created string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, COALESCE(company_name, ''), created_at
		FROM users WHERE `+where, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CompanyName, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &u, nil
}
