package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
	"transparency/internal/model"
	"transparency/internal/repository"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newUser(t *testing.T, users repository.UserRepo, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, PasswordHash: "hash", CompanyName: "GoodCo"}
	if _, err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	for i := 0; i < 2; i++ {
		db, err := Open(context.Background(), path)
		if err != nil {
			t.Fatalf("Open #%d: %v", i, err)
		}
		db.Close()
	}
}

func TestUserRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users := NewUserRepo(newTestDB(t))
	u := newUser(t, users, "Owner@Example.com")

	got, err := users.GetByEmail(ctx, "owner@example.com")
	if err != nil || got == nil {
		t.Fatalf("GetByEmail = %v, %v", got, err)
	}
	if got.ID != u.ID || got.CompanyName != "GoodCo" || got.PasswordHash != "hash" {
		t.Errorf("got %+v", got)
	}

	if _, err := users.Create(ctx, &model.User{Email: "OWNER@example.com", PasswordHash: "x"}); !errors.Is(err, repository.ErrEmailTaken) {
		t.Errorf("duplicate email err = %v", err)
	}

	missing, err := users.GetByID(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("GetByID(nope) = %v, %v", missing, err)
	}
}

func TestProductRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepo(db)
	products := NewProductRepo(db)
	owner := newUser(t, users, "owner@example.com")
	other := newUser(t, users, "other@example.com")

	data := model.ProductData{
		Name: "Oat Bar", Brand: "BrandX", Category: model.CategoryFood, Description: "A tasty oat snack bar",
		Extra: map[string]any{
			model.FieldCertifications: []any{"ISO 9001"},
			"organic":                 true,
		},
	}

	first := model.NewProductRecord(owner.ID, data, 55)
	if _, err := products.Create(ctx, first); err != nil {
		t.Fatalf("Create: %v", err)
	}
	second := model.NewProductRecord(owner.ID, data, 60)
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	if _, err := products.Create(ctx, second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := products.GetByID(ctx, owner.ID, first.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID = %v, %v", got, err)
	}
	if !reflect.DeepEqual(got.Data, data) {
		t.Errorf("data = %#v, want %#v", got.Data, data)
	}
	if got.TransparencyScore != 55 || got.Name != "Oat Bar" {
		t.Errorf("got %+v", got)
	}

	if p, err := products.GetByID(ctx, other.ID, first.ID); err != nil || p != nil {
		t.Errorf("other user can read product: %v, %v", p, err)
	}

	list, err := products.ListByUser(ctx, owner.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Errorf("list not newest first: %v", list)
	}

	empty, err := products.ListByUser(ctx, other.ID)
	if err != nil || len(empty) != 0 || empty == nil {
		t.Errorf("ListByUser(other) = %v, %v", empty, err)
	}
}

func TestReportRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newTestDB(t)
	reports := NewReportRepo(db)

	rec := &model.ReportRecord{
		Report: &model.TransparencyReport{
			ID:              "r1",
			Score:           40,
			ProductData:     model.ProductData{Name: "Oat Bar", Brand: "BrandX", Category: model.CategoryFood, Description: "d"},
			Recommendations: []string{"one", "two"},
			Analysis:        model.Analysis{Completeness: model.CompletenessMedium, TrustLevel: model.TrustNeedsImprovement},
			Timestamp:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		},
	}
	id, err := reports.Create(ctx, rec)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := reports.GetByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("GetByID = %v, %v", got, err)
	}
	if got.ProductID != "" || got.UserID != "" {
		t.Errorf("empty ids should round-trip as empty: %+v", got)
	}
	if !reflect.DeepEqual(got.Report, rec.Report) {
		t.Errorf("report = %+v, want %+v", got.Report, rec.Report)
	}
}
