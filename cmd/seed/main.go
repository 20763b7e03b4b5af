package main

import (
	"context"
	"errors"
	"os"
	"time"
	"transparency/internal/app"
	"transparency/internal/config"
	"transparency/internal/logging"
	"transparency/internal/model"
	"transparency/internal/service"
)

const (
	demoEmail    = "demo@goodco.example"
	demoPassword = "demo-password"
)

func demoProducts() []model.ProductData {
	return []model.ProductData{
		{
			Name:        "Oat Bar",
			Brand:       "GoodCo",
			Category:    model.CategoryFood,
			Description: "A tasty oat snack bar with honey and almonds",
			Extra: map[string]any{
				model.FieldIngredients:     "oats, honey, salt, almonds, cinnamon",
				model.FieldCertifications:  []any{"ISO 9001", "FDA Approved"},
				model.FieldCountryOfOrigin: "USA",
				"allergens":                []any{"Nuts"},
				"organic":                  true,
			},
		},
		{
			Name:        "Gentle Face Wash",
			Brand:       "GoodCo",
			Category:    model.CategoryPersonalCare,
			Description: "Fragrance-free daily cleanser for sensitive skin",
			Extra: map[string]any{
				model.FieldCountryOfOrigin: "Canada",
				"skin_type":                "Sensitive",
				"cruelty_free":             true,
			},
		},
		{
			Name:        "USB-C Charger",
			Brand:       "VoltWorks",
			Category:    model.CategoryElectronics,
			Description: "65W compact wall charger",
			Extra: map[string]any{
				model.FieldCertifications:   []any{"CE Mark"},
				model.FieldManufacturingDate: "2026-01-15",
				"warranty_period":            "2 years",
			},
		},
	}
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logging.Log.WithError(err).Fatal("Failed to load config")
	}

	store, err := app.Open(ctx, cfg.Store)
	if err != nil {
		logging.Log.WithError(err).Fatal("Failed to open store")
	}
	defer store.Close(context.Background())

	authSvc := service.NewAuthService(store.Users, cfg.JWTSecret)
	userID, err := demoUser(ctx, authSvc)
	if err != nil {
		logging.Log.WithError(err).Fatal("Failed to create demo user")
	}

	productSvc := service.NewProductService(store.Products)
	for _, p := range demoProducts() {
		resp, err := productSvc.Save(ctx, userID, p)
		if err != nil {
			logging.Log.WithError(err).WithField("product", p.Name).Fatal("Failed to insert product")
		}
		logging.Log.WithField("id", resp.ProductID).WithField("score", resp.TransparencyScore).Infof("Inserted %s", p.Name)
	}

	logging.Log.WithField("email", demoEmail).Info("Seed complete")
}

// demoUser registers the demo account, or logs in when it already exists
func demoUser(ctx context.Context, auth *service.AuthService) (string, error) {
	resp, err := auth.Register(ctx, &model.RegisterRequest{
		Email:       demoEmail,
		Password:    demoPassword,
		CompanyName: "GoodCo",
	})
	if errors.Is(err, service.ErrUserExists) {
		resp, err = auth.Login(ctx, &model.LoginRequest{Email: demoEmail, Password: demoPassword})
	}
	if err != nil {
		return "", err
	}
	return resp.User.ID, nil
}
