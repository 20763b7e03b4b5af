package rest

import (
	"encoding/json"
	"net/http"
	"time"
	"transparency/internal/config"
	"transparency/internal/logging"
	"transparency/internal/service"
	"transparency/internal/transport/rest/handler"
	"transparency/internal/transport/rest/middleware"
	"transparency/internal/transport/ws"

	_ "transparency/internal/docs"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	ProductService *service.ProductService
	ReportService  *service.ReportService
	SessionService *service.SessionService
	Selector       service.QuestionSelector
	WSHub          *ws.Hub
	CORS           config.CORSConfig
	StoreName      string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	return middleware.Recover(logging.Middleware(newMux(c)))
}

func newMux(c *Container) *mux.Router {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	productHandler := handler.NewProductHandler(c.ProductService)
	questionHandler := handler.NewQuestionHandler(c.Selector)
	reportHandler := handler.NewReportHandler(c.ReportService)
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	wsHandler := ws.NewHandler(c.WSHub, c.SessionService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/register", authHandler.Register).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/products/analyze", productHandler.Analyze).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions/generate", questionHandler.Generate).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions/providers", questionHandler.Providers).Methods("GET", "OPTIONS")

	// WebSocket routes (session id is the capability)
	v1.HandleFunc("/ws/sessions/{id}", wsHandler.SessionWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		provider := "catalog"
		if c.Selector != nil {
			provider = c.Selector.Provider()
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":           "OK",
			"timestamp":        time.Now().UTC().Format(time.RFC3339),
			"questionProvider": provider,
			"store":            c.StoreName,
		})
	}).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// Routes that work anonymously but remember the user when a valid token is sent
	optionalRoutes := v1.NewRoute().Subrouter()
	optionalRoutes.Use(authMW.OptionalUser)

	optionalRoutes.HandleFunc("/reports/generate", reportHandler.Generate).Methods("POST", "OPTIONS")
	optionalRoutes.HandleFunc("/sessions", sessionHandler.Start).Methods("POST", "OPTIONS")
	optionalRoutes.HandleFunc("/sessions/{id}", sessionHandler.Get).Methods("GET", "OPTIONS")
	optionalRoutes.HandleFunc("/sessions/{id}/answers", sessionHandler.SaveAnswers).Methods("PUT", "OPTIONS")
	optionalRoutes.HandleFunc("/sessions/{id}/next", sessionHandler.Next).Methods("POST", "OPTIONS")
	optionalRoutes.HandleFunc("/sessions/{id}/report", sessionHandler.Report).Methods("GET", "OPTIONS")

	// User routes (require user auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/products", productHandler.Save).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/products", productHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/products/{id}", productHandler.Get).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/reports/{id}", reportHandler.Get).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
