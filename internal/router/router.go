package router

import (
	"net/http"

	"phone-kart/internal/handler"
	"phone-kart/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	phoneHandler *handler.PhoneHandler,
	orderHandler *handler.OrderHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Phone handler function
	phoneRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific phone ID
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			phoneHandler.GetByID(w, r)
			return
		}
		phoneHandler.GetAll(w, r)
	}

	// Register phone routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", phoneRouteHandler)
	mux.HandleFunc("/api/products/", phoneRouteHandler)

	// Order handler function
	orderRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/orders", "/api/orders/":
			orderHandler.Create(w, r)
		case "/api/orders/create-payment-intent":
			orderHandler.CreatePaymentIntent(w, r)
		case "/api/orders/myorders":
			orderHandler.MyOrders(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}

	// Register order routes (both with and without trailing slash)
	mux.HandleFunc("/api/orders", orderRouteHandler)
	mux.HandleFunc("/api/orders/", orderRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth -> UserContext
	var h http.Handler = mux
	h = middleware.UserContext(h)
	h = middleware.APIKeyAuth(apiKey, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
