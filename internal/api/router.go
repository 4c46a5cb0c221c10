package api

import (
	"log/slog"
	"net/http"
	"time"

	"customer-service/internal/api/handler"
	mw "customer-service/internal/api/middleware"
	"customer-service/internal/config"
	"customer-service/internal/domain/address"
	"customer-service/internal/domain/customer"

	_ "customer-service/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func SetupRouter(customerService customer.CustomerService, addressService address.AddressService, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupErrorHandlers(router)
	setupMetricsEndpoint(router, cfg, logger)
	setupCustomerRoutes(router, customerService, addressService, logger)
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"service":"customer-service","version":"1.0.0","customers_url":"/customers"}`))
	})
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	setupSwaggerEndpoint(router, logger)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

// setupErrorHandlers keeps the error contract JSON end to end, including for
// paths and methods the router does not know.
func setupErrorHandlers(router *chi.Mux) {
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeRouterError(w, http.StatusNotFound, "Resource not found.")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeRouterError(w, http.StatusMethodNotAllowed, "Method not allowed.")
	})
}

func writeRouterError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":{"message":"` + message + `"}}`))
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupSwaggerEndpoint(router *chi.Mux, logger *slog.Logger) {
	logger.Info("Setting up Swagger UI endpoint", "path", "/swagger/")
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/index.html", http.StatusMovedPermanently)
	})
}

func setupCustomerRoutes(router *chi.Mux, customerService customer.CustomerService, addressService address.AddressService, logger *slog.Logger) {
	customerHandler := handler.NewCustomerHandler(customerService, logger)
	addressHandler := handler.NewAddressHandler(addressService, logger)

	router.Route("/customers", func(r chi.Router) {
		r.With(requireJSON).Post("/", customerHandler.CreateCustomer)
		r.Get("/", customerHandler.ListCustomers)
		r.Route("/{customerID}", func(r chi.Router) {
			r.Get("/", customerHandler.GetCustomer)
			r.With(requireJSON).Put("/", customerHandler.UpdateCustomer)
			r.Put("/activate", customerHandler.ActivateCustomer)
			r.Put("/deactivate", customerHandler.DeactivateCustomer)
			r.Delete("/", customerHandler.DeleteCustomer)

			r.Route("/addresses", func(r chi.Router) {
				r.With(requireJSON).Post("/", addressHandler.CreateAddress)
				r.Get("/", addressHandler.ListAddresses)
				r.Route("/{addressID}", func(r chi.Router) {
					r.Get("/", addressHandler.GetAddress)
					r.With(requireJSON).Put("/", addressHandler.UpdateAddress)
					r.Delete("/", addressHandler.DeleteAddress)
				})
			})
		})
	})
}

// requireJSON guards the bodied endpoints; anything but a JSON content type
// is refused with 415 before the handler runs.
var requireJSON = middleware.AllowContentType("application/json")
