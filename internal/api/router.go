package api

import (
	"net/http"

	"github.com/Muppalavinisree/vibecommerce/internal/api/handlers"
	"github.com/Muppalavinisree/vibecommerce/internal/api/middleware"
	"github.com/Muppalavinisree/vibecommerce/internal/metrics"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const Banner = "🚀 VibeCommerce Backend Running"

type Router struct {
	Products *handlers.ProductHandler
	Cart     *handlers.CartHandler
	Checkout *handlers.CheckoutHandler
	Admin    *middleware.AdminMiddleware
	Health   http.Handler

	// Uploads serves locally stored images under UploadsPrefix. Nil when
	// images live in object storage.
	Uploads       http.Handler
	UploadsPrefix string

	AllowedOrigins []string
}

func (rt *Router) mux() *http.ServeMux {
	routerMux := http.NewServeMux()

	routerMux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(Banner))
	})

	routerMux.HandleFunc("GET /api/products", rt.Products.ListProducts())
	routerMux.HandleFunc("GET /api/products/{id}", rt.Products.GetProduct())
	routerMux.HandleFunc("POST /api/products", rt.Admin.AdminOnly(rt.Products.CreateProduct()))
	routerMux.HandleFunc("PUT /api/products/{id}", rt.Admin.AdminOnly(rt.Products.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/products/{id}", rt.Admin.AdminOnly(rt.Products.DeleteProduct()))

	routerMux.HandleFunc("GET /api/cart", rt.Cart.GetCart())
	routerMux.HandleFunc("POST /api/cart", rt.Cart.AddItem())
	routerMux.HandleFunc("PUT /api/cart", rt.Cart.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/cart/{id}", rt.Cart.RemoveItem())

	routerMux.HandleFunc("POST /api/checkout", rt.Checkout.Checkout())

	if rt.Health != nil {
		routerMux.Handle("GET /api/health", rt.Health)
	}

	routerMux.Handle("GET /metrics", metrics.Handler())

	if rt.Uploads != nil {
		prefix := rt.UploadsPrefix + "/"
		routerMux.Handle("GET "+prefix, http.StripPrefix(prefix, rt.Uploads))
	}

	return routerMux
}

// Handler returns the mux behind the middleware chain. Metrics sit directly
// on the mux so the matched pattern is visible to them.
func (rt *Router) Handler() http.Handler {
	var handler http.Handler = rt.mux()
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = cors.Handler(cors.Options{
		AllowedOrigins: rt.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.AdminHeader, "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	})(handler)
	handler = otelhttp.NewHandler(handler, "vibecommerce",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)

	return handler
}
