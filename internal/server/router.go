package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/eskrenkovic/product-catalog-go/internal/modules/core"
	productcommands "github.com/eskrenkovic/product-catalog-go/internal/modules/product/commands"
	productqueries "github.com/eskrenkovic/product-catalog-go/internal/modules/product/queries"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
)

var errRouteNotFound = errors.New("route not found")

// newRouter builds the HTTP surface. The base context is swapped in before
// chi sees the request, since chi keeps its routing state in the request
// context.
func newRouter(baseCtx context.Context, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		core.LoggerHTTPMiddleware(logger),
		core.CorrelationIDHTTPMiddleware,
		middleware.Recoverer,
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		core.WriteNotFound(w, r, errRouteNotFound)
	})

	r.Get("/products", productqueries.HandleGetProducts)
	r.Post("/products", productcommands.HandleCreateProduct)
	r.Get("/products/report", productqueries.HandleGetReport)
	r.Put("/products/{id}", productcommands.HandleUpdateProduct)
	r.Delete("/products/{id}", productcommands.HandleDeleteProduct)

	return core.BaseContextHTTPMiddleware(baseCtx)(r)
}
