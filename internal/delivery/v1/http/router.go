package http

import (
	"net/http"

	_ "github.com/DRSN-tech/product-catalog/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/product-catalog/internal/usecase"
	"github.com/DRSN-tech/product-catalog/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type RouterDeps struct {
	ProductUC    usecase.ProductUC
	Verifier     TokenVerifier
	DB           Pinger
	SwaggerURL   string
	MaxImageSize int64
}

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(deps RouterDeps) {
	r.router.Use(middleware.RequestID, middleware.RealIP, RequestLogger(r.logger), middleware.Recoverer)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(deps.SwaggerURL), // ссылка на JSON
	))
	r.router.Get("/healthz", NewHealthHandler(deps.DB).healthz)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		prHandler := NewProductHandler(deps.ProductUC, r.logger, deps.MaxImageSize)
		registerProductRoutes(v1, prHandler, RequireAuth(deps.Verifier, r.logger))
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler, auth func(http.Handler) http.Handler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Get("/types", prHandler.productTypeCounts)
		pr.Get("/{id}", prHandler.productDetail)

		pr.Group(func(protected chi.Router) {
			protected.Use(auth)
			protected.Get("/new", prHandler.newProductForm)
			protected.Post("/", prHandler.createProduct)
		})
	})
}
