package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/eskrenkovic/product-catalog-go/internal/config"
	"github.com/eskrenkovic/product-catalog-go/internal/modules/core"
	"github.com/eskrenkovic/product-catalog-go/internal/modules/product"
	productcommands "github.com/eskrenkovic/product-catalog-go/internal/modules/product/commands"
	productdomain "github.com/eskrenkovic/product-catalog-go/internal/modules/product/domain"
	productqueries "github.com/eskrenkovic/product-catalog-go/internal/modules/product/queries"

	"github.com/eskrenkovic/mediator-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for an application.
type HTTPServer struct {
	server *http.Server
	client *mongo.Client
	logger *zap.Logger
}

func NewHTTPServer(config config.Config) (*HTTPServer, error) {
	baseCtx := context.Background()

	connectCtx, cancel := context.WithTimeout(baseCtx, config.Mongo.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(config.Mongo.URI))
	if err != nil {
		return nil, err
	}

	s := &HTTPServer{client: client, logger: config.Logger}

	handler, err := s.setup(connectCtx, baseCtx, config)
	if err != nil {
		if disconnectErr := client.Disconnect(baseCtx); disconnectErr != nil {
			config.Logger.Error("failed to disconnect from store", zap.Error(disconnectErr))
		}
		return nil, err
	}

	s.server = &http.Server{
		Addr:    net.JoinHostPort("", strconv.Itoa(config.Port)),
		Handler: handler,
	}

	return s, nil
}

func (s *HTTPServer) setup(connectCtx, baseCtx context.Context, config config.Config) (http.Handler, error) {
	if err := s.client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, err
	}

	db := s.client.Database(config.Mongo.Database)
	productRepository := product.NewProductRepository(db, config.Mongo.Collection)

	if config.Mongo.UniqueNameIndex {
		if err := productRepository.EnsureNameIndex(connectCtx); err != nil {
			return nil, err
		}
	}

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	// handler registration

	getProductsHandler := productqueries.NewGetProductsQueryHandler(s.client, productRepository)
	err := mediator.RegisterRequestHandler[productqueries.GetProductsQuery, []productdomain.Product](
		getProductsHandler,
	)
	if err != nil {
		return nil, err
	}

	getReportHandler := productqueries.NewGetReportQueryHandler(s.client, productRepository)
	err = mediator.RegisterRequestHandler[productqueries.GetReportQuery, []productdomain.Report](
		getReportHandler,
	)
	if err != nil {
		return nil, err
	}

	createProductHandler := productcommands.NewCreateProductCommandHandler(s.client, productRepository)
	err = mediator.RegisterRequestHandler[productcommands.CreateProductCommand, productcommands.CreateProductResponse](
		createProductHandler,
	)
	if err != nil {
		return nil, err
	}

	updateProductHandler := productcommands.NewUpdateProductCommandHandler(s.client, productRepository)
	err = mediator.RegisterRequestHandler[productcommands.UpdateProductCommand, productcommands.UpdateProductResponse](
		updateProductHandler,
	)
	if err != nil {
		return nil, err
	}

	deleteProductHandler := productcommands.NewDeleteProductCommandHandler(s.client, productRepository)
	err = mediator.RegisterRequestHandler[productcommands.DeleteProductCommand, productcommands.DeleteProductResponse](
		deleteProductHandler,
	)
	if err != nil {
		return nil, err
	}

	return newRouter(baseCtx, config.Logger), nil
}

// Handler exposes the routed handler without listening, for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Start() error {
	s.logger.Info("listening", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return multierr.Combine(
		s.server.Shutdown(ctx),
		s.client.Disconnect(ctx),
	)
}
