package queries

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/product-catalog-go/internal/modules/core"
	"github.com/eskrenkovic/product-catalog-go/internal/modules/product"
	"github.com/eskrenkovic/product-catalog-go/internal/modules/product/domain"

	"github.com/eskrenkovic/mediator-go"
	"go.mongodb.org/mongo-driver/mongo"
)

type GetProductsQuery struct {
	Filter domain.ListFilter
	Sort   string
}

func HandleGetProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := GetProductsQuery{
		Filter: domain.ListFilter{
			Name:     params.Get("name"),
			Price:    params.Get("price"),
			Quantity: params.Get("quantity"),
		},
		Sort: params.Get("sort"),
	}

	response, err := mediator.Send[GetProductsQuery, []domain.Product](r.Context(), query)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetProductsQueryHandler struct {
	client     *mongo.Client
	repository *product.ProductRepository
}

func NewGetProductsQueryHandler(
	client *mongo.Client,
	repository *product.ProductRepository,
) *GetProductsQueryHandler {
	return &GetProductsQueryHandler{client: client, repository: repository}
}

func (h *GetProductsQueryHandler) Handle(
	ctx context.Context,
	request GetProductsQuery,
) ([]domain.Product, error) {
	sort, err := domain.ParseSort(request.Sort)
	if err != nil {
		return nil, core.NewInternalError(err)
	}

	var products []domain.Product

	err = core.WithSession(ctx, h.client, func(ctx context.Context) error {
		var err error
		products, err = h.repository.Find(ctx, request.Filter.Document(), sort)
		return err
	})
	if err != nil {
		return nil, core.NewInternalError(err)
	}

	return products, nil
}
