package commands

import (
	"context"
	"net/http"

	"github.com/eskrenkovic/product-catalog-go/internal/modules/core"
	"github.com/eskrenkovic/product-catalog-go/internal/modules/product"
	"github.com/eskrenkovic/product-catalog-go/internal/modules/product/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DeleteProductCommand struct {
	ProductID string
}

type DeleteProductResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

func HandleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	command := DeleteProductCommand{ProductID: chi.URLParam(r, "id")}

	response, err := mediator.Send[DeleteProductCommand, DeleteProductResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type DeleteProductCommandHandler struct {
	client     *mongo.Client
	repository *product.ProductRepository
}

func NewDeleteProductCommandHandler(
	client *mongo.Client,
	repository *product.ProductRepository,
) *DeleteProductCommandHandler {
	return &DeleteProductCommandHandler{client: client, repository: repository}
}

func (h *DeleteProductCommandHandler) Handle(
	ctx context.Context,
	request DeleteProductCommand,
) (DeleteProductResponse, error) {
	id, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return DeleteProductResponse{}, core.NewInternalError(err)
	}

	var deletedCount int64

	err = core.WithSession(ctx, h.client, func(ctx context.Context) error {
		result, err := h.repository.Delete(ctx, id)
		if err != nil {
			return err
		}

		deletedCount = result.DeletedCount
		return nil
	})
	if err != nil {
		return DeleteProductResponse{}, core.NewInternalError(err)
	}

	if deletedCount == 0 {
		return DeleteProductResponse{}, core.NewCommandError(
			http.StatusNotFound,
			domain.ErrNotFound,
			core.WithReason(domain.NotFoundMessage),
		)
	}

	return DeleteProductResponse{DeletedCount: deletedCount}, nil
}
