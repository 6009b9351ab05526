package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/eskrenkovic/product-catalog-go/internal/modules/core"
	"github.com/eskrenkovic/product-catalog-go/internal/modules/product"
	"github.com/eskrenkovic/product-catalog-go/internal/modules/product/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UpdateProductCommand struct {
	ProductID string
	Fields    domain.Fields
}

func (c UpdateProductCommand) Validate() error {
	if len(c.Fields) == 0 {
		return fmt.Errorf("invalid Fields - nothing to update")
	}

	return nil
}

type UpdateProductResponse struct {
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

func HandleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	fields, err := core.RequestBody[domain.Fields](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	command := UpdateProductCommand{
		ProductID: chi.URLParam(r, "id"),
		Fields:    fields,
	}

	response, err := mediator.Send[UpdateProductCommand, UpdateProductResponse](r.Context(), command)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type UpdateProductCommandHandler struct {
	client     *mongo.Client
	repository *product.ProductRepository
}

func NewUpdateProductCommandHandler(
	client *mongo.Client,
	repository *product.ProductRepository,
) *UpdateProductCommandHandler {
	return &UpdateProductCommandHandler{client: client, repository: repository}
}

// Handle merges the supplied fields into the product. No match is not an
// error; the response reports a zero MatchedCount.
func (h *UpdateProductCommandHandler) Handle(
	ctx context.Context,
	request UpdateProductCommand,
) (UpdateProductResponse, error) {
	id, err := primitive.ObjectIDFromHex(request.ProductID)
	if err != nil {
		return UpdateProductResponse{}, core.NewInternalError(err)
	}

	var response UpdateProductResponse

	err = core.WithSession(ctx, h.client, func(ctx context.Context) error {
		result, err := h.repository.Update(ctx, id, request.Fields)
		if err != nil {
			return err
		}

		response = UpdateProductResponse{
			MatchedCount:  result.MatchedCount,
			ModifiedCount: result.ModifiedCount,
			UpsertedCount: result.UpsertedCount,
			UpsertedID:    result.UpsertedID,
		}
		return nil
	})

	switch {
	case err != nil && errors.Is(err, domain.ErrNameNotUnique):
		return UpdateProductResponse{}, core.NewCommandError(
			http.StatusBadRequest,
			err,
			core.WithReason(domain.NameNotUniqueMessage),
		)
	case err != nil:
		return UpdateProductResponse{}, core.NewInternalError(err)
	}

	return response, nil
}
