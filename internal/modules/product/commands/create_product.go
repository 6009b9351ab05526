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
	"go.mongodb.org/mongo-driver/mongo"
)

type CreateProductCommand struct {
	Product domain.Product
}

func (c CreateProductCommand) Validate() error {
	if c.Product.Name == "" {
		return fmt.Errorf("invalid Name - '%s'", c.Product.Name)
	}

	return nil
}

type CreateProductResponse struct {
	InsertedID interface{} `json:"insertedId"`
}

func HandleCreateProduct(w http.ResponseWriter, r *http.Request) {
	p, err := core.RequestBody[domain.Product](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[CreateProductCommand, CreateProductResponse](
		r.Context(),
		CreateProductCommand{Product: p},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type CreateProductCommandHandler struct {
	client     *mongo.Client
	repository *product.ProductRepository
}

func NewCreateProductCommandHandler(
	client *mongo.Client,
	repository *product.ProductRepository,
) *CreateProductCommandHandler {
	return &CreateProductCommandHandler{client: client, repository: repository}
}

// Handle inserts the product unless its name is taken. The check and the
// insert share a session but are not atomic.
func (h *CreateProductCommandHandler) Handle(
	ctx context.Context,
	request CreateProductCommand,
) (CreateProductResponse, error) {
	var response CreateProductResponse

	err := core.WithSession(ctx, h.client, func(ctx context.Context) error {
		exists, err := h.repository.ExistsByName(ctx, request.Product.Name)
		if err != nil {
			return err
		}

		if exists {
			return domain.ErrNameNotUnique
		}

		result, err := h.repository.Insert(ctx, request.Product)
		if err != nil {
			return err
		}

		response.InsertedID = result.InsertedID
		return nil
	})

	switch {
	case err != nil && errors.Is(err, domain.ErrNameNotUnique):
		return CreateProductResponse{}, core.NewCommandError(
			http.StatusBadRequest,
			err,
			core.WithReason(domain.NameNotUniqueMessage),
		)
	case err != nil:
		return CreateProductResponse{}, core.NewInternalError(err)
	}

	return response, nil
}
