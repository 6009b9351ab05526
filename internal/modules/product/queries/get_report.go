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

type GetReportQuery struct{}

func HandleGetReport(w http.ResponseWriter, r *http.Request) {
	response, err := mediator.Send[GetReportQuery, []domain.Report](r.Context(), GetReportQuery{})
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetReportQueryHandler struct {
	client     *mongo.Client
	repository *product.ProductRepository
}

func NewGetReportQueryHandler(
	client *mongo.Client,
	repository *product.ProductRepository,
) *GetReportQueryHandler {
	return &GetReportQueryHandler{client: client, repository: repository}
}

// Handle returns a single row of totals, or no rows for an empty catalog.
func (h *GetReportQueryHandler) Handle(
	ctx context.Context,
	_ GetReportQuery,
) ([]domain.Report, error) {
	var reports []domain.Report

	err := core.WithSession(ctx, h.client, func(ctx context.Context) error {
		var err error
		reports, err = h.repository.Report(ctx)
		return err
	})
	if err != nil {
		return nil, core.NewInternalError(err)
	}

	return reports, nil
}
