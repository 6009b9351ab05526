package product

import (
	"context"

	"github.com/eskrenkovic/product-catalog-go/internal/modules/product/domain"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProductRepository runs product queries against a single collection.
// Callers pass the session context obtained from core.WithSession.
type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database, collectionName string) *ProductRepository {
	return &ProductRepository{collection: db.Collection(collectionName)}
}

func (r *ProductRepository) Find(ctx context.Context, filter bson.D, sort bson.D) ([]domain.Product, error) {
	opts := options.Find()
	if sort != nil {
		opts.SetSort(sort)
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find products")
	}

	products := make([]domain.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "decode products")
	}

	return products, nil
}

func (r *ProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{domain.NameField: name}).Err()
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return false, nil
	case err != nil:
		return false, errors.Wrap(err, "find product by name")
	}

	return true, nil
}

func (r *ProductRepository) Insert(ctx context.Context, product domain.Product) (*mongo.InsertOneResult, error) {
	result, err := r.collection.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrap(domain.ErrNameNotUnique, err.Error())
		}
		return nil, errors.Wrap(err, "insert product")
	}

	return result, nil
}

func (r *ProductRepository) Update(
	ctx context.Context,
	id primitive.ObjectID,
	fields domain.Fields,
) (*mongo.UpdateResult, error) {
	update := bson.M{"$set": bson.M(fields)}

	result, err := r.collection.UpdateOne(ctx, bson.M{domain.IDField: id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.Wrap(domain.ErrNameNotUnique, err.Error())
		}
		return nil, errors.Wrap(err, "update product")
	}

	return result, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) (*mongo.DeleteResult, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{domain.IDField: id})
	if err != nil {
		return nil, errors.Wrap(err, "delete product")
	}

	return result, nil
}

// Report sums quantity and price*quantity over the whole collection. An
// empty collection yields no rows.
func (r *ProductRepository) Report(ctx context.Context) ([]domain.Report, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalQuantity", Value: bson.D{{Key: "$sum", Value: "$" + domain.QuantityField}}},
			{Key: "totalValue", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$multiply", Value: bson.A{"$" + domain.QuantityField, "$" + domain.PriceField}},
			}}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "_id", Value: 0}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate product report")
	}

	reports := make([]domain.Report, 0)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, errors.Wrap(err, "decode product report")
	}

	return reports, nil
}

// EnsureNameIndex creates a unique index on name so the store itself
// rejects duplicate names.
func (r *ProductRepository) EnsureNameIndex(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: domain.NameField, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("name_unique"),
	}

	if _, err := r.collection.Indexes().CreateOne(ctx, index); err != nil {
		return errors.Wrap(err, "create unique name index")
	}

	return nil
}
