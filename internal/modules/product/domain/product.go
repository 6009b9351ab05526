package domain

import (
	"encoding/json"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	IDField       = "_id"
	NameField     = "name"
	PriceField    = "price"
	QuantityField = "quantity"
)

const (
	NameNotUniqueMessage = "Product name not unique."
	NotFoundMessage      = "Product not found or unable to delete"
)

var (
	ErrNameNotUnique = errors.New("product name not unique")
	ErrNotFound      = errors.New("product not found")
)

// Product is a catalog document. Only the name is typed; price, quantity
// and anything else the caller sends are kept in Attributes and stored
// inline, with numbers as int64 or float64.
type Product struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Attributes bson.M             `bson:",inline"`
}

func NewProduct(fields Fields) Product {
	product := Product{Attributes: bson.M{}}

	for key, value := range fields {
		switch key {
		case IDField:
			continue
		case NameField:
			product.Name, _ = value.(string)
		default:
			product.Attributes[key] = value
		}
	}

	return product
}

func (p Product) MarshalJSON() ([]byte, error) {
	doc := make(map[string]interface{}, len(p.Attributes)+2)
	for key, value := range p.Attributes {
		doc[key] = value
	}

	if !p.ID.IsZero() {
		doc[IDField] = p.ID
	}

	doc[NameField] = p.Name

	return json.Marshal(doc)
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var fields Fields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*p = NewProduct(fields)
	return nil
}

// Report totals are floats since stored prices need not be integral.
type Report struct {
	TotalQuantity float64 `bson:"totalQuantity" json:"totalQuantity"`
	TotalValue    float64 `bson:"totalValue" json:"totalValue"`
}
