package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/eskrenkovic/product-catalog-go/internal/modules/core"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func Test_CreateProduct_Inserts_Product_Retrievable_By_Name(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	name := uniqueName("Desk Lamp")

	// Act
	id := createProduct(t, map[string]interface{}{
		"name":     name,
		"price":    25,
		"quantity": 4,
		"color":    "red",
	})

	// Assert
	products := listProducts(t, url.Values{"name": {name}})
	require.Len(t, products, 1)
	require.Equal(t, id, products[0]["_id"])
	require.Equal(t, name, products[0]["name"])
	require.Equal(t, float64(25), products[0]["price"])
	require.Equal(t, float64(4), products[0]["quantity"])
	require.Equal(t, "red", products[0]["color"])
}

func Test_CreateProduct_Returns_400_When_Name_Not_Unique(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	name := uniqueName("Chair")
	createProduct(t, map[string]interface{}{"name": name, "price": 40, "quantity": 1})

	// Act
	resp := sendRequest[errorResponse](
		t,
		http.MethodPost,
		productsURL("", nil),
		map[string]interface{}{"name": name, "price": 99, "quantity": 9},
		expectStatus(t, http.StatusBadRequest),
	)

	// Assert
	require.Equal(t, "Product name not unique.", resp.Message)

	count, err := fixture.collection.CountDocuments(context.Background(), bson.M{"name": name})
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	products := listProducts(t, url.Values{"name": {name}})
	require.Len(t, products, 1)
	require.Equal(t, float64(40), products[0]["price"])
}

func Test_CreateProduct_Returns_400_When_Name_Missing(t *testing.T) {
	requireInfrastructure(t)

	// Act
	resp := sendRequest[errorResponse](
		t,
		http.MethodPost,
		productsURL("", nil),
		map[string]interface{}{"price": 1},
		expectStatus(t, http.StatusBadRequest),
	)

	// Assert
	require.NotEmpty(t, resp.Message)
}

func Test_CreateProduct_Keeps_Fractional_Price(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	name := uniqueName("Tea")

	// Act
	createProduct(t, map[string]interface{}{"name": name, "price": 9.99, "quantity": 2})

	// Assert
	products := listProducts(t, url.Values{"name": {name}})
	require.Len(t, products, 1)
	require.Equal(t, 9.99, products[0]["price"])
	require.Equal(t, float64(2), products[0]["quantity"])
}

func Test_CreateProduct_Returns_400_When_Name_Not_String(t *testing.T) {
	requireInfrastructure(t)

	// Act
	resp := sendRequest[errorResponse](
		t,
		http.MethodPost,
		productsURL("", nil),
		map[string]interface{}{"name": 42, "price": 1},
		expectStatus(t, http.StatusBadRequest),
	)

	// Assert
	require.NotEmpty(t, resp.Message)
}

func Test_GetProducts_Matches_Name_Case_Insensitive_Substring(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	suffix := uuid.NewString()
	createProduct(t, map[string]interface{}{"name": "Blue Shirt " + suffix, "price": 15, "quantity": 3})

	// Act
	products := listProducts(t, url.Values{"name": {"shirt " + suffix}})

	// Assert
	require.Len(t, products, 1)
	require.Equal(t, "Blue Shirt "+suffix, products[0]["name"])
}

func Test_GetProducts_Filters_By_Price_And_Quantity(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	prefix := uuid.NewString()
	createProduct(t, map[string]interface{}{"name": prefix + " a", "price": 10, "quantity": 1})
	createProduct(t, map[string]interface{}{"name": prefix + " b", "price": 10, "quantity": 2})
	createProduct(t, map[string]interface{}{"name": prefix + " c", "price": 20, "quantity": 2})

	// Act
	byPrice := listProducts(t, url.Values{"name": {prefix}, "price": {"10"}})
	byBoth := listProducts(t, url.Values{"name": {prefix}, "price": {"10"}, "quantity": {"2"}})

	// Assert
	require.Len(t, byPrice, 2)
	require.Len(t, byBoth, 1)
	require.Equal(t, prefix+" b", byBoth[0]["name"])
}

func Test_GetProducts_Non_Numeric_Price_Matches_Nothing(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	prefix := uuid.NewString()
	createProduct(t, map[string]interface{}{"name": prefix, "price": 10, "quantity": 1})

	// Act
	products := listProducts(t, url.Values{"name": {prefix}, "price": {"cheap"}})

	// Assert
	require.Empty(t, products)
}

func Test_GetProducts_Sorts_By_Price(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	prefix := uuid.NewString()
	for _, price := range []int{30, 10, 20} {
		createProduct(t, map[string]interface{}{"name": prefix + " " + uuid.NewString(), "price": price, "quantity": 1})
	}

	// Act
	ascending := listProducts(t, url.Values{"name": {prefix}, "sort": {`{"price":1}`}})
	descending := listProducts(t, url.Values{"name": {prefix}, "sort": {`{"price":-1}`}})

	// Assert
	prices := func(products []map[string]interface{}) []float64 {
		result := make([]float64, 0, len(products))
		for _, p := range products {
			result = append(result, p["price"].(float64))
		}
		return result
	}

	require.Equal(t, []float64{10, 20, 30}, prices(ascending))
	require.Equal(t, []float64{30, 20, 10}, prices(descending))
}

func Test_GetProducts_Returns_500_For_Malformed_Sort(t *testing.T) {
	requireInfrastructure(t)

	// Act
	resp := sendRequest[errorResponse](
		t,
		http.MethodGet,
		productsURL("", url.Values{"sort": {`{"price":`}}),
		nil,
		expectStatus(t, http.StatusInternalServerError),
	)

	// Assert
	require.NotEmpty(t, resp.Message)
}

func Test_UpdateProduct_Changes_Only_Supplied_Fields(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	name := uniqueName("Kettle")
	id := createProduct(t, map[string]interface{}{"name": name, "price": 30, "quantity": 5, "brand": "acme"})

	// Act
	resp := sendRequest[updateResponse](
		t,
		http.MethodPut,
		productsURL("/"+id, nil),
		map[string]interface{}{"price": 35},
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.Equal(t, int64(1), resp.MatchedCount)
	require.Equal(t, int64(1), resp.ModifiedCount)

	products := listProducts(t, url.Values{"name": {name}})
	require.Len(t, products, 1)
	require.Equal(t, float64(35), products[0]["price"])
	require.Equal(t, float64(5), products[0]["quantity"])
	require.Equal(t, "acme", products[0]["brand"])
}

func Test_UpdateProduct_Returns_Zero_Matches_For_Unknown_ID(t *testing.T) {
	requireInfrastructure(t)

	// Act
	resp := sendRequest[updateResponse](
		t,
		http.MethodPut,
		productsURL("/"+primitive.NewObjectID().Hex(), nil),
		map[string]interface{}{"price": 1},
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.Equal(t, int64(0), resp.MatchedCount)
	require.Equal(t, int64(0), resp.ModifiedCount)
}

func Test_UpdateProduct_Returns_500_For_Malformed_ID(t *testing.T) {
	requireInfrastructure(t)

	// Act
	resp := sendRequest[errorResponse](
		t,
		http.MethodPut,
		productsURL("/not-an-id", nil),
		map[string]interface{}{"price": 1},
		expectStatus(t, http.StatusInternalServerError),
	)

	// Assert
	require.NotEmpty(t, resp.Message)
}

func Test_UpdateProduct_Returns_400_For_Empty_Body(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	id := createProduct(t, map[string]interface{}{"name": uniqueName("Mug"), "price": 3, "quantity": 3})

	// Act
	resp := sendRequest[errorResponse](
		t,
		http.MethodPut,
		productsURL("/"+id, nil),
		map[string]interface{}{},
		expectStatus(t, http.StatusBadRequest),
	)

	// Assert
	require.NotEmpty(t, resp.Message)
}

func Test_DeleteProduct_Removes_Exactly_One_Product(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	prefix := uuid.NewString()
	id := createProduct(t, map[string]interface{}{"name": prefix + " keep-out", "price": 1, "quantity": 1})
	createProduct(t, map[string]interface{}{"name": prefix + " stays", "price": 1, "quantity": 1})

	// Act
	resp := sendRequest[deleteResponse](
		t,
		http.MethodDelete,
		productsURL("/"+id, nil),
		nil,
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.Equal(t, int64(1), resp.DeletedCount)

	products := listProducts(t, url.Values{"name": {prefix}})
	require.Len(t, products, 1)
	require.Equal(t, prefix+" stays", products[0]["name"])
}

func Test_DeleteProduct_Returns_404_For_Unknown_ID(t *testing.T) {
	requireInfrastructure(t)

	// Act
	resp := sendRequest[errorResponse](
		t,
		http.MethodDelete,
		productsURL("/"+primitive.NewObjectID().Hex(), nil),
		nil,
		expectStatus(t, http.StatusNotFound),
	)

	// Assert
	require.Equal(t, "Product not found or unable to delete", resp.Message)
}

func Test_DeleteProduct_Returns_500_For_Malformed_ID(t *testing.T) {
	requireInfrastructure(t)

	// Act
	sendRequest[errorResponse](
		t,
		http.MethodDelete,
		productsURL("/xyz", nil),
		nil,
		expectStatus(t, http.StatusInternalServerError),
	)
}

func Test_Report_Returns_Empty_List_For_Empty_Collection(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	_, err := fixture.collection.DeleteMany(context.Background(), bson.M{})
	require.NoError(t, err)

	// Act
	resp := sendRequest[[]reportRow](
		t,
		http.MethodGet,
		productsURL("/report", nil),
		nil,
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.NotNil(t, resp)
	require.Empty(t, resp)
}

func Test_Report_Sums_Quantity_And_Inventory_Value(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	_, err := fixture.collection.DeleteMany(context.Background(), bson.M{})
	require.NoError(t, err)

	createProduct(t, map[string]interface{}{"name": uniqueName("Pen"), "quantity": 2, "price": 10})
	createProduct(t, map[string]interface{}{"name": uniqueName("Pad"), "quantity": 3, "price": 5})

	// Act
	resp := sendRequest[[]map[string]interface{}](
		t,
		http.MethodGet,
		productsURL("/report", nil),
		nil,
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.Len(t, resp, 1)
	require.Equal(t, float64(5), resp[0]["totalQuantity"])
	require.Equal(t, float64(35), resp[0]["totalValue"])
	require.NotContains(t, resp[0], "_id")
}

func Test_Responses_Echo_Correlation_ID(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	correlationID := uuid.NewString()
	req, err := http.NewRequest(http.MethodGet, productsURL("", url.Values{"name": {correlationID}}), nil)
	require.NoError(t, err)
	req.Header.Set(core.CorrelationIDHeader, correlationID)

	// Act
	resp, err := fixture.client.Do(req)

	// Assert
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, correlationID, resp.Header.Get(core.CorrelationIDHeader))
	require.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"))
}

func Test_Report_Sums_Fractional_Prices(t *testing.T) {
	requireInfrastructure(t)

	// Arrange
	_, err := fixture.collection.DeleteMany(context.Background(), bson.M{})
	require.NoError(t, err)

	createProduct(t, map[string]interface{}{"name": uniqueName("Tea"), "quantity": 2, "price": 9.5})
	createProduct(t, map[string]interface{}{"name": uniqueName("Cup"), "quantity": 1, "price": 3})

	// Act
	resp := sendRequest[[]reportRow](
		t,
		http.MethodGet,
		productsURL("/report", nil),
		nil,
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.Len(t, resp, 1)
	require.Equal(t, float64(3), resp[0].TotalQuantity)
	require.Equal(t, float64(22), resp[0].TotalValue)
}
