package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type responseAssertion func(*http.Response)

func expectStatus(t *testing.T, statusCode int) responseAssertion {
	return func(resp *http.Response) {
		require.Equal(t, statusCode, resp.StatusCode)
	}
}

func sendRequest[TResp any](
	t *testing.T,
	method string,
	url string,
	req interface{},
	opts ...responseAssertion,
) TResp {
	t.Helper()

	var resp TResp

	var body io.Reader
	if req != nil {
		payload, err := json.Marshal(req)
		require.NoError(t, err)
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequest(method, url, body)
	require.NoError(t, err)

	httpResp, err := fixture.client.Do(httpReq)
	require.NoError(t, err)

	defer func() {
		_ = httpResp.Body.Close()
	}()

	for _, opt := range opts {
		opt(httpResp)
	}

	responsePayload, err := io.ReadAll(httpResp.Body)
	require.NoError(t, err)

	if len(responsePayload) > 0 {
		require.NoError(t, json.Unmarshal(responsePayload, &resp), string(responsePayload))
	}

	return resp
}

type insertResponse struct {
	InsertedID string `json:"insertedId"`
}

type updateResponse struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type deleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type reportRow struct {
	TotalQuantity float64 `json:"totalQuantity"`
	TotalValue    float64 `json:"totalValue"`
}

func productsURL(path string, query url.Values) string {
	u := fmt.Sprintf("%s/products%s", fixture.baseURL, path)
	if len(query) > 0 {
		u = u + "?" + query.Encode()
	}
	return u
}

func createProduct(t *testing.T, product map[string]interface{}) string {
	t.Helper()

	resp := sendRequest[insertResponse](
		t,
		http.MethodPost,
		productsURL("", nil),
		product,
		expectStatus(t, http.StatusOK),
	)
	require.NotEmpty(t, resp.InsertedID)

	return resp.InsertedID
}

func listProducts(t *testing.T, query url.Values) []map[string]interface{} {
	t.Helper()

	return sendRequest[[]map[string]interface{}](
		t,
		http.MethodGet,
		productsURL("", query),
		nil,
		expectStatus(t, http.StatusOK),
	)
}

func uniqueName(prefix string) string {
	return fmt.Sprintf("%s %s", prefix, uuid.NewString())
}
