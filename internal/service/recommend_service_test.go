package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"productosml/internal/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBody = `{
  "success": true,
  "data": {
    "users": [
      {"id": "u1", "age": 25, "gender": "true"},
      {"id": "u2", "age": "31", "gender": "false"}
    ],
    "products": [
      {"id": "p1", "productVariantId": "p1", "name": "Polo", "category": "ropa", "brand": "acme", "material": "algodon", "feature": "casual", "price": 10},
      {"id": "p2", "productVariantId": "p2", "name": "Casaca", "category": "ropa", "brand": "acme", "material": "cuero", "feature": "abrigo", "price": 20},
      {"id": "p3", "productVariantId": "p3", "name": "Zapatillas", "category": "calzado", "brand": "runner", "material": "malla", "feature": "deporte", "price": 30}
    ],
    "orderHistories": [
      {"clientId": "u1", "productVariantId": "p1", "quantity": 2, "purchaseTimestamp": 1700000000000},
      {"clientId": "u1", "productVariantId": "p2", "quantity": 1, "purchaseTimestamp": 1700000001000},
      {"clientId": "u2", "productVariantId": "p1", "quantity": 1, "purchaseTimestamp": 1700000002000},
      {"clientId": "u2", "productVariantId": "p3", "quantity": 3, "purchaseTimestamp": 1700000003000}
    ]
  }
}`

func newService(upstream string) *RecommendService {
	// sin Mongo ni cache: el camino por defecto reentrena siempre
	return NewRecommendService(source.NewClient(upstream, "/recommender/data"), nil, 3, false, 3600)
}

func serveBody(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
}

func TestRecommendEndToEnd(t *testing.T) {
	srv := serveBody(sampleBody)
	defer srv.Close()

	svc := newService(srv.URL)
	items, err := svc.Recommend(context.Background(), RecRequest{UserID: "u1", N: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, items)
}

func TestRecommendRetrainsPerQuery(t *testing.T) {
	srv := serveBody(sampleBody)
	defer srv.Close()

	svc := newService(srv.URL)

	// dos consultas idénticas dan exactamente lo mismo
	first, err := svc.Recommend(context.Background(), RecRequest{UserID: "u1", N: 3})
	require.NoError(t, err)
	second, err := svc.Recommend(context.Background(), RecRequest{UserID: "u1", N: 3})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRecommendDefaultAndMaxN(t *testing.T) {
	srv := serveBody(sampleBody)
	defer srv.Close()

	svc := newService(srv.URL)

	items, err := svc.Recommend(context.Background(), RecRequest{UserID: "u1"})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(items), 3, "sin n usa el default")

	items, err = svc.Recommend(context.Background(), RecRequest{UserID: "u1", N: 9999})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(items), MaxN)
}

func TestRecommendColdStartUser(t *testing.T) {
	srv := serveBody(sampleBody)
	defer srv.Close()

	svc := newService(srv.URL)
	items, err := svc.Recommend(context.Background(), RecRequest{UserID: "nadie", N: 3})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRecommendUpstreamDown(t *testing.T) {
	srv := serveBody(sampleBody)
	srv.Close() // upstream caído

	svc := newService(srv.URL)
	_, err := svc.Recommend(context.Background(), RecRequest{UserID: "u1", N: 3})
	assert.True(t, errors.Is(err, ErrUpstream), "err = %v", err)
}

func TestRecommendInvalidPayload(t *testing.T) {
	cases := map[string]string{
		"success false":    `{"success":false,"data":{"users":[],"products":[],"orderHistories":[]}}`,
		"sin data":         `{"success":true}`,
		"sección faltante": `{"success":true,"data":{"users":[],"products":[]}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := serveBody(body)
			defer srv.Close()

			svc := newService(srv.URL)
			_, err := svc.Recommend(context.Background(), RecRequest{UserID: "u1", N: 3})
			assert.True(t, errors.Is(err, ErrInvalidPayload), "err = %v", err)
		})
	}
}

func TestRecommendProgressCallback(t *testing.T) {
	srv := serveBody(sampleBody)
	defer srv.Close()

	svc := newService(srv.URL)

	var stages []string
	_, err := svc.Recommend(context.Background(), RecRequest{
		UserID:   "u1",
		N:        2,
		Progress: func(stage string) { stages = append(stages, stage) },
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fetching", "training", "ranking"}, stages)
}
