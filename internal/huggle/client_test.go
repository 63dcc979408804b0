package huggle

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ChimaRyder/huggle-buyer-app/internal/auth"
	"github.com/ChimaRyder/huggle-buyer-app/internal/config"
	"github.com/ChimaRyder/huggle-buyer-app/pkg/errors"
)

func newTestClient(t *testing.T, handler http.Handler, timeout time.Duration) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.APIConfig{
		BaseURL:        srv.URL,
		RequestTimeout: timeout,
	}, auth.NewStaticTokenSource("test-token"), zap.NewNop())
	return client, srv
}

func TestClient_Product(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/products/P1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"P1","name":"Choco Chip Cookies","discountedPrice":99,"storeId":"S1"}`))
	}), time.Second)

	product, err := client.Product(context.Background(), "P1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "Choco Chip Cookies", product.Name)
	assert.Equal(t, 99.0, product.DiscountedPrice)
	assert.Equal(t, "S1", product.StoreID)
}

func TestClient_Product_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"product not found"}`))
	}), time.Second)

	_, err := client.Product(context.Background(), "missing")
	assert.True(t, errors.IsNotFound(err))
}

func TestClient_ServerErrorCarriesMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"order can no longer be cancelled"}`))
	}), time.Second)

	_, err := client.CancelOrder(context.Background(), "O1")
	require.Error(t, err)
	assert.True(t, errors.IsStatus(err, http.StatusConflict))
	assert.Equal(t, "order can no longer be cancelled", errors.ServerMessage(err))
}

func TestClient_Timeout(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}), 50*time.Millisecond)

	_, err := client.Cart(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err), "expected TimeoutError, got %v", err)
	assert.False(t, errors.IsNetwork(err))
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(config.APIConfig{BaseURL: url, RequestTimeout: time.Second},
		auth.NewStaticTokenSource("test-token"), zap.NewNop())

	_, err := client.Cart(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err), "expected NetworkError, got %v", err)
}

func TestClient_ProductsByStore_BareArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "S1", r.URL.Query().Get("storeId"))
		w.Write([]byte(`[{"id":"P1"},{"id":"P2"}]`))
	}), time.Second)

	products, err := client.ProductsByStore(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "P1", products[0].ID)
}

func TestClient_ProductsByStore_Envelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"id":"P1"}]}`))
	}), time.Second)

	products, err := client.ProductsByStore(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "P1", products[0].ID)
}

func TestClient_AddCartItemSendsPayload(t *testing.T) {
	var gotBody string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart/items", r.URL.Path)
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
	}), time.Second)

	err := client.AddCartItem(context.Background(), "P1", 2)
	require.NoError(t, err)
	assert.JSONEq(t, `{"itemId":"P1","amount":2}`, gotBody)
}
