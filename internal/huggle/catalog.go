package huggle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
	"github.com/ChimaRyder/huggle-buyer-app/pkg/errors"
)

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, productID string) (domain.Product, error) {
	var product domain.Product
	if err := c.get(ctx, "/products/"+productID, nil, &product); err != nil {
		if errors.IsStatus(err, http.StatusNotFound) {
			return domain.Product{}, &errors.NotFoundError{Resource: "product", ID: productID}
		}
		return domain.Product{}, err
	}
	return product, nil
}

// productsEnvelope is the wrapped shape some deployments return for the
// by-store listing. The shape is normalized here once so callers never branch.
type productsEnvelope struct {
	Products []domain.Product `json:"products"`
}

// ProductsByStore fetches a store's products. The endpoint returns either a
// bare array or a {products: []} envelope depending on backend version.
func (c *Client) ProductsByStore(ctx context.Context, storeID string) ([]domain.Product, error) {
	query := url.Values{"storeId": {storeID}}

	var raw json.RawMessage
	if err := c.get(ctx, "/products", query, &raw); err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err == nil {
		return products, nil
	}

	var envelope productsEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected products response shape: %w", err)
	}
	return envelope.Products, nil
}

// AllProducts fetches the full display feed.
func (c *Client) AllProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.get(ctx, "/products/display/all", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// SearchProducts runs a product search. searchProducts toggles between
// product-name and store-name matching on the backend.
func (c *Client) SearchProducts(ctx context.Context, searchTerm string, searchProducts bool) ([]domain.Product, error) {
	query := url.Values{
		"searchTerm":     {searchTerm},
		"searchProducts": {fmt.Sprintf("%t", searchProducts)},
	}
	var products []domain.Product
	if err := c.get(ctx, "/products/display/search", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Store fetches a store by id.
func (c *Client) Store(ctx context.Context, storeID string) (domain.Store, error) {
	var store domain.Store
	if err := c.get(ctx, "/stores/"+storeID, nil, &store); err != nil {
		if errors.IsStatus(err, http.StatusNotFound) {
			return domain.Store{}, &errors.NotFoundError{Resource: "store", ID: storeID}
		}
		return domain.Store{}, err
	}
	return store, nil
}

// Buyer fetches the buyer's profile, including favorite stores.
func (c *Client) Buyer(ctx context.Context, buyerID string) (domain.Buyer, error) {
	var buyer domain.Buyer
	if err := c.get(ctx, "/buyer/"+buyerID, nil, &buyer); err != nil {
		if errors.IsStatus(err, http.StatusNotFound) {
			return domain.Buyer{}, &errors.NotFoundError{Resource: "buyer", ID: buyerID}
		}
		return domain.Buyer{}, err
	}
	return buyer, nil
}

type favoriteStoreRequest struct {
	StoreID string `json:"storeId"`
	IsAdd   bool   `json:"isAdd"`
}

// UpdateFavoriteStore adds or removes a store from the buyer's favorites.
func (c *Client) UpdateFavoriteStore(ctx context.Context, buyerID, storeID string, isAdd bool) error {
	return c.put(ctx, "/buyer/"+buyerID+"/favorite-stores", favoriteStoreRequest{StoreID: storeID, IsAdd: isAdd}, nil)
}

type locationRequest struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// UpdateLocation reports the buyer's current coordinates.
func (c *Client) UpdateLocation(ctx context.Context, buyerID string, longitude, latitude float64) error {
	return c.put(ctx, "/buyer/"+buyerID+"/location", locationRequest{Longitude: longitude, Latitude: latitude}, nil)
}
