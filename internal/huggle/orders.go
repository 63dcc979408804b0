package huggle

import (
	"context"
	"net/http"

	"github.com/ChimaRyder/huggle-buyer-app/internal/domain"
	"github.com/ChimaRyder/huggle-buyer-app/pkg/errors"
)

// CreateOrder submits an order draft and returns the persisted order.
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft) (domain.Order, error) {
	var order domain.Order
	if err := c.post(ctx, "/orders", draft, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// Orders fetches the buyer's orders.
func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches a single order by id.
func (c *Client) Order(ctx context.Context, orderID string) (domain.Order, error) {
	var order domain.Order
	if err := c.get(ctx, "/orders/"+orderID, nil, &order); err != nil {
		if errors.IsStatus(err, http.StatusNotFound) {
			return domain.Order{}, &errors.NotFoundError{Resource: "order", ID: orderID}
		}
		return domain.Order{}, err
	}
	return order, nil
}

// CancelOrder asks the server to cancel an order. On 4xx/5xx the server's
// message is carried in the returned ServerError.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (domain.Order, error) {
	var order domain.Order
	if err := c.put(ctx, "/orders/"+orderID+"/cancel", nil, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}
