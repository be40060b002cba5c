package api

import "context"

const ordersResource = "orders/"

// ListOrders returns the caller's booking history. The endpoint is scoped to
// the authenticated user by the backend, so the bearer token on the transport
// decides whose orders come back.
func (c *Client) ListOrders(ctx context.Context) (Page[Order], error) {
	var page Page[Order]
	err := c.getJSON(ctx, c.resource(ordersResource), nil, &page)
	return page, err
}

// CreateOrder places a booking with one or more tickets.
func (c *Client) CreateOrder(ctx context.Context, order Order) (Order, error) {
	var created Order
	err := c.postJSON(ctx, c.resource(ordersResource), order, &created)
	return created, err
}
