package client

import "context"

// ClientesPath is the customers collection.
const ClientesPath = "/api/v1/clientes"

// ListClientes returns all customers. Failures, including transport errors,
// are logged and yield an empty list.
func (c *Client) ListClientes(ctx context.Context) []Cliente {
	return listOrEmpty[Cliente](ctx, c, ClientesPath, "clientes")
}
