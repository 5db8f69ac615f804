package plaid

import (
	"context"
	"fmt"

	"github.com/plaid/plaid-go/v41/plaid"
)

func NewPlaidClient(clientID, secret, env string) (*plaid.APIClient, error) {
	configuration := plaid.NewConfiguration()
	configuration.AddDefaultHeader("PLAID-CLIENT-ID", clientID)
	configuration.AddDefaultHeader("PLAID-SECRET", secret)

	switch env {
	case "sandbox":
		configuration.UseEnvironment(plaid.Sandbox)
	case "production":
		configuration.UseEnvironment(plaid.Production)
	default:
		return nil, fmt.Errorf("invalid Plaid environment: %s", env)
	}

	return plaid.NewAPIClient(configuration), nil
}

// API is the subset of Plaid endpoints the sync uses.
type API interface {
	TransactionsSync(ctx context.Context, req plaid.TransactionsSyncRequest) (plaid.TransactionsSyncResponse, error)
	AccountsGet(ctx context.Context, req plaid.AccountsGetRequest) (plaid.AccountsGetResponse, error)
	LiabilitiesGet(ctx context.Context, req plaid.LiabilitiesGetRequest) (plaid.LiabilitiesGetResponse, error)
}

// Client adapts the generated Plaid client to API and LinkAPI.
type Client struct {
	api *plaid.APIClient
}

func NewClient(api *plaid.APIClient) *Client {
	return &Client{api: api}
}

func (c *Client) TransactionsSync(ctx context.Context, req plaid.TransactionsSyncRequest) (plaid.TransactionsSyncResponse, error) {
	resp, _, err := c.api.PlaidApi.TransactionsSync(ctx).TransactionsSyncRequest(req).Execute()
	return resp, err
}

func (c *Client) AccountsGet(ctx context.Context, req plaid.AccountsGetRequest) (plaid.AccountsGetResponse, error) {
	resp, _, err := c.api.PlaidApi.AccountsGet(ctx).AccountsGetRequest(req).Execute()
	return resp, err
}

func (c *Client) LiabilitiesGet(ctx context.Context, req plaid.LiabilitiesGetRequest) (plaid.LiabilitiesGetResponse, error) {
	resp, _, err := c.api.PlaidApi.LiabilitiesGet(ctx).LiabilitiesGetRequest(req).Execute()
	return resp, err
}

func (c *Client) LinkTokenCreate(ctx context.Context, req plaid.LinkTokenCreateRequest) (plaid.LinkTokenCreateResponse, error) {
	resp, _, err := c.api.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(req).Execute()
	return resp, err
}

func (c *Client) ItemPublicTokenExchange(ctx context.Context, req plaid.ItemPublicTokenExchangeRequest) (plaid.ItemPublicTokenExchangeResponse, error) {
	resp, _, err := c.api.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(req).Execute()
	return resp, err
}

func (c *Client) ItemGet(ctx context.Context, req plaid.ItemGetRequest) (plaid.ItemGetResponse, error) {
	resp, _, err := c.api.PlaidApi.ItemGet(ctx).ItemGetRequest(req).Execute()
	return resp, err
}
