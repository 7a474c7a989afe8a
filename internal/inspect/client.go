package inspect

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/pastryforge/pastryforge/internal/bakery"
)

// Client is a thin read-only HTTP client over a Server, adapted from
// client/client.go's Client/Transport shape but stripped to the handful of
// GET-only endpoints a read-only inspector exposes.
type Client struct {
	BaseURL   *url.URL
	Transport *http.Client
}

// NewClient builds a Client against baseURL using the default http.Client.
func NewClient(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{BaseURL: u, Transport: http.DefaultClient}, nil
}

func (c *Client) Healthy() bool {
	resp, err := c.Transport.Get(c.BaseURL.String() + "/health")
	if err != nil {
		return false
	}
	return resp.StatusCode == http.StatusOK
}

func (c *Client) Recipes() ([]bakery.RecipeSnapshot, error) {
	var recipes []bakery.RecipeSnapshot
	if err := c.getJSON("/recipes", &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Client) Warehouse() ([]bakery.IngredientSnapshot, error) {
	var ingredients []bakery.IngredientSnapshot
	if err := c.getJSON("/warehouse", &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (c *Client) Orders() (ready, waiting []bakery.OrderSnapshot, err error) {
	var res ordersResponse
	if err := c.getJSON("/orders", &res); err != nil {
		return nil, nil, err
	}
	return res.Ready, res.Waiting, nil
}

func (c *Client) getJSON(path string, out interface{}) error {
	resp, err := c.Transport.Get(c.BaseURL.String() + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.New("inspect: unexpected status " + resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
