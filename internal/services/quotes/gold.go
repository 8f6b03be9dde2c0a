package quotes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"asset-tracker/internal/timebucket"

	"github.com/go-resty/resty/v2"
)

// GoldClient fetches the current CNY/gram gold price.
type GoldClient struct {
	client *resty.Client
	apiKey string
}

func NewGoldClient(baseURL, apiKey string) *GoldClient {
	return &GoldClient{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(requestTimeout),
		apiKey: apiKey,
	}
}

type goldResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Price     float64 `json:"price"`
		UpdatedAt string  `json:"updated_at"`
	} `json:"data"`
}

func (c *GoldClient) FetchQuote(ctx context.Context) (Quote, error) {
	var out goldResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("ApiToken", c.apiKey).
		SetResult(&out).
		Get("/api/v1/gold/price")
	if err != nil {
		return Quote{}, &UpstreamError{Source: "gold", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return Quote{}, &UpstreamError{Source: "gold", Err: fmt.Errorf("unexpected status %d", resp.StatusCode())}
	}
	if out.Code != 200 {
		return Quote{}, &UpstreamError{Source: "gold", Err: fmt.Errorf("upstream code %d: %s", out.Code, out.Msg)}
	}
	if out.Data.Price <= 0 {
		return Quote{}, &UpstreamError{Source: "gold", Err: fmt.Errorf("invalid price %v", out.Data.Price)}
	}
	updatedAt, err := time.ParseInLocation(sourceTimeLayout, out.Data.UpdatedAt, timebucket.Zone())
	if err != nil {
		return Quote{}, &UpstreamError{Source: "gold", Err: fmt.Errorf("bad updated_at %q: %w", out.Data.UpdatedAt, err)}
	}
	return Quote{Value: out.Data.Price, SourceUpdatedAt: updatedAt}, nil
}
