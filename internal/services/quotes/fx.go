package quotes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"asset-tracker/internal/timebucket"

	"github.com/go-resty/resty/v2"
)

// FXClient fetches the current USD/CNY exchange rate.
type FXClient struct {
	client *resty.Client
	apiKey string
}

func NewFXClient(baseURL, apiKey string) *FXClient {
	return &FXClient{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(requestTimeout),
		apiKey: apiKey,
	}
}

type fxResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Rate      float64 `json:"rate"`
		UpdatedAt string  `json:"updated_at"`
	} `json:"data"`
}

func (c *FXClient) FetchQuote(ctx context.Context) (Quote, error) {
	var out fxResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("ApiToken", c.apiKey).
		SetResult(&out).
		Get("/api/v1/fx/usd_cny")
	if err != nil {
		return Quote{}, &UpstreamError{Source: "fx", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return Quote{}, &UpstreamError{Source: "fx", Err: fmt.Errorf("unexpected status %d", resp.StatusCode())}
	}
	if out.Code != 200 {
		return Quote{}, &UpstreamError{Source: "fx", Err: fmt.Errorf("upstream code %d: %s", out.Code, out.Msg)}
	}
	if out.Data.Rate <= 0 {
		return Quote{}, &UpstreamError{Source: "fx", Err: fmt.Errorf("invalid rate %v", out.Data.Rate)}
	}
	updatedAt, err := time.ParseInLocation(sourceTimeLayout, out.Data.UpdatedAt, timebucket.Zone())
	if err != nil {
		return Quote{}, &UpstreamError{Source: "fx", Err: fmt.Errorf("bad updated_at %q: %w", out.Data.UpdatedAt, err)}
	}
	return Quote{Value: out.Data.Rate, SourceUpdatedAt: updatedAt}, nil
}
