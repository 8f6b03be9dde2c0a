package quotes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asset-tracker/internal/timebucket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldClientFetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/gold/price", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("ApiToken"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"code":200,"msg":"ok","data":{"price":552.4,"updated_at":"2025-06-01 10:05:00"}}`)
	}))
	defer srv.Close()

	c := NewGoldClient(srv.URL, "test-key")
	q, err := c.FetchQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 552.4, q.Value)
	assert.Equal(t, time.Date(2025, 6, 1, 10, 5, 0, 0, timebucket.Zone()), q.SourceUpdatedAt)
}

func TestFXClientFetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/fx/usd_cny", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"code":200,"msg":"ok","data":{"rate":7.1358,"updated_at":"2025-06-01 10:00:00"}}`)
	}))
	defer srv.Close()

	c := NewFXClient(srv.URL, "")
	q, err := c.FetchQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7.1358, q.Value)
}

func TestGoldClientNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewGoldClient(srv.URL, "")
	_, err := c.FetchQuote(context.Background())
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "gold", ue.Source)
}

func TestFXClientUpstreamErrorCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"code":429,"msg":"rate limited","data":{}}`)
	}))
	defer srv.Close()

	c := NewFXClient(srv.URL, "")
	_, err := c.FetchQuote(context.Background())
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Error(), "rate limited")
}

func TestGoldClientBadTimestamp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"code":200,"msg":"ok","data":{"price":550,"updated_at":"junk"}}`)
	}))
	defer srv.Close()

	c := NewGoldClient(srv.URL, "")
	_, err := c.FetchQuote(context.Background())
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
}

func TestGoldClientUnreachable(t *testing.T) {
	c := NewGoldClient("http://127.0.0.1:1", "")
	_, err := c.FetchQuote(context.Background())
	var ue *UpstreamError
	require.True(t, errors.As(err, &ue))
}
