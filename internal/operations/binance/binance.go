package binance

import (
	"net/http"
	"time"

	"github.com/adshao/go-binance/v2/futures"
)

// NewFuturesClient builds a Binance futures client with connection
// pooling and request timeouts suitable for repeated kline fetching.
// Public market data endpoints work with empty credentials.
func NewFuturesClient(apiKey, secretKey string) *futures.Client {
	httpClient := &http.Client{
		Timeout: time.Second * 10,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	client := futures.NewClient(apiKey, secretKey)
	client.HTTPClient = httpClient
	return client
}
