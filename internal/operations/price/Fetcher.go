package price

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"CryptoTradeLab/internal/models"

	"github.com/adshao/go-binance/v2/futures"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// binanceKlineLimit is the max candles Binance returns per request
const binanceKlineLimit = 500

var intervalDurations = map[string]time.Duration{
	"1m":  time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"1h":  time.Hour,
	"4h":  4 * time.Hour,
	"1d":  24 * time.Hour,
}

// IntervalDuration returns the candle duration for a Binance interval string
func IntervalDuration(interval string) (time.Duration, error) {
	d, ok := intervalDurations[interval]
	if !ok {
		return 0, fmt.Errorf("unsupported interval %q", interval)
	}
	return d, nil
}

type Fetcher struct {
	client  *futures.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewFetcher(client *futures.Client, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		// Binance allows 1200 request weight/min; stay well under it
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
		logger:  logger,
	}
}

// FetchKlines returns candles for a symbol over the lookback window,
// chunked at the Binance request limit and in chronological order.
// The still-forming candle at the end is dropped so indicator values
// never move after they are computed.
func (f *Fetcher) FetchKlines(ctx context.Context, symbol, interval string, days int) ([]models.Price, error) {
	candleDuration, err := IntervalDuration(interval)
	if err != nil {
		return nil, err
	}

	endTime := time.Now()
	startTime := endTime.AddDate(0, 0, -days)
	chunkDuration := candleDuration * binanceKlineLimit

	var allPrices []models.Price
	currentStart := startTime
	for currentStart.Before(endTime) {
		currentEnd := currentStart.Add(chunkDuration)
		if currentEnd.After(endTime) {
			currentEnd = endTime
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		klines, err := f.fetchChunk(ctx, symbol, interval, currentStart, currentEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s %s klines: %w", symbol, interval, err)
		}

		for _, k := range klines {
			allPrices = append(allPrices, models.Price{
				Symbol:     symbol,
				TimeFrame:  interval,
				OpenTime:   time.Unix(k.OpenTime/1000, 0),
				CloseTime:  time.Unix(k.CloseTime/1000, 0),
				Open:       parseFloat(k.Open),
				High:       parseFloat(k.High),
				Low:        parseFloat(k.Low),
				Close:      parseFloat(k.Close),
				Volume:     parseFloat(k.Volume),
				TradeCount: k.TradeNum,
			})
		}

		f.logger.Debug("fetched klines",
			zap.String("symbol", symbol),
			zap.String("interval", interval),
			zap.Int("count", len(klines)),
			zap.Time("from", currentStart),
			zap.Time("to", currentEnd))

		currentStart = currentEnd
	}

	// Drop the candle that is still open
	if n := len(allPrices); n > 0 && allPrices[n-1].CloseTime.After(time.Now()) {
		allPrices = allPrices[:n-1]
	}

	return allPrices, nil
}

// fetchChunk runs one klines request with retry on transient failures
func (f *Fetcher) fetchChunk(ctx context.Context, symbol, interval string, start, end time.Time) ([]*futures.Kline, error) {
	var klines []*futures.Kline

	operation := func() error {
		var err error
		klines, err = f.client.NewKlinesService().
			Symbol(symbol).
			Interval(interval).
			StartTime(start.UnixMilli()).
			EndTime(end.UnixMilli()).
			Limit(binanceKlineLimit).
			Do(ctx)
		if err != nil {
			f.logger.Warn("klines request failed, retrying",
				zap.String("symbol", symbol),
				zap.Error(err))
		}
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return klines, nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
