package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CryptoTradeLab/config"
	"CryptoTradeLab/internal/models"
	"CryptoTradeLab/internal/operations/backtest"
	"CryptoTradeLab/internal/operations/binance"
	"CryptoTradeLab/internal/operations/monitor"
	"CryptoTradeLab/internal/operations/price"
	"CryptoTradeLab/internal/repositories"
	"CryptoTradeLab/internal/services/alerts"
	"CryptoTradeLab/internal/services/analysis"
	"CryptoTradeLab/internal/services/analytics"
	"CryptoTradeLab/internal/services/indicators"
	"CryptoTradeLab/internal/services/strategy"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	backtestSymbol := flag.String("backtest", "", "run a one-shot backtest for this symbol instead of monitoring")
	showStats := flag.Bool("stats", false, "print journal analytics and exit")
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	db := setupDatabase(cfg.Database, logger)

	priceRepo := repositories.NewPriceRepository(db)
	signalRepo := repositories.NewSignalRepository(db)
	tradeRepo := repositories.NewTradeRepository(db)
	backtestRepo := repositories.NewBacktestRepository(db)

	if *showStats {
		printStats(analytics.NewService(signalRepo, tradeRepo), logger)
		return
	}

	futuresClient := binance.NewFuturesClient(cfg.Exchange.APIKey, cfg.Exchange.SecretKey)
	fetcher := price.NewFetcher(futuresClient, logger)

	indicatorService := indicators.NewService()
	setupService := strategy.NewSetupService()
	confidenceAnalyzer := analysis.NewConfidenceAnalyzer()

	filters := strategy.Filters{
		Trend:  cfg.App.Backtest.FilterTrend,
		Volume: cfg.App.Backtest.FilterVolume,
		ADX:    cfg.App.Backtest.FilterADX,
		MACD:   cfg.App.Backtest.FilterMACD,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *backtestSymbol != "" {
		runBacktest(ctx, *backtestSymbol, cfg, fetcher, indicatorService,
			setupService, filters, priceRepo, backtestRepo, logger)
		return
	}

	scanner := monitor.NewScanner(fetcher, indicatorService, setupService,
		confidenceAnalyzer, filters, logger)
	telegram := alerts.NewTelegramService(cfg.Telegram.Token, cfg.Telegram.ChatID)
	email := alerts.NewEmailService(cfg.Email.SMTPHost, cfg.Email.SMTPPort,
		cfg.Email.Sender, cfg.Email.Password, cfg.Email.Receiver)

	mon := monitor.NewMonitor(scanner, signalRepo, telegram, email, monitor.Config{
		Symbols:          cfg.App.Symbols,
		TimeFrames:       cfg.App.TimeFrames,
		LookbackDays:     cfg.App.LookbackDays,
		MinConfluence:    cfg.App.MinConfluence,
		SymbolCooldown:   time.Duration(cfg.App.CooldownMinutes) * time.Minute,
		MaxAlertsPerHour: cfg.App.MaxAlertsPerHour,
	}, logger)

	if err := mon.Run(ctx); err != nil && err != context.Canceled {
		logger.Fatal("monitor exited", zap.Error(err))
	}
}

func runBacktest(ctx context.Context, symbol string, cfg *config.Config,
	fetcher *price.Fetcher, indicatorService *indicators.Service,
	setupService *strategy.SetupService, filters strategy.Filters,
	priceRepo *repositories.PriceRepository,
	backtestRepo *repositories.BacktestRepository, logger *zap.Logger) {

	btConfig := backtest.Config{
		InitialCapital:       cfg.App.Backtest.InitialCapital,
		PositionSizeFraction: cfg.App.Backtest.PositionSizeFraction,
		UseDCA:               cfg.App.Backtest.UseDCA,
		TrailingStopPercent:  cfg.App.Backtest.TrailingStopPercent,
		Filters:              filters,
	}

	engine, err := backtest.NewEngine(btConfig, indicatorService, setupService)
	if err != nil {
		logger.Fatal("failed to create backtest engine", zap.Error(err))
	}

	prices, err := fetcher.FetchKlines(ctx, symbol, cfg.App.Interval, cfg.App.LookbackDays)
	if err != nil {
		logger.Fatal("failed to fetch candles", zap.String("symbol", symbol), zap.Error(err))
	}
	if err := priceRepo.SaveBatch(prices); err != nil {
		logger.Warn("failed to cache candles", zap.Error(err))
	}

	result, err := engine.Run(prices)
	if err != nil {
		logger.Fatal("backtest failed", zap.Error(err))
	}
	if result == nil {
		logger.Warn("not enough candles to run a backtest",
			zap.String("symbol", symbol),
			zap.Int("candles", len(prices)))
		return
	}

	printResults(symbol, result)

	record := buildBacktestRecord(symbol, cfg.App.Interval, prices, btConfig, result)
	if err := backtestRepo.Create(record); err != nil {
		logger.Error("failed to save backtest record", zap.Error(err))
	}
}

func printStats(service *analytics.Service, logger *zap.Logger) {
	overall, err := service.OverallStats()
	if err != nil {
		logger.Fatal("failed to compute overall stats", zap.Error(err))
	}

	fmt.Println("\n=== Journal Analytics ===")
	fmt.Printf("Signals: %d total, %d alerted, %d taken\n",
		overall.TotalSignals, overall.SignalsAlerted, overall.SignalsTaken)
	fmt.Printf("Closed Trades: %d | Win Rate: %.2f%% | Total PnL: $%.2f\n",
		overall.TotalTrades, overall.WinRate, overall.TotalPnL)
	fmt.Printf("Best Symbol: %s\n", overall.BestSymbol)

	bySymbol, err := service.WinRateBySymbol()
	if err != nil {
		logger.Fatal("failed to compute symbol stats", zap.Error(err))
	}
	if len(bySymbol) > 0 {
		fmt.Println("\nPer-Symbol Performance:")
		for _, ss := range bySymbol {
			fmt.Printf("  %-12s %3d trades, %6.2f%% win rate, $%.2f\n",
				ss.Symbol, ss.TotalTrades, ss.WinRate, ss.TotalPnL)
		}
	}

	reasons, err := service.TopConfluenceReasons(10)
	if err != nil {
		logger.Fatal("failed to compute top reasons", zap.Error(err))
	}
	if len(reasons) > 0 {
		fmt.Println("\nTop Confluence Reasons:")
		for _, rc := range reasons {
			fmt.Printf("  %3dx %s\n", rc.Count, rc.Reason)
		}
	}
}

func printResults(symbol string, result *backtest.Result) {
	m := result.Metrics

	fmt.Println("\n=== Backtest Results ===")
	fmt.Printf("Symbol: %s\n", symbol)
	fmt.Printf("Total Trades: %d\n", m.TotalTrades)
	fmt.Printf("Winning Trades: %d (%.2f%%)\n", m.WinningTrades, m.WinRate)
	fmt.Printf("Profit Factor: %.2f\n", m.ProfitFactor)
	fmt.Printf("Total Return: $%.2f (%.2f%%)\n", m.TotalReturn, m.TotalReturnPct)
	fmt.Printf("Max Drawdown: $%.2f (%.2f%%)\n", m.MaxDrawdown, m.MaxDrawdownPct)
	fmt.Printf("Avg Win: $%.2f | Avg Loss: $%.2f\n", m.AvgWin, m.AvgLoss)
	fmt.Printf("Largest Win: $%.2f | Largest Loss: $%.2f\n", m.LargestWin, m.LargestLoss)
	fmt.Printf("Avg Trade Duration: %.1fh\n", m.AvgTradeDurationHours)
	fmt.Printf("Final Capital: $%.2f\n", m.FinalCapital)
}

func buildBacktestRecord(symbol, interval string, prices []models.Price,
	btConfig backtest.Config, result *backtest.Result) *models.BacktestRecord {
	parameters, _ := json.Marshal(btConfig)
	return &models.BacktestRecord{
		Symbol:        symbol,
		TimeFrame:     interval,
		StartDate:     prices[0].OpenTime,
		EndDate:       prices[len(prices)-1].CloseTime,
		TotalTrades:   result.Metrics.TotalTrades,
		WinningTrades: result.Metrics.WinningTrades,
		LosingTrades:  result.Metrics.LosingTrades,
		WinRate:       result.Metrics.WinRate,
		TotalPnL:      result.Metrics.TotalReturn,
		MaxDrawdown:   result.Metrics.MaxDrawdownPct,
		Parameters:    string(parameters),
	}
}

func setupDatabase(dbConfig config.DatabaseConfig, logger *zap.Logger) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	})
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	err = db.AutoMigrate(
		&models.Price{},
		&models.Signal{},
		&models.TradeRecord{},
		&models.BacktestRecord{},
	)
	if err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	return db
}
