package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"

	"simplelearn/internal/bot"
	"simplelearn/internal/config"
	"simplelearn/internal/extract"
	"simplelearn/internal/ingest"
	"simplelearn/internal/resource"
	"simplelearn/internal/session"
	"simplelearn/internal/summarize"
	"simplelearn/internal/util"
	"simplelearn/pkg/ai"
	"simplelearn/pkg/events"
	"simplelearn/pkg/storage"
	"simplelearn/pkg/store"
	"simplelearn/pkg/stt"
)

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.InitLogger(cfg.LogLevel)

	st, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		log.Fatalf("failed to connect to redis: %v", err)
	}
	cancelPing()
	sessions := session.NewStore(redisClient, time.Duration(cfg.SessionTTLHours)*time.Hour)

	geminiClient, err := ai.NewGeminiClient(cfg.GeminiAPIKey)
	if err != nil {
		log.Fatalf("failed to init gemini client: %v", err)
	}
	summarizer := summarize.New(ai.NewGeminiGenerator(geminiClient, cfg.GeminiModel), logger)

	governor := resource.NewGovernor(cfg.TempDir, uint64(cfg.MemoryCeilingMB)<<20, logger)

	opts := ingest.Options{FFmpegPath: cfg.FFmpegPath}
	if cfg.ElevenLabsAPIKey != "" {
		transcriber, err := stt.NewClient(cfg.ElevenLabsAPIKey, cfg.SpeechToTextURL)
		if err != nil {
			log.Fatalf("failed to init speech-to-text client: %v", err)
		}
		opts.Transcriber = transcriber
	} else {
		logger.Warn("speech-to-text disabled: no api key configured")
	}
	if cfg.MinioEndpoint != "" {
		archive, err := storage.NewMinioArchive(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("failed to init transcript archive: %v", err)
		}
		opts.Archive = archive
	}
	if cfg.AMQPURL != "" {
		publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			log.Fatalf("failed to init event publisher: %v", err)
		}
		defer publisher.Close()
		opts.Publisher = publisher
	}

	pipeline := ingest.NewPipeline(governor, extract.NewWebExtractor(logger), st, opts, logger)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("failed to init telegram api: %v", err)
	}

	b := bot.New(api, st, sessions, pipeline, summarizer, governor, bot.Config{
		PollTimeout:          cfg.PollTimeout,
		MaxConcurrency:       cfg.MaxConcurrency,
		AdminUserID:          cfg.AdminUserID,
		PaymentProviderToken: cfg.PaymentProviderToken,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting bot")
	if err := b.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("bot stopped", "err", err)
	}
}
