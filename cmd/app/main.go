package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"ecofleet/cmd"
	kafkain "ecofleet/internal/adapters/in/kafka"
	"ecofleet/internal/adapters/out/bus"
	"ecofleet/internal/adapters/out/cache"
	kafkaout "ecofleet/internal/adapters/out/kafka"
	"ecofleet/internal/adapters/out/mongodb"
	"ecofleet/internal/core/application/notifications"
	"ecofleet/internal/core/ports"
	"ecofleet/internal/jobs"
	"ecofleet/internal/pkg/telemetry"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 30 * time.Second

func main() {
	configs := getConfigs()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName: "ecofleet",
		Endpoint:    configs.OTLPEndpoint,
		Insecure:    configs.OTLPInsecure,
	})
	if err != nil {
		log.Fatalf("Error setting up telemetry: %v", err)
	}

	sqlDB, gormDB, err := openDatabase(ctx, configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer sqlDB.Close()

	app := cmd.NewCompositionRoot(configs, gormDB, sqlDB, logger)
	if err = app.Migrate(ctx); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	processed, closeRedis := newProcessedStore(ctx, configs, logger)
	defer closeRedis()
	notificationLog, closeMongo := newNotificationLog(ctx, configs, logger)
	defer closeMongo()
	notificationHandler := app.CreateDriverNotificationHandler(processed, notificationLog)

	localBus := bus.NewLocalBus(logger)
	publishers := []ports.EventPublisher{localBus}

	var consumers sync.WaitGroup
	if len(configs.KafkaBrokers) > 0 {
		writer := kafkaout.NewWriter(configs.KafkaBrokers, configs.FleetEventsTopic)
		defer writer.Close()
		publishers = append(publishers, kafkaout.NewPublisher(writer, logger))
	}

	// Notifications come off the topic when a consumer group is configured,
	// otherwise straight off the local bus.
	if len(configs.KafkaBrokers) > 0 && configs.KafkaConsumerGroup != "" {
		reader := kafkain.NewReader(configs.KafkaBrokers, configs.FleetEventsTopic, configs.KafkaConsumerGroup)
		defer reader.Close()
		consumer := kafkain.NewConsumer(reader, app.Registry(), notificationHandler, logger)
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			consumer.Run(ctx)
		}()
	} else {
		localBus.Subscribe(notificationHandler, notifications.SubscribedTypes...)
	}

	dispatcher := app.CreateOutboxDispatcher(bus.NewFanoutPublisher(publishers...))
	jobManager := jobs.NewJobManager(dispatcher, configs.OutboxPollInterval, logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e, err := app.HTTPRouter(ctx)
	if err != nil {
		log.Fatalf("Error building HTTP router: %v", err)
	}

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", startErr)
		}
	}()
	logger.Info("EcoFleet started",
		zap.String("port", configs.HTTPPort),
		zap.String("order_store", configs.OrderStore),
		zap.Int("publishers", len(publishers)),
	)

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	jobManager.StopAll(shutdownCtx)
	consumers.Wait()
	if err = shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("Telemetry shutdown failed", zap.Error(err))
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.ConfigFromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func newLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stdout"}
	return config.Build()
}

func openDatabase(ctx context.Context, configs cmd.Config) (*sql.DB, *gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", configs.PostgresDSN())
	if err != nil {
		return nil, nil, err
	}
	if err = sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, nil, err
	}
	return sqlDB, gormDB, nil
}

// newProcessedStore prefers Redis so several instances share one dedupe
// window, and falls back to memory when Redis is absent or unreachable.
func newProcessedStore(ctx context.Context, configs cmd.Config, logger *zap.Logger) (ports.ProcessedMessageStore, func()) {
	if configs.RedisAddr == "" {
		logger.Info("Redis not configured, processed messages kept in memory")
		return cache.NewInMemoryProcessedStore(configs.ProcessedTTL), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
		DB:       configs.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unavailable, processed messages kept in memory", zap.Error(err))
		_ = rdb.Close()
		return cache.NewInMemoryProcessedStore(configs.ProcessedTTL), func() {}
	}

	logger.Info("Redis connected", zap.String("addr", configs.RedisAddr))
	return cache.NewRedisProcessedStore(rdb, configs.ProcessedTTL), func() { _ = rdb.Close() }
}

func newNotificationLog(ctx context.Context, configs cmd.Config, logger *zap.Logger) (ports.NotificationLog, func()) {
	if configs.MongoURI == "" {
		return mongodb.NopNotificationLog{}, func() {}
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(configs.MongoURI))
	if err == nil {
		err = client.Ping(ctx, nil)
	}
	if err != nil {
		logger.Warn("MongoDB unavailable, notifications are not recorded", zap.Error(err))
		if client != nil {
			_ = client.Disconnect(context.Background())
		}
		return mongodb.NopNotificationLog{}, func() {}
	}

	notificationLog := mongodb.NewNotificationLog(client, configs.MongoDB)
	if err = notificationLog.EnsureIndexes(ctx); err != nil {
		logger.Warn("MongoDB indexes not created", zap.Error(err))
	}

	return notificationLog, func() { _ = client.Disconnect(context.Background()) }
}
