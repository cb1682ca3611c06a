// promote-user grants the admin flag to a marketplace account by writing
// straight to MongoDB. It skips the HTTP API and its authorization checks,
// so only operators holding the database connection string can run it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"ewaste-admin-console/internal/config"
	"ewaste-admin-console/internal/logger"
	"ewaste-admin-console/internal/rabbit"
	"ewaste-admin-console/internal/repository"
	"ewaste-admin-console/internal/service"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintln(os.Stderr, "Usage: promote-user <email>")
		fmt.Fprintln(os.Stderr, "Example: promote-user user@example.com")
		return 1
	}
	email := args[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	log.Info("connecting to MongoDB", zap.String("uri", cfg.MongoURI), zap.String("db", cfg.MongoDBName))
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Error("connect to MongoDB", zap.Error(err))
		return 1
	}
	defer func() {
		dctx, dcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dcancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn("disconnect from MongoDB", zap.Error(err))
		}
	}()

	if err := client.Ping(ctx, nil); err != nil {
		log.Error("reach MongoDB", zap.Error(err))
		return 1
	}
	log.Info("connected to MongoDB")

	var events service.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err := rabbit.NewPublisher(cfg.RabbitURL, cfg.EventsExchange, log)
		if err != nil {
			log.Error("connect to RabbitMQ", zap.Error(err))
			return 1
		}
		defer pub.Close()
		events = pub
	}

	repo := repository.NewMongoUserRepository(client.Database(cfg.MongoDBName))
	svc := service.NewPromotionService(repo, events, log)

	if _, err := svc.Promote(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("user not found", zap.String("email", email))
			return 1
		}
		log.Error("promote user", zap.String("email", email), zap.Error(err))
		return 1
	}

	log.Info("user promoted to admin", zap.String("email", email))
	return 0
}
