package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleet/cmd"
	fleethttp "fleet/internal/adapters/in/http"
	"fleet/internal/adapters/out/mqtt/tripevents"
	"fleet/internal/adapters/out/postgres"
	"fleet/internal/adapters/out/redis/tripcache"
	"fleet/internal/core/ports"
	"fleet/internal/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{File: config.LogFile, Level: config.LogLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(config, log); err != nil {
		log.WithError(err).Fatal("fleet service stopped")
	}
}

func run(config cmd.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := postgres.Open(config.Postgres(), logger.GormLogger(log))
	if err != nil {
		return err
	}
	defer func() {
		if err := postgres.Close(gormDB); err != nil {
			log.WithError(err).Warn("closing database failed")
		}
	}()
	if err := postgres.Migrate(gormDB); err != nil {
		return err
	}

	var (
		cache     ports.TripCache
		notifiers []ports.TripChangeNotifier
	)

	if config.RedisAddr != "" {
		client, err := tripcache.Dial(ctx, config.RedisAddr)
		if err != nil {
			return err
		}
		defer closeRedis(client, log)

		c, err := tripcache.NewRedisTripCache(client, config.TripCacheTTL)
		if err != nil {
			return err
		}
		cache = c
		notifiers = append(notifiers, c)
		log.WithField("addr", config.RedisAddr).Info("trip cache enabled")
	}

	if config.MQTTBroker != "" {
		client, err := tripevents.Connect(ctx, config.MQTTBroker, config.MQTTClientID,
			log.WithField("component", "mqtt"))
		if err != nil {
			return err
		}
		defer disconnectMQTT(client, log)

		publisher, err := tripevents.NewTripStatusPublisher(client, config.MQTTTopicPrefix)
		if err != nil {
			return err
		}
		notifiers = append(notifiers, publisher)
	}

	app := cmd.NewCompositionRoot(config, gormDB, cache, log, notifiers...)

	jobManager := app.JobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := fleethttp.NewEcho(fleethttp.NewServer(app.HTTPHandlers()), log)

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("port", config.HTTPPort).Info("http server listening")
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown failed")
	}
	return nil
}

func closeRedis(client *redis.Client, log logrus.FieldLogger) {
	if err := client.Close(); err != nil {
		log.WithError(err).Warn("closing redis failed")
	}
}

func disconnectMQTT(client mqtt.Client, log logrus.FieldLogger) {
	const quiesceMillis = 250
	client.Disconnect(quiesceMillis)
	log.Info("mqtt disconnected")
}
