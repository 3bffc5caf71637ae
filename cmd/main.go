package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"room_climate/internal/actuator"
	"room_climate/internal/config"
	"room_climate/internal/handlers"
	"room_climate/internal/logger"
	"room_climate/internal/metrics"
	"room_climate/internal/mqtt"
	"room_climate/internal/observe"
	"room_climate/internal/repository"
	"room_climate/internal/runtime"
	"room_climate/internal/server"
	"room_climate/internal/service"
)

const shutdownTimeout = 10 * time.Second

var (
	configDir string

	rootCmd = &cobra.Command{
		Use:   "room-climate",
		Short: "Run the simulated room climate node.",
		Long: `Runs the room climate node: a heating/cooling state machine with an
independent ventilation switch, a temperature simulation and an HTTP resource
layer with websocket and MQTT temperature push.

Settings come from <config-dir>/config.yml, CLIMATE_* environment variables
and the flags below, in increasing priority.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			return run(v)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&configDir, "config-dir", "c", config.DefaultConfigDir, "directory containing config.yml")
	rootCmd.Flags().String("log-level", logger.InfoLevel, "log level (debug, info, warn, error)")
	rootCmd.Flags().String("log-file", "", "rotatelogs file pattern, e.g. logs/climate.%Y%m%d.log")
	rootCmd.Flags().String("port", "", "HTTP port")
	rootCmd.Flags().String("db-path", "", "sqlite journal path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(v *viper.Viper) error {
	cfg, err := config.Load(v, configDir)
	if err != nil {
		logger.Get(logger.InfoLevel).Errorw("error reading config", "err", err)
		return err
	}

	// init logger
	log, err := logger.Init(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// open DB
	db, err := openDB(cfg, log)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err)
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// wire dependencies
	repos := repository.NewRepository(db)
	journal := service.NewEventJournal(repos.EventRepo, cfg.Journal.Buffer, log)
	journalDone := make(chan struct{})
	go func() {
		journal.Run(ctx)
		close(journalDone)
	}()

	m := metrics.New()
	hub := observe.NewHub()

	driver, closeDriver := newDriver(cfg, log)
	defer closeDriver()

	loop := runtime.NewLoop(runtime.RealClock{})
	go loop.Run(ctx)

	services := service.NewService(cfg.ServiceOptions(), service.Deps{
		Loop:      loop,
		Driver:    driver,
		Journal:   journal,
		Metrics:   m,
		Hub:       hub,
		EventRepo: repos.EventRepo,
		Log:       log,
	})
	services.Boot()

	pub := startMQTT(ctx, cfg, services, log)

	// start HTTP server
	srv := &server.Server{}
	if cfg.Features.REST {
		apiHandler := handlers.NewHandler(services, log,
			handlers.WithSystems(cfg.Features.Cooling, cfg.Features.Heating, cfg.Features.Ventilation),
			handlers.WithMetrics(m.Handler()),
		)
		runHTTPServer(srv, cfg.Port, apiHandler, log)
	}

	// graceful shutdown
	sig := waitForShutdown(cancel, srv, log)
	if pub != nil {
		if err := pub.PublishSystem(mqtt.SystemEvent{Timestamp: time.Now(), Event: "SHUTDOWN", Reason: sig.String()}); err != nil {
			log.Warnw("mqtt_shutdown_event_failed", "err", err)
		}
		_ = pub.Close()
	}
	<-journalDone
	return nil
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	dbPath := cfg.DB.Path
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "climate.db")
		dbPath = "climate.db"
	}
	return repository.InitDB(dbPath)
}

// newDriver returns GPIO outputs when enabled, otherwise log indicators.
func newDriver(cfg *config.Config, log *logger.Logger) (actuator.Driver, func()) {
	if cfg.GPIO.Enabled {
		g, err := actuator.NewGPIO(cfg.GPIO.Chip, cfg.GPIOLines(), log)
		if err == nil {
			return g, func() { _ = g.Close() }
		}
		log.Errorw("gpio_unavailable_using_indicators", "err", err, "chip", cfg.GPIO.Chip)
	}
	return actuator.NewIndicator(log), func() {}
}

// startMQTT connects to the broker and forwards every pushed reading.
// Returns nil when MQTT is disabled or the broker is unreachable.
func startMQTT(ctx context.Context, cfg *config.Config, services *service.Service, log *logger.Logger) mqtt.Publisher {
	if !cfg.MQTT.Enabled {
		return nil
	}
	pub, err := mqtt.NewRealPublisher(mqtt.Options{
		Broker:      cfg.MQTT.Broker,
		ClientID:    cfg.MQTT.ClientID,
		Topic:       cfg.MQTT.Topic,
		SystemTopic: cfg.MQTT.SystemTopic,
	})
	if err != nil {
		log.Errorw("mqtt_connect_failed", "err", err, "broker", cfg.MQTT.Broker)
		return nil
	}

	if st, err := services.GetState(ctx); err == nil {
		if err := pub.PublishSystem(mqtt.SystemEvent{Timestamp: time.Now(), Event: "STARTUP", State: &st}); err != nil {
			log.Warnw("mqtt_startup_event_failed", "err", err)
		}
	}

	sub := services.Subscribe(observe.DefaultBuffer)
	go func() {
		defer services.Unsubscribe(sub)
		mqtt.Forward(ctx, sub, pub, log)
	}()
	log.Infow("mqtt_forwarding", "broker", cfg.MQTT.Broker, "topic", cfg.MQTT.Topic)
	return pub
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Infow("shutting down server...", "signal", sig.String())

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}

	// stop background goroutines
	cancel()
	return sig
}
