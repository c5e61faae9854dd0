// ISOX Bridge - Hub Classification and MQTT Bridge
//
// This is the main entry point for the ISOX Bridge application. The
// bridge loads a hub entity snapshot, classifies every node, scene,
// program, and variable into controller platforms, and publishes
// normalized states and discovery announcements over MQTT, with state
// history in SQLite and telemetry in InfluxDB.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/nerrad567/isox-bridge/migrations"

	"github.com/nerrad567/isox-bridge/internal/api"
	"github.com/nerrad567/isox-bridge/internal/classify"
	"github.com/nerrad567/isox-bridge/internal/hub"
	"github.com/nerrad567/isox-bridge/internal/infrastructure/config"
	"github.com/nerrad567/isox-bridge/internal/infrastructure/database"
	"github.com/nerrad567/isox-bridge/internal/infrastructure/influxdb"
	"github.com/nerrad567/isox-bridge/internal/infrastructure/logging"
	"github.com/nerrad567/isox-bridge/internal/infrastructure/mqtt"
	"github.com/nerrad567/isox-bridge/internal/publish"
	"github.com/nerrad567/isox-bridge/internal/uom"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting ISOX Bridge",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Load the hub snapshot
	snapshot, err := hub.LoadSnapshot(cfg.Hub.SnapshotPath)
	if err != nil {
		return fmt.Errorf("loading hub snapshot: %w", err)
	}
	log.Info("hub snapshot loaded",
		"path", cfg.Hub.SnapshotPath,
		"hub_id", snapshot.HubID,
		"firmware", snapshot.Firmware,
		"nodes", len(snapshot.Nodes),
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Classify the snapshot
	classifier := classify.New(classify.Options{
		IgnoreString:   cfg.Hub.IgnoreString,
		SensorString:   cfg.Hub.SensorString,
		VariableString: cfg.Hub.VariableSensorString,
	})
	classifier.SetLogger(log)
	buckets := classifier.Classify(snapshot)
	log.Info("snapshot classified",
		"pass_id", buckets.PassID,
		"nodes", buckets.NodeCount(),
		"groups", len(buckets.Groups),
		"variables", len(buckets.Variables),
	)

	// Connect to MQTT broker
	if !cfg.MQTT.Enabled {
		return fmt.Errorf("mqtt is disabled; the bridge has nowhere to publish")
	}
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	// Set up MQTT logging callbacks
	mqttClient.SetLogger(log)
	mqttClient.SetOnConnect(func() {
		log.Info("MQTT reconnected")
	})
	mqttClient.SetOnDisconnect(func(err error) {
		log.Warn("MQTT disconnected", "error", err)
	})

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Build the publisher and deliver the pass
	recorder := publish.NewRecorder(db.DB)
	normalizer := uom.Normalizer{TemperatureUnit: cfg.Hub.TemperatureUnit}
	publisher, err := publish.New(mqttClient, mqttClient.Topics(), normalizer, byte(cfg.MQTT.QoS))
	if err != nil {
		return fmt.Errorf("creating publisher: %w", err)
	}
	publisher.SetLogger(log)
	publisher.SetHistory(recorder)
	if influxClient != nil {
		publisher.SetMetrics(influxClient)
	}

	if err := publisher.PublishPass(ctx, buckets); err != nil {
		// A partial pass is worth running with; anything else is fatal.
		if !errors.Is(err, publish.ErrPassIncomplete) {
			return fmt.Errorf("publishing pass: %w", err)
		}
		log.Warn("pass published with failures", "error", err)
	}
	if err := publisher.WatchControllerBirth(); err != nil {
		log.Warn("controller birth subscription failed", "error", err)
	}

	// Start API server (optional)
	if cfg.API.Enabled {
		apiServer, err := api.New(api.Deps{
			Config:  cfg.API,
			Logger:  log,
			Passes:  publisher,
			History: recorder,
			Version: version,
		})
		if err != nil {
			return fmt.Errorf("creating API server: %w", err)
		}
		if err := apiServer.Start(ctx); err != nil {
			return fmt.Errorf("starting API server: %w", err)
		}
		defer func() {
			if closeErr := apiServer.Close(); closeErr != nil {
				log.Error("error closing API server", "error", closeErr)
			}
		}()
	} else {
		log.Info("API server disabled")
	}

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	// The deferred MQTT close publishes the retained offline status.
	log.Info("shutdown signal received, cleaning up")

	log.Info("ISOX Bridge stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses ISOXBRIDGE_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("ISOXBRIDGE_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	return nil
}
