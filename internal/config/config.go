package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Axis order modes for county boundary coordinates.
const (
	AxisOrderAuto   = "auto"
	AxisOrderLonLat = "lonlat"
	AxisOrderLatLon = "latlon"
)

// DefaultTopoJSONURL serves the us-10m TopoJSON with state and county ids keyed by FIPS.
const DefaultTopoJSONURL = "https://cdn.jsdelivr.net/npm/vega-datasets@v1.29.0/data/us-10m.json"

// Config holds all service settings, populated from environment variables.
type Config struct {
	DataDir              string
	IncidentsFile        string
	CountyPopulationFile string
	SchoolIncidentsFile  string
	CountiesFile         string
	StatePopulationFile  string // optional, empty disables

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	TopN             int
	CorrelationSince time.Time
	AxisOrder        string
	TopoJSONURL      string
	DashboardTitle   string
	DashboardAuthors string

	// Snapshot publishing.
	KafkaBrokers       []string
	KafkaEnabled       bool
	KafkaSnapshotTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	topN, err := parseTopN()
	if err != nil {
		return nil, err
	}

	since, err := time.Parse(time.DateOnly, sharedcfg.EnvOrDefault("CORRELATION_SINCE", "2022-11-01"))
	if err != nil {
		return nil, errors.New("invalid CORRELATION_SINCE: expected YYYY-MM-DD")
	}

	axisOrder := sharedcfg.EnvOrDefault("AXIS_ORDER", AxisOrderAuto)
	switch axisOrder {
	case AxisOrderAuto, AxisOrderLonLat, AxisOrderLatLon:
	default:
		return nil, fmt.Errorf("invalid AXIS_ORDER %q: want auto, lonlat or latlon", axisOrder)
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		DataDir:              sharedcfg.EnvOrDefault("DATA_DIR", "."),
		IncidentsFile:        sharedcfg.EnvOrDefault("INCIDENTS_FILE", "MassShootings.csv"),
		CountyPopulationFile: sharedcfg.EnvOrDefault("COUNTY_POPULATION_FILE", "CountyPopulation.csv"),
		SchoolIncidentsFile:  sharedcfg.EnvOrDefault("SCHOOL_INCIDENTS_FILE", "SchoolIncidents.csv"),
		CountiesFile:         sharedcfg.EnvOrDefault("COUNTIES_FILE", "Counties.geojson"),
		StatePopulationFile:  os.Getenv("STATE_POPULATION_FILE"),

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		TopN:             topN,
		CorrelationSince: since,
		AxisOrder:        axisOrder,
		TopoJSONURL:      sharedcfg.EnvOrDefault("TOPOJSON_URL", DefaultTopoJSONURL),
		DashboardTitle:   sharedcfg.EnvOrDefault("DASHBOARD_TITLE", "Analysis of Mass Shootings in the US"),
		DashboardAuthors: sharedcfg.EnvOrDefault("DASHBOARD_AUTHORS", "Raquel Jolis Carné and Martina Massana Massip"),

		KafkaBrokers:       brokers,
		KafkaEnabled:       kafkaEnabled,
		KafkaSnapshotTopic: sharedcfg.EnvOrDefault("KAFKA_SNAPSHOT_TOPIC", "shooting-dashboard-snapshots"),
	}

	if cfg.IncidentsFile == "" {
		return nil, errors.New("INCIDENTS_FILE is required")
	}
	if cfg.CountiesFile == "" {
		return nil, errors.New("COUNTIES_FILE is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaSnapshotTopic == "" {
		return nil, errors.New("KAFKA_SNAPSHOT_TOPIC is required when publishing snapshots")
	}

	return cfg, nil
}

// Path resolves a dataset filename against DataDir. Absolute names are kept as-is.
func (c *Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func parseTopN() (int, error) {
	s := os.Getenv("TOP_N")
	if s == "" {
		return 10, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 60 {
		return 0, errors.New("invalid TOP_N: must be between 1 and 60")
	}
	return n, nil
}
