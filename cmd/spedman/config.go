package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmarcangeli/spedman/internal/models"
)

// Settings are the non-secret tunables, loaded from an optional YAML file.
type Settings struct {
	HistoryDays        int              `yaml:"historyDays"`
	WorkerCap          int              `yaml:"workerCap"`
	TrackingTTLSeconds int              `yaml:"trackingTTLSeconds"`
	DeliveryKeywords   []string         `yaml:"deliveryKeywords"`
	SnapshotFile       string           `yaml:"snapshotFile"`
	HistoryFile        string           `yaml:"historyFile"`
	HistoryLimit       int              `yaml:"historyLimit"`
	LabelDir           string           `yaml:"labelDir"`
	PageLimit          int              `yaml:"pageLimit"`
	HTTPRetries        int              `yaml:"httpRetries"`
	Sender             models.Recipient `yaml:"sender"`
}

func defaultSettings() Settings {
	return Settings{
		HistoryDays:        30,
		WorkerCap:          4,
		TrackingTTLSeconds: 3600,
		SnapshotFile:       "storico_locale.json",
		HistoryFile:        "storico_spedizioni.json",
		HistoryLimit:       500,
		LabelDir:           "etichette",
		PageLimit:          15,
		HTTPRetries:        3,
	}
}

type Config struct {
	ebayToken  string
	ebayAppID  string
	ebayDevID  string
	ebayCertID string
	shipKey    string

	logLevel string
	env      string
	logDir   string

	settings Settings
}

// NewConfig reads flags, the optional settings file and the environment.
// Environment variables win over flags, matching how the tool is deployed
// (secrets live in the environment or a .env file, never in flags).
func NewConfig() (Config, error) {
	var (
		settingsPath string
		logLevel     string
		logDir       string
	)

	flag.StringVar(&settingsPath, "c", "spedman.yaml", "path to the settings file")
	flag.StringVar(&logLevel, "l", "info", "log level")
	flag.StringVar(&logDir, "logs", "logs", "directory for daily log files")
	flag.Parse()

	settings := defaultSettings()
	if err := loadSettings(settingsPath, &settings); err != nil {
		return Config{}, err
	}

	config := Config{
		ebayToken:  os.Getenv("EBAY_XML_TOKEN"),
		ebayAppID:  os.Getenv("EBAY_APP_ID"),
		ebayDevID:  os.Getenv("EBAY_DEV_ID"),
		ebayCertID: os.Getenv("EBAY_CERT_ID"),
		shipKey:    os.Getenv("SHIPITALIA_API_KEY"),
		logLevel:   logLevel,
		env:        "production",
		logDir:     logDir,
		settings:   settings,
	}

	if l := os.Getenv("LOG_LEVEL"); l != "" {
		config.logLevel = l
	}
	if e := os.Getenv("ENV"); e != "" {
		config.env = e
	}
	if d := os.Getenv("LOG_DIR"); d != "" {
		config.logDir = d
	}

	return config, config.validate()
}

// loadSettings overlays the YAML file onto the defaults. A missing file is
// fine; a broken one is not.
func loadSettings(path string, settings *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	return nil
}

// validate checks only the credentials the tool cannot run without. The
// developer keys are optional: they just enable the token expiry check.
func (c Config) validate() error {
	var missing []string
	if c.ebayToken == "" {
		missing = append(missing, "EBAY_XML_TOKEN")
	}
	if c.shipKey == "" {
		missing = append(missing, "SHIPITALIA_API_KEY")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing environment variables: %v (set them in the environment or a .env file)", missing)
	}
	return nil
}
