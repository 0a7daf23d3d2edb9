// Package config loads a TOML profile shared by both simulator binaries and
// applies its logging section to logrus. Grounded on
// cmd/dtnd/configuration.go's tomlConfig decode-then-apply pattern.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// Profile is the top-level shape of a simulator TOML configuration file.
// Every section is optional; an absent section leaves its defaults in
// place.
type Profile struct {
	Logging    LoggingConf    `toml:"logging"`
	Medium     MediumConf     `toml:"medium"`
	PAR        PARConf        `toml:"par"`
	Monitor    MonitorConf    `toml:"monitor"`
	Transcript TranscriptConf `toml:"transcript"`
}

// LoggingConf configures logrus.
type LoggingConf struct {
	Level        string `toml:"level"`
	ReportCaller bool   `toml:"report-caller"`
	Format       string `toml:"format"`
}

// MediumConf configures the shared medium.
type MediumConf struct {
	// NoiseProbability overrides LowNoise's default bit-flip probability.
	// Ignored by Perfect.
	NoiseProbability float64 `toml:"noise-probability"`
}

// PARConf configures the PAR data link layer variant.
type PARConf struct {
	// RetransmitTimeoutMS overrides the 100ms default retransmission
	// timeout, in milliseconds. Zero means "use the built-in default".
	RetransmitTimeoutMS int `toml:"retransmit-timeout-ms"`
}

// MonitorConf holds the [monitor] section of a profile. Load decodes it, but
// the simulator binaries take the monitor address from their -monitor flag
// only and do not read this section.
type MonitorConf struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
}

// TranscriptConf configures optional append-only event recording.
type TranscriptConf struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Load decodes a TOML profile from path.
func Load(path string) (Profile, error) {
	var p Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Profile{}, fmt.Errorf("config: %w", err)
	}
	return p, nil
}

// RetransmitTimeout returns the configured PAR retransmission timeout, or
// fallback if the profile left it unset.
func (p Profile) RetransmitTimeout(fallback time.Duration) time.Duration {
	if p.PAR.RetransmitTimeoutMS <= 0 {
		return fallback
	}
	return time.Duration(p.PAR.RetransmitTimeoutMS) * time.Millisecond
}

// ApplyLogging configures logrus's global logger from the profile's
// [logging] section, exactly as cmd/dtnd does before starting its core.
func (p Profile) ApplyLogging() {
	if p.Logging.Level != "" {
		if lvl, err := log.ParseLevel(p.Logging.Level); err != nil {
			log.WithFields(log.Fields{
				"level":    p.Logging.Level,
				"error":    err,
				"provided": "panic,fatal,error,warn,info,debug,trace",
			}).Warn("config: unknown log level, leaving level unchanged")
		} else {
			log.SetLevel(lvl)
		}
	}

	log.SetReportCaller(p.Logging.ReportCaller)

	switch p.Logging.Format {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "15:04:05.000",
		})

	case "json":
		log.SetFormatter(&log.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})

	default:
		log.Warn("config: unknown logging format, leaving formatter unchanged")
	}
}
