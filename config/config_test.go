package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
)

func writeTempProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDecodesAllSections(t *testing.T) {
	path := writeTempProfile(t, `
[logging]
level = "debug"
format = "json"

[medium]
noise-probability = 0.05

[par]
retransmit-timeout-ms = 250

[monitor]
enabled = true
listen = ":9090"

[transcript]
enabled = true
path = "run.cbor"
`)

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if p.Logging.Level != "debug" || p.Logging.Format != "json" {
		t.Errorf("Logging = %+v", p.Logging)
	}
	if p.Medium.NoiseProbability != 0.05 {
		t.Errorf("NoiseProbability = %v, want 0.05", p.Medium.NoiseProbability)
	}
	if p.PAR.RetransmitTimeoutMS != 250 {
		t.Errorf("RetransmitTimeoutMS = %v, want 250", p.PAR.RetransmitTimeoutMS)
	}
	if !p.Monitor.Enabled || p.Monitor.Listen != ":9090" {
		t.Errorf("Monitor = %+v", p.Monitor)
	}
	if !p.Transcript.Enabled || p.Transcript.Path != "run.cbor" {
		t.Errorf("Transcript = %+v", p.Transcript)
	}
}

func TestRetransmitTimeoutFallsBackWhenUnset(t *testing.T) {
	var p Profile
	if got := p.RetransmitTimeout(100 * time.Millisecond); got != 100*time.Millisecond {
		t.Errorf("RetransmitTimeout = %v, want 100ms fallback", got)
	}
}

func TestRetransmitTimeoutUsesConfiguredValue(t *testing.T) {
	p := Profile{PAR: PARConf{RetransmitTimeoutMS: 50}}
	if got := p.RetransmitTimeout(100 * time.Millisecond); got != 50*time.Millisecond {
		t.Errorf("RetransmitTimeout = %v, want 50ms", got)
	}
}

func TestApplyLoggingSetsLevel(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	p := Profile{Logging: LoggingConf{Level: "warn"}}
	p.ApplyLogging()

	if log.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", log.GetLevel())
	}
}
