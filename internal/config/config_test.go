package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoadService_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/hpm")

	cfg, err := LoadService()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Port != "8081" {
		t.Errorf("Expected default port 8081, got %s", cfg.Port)
	}
	if cfg.EventsBroker != "rabbitmq" {
		t.Errorf("Expected rabbitmq broker, got %s", cfg.EventsBroker)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Errorf("Expected two default origins, got %v", cfg.CORSOrigins)
	}
	if cfg.DSN() != "postgres://localhost/hpm" {
		t.Errorf("Expected DATABASE_URL as DSN, got %s", cfg.DSN())
	}
}

func TestLoadService_DSNFromParts(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "hpm")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "patients")

	cfg, err := LoadService()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := "host=db port=5432 user=hpm password=secret dbname=patients sslmode=disable"
	if cfg.DSN() != want {
		t.Errorf("Expected %q, got %q", want, cfg.DSN())
	}
}

func TestLoadService_Validation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing database",
			env:     map[string]string{},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "kafka without brokers",
			env:     map[string]string{"DATABASE_URL": "x", "EVENTS_BROKER": "kafka"},
			wantErr: "KAFKA_BROKERS",
		},
		{
			name:    "unknown broker",
			env:     map[string]string{"DATABASE_URL": "x", "EVENTS_BROKER": "nats"},
			wantErr: "EVENTS_BROKER",
		},
		{
			name:    "auth without issuer",
			env:     map[string]string{"DATABASE_URL": "x", "AUTH_ENABLED": "true"},
			wantErr: "AUTH_ISSUER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadService()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadService_KafkaBrokerList(t *testing.T) {
	t.Setenv("DATABASE_URL", "x")
	t.Setenv("EVENTS_BROKER", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")

	cfg, err := LoadService()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("Unexpected brokers: %v", cfg.KafkaBrokers)
	}
}

func TestLoadGateway_Upstreams(t *testing.T) {
	t.Setenv("BLOOD_SERVICE_URL", "http://blood:9000")

	cfg, err := LoadGateway()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.PatientURL != "http://localhost:8081" {
		t.Errorf("Expected patient default, got %s", cfg.PatientURL)
	}
	if cfg.InventoryURL != "http://localhost:8090" {
		t.Errorf("Expected inventory default, got %s", cfg.InventoryURL)
	}
	if cfg.BloodURL != "http://blood:9000" {
		t.Errorf("Expected env override, got %s", cfg.BloodURL)
	}
}

func TestLoadConsole(t *testing.T) {
	t.Setenv("GATEWAY_URL", "http://gw:8080/")

	v := viper.New()
	v.Set("ACTOR", "admin-1")
	cfg, err := LoadConsole(v)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.GatewayURL != "http://gw:8080" {
		t.Errorf("Expected trailing slash trimmed, got %s", cfg.GatewayURL)
	}
	if cfg.Actor != "admin-1" {
		t.Errorf("Expected explicit actor, got %s", cfg.Actor)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %s", cfg.Timeout)
	}
}
