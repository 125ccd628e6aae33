package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/service"
	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/valueobject"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RiskPolicyConfig carries the regulatory policy tables. Rates and thresholds
// are jurisdiction configuration, tunable per deployment without code changes.
type RiskPolicyConfig struct {
	Stage1LossRate      decimal.Decimal
	Stage2LossRate      decimal.Decimal
	Stage3LossRate      decimal.Decimal
	Stage1ProvisionPct  decimal.Decimal
	Stage2ProvisionPct  decimal.Decimal
	Stage3ProvisionPct  decimal.Decimal
	DivergenceThreshold decimal.Decimal
	AgingThresholds     service.BucketThresholds
}

type Config struct {
	GRPCPort    int
	HTTPPort    int
	DB          DatabaseConfig
	Kafka       KafkaConfig
	Risk        RiskPolicyConfig
	ServiceName string
}

func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9090),
		HTTPPort: getEnvInt("HTTP_PORT", 8090),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "loanhub"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "loanhub_risk"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "loan-risk-events"),
		},
		Risk: RiskPolicyConfig{
			Stage1LossRate:      getEnvDecimal("ECL_STAGE1_LOSS_RATE", "0.01"),
			Stage2LossRate:      getEnvDecimal("ECL_STAGE2_LOSS_RATE", "0.10"),
			Stage3LossRate:      getEnvDecimal("ECL_STAGE3_LOSS_RATE", "0.75"),
			Stage1ProvisionPct:  getEnvDecimal("PROVISION_STAGE1_PCT", "0.01"),
			Stage2ProvisionPct:  getEnvDecimal("PROVISION_STAGE2_PCT", "0.20"),
			Stage3ProvisionPct:  getEnvDecimal("PROVISION_STAGE3_PCT", "1.00"),
			DivergenceThreshold: getEnvDecimal("PROVISION_DIVERGENCE_THRESHOLD", "0.25"),
			AgingThresholds: service.BucketThresholds{
				D30:  getEnvInt("AGING_D30_DAYS", 30),
				D60:  getEnvInt("AGING_D60_DAYS", 60),
				D90:  getEnvInt("AGING_D90_DAYS", 90),
				D180: getEnvInt("AGING_D180_DAYS", 180),
			},
		},
		ServiceName: "loan-risk-engine",
	}
}

// LossRates builds the ECL policy table.
func (c RiskPolicyConfig) LossRates() service.LossRateTable {
	return service.LossRateTable{
		valueobject.Stage1: c.Stage1LossRate,
		valueobject.Stage2: c.Stage2LossRate,
		valueobject.Stage3: c.Stage3LossRate,
	}
}

// ProvisionRates builds the statutory provisioning table.
func (c RiskPolicyConfig) ProvisionRates() service.ProvisionRateTable {
	return service.ProvisionRateTable{
		valueobject.Stage1: c.Stage1ProvisionPct,
		valueobject.Stage2: c.Stage2ProvisionPct,
		valueobject.Stage3: c.Stage3ProvisionPct,
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDecimal(key, fallback string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return decimal.RequireFromString(fallback)
}
