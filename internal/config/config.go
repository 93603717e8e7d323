package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"salon-booking/internal/catalog"
	"salon-booking/internal/handoff"
	"salon-booking/internal/slots"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	Env         string          `yaml:"env" env:"ENV" env-default:"local"`
	StoragePath string          `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	AutoMigrate bool            `yaml:"auto_migrate" env:"AUTO_MIGRATE" env-default:"false"`
	Redis       Redis           `yaml:"redis"`
	HTTPServer  `yaml:"http_server"`
	Schedule    Schedule        `yaml:"schedule"`
	Services    []ServiceConfig `yaml:"services"`
	Handoff     Handoff         `yaml:"handoff"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
}

// Redis is optional; an empty Addr disables the feed cache.
type Redis struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"1m"`
}

type Schedule struct {
	OpeningTime  string `yaml:"opening_time" env:"SCHEDULE_OPENING_TIME" env-default:"09:00"`
	ClosingTime  string `yaml:"closing_time" env:"SCHEDULE_CLOSING_TIME" env-default:"18:00"`
	SlotInterval int    `yaml:"slot_interval" env:"SCHEDULE_SLOT_INTERVAL" env-default:"30"`
}

type ServiceConfig struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Duration int    `yaml:"duration"`
}

type Handoff struct {
	SalonName       string `yaml:"salon_name" env:"HANDOFF_SALON_NAME" env-default:"Kamila Lima"`
	OwnerPhone      string `yaml:"owner_phone" env:"HANDOFF_OWNER_PHONE"`
	ApprovalBaseURL string `yaml:"approval_base_url" env:"HANDOFF_APPROVAL_BASE_URL" env-default:"http://localhost:8080"`
}

func MustLoad() *Config {
	// .env is optional
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := cfg.Schedule.ToConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

// DefaultSchedule reads the schedule from the environment alone, falling back
// to the salon's regular hours.
func DefaultSchedule() (Schedule, error) {
	var s Schedule
	if err := cleanenv.ReadEnv(&s); err != nil {
		return Schedule{}, fmt.Errorf("config.DefaultSchedule: %w", err)
	}
	return s, nil
}

func (s Schedule) ToConfig() (slots.ScheduleConfig, error) {
	const op = "config.Schedule.ToConfig"

	opening, err := slots.ParseTimeOfDay(s.OpeningTime)
	if err != nil {
		return slots.ScheduleConfig{}, fmt.Errorf("%s: opening_time: %w", op, err)
	}

	closing, err := slots.ParseTimeOfDay(s.ClosingTime)
	if err != nil {
		return slots.ScheduleConfig{}, fmt.Errorf("%s: closing_time: %w", op, err)
	}

	cfg := slots.ScheduleConfig{
		OpeningTime:  opening,
		ClosingTime:  closing,
		SlotInterval: s.SlotInterval,
	}
	if err := cfg.Validate(); err != nil {
		return slots.ScheduleConfig{}, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

// Catalog builds the service catalogue; with no services configured the
// salon's default menu is used.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	if len(c.Services) == 0 {
		return catalog.Default(), nil
	}

	entries := make([]catalog.Entry, 0, len(c.Services))
	for _, s := range c.Services {
		if s.Key == "" {
			return nil, errors.New("config.Catalog: service key is empty")
		}
		entries = append(entries, catalog.Entry{
			Key:     s.Key,
			Service: slots.Service{Name: s.Name, DurationMinutes: s.Duration},
		})
	}

	return catalog.New(entries)
}

func (c *Config) HandoffConfig() handoff.Config {
	return handoff.Config{
		SalonName:       c.Handoff.SalonName,
		OwnerPhone:      c.Handoff.OwnerPhone,
		ApprovalBaseURL: c.Handoff.ApprovalBaseURL,
	}
}
