package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config defines the app configuration.
type Config struct {
	Server struct {
		Port int    `yaml:"port" env:"PORT" env-default:"4000"`
		Env  string `yaml:"env" env:"ENV" env-default:"development"`
	} `yaml:"server"`
	Database struct {
		DSN          string `yaml:"dsn" env:"DSN"`
		MaxOpenConns int    `yaml:"max_open_conns" env:"MAXOPENCONNS" env-default:"25"`
		MaxIdleConns int    `yaml:"max_idle_conns" env:"MAXIDLECONNS" env-default:"25"`
		MaxIdleTime  string `yaml:"max_idle_time" env:"MAXIDLETIME" env-default:"15m"`
	} `yaml:"database"`
	Loans struct {
		PeriodDays     int     `yaml:"period_days" env:"LOANPERIODDAYS" env-default:"14"`
		FinePerDay     float64 `yaml:"fine_per_day" env:"FINEPERDAY" env-default:"0.5"`
		MaxActiveLoans int     `yaml:"max_active_loans" env:"MAXACTIVELOANS" env-default:"3"`
		SweepInterval  string  `yaml:"sweep_interval" env:"SWEEPINTERVAL" env-default:"15m"`
	} `yaml:"loans"`
	Smtp struct {
		Host     string `yaml:"host" env:"SMTPHOST"`
		Port     int    `yaml:"port" env:"SMTPPORT"`
		Username string `yaml:"username" env:"SMTPUSERNAME"`
		Password string `yaml:"password" env:"SMTPPASSWORD"`
		Sender   string `yaml:"sender" env:"SMTPSENDER"`
	} `yaml:"smtp"`
	S3 struct {
		AccessKeyID     string `yaml:"access_key_id" env:"ACCESSKEYID"`
		SecretAccessKey string `yaml:"secret_access_key" env:"SECRETACCESSKEY"`
		Region          string `yaml:"region" env:"REGION"`
		Bucket          string `yaml:"bucket" env:"BUCKET"`
	} `yaml:"s3"`
	Limiter struct {
		RPS     float64 `yaml:"rps" env:"RPS" env-default:"4"`
		Burst   int     `yaml:"burst" env:"BURST" env-default:"8"`
		Enabled bool    `yaml:"enabled" env:"LENABLED" env-default:"true"`
	} `yaml:"limiter"`
	Cors struct {
		TrustedOrigins []string `yaml:"trusted_origins" env:"TRUSTEDORIGINS"`
	} `yaml:"cors"`
	Metrics struct {
		Enabled bool `yaml:"enabled" env:"MENABLED"`
	} `yaml:"metrics"`
	BasicAuth struct {
		Username string `yaml:"username" env:"USERNAME"`
		Password string `yaml:"password" env:"PASSWORD"`
	} `yaml:"basic_auth"`
}

// Decode populates the configuration from a YAML file if one exists,
// falling back to environment variables otherwise. The file location
// defaults to config.yml and can be overridden with CONFIG_FILE.
func Decode() (Config, error) {
	var cfg Config
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yml"
	}
	if _, err := os.Stat(path); err == nil {
		return cfg, cleanenv.ReadConfig(path, &cfg)
	}
	return cfg, cleanenv.ReadEnv(&cfg)
}
