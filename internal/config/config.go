package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultCourseFees is the planned fee (INR) per course, keyed by lower-cased course name.
var DefaultCourseFees = map[string]float64{
	"ground operations": 150000,
	"cabin crew":        250000,
}

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	SessionTimeout         time.Duration
	SuperuserPassword      string
	LoginRateLimit         int
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	RazorpayKeyID          string
	RazorpayKeySecret      string
	RazorpayBaseURL        string
	ResendAPIKey           string
	EmailFrom              string
	AdmissionsInbox        string
	AnnouncementsCacheTTL  time.Duration
	CourseFees             map[string]float64
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// PaymentsEnabled reports whether both Razorpay credentials are present.
func (c Config) PaymentsEnabled() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ERP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Aviation ERP API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("session.timeout_seconds", 300)
	v.SetDefault("auth.superuser_password", "qwerty")
	v.SetDefault("auth.login_rate_limit", 10)
	v.SetDefault("cloudinary.folder", "erp-files")
	v.SetDefault("razorpay.base_url", "https://api.razorpay.com")
	v.SetDefault("email.from", "admissions@aviation-erp.local")
	v.SetDefault("cache.announcements_ttl", "2m")

	timeoutSeconds := v.GetInt("session.timeout_seconds")
	if timeoutSeconds <= 0 {
		timeoutSeconds = 300
	}

	ttlString := v.GetString("cache.announcements_ttl")
	if ttlString == "" {
		ttlString = "2m"
	}
	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid announcements cache ttl: %w", err)
	}

	courseFees, err := parseCourseFees(v.GetString("fees.courses"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		SessionTimeout:         time.Duration(timeoutSeconds) * time.Second,
		SuperuserPassword:      v.GetString("auth.superuser_password"),
		LoginRateLimit:         v.GetInt("auth.login_rate_limit"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		RazorpayKeyID:          v.GetString("razorpay.key_id"),
		RazorpayKeySecret:      v.GetString("razorpay.key_secret"),
		RazorpayBaseURL:        strings.TrimRight(v.GetString("razorpay.base_url"), "/"),
		ResendAPIKey:           v.GetString("resend.api_key"),
		EmailFrom:              v.GetString("email.from"),
		AdmissionsInbox:        v.GetString("admissions.inbox"),
		AnnouncementsCacheTTL:  ttl,
		CourseFees:             courseFees,
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided")
	}

	if strings.TrimSpace(cfg.SuperuserPassword) == "" {
		return Config{}, fmt.Errorf("superuser password must not be empty")
	}

	return cfg, nil
}

// parseCourseFees reads "Course Name=amount;Other=amount" overrides on top of the defaults.
func parseCourseFees(raw string) (map[string]float64, error) {
	fees := make(map[string]float64, len(DefaultCourseFees))
	for course, amount := range DefaultCourseFees {
		fees[course] = amount
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fees, nil
	}

	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, amount, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid course fee entry %q", pair)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
		if err != nil || value < 0 {
			return nil, fmt.Errorf("invalid course fee amount for %q", name)
		}
		fees[strings.ToLower(strings.TrimSpace(name))] = value
	}

	return fees, nil
}
