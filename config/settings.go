package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Settings is everything the board reads from the environment.
type Settings struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	Location    *time.Location
	CORSOrigins []string

	GoogleServiceAccountKey string
	GoogleSheetID           string
	GoogleSheetRange        string
	ExportSchedule          string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	MastersCacheTTL time.Duration

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string

	JWTSecret         string
	JWTExpiry         time.Duration
	StaffPasswordHash string
}

func LoadSettings() (Settings, error) {
	tz := getenv("APP_TIMEZONE", "Asia/Jakarta")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Settings{}, fmt.Errorf("invalid APP_TIMEZONE %q: %w", tz, err)
	}

	s := Settings{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DB_URL"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Location:    loc,
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),

		GoogleServiceAccountKey: os.Getenv("GOOGLE_SERVICE_ACCOUNT_KEY"),
		GoogleSheetID:           os.Getenv("GOOGLE_SHEET_ID"),
		GoogleSheetRange:        getenv("GOOGLE_SHEET_RANGE", "Sheet1!A:F"),
		ExportSchedule:          strings.TrimSpace(os.Getenv("EXPORT_SCHEDULE")),

		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         atoi(os.Getenv("REDIS_DB"), 0),
		MastersCacheTTL: parseDur(getenv("MASTERS_CACHE_TTL", "10m"), 10*time.Minute),

		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),

		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpiry:         time.Duration(atoi(os.Getenv("JWT_EXPIRY_HOURS"), 24)) * time.Hour,
		StaffPasswordHash: os.Getenv("STAFF_PASSWORD_HASH"),
	}

	if s.DatabaseURL == "" {
		return s, errors.New("DB_URL is required")
	}
	return s, nil
}

// SheetsConfigured reports whether both the service account key and the
// sheet id are present. Missing either one disables the export feature.
func (s Settings) SheetsConfigured() bool {
	return s.GoogleServiceAccountKey != "" && s.GoogleSheetID != ""
}

func (s Settings) TwilioConfigured() bool {
	return s.TwilioAccountSID != "" && s.TwilioAuthToken != "" && s.TwilioWhatsAppNumber != ""
}

// AuthEnabled gates the staff login. Without both values every route is open.
func (s Settings) AuthEnabled() bool {
	return s.JWTSecret != "" && s.StaffPasswordHash != ""
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseDur(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
