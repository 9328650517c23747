package configs

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	Port     string
	DBSource string

	JWTSecret  string
	JWTTTL     time.Duration
	RefreshTTL time.Duration

	MockLatency  time.Duration
	LiveInterval time.Duration
	SeedMock     bool

	AdminEmail    string
	AdminPassword string
	CORSOrigins   []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	v := viper.New()
	v.SetDefault("app_env", "development")
	v.SetDefault("port", "8000")
	v.SetDefault("db_source", "file:dashboard?mode=memory&cache=shared")
	v.SetDefault("jwt_secret", "changeme")
	v.SetDefault("jwt_ttl", "15m")
	v.SetDefault("refresh_ttl", "168h")
	v.SetDefault("mock_latency", "0s")
	v.SetDefault("live_interval", "30s")
	v.SetDefault("seed_mock", true)
	v.SetDefault("admin_email", "admin@dashboard.local")
	v.SetDefault("admin_password", "admin1234")
	v.SetDefault("cors_origins", "*")
	v.AutomaticEnv()

	return &Config{
		Env:           v.GetString("app_env"),
		Port:          v.GetString("port"),
		DBSource:      v.GetString("db_source"),
		JWTSecret:     v.GetString("jwt_secret"),
		JWTTTL:        v.GetDuration("jwt_ttl"),
		RefreshTTL:    v.GetDuration("refresh_ttl"),
		MockLatency:   v.GetDuration("mock_latency"),
		LiveInterval:  v.GetDuration("live_interval"),
		SeedMock:      v.GetBool("seed_mock"),
		AdminEmail:    strings.ToLower(strings.TrimSpace(v.GetString("admin_email"))),
		AdminPassword: v.GetString("admin_password"),
		CORSOrigins:   splitList(v.GetString("cors_origins")),
	}
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
