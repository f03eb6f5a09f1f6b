package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MongoURI       string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	AllowedOrigins []string

	// FuelCheckInterval is the self-reschedule delay of the fuel check chain.
	FuelCheckInterval time.Duration
	// ServiceCheckHour/Minute is the fixed daily wall-clock time of the service check.
	ServiceCheckHour   int
	ServiceCheckMinute int

	// Minimum intervals handed to background task registration.
	FuelTaskInterval    time.Duration
	ServiceTaskInterval time.Duration
}

func Load() *Config {
	// .env is optional, environment variables win either way
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI environment variable is not set")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid REDIS_DB value %q: %v", v, err)
		}
		redisDB = n
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}

	hour, minute := parseCheckTime(os.Getenv("SERVICE_CHECK_TIME"))

	return &Config{
		Port:                port,
		MongoURI:            mongoURI,
		RedisAddr:           redisAddr,
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             redisDB,
		AllowedOrigins:      strings.Split(allowedOrigins, ","),
		FuelCheckInterval:   parseDuration("FUEL_CHECK_INTERVAL", 5*time.Minute),
		ServiceCheckHour:    hour,
		ServiceCheckMinute:  minute,
		FuelTaskInterval:    parseDuration("FUEL_TASK_INTERVAL", 5*time.Minute),
		ServiceTaskInterval: parseDuration("SERVICE_TASK_INTERVAL", 3*time.Hour),
	}
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s value %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

// parseCheckTime parses "HH:MM", defaulting to 08:00.
func parseCheckTime(v string) (int, int) {
	if v == "" {
		return 8, 0
	}
	t, err := time.Parse("15:04", v)
	if err != nil {
		log.Printf("Invalid SERVICE_CHECK_TIME value %q, using 08:00", v)
		return 8, 0
	}
	return t.Hour(), t.Minute()
}
