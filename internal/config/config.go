package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	// Persistencia: memory | file | mongo | redis
	StoreBackend    string
	StorePrefix     string
	StoreTimeout    time.Duration
	DataDir         string
	MongoURI        string
	MongoDB         string
	MongoCollection string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	CatalogFile    string
	QueryCacheTTL  time.Duration
	SearchDebounce time.Duration
	AuthLatency    time.Duration
	DealTick       time.Duration
}

func LoadConfig() *Config {
	// Solo cargar .env en desarrollo local
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Error loading .env file:", err)
		} else {
			log.Println("✅ .env file loaded successfully")
		}
	} else {
		log.Println("🌐 Using system environment variables")
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreBackend:    getEnv("STORE_BACKEND", "file"),
		StorePrefix:     getEnv("STORE_PREFIX", "storefront:"),
		StoreTimeout:    getDuration("STORE_TIMEOUT", 3*time.Second),
		DataDir:         getEnv("DATA_DIR", ".storefront"),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDB:         getEnv("MONGO_DB", "storefront"),
		MongoCollection: getEnv("MONGO_COLLECTION", "kv"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getInt("REDIS_DB", 0),

		CatalogFile:    getEnv("CATALOG_FILE", ""),
		QueryCacheTTL:  getDuration("QUERY_CACHE_TTL", 2*time.Minute),
		SearchDebounce: getDuration("SEARCH_DEBOUNCE", 300*time.Millisecond),
		AuthLatency:    getDuration("AUTH_LATENCY", time.Second),
		DealTick:       getDuration("DEAL_TICK", time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("⚠️ Invalid integer for %s=%q, using %d", key, value, fallback)
		return fallback
	}
	return n
}

// getDuration acepta "300ms", "2s", etc.
func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Printf("⚠️ Invalid duration for %s=%q, using %s", key, value, fallback)
		return fallback
	}
	return d
}
