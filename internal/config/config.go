package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// API Java que expone el snapshot de usuarios/productos/órdenes
	BaseURL             string
	RecommenderEndpoint string

	// cantidad de recomendaciones por defecto
	NumRecommendations int

	HTTPPort string

	RedisAddr string
	RedisPass string

	MongoURI string
	MongoDB  string

	JWTSecret string

	// cache opcional de recomendaciones por fingerprint del snapshot.
	// Apagado por defecto: cada consulta reentrena desde cero.
	CacheEnabled    bool
	CacheTTLSeconds int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BaseURL:             getEnv("BASE_URL", "http://localhost:8081"),
		RecommenderEndpoint: getEnv("RECOMMENDER_ENDPOINT", "/recommender/data"),
		NumRecommendations:  getEnvInt("NUM_RECOMMENDATIONS", 3),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:           getEnv("REDIS_PASSWORD", ""),
		MongoURI:            getEnv("MONGO_URI", ""), // vacío = sin historial en Mongo
		MongoDB:             getEnv("MONGO_DB", "productosml"),
		JWTSecret:           getEnv("JWT_SECRET", "super-secret"),
		CacheEnabled:        getEnvBool("REC_CACHE", false),
		CacheTTLSeconds:     getEnvInt("REC_CACHE_TTL", 3600),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Printf("[config] %s no está seteado, usando valor por defecto\n", key)
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		log.Printf("[config] %s no está seteado, usando valor por defecto\n", key)
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] %s=%q no es numérico, usando valor por defecto\n", key, v)
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[config] %s=%q no es booleano, usando valor por defecto\n", key, v)
		return def
	}
	return b
}
