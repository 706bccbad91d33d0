package config

import "os"

type Config struct {
	Port      string
	AIAPIKey  string
	ModelName string
	AIBaseURL string
	DBPath    string
}

func GetConfig() Config {
	return Config{
		Port:      getEnv("PORT", "9090"),
		AIAPIKey:  getEnv("AI_API_KEY", ""),
		ModelName: getEnv("AI_MODEL", "qwen3-max"),
		AIBaseURL: getEnv("AI_BASE_URL", "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"),
		DBPath:    getEnv("DB_PATH", "./data/badger"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
