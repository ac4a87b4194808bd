package config

import "os"

type Config struct {
	Port             string
	ReplicateToken   string
	ReplicateBaseURL string
	ReplicateModel   string
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.ReplicateToken = os.Getenv("REPLICATE_API_TOKEN")
	c.ReplicateBaseURL = os.Getenv("REPLICATE_BASE_URL")
	c.ReplicateModel = os.Getenv("REPLICATE_MODEL")
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
