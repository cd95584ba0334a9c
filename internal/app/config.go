package app

import (
	"strings"

	"github.com/brandforge/brandforge-backend/internal/logger"
	"github.com/brandforge/brandforge-backend/internal/utils"
)

type Config struct {
	ListenAddr   string
	CatalogPath  string
	AllowOrigins []string
	RedisEnabled bool
}

func LoadConfig(log *logger.Logger) Config {
	listenAddr := utils.GetEnv("LISTEN_ADDR", ":8080", log)
	catalogPath := utils.GetEnv("CATALOG_PATH", "config/catalog.yaml", log)
	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)
	redisEnabled := utils.GetEnvAsBool("REDIS_ENABLED", true, log)

	var allow []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allow = append(allow, o)
		}
	}

	return Config{
		ListenAddr:   listenAddr,
		CatalogPath:  catalogPath,
		AllowOrigins: allow,
		RedisEnabled: redisEnabled,
	}
}
