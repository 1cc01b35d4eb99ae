package config

import "strings"

type HttpConfig struct {
	Port           int
	Name           string
	AllowedOrigins []string
}

func NewHttpConfig() *HttpConfig {
	origins := make([]string, 0)
	for _, o := range strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return &HttpConfig{
		Port:           getEnvInt("HTTP_PORT", 8082),
		Name:           getEnv("SERVICE_NAME", "bugfix-arena"),
		AllowedOrigins: origins,
	}
}
