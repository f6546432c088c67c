package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"calories-api/gauge"
)

type config struct {
	Port         string
	DataDir      string
	Token        string
	Repo         string
	Branch       string
	CORSOrigins  []string
	Bars         gauge.BarSizer
	Goal         MacroNutrientGoal
	GitHubAPIURL string
	GitHubRawURL string
}

// loadConfig reads .env (if any) and the environment.
func loadConfig() (config, error) {
	// A missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (config, error) {
	cfg := config{
		Port:         envOr(getenv, "PORT", "8080"),
		DataDir:      getenv("DATA_DIR"),
		Token:        getenv("UP_TOK"),
		Repo:         getenv("GITHUB_REPO"),
		Branch:       envOr(getenv, "GITHUB_BRANCH", "main"),
		CORSOrigins:  splitList(envOr(getenv, "CORS_ORIGINS", "*")),
		GitHubAPIURL: envOr(getenv, "GITHUB_API_URL", "https://api.github.com"),
		GitHubRawURL: envOr(getenv, "GITHUB_RAW_URL", "https://raw.githubusercontent.com"),
	}

	floats := []struct {
		key  string
		def  float64
		dest *float64
	}{
		{"BAR_SCALE", gauge.DefaultBarSizer.Scale, &cfg.Bars.Scale},
		{"BAR_MAX_WIDTH", gauge.DefaultBarSizer.MaxWidth, &cfg.Bars.MaxWidth},
		{"GOAL_PROTEIN_G", 60, &cfg.Goal.Protein},
		{"GOAL_CARBOHYDRATES_G", 300, &cfg.Goal.Carbohydrates},
		{"GOAL_FAT_G", 65, &cfg.Goal.FatTotal},
	}
	for _, f := range floats {
		v, err := positiveFloat(getenv, f.key, f.def)
		if err != nil {
			return config{}, err
		}
		*f.dest = v
	}

	return cfg, nil
}

func envOr(getenv func(string) string, key, def string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

func positiveFloat(getenv func(string) string, key string, def float64) (float64, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if !(v > 0) || v > 1e12 {
		return 0, fmt.Errorf("%s: must be a positive number, got %q", key, raw)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
