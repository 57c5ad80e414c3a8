package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigReadsYAML(t *testing.T) {
	original := config
	t.Cleanup(func() { config = original })

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("DB_DRIVER: sqlite\nRECIPE_MIN_COOKING_TIME: 5\nJWT_SECRET: s3cret\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	LoadConfig(path)

	if got := GetConfig("DB_DRIVER"); got != "sqlite" {
		t.Fatalf("DB_DRIVER = %q, want sqlite", got)
	}
	if got := GetConfigInt("RECIPE_MIN_COOKING_TIME", 1); got != 5 {
		t.Fatalf("RECIPE_MIN_COOKING_TIME = %d, want 5", got)
	}
	if got := GetConfigInt("INGREDIENT_MIN_AMOUNT", 0); got != 1 {
		t.Fatalf("INGREDIENT_MIN_AMOUNT default = %d, want 1", got)
	}
}

func TestLoadConfigMissingFileKeepsDefaults(t *testing.T) {
	original := config
	t.Cleanup(func() { config = original })

	LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))

	if got := GetConfig("SERVER_PORT"); got != "8080" {
		t.Fatalf("SERVER_PORT = %q, want 8080", got)
	}
}

func TestGetConfigPrefersEnvironment(t *testing.T) {
	t.Setenv("APP_URL", "https://foodgram.example")

	if got := GetConfig("APP_URL"); got != "https://foodgram.example" {
		t.Fatalf("APP_URL = %q", got)
	}
	if got := GetConfig("UNKNOWN_KEY"); got != "" {
		t.Fatalf("unknown key = %q, want empty", got)
	}
}

func TestUsernameValidation(t *testing.T) {
	InitValidator()

	type form struct {
		Username string `validate:"username"`
	}

	cases := []struct {
		value string
		ok    bool
	}{
		{"chef.anna", true},
		{"user+tag@host", true},
		{"with space", false},
		{"semi;colon", false},
	}
	for _, tc := range cases {
		err := Validate.Struct(form{Username: tc.value})
		if (err == nil) != tc.ok {
			t.Fatalf("username %q: err = %v, want ok=%t", tc.value, err, tc.ok)
		}
	}
}
