package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	ProjectID     string
	LogLevel      string
	Port          string
	JWTSecret     string
	JWTSecretName string
	KMSKeyName    string
	BcryptCost    int
	FirebaseAuth  bool
}

// New reads the process environment. A .env file in the working directory,
// when present, fills in variables that are not already set.
func New() *Config {
	_ = godotenv.Load()

	return &Config{
		ProjectID:     os.Getenv("PROJECTID"),
		LogLevel:      os.Getenv("LOGLEVEL"),
		Port:          getOr("PORT", "8080"),
		JWTSecret:     os.Getenv("JWTSECRET"),
		JWTSecretName: os.Getenv("JWTSECRETNAME"),
		KMSKeyName:    os.Getenv("KMSKEYNAME"),
		BcryptCost:    getInt("BCRYPTCOST", bcrypt.DefaultCost),
		FirebaseAuth:  getBool("FIREBASEAUTH"),
	}
}

func getOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return n
}

func getBool(key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return b
}
