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
	Port         string
	DatabaseURL  string
	AllowOrigins []string

	JWTSecret      string
	JWTAlgorithm   string
	AccessTokenTTL time.Duration

	PasswordResetTTL  time.Duration
	OTPEchoInResponse bool

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	MinIOEndpoint      string
	MinIOAccessKey     string
	MinIOSecretKey     string
	MinIOUseSSL        bool
	MinIOBucketProfile string
	MinIOBucketCompany string
	MinIOPublicURL     string
	ImageMaxBytes      int64
	FFMPEGPath         string

	LogstashTCPAddr string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	return Config{
		Port:         getenv("PORT", "8080"),
		DatabaseURL:  must("DATABASE_URL"),
		AllowOrigins: splitAndTrim(getenv("ALLOW_ORIGINS", "*")),

		JWTSecret:      must("JWT_SECRET"),
		JWTAlgorithm:   getenv("JWT_ALGORITHM", "HS256"),
		AccessTokenTTL: duration("ACCESS_TOKEN_TTL", 120*time.Minute),

		PasswordResetTTL:  duration("PASSWORD_RESET_TTL", 15*time.Minute),
		OTPEchoInResponse: getenv("OTP_ECHO_IN_RESPONSE", "false") == "true",

		SMTPHost:     getenv("SMTP_HOST", ""),
		SMTPPort:     getenv("SMTP_PORT", ""),
		SMTPUsername: getenv("SMTP_USERNAME", ""),
		SMTPPassword: getenv("SMTP_PASSWORD", ""),
		SMTPFrom:     getenv("SMTP_FROM", ""),

		MinIOEndpoint:      getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:     getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:     getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:        getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketProfile: getenv("MINIO_BUCKET_PROFILE", "accounthub-profiles"),
		MinIOBucketCompany: getenv("MINIO_BUCKET_COMPANY", "accounthub-companies"),
		MinIOPublicURL:     getenv("MINIO_PUBLIC_URL", ""),
		ImageMaxBytes:      size("IMAGE_MAX_BYTES", 5*1024*1024),
		FFMPEGPath:         getenv("FFMPEG_PATH", ""),

		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
	}
}

func duration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	parsed, err := time.ParseDuration(v)
	if err != nil || parsed <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", k, v, d)
		return d
	}
	return parsed
}

func size(k string, d int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil || parsed <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", k, v, d)
		return d
	}
	return parsed
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
