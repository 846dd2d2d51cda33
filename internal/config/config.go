package config

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/kapu/lastfm-discord-bot-go/internal/util"
)

// Config: 봇 전체 동작에 필요한 설정을 담는 구조체
type Config struct {
	Discord  DiscordConfig
	Lastfm   LastfmConfig
	Spotify  SpotifyConfig
	Valkey   ValkeyConfig
	Server   ServerConfig
	Logging  LoggingConfig
	Activity ActivityConfig
	Version  string
}

// DiscordConfig: 인터랙션 엔드포인트 검증 키 및 애플리케이션 식별자 설정
type DiscordConfig struct {
	PublicKey string // hex 인코딩된 Ed25519 공개 키
	AppID     string
	BotToken  string // REST 호출용 (인터랙션 webhook 응답에는 필수 아님)
}

// PublicKeyBytes: hex 공개 키를 Ed25519 키로 디코딩한다.
func (c *DiscordConfig) PublicKeyBytes() (ed25519.PublicKey, error) {
	raw, err := hex.DecodeString(c.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("decode DISCORD_PUBLIC_KEY failed: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("DISCORD_PUBLIC_KEY must be %d bytes, got %d", ed25519.PublicKeySize, len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// LastfmConfig: 1차 메타데이터 서비스 API 키 설정
type LastfmConfig struct {
	APIKey string
}

// SpotifyConfig: Spotify client credentials 설정 (미설정 시 관련 기능 비활성화)
type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
}

// Enabled: Spotify 연동 사용 가능 여부를 반환한다.
func (c *SpotifyConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// ValkeyConfig: 사용자 레지스트리 저장용 KV 스토어 연결 설정
type ValkeyConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ServerConfig: 인터랙션 HTTP 서버 설정
type ServerConfig struct {
	Port int
}

// LoggingConfig: 애플리케이션 로그 설정 (레벨, 디렉토리, 로테이션 정책)
type LoggingConfig struct {
	Level      string
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// ActivityConfig: 명령어 활동 로그 파일 설정 (비워두면 비활성화)
type ActivityConfig struct {
	File string
}

// Load: .env 파일 및 환경 변수로부터 설정을 로드하고, 기본값을 적용하여 Config 객체를 생성한다.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Discord: DiscordConfig{
			PublicKey: util.TrimSpace(getEnv("DISCORD_PUBLIC_KEY", "")),
			AppID:     util.TrimSpace(getEnv("DISCORD_APP_ID", "")),
			BotToken:  util.TrimSpace(getEnv("DISCORD_BOT_TOKEN", "")),
		},
		Lastfm: LastfmConfig{
			APIKey: util.TrimSpace(getEnv("LASTFM_API_KEY", "")),
		},
		Spotify: SpotifyConfig{
			ClientID:     util.TrimSpace(getEnv("SPOTIFY_CLIENT_ID", "")),
			ClientSecret: util.TrimSpace(getEnv("SPOTIFY_CLIENT_SECRET", "")),
		},
		Valkey: ValkeyConfig{
			Host:     getEnv("CACHE_HOST", "localhost"),
			Port:     getEnvInt("CACHE_PORT", 6379),
			Password: getEnv("CACHE_PASSWORD", ""),
			DB:       getEnvInt("CACHE_DB", 0),
		},
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 30011),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Dir:        getEnv("LOG_DIR", "logs"),
			MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Activity: ActivityConfig{
			File: getEnv("ACTIVITY_LOG_FILE", ""),
		},
		Version: util.TrimSpace(getEnv("APP_VERSION", "1.0.0-go")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate: 필수 설정값이 누락되지 않았는지 검증한다.
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.Discord.PublicKey == "" {
		return fmt.Errorf("DISCORD_PUBLIC_KEY is required")
	}
	if _, err := c.Discord.PublicKeyBytes(); err != nil {
		return err
	}
	if c.Discord.AppID == "" {
		return fmt.Errorf("DISCORD_APP_ID is required")
	}
	if c.Lastfm.APIKey == "" {
		return fmt.Errorf("LASTFM_API_KEY is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
