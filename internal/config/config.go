package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Configはアプリ全体の設定
type Config struct {
	Port string `env:"PORT" env-default:"8080"` // サーバーポート

	PostgresUser     string `env:"POSTGRES_USER" env-default:"postgres"`     // DBユーザー
	PostgresPassword string `env:"POSTGRES_PASSWORD" env-default:"postgres"` // DBパスワード
	PostgresDB       string `env:"POSTGRES_DB" env-default:"onhappy"`        // DB名
	PostgresHost     string `env:"POSTGRES_HOST" env-default:"localhost"`    // DBホスト
	PostgresPort     int    `env:"POSTGRES_PORT" env-default:"5432"`         // DBポート
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" env-default:"disable"`

	JWTSecret string `env:"JWT_SECRET" env-required:"true"` // JWT署名シークレット

	GoEnv string `env:"GO_ENV" env-default:"dev"`                    // dev/prod
	FEURL string `env:"FE_URL" env-default:"http://localhost:5173"` // フロントURL（CORSで使う）
}

// Loadは環境変数から設定を読み込む
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
