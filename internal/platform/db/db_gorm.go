// Package db はデータベース接続とマイグレーションを提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "finance_backend/internal/feature/auth/adapters"
	authentity "finance_backend/internal/feature/auth/domain/entity"
	investentity "finance_backend/internal/feature/investing/domain/entity"
	marketadapters "finance_backend/internal/feature/marketdata/adapters"
)

// Config はデータベース接続の設定を保持します。
type Config struct {
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQLインスタンス名（project:region:instance）
	SQLitePath   string // SQLiteフォールバック時のファイルパス
}

// LoadConfigFromEnv は環境変数からデータベース設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		SSLMode:      os.Getenv("DB_SSLMODE"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		SQLitePath:   os.Getenv("SQLITE_PATH"),
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "finance.db"
	}
	return cfg
}

// BuildDSN はPostgreSQL接続用のDSNを生成します。
// InstanceNameが設定されている場合はCloud SQLのUnixソケット接続を優先します。
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener はDSNからgorm接続を開く関数です。テストで差し替えられるように
// ConnectWithRetryの引数として受け取ります。
type Opener func(dsn string) (*gorm.DB, error)

// OpenPostgres はpgxドライバー経由でPostgreSQLへ接続します。
func OpenPostgres(dsn string) (*gorm.DB, error) {
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	return gorm.Open(gpostgres.New(gpostgres.Config{Conn: stdlib.OpenDB(*connCfg)}), &gorm.Config{})
}

// OpenSQLite はローカル開発用のSQLiteデータベースを開きます。
func OpenSQLite(path string) (*gorm.DB, error) {
	return gorm.Open(gsqlite.Open(path), &gorm.Config{})
}

// ConnectWithRetry はタイムアウトまで接続を再試行します。
// コンテナ起動直後にDBがまだ受け付けていないケースを吸収します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %s: %w", timeout, err)
		}
		log.Printf("database connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}
}

// OpenDB は環境変数の設定でデータベースを開きます。
// DB_NAMEが未設定の場合はローカル開発用にSQLiteへフォールバックします。
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	var (
		db  *gorm.DB
		err error
	)
	if cfg.Name == "" {
		db, err = OpenSQLite(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open sqlite database: %v", err)
		}
	} else {
		db, err = ConnectWithRetry(BuildDSN(cfg), 60*time.Second, OpenPostgres)
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		if err := Migrate(db); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}

// Migrate は全フィーチャーのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&authentity.User{},
		&authadapters.SessionModel{},
		&marketadapters.StockModel{},
		&investentity.Holding{},
		&investentity.Order{},
		&investentity.WatchlistEntry{},
	)
}
