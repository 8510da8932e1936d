package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"finance_backend/internal/app/di"
	advisorusecase "finance_backend/internal/feature/advisor/usecase"
	marketusecase "finance_backend/internal/feature/marketdata/usecase"
	infradb "finance_backend/internal/platform/db"
)

// ingestSymbols はウォームアップ対象の銘柄リストを決定します。
// INGEST_SYMBOLS（カンマ区切り）が設定されていればそれを、
// 未設定なら推奨エンジンのデフォルトユニバースを使用します。
func ingestSymbols() []string {
	raw := os.Getenv("INGEST_SYMBOLS")
	if raw == "" {
		return advisorusecase.DefaultUniverse()
	}
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}

func main() {
	db := infradb.OpenDB()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	yahooClient := di.NewYahooClient()
	snapshotUC := di.NewSnapshotUsecase(ctx, yahooClient, db)
	warmUC := marketusecase.NewWarmUsecase(snapshotUC)

	symbols := ingestSymbols()
	if err := warmUC.WarmAll(ctx, symbols); err != nil {
		log.Fatal(err)
	}
	log.Println("ingest ok")
}
