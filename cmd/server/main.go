package main

import (
	"context"
	"log"
	"os"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"finance_backend/internal/app/di"
	"finance_backend/internal/app/router"
	advisorhandler "finance_backend/internal/feature/advisor/transport/handler"
	advisorusecase "finance_backend/internal/feature/advisor/usecase"
	authadapters "finance_backend/internal/feature/auth/adapters"
	authhandler "finance_backend/internal/feature/auth/transport/handler"
	authusecase "finance_backend/internal/feature/auth/usecase"
	investingadapters "finance_backend/internal/feature/investing/adapters"
	investinghandler "finance_backend/internal/feature/investing/transport/handler"
	investingusecase "finance_backend/internal/feature/investing/usecase"
	markethandler "finance_backend/internal/feature/marketdata/transport/handler"
	newshandler "finance_backend/internal/feature/news/transport/handler"
	receiptsgemini "finance_backend/internal/feature/receipts/adapters/gemini"
	receiptsvision "finance_backend/internal/feature/receipts/adapters/vision"
	receiptshandler "finance_backend/internal/feature/receipts/transport/handler"
	receiptsusecase "finance_backend/internal/feature/receipts/usecase"
	infradb "finance_backend/internal/platform/db"
	jwtmw "finance_backend/internal/platform/jwt"
	infraredis "finance_backend/internal/platform/redis"
)

const accessTokenTTL = time.Hour

func main() {
	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to database sessions.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// 市場データパイプラインとニュース
	yahooClient := di.NewYahooClient()
	snapshotUC := di.NewSnapshotUsecase(ctx, yahooClient, db)
	newsUC := di.NewNewsUsecase(ctx, yahooClient)
	advisorUC := advisorusecase.NewAdvisorUsecase(snapshotUC)

	// 認証
	userRepo := authadapters.NewUserGorm(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), accessTokenTTL)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen, accessTokenTTL)

	// ポートフォリオ・注文・ウォッチリスト
	holdingRepo := investingadapters.NewHoldingGorm(db)
	orderRepo := investingadapters.NewOrderGorm(db)
	watchlistRepo := investingadapters.NewWatchlistGorm(db)
	portfolioUC := investingusecase.NewPortfolioUsecase(holdingRepo, snapshotUC)
	orderUC := investingusecase.NewOrderUsecase(orderRepo, holdingRepo, snapshotUC)
	watchlistUC := investingusecase.NewWatchlistUsecase(watchlistRepo, snapshotUC)

	// レシート読み取り（GCPクレデンシャルが無い環境では無効化して起動を継続）
	var receiptsH *receiptshandler.ReceiptsHandler
	if ocr, err := receiptsvision.NewVisionTextExtractor(ctx); err != nil {
		log.Println("[WARN] Vision API unavailable. Receipt scanning disabled:", err)
	} else if extractor, err := receiptsgemini.NewGeminiFieldExtractor(ctx); err != nil {
		log.Println("[WARN] Gemini API unavailable. Receipt scanning disabled:", err)
	} else {
		defer func() {
			if err := ocr.Close(); err != nil {
				log.Println("[ERROR] Failed to close Vision client:", err)
			}
		}()
		receiptsH = receiptshandler.NewReceiptsHandler(receiptsusecase.NewReceiptsUsecase(ocr, extractor))
	}

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	stocksH := markethandler.NewSnapshotHandler(snapshotUC)
	advisorH := advisorhandler.NewAdvisorHandler(advisorUC)
	newsH := newshandler.NewNewsHandler(newsUC, watchlistUC)
	investingH := investinghandler.NewInvestingHandler(portfolioUC, orderUC, watchlistUC)

	// ルータ生成
	router := router.NewRouter(authH, stocksH, advisorH, newsH, investingH, receiptsH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
