package router

import (
	advisorhandler "finance_backend/internal/feature/advisor/transport/handler"
	authhandler "finance_backend/internal/feature/auth/transport/handler"
	investinghandler "finance_backend/internal/feature/investing/transport/handler"
	markethandler "finance_backend/internal/feature/marketdata/transport/handler"
	newshandler "finance_backend/internal/feature/news/transport/handler"
	receiptshandler "finance_backend/internal/feature/receipts/transport/handler"
	platformhandler "finance_backend/internal/platform/http/handler"
	jwtmw "finance_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

func NewRouter(authH *authhandler.AuthHandler, stocks *markethandler.SnapshotHandler,
	advisor *advisorhandler.AdvisorHandler, news *newshandler.NewsHandler,
	investing *investinghandler.InvestingHandler, receipts *receiptshandler.ReceiptsHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", platformhandler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authH.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authH.Login)
	// リフレッシュトークンの更新と失効
	r.POST("/refresh", authH.Refresh)
	r.POST("/logout", authH.Logout)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	auth := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	auth.Use(jwtmw.AuthRequired())
	{
		// 市場データと推奨
		auth.GET("/stocks/:symbol", stocks.GetStock)
		auth.GET("/recommendations", advisor.GetRecommendations)

		// ニュース
		auth.GET("/news/market", news.GetMarketNews)
		auth.GET("/news/watchlist", news.GetWatchlistNews)
		auth.GET("/news/stock/:symbol", news.GetStockNews)

		// ポートフォリオと注文
		auth.GET("/portfolio", investing.GetPortfolio)
		auth.POST("/orders", investing.CreateOrder)
		auth.GET("/orders", investing.ListOrders)

		// ウォッチリスト
		auth.GET("/watchlist", investing.GetWatchlist)
		auth.POST("/watchlist", investing.AddToWatchlist)
		auth.DELETE("/watchlist/:symbol", investing.RemoveFromWatchlist)

		// レシート読み取り（Vision/Gemini未設定時は無効）
		if receipts != nil {
			auth.POST("/receipts/scan", receipts.ScanReceipt)
		}
	}

	return r
}
