// Package domain はinvestingフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

var (
	// ErrInvalidQuantity は注文数量が正でないことを示します。
	ErrInvalidQuantity = errors.New("order quantity must be positive")

	// ErrInvalidOrderType は売買区分がBUY/SELL以外であることを示します。
	ErrInvalidOrderType = errors.New("order type must be BUY or SELL")

	// ErrInsufficientShares は売却数量が保有数量を超えていることを示します。
	ErrInsufficientShares = errors.New("insufficient shares for sell order")

	// ErrHoldingNotFound は対象銘柄の保有が存在しないことを示します。
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrAlreadyInWatchlist は銘柄が既にウォッチリストに登録済みであることを示します。
	ErrAlreadyInWatchlist = errors.New("stock already in watchlist")

	// ErrNotInWatchlist は銘柄がウォッチリストに存在しないことを示します。
	ErrNotInWatchlist = errors.New("stock not found in watchlist")
)
