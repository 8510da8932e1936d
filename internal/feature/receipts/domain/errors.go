// Package domain はreceiptsフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrEmptyImage は画像データが空の場合のエラーです。
	ErrEmptyImage = errors.New("image data is empty")
	// ErrImageTooLarge は画像サイズが上限を超えた場合のエラーです。
	ErrImageTooLarge = errors.New("image size exceeds maximum")
	// ErrUnsupportedImageType は許可されていない画像形式の場合のエラーです。
	ErrUnsupportedImageType = errors.New("unsupported image type")
	// ErrNoTextFound はOCRがテキストを検出できなかった場合のエラーです。
	ErrNoTextFound = errors.New("no text found in image")
	// ErrMalformedExtraction は抽出結果を解釈できなかった場合のエラーです。
	ErrMalformedExtraction = errors.New("malformed extraction result")
)
