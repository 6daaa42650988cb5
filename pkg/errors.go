// Package pkg, projede paylaşılan küçük utility'leri barındırır.
// Bu dosya domain-level error tanımlarını içerir.
//
// Error'lar sabit değer olarak tanımlanır; katmanlar arası karşılaştırma
// string yerine errors.Is ile yapılır:
//
//	if errors.Is(err, pkg.ErrNotFound) { ... }
//
// Service katmanı bu sentinelleri %w ile wrap ederek döner.
// API handler'ları HTTP status code'a çevirir; sayfa route'larında ise
// business "not found" bir hata sayfası değil redirect'tir — o çeviri
// ilgili handler'da yapılır.
package pkg

import "errors"

// Domain-level error'lar.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrBadRequest    = errors.New("bad request")
	ErrInternal      = errors.New("internal error")
)
