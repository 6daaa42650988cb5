// Package handlers, HTTP katmanını barındırır.
//
// Handler'lar incedir: request'i parse eder, service'i çağırır, cevabı yazar.
// İş kuralı içermezler. Sayfa route'ları (redirect navigasyonu) ile JSON
// API route'ları aynı pakette yaşar — ikisi de aynı service katmanına iner.
package handlers

// contextKey, context value çakışmalarını önlemek için özel tip.
// String key kullanmak başka paketlerin key'leriyle çarpışabilir.
type contextKey string

const (
	// ProfileContextKey, auth middleware'ının context'e koyduğu
	// *models.Profile değerinin anahtarı.
	ProfileContextKey contextKey = "profile"

	// ServerIDContextKey, membership middleware'ının context'e koyduğu
	// doğrulanmış serverID'nin anahtarı.
	ServerIDContextKey contextKey = "serverID"
)
