package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ChannelType, kanalın türünü temsil eder.
// Role ile aynı typed constant pattern'i.
type ChannelType string

const (
	ChannelTypeText  ChannelType = "text"
	ChannelTypeAudio ChannelType = "audio"
	ChannelTypeVideo ChannelType = "video"
)

// Valid, kanal türünün tanımlı değerlerden biri olup olmadığını kontrol eder.
func (t ChannelType) Valid() bool {
	switch t {
	case ChannelTypeText, ChannelTypeAudio, ChannelTypeVideo:
		return true
	}
	return false
}

// DefaultChannelName, her sunucuda otomatik oluşturulan ve silinemeyen
// text kanalın adı.
const DefaultChannelName = "general"

// Channel, bir sunucu kanalını temsil eder.
// DB'deki "channels" tablosunun Go karşılığıdır.
// Audio/video kanallar da sadece metadata satırıdır — medya transportu
// bu sistemin kapsamı dışındadır.
type Channel struct {
	ID        string      `json:"id"`
	ServerID  string      `json:"server_id"`
	Name      string      `json:"name"`
	Type      ChannelType `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
}

// CreateChannelRequest, yeni kanal oluşturma isteği.
type CreateChannelRequest struct {
	Name string `json:"name"`
	Type string `json:"type"` // "text", "audio" veya "video"
}

// Validate, CreateChannelRequest kontrolü.
// "general" rezerve isimdir — default kanalla karışmaması için reddedilir.
func (r *CreateChannelRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	nameLen := utf8.RuneCountInString(r.Name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("channel name must be between 1 and 100 characters")
	}

	for _, ch := range r.Name {
		if !isValidChannelNameChar(ch) {
			return fmt.Errorf("channel name contains invalid characters")
		}
	}

	if strings.EqualFold(r.Name, DefaultChannelName) {
		return fmt.Errorf("channel name '%s' is reserved", DefaultChannelName)
	}

	if !ChannelType(r.Type).Valid() {
		return fmt.Errorf("channel type must be 'text', 'audio' or 'video'")
	}

	return nil
}

// isValidChannelNameChar, kanal adında izin verilen karakterleri kontrol eder.
// Unicode harf/rakam, boşluk, tire ve alt çizgi kabul edilir.
func isValidChannelNameChar(ch rune) bool {
	return unicode.IsLetter(ch) ||
		unicode.IsDigit(ch) ||
		ch == '-' || ch == '_' || ch == ' '
}
