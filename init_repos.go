// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur ve
// main.go'daki wire-up'ı modüler tutar.
package main

import (
	"database/sql"

	"github.com/akyurt/curcuna/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
type Repositories struct {
	Profile    repository.ProfileRepository
	Session    repository.SessionRepository
	ResetToken repository.PasswordResetRepository
	Server     repository.ServerRepository
	Member     repository.MemberRepository
	Channel    repository.ChannelRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
// sql.DB thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		Profile:    repository.NewSQLiteProfileRepo(conn),
		Session:    repository.NewSQLiteSessionRepo(conn),
		ResetToken: repository.NewSQLiteResetTokenRepo(conn),
		Server:     repository.NewSQLiteServerRepo(conn),
		Member:     repository.NewSQLiteMemberRepo(conn),
		Channel:    repository.NewSQLiteChannelRepo(conn),
	}
}
