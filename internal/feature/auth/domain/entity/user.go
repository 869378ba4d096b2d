// Package entity defines the domain entities for the auth feature.
package entity

import (
	"strings"
	"time"
)

// AccountType distinguishes individual producers from cooperatives.
type AccountType string

const (
	AccountProducer    AccountType = "PRODUCER"
	AccountCooperative AccountType = "COOPERATIVE"
)

// ParseAccountType accepts the English names and the Portuguese PRODUTOR/COOPERATIVA.
func ParseAccountType(s string) (AccountType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PRODUCER", "PRODUTOR":
		return AccountProducer, true
	case "COOPERATIVE", "COOPERATIVA":
		return AccountCooperative, true
	}
	return "", false
}

// User is a registered account.
type User struct {
	ID           uint
	Name         string
	Email        string
	PasswordHash string // bcrypt; never the plaintext
	AccountType  AccountType
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
