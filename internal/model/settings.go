package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

var DefaultExchangeRate = decimal.NewFromInt(1500)

type AgencySettings struct {
	ID             string                      `gorm:"primaryKey;size:36"`
	Name           string                      `gorm:"size:255;not null"`
	Logo           string                      `gorm:"type:text"`
	Address        string                      `gorm:"size:500"`
	Phone          string                      `gorm:"size:50"`
	Email          string                      `gorm:"size:254"`
	QuotationTerms datatypes.JSONSlice[string] `gorm:"column:quotation_terms"`
	Twilio         datatypes.JSONMap           `gorm:"column:twilio"`
	ExchangeRate   decimal.Decimal             `gorm:"type:numeric(14,2);not null;default:1500"`
	Services       []AgencyService             `gorm:"foreignKey:SettingsID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type AgencyService struct {
	ID          string `gorm:"primaryKey;size:36"`
	SettingsID  string `gorm:"size:36;index;not null"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Position    int    `gorm:"not null;default:0"`
}

// SMSCredentials is the provider part of the settings blob.
type SMSCredentials struct {
	AccountSID string
	AuthToken  string
	FromNumber string
	SenderName string
	Enabled    bool
}

// Complete reports whether the provider can be called with these values.
func (c SMSCredentials) Complete() bool {
	return c.AccountSID != "" && c.AuthToken != "" && (c.FromNumber != "" || c.SenderName != "")
}

// SMSCredentials reads the twilio blob. Older records were written by two
// different clients, so both camelCase and snake_case keys are accepted.
func (s AgencySettings) SMSCredentials() SMSCredentials {
	blob := map[string]interface{}(s.Twilio)
	return SMSCredentials{
		AccountSID: lookupString(blob, "accountSid", "account_sid", "sid"),
		AuthToken:  lookupString(blob, "authToken", "auth_token", "token"),
		FromNumber: lookupString(blob, "fromNumber", "from_number", "phoneNumber", "phone_number"),
		SenderName: lookupString(blob, "senderName", "sender_name", "senderId", "sender_id"),
		Enabled:    lookupBool(blob, "enabled", "isEnabled", "is_enabled"),
	}
}

func lookupString(blob map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := blob[key]; ok {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func lookupBool(blob map[string]interface{}, keys ...string) bool {
	for _, key := range keys {
		v, ok := blob[key]
		if !ok {
			continue
		}
		switch b := v.(type) {
		case bool:
			return b
		case string:
			switch strings.ToLower(strings.TrimSpace(b)) {
			case "true", "1", "yes":
				return true
			}
			return false
		case float64:
			return b != 0
		}
	}
	return false
}
