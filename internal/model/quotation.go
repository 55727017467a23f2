package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuotationStatus string

const (
	QuotationStatusPending  QuotationStatus = "PENDING"
	QuotationStatusAccepted QuotationStatus = "ACCEPTED"
	QuotationStatusRejected QuotationStatus = "REJECTED"
)

func (s QuotationStatus) Valid() bool {
	switch s {
	case QuotationStatusPending, QuotationStatusAccepted, QuotationStatusRejected:
		return true
	}
	return false
}

const DefaultCurrency = "IQD"

type Quotation struct {
	ID          string          `gorm:"primaryKey;size:36"`
	ClientName  string          `gorm:"size:255;not null"`
	ClientPhone string          `gorm:"size:50"`
	Date        string          `gorm:"size:50"`
	Currency    string          `gorm:"size:3;not null;default:IQD"`
	Status      QuotationStatus `gorm:"size:20;not null;default:PENDING"`
	Note        string          `gorm:"type:text"`
	Total       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Items       []QuotationItem `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type QuotationItem struct {
	ID          string          `gorm:"primaryKey;size:36"`
	QuotationID string          `gorm:"size:36;index;not null"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Quantity    int             `gorm:"not null"`
	Currency    string          `gorm:"size:3"`
	Position    int             `gorm:"not null;default:0"`
}

func (i QuotationItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemsTotal is the sum of price times quantity over items.
func ItemsTotal(items []QuotationItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
