package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractStatusActive   ContractStatus = "ACTIVE"
	ContractStatusArchived ContractStatus = "ARCHIVED"
)

func (s ContractStatus) Valid() bool {
	return s == ContractStatusActive || s == ContractStatusArchived
}

type Contract struct {
	ID          string           `gorm:"primaryKey;size:36"`
	Date        string           `gorm:"size:50"`
	PartyAName  string           `gorm:"column:party_a_name;size:255;not null"`
	PartyATitle string           `gorm:"column:party_a_title;size:255"`
	PartyBName  string           `gorm:"column:party_b_name;size:255;not null"`
	PartyBTitle string           `gorm:"column:party_b_title;size:255"`
	Subject     string           `gorm:"size:500"`
	TotalValue  decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0"`
	Currency    string           `gorm:"size:3;not null;default:IQD"`
	Status      ContractStatus   `gorm:"size:20;not null;default:ACTIVE"`
	Clauses     []ContractClause `gorm:"-"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ContractClause bodies belong to exactly one contract through a link row.
type ContractClause struct {
	ID      string `gorm:"primaryKey;size:36"`
	Title   string `gorm:"size:255;not null"`
	Content string `gorm:"type:text;not null"`
}

type ContractClauseLink struct {
	ContractID string `gorm:"primaryKey;size:36"`
	ClauseID   string `gorm:"primaryKey;size:36"`
	Order      int    `gorm:"column:position;not null;default:0"`
}
