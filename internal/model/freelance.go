package model

import "github.com/shopspring/decimal"

type FreelancerRole string

const (
	FreelancerRolePhotographer FreelancerRole = "PHOTOGRAPHER"
	FreelancerRoleEditor       FreelancerRole = "EDITOR"
)

func (r FreelancerRole) Valid() bool {
	return r == FreelancerRolePhotographer || r == FreelancerRoleEditor
}

type Freelancer struct {
	ID    string         `gorm:"primaryKey;size:36"`
	Name  string         `gorm:"size:255;not null"`
	Phone string         `gorm:"size:50"`
	Role  FreelancerRole `gorm:"size:20;not null;default:PHOTOGRAPHER"`
}

type FreelanceWork struct {
	ID           string          `gorm:"primaryKey;size:36"`
	FreelancerID string          `gorm:"size:36;index;not null"`
	Description  string          `gorm:"type:text;not null"`
	Date         string          `gorm:"size:50"`
	Price        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency     string          `gorm:"size:3;not null;default:IQD"`
	IsPaid       bool            `gorm:"not null;default:false"`
	PaymentID    string          `gorm:"size:36"`
}
