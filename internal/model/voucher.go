package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type VoucherType string

const (
	VoucherTypeReceipt VoucherType = "RECEIPT"
	VoucherTypePayment VoucherType = "PAYMENT"
)

func (t VoucherType) Valid() bool {
	return t == VoucherTypeReceipt || t == VoucherTypePayment
}

type VoucherCategory string

const (
	VoucherCategoryNone            VoucherCategory = ""
	VoucherCategorySalary          VoucherCategory = "SALARY"
	VoucherCategoryDaily           VoucherCategory = "DAILY"
	VoucherCategoryGeneral         VoucherCategory = "GENERAL"
	VoucherCategoryVoucher         VoucherCategory = "VOUCHER"
	VoucherCategoryOwnerWithdrawal VoucherCategory = "OWNER_WITHDRAWAL"
	VoucherCategoryFreelance       VoucherCategory = "FREELANCE"
)

func (c VoucherCategory) Valid() bool {
	switch c {
	case VoucherCategoryNone, VoucherCategorySalary, VoucherCategoryDaily, VoucherCategoryGeneral,
		VoucherCategoryVoucher, VoucherCategoryOwnerWithdrawal, VoucherCategoryFreelance:
		return true
	}
	return false
}

type Voucher struct {
	ID          string          `gorm:"primaryKey;size:36"`
	Type        VoucherType     `gorm:"size:20;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency    string          `gorm:"size:3;not null;default:IQD"`
	Date        string          `gorm:"size:50"`
	Description string          `gorm:"type:text"`
	PartyName   string          `gorm:"size:255;not null"`
	PartyPhone  string          `gorm:"size:50"`
	Category    VoucherCategory `gorm:"size:20;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VoucherFilter narrows voucher reads.
type VoucherFilter struct {
	ExcludeCategories []VoucherCategory
}
