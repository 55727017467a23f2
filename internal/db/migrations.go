package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pointdigital/manager-api/internal/model"
)

var migrationModels = []interface{}{
	&model.User{},
	&model.RevokedToken{},
	&model.AgencySettings{},
	&model.AgencyService{},
	&model.Quotation{},
	&model.QuotationItem{},
	&model.Voucher{},
	&model.Contract{},
	&model.ContractClause{},
	&model.ContractClauseLink{},
	&model.Freelancer{},
	&model.FreelanceWork{},
	&model.SMSLog{},
}

var migrationStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_quotations_created_at ON quotations (created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_vouchers_created_at ON vouchers (created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_created_at ON contracts (created_at);`,
	`CREATE INDEX IF NOT EXISTS idx_contract_clause_links_clause ON contract_clause_links (clause_id);`,
	`CREATE INDEX IF NOT EXISTS idx_revoked_tokens_expires_at ON revoked_tokens (expires_at);`,
}

// Migrate applies the schema. Statements are idempotent and portable between postgres and sqlite.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(migrationModels...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
