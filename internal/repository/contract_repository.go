package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pointdigital/manager-api/internal/idgen"
	"github.com/pointdigital/manager-api/internal/model"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

type linkedClause struct {
	ContractID string
	model.ContractClause
}

func (r *ContractRepository) Create(ctx context.Context, c *model.Contract) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, idgen.PrefixContract, &model.Contract{})
		if err != nil {
			return err
		}
		c.ID = id
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		seq, err := sequence(tx, idgen.PrefixContractClause, &model.ContractClause{})
		if err != nil {
			return err
		}
		return r.writeClauses(tx, c, seq)
	})
}

// writeClauses inserts one clause body and one link per entry of c.Clauses,
// keeping the input order in the link. Clause ids come from seq.
func (r *ContractRepository) writeClauses(tx *gorm.DB, c *model.Contract, seq *idgen.Sequence) error {
	if len(c.Clauses) == 0 {
		return nil
	}
	links := make([]model.ContractClauseLink, len(c.Clauses))
	for i := range c.Clauses {
		c.Clauses[i].ID = seq.Next()
		links[i] = model.ContractClauseLink{ContractID: c.ID, ClauseID: c.Clauses[i].ID, Order: i}
	}
	if err := tx.Create(&c.Clauses).Error; err != nil {
		return err
	}
	return tx.Create(&links).Error
}

// deleteClauses removes the links of the contract and the clause bodies they held.
func (r *ContractRepository) deleteClauses(tx *gorm.DB, contractID string) error {
	var clauseIDs []string
	if err := tx.Model(&model.ContractClauseLink{}).Where("contract_id = ?", contractID).Pluck("clause_id", &clauseIDs).Error; err != nil {
		return err
	}
	if err := tx.Where("contract_id = ?", contractID).Delete(&model.ContractClauseLink{}).Error; err != nil {
		return err
	}
	if len(clauseIDs) == 0 {
		return nil
	}
	return tx.Where("id IN ?", clauseIDs).Delete(&model.ContractClause{}).Error
}

// loadClauses fills Clauses on every contract with one joined query.
func (r *ContractRepository) loadClauses(db *gorm.DB, contracts []model.Contract) error {
	if len(contracts) == 0 {
		return nil
	}
	ids := make([]string, len(contracts))
	index := make(map[string]int, len(contracts))
	for i := range contracts {
		ids[i] = contracts[i].ID
		index[contracts[i].ID] = i
		contracts[i].Clauses = []model.ContractClause{}
	}
	var rows []linkedClause
	err := db.Table("contract_clause_links AS l").
		Select("l.contract_id, c.id, c.title, c.content").
		Joins("JOIN contract_clauses AS c ON c.id = l.clause_id").
		Where("l.contract_id IN ?", ids).
		Order("l.contract_id").Order("l.position ASC").Order("c.id ASC").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	for _, row := range rows {
		i := index[row.ContractID]
		contracts[i].Clauses = append(contracts[i].Clauses, row.ContractClause)
	}
	return nil
}

func (r *ContractRepository) GetByID(ctx context.Context, id string) (*model.Contract, error) {
	db := r.db.WithContext(ctx)
	var c model.Contract
	if err := db.First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	list := []model.Contract{c}
	if err := r.loadClauses(db, list); err != nil {
		return nil, err
	}
	return &list[0], nil
}

func (r *ContractRepository) List(ctx context.Context, page *model.Page) ([]model.Contract, int64, error) {
	db := r.db.WithContext(ctx)
	query, total, err := paginate(db.Model(&model.Contract{}), page)
	if err != nil {
		return nil, 0, err
	}
	var list []model.Contract
	if err := query.Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	if err := r.loadClauses(db, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update saves the scalar fields. With replaceClauses every existing clause
// of the contract is deleted and c.Clauses written in its place.
func (r *ContractRepository) Update(ctx context.Context, c *model.Contract, replaceClauses bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(c).Error; err != nil {
			return err
		}
		if !replaceClauses {
			return nil
		}
		seq, err := sequence(tx, idgen.PrefixContractClause, &model.ContractClause{})
		if err != nil {
			return err
		}
		if err := r.deleteClauses(tx, c.ID); err != nil {
			return err
		}
		return r.writeClauses(tx, c, seq)
	})
}

func (r *ContractRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.deleteClauses(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&model.Contract{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
