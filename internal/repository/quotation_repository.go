package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pointdigital/manager-api/internal/idgen"
	"github.com/pointdigital/manager-api/internal/model"
)

type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC").Order("id ASC")
	})
}

// Create stores the quotation and its items. Total is derived from the items.
func (r *QuotationRepository) Create(ctx context.Context, q *model.Quotation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, idgen.PrefixQuotation, &model.Quotation{})
		if err != nil {
			return err
		}
		q.ID = id
		q.Total = model.ItemsTotal(q.Items)
		if err := tx.Omit(clause.Associations).Create(q).Error; err != nil {
			return err
		}
		seq, err := sequence(tx, idgen.PrefixQuotationItem, &model.QuotationItem{})
		if err != nil {
			return err
		}
		return r.writeItems(tx, q, seq)
	})
}

// writeItems inserts q.Items in order, taking ids from seq.
func (r *QuotationRepository) writeItems(tx *gorm.DB, q *model.Quotation, seq *idgen.Sequence) error {
	if len(q.Items) == 0 {
		return nil
	}
	for i := range q.Items {
		item := &q.Items[i]
		item.ID = seq.Next()
		item.QuotationID = q.ID
		item.Position = i
	}
	return tx.Create(&q.Items).Error
}

func (r *QuotationRepository) GetByID(ctx context.Context, id string) (*model.Quotation, error) {
	var q model.Quotation
	if err := preloadItems(r.db.WithContext(ctx)).First(&q, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuotationRepository) List(ctx context.Context, page *model.Page) ([]model.Quotation, int64, error) {
	query, total, err := paginate(r.db.WithContext(ctx).Model(&model.Quotation{}), page)
	if err != nil {
		return nil, 0, err
	}
	var list []model.Quotation
	if err := preloadItems(query).Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update saves the scalar fields. With replaceItems the stored items are
// deleted, q.Items inserted in their place and the total recomputed.
func (r *QuotationRepository) Update(ctx context.Context, q *model.Quotation, replaceItems bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if replaceItems {
			// The sequence is taken before the delete so replacements never
			// reuse the ids of the items they replace.
			seq, err := sequence(tx, idgen.PrefixQuotationItem, &model.QuotationItem{})
			if err != nil {
				return err
			}
			if err := tx.Where("quotation_id = ?", q.ID).Delete(&model.QuotationItem{}).Error; err != nil {
				return err
			}
			if err := r.writeItems(tx, q, seq); err != nil {
				return err
			}
		}
		q.Total = model.ItemsTotal(q.Items)
		return tx.Omit(clause.Associations).Save(q).Error
	})
}

func (r *QuotationRepository) UpdateStatus(ctx context.Context, id string, status model.QuotationStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Quotation{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *QuotationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", id).Delete(&model.QuotationItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Quotation{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
