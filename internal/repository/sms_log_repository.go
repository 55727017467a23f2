package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pointdigital/manager-api/internal/idgen"
	"github.com/pointdigital/manager-api/internal/model"
)

type SMSLogRepository struct {
	db *gorm.DB
}

func NewSMSLogRepository(db *gorm.DB) *SMSLogRepository {
	return &SMSLogRepository{db: db}
}

func (r *SMSLogRepository) Create(ctx context.Context, entry *model.SMSLog) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, idgen.PrefixSMSLog, &model.SMSLog{})
		if err != nil {
			return err
		}
		entry.ID = id
		if entry.Timestamp.IsZero() {
			entry.Timestamp = time.Now().UTC().Truncate(time.Second)
		}
		return tx.Create(entry).Error
	})
}

func (r *SMSLogRepository) GetByID(ctx context.Context, id string) (*model.SMSLog, error) {
	var entry model.SMSLog
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *SMSLogRepository) List(ctx context.Context, page *model.Page) ([]model.SMSLog, int64, error) {
	query, total, err := paginate(r.db.WithContext(ctx).Model(&model.SMSLog{}), page)
	if err != nil {
		return nil, 0, err
	}
	var list []model.SMSLog
	if err := query.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).Order("id DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *SMSLogRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.SMSLog{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
