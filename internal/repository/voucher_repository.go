package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pointdigital/manager-api/internal/idgen"
	"github.com/pointdigital/manager-api/internal/model"
)

type VoucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

func applyVoucherFilter(query *gorm.DB, filter model.VoucherFilter) *gorm.DB {
	if len(filter.ExcludeCategories) > 0 {
		query = query.Where("category NOT IN ?", filter.ExcludeCategories)
	}
	return query
}

func (r *VoucherRepository) Create(ctx context.Context, v *model.Voucher) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, idgen.PrefixVoucher, &model.Voucher{})
		if err != nil {
			return err
		}
		v.ID = id
		return tx.Create(v).Error
	})
}

// GetByID returns gorm.ErrRecordNotFound for vouchers excluded by filter.
func (r *VoucherRepository) GetByID(ctx context.Context, id string, filter model.VoucherFilter) (*model.Voucher, error) {
	var v model.Voucher
	query := applyVoucherFilter(r.db.WithContext(ctx), filter)
	if err := query.First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VoucherRepository) List(ctx context.Context, filter model.VoucherFilter, page *model.Page) ([]model.Voucher, int64, error) {
	base := applyVoucherFilter(r.db.WithContext(ctx).Model(&model.Voucher{}), filter)
	query, total, err := paginate(base, page)
	if err != nil {
		return nil, 0, err
	}
	var list []model.Voucher
	if err := query.Order("created_at DESC").Order("id DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *VoucherRepository) Update(ctx context.Context, v *model.Voucher) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VoucherRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Voucher{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
