package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pointdigital/manager-api/internal/idgen"
	"github.com/pointdigital/manager-api/internal/model"
)

type FreelancerRepository struct {
	db *gorm.DB
}

func NewFreelancerRepository(db *gorm.DB) *FreelancerRepository {
	return &FreelancerRepository{db: db}
}

func (r *FreelancerRepository) Create(ctx context.Context, f *model.Freelancer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, idgen.PrefixFreelancer, &model.Freelancer{})
		if err != nil {
			return err
		}
		f.ID = id
		return tx.Create(f).Error
	})
}

func (r *FreelancerRepository) GetByID(ctx context.Context, id string) (*model.Freelancer, error) {
	var f model.Freelancer
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FreelancerRepository) List(ctx context.Context, page *model.Page) ([]model.Freelancer, int64, error) {
	query, total, err := paginate(r.db.WithContext(ctx).Model(&model.Freelancer{}), page)
	if err != nil {
		return nil, 0, err
	}
	var list []model.Freelancer
	if err := query.Order("name ASC").Order("id ASC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *FreelancerRepository) Update(ctx context.Context, f *model.Freelancer) error {
	return r.db.WithContext(ctx).Save(f).Error
}

// Delete removes the freelancer together with their work entries.
func (r *FreelancerRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("freelancer_id = ?", id).Delete(&model.FreelanceWork{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Freelancer{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

type FreelanceWorkRepository struct {
	db *gorm.DB
}

func NewFreelanceWorkRepository(db *gorm.DB) *FreelanceWorkRepository {
	return &FreelanceWorkRepository{db: db}
}

func (r *FreelanceWorkRepository) Create(ctx context.Context, w *model.FreelanceWork) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, idgen.PrefixFreelanceWork, &model.FreelanceWork{})
		if err != nil {
			return err
		}
		w.ID = id
		return tx.Create(w).Error
	})
}

func (r *FreelanceWorkRepository) GetByID(ctx context.Context, id string) (*model.FreelanceWork, error) {
	var w model.FreelanceWork
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// List returns work entries, newest date first. An empty freelancerID lists all.
func (r *FreelanceWorkRepository) List(ctx context.Context, freelancerID string, page *model.Page) ([]model.FreelanceWork, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.FreelanceWork{})
	if freelancerID != "" {
		base = base.Where("freelancer_id = ?", freelancerID)
	}
	query, total, err := paginate(base, page)
	if err != nil {
		return nil, 0, err
	}
	var list []model.FreelanceWork
	if err := query.Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}).Order("id DESC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *FreelanceWorkRepository) Update(ctx context.Context, w *model.FreelanceWork) error {
	return r.db.WithContext(ctx).Save(w).Error
}

func (r *FreelanceWorkRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.FreelanceWork{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
