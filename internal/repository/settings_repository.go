package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pointdigital/manager-api/internal/idgen"
	"github.com/pointdigital/manager-api/internal/model"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func preloadServices(db *gorm.DB) *gorm.DB {
	return db.Preload("Services", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC").Order("id ASC")
	})
}

func (r *SettingsRepository) Create(ctx context.Context, settings *model.AgencySettings) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := nextID(tx, idgen.PrefixSettings, &model.AgencySettings{})
		if err != nil {
			return err
		}
		settings.ID = id
		if err := tx.Omit(clause.Associations).Create(settings).Error; err != nil {
			return err
		}
		seq, err := sequence(tx, idgen.PrefixAgencyService, &model.AgencyService{})
		if err != nil {
			return err
		}
		return r.writeServices(tx, settings, seq)
	})
}

// writeServices inserts settings.Services in order with ids from seq.
func (r *SettingsRepository) writeServices(tx *gorm.DB, settings *model.AgencySettings, seq *idgen.Sequence) error {
	if len(settings.Services) == 0 {
		return nil
	}
	for i := range settings.Services {
		svc := &settings.Services[i]
		svc.ID = seq.Next()
		svc.SettingsID = settings.ID
		svc.Position = i
	}
	return tx.Create(&settings.Services).Error
}

func (r *SettingsRepository) GetByID(ctx context.Context, id string) (*model.AgencySettings, error) {
	var settings model.AgencySettings
	if err := preloadServices(r.db.WithContext(ctx)).First(&settings, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// First returns the record the rest of the system treats as the agency
// configuration: the lowest id.
func (r *SettingsRepository) First(ctx context.Context) (*model.AgencySettings, error) {
	var settings model.AgencySettings
	if err := preloadServices(r.db.WithContext(ctx)).Order("id ASC").Take(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepository) List(ctx context.Context, page *model.Page) ([]model.AgencySettings, int64, error) {
	query, total, err := paginate(r.db.WithContext(ctx).Model(&model.AgencySettings{}), page)
	if err != nil {
		return nil, 0, err
	}
	var list []model.AgencySettings
	if err := preloadServices(query).Order("id ASC").Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update saves the scalar fields. When replaceServices is set the stored
// services are dropped and settings.Services written in their place.
func (r *SettingsRepository) Update(ctx context.Context, settings *model.AgencySettings, replaceServices bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(settings).Error; err != nil {
			return err
		}
		if !replaceServices {
			return nil
		}
		seq, err := sequence(tx, idgen.PrefixAgencyService, &model.AgencyService{})
		if err != nil {
			return err
		}
		if err := tx.Where("settings_id = ?", settings.ID).Delete(&model.AgencyService{}).Error; err != nil {
			return err
		}
		return r.writeServices(tx, settings, seq)
	})
}

func (r *SettingsRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("settings_id = ?", id).Delete(&model.AgencyService{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.AgencySettings{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
