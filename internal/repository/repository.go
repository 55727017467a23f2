package repository

import (
	"gorm.io/gorm"

	"github.com/pointdigital/manager-api/internal/idgen"
	"github.com/pointdigital/manager-api/internal/model"
)

// existingIDs reads every primary key of the table behind value.
func existingIDs(tx *gorm.DB, value interface{}) ([]string, error) {
	var ids []string
	if err := tx.Model(value).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// nextID allocates one key for prefix from the table behind value. Call it on
// the transaction that performs the insert.
func nextID(tx *gorm.DB, prefix string, value interface{}) (string, error) {
	ids, err := existingIDs(tx, value)
	if err != nil {
		return "", err
	}
	return idgen.Next(prefix, ids), nil
}

func sequence(tx *gorm.DB, prefix string, value interface{}) (*idgen.Sequence, error) {
	ids, err := existingIDs(tx, value)
	if err != nil {
		return nil, err
	}
	return idgen.NewSequence(prefix, ids), nil
}

// paginate counts the rows matched by query and narrows it to page.
func paginate(query *gorm.DB, page *model.Page) (*gorm.DB, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if page == nil {
		return query, total, nil
	}
	return query.Offset(page.Offset()).Limit(page.Size), total, nil
}
