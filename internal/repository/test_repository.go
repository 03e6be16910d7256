package repository

import (
	"context"
	"exammaster_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// Create stores the test together with its sections.
func (r *TestRepository) Create(ctx context.Context, t *model.Test) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *TestRepository) FindByID(ctx context.Context, id string) (*model.Test, error) {
	var t model.Test
	err := r.DB.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TestRepository) SetPublished(ctx context.Context, id string, published bool) error {
	var t model.Test
	if err := r.DB.WithContext(ctx).Select("id").First(&t, "id = ?", id).Error; err != nil {
		return err
	}
	return r.DB.WithContext(ctx).Model(&t).Update("is_published", published).Error
}

func (r *TestRepository) ListPublished(ctx context.Context, page, limit int) ([]model.Test, int64, error) {
	var total int64
	query := r.DB.WithContext(ctx).Model(&model.Test{}).
		Where("is_published = ?", true).
		Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tests []model.Test
	err := query.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&tests).Error
	return tests, total, err
}
