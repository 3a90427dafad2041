package gormstore

import (
	"context"

	"homebudget/internal/models"
	"homebudget/internal/store"

	"gorm.io/gorm"
)

type categoryRepo struct {
	db *gorm.DB
}

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) Get(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *categoryRepo) Update(ctx context.Context, c *models.Category) error {
	// map form so a zero purpose is still written
	res := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", c.ID).
		Updates(map[string]any{"description": c.Description, "purpose": c.Purpose})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Category{}, id)
}

func (r *categoryRepo) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &models.Category{}, id)
}
