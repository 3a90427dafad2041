package gormstore

import (
	"context"

	"homebudget/internal/models"
	"homebudget/internal/store"

	"gorm.io/gorm"
)

type personRepo struct {
	db *gorm.DB
}

func (r *personRepo) Create(ctx context.Context, p *models.Person) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *personRepo) Get(ctx context.Context, id uint) (*models.Person, error) {
	var p models.Person
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *personRepo) List(ctx context.Context) ([]models.Person, error) {
	var out []models.Person
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByName returns the lowest-id person whose name matches exactly.
func (r *personRepo) FindByName(ctx context.Context, name string) (*models.Person, error) {
	var p models.Person
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id ASC").First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *personRepo) Update(ctx context.Context, p *models.Person) error {
	res := r.db.WithContext(ctx).Model(&models.Person{}).Where("id = ?", p.ID).
		Updates(map[string]any{"name": p.Name, "age": p.Age})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

func (r *personRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Person{}, id)
}

func (r *personRepo) Exists(ctx context.Context, id uint) (bool, error) {
	return exists(ctx, r.db, &models.Person{}, id)
}
