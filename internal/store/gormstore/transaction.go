package gormstore

import (
	"context"

	"homebudget/internal/models"
	"homebudget/internal/store"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type transactionRepo struct {
	db *gorm.DB
}

func (r *transactionRepo) scoped(ctx context.Context, f store.TransactionFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Transaction{})
	if f.PersonID != 0 {
		q = q.Where("person_id = ?", f.PersonID)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	return q
}

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

func (r *transactionRepo) Get(ctx context.Context, id uint) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Person").
		Preload("Category").
		First(&t, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *transactionRepo) List(ctx context.Context, f store.TransactionFilter) ([]models.Transaction, error) {
	var out []models.Transaction
	err := r.scoped(ctx, f).
		Preload("Person").
		Preload("Category").
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *transactionRepo) Count(ctx context.Context, f store.TransactionFilter) (int64, error) {
	var n int64
	if err := r.scoped(ctx, f).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *transactionRepo) Update(ctx context.Context, t *models.Transaction) error {
	res := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("id = ?", t.ID).
		Updates(map[string]any{
			"description": t.Description,
			"value":       t.Value,
			"type":        t.Type,
			"category_id": t.CategoryID,
			"person_id":   t.PersonID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

func (r *transactionRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Transaction{}, id)
}

func (r *transactionRepo) DeleteWhere(ctx context.Context, f store.TransactionFilter) (int64, error) {
	if f == (store.TransactionFilter{}) {
		return 0, nil
	}
	q := r.db.WithContext(ctx)
	if f.PersonID != 0 {
		q = q.Where("person_id = ?", f.PersonID)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	res := q.Delete(&models.Transaction{})
	return res.RowsAffected, res.Error
}
