package repository

import (
	"cinema_booking/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// GetAllPromotions returns every promotion with its conditions in insertion order.
func (r *Repository) GetAllPromotions(ctx context.Context) ([]model.Promotion, error) {
	var promotions []model.Promotion
	err := r.conn(ctx).
		Preload("Conditions", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Order("id asc").
		Find(&promotions).Error
	if err != nil {
		return nil, errors.Wrap(err, "query promotions")
	}
	return promotions, nil
}
