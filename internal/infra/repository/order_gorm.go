package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/IcaroDrumond17/onhappy/internal/domain/model"
	repo "github.com/IcaroDrumond17/onhappy/internal/repository"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// OrderFilterをクエリに変換するのはここだけ。
func (r *OrderGormRepository) ListByFilter(ctx context.Context, f repo.OrderFilter) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})

	//所有者絞り込み（adminはnilで全件）
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	//requestor_nameの部分一致
	if f.RequestorName != "" {
		q = q.Where("requestor_name LIKE ?", "%"+f.RequestorName+"%")
	}

	//status絞り込み
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}

	//destinationはORグループ（他の条件とはAND）
	if len(f.Destinations) > 0 {
		group := r.db.Where("LOWER(destination) LIKE ?", "%"+strings.ToLower(f.Destinations[0])+"%")
		for _, d := range f.Destinations[1:] {
			group = group.Or("LOWER(destination) LIKE ?", "%"+strings.ToLower(d)+"%")
		}
		q = q.Where(group)
	}

	//出発日・帰着日の完全一致（日付単位）
	if f.DepartureDate != nil {
		q = q.Where("departure_date = ?", f.DepartureDate.Format(dateLayout))
	}
	if f.ReturnDate != nil {
		q = q.Where("return_date = ?", f.ReturnDate.Format(dateLayout))
	}

	//作成日の期間絞り込み（両端含む）
	if f.StartDate != nil {
		q = q.Where("created_at::date >= ?", f.StartDate.Format(dateLayout))
	}
	if f.EndDate != nil {
		q = q.Where("created_at::date <= ?", f.EndDate.Format(dateLayout))
	}

	var items []model.Order
	if err := q.Order("id desc").Find(&items).Error; err != nil {
		return []model.Order{}, err
	}
	return items, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderGormRepository) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, orderID int64) error {
	//gorm.DeletedAtなのでソフトデリートになる
	res := r.db.WithContext(ctx).Delete(&model.Order{}, orderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
