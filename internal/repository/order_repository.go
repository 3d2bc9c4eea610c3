package repository

import (
	"context"
	"errors"
	"time"

	"github.com/IcaroDrumond17/onhappy/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 注文の絞り込み条件。
// usecase側の純粋な関数で組み立てて、infra側で1回だけクエリに変換する。
type OrderFilter struct {
	//所有者の絞り込み（nilなら全ユーザー＝admin）
	UserID *int64

	//requestor_nameの部分一致（大文字小文字を区別する）
	RequestorName string

	//statusのIN絞り込み（空なら無条件）
	Statuses []model.OrderStatus

	//destinationの部分一致（小文字化して比較、どれか1つ含めばヒット）
	Destinations []string

	//出発日・帰着日の完全一致（日付単位）
	DepartureDate *time.Time
	ReturnDate    *time.Time

	//created_atの期間（日付単位、両端含む）
	StartDate *time.Time
	EndDate   *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	//絞り込み条件で一覧取得
	ListByFilter(ctx context.Context, f OrderFilter) ([]model.Order, error)
	Create(ctx context.Context, order *model.Order) error
	//部分更新した注文を保存
	Update(ctx context.Context, order *model.Order) error
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	//ソフトデリート
	Delete(ctx context.Context, orderID int64) error
}
