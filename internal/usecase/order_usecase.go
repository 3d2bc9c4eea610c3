package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/IcaroDrumond17/onhappy/internal/domain/model"
	repo "github.com/IcaroDrumond17/onhappy/internal/repository"
)

const dateLayout = "2006-01-02"

// 一覧のスコープ。mineは常に自分の分だけ、allはadminのみ全件。
type ListScope string

const (
	ScopeMine ListScope = "mine"
	ScopeAll  ListScope = "all"
)

// クエリパラメータそのまま（日付は "2006-01-02" の文字列）
type OrderFilterParams struct {
	RequestorName string
	Statuses      []string
	Destinations  []string
	DepartureDate string
	ReturnDate    string
	StartDate     string
	EndDate       string
}

// BuildOrderFilter は呼び出しユーザーとパラメータからOrderFilterを組み立てる。
// DBには触らない純粋な関数。
func BuildOrderFilter(caller Caller, scope ListScope, p OrderFilterParams) (repo.OrderFilter, error) {
	var f repo.OrderFilter

	//mineスコープ、またはadmin以外は自分の分だけ
	if scope == ScopeMine || !caller.IsAdmin() {
		uid := caller.ID
		f.UserID = &uid
	}

	f.RequestorName = p.RequestorName

	for _, s := range p.Statuses {
		if s == "" {
			continue
		}
		f.Statuses = append(f.Statuses, model.OrderStatus(s))
	}

	for _, d := range p.Destinations {
		if d == "" {
			continue
		}
		f.Destinations = append(f.Destinations, d)
	}

	var err error
	if f.DepartureDate, err = parseOptionalDate(p.DepartureDate); err != nil {
		return repo.OrderFilter{}, NewHTTPError(http.StatusUnprocessableEntity, "Dados inválidos.")
	}
	if f.ReturnDate, err = parseOptionalDate(p.ReturnDate); err != nil {
		return repo.OrderFilter{}, NewHTTPError(http.StatusUnprocessableEntity, "Dados inválidos.")
	}
	if f.StartDate, err = parseOptionalDate(p.StartDate); err != nil {
		return repo.OrderFilter{}, NewHTTPError(http.StatusUnprocessableEntity, "Dados inválidos.")
	}
	if f.EndDate, err = parseOptionalDate(p.EndDate); err != nil {
		return repo.OrderFilter{}, NewHTTPError(http.StatusUnprocessableEntity, "Dados inválidos.")
	}

	return f, nil
}

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	logger *slog.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, logger *slog.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, logger: logger}
}

type CreateOrderInput struct {
	RequestorName string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Status        string
}

func (u *OrderUsecase) Create(ctx context.Context, caller Caller, in CreateOrderInput) (model.Order, error) {
	name := strings.TrimSpace(in.RequestorName)
	dest := strings.TrimSpace(in.Destination)
	if name == "" || len(name) > 255 || dest == "" || len(dest) > 255 {
		return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "Dados inválidos.")
	}

	dep, err := parseDate(in.DepartureDate)
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "Dados inválidos.")
	}
	ret, err := parseDate(in.ReturnDate)
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "Dados inválidos.")
	}
	if ret.Before(dep) {
		return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "A data de retorno deve ser igual ou posterior à data de saída.")
	}

	//statusは省略可、省略時はrequested
	status := model.OrderStatusRequested
	if in.Status != "" {
		status = model.OrderStatus(in.Status)
		if !status.Valid() {
			return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "Status inválido.")
		}
	}

	//所有者は必ず呼び出しユーザー（入力のuser_idは無視）
	order := model.Order{
		UserID:        caller.ID,
		RequestorName: name,
		Destination:   dest,
		DepartureDate: dep,
		ReturnDate:    ret,
		Status:        status,
	}

	if err := u.orders.Create(ctx, &order); err != nil {
		u.logger.Error("erro ao criar pedido", slog.Int64("user_id", caller.ID), slog.Any("error", err))
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "Erro ao criar pedido.")
	}

	u.logger.Info("pedido criado", slog.Int64("order_id", order.ID), slog.Int64("user_id", caller.ID))
	return order, nil
}

func (u *OrderUsecase) List(ctx context.Context, caller Caller, scope ListScope, p OrderFilterParams) ([]model.Order, error) {
	f, err := BuildOrderFilter(caller, scope, p)
	if err != nil {
		return []model.Order{}, err
	}

	items, err := u.orders.ListByFilter(ctx, f)
	if err != nil {
		u.logger.Error("erro ao listar pedidos", slog.Int64("user_id", caller.ID), slog.Any("error", err))
		return []model.Order{}, NewHTTPError(http.StatusInternalServerError, "Erro ao listar os pedidos.")
	}
	return items, nil
}

func (u *OrderUsecase) Get(ctx context.Context, caller Caller, orderID int64) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Pedido não encontrado.")
	}
	if err != nil {
		u.logger.Error("erro ao exibir pedido", slog.Int64("order_id", orderID), slog.Int64("user_id", caller.ID), slog.Any("error", err))
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "Erro ao exibir pedido.")
	}

	//NotFound判定のあとに所有チェック
	if !caller.IsAdmin() && o.UserID != caller.ID {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "Você não tem permissão para visualizar este pedido.")
	}
	return o, nil
}

// 部分更新の入力。nilは「変更しない」。
type UpdateOrderInput struct {
	RequestorName *string
	Destination   *string
	DepartureDate *string
	ReturnDate    *string
	Status        *string
}

func (u *OrderUsecase) Update(ctx context.Context, caller Caller, orderID int64, in UpdateOrderInput) (model.Order, error) {
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "Pedido não encontrado.")
	}
	if err != nil {
		u.logger.Error("erro ao atualizar pedido", slog.Int64("order_id", orderID), slog.Int64("user_id", caller.ID), slog.Any("error", err))
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "Erro ao atualizar pedido.")
	}

	if !caller.IsAdmin() && o.UserID != caller.ID {
		return model.Order{}, NewHTTPError(http.StatusForbidden, "Você não tem permissão para atualizar este pedido.")
	}

	if in.RequestorName != nil {
		v := strings.TrimSpace(*in.RequestorName)
		if v == "" || len(v) > 255 {
			return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "Dados inválidos.")
		}
		o.RequestorName = v
	}
	if in.Destination != nil {
		v := strings.TrimSpace(*in.Destination)
		if v == "" || len(v) > 255 {
			return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "Dados inválidos.")
		}
		o.Destination = v
	}
	if in.DepartureDate != nil {
		dep, err := parseDate(*in.DepartureDate)
		if err != nil {
			return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "Dados inválidos.")
		}
		o.DepartureDate = dep
	}
	if in.ReturnDate != nil {
		ret, err := parseDate(*in.ReturnDate)
		if err != nil {
			return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "Dados inválidos.")
		}
		o.ReturnDate = ret
	}

	//片方だけ変えた場合も保存済みの値と突き合わせる
	if o.ReturnDate.Before(o.DepartureDate) {
		return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "A data de retorno deve ser igual ou posterior à data de saída.")
	}

	if in.Status != nil {
		st := model.OrderStatus(*in.Status)
		if !st.Valid() {
			return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "Status inválido.")
		}
		o.Status = st
	}

	//user_idは入力から受け取らない（所有者は不変）

	if err := u.orders.Update(ctx, &o); err != nil {
		u.logger.Error("erro ao atualizar pedido", slog.Int64("order_id", orderID), slog.Int64("user_id", caller.ID), slog.Any("error", err))
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "Erro ao atualizar pedido.")
	}

	u.logger.Info("pedido atualizado", slog.Int64("order_id", o.ID), slog.Int64("user_id", caller.ID))
	return o, nil
}

// ステータス更新＋通知作成は1トランザクション。
// 通知のINSERTに失敗したらステータス変更も巻き戻る。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, caller Caller, orderID int64, status string) (model.Order, error) {
	st := model.OrderStatus(status)
	if st != model.OrderStatusApproved && st != model.OrderStatusCanceled {
		return model.Order{}, NewHTTPError(http.StatusUnprocessableEntity, "Status inválido.")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Pedido não encontrado.")
		}
		if err != nil {
			u.logger.Error("erro ao atualizar status do pedido", slog.Int64("order_id", orderID), slog.Int64("user_id", caller.ID), slog.Any("error", err))
			return NewHTTPError(http.StatusInternalServerError, "Erro ao atualizar status.")
		}

		if !caller.IsAdmin() && o.UserID != caller.ID {
			return NewHTTPError(http.StatusForbidden, "Você não tem permissão para editar este pedido.")
		}

		//approved済みの取り消しだけ禁止。それ以外の遷移は全部許可。
		if st == model.OrderStatusCanceled && o.Status == model.OrderStatusApproved {
			return NewHTTPError(http.StatusForbidden, "Não é possível cancelar um pedido já aprovado.")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, st); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Pedido não encontrado.")
			}
			u.logger.Error("erro ao atualizar status do pedido", slog.Int64("order_id", orderID), slog.Int64("user_id", caller.ID), slog.Any("error", err))
			return NewHTTPError(http.StatusInternalServerError, "Erro ao atualizar status.")
		}
		o.Status = st

		//通知は注文の所有者宛て（操作者がadminでも）
		n := model.Notification{
			OrderID:             o.ID,
			UserID:              o.UserID,
			NotificationMessage: fmt.Sprintf("Seu pedido #%d foi %s.", o.ID, st),
			Viewed:              false,
		}
		if err := r.Notifications().Create(ctx, &n); err != nil {
			u.logger.Error("erro ao criar notificação", slog.Int64("order_id", o.ID), slog.Int64("user_id", caller.ID), slog.Any("error", err))
			return NewHTTPError(http.StatusInternalServerError, "Erro ao atualizar status.")
		}

		out = o
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}

	u.logger.Info("status do pedido atualizado",
		slog.Int64("order_id", out.ID),
		slog.String("status", string(out.Status)),
		slog.Int64("user_id", caller.ID),
	)
	return out, nil
}

func (u *OrderUsecase) Delete(ctx context.Context, caller Caller, orderID int64) error {
	o, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "Pedido não encontrado.")
	}
	if err != nil {
		u.logger.Error("erro ao deletar pedido", slog.Int64("order_id", orderID), slog.Int64("user_id", caller.ID), slog.Any("error", err))
		return NewHTTPError(http.StatusInternalServerError, "Erro ao deletar pedido.")
	}

	if !caller.IsAdmin() && o.UserID != caller.ID {
		return NewHTTPError(http.StatusForbidden, "Você não tem permissão para deletar este pedido.")
	}

	if err := u.orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Pedido não encontrado.")
		}
		u.logger.Error("erro ao deletar pedido", slog.Int64("order_id", orderID), slog.Int64("user_id", caller.ID), slog.Any("error", err))
		return NewHTTPError(http.StatusInternalServerError, "Erro ao deletar pedido.")
	}

	u.logger.Info("pedido deletado", slog.Int64("order_id", orderID), slog.Int64("user_id", caller.ID))
	return nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
