package usecase

import "github.com/IcaroDrumond17/onhappy/internal/domain/model"

// 呼び出しユーザー。
// グローバルから読まず、毎回引数で渡す。
type Caller struct {
	ID   int64
	Role model.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}
