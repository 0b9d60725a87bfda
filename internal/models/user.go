package models

import (
	"database/sql"
	"strconv"
	"time"
)

// User — аккаунт пользователя бота.
// Баланс хранится как кэшированный агрегат; инвариант: он всегда равен
// сумме дельт записей леджера этого пользователя.
type User struct {
	ChatID        int64
	Name          sql.NullString
	Phone         sql.NullString
	Locale        string
	Registered    bool
	Balance       int64
	InviterID     sql.NullInt64
	ReferralCount int
	CreatedAt     time.Time
}

// DisplayName возвращает имя для показа в списках и карточках.
func (u User) DisplayName() string {
	if u.Name.Valid && u.Name.String != "" {
		return u.Name.String
	}
	return "User " + strconv.FormatInt(u.ChatID, 10)
}
