package models

import "time"

// LedgerEntry — неизменяемая запись одного изменения баланса.
// Amount — сумма покупки (0 для непокупочных записей), Delta — подписанное
// изменение баланса (отрицательное только для admin_deduct).
type LedgerEntry struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"account_id"`
	Amount    int64     `json:"amount"`
	Percent   int       `json:"percent"`
	Delta     int64     `json:"delta"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// DayCount — количество регистраций за один день (для статистики за неделю).
type DayCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// Stats — агрегаты для экрана статистики администратора и HTTP API.
type Stats struct {
	TotalUsers         int        `json:"total_users"`
	TodayUsers         int        `json:"today_users"`
	TotalBalance       int64      `json:"total_balance"`
	TotalTransactions  int        `json:"total_transactions"`
	TotalCashbackGiven int64      `json:"total_cashback_given"`
	Last7Days          []DayCount `json:"last_7_days"`
}
