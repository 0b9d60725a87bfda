package db

import (
	"database/sql"
	"log"

	"spkbot/internal/models"
)

// AggregateStats собирает общую статистику для админ-панели и HTTP API.
func (s *Store) AggregateStats() (models.Stats, error) {
	var st models.Stats

	err := s.db.QueryRow("SELECT COUNT(*) FROM accounts WHERE registered = TRUE").Scan(&st.TotalUsers)
	if err != nil {
		log.Printf("AggregateStats: ошибка подсчета пользователей: %v", err)
		return st, err
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM accounts WHERE created_at::date = CURRENT_DATE").Scan(&st.TodayUsers)
	if err != nil {
		log.Printf("AggregateStats: ошибка подсчета за сегодня: %v", err)
		return st, err
	}

	var totalBalance sql.NullInt64
	err = s.db.QueryRow("SELECT SUM(balance) FROM accounts").Scan(&totalBalance)
	if err != nil {
		log.Printf("AggregateStats: ошибка суммирования балансов: %v", err)
		return st, err
	}
	st.TotalBalance = totalBalance.Int64

	var totalCashback sql.NullInt64
	err = s.db.QueryRow("SELECT COUNT(*), SUM(delta) FROM ledger").Scan(&st.TotalTransactions, &totalCashback)
	if err != nil {
		log.Printf("AggregateStats: ошибка подсчета транзакций: %v", err)
		return st, err
	}
	st.TotalCashbackGiven = totalCashback.Int64

	rows, err := s.db.Query(`
        SELECT created_at::date AS day, COUNT(*)
        FROM accounts
        WHERE created_at >= CURRENT_DATE - INTERVAL '7 days'
        GROUP BY day
        ORDER BY day DESC`)
	if err != nil {
		log.Printf("AggregateStats: ошибка запроса недельной статистики: %v", err)
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var dc models.DayCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			log.Printf("AggregateStats: ошибка сканирования строки: %v", err)
			return st, err
		}
		st.Last7Days = append(st.Last7Days, dc)
	}
	return st, rows.Err()
}
