package db

import (
	"database/sql"
	"fmt"
	"log"

	"spkbot/internal/constants"
	"spkbot/internal/models"
)

// PostTransaction атомарно изменяет баланс и дописывает запись в леджер.
// Строка аккаунта блокируется на время транзакции (FOR UPDATE), поэтому
// мутации баланса одного аккаунта сериализуются на уровне БД.
// Отрицательная дельта, уводящая баланс ниже нуля, отклоняется с
// ErrInsufficientBalance — вызывающий код уже проверил ввод, но последнее
// слово за хранилищем.
func (s *Store) PostTransaction(chatID, amount int64, percent int, delta int64, kind string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	newBalance, err := postTransactionTx(tx, chatID, amount, percent, delta, kind)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return newBalance, nil
}

// postTransactionTx — тело проводки внутри уже открытой транзакции.
// Используется и GrantPercentBonus, где сумма бонуса зависит от
// заблокированного баланса.
func postTransactionTx(tx *sql.Tx, chatID, amount int64, percent int, delta int64, kind string) (int64, error) {
	var balance int64
	err := tx.QueryRow("SELECT balance FROM accounts WHERE chat_id=$1 FOR UPDATE", chatID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrAccountNotFound
		}
		return 0, err
	}

	newBalance := balance + delta
	if delta < 0 && newBalance < 0 {
		return 0, ErrInsufficientBalance
	}

	if _, err = tx.Exec("UPDATE accounts SET balance=$1 WHERE chat_id=$2", newBalance, chatID); err != nil {
		return 0, err
	}
	if kind == constants.ENTRY_KIND_REFERRAL {
		if _, err = tx.Exec("UPDATE accounts SET referral_count = referral_count + 1 WHERE chat_id=$1", chatID); err != nil {
			return 0, err
		}
	}
	if _, err = tx.Exec(`
        INSERT INTO ledger (account_id, amount, percent, delta, kind, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())`,
		chatID, amount, percent, delta, kind); err != nil {
		return 0, err
	}

	log.Printf("PostTransaction: chatID %d, kind=%s, delta=%d, новый баланс %d", chatID, kind, delta, newBalance)
	return newBalance, nil
}

// GrantPercentBonus начисляет бонус как процент от текущего баланса.
// Сумма бонуса считается от заблокированного баланса, так что параллельные
// проводки не влияют на расчёт. Бонус <= 0 — валидный тихий исход: баланс
// не меняется, запись не создаётся.
func (s *Store) GrantPercentBonus(chatID int64, percent int) (newBalance, bonusAmount int64, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRow("SELECT balance FROM accounts WHERE chat_id=$1 FOR UPDATE", chatID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, 0, ErrAccountNotFound
		}
		return 0, 0, err
	}

	bonusAmount = balance * int64(percent) / 100
	if bonusAmount <= 0 {
		return balance, 0, nil
	}

	newBalance = balance + bonusAmount
	if _, err = tx.Exec("UPDATE accounts SET balance=$1 WHERE chat_id=$2", newBalance, chatID); err != nil {
		return 0, 0, err
	}
	if _, err = tx.Exec(`
        INSERT INTO ledger (account_id, amount, percent, delta, kind, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())`,
		chatID, balance, percent, bonusAmount, constants.ENTRY_KIND_ADMIN_BONUS); err != nil {
		return 0, 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}

	log.Printf("GrantPercentBonus: chatID %d, percent=%d, бонус %d, новый баланс %d", chatID, percent, bonusAmount, newBalance)
	return newBalance, bonusAmount, nil
}

// History возвращает записи леджера аккаунта, новые первыми.
func (s *Store) History(chatID int64) ([]models.LedgerEntry, error) {
	rows, err := s.db.Query(`
        SELECT id, account_id, amount, percent, delta, kind, created_at
        FROM ledger
        WHERE account_id=$1
        ORDER BY created_at DESC, id DESC`, chatID)
	if err != nil {
		log.Printf("History: ошибка запроса истории chatID %d: %v", chatID, err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.LedgerEntry
	for rows.Next() {
		var e models.LedgerEntry
		if err := rows.Scan(&e.ID, &e.AccountID, &e.Amount, &e.Percent, &e.Delta, &e.Kind, &e.CreatedAt); err != nil {
			log.Printf("History: ошибка сканирования строки: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
