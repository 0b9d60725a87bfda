package db

import (
	"database/sql"
	"fmt"
	"log"

	"spkbot/internal/models"
)

// CreateAccount создаёт аккаунт при первом контакте. Идемпотентна: если
// аккаунт уже существует, ничего не меняет (в том числе inviter_id —
// он выставляется один раз при создании и больше не мутируется).
func (s *Store) CreateAccount(chatID int64, displayName string, inviterID sql.NullInt64) error {
	_, err := s.db.Exec(`
        INSERT INTO accounts (chat_id, name, inviter_id, created_at)
        VALUES ($1, NULLIF($2, ''), $3, NOW())
        ON CONFLICT (chat_id) DO NOTHING`,
		chatID, displayName, inviterID)
	if err != nil {
		log.Printf("CreateAccount: ошибка вставки аккаунта chatID %d: %v", chatID, err)
		return err
	}
	return nil
}

// GetAccount извлекает аккаунт по chat_id.
// Возвращает ErrAccountNotFound, если аккаунта нет.
func (s *Store) GetAccount(chatID int64) (models.User, error) {
	var u models.User
	err := s.db.QueryRow(`
        SELECT chat_id, name, phone, locale, registered, balance, inviter_id, referral_count, created_at
        FROM accounts WHERE chat_id=$1`, chatID).Scan(
		&u.ChatID, &u.Name, &u.Phone, &u.Locale, &u.Registered, &u.Balance,
		&u.InviterID, &u.ReferralCount, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return u, ErrAccountNotFound
		}
		log.Printf("GetAccount: ошибка получения аккаунта chatID %d: %v", chatID, err)
		return u, err
	}
	return u, nil
}

// AccountExists проверяет наличие аккаунта (для разрешения пригласившего).
func (s *Store) AccountExists(chatID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM accounts WHERE chat_id=$1)", chatID).Scan(&exists)
	if err != nil {
		log.Printf("AccountExists: ошибка проверки аккаунта chatID %d: %v", chatID, err)
		return false, err
	}
	return exists, nil
}

// SetLocale сохраняет выбранную локаль пользователя.
func (s *Store) SetLocale(chatID int64, locale string) error {
	return s.updateAccountField(chatID, "UPDATE accounts SET locale=$1 WHERE chat_id=$2", locale)
}

// SetDisplayName сохраняет имя, введённое при регистрации.
func (s *Store) SetDisplayName(chatID int64, name string) error {
	return s.updateAccountField(chatID, "UPDATE accounts SET name=$1 WHERE chat_id=$2", name)
}

// CompleteRegistration сохраняет телефон и помечает аккаунт зарегистрированным.
func (s *Store) CompleteRegistration(chatID int64, phone string) error {
	return s.updateAccountField(chatID, "UPDATE accounts SET phone=$1, registered=TRUE WHERE chat_id=$2", phone)
}

func (s *Store) updateAccountField(chatID int64, query, value string) error {
	res, err := s.db.Exec(query, value, chatID)
	if err != nil {
		log.Printf("ошибка обновления аккаунта chatID %d: %v", chatID, err)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// ListRegistered возвращает всех зарегистрированных пользователей,
// новые аккаунты первыми.
func (s *Store) ListRegistered() ([]models.User, error) {
	rows, err := s.db.Query(`
        SELECT chat_id, name, phone, locale, registered, balance, inviter_id, referral_count, created_at
        FROM accounts
        WHERE registered = TRUE
        ORDER BY created_at DESC`)
	if err != nil {
		log.Printf("ListRegistered: ошибка запроса: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ChatID, &u.Name, &u.Phone, &u.Locale, &u.Registered,
			&u.Balance, &u.InviterID, &u.ReferralCount, &u.CreatedAt); err != nil {
			log.Printf("ListRegistered: ошибка сканирования строки: %v", err)
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ResetAccount обнуляет баланс и удаляет всю историю леджера аккаунта.
// Атомарно: блокировка строки аккаунта гарантирует, что параллельное
// одобрение заявки не воскресит устаревший баланс.
func (s *Store) ResetAccount(chatID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	var balance int64
	err = tx.QueryRow("SELECT balance FROM accounts WHERE chat_id=$1 FOR UPDATE", chatID).Scan(&balance)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrAccountNotFound
		}
		return err
	}
	if _, err = tx.Exec("DELETE FROM ledger WHERE account_id=$1", chatID); err != nil {
		return err
	}
	if _, err = tx.Exec("UPDATE accounts SET balance=0 WHERE chat_id=$1", chatID); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	log.Printf("ResetAccount: баланс и история аккаунта chatID %d очищены.", chatID)
	return nil
}

// DeleteAccount удаляет аккаунт и все его записи леджера. Сначала леджер,
// потом аккаунт — из-за внешнего ключа.
func (s *Store) DeleteAccount(chatID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM ledger WHERE account_id=$1", chatID); err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM accounts WHERE chat_id=$1", chatID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccountNotFound
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	log.Printf("DeleteAccount: аккаунт chatID %d удален вместе с историей.", chatID)
	return nil
}
