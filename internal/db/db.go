// Файл: internal/db/db.go
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Ошибки хранилища, различимые вызывающим кодом через errors.Is.
// Хранилище — последняя инстанция: проверки баланса повторяются здесь,
// даже если обработчик уже проверил ввод.
var (
	ErrAccountNotFound     = errors.New("аккаунт не найден")
	ErrInsufficientBalance = errors.New("недостаточно средств на балансе")
)

// Store инкапсулирует доступ к базе данных. Все мутации выполняются в
// рамках одной транзакции на вызов: либо баланс и леджер меняются вместе,
// либо не меняется ничего.
type Store struct {
	db *sql.DB
}

// InitDB открывает соединение с базой данных, настраивает пул,
// создаёт таблицы и индексы (если их нет) и возвращает Store.
func InitDB(databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL не установлена")
	}

	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	conn.SetMaxOpenConns(50)
	conn.SetMaxIdleConns(20)
	conn.SetConnMaxLifetime(5 * time.Minute)

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("ошибка проверки соединения с базой данных: %w", err)
	}
	log.Println("Успешное подключение к базе данных.")

	store := &Store{db: conn}
	if err := store.createSchema(); err != nil {
		return nil, err
	}
	log.Println("Инициализация базы данных успешно завершена.")
	return store, nil
}

// NewStore оборачивает уже открытое соединение (используется в main и API).
func NewStore(conn *sql.DB) *Store {
	return &Store{db: conn}
}

func (s *Store) createSchema() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции для создания таблиц: %w", err)
	}
	defer tx.Rollback()

	createTablesSQL := `
        CREATE TABLE IF NOT EXISTS accounts (
            chat_id BIGINT PRIMARY KEY,
            name VARCHAR(100),
            phone VARCHAR(20),
            locale VARCHAR(5) DEFAULT 'uz',
            registered BOOLEAN DEFAULT FALSE,
            balance BIGINT NOT NULL DEFAULT 0,
            inviter_id BIGINT,
            referral_count INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMP NOT NULL DEFAULT NOW()
        );
        CREATE TABLE IF NOT EXISTS ledger (
            id SERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(chat_id),
            amount BIGINT NOT NULL DEFAULT 0,
            percent INTEGER NOT NULL DEFAULT 0,
            delta BIGINT NOT NULL,
            kind TEXT NOT NULL,
            created_at TIMESTAMP NOT NULL DEFAULT NOW()
        );
    `
	if _, err = tx.Exec(createTablesSQL); err != nil {
		return fmt.Errorf("ошибка создания таблиц: %w", err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции создания таблиц: %w", err)
	}
	log.Println("Создание таблиц (если не существуют) завершено.")

	createIndexesSQL := []string{
		`CREATE INDEX IF NOT EXISTS idx_ledger_account_id ON ledger(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_created_at ON ledger(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_registered ON accounts(registered)`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_created_at ON accounts(created_at)`,
	}
	for _, stmt := range createIndexesSQL {
		if _, errIdx := s.db.Exec(stmt); errIdx != nil {
			log.Printf("Предупреждение: ошибка при создании индекса ('%s'): %v", stmt, errIdx)
		}
	}
	log.Println("Создание индексов (если не существуют) завершено.")
	return nil
}

// Close закрывает соединение с базой данных.
func (s *Store) Close() {
	if s != nil && s.db != nil {
		s.db.Close()
		log.Println("Соединение с базой данных закрыто.")
	}
}
