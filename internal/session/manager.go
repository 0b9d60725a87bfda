package session

import (
	"log"
	"sync"
	"time"

	"spkbot/internal/constants"
)

// Data — буфер значений незавершённого диалога: выбранная локаль при
// регистрации, сумма заявки до получения фото, цель админского действия,
// черновик рассылки.
type Data struct {
	Locale      string
	ClaimAmount int64

	AdminTargetChatID int64

	BroadcastKind    string // "text", "photo" или "video"
	BroadcastContent string // текст сообщения или file_id вложения
	BroadcastCaption string
}

type entry struct {
	state     string
	data      Data
	lastTouch time.Time
}

// Manager управляет состояниями диалогов пользователей и временными данными.
// Сессии живут только в памяти процесса: прерванный многошаговый диалог
// после рестарта начинается с первого шага. Простоявшие дольше TTL сессии
// вычищаются фоновым циклом.
type Manager struct {
	mu      sync.RWMutex
	entries map[int64]*entry
	ttl     time.Duration
	done    chan struct{}
}

// NewManager создает Manager с заданным временем жизни простаивающей сессии.
func NewManager(ttl time.Duration) *Manager {
	m := &Manager{
		entries: make(map[int64]*entry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go m.sweepLoop()
	return m
}

// GetState возвращает текущее состояние диалога.
// Если состояние не установлено или сессия истекла, возвращает STATE_IDLE.
func (m *Manager) GetState(chatID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[chatID]
	if !ok || m.expired(e) {
		return constants.STATE_IDLE
	}
	return e.state
}

// SetState устанавливает новое состояние, сохраняя буфер значений.
func (m *Manager) SetState(chatID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entryLocked(chatID)
	e.state = state
	e.lastTouch = time.Now()
	log.Printf("session.SetState: chatID %d -> %s", chatID, state)
}

// GetData возвращает копию буфера значений сессии.
func (m *Manager) GetData(chatID int64) Data {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[chatID]
	if !ok || m.expired(e) {
		return Data{}
	}
	return e.data
}

// UpdateData изменяет буфер значений сессии под блокировкой, сохраняя
// остальные поля.
func (m *Manager) UpdateData(chatID int64, fn func(data *Data)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.entryLocked(chatID)
	fn(&e.data)
	e.lastTouch = time.Now()
}

// Clear сбрасывает состояние в STATE_IDLE и отбрасывает буфер значений.
// Вызывается при завершении потока и при явной отмене.
func (m *Manager) Clear(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, chatID)
	log.Printf("session.Clear: сессия chatID %d очищена.", chatID)
}

// Close останавливает фоновую чистку.
func (m *Manager) Close() {
	close(m.done)
}

func (m *Manager) entryLocked(chatID int64) *entry {
	e, ok := m.entries[chatID]
	if !ok || m.expired(e) {
		e = &entry{state: constants.STATE_IDLE, lastTouch: time.Now()}
		m.entries[chatID] = e
	}
	return e
}

func (m *Manager) expired(e *entry) bool {
	return m.ttl > 0 && time.Since(e.lastTouch) > m.ttl
}

func (m *Manager) sweepLoop() {
	if m.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(m.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Manager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for chatID, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, chatID)
			log.Printf("session.sweep: простаивающая сессия chatID %d удалена.", chatID)
		}
	}
}
