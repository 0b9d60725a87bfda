package claims

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// PendingClaim — заявка на кешбек, ожидающая решения администратора.
// Живёт от завершения подачи (сумма + фото) до одобрения или отклонения.
type PendingClaim struct {
	Token       string
	ClaimantID  int64
	Amount      int64
	PhotoFileID string
	CreatedAt   time.Time
}

// Registry хранит ожидающие заявки по одноразовому токену решения.
// Токен — uuid, а не пара (пользователь, сумма): две одновременные заявки
// одного пользователя на одинаковую сумму не должны разрешаться одним
// нажатием.
type Registry struct {
	mu      sync.Mutex
	pending map[string]PendingClaim
}

// NewRegistry создает пустой реестр заявок.
func NewRegistry() *Registry {
	return &Registry{pending: make(map[string]PendingClaim)}
}

// Add регистрирует новую заявку и возвращает её с выданным токеном.
func (r *Registry) Add(claimantID, amount int64, photoFileID string) PendingClaim {
	claim := PendingClaim{
		Token:       uuid.NewString(),
		ClaimantID:  claimantID,
		Amount:      amount,
		PhotoFileID: photoFileID,
		CreatedAt:   time.Now(),
	}
	r.mu.Lock()
	r.pending[claim.Token] = claim
	r.mu.Unlock()
	log.Printf("claims.Add: заявка %s от chatID %d на сумму %d зарегистрирована.", claim.Token, claimantID, amount)
	return claim
}

// Take извлекает заявку, удаляя её из реестра. Второй вызов с тем же
// токеном вернёт false: решение одноразовое независимо от исхода.
func (r *Registry) Take(token string) (PendingClaim, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	claim, ok := r.pending[token]
	if ok {
		delete(r.pending, token)
	}
	return claim, ok
}

// Remove снимает заявку без решения (например, если пересылка
// администратору не удалась и заявка не должна остаться висеть).
func (r *Registry) Remove(token string) {
	r.mu.Lock()
	delete(r.pending, token)
	r.mu.Unlock()
}

// restore возвращает заявку в реестр под прежним токеном. Используется
// workflow, когда проводка не прошла и решение должно остаться возможным.
func (r *Registry) restore(claim PendingClaim) {
	r.mu.Lock()
	r.pending[claim.Token] = claim
	r.mu.Unlock()
}

// Len возвращает количество ожидающих заявок.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
