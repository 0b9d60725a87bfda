package claims

import (
	"errors"
	"log"
	"math/rand/v2"

	"spkbot/internal/constants"
)

// ErrClaimNotFound возвращается при решении по заявке, которой нет в
// реестре: токен уже использован или заявка никогда не существовала.
var ErrClaimNotFound = errors.New("заявка не найдена или уже разрешена")

// Ledger — минимальный срез хранилища, нужный workflow для проводки.
type Ledger interface {
	PostTransaction(chatID, amount int64, percent int, delta int64, kind string) (int64, error)
}

// Decision — результат одобрения заявки.
type Decision struct {
	Claim      PendingClaim
	Percent    int
	Cashback   int64
	NewBalance int64
}

// Workflow разрешает ожидающие заявки. Процент кешбека берётся из
// инжектируемого источника, чтобы тесты могли зафиксировать значение;
// по умолчанию — равномерно случайный из диапазона 1–5 включительно.
type Workflow struct {
	registry  *Registry
	ledger    Ledger
	percentFn func() int
}

// NewWorkflow создает Workflow со случайным источником процента.
func NewWorkflow(registry *Registry, ledger Ledger) *Workflow {
	return &Workflow{
		registry: registry,
		ledger:   ledger,
		percentFn: func() int {
			return constants.MIN_CASHBACK_PERCENT +
				rand.IntN(constants.MAX_CASHBACK_PERCENT-constants.MIN_CASHBACK_PERCENT+1)
		},
	}
}

// NewWorkflowWithPercentSource создает Workflow с заданным источником процента.
func NewWorkflowWithPercentSource(registry *Registry, ledger Ledger, percentFn func() int) *Workflow {
	return &Workflow{registry: registry, ledger: ledger, percentFn: percentFn}
}

// Approve одобряет заявку: снимает её с реестра, выбирает процент,
// проводит purchase-транзакцию и возвращает детали для уведомлений.
// Повторное одобрение того же токена даёт ErrClaimNotFound и ничего не
// проводит. Если проводка не прошла, заявка возвращается в реестр, чтобы
// администратор мог повторить решение.
func (w *Workflow) Approve(token string) (Decision, error) {
	claim, ok := w.registry.Take(token)
	if !ok {
		return Decision{}, ErrClaimNotFound
	}

	percent := w.percentFn()
	cashback := claim.Amount * int64(percent) / 100

	newBalance, err := w.ledger.PostTransaction(claim.ClaimantID, claim.Amount, percent, cashback, constants.ENTRY_KIND_PURCHASE)
	if err != nil {
		w.registry.restore(claim)
		log.Printf("claims.Approve: проводка по заявке %s не прошла: %v", token, err)
		return Decision{}, err
	}

	log.Printf("claims.Approve: заявка %s одобрена, %d%% от %d = %d, новый баланс %d",
		token, percent, claim.Amount, cashback, newBalance)
	return Decision{Claim: claim, Percent: percent, Cashback: cashback, NewBalance: newBalance}, nil
}

// Reject отклоняет заявку без проводки. Токен расходуется так же, как при
// одобрении.
func (w *Workflow) Reject(token string) (PendingClaim, error) {
	claim, ok := w.registry.Take(token)
	if !ok {
		return PendingClaim{}, ErrClaimNotFound
	}
	log.Printf("claims.Reject: заявка %s от chatID %d отклонена.", token, claim.ClaimantID)
	return claim, nil
}
