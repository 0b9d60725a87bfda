package referral

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"spkbot/internal/constants"
	"spkbot/internal/db"
	"spkbot/internal/models"
)

// Ledger — операции хранилища, нужные движку рефералов.
type Ledger interface {
	GetAccount(chatID int64) (models.User, error)
	PostTransaction(chatID, amount int64, percent int, delta int64, kind string) (int64, error)
}

// Result описывает исход обработки реферальной ссылки.
// Recognized выставляется, когда пригласивший найден и это не сам новичок;
// новичка уведомляют независимо от того, был ли начислен бонус.
type Result struct {
	Recognized bool
	InviterID  int64
	Bonus      int64
	NewBalance int64
}

// Engine начисляет реферальные бонусы при первой регистрации.
type Engine struct {
	ledger Ledger
}

// NewEngine создает движок рефералов поверх хранилища.
func NewEngine(ledger Ledger) *Engine {
	return &Engine{ledger: ledger}
}

// ParsePayload извлекает chat_id пригласившего из нагрузки /start
// ("ref_<chat_id>"). Нераспознаваемая нагрузка — просто не реферал.
func ParsePayload(payload string) (int64, bool) {
	if !strings.HasPrefix(payload, constants.REFERRAL_PAYLOAD_PREFIX) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(payload, constants.REFERRAL_PAYLOAD_PREFIX), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// Process обрабатывает реферал при создании аккаунта newUserID.
// Самоприглашение и ссылка на несуществующий аккаунт — не ошибки, а тихое
// "реферала нет". Бонус — процент от текущего баланса пригласившего на
// момент регистрации; нулевой бонус не проводится, но реферал считается
// распознанным.
func (e *Engine) Process(newUserID, inviterID int64) (Result, error) {
	if inviterID == newUserID {
		log.Printf("referral.Process: chatID %d попытался пригласить сам себя, игнорируется.", newUserID)
		return Result{}, nil
	}

	inviter, err := e.ledger.GetAccount(inviterID)
	if err != nil {
		if errors.Is(err, db.ErrAccountNotFound) {
			log.Printf("referral.Process: пригласивший chatID %d не найден, реферал игнорируется.", inviterID)
			return Result{}, nil
		}
		return Result{}, err
	}

	res := Result{Recognized: true, InviterID: inviterID}
	res.Bonus = inviter.Balance * constants.REFERRAL_BONUS_PERCENT / 100
	if res.Bonus <= 0 {
		// Пригласившему начислять нечего, но новичок всё равно узнаёт,
		// что его привели по ссылке.
		return res, nil
	}

	res.NewBalance, err = e.ledger.PostTransaction(
		inviterID, res.Bonus, constants.REFERRAL_BONUS_PERCENT, res.Bonus, constants.ENTRY_KIND_REFERRAL)
	if err != nil {
		return Result{}, err
	}

	log.Printf("referral.Process: chatID %d пригласил chatID %d, бонус %d, новый баланс %d",
		inviterID, newUserID, res.Bonus, res.NewBalance)
	return res, nil
}
