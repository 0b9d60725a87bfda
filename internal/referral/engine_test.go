package referral

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spkbot/internal/constants"
	"spkbot/internal/db"
	"spkbot/internal/models"
)

type fakeLedger struct {
	accounts map[int64]models.User
	posted   []string
	lastTx   struct {
		chatID int64
		delta  int64
		kind   string
	}
}

func (f *fakeLedger) GetAccount(chatID int64) (models.User, error) {
	user, ok := f.accounts[chatID]
	if !ok {
		return models.User{}, db.ErrAccountNotFound
	}
	return user, nil
}

func (f *fakeLedger) PostTransaction(chatID, amount int64, percent int, delta int64, kind string) (int64, error) {
	f.posted = append(f.posted, kind)
	f.lastTx.chatID = chatID
	f.lastTx.delta = delta
	f.lastTx.kind = kind
	user := f.accounts[chatID]
	user.Balance += delta
	f.accounts[chatID] = user
	return user.Balance, nil
}

func TestParsePayload(t *testing.T) {
	id, ok := ParsePayload("ref_12345")
	assert.True(t, ok)
	assert.Equal(t, int64(12345), id)

	_, ok = ParsePayload("")
	assert.False(t, ok)

	_, ok = ParsePayload("promo_12345")
	assert.False(t, ok)

	_, ok = ParsePayload("ref_abc")
	assert.False(t, ok)

	_, ok = ParsePayload("ref_0")
	assert.False(t, ok)
}

func TestProcessGrantsPercentOfCurrentBalance(t *testing.T) {
	ledger := &fakeLedger{accounts: map[int64]models.User{
		100: {ChatID: 100, Balance: 999},
	}}
	engine := NewEngine(ledger)

	res, err := engine.Process(200, 100)
	assert.NoError(t, err)
	assert.True(t, res.Recognized)
	// 1% от 999 с отбрасыванием дробной части
	assert.Equal(t, int64(9), res.Bonus)
	assert.Equal(t, int64(1008), res.NewBalance)
	assert.Equal(t, constants.ENTRY_KIND_REFERRAL, ledger.lastTx.kind)
	assert.Equal(t, int64(100), ledger.lastTx.chatID)
}

func TestProcessZeroBonusIsRecognizedButNotPosted(t *testing.T) {
	ledger := &fakeLedger{accounts: map[int64]models.User{
		100: {ChatID: 100, Balance: 50},
	}}
	engine := NewEngine(ledger)

	res, err := engine.Process(200, 100)
	assert.NoError(t, err)
	assert.True(t, res.Recognized)
	assert.Equal(t, int64(0), res.Bonus)
	assert.Empty(t, ledger.posted)
}

func TestProcessSelfReferralIsSilentlyIgnored(t *testing.T) {
	ledger := &fakeLedger{accounts: map[int64]models.User{
		100: {ChatID: 100, Balance: 1000},
	}}
	engine := NewEngine(ledger)

	res, err := engine.Process(100, 100)
	assert.NoError(t, err)
	assert.False(t, res.Recognized)
	assert.Empty(t, ledger.posted)
}

func TestProcessUnknownInviterIsSilentlyIgnored(t *testing.T) {
	ledger := &fakeLedger{accounts: map[int64]models.User{}}
	engine := NewEngine(ledger)

	res, err := engine.Process(200, 100)
	assert.NoError(t, err)
	assert.False(t, res.Recognized)
	assert.Empty(t, ledger.posted)
}
