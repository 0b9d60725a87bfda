package claims

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"spkbot/internal/constants"
)

type postedTx struct {
	chatID  int64
	amount  int64
	percent int
	delta   int64
	kind    string
}

// fakeLedger записывает проводки; failNext позволяет сымитировать отказ БД.
type fakeLedger struct {
	posted   []postedTx
	balance  int64
	failNext error
}

func (f *fakeLedger) PostTransaction(chatID, amount int64, percent int, delta int64, kind string) (int64, error) {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return 0, err
	}
	f.posted = append(f.posted, postedTx{chatID, amount, percent, delta, kind})
	f.balance += delta
	return f.balance, nil
}

func fixedPercent(p int) func() int {
	return func() int { return p }
}

func TestApprovePostsPurchase(t *testing.T) {
	registry := NewRegistry()
	ledger := &fakeLedger{balance: 1000}
	workflow := NewWorkflowWithPercentSource(registry, ledger, fixedPercent(3))

	claim := registry.Add(42, 150000, "photo-1")

	decision, err := workflow.Approve(claim.Token)
	assert.NoError(t, err)
	assert.Equal(t, 3, decision.Percent)
	assert.Equal(t, int64(4500), decision.Cashback)
	assert.Equal(t, int64(5500), decision.NewBalance)
	assert.Equal(t, int64(42), decision.Claim.ClaimantID)

	assert.Len(t, ledger.posted, 1)
	assert.Equal(t, postedTx{42, 150000, 3, 4500, constants.ENTRY_KIND_PURCHASE}, ledger.posted[0])
	assert.Equal(t, 0, registry.Len())
}

func TestApproveRoundsCashbackDown(t *testing.T) {
	registry := NewRegistry()
	ledger := &fakeLedger{}
	workflow := NewWorkflowWithPercentSource(registry, ledger, fixedPercent(3))

	claim := registry.Add(1, 99, "photo")

	decision, err := workflow.Approve(claim.Token)
	assert.NoError(t, err)
	// 99 * 3 / 100 = 2.97, дробная часть отбрасывается
	assert.Equal(t, int64(2), decision.Cashback)
}

func TestApproveTokenIsSingleUse(t *testing.T) {
	registry := NewRegistry()
	ledger := &fakeLedger{}
	workflow := NewWorkflowWithPercentSource(registry, ledger, fixedPercent(2))

	claim := registry.Add(7, 1000, "photo")

	_, err := workflow.Approve(claim.Token)
	assert.NoError(t, err)

	_, err = workflow.Approve(claim.Token)
	assert.ErrorIs(t, err, ErrClaimNotFound)
	assert.Len(t, ledger.posted, 1)
}

func TestApproveRestoresClaimOnLedgerFailure(t *testing.T) {
	registry := NewRegistry()
	ledger := &fakeLedger{failNext: errors.New("база недоступна")}
	workflow := NewWorkflowWithPercentSource(registry, ledger, fixedPercent(5))

	claim := registry.Add(7, 1000, "photo")

	_, err := workflow.Approve(claim.Token)
	assert.Error(t, err)
	assert.Equal(t, 1, registry.Len())

	// После восстановления заявки повторное решение проходит.
	decision, err := workflow.Approve(claim.Token)
	assert.NoError(t, err)
	assert.Equal(t, int64(50), decision.Cashback)
}

func TestRejectConsumesTokenWithoutPosting(t *testing.T) {
	registry := NewRegistry()
	ledger := &fakeLedger{}
	workflow := NewWorkflowWithPercentSource(registry, ledger, fixedPercent(1))

	claim := registry.Add(9, 500, "photo")

	rejected, err := workflow.Reject(claim.Token)
	assert.NoError(t, err)
	assert.Equal(t, int64(9), rejected.ClaimantID)
	assert.Empty(t, ledger.posted)

	_, err = workflow.Reject(claim.Token)
	assert.ErrorIs(t, err, ErrClaimNotFound)
}

func TestConcurrentClaimsGetDistinctTokens(t *testing.T) {
	registry := NewRegistry()

	first := registry.Add(5, 10000, "photo-a")
	second := registry.Add(5, 10000, "photo-b")

	assert.NotEqual(t, first.Token, second.Token)
	assert.Equal(t, 2, registry.Len())
}

func TestDefaultPercentStaysInRange(t *testing.T) {
	registry := NewRegistry()
	workflow := NewWorkflow(registry, &fakeLedger{})

	for i := 0; i < 200; i++ {
		p := workflow.percentFn()
		assert.GreaterOrEqual(t, p, constants.MIN_CASHBACK_PERCENT)
		assert.LessOrEqual(t, p, constants.MAX_CASHBACK_PERCENT)
	}
}
