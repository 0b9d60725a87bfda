package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"spkbot/internal/constants"
)

func TestStateDefaultsToIdle(t *testing.T) {
	m := NewManager(time.Minute)
	defer m.Close()

	assert.Equal(t, constants.STATE_IDLE, m.GetState(1))
}

func TestSetAndGetState(t *testing.T) {
	m := NewManager(time.Minute)
	defer m.Close()

	m.SetState(1, constants.STATE_CLAIM_AMOUNT)
	assert.Equal(t, constants.STATE_CLAIM_AMOUNT, m.GetState(1))

	// Состояния чатов независимы.
	assert.Equal(t, constants.STATE_IDLE, m.GetState(2))
}

func TestUpdateDataPreservesOtherFields(t *testing.T) {
	m := NewManager(time.Minute)
	defer m.Close()

	m.UpdateData(1, func(data *Data) {
		data.Locale = constants.LOCALE_RU
	})
	m.UpdateData(1, func(data *Data) {
		data.ClaimAmount = 150000
	})

	data := m.GetData(1)
	assert.Equal(t, constants.LOCALE_RU, data.Locale)
	assert.Equal(t, int64(150000), data.ClaimAmount)
}

func TestClearDropsStateAndData(t *testing.T) {
	m := NewManager(time.Minute)
	defer m.Close()

	m.SetState(1, constants.STATE_CLAIM_PHOTO)
	m.UpdateData(1, func(data *Data) {
		data.ClaimAmount = 500
	})

	m.Clear(1)

	assert.Equal(t, constants.STATE_IDLE, m.GetState(1))
	assert.Equal(t, Data{}, m.GetData(1))
}

func TestExpiredSessionReadsAsIdle(t *testing.T) {
	m := NewManager(10 * time.Millisecond)
	defer m.Close()

	m.SetState(1, constants.STATE_REG_NAME)
	m.UpdateData(1, func(data *Data) {
		data.Locale = constants.LOCALE_UZ
	})

	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, constants.STATE_IDLE, m.GetState(1))
	assert.Equal(t, Data{}, m.GetData(1))
}

func TestZeroTTLNeverExpires(t *testing.T) {
	m := NewManager(0)
	defer m.Close()

	m.SetState(1, constants.STATE_REG_PHONE)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, constants.STATE_REG_PHONE, m.GetState(1))
}
