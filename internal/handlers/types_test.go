package handlers

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStopBroadcastInvokesCancelOnce(t *testing.T) {
	bh := &BotHandler{}
	var calls int32
	bh.setBroadcastCancel(func() { atomic.AddInt32(&calls, 1) })

	bh.stopBroadcast()
	bh.stopBroadcast()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestStopBroadcastWithoutActiveBroadcast(t *testing.T) {
	bh := &BotHandler{}
	assert.NotPanics(t, func() { bh.stopBroadcast() })
}

// Завершение рассылки сбрасывает функцию отмены из своей горутины, а
// администратор в это же время может нажать отмену из другой. Гонка
// ловится под -race.
func TestBroadcastCancelConcurrentAccess(t *testing.T) {
	bh := &BotHandler{}
	var calls int32
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bh.setBroadcastCancel(func() { atomic.AddInt32(&calls, 1) })
		}()
		go func() {
			defer wg.Done()
			bh.stopBroadcast()
		}()
	}
	wg.Wait()

	bh.stopBroadcast()
	bh.broadcastMu.Lock()
	assert.Nil(t, bh.cancelBroadcast)
	bh.broadcastMu.Unlock()
}
