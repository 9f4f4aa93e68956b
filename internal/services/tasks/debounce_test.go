package tasks

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CoalescesRapidTriggers(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	var last atomic.Int32
	for i := 1; i <= 5; i++ {
		v := int32(i)
		d.Trigger("key", func() {
			fired.Add(1)
			last.Store(v)
		})
	}

	require.Eventually(t, func() bool {
		return fired.Load() == 1
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, int32(5), last.Load())
}

func TestDebouncer_KeysIndependent(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	var a, b atomic.Int32
	d.Trigger("a", func() { a.Add(1) })
	d.Trigger("b", func() { b.Add(1) })

	require.Eventually(t, func() bool {
		return a.Load() == 1 && b.Load() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	var fired atomic.Int32
	d.Trigger("key", func() { fired.Add(1) })
	d.Cancel("key")

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	var fired atomic.Int32
	d.Trigger("a", func() { fired.Add(1) })
	d.Trigger("b", func() { fired.Add(1) })
	d.Stop()

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
