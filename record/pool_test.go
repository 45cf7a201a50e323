package record

import "testing"

func TestAcquireReleaseCycle(t *testing.T) {
	p := NewPool(Config{PoolSize: 2, BufferSize: 32, StringCapacity: 4})
	if p.CountFree() != 2 {
		t.Fatalf("expected 2 free, got %d", p.CountFree())
	}

	r1, ok := p.Acquire()
	if !ok {
		t.Fatalf("expected acquire to succeed")
	}
	if p.CountFree() != 1 {
		t.Fatalf("expected 1 free after acquire, got %d", p.CountFree())
	}

	r1.Enc.AppendString("hello")
	r1.Release()

	if p.CountFree() != 2 {
		t.Fatalf("expected 2 free after release, got %d", p.CountFree())
	}
}

func TestAcquireExhaustion(t *testing.T) {
	p := NewPool(Config{PoolSize: 1, BufferSize: 16, StringCapacity: 2})
	r1, ok := p.Acquire()
	if !ok {
		t.Fatalf("expected first acquire to succeed")
	}
	_, ok = p.Acquire()
	if ok {
		t.Fatalf("expected pool to be exhausted")
	}
	r1.Release()
	_, ok = p.Acquire()
	if !ok {
		t.Fatalf("expected acquire to succeed after release")
	}
}

func TestAcquireWaitWakesOnRelease(t *testing.T) {
	p := NewPool(Config{PoolSize: 1, BufferSize: 16, StringCapacity: 2})
	held, _ := p.Acquire()

	done := make(chan struct{})
	got := make(chan bool, 1)
	go func() {
		_, ok := p.AcquireWait(done)
		got <- ok
	}()

	held.Release()
	if ok := <-got; !ok {
		t.Fatalf("expected AcquireWait to succeed after release")
	}
}

func TestAcquireWaitWakesOnShutdown(t *testing.T) {
	p := NewPool(Config{PoolSize: 1, BufferSize: 16, StringCapacity: 2})
	_, _ = p.Acquire() // exhaust the pool

	done := make(chan struct{})
	got := make(chan bool, 1)
	go func() {
		_, ok := p.AcquireWait(done)
		got <- ok
	}()

	close(done)
	if ok := <-got; ok {
		t.Fatalf("expected AcquireWait to report failure once done is closed")
	}
}

func TestRecordResetClearsPriorState(t *testing.T) {
	p := NewPool(Config{PoolSize: 1, BufferSize: 32, StringCapacity: 4})
	r, _ := p.Acquire()
	r.LoggerName = "app.db"
	r.Enc.AppendI64(1)
	r.Release()

	r2, _ := p.Acquire()
	if r2.LoggerName != "" {
		t.Errorf("expected reset logger name, got %q", r2.LoggerName)
	}
	if len(r2.Enc.Bytes()) != 0 {
		t.Errorf("expected reset encoder, got %d bytes", len(r2.Enc.Bytes()))
	}
}

func TestNotifyRecordIsSharedAndNonPoolable(t *testing.T) {
	p := NewPool(Config{PoolSize: 1, BufferSize: 16, StringCapacity: 2})
	n1 := p.NotifyRecord()
	n2 := p.NotifyRecord()
	if n1 != n2 {
		t.Errorf("expected the same shared notify record instance")
	}
	n1.Release() // must not panic and must not add to the free list
	if p.CountFree() != 1 {
		t.Errorf("notify record release must not affect the pooled free list")
	}
}
