package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kdevops/pulselog/appender"
)

type fakeSource struct {
	poolSize, poolFree int
	queueLen           int64
	appenders          []appender.Appender
	names              []string
}

func (f *fakeSource) PoolSize() int                     { return f.poolSize }
func (f *fakeSource) PoolFree() int                     { return f.poolFree }
func (f *fakeSource) QueueLen() int64                   { return f.queueLen }
func (f *fakeSource) AllAppenders() []appender.Appender { return f.appenders }
func (f *fakeSource) AllAppenderNames() []string        { return f.names }

type noopAppender struct{}

func (noopAppender) Write(appender.LoggedMessage) error { return nil }
func (noopAppender) Flush() error                        { return nil }
func (noopAppender) Close() error                         { return nil }
func (noopAppender) SetEncoding(string) error             { return nil }

func TestCollectorReportsPoolAndQueueGauges(t *testing.T) {
	g := appender.NewGuarded(noopAppender{})
	g.Stats.IncrementWritten()
	g.Stats.IncrementWritten()
	g.Stats.IncrementFailed()

	src := &fakeSource{
		poolSize:  16,
		poolFree:  10,
		queueLen:  3,
		appenders: []appender.Appender{g},
		names:     []string{"console"},
	}
	c := New(src)

	if err := testutil.CollectAndCompare(c, strings.NewReader(`
# HELP pulselog_pool_size Configured capacity of the buffer pool.
# TYPE pulselog_pool_size gauge
pulselog_pool_size 16
# HELP pulselog_pool_free Buffers currently available for acquisition.
# TYPE pulselog_pool_free gauge
pulselog_pool_free 10
# HELP pulselog_queue_depth Records enqueued and not yet processed by the worker.
# TYPE pulselog_queue_depth gauge
pulselog_queue_depth 3
`), "pulselog_pool_size", "pulselog_pool_free", "pulselog_queue_depth"); err != nil {
		t.Fatal(err)
	}

	if n := testutil.CollectAndCount(c); n == 0 {
		t.Fatalf("expected at least one metric family")
	}
}

func TestAppenderLabelFallsBackToPosition(t *testing.T) {
	if got := appenderLabel(2, nil); got != "appender-2" {
		t.Errorf("appenderLabel(2, nil) = %q, want appender-2", got)
	}
	if got := appenderLabel(0, []string{"console"}); got != "console" {
		t.Errorf("appenderLabel(0, [console]) = %q, want console", got)
	}
}
