package goroutine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reliefops/cva/internal/shared/logger"
)

type recordingLogger struct {
	logger.Interface
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Errorw(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func TestRun_RecoversPanic(t *testing.T) {
	log := &recordingLogger{Interface: logger.NewNopLogger()}

	assert.NotPanics(t, func() {
		Run(log, "closure-report", func() { panic("smtp down") })
	})
	assert.Equal(t, []string{"goroutine panicked"}, log.errors)
}

func TestSafeGo_RunsFunction(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	done := false

	SafeGo(logger.NewNopLogger(), "test", func() {
		defer wg.Done()
		done = true
	})
	wg.Wait()

	assert.True(t, done)
}
