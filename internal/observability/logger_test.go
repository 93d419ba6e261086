package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitWritesJSONWithRequestID(t *testing.T) {
	defer SetLogger(zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, Init(Options{Level: "debug", Writer: &buf}))

	ctx := WithRequestID(context.Background(), "req-42")
	assert.Equal(t, "req-42", RequestID(ctx))
	LoggerFromContext(ctx).Info("hello", zap.String("k", "v"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "req-42", line["request_id"])
	assert.Equal(t, "v", line["k"])
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Init(Options{Level: "chatty"}))
}

func TestGoRecoversPanics(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	SetLogger(zap.New(core))
	defer SetLogger(zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(1)
	Go("test", func() {
		defer wg.Done()
		panic("boom")
	})
	wg.Wait()

	assert.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 5*time.Millisecond)
	entry := logs.All()[0]
	assert.Equal(t, "panic recovered", entry.Message)
	assert.Equal(t, "test", entry.ContextMap()["component"])
}
