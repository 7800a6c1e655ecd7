package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/gohmm/pkg/errors"
)

// TestTestLoggerLevels tests level filtering and structured fields
func TestTestLoggerLevels(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelInfo)

	testLogger.Debug("hidden")
	testLogger.Info("decoded", SequenceLengthKey, 3, LogLikelihoodKey, -4.5)
	testLogger.Error("decode failed", fmt.Errorf("boom"), OperationKey, OperationDecode)

	assert.NotEmpty(t, buffer.String())
	assert.False(t, testLogger.ContainsMessage("hidden"))
	assert.True(t, testLogger.ContainsField(SequenceLengthKey, 3.0))
	assert.True(t, testLogger.ContainsField(LogLikelihoodKey, -4.5))
	assert.True(t, testLogger.ContainsField(ErrAttrKey, "boom"))
	assert.True(t, testLogger.ContainsField(OperationKey, OperationDecode))

	ctx := context.Background()
	assert.True(t, testLogger.Enabled(ctx, LevelWarn))
	assert.False(t, testLogger.Enabled(ctx, LevelDebug))
}

func TestTestLoggerWithSharesBuffer(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)
	child := testLogger.With(ModelNameKey, "DiscreteHMM", StatesKey, 2)
	child.Debug("evaluated", LogLikelihoodKey, math.Inf(-1))

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "DiscreteHMM", entries[0][ModelNameKey])
	assert.Equal(t, 2.0, entries[0][StatesKey])
	assert.Equal(t, "-Inf", entries[0][LogLikelihoodKey])
}

func TestZerologLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelInfo)

	logger.Debug("not written")
	logger.With(ModelIDKey, "abc").Info("generated", StepsKey, 5)
	logger.Warn("impossible", "warning", errors.NewImpossibleSequenceWarning("Evaluate", 4))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "generated", first["message"])
	assert.Equal(t, "abc", first[ModelIDKey])
	assert.Equal(t, 5.0, first[StepsKey])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	warning, ok := second["warning"].(map[string]interface{})
	require.True(t, ok, "typed warnings are logged as objects")
	assert.Equal(t, "ImpossibleSequenceWarning", warning["type"])

	assert.True(t, logger.Enabled(context.Background(), LevelError))
	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
}

func TestZerologLoggerError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(&buf, LevelDebug)
	logger.Error("load failed", errors.NewValidationError("symbols", "must be positive", 0), OperationKey, OperationLoad)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry["error"], "must be positive")
	assert.Equal(t, OperationLoad, entry[OperationKey])
}

func TestProvider(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelWarn)
	SetProvider(provider)
	defer SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelWarn))

	GetLoggerWithName("hmm").Info("dropped")
	SetLevel(LevelInfo)
	GetLoggerWithName("hmm").Info("kept")

	assert.NotContains(t, buffer.String(), "dropped")
	assert.Contains(t, buffer.String(), "kept")
	assert.Contains(t, buffer.String(), `"ml.component":"hmm"`)
}

func TestRouteWarnings(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)
	SetProvider(provider)
	RouteWarnings()
	defer func() {
		errors.SetZerologWarnFunc(nil)
		SetProvider(NewZerologProvider(&bytes.Buffer{}, LevelWarn))
	}()

	errors.Warn(errors.NewRenormalizationWarning("emissions", 0, 0.999999))
	assert.Contains(t, buffer.String(), "emissions row 0")
	assert.Contains(t, buffer.String(), "RenormalizationWarning")
}

func TestToLogLevel(t *testing.T) {
	for name, want := range map[string]Level{"debug": LevelDebug, "INFO": LevelInfo, "warn": LevelWarn, "error": LevelError} {
		got, err := ToLogLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ToLogLevel("verbose")
	assert.Error(t, err)
}

// TestConcurrentLogging tests thread safety of the test logger
func TestConcurrentLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	const goroutines, perGoroutine = 4, 25
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger := testLogger.With("worker", id)
			for j := 0; j < perGoroutine; j++ {
				logger.Info("evaluated", SequenceLengthKey, j)
			}
		}(i)
	}
	wg.Wait()

	entries, err := testLogger.GetLogEntries()
	require.NoError(t, err)
	assert.Len(t, entries, goroutines*perGoroutine)
}

func BenchmarkZerologLogger(b *testing.B) {
	logger := NewZerologLogger(&bytes.Buffer{}, LevelInfo).With(ModelNameKey, "DiscreteHMM")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("evaluated", SequenceLengthKey, i, LogLikelihoodKey, -1.5)
	}
}
