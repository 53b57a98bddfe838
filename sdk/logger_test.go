package sdk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestLoggerFrom(t *testing.T) {
	t.Parallel()

	logger := zaptest.NewLogger(t).Sugar()
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, LoggerFrom(ctx))
}

func TestLoggerFrom_Fallback(t *testing.T) {
	t.Parallel()

	got := LoggerFrom(context.Background())

	assert.IsType(t, &zap.SugaredLogger{}, got)
}
