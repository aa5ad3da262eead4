package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := newGormLogger(zap.New(core))
	query := func() (string, int64) { return "SELECT 1", 0 }

	l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	require.Zero(t, logs.Len())

	l.Trace(context.Background(), time.Now(), query, errors.New("connection reset"))
	require.Equal(t, 1, logs.Len())
	require.Contains(t, logs.All()[0].Message, "connection reset")
	require.Equal(t, "gorm", logs.All()[0].LoggerName)
}
