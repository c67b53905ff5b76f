package logging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's query and error logs through zerolog.
type GormLogger struct {
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

// NewGormLogger logs errors and queries slower than 200ms.
func NewGormLogger() *GormLogger {
	return &GormLogger{Level: gormlogger.Warn, SlowThreshold: 200 * time.Millisecond}
}

func (g *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.Level = level
	return &clone
}

func (g *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if g.Level >= gormlogger.Info {
		Ctx(ctx).Info().Msg(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if g.Level >= gormlogger.Warn {
		Ctx(ctx).Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

func (g *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if g.Level >= gormlogger.Error {
		Ctx(ctx).Error().Msg(fmt.Sprintf(msg, args...))
	}
}

// Trace is called after every statement. Record-not-found is an expected
// outcome for lookups and is not logged as an error.
func (g *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && g.Level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		Ctx(ctx).Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case g.SlowThreshold > 0 && elapsed > g.SlowThreshold && g.Level >= gormlogger.Warn:
		sql, rows := fc()
		Ctx(ctx).Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	case g.Level >= gormlogger.Info:
		sql, rows := fc()
		Ctx(ctx).Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
