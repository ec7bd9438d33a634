package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// GormLogger adapts zap to gorm's logger.Interface. Queries log at Debug,
// slow queries at Warn, failed queries at Error. Record-not-found errors
// are not logged since callers handle them as a normal outcome.
type GormLogger struct {
	base          *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger creates a gorm logger writing through the given zap logger.
func NewGormLogger(zapLogger *zap.Logger, level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{
		base:          zapLogger.Named("gorm"),
		level:         level,
		slowThreshold: defaultSlowThreshold,
	}
}

// SlowThreshold overrides the elapsed time above which queries log as slow.
// Zero disables slow query logging.
func (l *GormLogger) SlowThreshold(d time.Duration) *GormLogger {
	l.slowThreshold = d
	return l
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) printf(min gormlogger.LogLevel, log func(string, ...any), msg string, data []any) {
	if l.level >= min {
		log(msg, data...)
	}
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(gormlogger.Info, l.base.Sugar().Infof, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(gormlogger.Warn, l.base.Sugar().Warnf, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(gormlogger.Error, l.base.Sugar().Errorf, msg, data)
}

// Trace implements gormlogger.Interface
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if id := GetRequestID(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}

	switch {
	case err != nil && l.level >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		l.base.Error("query failed", append(fields, zap.Error(err))...)
	case l.slowThreshold > 0 && elapsed >= l.slowThreshold && l.level >= gormlogger.Warn:
		l.base.Warn("slow query", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	case l.level >= gormlogger.Info:
		l.base.Debug("query", fields...)
	}
}

var gormLevels = map[string]gormlogger.LogLevel{
	"silent": gormlogger.Silent,
	"error":  gormlogger.Error,
	"warn":   gormlogger.Warn,
	"info":   gormlogger.Info,
	"debug":  gormlogger.Info,
}

// MapGormLogLevel maps the application log level to a gorm log level.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	if lvl, ok := gormLevels[level]; ok {
		return lvl
	}
	return gormlogger.Warn
}
