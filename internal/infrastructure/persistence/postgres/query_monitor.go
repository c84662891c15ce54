package postgres

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const monitorStartKey = "query_monitor:start"

// QueryMonitor tracks query timings through GORM callbacks
type QueryMonitor struct {
	logger        *zap.Logger
	slowThreshold time.Duration
	mu            sync.RWMutex
	stats         QueryStats
}

// QueryStats holds aggregated query statistics
type QueryStats struct {
	TotalQueries     int64         `json:"total_queries"`
	SlowQueries      int64         `json:"slow_queries"`
	FailedQueries    int64         `json:"failed_queries"`
	AverageQueryTime time.Duration `json:"average_query_time"`
	TotalQueryTime   time.Duration `json:"total_query_time"`
}

// NewQueryMonitor creates a new query monitor
func NewQueryMonitor(logger *zap.Logger, slowThreshold time.Duration) *QueryMonitor {
	return &QueryMonitor{
		logger:        logger,
		slowThreshold: slowThreshold,
	}
}

// Install registers the monitor on db's query callbacks
func (qm *QueryMonitor) Install(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("monitor:before", qm.BeforeQuery); err != nil {
		return err
	}
	return db.Callback().Query().After("gorm:query").Register("monitor:after", qm.AfterQuery)
}

// BeforeQuery is called before query execution
func (qm *QueryMonitor) BeforeQuery(db *gorm.DB) {
	if db.Statement == nil {
		return
	}
	db.InstanceSet(monitorStartKey, time.Now())
}

// AfterQuery is called after query execution
func (qm *QueryMonitor) AfterQuery(db *gorm.DB) {
	if db.Statement == nil {
		return
	}

	v, ok := db.InstanceGet(monitorStartKey)
	if !ok {
		return
	}
	start, ok := v.(time.Time)
	if !ok {
		return
	}

	qm.recordQuery(db.Statement.Table, db.Statement.SQL.String(), time.Since(start), db.Error)
}

func (qm *QueryMonitor) recordQuery(table, sql string, duration time.Duration, err error) {
	qm.mu.Lock()
	qm.stats.TotalQueries++
	qm.stats.TotalQueryTime += duration
	qm.stats.AverageQueryTime = qm.stats.TotalQueryTime / time.Duration(qm.stats.TotalQueries)
	if err != nil && err != gorm.ErrRecordNotFound {
		qm.stats.FailedQueries++
	}
	slow := qm.slowThreshold > 0 && duration > qm.slowThreshold
	if slow {
		qm.stats.SlowQueries++
	}
	qm.mu.Unlock()

	if slow {
		qm.logger.Warn("Slow query",
			zap.String("table", table),
			zap.String("sql", sanitizeSQL(sql)),
			zap.Duration("duration", duration),
		)
	}
}

// Stats returns a snapshot of the aggregated statistics
func (qm *QueryMonitor) Stats() QueryStats {
	qm.mu.RLock()
	defer qm.mu.RUnlock()
	return qm.stats
}

func sanitizeSQL(sql string) string {
	sql = strings.Join(strings.Fields(sql), " ")
	if len(sql) > 500 {
		sql = sql[:500] + "..."
	}
	return sql
}

// GORMLogWriter implements GORM's Writer interface for query logging
type GORMLogWriter struct {
	logger *zap.Logger
}

// Printf implements the Writer interface
func (w *GORMLogWriter) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	// Log based on content
	if strings.Contains(msg, "SLOW SQL") {
		w.logger.Warn("GORM slow query", zap.String("message", msg))
	} else if strings.Contains(msg, "ERROR") {
		w.logger.Error("GORM error", zap.String("message", msg))
	} else {
		w.logger.Debug("GORM log", zap.String("message", msg))
	}
}
