package database

import (
	"time"

	"gorm.io/gorm"
)

const queryStartKey = "metrics:start_time"

// MetricsRecorder receives query timings and pool stats from the database
// layer. Satisfied by *metrics.Metrics; kept as an interface so the callbacks
// stay testable without a registry.
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// RegisterMetricsCallbacks hooks query timing into every GORM operation
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	db.Callback().Query().Before("gorm:query").Register("metrics:select_before", startTimer)
	db.Callback().Query().After("gorm:query").Register("metrics:select_after", stopTimer("select", recorder))

	db.Callback().Create().Before("gorm:create").Register("metrics:insert_before", startTimer)
	db.Callback().Create().After("gorm:create").Register("metrics:insert_after", stopTimer("insert", recorder))

	db.Callback().Update().Before("gorm:update").Register("metrics:update_before", startTimer)
	db.Callback().Update().After("gorm:update").Register("metrics:update_after", stopTimer("update", recorder))

	db.Callback().Delete().Before("gorm:delete").Register("metrics:delete_before", startTimer)
	db.Callback().Delete().After("gorm:delete").Register("metrics:delete_after", stopTimer("delete", recorder))
}

func startTimer(db *gorm.DB) {
	db.InstanceSet(queryStartKey, time.Now())
}

func stopTimer(operation string, recorder MetricsRecorder) func(*gorm.DB) {
	return func(db *gorm.DB) {
		start, ok := db.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		table := db.Statement.Table
		if table == "" {
			table = "unknown"
		}
		recorder.RecordDBQuery(operation, table, time.Since(start.(time.Time)), db.Error)
	}
}

// StartDBStatsCollector polls connection pool stats every 15 seconds until
// the returned channel is closed
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
