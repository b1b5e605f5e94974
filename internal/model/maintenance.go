package model

import "time"

// Maintenance run kinds and triggers.
const (
	MaintenanceMonthlyReset = "MONTHLY_RESET"

	MaintenanceTriggerAuto   = "AUTO"
	MaintenanceTriggerManual = "MANUAL"
)

// MaintenanceRun marks one completed maintenance pass. The (run_type, month)
// unique key is what makes repeat invocations in the same month no-ops.
type MaintenanceRun struct {
	RunID           string    `gorm:"type:uuid;primaryKey"                    json:"run_id"`
	RunType         string    `gorm:"type:varchar(30);not null;uniqueIndex:uq_maintenance_type_month" json:"run_type"` // MONTHLY_RESET
	Month           string    `gorm:"type:varchar(7);not null;uniqueIndex:uq_maintenance_type_month"  json:"month"`    // YYYY-MM
	RecordsAffected int       `gorm:"not null;default:0"                      json:"records_affected"`
	TriggeredBy     string    `gorm:"type:varchar(10);not null"               json:"triggered_by"` // AUTO | MANUAL
	RanAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"      json:"ran_at"`
	CreatedAt       time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"      json:"created_at"`
}

func (MaintenanceRun) TableName() string { return "maintenance_runs" }
