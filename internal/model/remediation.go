package model

import (
	"time"

	"gorm.io/datatypes"
)

// Remediation causes.
const (
	CauseAPILabelMismatch = "mismatch to api label" // catalog answered with something that is not a drink list
	CauseNoDrinks         = "no drinks for category"
	CauseLookupTimeout    = "catalog lookup timed out"
	CauseLookupFailed     = "catalog lookup failed"
	CauseUnmatchedDrink   = "drink not in catalog"
	CauseNonNumericStock  = "non-numeric stock"
)

// Remediation is a data-quality or integration problem left for an operator to fix by hand.
type Remediation struct {
	RunID     string         `gorm:"column:run_id;type:varchar(64);primaryKey" json:"run_id"`
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement:false" json:"id"` // 1..n within a run
	Key       string         `gorm:"column:key_error;type:varchar(255);not null" json:"key_error"`
	Cause     string         `gorm:"column:error_type;type:varchar(64);not null" json:"error_type"`
	Source    string         `gorm:"column:source;type:varchar(255);not null" json:"source"`
	Detail    datatypes.JSON `gorm:"column:detail" json:"detail,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (Remediation) TableName() string { return "remediations" }
