package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	ViolationTabSwitch  = "tab_switch"
	ViolationCopyPaste  = "copy_paste"
	ViolationRightClick = "right_click"
	ViolationWindowBlur = "window_blur"
)

// AttemptViolation is one proctoring event logged during an attempt. The log
// is append-only and informative: the server never terminates an attempt
// because of it.
type AttemptViolation struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	AttemptID  uint           `json:"attempt_id" gorm:"not null;index"`
	Type       string         `json:"type" gorm:"not null"`
	Details    string         `json:"details,omitempty" gorm:"type:text"`
	OccurredAt time.Time      `json:"occurred_at"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
