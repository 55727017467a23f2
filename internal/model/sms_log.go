package model

import "time"

type SMSStatus string

const (
	SMSStatusSuccess SMSStatus = "SUCCESS"
	SMSStatusFailed  SMSStatus = "FAILED"
)

func (s SMSStatus) Valid() bool {
	return s == SMSStatusSuccess || s == SMSStatusFailed
}

type SMSLog struct {
	ID        string    `gorm:"primaryKey;size:36"`
	To        string    `gorm:"column:to;size:50;not null"`
	Body      string    `gorm:"type:text;not null"`
	Status    SMSStatus `gorm:"size:20;not null"`
	Timestamp time.Time `gorm:"index"`
	Error     string    `gorm:"type:text"`
}

func (SMSLog) TableName() string { return "sms_logs" }
