package models

import (
	"time"

	"gorm.io/datatypes"
)

type Equipment struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:255" json:"name"`
	SerialNumber string `gorm:"column:serial_number;size:128" json:"serial_number"`
	Status       string `gorm:"size:32;default:AVAILABLE" json:"status"`
}

type BorrowingLog struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"column:user_id;index" json:"user_id"`
	EquipmentID uint       `gorm:"column:equipment_id;index" json:"equipment_id"`
	BorrowedAt  time.Time  `gorm:"column:borrowed_at" json:"borrowed_at"`
	ReturnedAt  *time.Time `gorm:"column:returned_at" json:"returned_at,omitempty"`
}

type MaintenanceLog struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Description string `gorm:"type:text" json:"description"`
	Status      string `gorm:"size:32" json:"status"`
}

type MaintenanceReport struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ReportData  datatypes.JSON `gorm:"column:report_data" json:"report_data"`
	GeneratedAt time.Time      `gorm:"column:generated_at" json:"generated_at"`
}

type Payment struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Amount float64 `gorm:"type:decimal(10,2)" json:"amount"`
	Status string  `gorm:"size:32" json:"status"`
}

type OtpLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;index" json:"user_id"`
	OtpCode   string    `gorm:"column:otp_code;size:16" json:"otp_code"`
	ExpiresAt time.Time `gorm:"column:expires_at" json:"expires_at"`
}
