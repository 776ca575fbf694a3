package models

import "time"

type Service struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	OfficeID          uint   `gorm:"column:office_id;index" json:"office_id"`
	Name              string `gorm:"size:255" json:"name"`
	AvgProcessingTime int    `gorm:"column:avg_processing_time" json:"avg_processing_time"`
}

type DepartmentService struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	DepartmentID uint   `gorm:"column:department_id;index" json:"department_id"`
	ServiceName  string `gorm:"column:service_name;size:255" json:"service_name"`
}

type Counter struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	OfficeID uint   `gorm:"column:office_id;index" json:"office_id"`
	Name     string `gorm:"size:255" json:"name"`
	Status   string `gorm:"size:32;default:CLOSED" json:"status"`
}

type ServiceQueueEntry struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ServiceID    uint   `gorm:"column:service_id;index" json:"service_id"`
	UserID       uint   `gorm:"column:user_id;index" json:"user_id"`
	TicketNumber string `gorm:"column:ticket_number;size:64" json:"ticket_number"`
	Status       string `gorm:"size:32;default:WAITING" json:"status"`
}

type QueueTicket struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TicketCode string    `gorm:"column:ticket_code;size:64" json:"ticket_code"`
	IssuedAt   time.Time `gorm:"column:issued_at" json:"issued_at"`
}
