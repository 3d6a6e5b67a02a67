package org

import "time"

type Employee struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	DepartmentID *int64    `gorm:"column:department_id"`
	Role         string    `gorm:"column:role;default:member;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt    time.Time `gorm:"column:updated_at;default:now()"`
}

func (Employee) TableName() string {
	return "employees"
}

type Department struct {
	ID              int64     `gorm:"primaryKey"`
	Name            string    `gorm:"column:name;uniqueIndex;not null"`
	ManagerID       *int64    `gorm:"column:manager_id"`
	DeputyManagerID *int64    `gorm:"column:deputy_manager_id"`
	CreatedAt       time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt       time.Time `gorm:"column:updated_at;default:now()"`
}

func (Department) TableName() string {
	return "departments"
}
