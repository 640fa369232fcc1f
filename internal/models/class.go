package models

import "time"

// Class is a named roster bucket. Students reference it by name only, so
// deleting a class leaves its students' ClassName dangling on purpose.
type Class struct {
	Name      string    `json:"name" gorm:"primaryKey;size:100" validate:"required,min=1,max=100"`
	CreatedAt time.Time `json:"created_at"`
}

func (Class) TableName() string {
	return "classes"
}
