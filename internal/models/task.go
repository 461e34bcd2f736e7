package model

import "time"

type Task struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:20;not null" json:"name"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	Version   uint      `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskPatch holds the fields of a partial update; nil fields are left untouched.
type TaskPatch struct {
	Name      *string
	Completed *bool
}

func (p TaskPatch) Apply(task *Task) {
	if p.Name != nil {
		task.Name = *p.Name
	}
	if p.Completed != nil {
		task.Completed = *p.Completed
	}
}
