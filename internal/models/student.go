package models

import "time"

// Student represents a learner enrolled in a cohort
type Student struct {
	ID          string    `json:"_id" bson:"_id,omitempty"`
	FirstName   string    `json:"firstName" bson:"firstName" validate:"required"`
	LastName    string    `json:"lastName" bson:"lastName" validate:"required"`
	Email       string    `json:"email" bson:"email" validate:"required,email"`
	Phone       string    `json:"phone" bson:"phone"`
	LinkedinURL string    `json:"linkedinUrl" bson:"linkedinUrl" validate:"omitempty,url"`
	Languages   []string  `json:"languages" bson:"languages"`
	Program     string    `json:"program" bson:"program"`
	Background  string    `json:"background" bson:"background"`
	Image       string    `json:"image" bson:"image"`
	Projects    []string  `json:"projects" bson:"projects"`
	Cohort      string    `json:"cohort" bson:"cohort" validate:"required"` // Cohort identifier
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
