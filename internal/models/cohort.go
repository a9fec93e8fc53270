package models

import "time"

// Cohort represents a program run that students belong to
type Cohort struct {
	ID             string     `json:"_id" bson:"_id,omitempty"`
	CohortSlug     string     `json:"cohortSlug" bson:"cohortSlug"`
	CohortName     string     `json:"cohortName" bson:"cohortName" validate:"required"`
	Program        string     `json:"program" bson:"program" validate:"omitempty,oneof='Web Dev' 'UX/UI' 'Data Analytics' 'Cybersecurity'"`
	Format         string     `json:"format" bson:"format" validate:"omitempty,oneof='Full Time' 'Part Time'"`
	Campus         string     `json:"campus" bson:"campus"`
	StartDate      *time.Time `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
	InProgress     bool       `json:"inProgress" bson:"inProgress"`
	ProgramManager string     `json:"programManager" bson:"programManager"`
	LeadTeacher    string     `json:"leadTeacher" bson:"leadTeacher"`
	TotalHours     int        `json:"totalHours" bson:"totalHours" validate:"gte=0"`
	CreatedAt      time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt" bson:"updatedAt"`
}
