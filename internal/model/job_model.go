package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
)

// JobTypes lists every accepted job_type, in display order.
var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship}

func (t JobType) Valid() bool {
	for _, v := range JobTypes {
		if t == v {
			return true
		}
	}
	return false
}

type JobPosting struct {
	ID                  uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	JobTitle            string          `gorm:"type:varchar(255);not null;check:job_title <> ''" json:"job_title"`
	CompanyName         string          `gorm:"type:varchar(255);not null;check:company_name <> ''" json:"company_name"`
	Location            string          `gorm:"type:varchar(255);not null;check:location <> ''" json:"location"`
	JobType             JobType         `gorm:"type:varchar(20);not null;check:job_type IN ('Full-time', 'Part-time', 'Contract', 'Internship')" json:"job_type"`
	SalaryRange         *string         `gorm:"type:varchar(100)" json:"salary_range"`
	SalaryMin           *int            `json:"salary_min"`
	SalaryMax           *int            `json:"salary_max"`
	SalaryCurrency      *string         `gorm:"type:varchar(3)" json:"salary_currency"`
	JobDescription      *string         `gorm:"type:text" json:"job_description"`
	Requirements        *string         `gorm:"type:text" json:"requirements"`
	Responsibilities    *string         `gorm:"type:text" json:"responsibilities"`
	ApplicationDeadline *datatypes.Date `gorm:"type:date" json:"application_deadline"`
	CreatedAt           time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func (j *JobPosting) TableName() string {
	return "jobs"
}

// MarshalBinary lets the posting be stored in the cache as JSON.
func (j *JobPosting) MarshalBinary() ([]byte, error) {
	return json.Marshal(j)
}

func (j *JobPosting) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, j)
}
