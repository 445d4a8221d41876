package staff

import "time"

// Permission is the access tier attached to a job type. Higher levels unlock
// more restricted views.
type Permission struct {
	JobTypeCode string `json:"jobTypeCode"`
	JobTypeName string `json:"jobTypeName"`
	Level       int    `json:"level"`
}

// Staff is a staff member joined to the permission of their job type.
type Staff struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	JobTypeCode string     `json:"jobTypeCode"`
	Permission  Permission `json:"permission"`
	CreatedAt   time.Time  `json:"createdAt"`
}
