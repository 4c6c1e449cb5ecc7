package models

import "time"

// Resource is a row of resources. Only the file URL is stored.
type Resource struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"userId" db:"user_id"`
	DepartmentID *string   `json:"departmentId,omitempty" db:"department_id"`
	CourseCode   string    `json:"courseCode" db:"course_code"`
	Title        string    `json:"title" db:"title"`
	FileURL      string    `json:"fileUrl" db:"file_url"`
	ResourceType *string   `json:"resourceType,omitempty" db:"resource_type"`
	Downloads    int       `json:"downloads" db:"downloads"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// ResourceInsert creates a resource.
type ResourceInsert struct {
	ID           *string
	UserID       string
	DepartmentID *string
	CourseCode   string
	Title        string
	FileURL      string
	ResourceType *string
}

// Columns returns the columns to insert.
func (i ResourceInsert) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"user_id":     i.UserID,
		"course_code": i.CourseCode,
		"title":       i.Title,
		"file_url":    i.FileURL,
	}
	setColumn(cols, "id", i.ID)
	setColumn(cols, "department_id", i.DepartmentID)
	setColumn(cols, "resource_type", i.ResourceType)
	return cols
}

// ResourceUpdate changes a resource.
type ResourceUpdate struct {
	DepartmentID *string
	CourseCode   *string
	Title        *string
	FileURL      *string
	ResourceType *string
}

// Changes returns the columns to set.
func (u ResourceUpdate) Changes() map[string]interface{} {
	cols := map[string]interface{}{}
	setColumn(cols, "department_id", u.DepartmentID)
	setColumn(cols, "course_code", u.CourseCode)
	setColumn(cols, "title", u.Title)
	setColumn(cols, "file_url", u.FileURL)
	setColumn(cols, "resource_type", u.ResourceType)
	return cols
}

// ResourceWithRelations is a resource joined with its uploader's name and its
// department name. The department join is optional.
type ResourceWithRelations struct {
	Resource
	UploaderName   *string `json:"uploaderName,omitempty" db:"uploader_name"`
	DepartmentName *string `json:"departmentName,omitempty" db:"department_name"`
}
