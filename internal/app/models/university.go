package models

import "time"

// University is a row of universities.
type University struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Location  string    `json:"location" db:"location"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// UniversityInsert creates a university.
type UniversityInsert struct {
	ID       *string
	Name     string
	Location string
}

// Columns returns the columns to insert; unset optional fields keep their defaults.
func (i UniversityInsert) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"name":     i.Name,
		"location": i.Location,
	}
	setColumn(cols, "id", i.ID)
	return cols
}

// UniversityUpdate changes a university.
type UniversityUpdate struct {
	Name     *string
	Location *string
}

// Changes returns the columns to set.
func (u UniversityUpdate) Changes() map[string]interface{} {
	cols := map[string]interface{}{}
	setColumn(cols, "name", u.Name)
	setColumn(cols, "location", u.Location)
	return cols
}

// Department is a row of departments.
type Department struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	UniversityID string    `json:"universityId" db:"university_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// DepartmentInsert creates a department.
type DepartmentInsert struct {
	ID           *string
	Name         string
	UniversityID string
}

// Columns returns the columns to insert.
func (i DepartmentInsert) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"name":          i.Name,
		"university_id": i.UniversityID,
	}
	setColumn(cols, "id", i.ID)
	return cols
}

// DepartmentUpdate changes a department.
type DepartmentUpdate struct {
	Name         *string
	UniversityID *string
}

// Changes returns the columns to set.
func (u DepartmentUpdate) Changes() map[string]interface{} {
	cols := map[string]interface{}{}
	setColumn(cols, "name", u.Name)
	setColumn(cols, "university_id", u.UniversityID)
	return cols
}
