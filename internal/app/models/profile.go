package models

import "time"

// Profile is a row of profiles. Its id is the identity provider's user id.
// PostCount is maintained by the store.
type Profile struct {
	ID           string    `json:"id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Role         UserRole  `json:"role" db:"role"`
	DepartmentID *string   `json:"departmentId,omitempty" db:"department_id"`
	Bio          *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	Skills       []string  `json:"skills" db:"skills"`
	Interests    []string  `json:"interests" db:"interests"`
	PostCount    int       `json:"postCount" db:"post_count"`
	Year         *int      `json:"year,omitempty" db:"year"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// ProfileInsert creates a profile alongside a provider identity.
type ProfileInsert struct {
	ID           string
	FullName     string
	Role         *UserRole
	DepartmentID *string
	Bio          *string
	AvatarURL    *string
	Skills       []string
	Interests    []string
	Year         *int
}

// Columns returns the columns to insert.
func (i ProfileInsert) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"id":        i.ID,
		"full_name": i.FullName,
	}
	setColumn(cols, "role", i.Role)
	setColumn(cols, "department_id", i.DepartmentID)
	setColumn(cols, "bio", i.Bio)
	setColumn(cols, "avatar_url", i.AvatarURL)
	setColumn(cols, "year", i.Year)
	if i.Skills != nil {
		cols["skills"] = i.Skills
	}
	if i.Interests != nil {
		cols["interests"] = i.Interests
	}
	return cols
}

// ProfileUpdate changes the editable profile fields.
type ProfileUpdate struct {
	FullName     *string   `json:"fullName"`
	Role         *UserRole `json:"role"`
	DepartmentID *string   `json:"departmentId"`
	Bio          *string   `json:"bio"`
	AvatarURL    *string   `json:"avatarUrl"`
	Skills       *[]string `json:"skills"`
	Interests    *[]string `json:"interests"`
	Year         *int      `json:"year"`
}

// Changes returns the columns to set.
func (u ProfileUpdate) Changes() map[string]interface{} {
	cols := map[string]interface{}{}
	setColumn(cols, "full_name", u.FullName)
	setColumn(cols, "role", u.Role)
	setColumn(cols, "department_id", u.DepartmentID)
	setColumn(cols, "bio", u.Bio)
	setColumn(cols, "avatar_url", u.AvatarURL)
	setColumn(cols, "skills", u.Skills)
	setColumn(cols, "interests", u.Interests)
	setColumn(cols, "year", u.Year)
	return cols
}

// Empty reports whether the update sets nothing.
func (u ProfileUpdate) Empty() bool {
	return len(u.Changes()) == 0
}

// ProfileWithDepartment is a profile joined with its department and the
// department's university. Both joins are optional.
type ProfileWithDepartment struct {
	Profile
	DepartmentName *string `json:"departmentName,omitempty" db:"department_name"`
	UniversityName *string `json:"universityName,omitempty" db:"university_name"`
}
