package models

import "time"

// Club is a row of clubs. MemberCount is maintained by the store.
type Club struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	UniversityID string    `json:"universityId" db:"university_id"`
	Description  *string   `json:"description,omitempty" db:"description"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	MemberCount  int       `json:"memberCount" db:"member_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// ClubInsert creates a club.
type ClubInsert struct {
	ID           *string
	Name         string
	UniversityID string
	Description  *string
	AvatarURL    *string
}

// Columns returns the columns to insert.
func (i ClubInsert) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"name":          i.Name,
		"university_id": i.UniversityID,
	}
	setColumn(cols, "id", i.ID)
	setColumn(cols, "description", i.Description)
	setColumn(cols, "avatar_url", i.AvatarURL)
	return cols
}

// ClubUpdate changes a club.
type ClubUpdate struct {
	Name         *string
	UniversityID *string
	Description  *string
	AvatarURL    *string
}

// Changes returns the columns to set.
func (u ClubUpdate) Changes() map[string]interface{} {
	cols := map[string]interface{}{}
	setColumn(cols, "name", u.Name)
	setColumn(cols, "university_id", u.UniversityID)
	setColumn(cols, "description", u.Description)
	setColumn(cols, "avatar_url", u.AvatarURL)
	return cols
}

// ClubWithUniversity is a club joined with its university name.
type ClubWithUniversity struct {
	Club
	UniversityName *string `json:"universityName,omitempty" db:"university_name"`
}

// MembershipRoleMember is the role given to self-service joins. Other
// membership roles are assigned by club officers outside the API.
const MembershipRoleMember = "member"

// ClubMembership is a row of club_memberships.
type ClubMembership struct {
	ID       string    `json:"id" db:"id"`
	ClubID   string    `json:"clubId" db:"club_id"`
	UserID   string    `json:"userId" db:"user_id"`
	Role     *string   `json:"role,omitempty" db:"role"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}

// ClubMembershipInsert creates a membership.
type ClubMembershipInsert struct {
	ID     *string
	ClubID string
	UserID string
	Role   *string
}

// Columns returns the columns to insert.
func (i ClubMembershipInsert) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"club_id": i.ClubID,
		"user_id": i.UserID,
	}
	setColumn(cols, "id", i.ID)
	setColumn(cols, "role", i.Role)
	return cols
}

// ClubMembershipUpdate changes a membership.
type ClubMembershipUpdate struct {
	Role *string
}

// Changes returns the columns to set.
func (u ClubMembershipUpdate) Changes() map[string]interface{} {
	cols := map[string]interface{}{}
	setColumn(cols, "role", u.Role)
	return cols
}

// ClubMember is a membership joined with the member's profile.
type ClubMember struct {
	ClubMembership
	FullName  *string   `json:"fullName,omitempty" db:"full_name"`
	AvatarURL *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	UserRole  *UserRole `json:"userRole,omitempty" db:"user_role"`
}
