package models

import (
	"fmt"
	"strings"

	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// PostCategory is the closed post_category enumeration.
type PostCategory string

const (
	CategoryEvents    PostCategory = "events"
	CategoryAcademics PostCategory = "academics"
	CategoryLostFound PostCategory = "lost_found"
	CategoryBuySell   PostCategory = "buy_sell"
	CategoryGeneral   PostCategory = "general"
)

// CategoryAll is the feed tab sentinel meaning "no category filter".
// It is never stored.
const CategoryAll = "all"

// PostCategories lists post_category values in declaration order.
var PostCategories = []PostCategory{
	CategoryEvents,
	CategoryAcademics,
	CategoryLostFound,
	CategoryBuySell,
	CategoryGeneral,
}

var categoryLabels = map[PostCategory]string{
	CategoryEvents:    "Events",
	CategoryAcademics: "Academics",
	CategoryLostFound: "Lost & Found",
	CategoryBuySell:   "Buy/Sell",
	CategoryGeneral:   "General",
}

// Valid reports whether c is a member of post_category.
func (c PostCategory) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label for selection widgets.
func (c PostCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParsePostCategory accepts only post_category members.
func ParsePostCategory(s string) (PostCategory, error) {
	c := PostCategory(strings.TrimSpace(s))
	if !c.Valid() {
		return "", apperrors.NewValidationError("category", fmt.Sprintf("unknown post category %q", s))
	}
	return c, nil
}

// ParseCategoryFilter parses a feed tab value. "all" and the empty string
// yield a nil filter.
func ParseCategoryFilter(s string) (*PostCategory, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == CategoryAll {
		return nil, nil
	}
	c, err := ParsePostCategory(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UserRole is the closed user_role enumeration.
type UserRole string

const (
	RoleStudent   UserRole = "student"
	RoleFaculty   UserRole = "faculty"
	RoleClubAdmin UserRole = "club_admin"
)

// UserRoles lists user_role values in declaration order.
var UserRoles = []UserRole{RoleStudent, RoleFaculty, RoleClubAdmin}

var roleLabels = map[UserRole]string{
	RoleStudent:   "Student",
	RoleFaculty:   "Faculty",
	RoleClubAdmin: "Club Admin",
}

// Valid reports whether r is a member of user_role.
func (r UserRole) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the display label for selection widgets.
func (r UserRole) Label() string {
	if label, ok := roleLabels[r]; ok {
		return label
	}
	return string(r)
}

// ParseUserRole accepts only user_role members.
func ParseUserRole(s string) (UserRole, error) {
	r := UserRole(strings.TrimSpace(s))
	if !r.Valid() {
		return "", apperrors.NewValidationError("role", fmt.Sprintf("unknown user role %q", s))
	}
	return r, nil
}

// PostCategoryValues returns the enumeration as strings, for validators and DDL checks.
func PostCategoryValues() []string {
	values := make([]string, len(PostCategories))
	for i, c := range PostCategories {
		values[i] = string(c)
	}
	return values
}

// UserRoleValues returns the enumeration as strings.
func UserRoleValues() []string {
	values := make([]string, len(UserRoles))
	for i, r := range UserRoles {
		values[i] = string(r)
	}
	return values
}

// Page selects one 1-based page of a list query.
type Page struct {
	Page int
	Size int
}
