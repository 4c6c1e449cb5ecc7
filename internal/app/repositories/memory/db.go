// Package memory is an in-process store satisfying the repository interfaces.
// It enforces the same foreign keys, uniqueness rules, enumerations and
// counter maintenance as the PostgreSQL schema.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
)

// DB holds every table behind one lock, so counter updates commit together
// with the rows that drive them.
type DB struct {
	mu    sync.RWMutex
	clock helpers.Clock

	universities map[string]*models.University
	departments  map[string]*models.Department
	profiles     map[string]*models.Profile
	clubs        map[string]*models.Club
	memberships  map[string]*models.ClubMembership
	posts        map[string]*models.Post
	likes        map[string]*models.PostLike
	comments     map[string]*models.Comment
	events       map[string]*models.Event
	resources    map[string]*models.Resource
	reviews      map[string]*models.CourseReview
}

// Open creates an empty store. A nil clock uses the system clock.
func Open(clock helpers.Clock) *DB {
	if clock == nil {
		clock = helpers.SystemClock
	}
	return &DB{
		clock:        clock,
		universities: make(map[string]*models.University),
		departments:  make(map[string]*models.Department),
		profiles:     make(map[string]*models.Profile),
		clubs:        make(map[string]*models.Club),
		memberships:  make(map[string]*models.ClubMembership),
		posts:        make(map[string]*models.Post),
		likes:        make(map[string]*models.PostLike),
		comments:     make(map[string]*models.Comment),
		events:       make(map[string]*models.Event),
		resources:    make(map[string]*models.Resource),
		reviews:      make(map[string]*models.CourseReview),
	}
}

// NewRepositories wires every repository to db.
func NewRepositories(db *DB) *repositories.Repositories {
	return &repositories.Repositories{
		Universities:  NewUniversityRepository(db),
		Profiles:      NewProfileRepository(db),
		Posts:         NewPostRepository(db),
		Clubs:         NewClubRepository(db),
		Events:        NewEventRepository(db),
		Resources:     NewResourceRepository(db),
		CourseReviews: NewCourseReviewRepository(db),
	}
}

// newID returns the caller-supplied id or a fresh one.
func newID(id *string) (string, error) {
	if id == nil {
		return uuid.NewString(), nil
	}
	if _, err := uuid.Parse(*id); err != nil {
		return "", apperrors.NewValidationError("id", fmt.Sprintf("invalid input syntax for type uuid: %q", *id))
	}
	return *id, nil
}

func (db *DB) now() time.Time {
	return db.clock().UTC()
}

// foreignKeyError mirrors the store's message for a dangling reference.
// foreignKeyError mirrors the postgres error for the default <table>_<column>_fkey constraint.
func foreignKeyError(table, column string) error {
	constraint := table + "_" + column + "_fkey"
	return apperrors.NewForeignKeyError(constraint,
		fmt.Sprintf("insert or update on table %q violates foreign key constraint %q", table, constraint))
}

// pageOf returns one page of items and the total before paging. Like a
// window count, the total is 0 when the page holds no rows.
func pageOf[T any](items []T, page models.Page) ([]T, int64) {
	start, end := helpers.CalculateSliceIndices(page.Page, page.Size, len(items))
	if start >= end {
		return []T{}, 0
	}
	return append([]T{}, items[start:end]...), int64(len(items))
}

// newestFirst orders by created time descending, then id descending.
func newestFirst[T any](items []T, created func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) > id(items[j])
	})
}

func stringPtr(s string) *string {
	return &s
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string{}, s...)
}
