package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/uniconnect/internal/app/models"
	appRepos "github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
)

// Fixed ids so the demo accounts line up with identity provider test users.
const (
	DemoStudentID = "00000000-0000-4000-8000-000000000001"
	DemoFacultyID = "00000000-0000-4000-8000-000000000002"
)

// CreateDefaultData fills an empty store with one university and enough
// clubs, events, posts and resources to exercise every page. It does nothing
// when a university already exists.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, clock helpers.Clock, lgr zerolog.Logger) error {
	if clock == nil {
		clock = helpers.SystemClock
	}

	existing, err := repos.Universities.ListUniversities(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing universities: %w", err)
	}
	if len(existing) > 0 {
		lgr.Info().Int("universities", len(existing)).Msg("Store already has data, skipping seed")
		return nil
	}

	lgr.Info().Msg("Creating default data...")
	now := clock()

	university, err := repos.Universities.CreateUniversity(ctx, models.UniversityInsert{
		Name:     "Metropolitan Technical University",
		Location: "Istanbul",
	})
	if err != nil {
		return fmt.Errorf("failed to create university: %w", err)
	}

	compEng, err := repos.Universities.CreateDepartment(ctx, models.DepartmentInsert{Name: "Computer Engineering", UniversityID: university.ID})
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	physics, err := repos.Universities.CreateDepartment(ctx, models.DepartmentInsert{Name: "Physics", UniversityID: university.ID})
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}

	student, err := repos.Profiles.CreateProfile(ctx, models.ProfileInsert{
		ID:           DemoStudentID,
		FullName:     "Deniz Aksoy",
		Role:         helpers.Ptr(models.RoleStudent),
		DepartmentID: &compEng.ID,
		Bio:          helpers.Ptr("Third year, into distributed systems."),
		Skills:       []string{"Go", "PostgreSQL"},
		Interests:    []string{"Robotics", "Chess"},
		Year:         helpers.Ptr(3),
	})
	if err != nil {
		return fmt.Errorf("failed to create demo student: %w", err)
	}
	lecturer, err := repos.Profiles.CreateProfile(ctx, models.ProfileInsert{
		ID:           DemoFacultyID,
		FullName:     "Selin Demir",
		Role:         helpers.Ptr(models.RoleFaculty),
		DepartmentID: &physics.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to create demo lecturer: %w", err)
	}

	// Past this point a failed row is logged and the rest is still attempted.
	var finalErr error
	record := func(what string, err error) {
		if err != nil {
			lgr.Error().Err(err).Str("item", what).Msg("Error creating default data")
			finalErr = errors.Join(finalErr, err)
		}
	}

	robotics, err := repos.Clubs.CreateClub(ctx, models.ClubInsert{
		Name:         "Robotics Club",
		UniversityID: university.ID,
		Description:  helpers.Ptr("Build, break and rebuild robots every Thursday."),
	})
	record("robotics club", err)
	_, err = repos.Clubs.CreateClub(ctx, models.ClubInsert{Name: "Chess Society", UniversityID: university.ID})
	record("chess club", err)

	if robotics != nil {
		_, err = repos.Clubs.JoinClub(ctx, models.ClubMembershipInsert{ClubID: robotics.ID, UserID: student.ID, Role: helpers.Ptr(models.MembershipRoleMember)})
		record("robotics membership", err)

		_, err = repos.Events.CreateEvent(ctx, models.EventInsert{
			ClubID:      robotics.ID,
			Title:       "Line follower workshop",
			Description: helpers.Ptr("Bring a laptop. Parts are provided."),
			EventDate:   now.Add(72 * time.Hour).Truncate(time.Hour),
			Location:    "Lab B-104",
		})
		record("workshop event", err)
		_, err = repos.Events.CreateEvent(ctx, models.EventInsert{
			ClubID:    robotics.ID,
			Title:     "Season kickoff",
			EventDate: now.Add(-48 * time.Hour).Truncate(time.Hour),
			Location:  "Main hall",
		})
		record("past event", err)
	}

	posts := []struct {
		author   string
		category models.PostCategory
		content  string
	}{
		{student.ID, models.CategoryGeneral, "Welcome to UniConnect! Say hi below."},
		{lecturer.ID, models.CategoryAcademics, "Office hours move to Wednesday 14:00 this week."},
		{student.ID, models.CategoryLostFound, "Found a blue water bottle in the library, second floor."},
	}
	for i, p := range posts {
		category := p.category
		createdAt := now.Add(-time.Duration(len(posts)-i) * time.Hour)
		post, err := repos.Posts.CreatePost(ctx, models.PostInsert{UserID: p.author, Content: p.content, Category: &category, CreatedAt: &createdAt})
		record("post", err)
		if err != nil || i != 0 {
			continue
		}
		_, err = repos.Posts.ToggleLike(ctx, post.ID, lecturer.ID, false)
		record("like", err)
		_, err = repos.Posts.CreateComment(ctx, models.CommentInsert{PostID: post.ID, UserID: lecturer.ID, Text: "Glad to be here."})
		record("comment", err)
	}

	_, err = repos.Resources.CreateResource(ctx, models.ResourceInsert{
		UserID:       student.ID,
		DepartmentID: &compEng.ID,
		CourseCode:   "CENG301",
		Title:        "Operating Systems midterm notes",
		FileURL:      "https://files.example.edu/ceng301/midterm-notes.pdf",
		ResourceType: helpers.Ptr("notes"),
	})
	record("resource", err)

	for _, rating := range []int{5, 4} {
		_, err = repos.CourseReviews.CreateCourseReview(ctx, models.CourseReviewInsert{
			UserID:       student.ID,
			DepartmentID: &compEng.ID,
			CourseCode:   "CENG301",
			Rating:       rating,
		})
		record("course review", err)
	}

	if finalErr == nil {
		lgr.Info().Str("university", university.Name).Msg("Default data created")
	}
	return finalErr
}
