package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/app/repositories/memory"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

type world struct {
	repos      *repositories.Repositories
	session    *models.Session
	university *models.University
	department *models.Department
}

// newWorld seeds one university, one department and one student profile.
func newWorld(t *testing.T) world {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositories(memory.Open(testClock))

	u, err := repos.Universities.CreateUniversity(ctx, models.UniversityInsert{Name: "State University", Location: "Springfield"})
	require.NoError(t, err)
	d, err := repos.Universities.CreateDepartment(ctx, models.DepartmentInsert{Name: "Computer Science", UniversityID: u.ID})
	require.NoError(t, err)

	student := models.RoleStudent
	p, err := repos.Profiles.CreateProfile(ctx, models.ProfileInsert{ID: uuid.NewString(), FullName: "Ada Lovelace", Role: &student, DepartmentID: &d.ID})
	require.NoError(t, err)

	return world{
		repos:      repos,
		session:    &models.Session{UserID: p.ID, Email: "ada@example.edu", ExpiresAt: testNow.Add(time.Hour)},
		university: u,
		department: d,
	}
}

func (w world) feed() FeedService {
	return NewFeedService(w.repos.Posts, w.repos.Profiles, testClock, zerolog.Nop())
}

func TestListPostsByCategoryNewestFirst(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	var ids []string
	for i, category := range []models.PostCategory{models.CategoryGeneral, models.CategoryEvents, models.CategoryEvents} {
		at := testNow.Add(time.Duration(i) * time.Minute)
		p, err := w.repos.Posts.CreatePost(ctx, models.PostInsert{UserID: w.session.UserID, Content: "post", Category: &category, CreatedAt: &at})
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	resp, err := w.feed().ListPosts(ctx, w.session, "events", models.Page{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, ids[2], resp.Items[0].ID)
	assert.Equal(t, ids[1], resp.Items[1].ID)
	assert.Equal(t, int64(2), resp.Pagination.TotalItems)

	for _, category := range []string{"all", ""} {
		resp, err = w.feed().ListPosts(ctx, w.session, category, models.Page{})
		require.NoError(t, err)
		assert.Len(t, resp.Items, 3)
	}

	for _, category := range models.PostCategoryValues() {
		resp, err = w.feed().ListPosts(ctx, w.session, category, models.Page{})
		require.NoError(t, err)
		for _, card := range resp.Items {
			assert.Equal(t, category, card.Category)
		}
	}

	_, err = w.feed().ListPosts(ctx, w.session, "memes", models.Page{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestListPostsRequiresSession(t *testing.T) {
	w := newWorld(t)
	_, err := w.feed().ListPosts(context.Background(), nil, "all", models.Page{})
	assert.ErrorIs(t, err, apperrors.ErrAuthRequired)
}

func TestCreatePostTrimsContent(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	card, err := w.feed().CreatePost(ctx, w.session, &dto.CreatePostRequest{Content: "  hello  "})
	require.NoError(t, err)
	assert.Equal(t, "hello", card.Content)
	assert.Equal(t, string(models.CategoryGeneral), card.Category)
	assert.Equal(t, "Ada Lovelace", card.Author.Name)

	rows, _, err := w.repos.Posts.ListPosts(ctx, models.PostFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "hello", rows[0].Content)
}

// countingPosts counts CreatePost round trips.
type countingPosts struct {
	repositories.PostRepository
	calls int
}

func (c *countingPosts) CreatePost(ctx context.Context, insert models.PostInsert) (*models.Post, error) {
	c.calls++
	return c.PostRepository.CreatePost(ctx, insert)
}

func TestCreatePostRejectsBlankWithoutRoundTrip(t *testing.T) {
	w := newWorld(t)
	posts := &countingPosts{PostRepository: w.repos.Posts}
	svc := NewFeedService(posts, w.repos.Profiles, testClock, zerolog.Nop())

	for _, content := range []string{"", "   ", "\n\t"} {
		_, err := svc.CreatePost(context.Background(), w.session, &dto.CreatePostRequest{Content: content})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Equal(t, "content", apperrors.FieldOf(err))
	}
	_, err := svc.CreatePost(context.Background(), w.session, &dto.CreatePostRequest{Content: "x", Category: "memes"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Zero(t, posts.calls)
}

func TestToggleLikeSequence(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	post, err := w.repos.Posts.CreatePost(ctx, models.PostInsert{UserID: w.session.UserID, Content: "hi"})
	require.NoError(t, err)

	svc := w.feed()
	state, err := svc.ToggleLike(ctx, w.session, post.ID, &dto.ToggleLikeRequest{CurrentlyLiked: false, DisplayedLikeCount: 0})
	require.NoError(t, err)
	assert.True(t, state.Liked)
	assert.Equal(t, 1, state.LikeCount)
	assert.False(t, state.Unconfirmed)

	state, err = svc.ToggleLike(ctx, w.session, post.ID, &dto.ToggleLikeRequest{CurrentlyLiked: true, DisplayedLikeCount: 1})
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.Equal(t, 0, state.LikeCount)

	state, err = svc.ToggleLike(ctx, w.session, post.ID, &dto.ToggleLikeRequest{CurrentlyLiked: false, DisplayedLikeCount: 0})
	require.NoError(t, err)
	assert.True(t, state.Liked)

	resp, err := svc.ListPosts(ctx, w.session, "all", models.Page{})
	require.NoError(t, err)
	assert.True(t, resp.Items[0].Liked)
	assert.Equal(t, 1, resp.Items[0].LikeCount)
}

type failingLikes struct {
	repositories.PostRepository
}

func (failingLikes) ToggleLike(context.Context, string, string, bool) (int, error) {
	return 0, &apperrors.StoreError{Op: "post_likes.insert", Code: "42501", Message: "permission denied for table post_likes"}
}

func TestToggleLikeRevertsOnStoreError(t *testing.T) {
	w := newWorld(t)
	svc := NewFeedService(failingLikes{w.repos.Posts}, w.repos.Profiles, testClock, zerolog.Nop())

	state, err := svc.ToggleLike(context.Background(), w.session, uuid.NewString(), &dto.ToggleLikeRequest{CurrentlyLiked: false, DisplayedLikeCount: 4})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrStore))
	assert.Equal(t, "permission denied for table post_likes", err.Error())
	require.NotNil(t, state)
	assert.False(t, state.Liked)
	assert.Equal(t, 4, state.LikeCount)
	assert.False(t, state.Unconfirmed)
}

func TestToggleLikeRejectsMalformedID(t *testing.T) {
	w := newWorld(t)
	_, err := w.feed().ToggleLike(context.Background(), w.session, "not-a-uuid", &dto.ToggleLikeRequest{})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestComments(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	post, err := w.repos.Posts.CreatePost(ctx, models.PostInsert{UserID: w.session.UserID, Content: "hi"})
	require.NoError(t, err)

	_, err = w.feed().CreateComment(ctx, w.session, post.ID, &dto.CreateCommentRequest{Text: "  "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	view, err := w.feed().CreateComment(ctx, w.session, post.ID, &dto.CreateCommentRequest{Text: " nice "})
	require.NoError(t, err)
	assert.Equal(t, "nice", view.Text)
	assert.Equal(t, "Ada Lovelace", view.Author.Name)

	resp, err := w.feed().ListComments(ctx, w.session, post.ID, models.Page{})
	require.NoError(t, err)
	assert.Len(t, resp.Items, 1)
}

func TestCategories(t *testing.T) {
	options := newWorld(t).feed().Categories()
	require.Len(t, options, len(models.PostCategories)+1)
	assert.Equal(t, dto.CategoryOption{Value: "all", Label: "All"}, options[0])
	assert.Equal(t, dto.CategoryOption{Value: "lost_found", Label: "Lost & Found"}, options[3])
}

func TestClubMembership(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	club, err := w.repos.Clubs.CreateClub(ctx, models.ClubInsert{Name: "Chess", UniversityID: w.university.ID})
	require.NoError(t, err)

	svc := NewClubService(w.repos.Clubs, zerolog.Nop())
	membership, err := svc.JoinClub(ctx, w.session, club.ID)
	require.NoError(t, err)
	require.NotNil(t, membership.Role)
	assert.Equal(t, models.MembershipRoleMember, *membership.Role)
	_, err = svc.JoinClub(ctx, w.session, club.ID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	clubs, err := svc.ListClubs(ctx, w.session, models.Page{})
	require.NoError(t, err)
	require.Len(t, clubs.Items, 1)
	assert.Equal(t, 1, clubs.Items[0].MemberCount)
	assert.Equal(t, "No description available", clubs.Items[0].Description)

	members, err := svc.ListMembers(ctx, w.session, club.ID, models.Page{})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", members.Items[0].Name)

	require.NoError(t, svc.LeaveClub(ctx, w.session, club.ID))
	assert.ErrorIs(t, svc.LeaveClub(ctx, w.session, club.ID), apperrors.ErrNotFound)

	_, err = svc.JoinClub(ctx, w.session, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpcomingEventsNeverIncludePast(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	club, err := w.repos.Clubs.CreateClub(ctx, models.ClubInsert{Name: "Chess", UniversityID: w.university.ID})
	require.NoError(t, err)
	for _, offset := range []time.Duration{3 * time.Hour, -time.Second, time.Hour, 0} {
		_, err := w.repos.Events.CreateEvent(ctx, models.EventInsert{ClubID: club.ID, Title: "Meetup", EventDate: testNow.Add(offset), Location: "Hall"})
		require.NoError(t, err)
	}

	resp, err := NewEventService(w.repos.Events, testClock, zerolog.Nop()).ListUpcoming(ctx, w.session, models.Page{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 3)
	for i, card := range resp.Items {
		assert.False(t, card.EventDate.Before(testNow))
		if i > 0 {
			assert.False(t, card.EventDate.Before(resp.Items[i-1].EventDate))
		}
	}
	assert.Equal(t, "Chess", resp.Items[0].ClubName)
	assert.Equal(t, "State University", resp.Items[0].UniversityName)
}

func TestResourceWithoutDepartment(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	svc := NewResourceService(w.repos.Resources, testClock, zerolog.Nop())

	_, err := svc.CreateResource(ctx, w.session, &dto.CreateResourceRequest{CourseCode: "not a code!", Title: "Notes", FileURL: "https://files.example/n.pdf"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	card, err := svc.CreateResource(ctx, w.session, &dto.CreateResourceRequest{CourseCode: "CS101", Title: "Notes", FileURL: "https://files.example/n.pdf"})
	require.NoError(t, err)

	resp, err := svc.ListResources(ctx, w.session, models.Page{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Empty(t, resp.Items[0].DepartmentName)
	assert.Equal(t, "Ada Lovelace", resp.Items[0].UploaderName)

	download, err := svc.RecordDownload(ctx, w.session, card.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, download.Downloads)
}

func TestProfile(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	svc := NewProfileService(w.repos.Profiles, zerolog.Nop())

	view, err := svc.GetOwnProfile(ctx, w.session)
	require.NoError(t, err)
	assert.Equal(t, "No bio yet", view.Bio)
	assert.Equal(t, "Computer Science", view.DepartmentName)
	assert.Equal(t, "State University", view.UniversityName)
	assert.Equal(t, []string{}, view.Skills)

	_, err = svc.GetProfile(ctx, w.session, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	view, err = svc.UpdateProfile(ctx, w.session, &dto.UpdateProfileRequest{
		Bio:    helpers.Ptr("Counting things"),
		Skills: &[]string{"math"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Counting things", view.Bio)
	assert.Equal(t, "Student", view.RoleLabel)
	assert.Equal(t, []string{"math"}, view.Skills)

	board, err := svc.Leaderboard(ctx, w.session, 0)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, 1, board[0].Rank)
}

func TestCourseReviews(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	svc := NewCourseReviewService(w.repos.CourseReviews, zerolog.Nop())

	_, err := svc.CreateReview(ctx, w.session, &dto.CreateCourseReviewRequest{CourseCode: "CS101", Rating: 0})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	for _, rating := range []int{5, 3} {
		_, err := svc.CreateReview(ctx, w.session, &dto.CreateCourseReviewRequest{CourseCode: "CS101", Rating: rating, DepartmentID: &w.department.ID})
		require.NoError(t, err)
	}

	resp, err := svc.ListRatings(ctx, w.session, models.Page{})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 4.0, resp.Items[0].AverageRating)
	assert.Equal(t, int64(2), resp.Items[0].ReviewCount)
}

func TestUniversities(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	svc := NewUniversityService(w.repos.Universities, zerolog.Nop())

	universities, err := svc.ListUniversities(ctx)
	require.NoError(t, err)
	assert.Len(t, universities, 1)

	departments, err := svc.ListDepartments(ctx, &w.university.ID)
	require.NoError(t, err)
	assert.Len(t, departments, 1)

	_, err = svc.ListDepartments(ctx, helpers.Ptr("42"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
