package views

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
)

var now = time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC)

func TestInitial(t *testing.T) {
	assert.Equal(t, "A", Initial("Ada"))
	assert.Equal(t, "a", Initial("ada"), "case is kept")
	assert.Equal(t, "ö", Initial(" özge"))
	assert.Equal(t, DefaultInitial, Initial(""))
	assert.Equal(t, DefaultInitial, Initial("   "))
}

func TestFormatEventDate(t *testing.T) {
	assert.Equal(t, "March 1st, 2025 at 6:30 PM", FormatEventDate(now))
	assert.Equal(t, "March 22nd, 2025 at 9:05 AM", FormatEventDate(time.Date(2025, 3, 22, 9, 5, 0, 0, time.UTC)))
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "3 hours ago", RelativeTime(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2 days from now", RelativeTime(now.Add(48*time.Hour), now))
}

func TestPostCardsWithMissingAuthor(t *testing.T) {
	rows := []models.PostWithAuthor{
		{
			Post: models.Post{ID: "p1", Content: "lost keys", Category: models.CategoryLostFound, LikeCount: 2, CreatedAt: now.Add(-time.Hour)},
			Author: models.PostAuthor{
				FullName: helpers.Ptr("Ada Lovelace"),
				Role:     helpers.Ptr(models.RoleClubAdmin),
			},
		},
		{Post: models.Post{ID: "p2", Content: "hi", Category: models.CategoryGeneral, CreatedAt: now}},
	}

	cards := PostCards(rows, NewLikeSet([]string{"p1"}), now)

	want := []PostCard{
		{
			ID: "p1", Content: "lost keys", Category: "lost_found", CategoryLabel: "Lost & Found",
			Author:    Author{Name: "Ada Lovelace", Initial: "A", Role: "club_admin", RoleLabel: "Club Admin"},
			LikeCount: 2, Liked: true, CreatedAt: now.Add(-time.Hour), Posted: "1 hour ago",
		},
		{
			ID: "p2", Content: "hi", Category: "general", CategoryLabel: "General",
			Author:    Author{Name: UnknownAuthor, Initial: DefaultInitial, Role: "student", RoleLabel: "Student"},
			CreatedAt: now, Posted: "now",
		},
	}
	if diff := cmp.Diff(want, cards); diff != "" {
		t.Errorf("PostCards mismatch (-want +got):\n%s", diff)
	}
}

func TestClubCardFallbacks(t *testing.T) {
	card := NewClubCard(models.ClubWithUniversity{Club: models.Club{ID: "c1", Name: "chess", MemberCount: 4}})
	assert.Equal(t, NoDescription, card.Description)
	assert.Equal(t, "c", card.Initial)
	assert.Empty(t, card.UniversityName)

	card = NewClubCard(models.ClubWithUniversity{
		Club:           models.Club{ID: "c1", Name: "chess", Description: helpers.Ptr("Weekly games")},
		UniversityName: helpers.Ptr("State University"),
	})
	assert.Equal(t, "Weekly games", card.Description)
	assert.Equal(t, "State University", card.UniversityName)
}

func TestEventCardFlattensJoin(t *testing.T) {
	row := models.EventWithClub{
		Event:          models.Event{ID: "e1", ClubID: "c1", Title: "Open night", EventDate: now.Add(2 * time.Hour), Location: "Hall"},
		ClubName:       helpers.Ptr("Chess"),
		UniversityName: helpers.Ptr("State University"),
	}
	card := NewEventCard(row, now)
	assert.Equal(t, "Chess", card.ClubName)
	assert.Equal(t, "State University", card.UniversityName)
	assert.Equal(t, "2 hours from now", card.StartsIn)
	assert.Equal(t, "March 1st, 2025 at 8:30 PM", card.When)
	assert.Empty(t, card.Description)

	assert.NotPanics(t, func() { NewEventCard(models.EventWithClub{}, now) })
}

func TestResourceCardWithoutDepartment(t *testing.T) {
	row := models.ResourceWithRelations{
		Resource: models.Resource{ID: "r1", CourseCode: "CS101", Title: "Notes", FileURL: "https://files.example/n.pdf", CreatedAt: now.Add(-24 * time.Hour)},
	}
	card := NewResourceCard(row, now)
	assert.Empty(t, card.DepartmentName)
	assert.Equal(t, UnknownAuthor, card.UploaderName)
	assert.Equal(t, "1 day ago", card.Uploaded)
}

func TestProfileViewFallbacks(t *testing.T) {
	view := NewProfileView(models.ProfileWithDepartment{Profile: models.Profile{ID: "u1", Role: models.RoleFaculty}})
	want := ProfileView{
		ID: "u1", Initial: DefaultInitial, Role: "faculty", RoleLabel: "Faculty", Bio: NoBio,
		Skills: []string{}, Interests: []string{},
	}
	if diff := cmp.Diff(want, view); diff != "" {
		t.Errorf("ProfileView mismatch (-want +got):\n%s", diff)
	}
}

func TestTopUserRowsRanks(t *testing.T) {
	rows := TopUserRows([]models.TopActiveUser{
		{ID: helpers.Ptr("u1"), FullName: helpers.Ptr("Ada"), PostCount: helpers.Ptr(5)},
		{ID: helpers.Ptr("u2")},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 5, rows[0].PostCount)
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, 0, rows[1].PostCount)
	assert.Equal(t, DefaultInitial, rows[1].Initial)
}

func TestCourseRatingRows(t *testing.T) {
	rows := CourseRatingRows([]models.CourseRating{
		{CourseCode: helpers.Ptr("CS101"), AverageRating: helpers.Ptr(4.33), ReviewCount: helpers.Ptr(int64(3))},
		{},
	})
	assert.Equal(t, "4.33 / 5 from 3 reviews", rows[0].Summary)
	assert.Equal(t, int64(0), rows[1].ReviewCount)
}

func TestLikeToggleCommit(t *testing.T) {
	card := PostCard{ID: "p1", LikeCount: 3}
	toggle := BeginLikeToggle(card)

	tentative := toggle.Tentative()
	assert.True(t, tentative.Liked)
	assert.True(t, tentative.Unconfirmed)
	assert.Equal(t, 4, tentative.LikeCount)
	assert.False(t, toggle.WasLiked())

	committed := toggle.Commit(7)
	assert.True(t, committed.Liked)
	assert.False(t, committed.Unconfirmed)
	assert.Equal(t, 7, committed.LikeCount)
	assert.True(t, toggle.Settled())
}

func TestLikeToggleRevertRestoresSnapshot(t *testing.T) {
	card := PostCard{ID: "p1", LikeCount: 1, Liked: true, Posted: "now"}
	toggle := BeginLikeToggle(card)
	assert.Equal(t, 0, toggle.Tentative().LikeCount)

	if diff := cmp.Diff(card, toggle.Revert()); diff != "" {
		t.Errorf("Revert mismatch (-want +got):\n%s", diff)
	}
}

func TestLikeToggleNeverGoesNegative(t *testing.T) {
	toggle := BeginLikeToggle(PostCard{Liked: true})
	assert.Equal(t, 0, toggle.Tentative().LikeCount)
}

func TestSequencerDiscardsStale(t *testing.T) {
	s := NewSequencer()

	assert.True(t, s.Observe("u1:feed:tab-a", 5))
	assert.False(t, s.Observe("u1:feed:tab-a", 3))
	assert.True(t, s.IsLatest("u1:feed:tab-a", 5))
	assert.False(t, s.IsLatest("u1:feed:tab-a", 3))
}

func TestSequencerInstancesAreIndependent(t *testing.T) {
	s := NewSequencer()

	require.True(t, s.Observe("u1:feed:tab-a", 50))
	assert.True(t, s.Observe("u1:feed:tab-b", 1), "a fresh tab starts its own count")
	assert.True(t, s.IsLatest("u1:feed:tab-a", 50))
	assert.True(t, s.IsLatest("u1:feed:tab-b", 1))
	assert.False(t, s.IsLatest("u1:clubs:tab-a", 50))
}

func TestSequencerForgetsIdleInstances(t *testing.T) {
	clock := now
	s := newSequencer(time.Minute, func() time.Time { return clock })

	s.Observe("u1:feed:old", 9)
	clock = clock.Add(2 * time.Minute)
	s.Observe("u1:feed:new", 1)

	assert.Equal(t, 1, s.tracked())
	assert.False(t, s.IsLatest("u1:feed:old", 9))
	assert.True(t, s.Observe("u1:feed:old", 1))
}

func TestSequencerConcurrentObserve(t *testing.T) {
	s := NewSequencer()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(seq uint64) {
			defer wg.Done()
			s.Observe("u1:feed:tab", seq)
		}(uint64(i))
	}
	wg.Wait()
	assert.True(t, s.IsLatest("u1:feed:tab", 50))
}
