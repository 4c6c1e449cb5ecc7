// Package views shapes joined rows into display structures. Everything here
// is pure: no I/O, and "now" is always passed in.
package views

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/pkg/helpers"
)

// Display fallbacks for absent optional fields.
const (
	NoDescription  = "No description available"
	NoBio          = "No bio yet"
	DefaultInitial = "U"
	UnknownAuthor  = "Unknown user"
)

// Initial is the avatar fallback: the first character of name, or "U".
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultInitial
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(r)
}

// RelativeTime renders t against now, e.g. "3 hours ago" or "2 days from now".
func RelativeTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatEventDate renders an event date as "March 1st, 2025 at 6:30 PM".
func FormatEventDate(t time.Time) string {
	return t.Format("January") + " " + humanize.Ordinal(t.Day()) + t.Format(", 2006 at 3:04 PM")
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Author is the display shape of a post or comment author.
type Author struct {
	Name      string  `json:"name"`
	Initial   string  `json:"initial"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
	Role      string  `json:"role"`
	RoleLabel string  `json:"roleLabel"`
}

// NewAuthor tolerates a missing author join.
func NewAuthor(a models.PostAuthor) Author {
	name := helpers.StringOr(a.FullName, UnknownAuthor)
	role := models.RoleStudent
	if a.Role != nil && a.Role.Valid() {
		role = *a.Role
	}
	initial := DefaultInitial
	if a.FullName != nil {
		initial = Initial(*a.FullName)
	}
	return Author{
		Name:      name,
		Initial:   initial,
		AvatarURL: a.AvatarURL,
		Role:      string(role),
		RoleLabel: role.Label(),
	}
}

// PostCard is one feed entry.
type PostCard struct {
	ID            string    `json:"id"`
	Content       string    `json:"content"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"categoryLabel"`
	ImageURL      *string   `json:"imageUrl,omitempty"`
	Author        Author    `json:"author"`
	LikeCount     int       `json:"likeCount"`
	CommentCount  int       `json:"commentCount"`
	Liked         bool      `json:"liked"`
	Unconfirmed   bool      `json:"unconfirmed"`
	CreatedAt     time.Time `json:"createdAt"`
	Posted        string    `json:"posted"`
}

// NewPostCard builds a card for row as seen by a user whose like state is liked.
func NewPostCard(row models.PostWithAuthor, liked bool, now time.Time) PostCard {
	return PostCard{
		ID:            row.ID,
		Content:       row.Content,
		Category:      string(row.Category),
		CategoryLabel: row.Category.Label(),
		ImageURL:      row.ImageURL,
		Author:        NewAuthor(row.Author),
		LikeCount:     row.LikeCount,
		CommentCount:  row.CommentCount,
		Liked:         liked,
		CreatedAt:     row.CreatedAt,
		Posted:        RelativeTime(row.CreatedAt, now),
	}
}

// PostCards shapes a feed page, marking the posts in likes as liked.
func PostCards(rows []models.PostWithAuthor, likes LikeSet, now time.Time) []PostCard {
	cards := make([]PostCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, NewPostCard(row, likes.Has(row.ID), now))
	}
	return cards
}

// CommentView is one comment under a post.
type CommentView struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	LikeCount int       `json:"likeCount"`
	CreatedAt time.Time `json:"createdAt"`
	Posted    string    `json:"posted"`
}

// CommentViews shapes a page of comments.
func CommentViews(rows []models.CommentWithAuthor, now time.Time) []CommentView {
	out := make([]CommentView, 0, len(rows))
	for _, row := range rows {
		out = append(out, CommentView{
			ID:        row.ID,
			PostID:    row.PostID,
			Text:      row.Text,
			Author:    NewAuthor(row.Author),
			LikeCount: row.LikeCount,
			CreatedAt: row.CreatedAt,
			Posted:    RelativeTime(row.CreatedAt, now),
		})
	}
	return out
}

// ClubCard is one entry of the club directory.
type ClubCard struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Initial        string  `json:"initial"`
	Description    string  `json:"description"`
	AvatarURL      *string `json:"avatarUrl,omitempty"`
	UniversityName string  `json:"universityName"`
	MemberCount    int     `json:"memberCount"`
}

// NewClubCard shapes a club row.
func NewClubCard(row models.ClubWithUniversity) ClubCard {
	return ClubCard{
		ID:             row.ID,
		Name:           row.Name,
		Initial:        Initial(row.Name),
		Description:    helpers.StringOr(row.Description, NoDescription),
		AvatarURL:      row.AvatarURL,
		UniversityName: deref(row.UniversityName),
		MemberCount:    row.MemberCount,
	}
}

// ClubCards shapes a page of clubs.
func ClubCards(rows []models.ClubWithUniversity) []ClubCard {
	out := make([]ClubCard, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewClubCard(row))
	}
	return out
}

// MemberRow is one member of a club.
type MemberRow struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Initial   string    `json:"initial"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	Role      string    `json:"role,omitempty"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// MemberRows shapes a page of club members.
func MemberRows(rows []models.ClubMember) []MemberRow {
	out := make([]MemberRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, MemberRow{
			UserID:    row.UserID,
			Name:      helpers.StringOr(row.FullName, UnknownAuthor),
			Initial:   Initial(deref(row.FullName)),
			AvatarURL: row.AvatarURL,
			Role:      deref(row.Role),
			JoinedAt:  row.JoinedAt,
		})
	}
	return out
}

// EventCard is one upcoming event.
type EventCard struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	EventDate      time.Time `json:"eventDate"`
	When           string    `json:"when"`
	StartsIn       string    `json:"startsIn"`
	Location       string    `json:"location"`
	ImageURL       *string   `json:"imageUrl,omitempty"`
	ClubID         string    `json:"clubId"`
	ClubName       string    `json:"clubName"`
	UniversityName string    `json:"universityName"`
	RsvpCount      int       `json:"rsvpCount"`
}

// NewEventCard flattens the event -> club -> university join.
func NewEventCard(row models.EventWithClub, now time.Time) EventCard {
	return EventCard{
		ID:             row.ID,
		Title:          row.Title,
		Description:    deref(row.Description),
		EventDate:      row.EventDate,
		When:           FormatEventDate(row.EventDate),
		StartsIn:       RelativeTime(row.EventDate, now),
		Location:       row.Location,
		ImageURL:       row.ImageURL,
		ClubID:         row.ClubID,
		ClubName:       deref(row.ClubName),
		UniversityName: deref(row.UniversityName),
		RsvpCount:      row.RsvpCount,
	}
}

// EventCards shapes a page of events.
func EventCards(rows []models.EventWithClub, now time.Time) []EventCard {
	out := make([]EventCard, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewEventCard(row, now))
	}
	return out
}

// ResourceCard is one shared course resource.
type ResourceCard struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	CourseCode     string    `json:"courseCode"`
	FileURL        string    `json:"fileUrl"`
	ResourceType   string    `json:"resourceType,omitempty"`
	UploaderName   string    `json:"uploaderName"`
	DepartmentName string    `json:"departmentName,omitempty"`
	Downloads      int       `json:"downloads"`
	CreatedAt      time.Time `json:"createdAt"`
	Uploaded       string    `json:"uploaded"`
}

// NewResourceCard tolerates a resource without department or uploader.
func NewResourceCard(row models.ResourceWithRelations, now time.Time) ResourceCard {
	return ResourceCard{
		ID:             row.ID,
		Title:          row.Title,
		CourseCode:     row.CourseCode,
		FileURL:        row.FileURL,
		ResourceType:   deref(row.ResourceType),
		UploaderName:   helpers.StringOr(row.UploaderName, UnknownAuthor),
		DepartmentName: deref(row.DepartmentName),
		Downloads:      row.Downloads,
		CreatedAt:      row.CreatedAt,
		Uploaded:       RelativeTime(row.CreatedAt, now),
	}
}

// ResourceCards shapes a page of resources.
func ResourceCards(rows []models.ResourceWithRelations, now time.Time) []ResourceCard {
	out := make([]ResourceCard, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewResourceCard(row, now))
	}
	return out
}

// ProfileView is the profile page.
type ProfileView struct {
	ID             string   `json:"id"`
	FullName       string   `json:"fullName"`
	Initial        string   `json:"initial"`
	AvatarURL      *string  `json:"avatarUrl,omitempty"`
	Role           string   `json:"role"`
	RoleLabel      string   `json:"roleLabel"`
	Bio            string   `json:"bio"`
	DepartmentName string   `json:"departmentName,omitempty"`
	UniversityName string   `json:"universityName,omitempty"`
	Skills         []string `json:"skills"`
	Interests      []string `json:"interests"`
	PostCount      int      `json:"postCount"`
	Year           *int     `json:"year,omitempty"`
}

// NewProfileView shapes a profile with its optional department join.
func NewProfileView(row models.ProfileWithDepartment) ProfileView {
	return ProfileView{
		ID:             row.ID,
		FullName:       row.FullName,
		Initial:        Initial(row.FullName),
		AvatarURL:      row.AvatarURL,
		Role:           string(row.Role),
		RoleLabel:      row.Role.Label(),
		Bio:            helpers.StringOr(row.Bio, NoBio),
		DepartmentName: deref(row.DepartmentName),
		UniversityName: deref(row.UniversityName),
		Skills:         nonNil(row.Skills),
		Interests:      nonNil(row.Interests),
		PostCount:      row.PostCount,
		Year:           row.Year,
	}
}

// TopUserRow is one leaderboard entry.
type TopUserRow struct {
	Rank           int    `json:"rank"`
	ID             string `json:"id"`
	FullName       string `json:"fullName"`
	Initial        string `json:"initial"`
	RoleLabel      string `json:"roleLabel"`
	PostCount      int    `json:"postCount"`
	DepartmentName string `json:"departmentName,omitempty"`
	UniversityName string `json:"universityName,omitempty"`
}

// TopUserRows ranks the top_active_users view rows from 1.
func TopUserRows(rows []models.TopActiveUser) []TopUserRow {
	out := make([]TopUserRow, 0, len(rows))
	for i, row := range rows {
		name := helpers.StringOr(row.FullName, UnknownAuthor)
		role := models.RoleStudent
		if row.Role != nil && row.Role.Valid() {
			role = *row.Role
		}
		out = append(out, TopUserRow{
			Rank:           i + 1,
			ID:             deref(row.ID),
			FullName:       name,
			Initial:        Initial(deref(row.FullName)),
			RoleLabel:      role.Label(),
			PostCount:      deref(row.PostCount),
			DepartmentName: deref(row.DepartmentName),
			UniversityName: deref(row.UniversityName),
		})
	}
	return out
}

// CourseRatingRow is one aggregated course rating.
type CourseRatingRow struct {
	CourseCode     string  `json:"courseCode"`
	DepartmentName string  `json:"departmentName,omitempty"`
	UniversityName string  `json:"universityName,omitempty"`
	AverageRating  float64 `json:"averageRating"`
	ReviewCount    int64   `json:"reviewCount"`
	Summary        string  `json:"summary"`
}

// CourseRatingRows shapes rows of the course_ratings view.
func CourseRatingRows(rows []models.CourseRating) []CourseRatingRow {
	out := make([]CourseRatingRow, 0, len(rows))
	for _, row := range rows {
		avg, count := deref(row.AverageRating), deref(row.ReviewCount)
		out = append(out, CourseRatingRow{
			CourseCode:     deref(row.CourseCode),
			DepartmentName: deref(row.DepartmentName),
			UniversityName: deref(row.UniversityName),
			AverageRating:  avg,
			ReviewCount:    count,
			Summary:        humanize.FormatFloat("#.##", avg) + " / 5 from " + humanize.Comma(count) + " " + plural(count, "review", "reviews"),
		})
	}
	return out
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
