package memory

import (
	"context"
	"sort"
	"time"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

type clubRepository struct {
	db *DB
}

// NewClubRepository creates the in-memory club repository.
func NewClubRepository(db *DB) repositories.ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) ListClubs(_ context.Context, page models.Page) ([]models.ClubWithUniversity, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := make([]models.ClubWithUniversity, 0, len(r.db.clubs))
	for _, c := range r.db.clubs {
		row := models.ClubWithUniversity{Club: *c}
		if u, ok := r.db.universities[c.UniversityID]; ok {
			row.UniversityName = stringPtr(u.Name)
		}
		items = append(items, row)
	}
	newestFirst(items,
		func(c models.ClubWithUniversity) time.Time { return c.CreatedAt },
		func(c models.ClubWithUniversity) string { return c.ID },
	)

	out, total := pageOf(items, page)
	return out, total, nil
}

func (r *clubRepository) CreateClub(_ context.Context, insert models.ClubInsert) (*models.Club, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, err := newID(insert.ID)
	if err != nil {
		return nil, err
	}
	if _, exists := r.db.clubs[id]; exists {
		return nil, apperrors.NewConflictError("duplicate key value violates unique constraint \"clubs_pkey\"")
	}
	if _, ok := r.db.universities[insert.UniversityID]; !ok {
		return nil, foreignKeyError("clubs", "university_id")
	}

	c := &models.Club{
		ID:           id,
		Name:         insert.Name,
		UniversityID: insert.UniversityID,
		Description:  insert.Description,
		AvatarURL:    insert.AvatarURL,
		CreatedAt:    r.db.now(),
	}
	r.db.clubs[id] = c
	out := *c
	return &out, nil
}

func membershipKey(clubID, userID string) string {
	return clubID + "/" + userID
}

func (r *clubRepository) JoinClub(_ context.Context, insert models.ClubMembershipInsert) (*models.ClubMembership, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	id, err := newID(insert.ID)
	if err != nil {
		return nil, err
	}
	club, ok := r.db.clubs[insert.ClubID]
	if !ok {
		return nil, apperrors.ErrClubNotFound
	}
	if _, ok := r.db.profiles[insert.UserID]; !ok {
		return nil, foreignKeyError("club_memberships", "user_id")
	}
	key := membershipKey(insert.ClubID, insert.UserID)
	if _, exists := r.db.memberships[key]; exists {
		return nil, apperrors.NewConflictError("already a member of this club")
	}

	m := &models.ClubMembership{
		ID:       id,
		ClubID:   insert.ClubID,
		UserID:   insert.UserID,
		Role:     insert.Role,
		JoinedAt: r.db.now(),
	}
	r.db.memberships[key] = m
	club.MemberCount++

	out := *m
	return &out, nil
}

func (r *clubRepository) LeaveClub(_ context.Context, clubID, userID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	key := membershipKey(clubID, userID)
	if _, exists := r.db.memberships[key]; !exists {
		return apperrors.NewNotFoundError("membership not found")
	}
	delete(r.db.memberships, key)
	if club, ok := r.db.clubs[clubID]; ok {
		club.MemberCount--
	}
	return nil
}

func (r *clubRepository) ListClubMembers(_ context.Context, clubID string, page models.Page) ([]models.ClubMember, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	items := []models.ClubMember{}
	for _, m := range r.db.memberships {
		if m.ClubID != clubID {
			continue
		}
		row := models.ClubMember{ClubMembership: *m}
		if p, ok := r.db.profiles[m.UserID]; ok {
			role := p.Role
			row.FullName = stringPtr(p.FullName)
			row.AvatarURL = p.AvatarURL
			row.UserRole = &role
		}
		items = append(items, row)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].JoinedAt.Equal(items[j].JoinedAt) {
			return items[i].JoinedAt.Before(items[j].JoinedAt)
		}
		return items[i].ID < items[j].ID
	})

	out, total := pageOf(items, page)
	return out, total, nil
}
