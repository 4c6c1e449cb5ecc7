package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

func TestPostCategoriesDeclarationOrder(t *testing.T) {
	assert.Equal(t, []string{"events", "academics", "lost_found", "buy_sell", "general"}, PostCategoryValues())
	assert.Equal(t, []string{"student", "faculty", "club_admin"}, UserRoleValues())
}

func TestParsePostCategory(t *testing.T) {
	for _, c := range PostCategories {
		parsed, err := ParsePostCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := ParsePostCategory("memes")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, "category", apperrors.FieldOf(err))

	_, err = ParsePostCategory("all")
	assert.Error(t, err, "the feed sentinel is not a storable category")
}

func TestParseCategoryFilter(t *testing.T) {
	filter, err := ParseCategoryFilter("all")
	require.NoError(t, err)
	assert.Nil(t, filter)

	filter, err = ParseCategoryFilter("")
	require.NoError(t, err)
	assert.Nil(t, filter)

	filter, err = ParseCategoryFilter("lost_found")
	require.NoError(t, err)
	require.NotNil(t, filter)
	assert.Equal(t, CategoryLostFound, *filter)

	_, err = ParseCategoryFilter("ALL")
	assert.Error(t, err)
}

func TestParseUserRole(t *testing.T) {
	r, err := ParseUserRole("club_admin")
	require.NoError(t, err)
	assert.Equal(t, "Club Admin", r.Label())

	_, err = ParseUserRole("admin")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Lost & Found", CategoryLostFound.Label())
	assert.Equal(t, "Buy/Sell", CategoryBuySell.Label())
	assert.Equal(t, "unknown", PostCategory("unknown").Label())
}

func TestInsertColumnsOmitDefaults(t *testing.T) {
	cols := PostInsert{UserID: "u1", Content: "hello"}.Columns()
	assert.Equal(t, map[string]interface{}{"user_id": "u1", "content": "hello"}, cols)

	category := CategoryEvents
	cols = PostInsert{UserID: "u1", Content: "hello", Category: &category}.Columns()
	assert.Equal(t, CategoryEvents, cols["category"])
}

func TestUpdateChanges(t *testing.T) {
	assert.True(t, ProfileUpdate{}.Empty())

	bio := "hi"
	skills := []string{"go"}
	changes := ProfileUpdate{Bio: &bio, Skills: &skills}.Changes()
	assert.Equal(t, map[string]interface{}{"bio": "hi", "skills": []string{"go"}}, changes)
}
