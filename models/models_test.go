package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kalshield/models"
)

func TestCommentWithLikesRecomputesCount(t *testing.T) {
	c := models.Comment{ID: "c1", Likes: []string{"u1"}, NumberOfLikes: 7}

	updated := c.WithLikes([]string{"u1", "u2"})

	assert.Equal(t, 2, updated.NumberOfLikes)
	assert.True(t, updated.LikedBy("u2"))
	assert.False(t, updated.LikedBy(""))
	assert.Equal(t, 7, c.NumberOfLikes, "original must stay untouched")
}

func TestPostCategoryOrDefault(t *testing.T) {
	assert.Equal(t, models.DefaultCategory, models.Post{}.CategoryOrDefault())
	assert.Equal(t, "web-security", models.Post{Category: "web-security"}.CategoryOrDefault())
}

func TestUserUpdateEmpty(t *testing.T) {
	assert.True(t, models.UserUpdate{}.Empty())
	assert.False(t, models.UserUpdate{Email: "a@b.c"}.Empty())
}
