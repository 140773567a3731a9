package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublic_MasksAnonymousAuthor(t *testing.T) {
	p := Post{UserID: "user123", UserDisplayName: "John Doe", IsAnonymous: true}
	pub := p.Public()
	assert.Empty(t, pub.UserID)
	assert.Equal(t, AnonymousName, pub.UserDisplayName)
	assert.NotNil(t, pub.Likes)

	assert.Equal(t, "user123", p.UserID, "original is untouched")

	named := Post{UserID: "user123", UserDisplayName: "John Doe"}.Public()
	assert.Equal(t, "John Doe", named.UserDisplayName)
	assert.Equal(t, "user123", named.UserID)
}

func TestPublic_MasksAuthorInLikesAndComments(t *testing.T) {
	p := Post{
		UserID:          "user123",
		UserDisplayName: "John Doe",
		IsAnonymous:     true,
		Likes:           []Like{{UserID: "user123"}, {UserID: "user456"}},
		Comments: []Comment{
			{UserID: "user123", UserDisplayName: "John Doe", Content: "update: feeling better"},
			{UserID: "user456", UserDisplayName: "Jane", Content: "glad to hear"},
		},
	}
	pub := p.Public()

	assert.Empty(t, pub.Likes[0].UserID)
	assert.Equal(t, "user456", pub.Likes[1].UserID)
	assert.Empty(t, pub.Comments[0].UserID)
	assert.Equal(t, AnonymousName, pub.Comments[0].UserDisplayName)
	assert.Equal(t, "update: feeling better", pub.Comments[0].Content)
	assert.Equal(t, "Jane", pub.Comments[1].UserDisplayName)

	assert.Equal(t, "user123", p.Likes[0].UserID, "stored likes are untouched")
	assert.Equal(t, "John Doe", p.Comments[0].UserDisplayName, "stored comments are untouched")

	named := Post{UserID: "user123", Likes: []Like{{UserID: "user123"}}}.Public()
	assert.Equal(t, "user123", named.Likes[0].UserID)
}

func TestLikedBy(t *testing.T) {
	p := Post{Likes: []Like{{UserID: "a"}, {UserID: "b"}}}
	assert.True(t, p.LikedBy("b"))
	assert.False(t, p.LikedBy("c"))
}
