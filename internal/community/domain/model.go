package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnonymousName replaces the author of anonymous posts on read.
const AnonymousName = "Anonymous"

type Post struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID          string             `json:"userId,omitempty" bson:"userId"`
	UserDisplayName string             `json:"userDisplayName" bson:"userDisplayName"`
	Category        string             `json:"category" bson:"category"`
	Title           string             `json:"title" bson:"title"`
	Content         string             `json:"content" bson:"content"`
	Tags            []string           `json:"tags" bson:"tags"`
	Images          []string           `json:"images" bson:"images"`
	Likes           []Like             `json:"likes" bson:"likes"`
	Comments        []Comment          `json:"comments" bson:"comments"`
	IsAnonymous     bool               `json:"isAnonymous" bson:"isAnonymous"`
	IsApproved      bool               `json:"isApproved" bson:"isApproved"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type Like struct {
	UserID    string    `json:"userId" bson:"userId"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

type Comment struct {
	ID              primitive.ObjectID `json:"_id" bson:"_id"`
	UserID          string             `json:"userId" bson:"userId"`
	UserDisplayName string             `json:"userDisplayName" bson:"userDisplayName"`
	Content         string             `json:"content" bson:"content"`
	Timestamp       time.Time          `json:"timestamp" bson:"timestamp"`
}

var Categories = []string{
	"General Health",
	"Mental Health",
	"Nutrition",
	"Fitness",
	"Medicine",
	"Other",
}

func IsCategory(s string) bool {
	for _, c := range Categories {
		if c == s {
			return true
		}
	}
	return false
}

// Public returns the post as shown to readers. An anonymous author is masked
// everywhere it appears, including their own likes and comments.
func (p Post) Public() Post {
	if p.IsAnonymous {
		author := p.UserID
		p.UserID = ""
		p.UserDisplayName = AnonymousName
		if author != "" {
			p.Likes = maskLikes(p.Likes, author)
			p.Comments = maskComments(p.Comments, author)
		}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	return p
}

// maskLikes and maskComments copy before editing; the slices may be shared
// with the stored post.
func maskLikes(likes []Like, author string) []Like {
	if likes == nil {
		return nil
	}
	out := make([]Like, len(likes))
	copy(out, likes)
	for i := range out {
		if out[i].UserID == author {
			out[i].UserID = ""
		}
	}
	return out
}

func maskComments(comments []Comment, author string) []Comment {
	if comments == nil {
		return nil
	}
	out := make([]Comment, len(comments))
	copy(out, comments)
	for i := range out {
		if out[i].UserID == author {
			out[i].UserID = ""
			out[i].UserDisplayName = AnonymousName
		}
	}
	return out
}

func (p Post) LikedBy(uid string) bool {
	for _, l := range p.Likes {
		if l.UserID == uid {
			return true
		}
	}
	return false
}
