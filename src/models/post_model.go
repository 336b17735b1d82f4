package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Post struct {
	Id        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Author    primitive.ObjectID   `json:"author" bson:"author"`
	Content   string               `json:"content" bson:"content"`
	Image     string               `json:"image" bson:"image"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []Comment            `json:"comments" bson:"comments"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasLike reports whether the user already likes the post.
func (p *Post) HasLike(user primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == user {
			return true
		}
	}
	return false
}

type PostDto struct {
	ID        primitive.ObjectID   `json:"_id"`
	Author    UserDto              `json:"author"`
	Content   string               `json:"content,omitempty"`
	Image     string               `json:"image,omitempty"`
	Likes     []primitive.ObjectID `json:"likes"`
	Comments  []CommentDto         `json:"comments"`
	CreatedAt time.Time            `json:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt"`
}

type Comment struct {
	Id        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type CommentDto struct {
	ID        primitive.ObjectID `json:"_id"`
	Content   string             `json:"content"`
	User      UserDto            `json:"user"`
	CreatedAt time.Time          `json:"createdAt"`
}
