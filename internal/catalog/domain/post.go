package domain

import (
	"time"

	"github.com/google/uuid"
)

// Post es una publicación de un usuario o refugio.
type Post struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string     `gorm:"type:text;not null" json:"title"`
	Content   string     `gorm:"type:text" json:"content"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"authorId"`
	Author    *User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ShelterID *uuid.UUID `gorm:"type:uuid;index" json:"shelterId,omitempty"`
	Shelter   *Shelter   `json:"shelter,omitempty"`
	Tags      []PostTag  `gorm:"foreignKey:PostID" json:"tags,omitempty"`
	IsDeleted bool       `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time  `json:"createdAt"`
}

// PostTag enlaza un post con una etiqueta.
type PostTag struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID uuid.UUID `gorm:"type:uuid;not null;index" json:"postId"`
	TagID  uuid.UUID `gorm:"type:uuid;not null;index" json:"tagId"`
	Tag    *Tag      `json:"tag,omitempty"`
}

// Tag es una etiqueta de posts.
type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"type:text;not null;uniqueIndex" json:"name"`
}
