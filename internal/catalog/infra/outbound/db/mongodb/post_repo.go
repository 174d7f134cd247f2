package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	sharedMongo "github.com/kast7n/PurrfectMatchPublic-sub003/internal/shared/infra/db/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const postsCollection = "posts"

// --- Structs de BSON para el mapeo ---
// Autor, refugio y etiquetas van embebidos: los criterios "Author.x", "Shelter.x"
// y "Tags.x" se resuelven como rutas del documento.

type mongoPost struct {
	ID        string         `bson:"_id"`
	Title     string         `bson:"title"`
	Content   string         `bson:"content"`
	AuthorID  string         `bson:"authorId"`
	Author    *mongoAuthor   `bson:"author,omitempty"`
	ShelterID *string        `bson:"shelterId,omitempty"`
	Shelter   *mongoShelter  `bson:"shelter,omitempty"`
	Tags      []mongoPostTag `bson:"tags"`
	IsDeleted bool           `bson:"isDeleted"`
	CreatedAt time.Time      `bson:"createdAt"`
}

type mongoAuthor struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name"`
	Email string `bson:"email"`
}

type mongoShelter struct {
	ID   string  `bson:"_id"`
	Name string  `bson:"name"`
	City *string `bson:"city,omitempty"`
}

type mongoPostTag struct {
	TagID string `bson:"tagId"`
	Name  string `bson:"name"`
}

// PostStore guarda los posts como documentos y los lista con especificaciones.
type PostStore struct {
	*sharedMongo.Repository[catalogDomain.Post, mongoPost]
	coll *mongo.Collection
}

// NewPostStore comprueba la conexión y prepara la colección.
func NewPostStore(ctx context.Context, client *mongo.Client, dbName string) (*PostStore, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}
	coll := client.Database(dbName).Collection(postsCollection)
	return &PostStore{
		Repository: sharedMongo.NewRepository(coll, decodePost),
		coll:       coll,
	}, nil
}

// EnsureIndexes crea los índices de los filtros más usados.
func (s *PostStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "isDeleted", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "authorId", Value: 1}}},
		{Keys: bson.D{{Key: "tags.tagId", Value: 1}}},
	})
	return err
}

// Upsert guarda los posts (idempotente por id).
func (s *PostStore) Upsert(ctx context.Context, posts ...*catalogDomain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(posts))
	for _, p := range posts {
		doc := encodePost(p)
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: "_id", Value: doc.ID}}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	_, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	return err
}

// ------------------ Mapeo ------------------

func encodePost(p *catalogDomain.Post) mongoPost {
	doc := mongoPost{
		ID:        p.ID.String(),
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID.String(),
		IsDeleted: p.IsDeleted,
		CreatedAt: p.CreatedAt,
		Tags:      make([]mongoPostTag, 0, len(p.Tags)),
	}
	if p.Author != nil {
		doc.Author = &mongoAuthor{ID: p.Author.ID.String(), Name: p.Author.Name, Email: p.Author.Email}
	}
	if p.ShelterID != nil {
		id := p.ShelterID.String()
		doc.ShelterID = &id
	}
	if p.Shelter != nil {
		doc.Shelter = &mongoShelter{ID: p.Shelter.ID.String(), Name: p.Shelter.Name, City: p.Shelter.City}
	}
	for _, t := range p.Tags {
		tag := mongoPostTag{TagID: t.TagID.String()}
		if t.Tag != nil {
			tag.Name = t.Tag.Name
		}
		doc.Tags = append(doc.Tags, tag)
	}
	return doc
}

func decodePost(doc *mongoPost) *catalogDomain.Post {
	p := &catalogDomain.Post{
		ID:        parseID(doc.ID),
		Title:     doc.Title,
		Content:   doc.Content,
		AuthorID:  parseID(doc.AuthorID),
		IsDeleted: doc.IsDeleted,
		CreatedAt: doc.CreatedAt,
	}
	if doc.Author != nil {
		p.Author = &catalogDomain.User{ID: parseID(doc.Author.ID), Name: doc.Author.Name, Email: doc.Author.Email}
	}
	if doc.ShelterID != nil {
		id := parseID(*doc.ShelterID)
		p.ShelterID = &id
	}
	if doc.Shelter != nil {
		p.Shelter = &catalogDomain.Shelter{ID: parseID(doc.Shelter.ID), Name: doc.Shelter.Name, City: doc.Shelter.City}
	}
	for _, t := range doc.Tags {
		tagID := parseID(t.TagID)
		p.Tags = append(p.Tags, catalogDomain.PostTag{
			PostID: p.ID,
			TagID:  tagID,
			Tag:    &catalogDomain.Tag{ID: tagID, Name: t.Name},
		})
	}
	return p
}

// parseID devuelve uuid.Nil para ids mal formados en lugar de fallar el listado.
func parseID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil
	}
	return id
}
