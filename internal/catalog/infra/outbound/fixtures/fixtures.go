package fixtures

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	catalogDomain "github.com/kast7n/PurrfectMatchPublic-sub003/internal/catalog/domain"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// namespace para los ids deterministas: volver a sembrar el mismo fichero no duplica filas.
var namespace = uuid.MustParse("6f1c2a8e-4b7d-4c1e-9a3f-0d5e7b2c9f10")

type Fixtures struct {
	Species    []string            `yaml:"species"`
	Breeds     []BreedFixture      `yaml:"breeds"`
	Users      []UserFixture       `yaml:"users"`
	Shelters   []ShelterFixture    `yaml:"shelters"`
	Pets       []PetFixture        `yaml:"pets"`
	Tags       []string            `yaml:"tags"`
	Posts      []PostFixture       `yaml:"posts"`
	Attributes map[string][]string `yaml:"attributes"`
}

type BreedFixture struct {
	Name    string `yaml:"name"`
	Species string `yaml:"species"`
}

type UserFixture struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
}

type ShelterFixture struct {
	Name    string `yaml:"name"`
	City    string `yaml:"city"`
	Address string `yaml:"address"`
	Manager string `yaml:"manager"`
}

type PetFixture struct {
	Name      string   `yaml:"name"`
	Size      string   `yaml:"size"`
	Gender    string   `yaml:"gender"`
	AgeMonths int      `yaml:"age_months"`
	Species   string   `yaml:"species"`
	Breed     string   `yaml:"breed"`
	Shelter   string   `yaml:"shelter"`
	Tags      []string `yaml:"tags"`
	Adopted   bool     `yaml:"adopted"`
}

type PostFixture struct {
	Title   string   `yaml:"title"`
	Content string   `yaml:"content"`
	Author  string   `yaml:"author"`
	Shelter string   `yaml:"shelter"`
	Tags    []string `yaml:"tags"`
}

// Load lee un fichero de fixtures en YAML.
func Load(r io.Reader) (*Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("invalid fixtures: %w", err)
	}
	return &f, nil
}

// Dataset son las entidades construidas a partir de las fixtures.
type Dataset struct {
	Species    []catalogDomain.Species
	Breeds     []catalogDomain.Breed
	Users      []catalogDomain.User
	Shelters   []catalogDomain.Shelter
	Pets       []catalogDomain.Pet
	Tags       []catalogDomain.Tag
	Posts      []catalogDomain.Post
	Attributes []catalogDomain.Attribute
}

// Build resuelve las referencias por nombre y genera ids deterministas.
func (f *Fixtures) Build(now time.Time) (*Dataset, error) {
	ds := &Dataset{}
	species := map[string]*catalogDomain.Species{}
	breeds := map[string]*catalogDomain.Breed{}
	users := map[string]*catalogDomain.User{}
	shelters := map[string]*catalogDomain.Shelter{}
	tags := map[string]*catalogDomain.Tag{}

	for _, name := range f.Species {
		ds.Species = append(ds.Species, catalogDomain.Species{ID: id("species", name), Name: name})
	}
	for i := range ds.Species {
		species[key(ds.Species[i].Name)] = &ds.Species[i]
	}

	for _, b := range f.Breeds {
		sp, ok := species[key(b.Species)]
		if !ok {
			return nil, fmt.Errorf("breed %q: unknown species %q", b.Name, b.Species)
		}
		ds.Breeds = append(ds.Breeds, catalogDomain.Breed{ID: id("breed", b.Species, b.Name), Name: b.Name, SpeciesID: sp.ID})
	}
	for i := range ds.Breeds {
		breeds[key(ds.Breeds[i].Name)] = &ds.Breeds[i]
	}

	for _, u := range f.Users {
		role := u.Role
		if role == "" {
			role = catalogDomain.RoleAdopter
		}
		ds.Users = append(ds.Users, catalogDomain.User{ID: id("user", u.Email), Email: u.Email, Name: u.Name, Role: role, CreatedAt: now})
	}
	for i := range ds.Users {
		users[key(ds.Users[i].Email)] = &ds.Users[i]
	}

	for _, s := range f.Shelters {
		sh := catalogDomain.Shelter{ID: id("shelter", s.Name), Name: s.Name, City: optional(s.City), Address: optional(s.Address), CreatedAt: now}
		if s.Manager != "" {
			u, ok := users[key(s.Manager)]
			if !ok {
				return nil, fmt.Errorf("shelter %q: unknown manager %q", s.Name, s.Manager)
			}
			sh.ManagerID = &u.ID
		}
		ds.Shelters = append(ds.Shelters, sh)
	}
	for i := range ds.Shelters {
		shelters[key(ds.Shelters[i].Name)] = &ds.Shelters[i]
	}

	for i, p := range f.Pets {
		pet := catalogDomain.Pet{
			ID:        id("pet", p.Shelter, p.Name),
			Name:      p.Name,
			Size:      p.Size,
			Gender:    p.Gender,
			AgeMonths: p.AgeMonths,
			IsAdopted: p.Adopted,
			// Orden estable por fecha de alta: el orden del fichero.
			CreatedAt: now.Add(time.Duration(i) * time.Second),
			UpdatedAt: now,
		}
		if p.Species != "" {
			sp, ok := species[key(p.Species)]
			if !ok {
				return nil, fmt.Errorf("pet %q: unknown species %q", p.Name, p.Species)
			}
			pet.SpeciesID = &sp.ID
		}
		if p.Breed != "" {
			br, ok := breeds[key(p.Breed)]
			if !ok {
				return nil, fmt.Errorf("pet %q: unknown breed %q", p.Name, p.Breed)
			}
			pet.BreedID = &br.ID
		}
		if p.Shelter != "" {
			sh, ok := shelters[key(p.Shelter)]
			if !ok {
				return nil, fmt.Errorf("pet %q: unknown shelter %q", p.Name, p.Shelter)
			}
			pet.ShelterID = &sh.ID
		}
		for _, t := range p.Tags {
			pet.Tags = append(pet.Tags, catalogDomain.PetTag{ID: id("pet_tag", pet.ID.String(), t), PetID: pet.ID, Name: t})
		}
		ds.Pets = append(ds.Pets, pet)
	}

	for _, name := range f.Tags {
		ds.Tags = append(ds.Tags, catalogDomain.Tag{ID: id("tag", name), Name: name})
	}
	for i := range ds.Tags {
		tags[key(ds.Tags[i].Name)] = &ds.Tags[i]
	}

	for i, p := range f.Posts {
		author, ok := users[key(p.Author)]
		if !ok {
			return nil, fmt.Errorf("post %q: unknown author %q", p.Title, p.Author)
		}
		post := catalogDomain.Post{
			ID:        id("post", p.Title),
			Title:     p.Title,
			Content:   p.Content,
			AuthorID:  author.ID,
			Author:    author,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if p.Shelter != "" {
			sh, ok := shelters[key(p.Shelter)]
			if !ok {
				return nil, fmt.Errorf("post %q: unknown shelter %q", p.Title, p.Shelter)
			}
			post.ShelterID = &sh.ID
			post.Shelter = sh
		}
		for _, t := range p.Tags {
			tag, ok := tags[key(t)]
			if !ok {
				return nil, fmt.Errorf("post %q: unknown tag %q", p.Title, t)
			}
			post.Tags = append(post.Tags, catalogDomain.PostTag{ID: id("post_tag", post.ID.String(), t), PostID: post.ID, TagID: tag.ID, Tag: tag})
		}
		ds.Posts = append(ds.Posts, post)
	}

	for kind, values := range f.Attributes {
		for _, v := range values {
			ds.Attributes = append(ds.Attributes, catalogDomain.Attribute{ID: id("attribute", kind, v), Kind: kind, Value: v})
		}
	}
	return ds, nil
}

// Apply inserta el dataset en una transacción. Las filas existentes se dejan como están.
// Con withPosts=false los posts no se guardan aquí (van al almacén documental).
func (ds *Dataset) Apply(ctx context.Context, db *gorm.DB, withPosts bool) error {
	type step struct {
		name string
		rows interface{}
		n    int
	}
	pt, qt := petTags(ds.Pets), postTags(ds.Posts)
	steps := []step{
		{"species", &ds.Species, len(ds.Species)},
		{"breeds", &ds.Breeds, len(ds.Breeds)},
		{"users", &ds.Users, len(ds.Users)},
		{"shelters", &ds.Shelters, len(ds.Shelters)},
		{"pets", &ds.Pets, len(ds.Pets)},
		{"pet tags", &pt, len(pt)},
		{"tags", &ds.Tags, len(ds.Tags)},
		{"attributes", &ds.Attributes, len(ds.Attributes)},
	}
	if withPosts {
		steps = append(steps, step{"posts", &ds.Posts, len(ds.Posts)}, step{"post tags", &qt, len(qt)})
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range steps {
			if s.n == 0 {
				continue
			}
			err := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(s.rows).Error
			if err != nil {
				return fmt.Errorf("seed %s: %w", s.name, err)
			}
		}
		return nil
	})
}

// PostPointers devuelve los posts listos para un almacén documental.
func (ds *Dataset) PostPointers() []*catalogDomain.Post {
	out := make([]*catalogDomain.Post, 0, len(ds.Posts))
	for i := range ds.Posts {
		out = append(out, &ds.Posts[i])
	}
	return out
}

// ------------------ Helpers ------------------

func petTags(pets []catalogDomain.Pet) []catalogDomain.PetTag {
	var out []catalogDomain.PetTag
	for _, p := range pets {
		out = append(out, p.Tags...)
	}
	return out
}

func postTags(posts []catalogDomain.Post) []catalogDomain.PostTag {
	var out []catalogDomain.PostTag
	for _, p := range posts {
		for _, t := range p.Tags {
			t.Tag = nil
			out = append(out, t)
		}
	}
	return out
}

func id(parts ...string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(strings.ToLower(strings.Join(parts, "/"))))
}

func key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
