package domain

import (
	"time"

	"github.com/google/uuid"
	sharedDomain "github.com/kast7n/PurrfectMatchPublic-sub003/shared/domain"
)

// ---------------- Post ----------------

func PostIsDeleted(v bool) sharedDomain.Predicate[Post] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "is_deleted", Op: sharedDomain.OpEq, Value: v},
		func(p *Post) bool { return p.IsDeleted == v })
}

func PostTitleContains(title string) sharedDomain.Predicate[Post] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "title", Op: sharedDomain.OpILike, Value: title},
		func(p *Post) bool { return sharedDomain.Contains(p.Title, title) })
}

func PostContentContains(text string) sharedDomain.Predicate[Post] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "content", Op: sharedDomain.OpILike, Value: text},
		func(p *Post) bool { return sharedDomain.Contains(p.Content, text) })
}

func PostByAuthor(id uuid.UUID) sharedDomain.Predicate[Post] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "author_id", Op: sharedDomain.OpEq, Value: id},
		func(p *Post) bool { return p.AuthorID == id })
}

func PostByShelter(id uuid.UUID) sharedDomain.Predicate[Post] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "shelter_id", Op: sharedDomain.OpEq, Value: id},
		func(p *Post) bool { return p.ShelterID != nil && *p.ShelterID == id })
}

// PostTaggedWithAny se cumple si el post lleva al menos una de las etiquetas.
func PostTaggedWithAny(ids []uuid.UUID) sharedDomain.Predicate[Post] {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return sharedDomain.Where(sharedDomain.Criterion{Field: "Tags.tag_id", Op: sharedDomain.OpIn, Value: ids},
		func(p *Post) bool {
			for _, t := range p.Tags {
				if set[t.TagID] {
					return true
				}
			}
			return false
		})
}

const (
	PostSortTitle     sharedDomain.SortKey = "title"
	PostSortCreatedAt sharedDomain.SortKey = "createdat"
)

var PostSorts = sharedDomain.SortTable[Post]{
	PostSortTitle:     sharedDomain.ByText("title", func(p *Post) string { return p.Title }),
	PostSortCreatedAt: sharedDomain.ByTime("created_at", func(p *Post) time.Time { return p.CreatedAt }),
}

var PostDefaultSort = sharedDomain.SortDefault{Key: PostSortCreatedAt, Descending: true}

func PostSpecification(f PostFilter) sharedDomain.Specification[Post] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.DefaultFalse(f.IsDeleted, PostIsDeleted),
		sharedDomain.WhenPresent(f.Title, PostTitleContains),
		sharedDomain.WhenPresent(f.Content, PostContentContains),
		sharedDomain.WhenPresent(f.AuthorID, PostByAuthor),
		sharedDomain.WhenPresent(f.ShelterID, PostByShelter),
		sharedDomain.WhenNotEmpty(f.TagIDs, PostTaggedWithAny),
	))
	spec.AddInclude("Author")
	spec.AddInclude("Shelter")
	spec.AddInclude("Tags")
	spec.AddIncludePath("Tags.Tag")
	PostSorts.Apply(spec, f.SortBy, f.SortDescending, PostDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}

// ---------------- Tag ----------------

func TagNameContains(name string) sharedDomain.Predicate[Tag] {
	return sharedDomain.Where(sharedDomain.Criterion{Field: "name", Op: sharedDomain.OpILike, Value: name},
		func(t *Tag) bool { return sharedDomain.Contains(t.Name, name) })
}

const TagSortName sharedDomain.SortKey = "name"

var TagSorts = sharedDomain.SortTable[Tag]{
	TagSortName: sharedDomain.ByText("name", func(t *Tag) string { return t.Name }),
}

var TagDefaultSort = sharedDomain.SortDefault{Key: TagSortName}

func TagSpecification(f TagFilter) sharedDomain.Specification[Tag] {
	spec := sharedDomain.NewSpecification(sharedDomain.Fold(
		sharedDomain.WhenPresent(f.Name, TagNameContains),
	))
	TagSorts.Apply(spec, f.SortBy, f.SortDescending, TagDefaultSort)
	spec.ApplyPaging(f.PageNumber, f.PageSize)
	return *spec
}
