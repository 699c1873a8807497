package schema

import (
	"errors"

	"foliocms/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

func hashPassword(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return value, nil
	}
	return models.HashPassword(s)
}

// stringArray accepts absent values and lists whose elements are all strings.
// Anything else would be stored verbatim and break every later read of the
// column, so it is rejected up front.
func stringArray(value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []string:
		return nil
	case []any:
		for _, item := range v {
			if _, ok := item.(string); !ok {
				return errors.New("must be an array of strings")
			}
		}
		return nil
	default:
		return errors.New("must be an array of strings")
	}
}

func idField() []Field {
	return []Field{
		{JSON: "id", Column: "id", Type: "integer", Immutable: true},
	}
}

func serverAssigned() []Field {
	return append(idField(),
		Field{JSON: "createdAt", Column: "created_at", Type: "string", Immutable: true},
		Field{JSON: "updatedAt", Column: "updated_at", Type: "string", Immutable: true},
	)
}

func contentRelations() []Relation {
	return []Relation{
		{Name: "User", Target: "user"},
		{Name: "Tags", Target: "tag", Many: true},
		{Name: "Categories", Target: "category", Many: true},
	}
}

// Users describes the user entity kind.
var Users = Entity{
	Name: "user",
	Path: "users",
	Fields: append([]Field{
		{JSON: "username", Column: "username", Type: "string", Required: true},
		{JSON: "email", Column: "email", Type: "string", Required: true, Rules: []validation.Rule{is.Email}},
		{JSON: "password", Column: "password", Type: "string", Required: true, WriteOnly: true, Transform: hashPassword},
		{JSON: "firstName", Column: "first_name", Type: "string"},
		{JSON: "lastName", Column: "last_name", Type: "string"},
		{JSON: "phoneNumber", Column: "phone_number", Type: "string"},
		{JSON: "bio", Column: "bio", Type: "string"},
		{JSON: "avatar", Column: "avatar", Type: "string"},
		{JSON: "socialLinks", Column: "social_links", Type: "array", Rules: []validation.Rule{validation.By(stringArray)}},
	}, serverAssigned()...),
}

// Projects describes the project entity kind.
var Projects = Entity{
	Name: "project",
	Path: "projects",
	Fields: append([]Field{
		{JSON: "userId", Column: "user_id", Type: "integer", Required: true},
		{JSON: "title", Column: "title", Type: "string", Required: true},
		{JSON: "description", Column: "description", Type: "string", Required: true},
		{JSON: "imageUrls", Column: "image_urls", Type: "array", Rules: []validation.Rule{validation.By(stringArray)}},
		{JSON: "links", Column: "links", Type: "array", Rules: []validation.Rule{validation.By(stringArray)}},
	}, serverAssigned()...),
	Relations: contentRelations(),
}

// Blogs describes the blog entity kind.
var Blogs = Entity{
	Name: "blog",
	Path: "blogs",
	Fields: append([]Field{
		{JSON: "userId", Column: "user_id", Type: "integer", Required: true},
		{JSON: "title", Column: "title", Type: "string", Required: true},
		{JSON: "content", Column: "content", Type: "string", Required: true},
		{JSON: "status", Column: "status", Type: "string", Required: true,
			Rules: []validation.Rule{validation.In("Draft", "Published").Error("must be Draft or Published")}},
		{JSON: "cover", Column: "cover", Type: "string"},
	}, serverAssigned()...),
	Relations: contentRelations(),
}

// Services describes the service entity kind.
var Services = Entity{
	Name: "service",
	Path: "services",
	Fields: append([]Field{
		{JSON: "userId", Column: "user_id", Type: "integer", Required: true},
		{JSON: "title", Column: "title", Type: "string", Required: true},
		{JSON: "description", Column: "description", Type: "string", Required: true},
		{JSON: "cover", Column: "cover", Type: "string"},
		{JSON: "price", Column: "price", Type: "number", Required: true},
		{JSON: "duration", Column: "duration", Type: "integer", Required: true},
	}, serverAssigned()...),
	Relations: contentRelations(),
}

// Tags describes the tag entity kind.
var Tags = Entity{
	Name: "tag",
	Path: "tags",
	Fields: append([]Field{
		{JSON: "name", Column: "name", Type: "string", Required: true},
	}, idField()...),
}

// Categories describes the category entity kind.
var Categories = Entity{
	Name: "category",
	Path: "categories",
	Fields: append([]Field{
		{JSON: "name", Column: "name", Type: "string", Required: true},
		{JSON: "description", Column: "description", Type: "string"},
	}, idField()...),
}

// All returns every registered entity kind in route order.
func All() []Entity {
	return []Entity{Users, Projects, Blogs, Services, Tags, Categories}
}
