package server

import (
	"encoding/json"

	"foliocms/models"
	"foliocms/repository"
	"foliocms/schema"

	"github.com/gofiber/fiber/v2"
)

// resource is the generic CRUD controller. One instance is bound per entity
// kind at registration time; it translates repository outcomes into HTTP
// responses and holds no entity-specific logic of its own.
type resource[T models.Entity] struct {
	entity schema.Entity
	repo   repository.Repository[T]
}

// registerResource binds the five resource operations for one entity kind.
func registerResource[T models.Entity](router fiber.Router, entity schema.Entity, repo repository.Repository[T]) {
	rc := &resource[T]{entity: entity, repo: repo}

	group := router.Group("/" + entity.Path)
	group.Get("/", rc.List)
	group.Post("/", rc.Create)
	group.Get("/:id", rc.Get)
	group.Put("/:id", rc.Update)
	group.Delete("/:id", rc.Delete)
}

func (r *resource[T]) paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return 0, models.NewValidationError("invalid " + r.entity.Name + " ID")
	}
	return uint(id), nil
}

// List handles GET /{kind}
func (r *resource[T]) List(c *fiber.Ctx) error {
	items, err := r.repo.List(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(items)
}

// Get handles GET /{kind}/{id}
func (r *resource[T]) Get(c *fiber.Ctx) error {
	id, err := r.paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	item, err := r.repo.GetByID(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(item)
}

// Create handles POST /{kind}
func (r *resource[T]) Create(c *fiber.Ctx) error {
	body := c.Body()

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}
	if err := r.entity.ValidateCreate(fields); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	// Only registered writable fields reach the model. The id, timestamps
	// and nested relation objects are dropped before unmarshalling.
	writable, err := r.entity.WritableFields(fields)
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	payload, err := json.Marshal(writable)
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}

	var entity T
	if err := json.Unmarshal(payload, &entity); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}

	created, err := r.repo.Create(c.Context(), &entity)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(created)
}

// Update handles PUT /{kind}/{id}
func (r *resource[T]) Update(c *fiber.Ctx) error {
	id, err := r.paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var fields map[string]any
	if err := json.Unmarshal(c.Body(), &fields); err != nil {
		return models.RespondWithError(c, models.NewValidationError("invalid request body"))
	}
	if err := r.entity.ValidateUpdate(fields); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}
	columns, err := r.entity.Columns(fields)
	if err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	updated, err := r.repo.Update(c.Context(), id, columns)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(updated)
}

// Delete handles DELETE /{kind}/{id}
func (r *resource[T]) Delete(c *fiber.Ctx) error {
	id, err := r.paramID(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := r.repo.Delete(c.Context(), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
