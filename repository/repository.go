// Package repository is the persistence boundary for the resource API. One
// generic GORM-backed repository serves every entity kind; the bound schema
// entry decides which relations are expanded on reads.
package repository

import (
	"context"
	"errors"
	"time"

	"foliocms/models"
	"foliocms/observability"
	"foliocms/schema"

	"gorm.io/gorm"
)

// DefaultTimeout bounds every repository call; the store gives no latency
// guarantee of its own.
const DefaultTimeout = 5 * time.Second

// Repository defines the data operations every entity kind binds to.
type Repository[T models.Entity] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, entity *T) (*T, error)
	Update(ctx context.Context, id uint, columns map[string]any) (*T, error)
	Delete(ctx context.Context, id uint) error
}

// gormRepository implements Repository on a shared *gorm.DB.
type gormRepository[T models.Entity] struct {
	db      *gorm.DB
	entity  schema.Entity
	timeout time.Duration
}

// New creates a repository for one entity kind.
func New[T models.Entity](db *gorm.DB, entity schema.Entity) Repository[T] {
	return &gormRepository[T]{db: db, entity: entity, timeout: DefaultTimeout}
}

func (r *gormRepository[T]) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

// observe opens a trace span and latency timer for one store call. The
// returned function ends both.
func (r *gormRepository[T]) observe(ctx context.Context, operation string) (context.Context, func()) {
	ctx, span := observability.StartQuerySpan(ctx, operation, r.entity.Name)
	stop := observability.TrackQuery(operation, r.entity.Name)
	return ctx, func() {
		stop()
		span.End()
	}
}

// expanded returns a query with the entity's default relations preloaded.
func (r *gormRepository[T]) expanded(ctx context.Context) *gorm.DB {
	tx := r.db.WithContext(ctx)
	for _, name := range r.entity.PreloadNames() {
		tx = tx.Preload(name)
	}
	return tx
}

func (r *gormRepository[T]) List(ctx context.Context) ([]T, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	ctx, done := r.observe(ctx, "list")
	defer done()

	items := make([]T, 0)
	if err := r.expanded(ctx).Find(&items).Error; err != nil {
		return nil, r.translate(err)
	}
	return items, nil
}

func (r *gormRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	ctx, done := r.observe(ctx, "get")
	defer done()

	var item T
	if err := r.expanded(ctx).First(&item, id).Error; err != nil {
		return nil, r.translate(err)
	}
	return &item, nil
}

func (r *gormRepository[T]) Create(ctx context.Context, entity *T) (*T, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	ctx, done := r.observe(ctx, "create")
	defer done()

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return nil, r.translate(err)
	}
	return r.GetByID(ctx, (*entity).GetID())
}

func (r *gormRepository[T]) Update(ctx context.Context, id uint, columns map[string]any) (*T, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	ctx, done := r.observe(ctx, "update")
	defer done()

	var existing T
	if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return nil, r.translate(err)
	}
	if len(columns) > 0 {
		if err := r.db.WithContext(ctx).Model(&existing).Updates(columns).Error; err != nil {
			return nil, r.translate(err)
		}
	}
	return r.GetByID(ctx, id)
}

func (r *gormRepository[T]) Delete(ctx context.Context, id uint) error {
	ctx, cancel := r.bound(ctx)
	defer cancel()
	ctx, done := r.observe(ctx, "delete")
	defer done()

	var existing T
	if err := r.db.WithContext(ctx).First(&existing, id).Error; err != nil {
		return r.translate(err)
	}
	result := r.db.WithContext(ctx).Delete(&existing)
	if result.Error != nil {
		return r.translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError(r.entity.Name)
	}
	return nil
}

// translate maps store errors onto the application error taxonomy.
func (r *gormRepository[T]) translate(err error) error {
	var appErr *models.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.NewNotFoundError(r.entity.Name)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return models.NewConflictError(r.entity.Name + " violates a unique constraint")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return models.NewConflictError(r.entity.Name + " references a missing record")
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewUnavailableError(err)
	default:
		return models.NewInternalError(err)
	}
}
