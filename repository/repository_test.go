package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"foliocms/database"
	"foliocms/models"
	"foliocms/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createOwner(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		Username: "owner",
		Email:    "owner@example.com",
		Password: "password123",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestCreateThenGetByID(t *testing.T) {
	db := setupTestDB(t)
	owner := createOwner(t, db)
	blogs := New[models.Blog](db, schema.Blogs)
	ctx := context.Background()

	created, err := blogs.Create(ctx, &models.Blog{
		UserID:  owner.ID,
		Title:   "A",
		Content: "B",
		Status:  models.BlogStatusDraft,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	fetched, err := blogs.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", fetched.Title)
	assert.Equal(t, "B", fetched.Content)
	assert.Equal(t, models.BlogStatusDraft, fetched.Status)
	// Owner is expanded by default.
	assert.Equal(t, owner.ID, fetched.User.ID)
	assert.Equal(t, "owner", fetched.User.Username)
}

func TestListExpandsRelations(t *testing.T) {
	db := setupTestDB(t)
	owner := createOwner(t, db)
	projects := New[models.Project](db, schema.Projects)
	ctx := context.Background()

	tag := models.Tag{Name: "go"}
	require.NoError(t, db.Create(&tag).Error)
	category := models.Category{Name: "Engineering"}
	require.NoError(t, db.Create(&category).Error)

	_, err := projects.Create(ctx, &models.Project{
		UserID:      owner.ID,
		Title:       "P",
		Description: "D",
		Tags:        []models.Tag{tag},
		Categories:  []models.Category{category},
	})
	require.NoError(t, err)

	list, err := projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, owner.ID, list[0].User.ID)
	require.Len(t, list[0].Tags, 1)
	assert.Equal(t, "go", list[0].Tags[0].Name)
	require.Len(t, list[0].Categories, 1)
	assert.Equal(t, "Engineering", list[0].Categories[0].Name)
}

func TestListEmptyReturnsEmptySlice(t *testing.T) {
	db := setupTestDB(t)
	services := New[models.Service](db, schema.Services)

	list, err := services.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestMissingIDYieldsNotFound(t *testing.T) {
	db := setupTestDB(t)
	services := New[models.Service](db, schema.Services)
	ctx := context.Background()

	_, err := services.GetByID(ctx, 9999)
	assertNotFound(t, err, "service not found")

	_, err = services.Update(ctx, 9999, map[string]any{"title": "x"})
	assertNotFound(t, err, "service not found")

	err = services.Delete(ctx, 9999)
	assertNotFound(t, err, "service not found")
}

func TestPartialUpdateMergesFields(t *testing.T) {
	db := setupTestDB(t)
	owner := createOwner(t, db)
	blogs := New[models.Blog](db, schema.Blogs)
	ctx := context.Background()

	created, err := blogs.Create(ctx, &models.Blog{
		UserID:  owner.ID,
		Title:   "Original",
		Content: "Body",
		Status:  models.BlogStatusDraft,
	})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	updated, err := blogs.Update(ctx, created.ID, map[string]any{"status": models.BlogStatusPublished})
	require.NoError(t, err)

	assert.Equal(t, models.BlogStatusPublished, updated.Status)
	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "Body", updated.Content)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt),
		"updatedAt must advance on update")
	assert.Equal(t, created.CreatedAt.Unix(), updated.CreatedAt.Unix())
}

func TestDeleteIsNotIdempotent(t *testing.T) {
	db := setupTestDB(t)
	owner := createOwner(t, db)
	projects := New[models.Project](db, schema.Projects)
	ctx := context.Background()

	created, err := projects.Create(ctx, &models.Project{
		UserID:      owner.ID,
		Title:       "P",
		Description: "D",
	})
	require.NoError(t, err)

	require.NoError(t, projects.Delete(ctx, created.ID))

	_, err = projects.GetByID(ctx, created.ID)
	assertNotFound(t, err, "project not found")

	err = projects.Delete(ctx, created.ID)
	assertNotFound(t, err, "project not found")
}

func TestSoftDeletedRowsExcludedFromList(t *testing.T) {
	db := setupTestDB(t)
	owner := createOwner(t, db)
	blogs := New[models.Blog](db, schema.Blogs)
	ctx := context.Background()

	created, err := blogs.Create(ctx, &models.Blog{
		UserID: owner.ID, Title: "T", Content: "C", Status: models.BlogStatusDraft,
	})
	require.NoError(t, err)
	require.NoError(t, blogs.Delete(ctx, created.ID))

	list, err := blogs.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// The row is retained in storage with its deletion marker set.
	var raw int64
	require.NoError(t, db.Unscoped().Model(&models.Blog{}).Where("deleted_at IS NOT NULL").Count(&raw).Error)
	assert.EqualValues(t, 1, raw)
}

func TestDeleteOwnerWithContentRejected(t *testing.T) {
	db := setupTestDB(t)
	owner := createOwner(t, db)
	users := New[models.User](db, schema.Users)
	blogs := New[models.Blog](db, schema.Blogs)
	ctx := context.Background()

	created, err := blogs.Create(ctx, &models.Blog{
		UserID: owner.ID, Title: "T", Content: "C", Status: models.BlogStatusDraft,
	})
	require.NoError(t, err)

	err = users.Delete(ctx, owner.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)

	// Once the content is gone the owner can be deleted.
	require.NoError(t, blogs.Delete(ctx, created.ID))
	require.NoError(t, db.Unscoped().Where("id = ?", created.ID).Delete(&models.Blog{}).Error)
	require.NoError(t, users.Delete(ctx, owner.ID))
}

func TestDuplicateUniqueFieldYieldsConflict(t *testing.T) {
	db := setupTestDB(t)
	users := New[models.User](db, schema.Users)
	ctx := context.Background()

	_, err := users.Create(ctx, &models.User{
		Username: "a", Email: "a@example.com", Password: "pw",
	})
	require.NoError(t, err)

	_, err = users.Create(ctx, &models.User{
		Username: "b", Email: "a@example.com", Password: "pw",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func assertNotFound(t *testing.T, err error, message string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
	assert.Equal(t, message, appErr.Message)
}
