package usecase

import (
	"context"
	"testing"
	"time"

	"fitbook/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateClass(t *testing.T) {
	store := newFakeStore()
	svc := NewClassService(newFakeRepository(store), testLogger())

	created, err := svc.CreateClass(context.Background(), &request.CreateClassRequest{
		StudioID:    uuid.New().String(),
		Title:       "Evening Spin",
		StartsAt:    time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		DurationMin: 45,
		MaxCapacity: 20,
		CreditCost:  3,
		Difficulty:  "intermediate",
	})
	require.NoError(t, err)
	assert.Equal(t, "Evening Spin", created.Title)
	assert.Equal(t, 3, created.CreditCost)
	assert.Len(t, store.classes, 1)
}

func TestCreateClassInvalidInput(t *testing.T) {
	store := newFakeStore()
	svc := NewClassService(newFakeRepository(store), testLogger())
	ctx := context.Background()

	_, err := svc.CreateClass(ctx, &request.CreateClassRequest{
		StudioID: "not-a-uuid",
		StartsAt: time.Now().Format(time.RFC3339),
	})
	assert.Error(t, err)

	_, err = svc.CreateClass(ctx, &request.CreateClassRequest{
		StudioID: uuid.New().String(),
		StartsAt: "next tuesday",
	})
	assert.Error(t, err)
	assert.Empty(t, store.classes)
}

func TestGetClass(t *testing.T) {
	store := newFakeStore()
	class := seedClass(store, 2, 10)
	svc := NewClassService(newFakeRepository(store), testLogger())
	ctx := context.Background()

	found, err := svc.GetClass(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, class.ID.String(), found.ID)

	_, err = svc.GetClass(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListClasses(t *testing.T) {
	store := newFakeStore()
	for i := 0; i < 4; i++ {
		seedClass(store, 1, 10)
	}
	svc := NewClassService(newFakeRepository(store), testLogger())

	page, err := svc.ListClasses(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 3})
	require.NoError(t, err)
	assert.Len(t, page.Data, 3)
	assert.Equal(t, int64(4), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}
