package usecase

import (
	"context"
	"testing"

	"eventmate/internal/data/entity"
	"eventmate/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewAddKeepsOrder(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)
	ctx := context.Background()
	eventID := f.events.seed(&entity.Event{Name: "Gig"}).Hex()

	first, err := svc.Review.Add(ctx, "user-1", eventID, &request.CreateReviewRequest{Comment: "great", Rating: 5})
	require.NoError(t, err)
	second, err := svc.Review.Add(ctx, "user-1", eventID, &request.CreateReviewRequest{Comment: "meh", Rating: 3, UserID: "guest"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ReviewID, second.ReviewID)

	reviews, err := svc.Review.List(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, first.ReviewID, reviews[0].ID)
	assert.Equal(t, "user-1", reviews[0].UserID)
	assert.Equal(t, "guest", reviews[1].UserID)
}

func TestReviewAddValidation(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)
	eventID := f.events.seed(&entity.Event{Name: "Gig"}).Hex()

	_, err := svc.Review.Add(context.Background(), "u", eventID, &request.CreateReviewRequest{Comment: "x", Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Review.Add(context.Background(), "u", "64b7f0c2a1b2c3d4e5f60718", &request.CreateReviewRequest{Comment: "x", Rating: 4})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewUpdateAndDelete(t *testing.T) {
	f := newFixture()
	svc := newTestService(f)
	ctx := context.Background()
	eventID := f.events.seed(&entity.Event{Name: "Gig"}).Hex()

	created, err := svc.Review.Add(ctx, "u", eventID, &request.CreateReviewRequest{Comment: "ok", Rating: 3})
	require.NoError(t, err)

	require.NoError(t, svc.Review.Update(ctx, eventID, created.ReviewID, &request.UpdateReviewRequest{Rating: intPtr(4)}))

	reviews, err := svc.Review.List(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, "ok", reviews[0].Comment)

	err = svc.Review.Update(ctx, eventID, "missing", &request.UpdateReviewRequest{Rating: intPtr(4)})
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "review")

	require.NoError(t, svc.Review.Delete(ctx, eventID, created.ReviewID))
	reviews, err = svc.Review.List(ctx, eventID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	err = svc.Review.Delete(ctx, eventID, created.ReviewID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReviewListMissingEvent(t *testing.T) {
	svc := newTestService(newFixture())

	_, err := svc.Review.List(context.Background(), "64b7f0c2a1b2c3d4e5f60718")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "event")

	_, err = svc.Review.List(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
