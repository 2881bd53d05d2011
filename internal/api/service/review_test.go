package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/cleanconnect/platform-be/internal/api/domain"
	"github.com/cleanconnect/platform-be/internal/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedEngagement(t *testing.T, svc *Service) *model.Job {
	t.Helper()
	ctx := context.Background()

	job := postJob(t, svc, 35000)
	app, err := svc.SubmitApplication(ctx, cleaner, job.JobID)
	require.NoError(t, err)
	_, err = svc.AcceptApplication(ctx, hotel, job.JobID, app.ApplicationID)
	require.NoError(t, err)
	_, err = svc.StartWork(ctx, cleaner, job.JobID)
	require.NoError(t, err)
	_, err = svc.CompleteWork(ctx, cleaner, job.JobID)
	require.NoError(t, err)
	return job
}

func goodRating() domain.Rating {
	return domain.Rating{Overall: 5, Quality: 5, Timeliness: 4, Communication: 5, Professionalism: 5}
}

func TestSubmitReview(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()
	job := completedEngagement(t, svc)

	t.Run("hotel reviews the cleaner", func(t *testing.T) {
		review, err := svc.SubmitReview(ctx, hotel, SubmitReviewParams{
			JobID:     job.JobID,
			SubjectID: cleaner.ID,
			Rating:    goodRating(),
			Comment:   "Spotless, ahead of schedule",
		})
		require.NoError(t, err)
		assert.Equal(t, domain.ReviewAuthorHotel, review.AuthorRole)
		assert.Equal(t, cleaner.ID, review.SubjectID)
	})

	t.Run("second hotel review is a duplicate", func(t *testing.T) {
		_, err := svc.SubmitReview(ctx, hotel, SubmitReviewParams{
			JobID:     job.JobID,
			SubjectID: cleaner.ID,
			Rating:    goodRating(),
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateReview)
	})

	t.Run("the cleaner still gets their one review", func(t *testing.T) {
		_, err := svc.SubmitReview(ctx, cleaner, SubmitReviewParams{
			JobID:     job.JobID,
			SubjectID: hotel.ID,
			Rating:    goodRating(),
		})
		require.NoError(t, err)
	})

	t.Run("rating out of range", func(t *testing.T) {
		bad := goodRating()
		bad.Timeliness = 6
		_, err := svc.SubmitReview(ctx, hotel, SubmitReviewParams{
			JobID:     job.JobID,
			SubjectID: cleaner.ID,
			Rating:    bad,
		})
		assert.ErrorIs(t, err, domain.ErrRatingOutOfRange)
	})

	t.Run("outsiders may not review", func(t *testing.T) {
		stranger := Actor{ID: "cleaner-99", Role: domain.RoleCleaner}
		_, err := svc.SubmitReview(ctx, stranger, SubmitReviewParams{
			JobID:     job.JobID,
			SubjectID: hotel.ID,
			Rating:    goodRating(),
		})
		assert.ErrorIs(t, err, domain.ErrActorNotAllowed)
	})
}

func TestSubmitReview_JobNotCompleted(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()

	job := postJob(t, svc, 10000)

	_, err := svc.SubmitReview(ctx, hotel, SubmitReviewParams{
		JobID:     job.JobID,
		SubjectID: cleaner.ID,
		Rating:    goodRating(),
	})
	assert.ErrorIs(t, err, domain.ErrJobNotCompleted)
}

func TestAttachResponse(t *testing.T) {
	svc := newTestService(newFakeStore())
	ctx := context.Background()
	job := completedEngagement(t, svc)

	review, err := svc.SubmitReview(ctx, hotel, SubmitReviewParams{
		JobID:     job.JobID,
		SubjectID: cleaner.ID,
		Rating:    goodRating(),
	})
	require.NoError(t, err)

	t.Run("only the subject responds", func(t *testing.T) {
		_, err := svc.AttachResponse(ctx, hotel, review.ReviewID, "thanks")
		assert.ErrorIs(t, err, domain.ErrNotSubject)
	})

	t.Run("subject responds once", func(t *testing.T) {
		updated, err := svc.AttachResponse(ctx, cleaner, review.ReviewID, "thank you!")
		require.NoError(t, err)
		require.NotNil(t, updated.Response)
		assert.Equal(t, "thank you!", *updated.Response)

		_, err = svc.AttachResponse(ctx, cleaner, review.ReviewID, "again")
		assert.ErrorIs(t, err, domain.ErrResponseAlreadyExists)
	})
}

func TestAggregateFor(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)
	ctx := context.Background()

	t.Run("no reviews yields zero aggregate", func(t *testing.T) {
		agg, err := svc.AggregateFor(ctx, "nobody")
		require.NoError(t, err)
		assert.Equal(t, domain.RatingAggregate{}, agg)
	})

	t.Run("means over submitted reviews", func(t *testing.T) {
		job := completedEngagement(t, svc)
		_, err := svc.SubmitReview(ctx, hotel, SubmitReviewParams{
			JobID:     job.JobID,
			SubjectID: cleaner.ID,
			Rating:    domain.Rating{Overall: 4, Quality: 4, Timeliness: 4, Communication: 4, Professionalism: 4},
		})
		require.NoError(t, err)

		agg, err := svc.AggregateFor(ctx, cleaner.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, agg.ReviewCount)
		assert.Equal(t, 4.0, agg.Overall)
		assert.Equal(t, 4.0, agg.Quality)
	})
}

func TestAggregateFor_CacheInvalidation(t *testing.T) {
	store := newFakeStore()
	cache := &fakeCache{data: map[string][]byte{}}
	svc := New(&Config{
		Store:  store,
		Cache:  cache,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Rates:  Rates{CommissionBps: 1000, ProcessingFeeBps: 290},
	})
	ctx := context.Background()

	// First read populates the cache.
	_, err := svc.AggregateFor(ctx, cleaner.ID)
	require.NoError(t, err)
	assert.Contains(t, cache.data, aggregateKey(cleaner.ID))

	// A new review invalidates it.
	job := completedEngagement(t, svc)
	_, err = svc.SubmitReview(ctx, hotel, SubmitReviewParams{
		JobID:     job.JobID,
		SubjectID: cleaner.ID,
		Rating:    goodRating(),
	})
	require.NoError(t, err)
	assert.NotContains(t, cache.data, aggregateKey(cleaner.ID))
}
