package community

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) (*Store, *clockwork.FakeClock) {
	t.Helper()
	fc := clockwork.NewFakeClockAt(time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC))
	s, err := Open(filepath.Join(t.TempDir(), "community.db"), fc)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s, fc
}

func TestCreatePlan(t *testing.T) {
	s, fc := testStore(t)
	ctx := context.Background()

	p, err := s.CreatePlan(ctx, NewPlan{
		Title:             "  Rooftop Garden Initiative  ",
		Description:       "Convert flat roofs to gardens.",
		PlanType:          "Green Infrastructure",
		ProposedStartDate: "2025-09-01",
	})
	require.NoError(t, err)

	assert.Len(t, p.ID, 8)
	assert.Equal(t, "Rooftop Garden Initiative", p.Title)
	assert.Equal(t, fc.Now(), p.UploadDate)
	assert.Zero(t, p.Upvotes)
	assert.Zero(t, p.Downvotes)

	got, err := s.GetPlan(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestCreatePlanValidation(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	_, err := s.CreatePlan(ctx, NewPlan{Description: "no title"})
	assert.ErrorContains(t, err, "title")

	_, err = s.CreatePlan(ctx, NewPlan{Title: "no description", Description: "   "})
	assert.ErrorContains(t, err, "description")
}

func TestGetPlanNotFound(t *testing.T) {
	s, _ := testStore(t)
	_, err := s.GetPlan(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

func seedPlans(t *testing.T, s *Store, fc *clockwork.FakeClock) (a, b, c Plan) {
	t.Helper()
	ctx := context.Background()
	var err error

	a, err = s.CreatePlan(ctx, NewPlan{Title: "Bike Lanes", Description: "Protected cycling network", PlanType: "Transport"})
	require.NoError(t, err)
	fc.Advance(time.Hour)
	b, err = s.CreatePlan(ctx, NewPlan{Title: "Urban Forest", Description: "Tree planting program", PlanType: "Green Infrastructure"})
	require.NoError(t, err)
	fc.Advance(time.Hour)
	c, err = s.CreatePlan(ctx, NewPlan{Title: "Cool Roofs", Description: "Reflective roofing subsidies", PlanType: "Green Infrastructure"})
	require.NoError(t, err)
	return a, b, c
}

func TestListPlans(t *testing.T) {
	s, fc := testStore(t)
	ctx := context.Background()
	a, b, c := seedPlans(t, s, fc)

	t.Run("default sort is newest first", func(t *testing.T) {
		plans, err := s.ListPlans(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, plans, 3)
		assert.Equal(t, []string{c.ID, b.ID, a.ID}, []string{plans[0].ID, plans[1].ID, plans[2].ID})
	})

	t.Run("search matches title and description", func(t *testing.T) {
		plans, err := s.ListPlans(ctx, Filter{Search: "TREE"})
		require.NoError(t, err)
		require.Len(t, plans, 1)
		assert.Equal(t, b.ID, plans[0].ID)
	})

	t.Run("type filter", func(t *testing.T) {
		plans, err := s.ListPlans(ctx, Filter{PlanType: "Green Infrastructure"})
		require.NoError(t, err)
		assert.Len(t, plans, 2)
	})

	t.Run("sort by title", func(t *testing.T) {
		plans, err := s.ListPlans(ctx, Filter{SortBy: "title"})
		require.NoError(t, err)
		require.Len(t, plans, 3)
		assert.Equal(t, "Bike Lanes", plans[0].Title)
		assert.Equal(t, "Cool Roofs", plans[1].Title)
		assert.Equal(t, "Urban Forest", plans[2].Title)
	})

	t.Run("sort by most votes", func(t *testing.T) {
		_, err := s.CastVote(ctx, a.ID, "up")
		require.NoError(t, err)
		_, err = s.CastVote(ctx, a.ID, "down")
		require.NoError(t, err)
		_, err = s.CastVote(ctx, b.ID, "up")
		require.NoError(t, err)

		plans, err := s.ListPlans(ctx, Filter{SortBy: "most_votes"})
		require.NoError(t, err)
		require.Len(t, plans, 3)
		assert.Equal(t, a.ID, plans[0].ID)
		assert.Equal(t, b.ID, plans[1].ID)
	})

	t.Run("no matches returns empty", func(t *testing.T) {
		plans, err := s.ListPlans(ctx, Filter{Search: "monorail"})
		require.NoError(t, err)
		assert.Empty(t, plans)
	})
}

func TestCastVote(t *testing.T) {
	s, fc := testStore(t)
	ctx := context.Background()
	a, _, _ := seedPlans(t, s, fc)

	p, err := s.CastVote(ctx, a.ID, "up")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Upvotes)

	p, err = s.CastVote(ctx, a.ID, "down")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Upvotes)
	assert.Equal(t, 1, p.Downvotes)

	_, err = s.CastVote(ctx, "deadbeef", "up")
	assert.ErrorIs(t, err, ErrPlanNotFound)

	_, err = s.CastVote(ctx, a.ID, "sideways")
	assert.ErrorContains(t, err, "invalid vote direction")

	history, err := s.VoteHistory(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "up", history[0].VoteType)
	assert.Equal(t, "down", history[1].VoteType)
	assert.Equal(t, fc.Now(), history[0].VotedAt)
}

func TestSummary(t *testing.T) {
	s, fc := testStore(t)
	ctx := context.Background()

	t.Run("empty board", func(t *testing.T) {
		sum, err := s.Summary(ctx)
		require.NoError(t, err)
		assert.Zero(t, sum.TotalPlans)
		assert.Zero(t, sum.TotalVotes)
		assert.Empty(t, sum.MostPopularPlan)
	})

	t.Run("most popular by net upvotes", func(t *testing.T) {
		a, b, _ := seedPlans(t, s, fc)
		for i := 0; i < 3; i++ {
			_, err := s.CastVote(ctx, a.ID, "up")
			require.NoError(t, err)
		}
		_, err := s.CastVote(ctx, a.ID, "down")
		require.NoError(t, err)
		_, err = s.CastVote(ctx, b.ID, "up")
		require.NoError(t, err)

		sum, err := s.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, sum.TotalPlans)
		assert.Equal(t, 5, sum.TotalVotes)
		assert.Equal(t, "Bike Lanes", sum.MostPopularPlan)
	})
}
