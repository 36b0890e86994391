package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/store"
)

func newTagEnv(t *testing.T) (store.Store, *TagService) {
	t.Helper()
	s := newTestStore(t)
	return s, NewTagService(s, newTestLogger())
}

func TestIncreasePreference_AppliesWeightPerTag(t *testing.T) {
	s, tags := newTagEnv(t)
	ctx := context.Background()
	user := seedTestUser(t, s, "userid01")

	err := tags.IncreasePreference(ctx, user.ID, []string{"공포영화", "스릴러"}, TagWeightAuthor)
	require.NoError(t, err)

	pref, err := s.GetTagPreference(ctx, user.ID, "공포영화")
	require.NoError(t, err)
	assert.Equal(t, TagWeightAuthor, pref.Preference)
	assert.Equal(t, "ㄱㅍㅇㅎ", pref.KoreanInitials)

	pref, err = s.GetTagPreference(ctx, user.ID, "스릴러")
	require.NoError(t, err)
	assert.Equal(t, TagWeightAuthor, pref.Preference)

	// A second interaction stacks on top.
	err = tags.IncreasePreference(ctx, user.ID, []string{"공포영화"}, TagWeightLike)
	require.NoError(t, err)

	pref, err = s.GetTagPreference(ctx, user.ID, "공포영화")
	require.NoError(t, err)
	assert.Equal(t, TagWeightAuthor+TagWeightLike, pref.Preference)
}

func TestIncreasePreference_SkipsBlankTags(t *testing.T) {
	s, tags := newTagEnv(t)
	ctx := context.Background()
	user := seedTestUser(t, s, "userid01")

	err := tags.IncreasePreference(ctx, user.ID, []string{"  ", "", "드라마"}, TagWeightLike)
	require.NoError(t, err)

	pref, err := s.GetTagPreference(ctx, user.ID, "드라마")
	require.NoError(t, err)
	assert.Equal(t, TagWeightLike, pref.Preference)
}

func TestDecreasePreference_SweepsDeadRows(t *testing.T) {
	s, tags := newTagEnv(t)
	ctx := context.Background()
	user := seedTestUser(t, s, "userid01")

	require.NoError(t, tags.IncreasePreference(ctx, user.ID, []string{"공포영화"}, TagWeightLike))
	require.NoError(t, tags.IncreasePreference(ctx, user.ID, []string{"스릴러"}, TagWeightAuthor))

	// Undoing the like brings the score to exactly zero; the row must go.
	require.NoError(t, tags.DecreasePreference(ctx, user.ID, []string{"공포영화"}, TagWeightLike))

	_, err := s.GetTagPreference(ctx, user.ID, "공포영화")
	assert.Equal(t, store.ErrNotFound, err)

	// A still-positive score survives the sweep.
	require.NoError(t, tags.DecreasePreference(ctx, user.ID, []string{"스릴러"}, TagWeightLike))
	pref, err := s.GetTagPreference(ctx, user.ID, "스릴러")
	require.NoError(t, err)
	assert.Equal(t, TagWeightAuthor-TagWeightLike, pref.Preference)
}

func TestTopTags_DefaultCountAndOrdering(t *testing.T) {
	s, tags := newTagEnv(t)
	ctx := context.Background()
	user := seedTestUser(t, s, "userid01")

	base := time.Now().Add(-time.Hour)
	seed := []struct {
		tag   string
		score int
		at    time.Time
	}{
		{"공포영화", 9, base},
		{"스릴러", 7, base.Add(time.Minute)},
		{"드라마", 7, base.Add(2 * time.Minute)},
		{"코미디", 3, base},
		{"SF소설", 2, base},
		{"로맨스", 1, base},
	}
	for _, row := range seed {
		require.NoError(t, s.UpsertTagPreference(ctx, user.ID, row.tag, "", row.score, row.at))
	}

	top, err := tags.TopTags(ctx, user.ID, 0)
	require.NoError(t, err)
	require.Len(t, top, domain.DefaultTopTagCount)

	// Score descending; the 7-7 tie goes to the more recent interaction.
	assert.Equal(t, "공포영화", top[0].TagName)
	assert.Equal(t, "드라마", top[1].TagName)
	assert.Equal(t, "스릴러", top[2].TagName)
	assert.Equal(t, "코미디", top[3].TagName)
}

func TestTopTags_ExplicitCount(t *testing.T) {
	s, tags := newTagEnv(t)
	ctx := context.Background()
	user := seedTestUser(t, s, "userid01")

	require.NoError(t, tags.IncreasePreference(ctx, user.ID, []string{"공포영화", "스릴러"}, TagWeightAuthor))

	top, err := tags.TopTags(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestPopularTags_WindowAndDistinctReviews(t *testing.T) {
	s, tags := newTagEnv(t)
	ctx := context.Background()
	author := seedTestUser(t, s, "author01")
	fans := []*domain.User{
		seedTestUser(t, s, "userid02"),
		seedTestUser(t, s, "userid03"),
	}

	horror := seedTestReview(t, s, "review000001", author.ID, "공포영화")
	drama := seedTestReview(t, s, "review000002", author.ID, "드라마")
	stale := seedTestReview(t, s, "review000003", author.ID, "로맨스")

	// Two users like the same review inside the window; it still counts
	// its tag once.
	for _, fan := range fans {
		require.NoError(t, s.CreateLike(ctx, domain.NewLike(fan.ID, horror.ID)))
	}
	require.NoError(t, s.CreateLike(ctx, domain.NewLike(fans[0].ID, drama.ID)))

	// A like older than the window does not count.
	oldLike := &domain.Like{
		UserID:   fans[1].ID,
		ReviewID: stale.ID,
		LikedAt:  time.Now().Add(-domain.PopularTagWindow - time.Hour),
	}
	require.NoError(t, s.CreateLike(ctx, oldLike))

	popular, err := tags.PopularTags(ctx)
	require.NoError(t, err)
	require.Len(t, popular, 2)

	assert.Equal(t, "공포영화", popular[0].TagName)
	assert.Equal(t, 1, popular[0].Count)
	assert.Equal(t, "드라마", popular[1].TagName)
	assert.Equal(t, 1, popular[1].Count)
}

func TestSearchRelatedTags(t *testing.T) {
	s, tags := newTagEnv(t)
	ctx := context.Background()
	user := seedTestUser(t, s, "userid01")

	require.NoError(t, tags.IncreasePreference(ctx, user.ID, []string{"공포영화", "코미디영화", "드라마"}, TagWeightAuthor))

	t.Run("substring match", func(t *testing.T) {
		names, err := tags.SearchRelatedTags(ctx, "영화")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"공포영화", "코미디영화"}, names)
	})

	t.Run("whitespace stripped match", func(t *testing.T) {
		names, err := tags.SearchRelatedTags(ctx, "공포 영화")
		require.NoError(t, err)
		assert.Equal(t, []string{"공포영화"}, names)
	})

	t.Run("choseong match", func(t *testing.T) {
		names, err := tags.SearchRelatedTags(ctx, "ㄱㅍ")
		require.NoError(t, err)
		assert.Equal(t, []string{"공포영화"}, names)
	})

	t.Run("no match", func(t *testing.T) {
		names, err := tags.SearchRelatedTags(ctx, "없는태그")
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("blank query", func(t *testing.T) {
		names, err := tags.SearchRelatedTags(ctx, "   ")
		require.NoError(t, err)
		assert.Nil(t, names)
	})
}

func TestSearchRelatedTags_SyllableQueryMatchesInitials(t *testing.T) {
	s, tags := newTagEnv(t)
	ctx := context.Background()
	user := seedTestUser(t, s, "userid01")

	// "거품" shares the "ㄱㅍ" initials with the query "공포" without
	// containing it as text; it must still match through the skeleton.
	require.NoError(t, tags.IncreasePreference(ctx, user.ID, []string{"거품", "드라마"}, TagWeightAuthor))

	names, err := tags.SearchRelatedTags(ctx, "공포")
	require.NoError(t, err)
	assert.Equal(t, []string{"거품"}, names)
}

// faultyTagStore passes through to the real store but rejects upserts for
// one tag name.
type faultyTagStore struct {
	store.Store
	rejectTag string
}

func (f *faultyTagStore) UpsertTagPreference(ctx context.Context, userID, tagName, koreanInitials string, delta int, interactedAt time.Time) error {
	if tagName == f.rejectTag {
		return errors.New("upsert rejected")
	}
	return f.Store.UpsertTagPreference(ctx, userID, tagName, koreanInitials, delta, interactedAt)
}

func TestIncreasePreference_FailedTagDoesNotBlockOthers(t *testing.T) {
	s, _ := newTagEnv(t)
	ctx := context.Background()
	user := seedTestUser(t, s, "userid01")

	tags := NewTagService(&faultyTagStore{Store: s, rejectTag: "코미디"}, newTestLogger())

	err := tags.IncreasePreference(ctx, user.ID, []string{"공포영화", "코미디", "드라마"}, TagWeightAuthor)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "코미디")

	// The rejected tag is reported; the tags around it still land.
	for _, tag := range []string{"공포영화", "드라마"} {
		pref, err := s.GetTagPreference(ctx, user.ID, tag)
		require.NoError(t, err, tag)
		assert.Equal(t, TagWeightAuthor, pref.Preference)
	}
	_, err = s.GetTagPreference(ctx, user.ID, "코미디")
	assert.Equal(t, store.ErrNotFound, err)
}
