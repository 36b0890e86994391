package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/baejw0111/review-server/internal/errors"
)

type createReviewInput struct {
	Title   string   `json:"title"   validate:"required,max=100"`
	Content string   `json:"content" validate:"required"`
	Rating  int      `json:"rating"  validate:"gte=1,lte=5"`
	Tags    []string `json:"tags"    validate:"max=5,dive,required,max=30"`
}

func TestValidate_Passes(t *testing.T) {
	v := New()

	err := v.Validate(createReviewInput{
		Title:   "곡성 후기",
		Content: "무서웠다",
		Rating:  5,
		Tags:    []string{"공포영화"},
	})
	assert.NoError(t, err)
}

func TestValidate_MissingRequired(t *testing.T) {
	v := New()

	err := v.Validate(createReviewInput{Rating: 3})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "is required", details["title"])
	assert.Equal(t, "is required", details["content"])
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(createReviewInput{Title: "t", Content: "c", Rating: 9})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))

	details, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	_, hasJSONName := details["rating"]
	assert.True(t, hasJSONName, "details should be keyed by json tag name, got %v", details)
}

func TestValidate_TagListLimit(t *testing.T) {
	v := New()

	err := v.Validate(createReviewInput{
		Title:   "t",
		Content: "c",
		Rating:  3,
		Tags:    []string{"a", "b", "c", "d", "e", "f"},
	})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}
