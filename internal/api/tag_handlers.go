package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/baejw0111/review-server/internal/domain"
)

func (s *Server) registerTagRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getTopTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/top",
		Summary:     "Get own top tags",
		Description: "Returns the caller's highest-scored tags, ties broken by most recent interaction",
		Tags:        []string{"Tags"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetTopTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPopularTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/popular",
		Summary:     "Get popular tags",
		Description: "Returns the most-liked tags over the trailing six hours",
		Tags:        []string{"Tags"},
	}, s.handleGetPopularTags)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRelatedTags",
		Method:      http.MethodGet,
		Path:        "/api/v1/tags/related",
		Summary:     "Search related tags",
		Description: "Returns tags matching a partial query, including Korean initial-consonant input",
		Tags:        []string{"Tags"},
	}, s.handleGetRelatedTags)
}

// TopTagsInput sizes the top-tag query.
type TopTagsInput struct {
	N int `query:"n" default:"0" minimum:"0" maximum:"50" doc:"How many tags to return; 0 uses the default"`
}

// TopTagsResponse lists the caller's top tags with scores.
type TopTagsResponse struct {
	Tags []*domain.TagPreference `json:"tags"`
}

// TopTagsOutput wraps the top-tag list for Huma.
type TopTagsOutput struct {
	Body TopTagsResponse
}

func (s *Server) handleGetTopTags(ctx context.Context, input *TopTagsInput) (*TopTagsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	tags, err := s.services.Tag.TopTags(ctx, userID, input.N)
	if err != nil {
		return nil, err
	}
	return &TopTagsOutput{Body: TopTagsResponse{Tags: tags}}, nil
}

// PopularTagsResponse lists trending tags with their like counts.
type PopularTagsResponse struct {
	Tags []*domain.PopularTag `json:"tags"`
}

// PopularTagsOutput wraps the popular-tag list for Huma.
type PopularTagsOutput struct {
	Body PopularTagsResponse
}

func (s *Server) handleGetPopularTags(ctx context.Context, _ *struct{}) (*PopularTagsOutput, error) {
	tags, err := s.services.Tag.PopularTags(ctx)
	if err != nil {
		return nil, err
	}
	return &PopularTagsOutput{Body: PopularTagsResponse{Tags: tags}}, nil
}

// RelatedTagsInput carries the partial tag query.
type RelatedTagsInput struct {
	Query string `query:"q" doc:"Partial tag name or Korean initial consonants"`
}

// RelatedTagsResponse lists tag names matching the query.
type RelatedTagsResponse struct {
	Tags []string `json:"tags"`
}

// RelatedTagsOutput wraps the related-tag list for Huma.
type RelatedTagsOutput struct {
	Body RelatedTagsResponse
}

func (s *Server) handleGetRelatedTags(ctx context.Context, input *RelatedTagsInput) (*RelatedTagsOutput, error) {
	tags, err := s.services.Tag.SearchRelatedTags(ctx, input.Query)
	if err != nil {
		return nil, err
	}
	return &RelatedTagsOutput{Body: RelatedTagsResponse{Tags: tags}}, nil
}
