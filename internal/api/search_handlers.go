package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/baejw0111/review-server/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchReviews",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search reviews",
		Description: "Full-text search over review titles, content, and tags",
		Tags:        []string{"Search"},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "rebuildSearchIndex",
		Method:      http.MethodPost,
		Path:        "/api/v1/search/rebuild",
		Summary:     "Rebuild the search index",
		Description: "Drops the index and reindexes every review from the database",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRebuildSearchIndex)
}

// SearchInput carries the query, filters, and pagination for a search.
type SearchInput struct {
	Query     string   `query:"q" doc:"Search query"`
	AuthorID  string   `query:"author_id" doc:"Only reviews by this author"`
	Tags      []string `query:"tag" doc:"Only reviews carrying one of these tags"`
	MinRating int      `query:"min_rating" default:"0" minimum:"0" maximum:"5" doc:"Minimum rating"`
	MaxRating int      `query:"max_rating" default:"0" minimum:"0" maximum:"5" doc:"Maximum rating; 0 means no cap"`
	SortBy    string   `query:"sort" default:"relevance" enum:"relevance,recent,likes,rating" doc:"Sort key"`
	SortOrder string   `query:"order" default:"desc" enum:"asc,desc" doc:"Sort direction"`
	Limit     int      `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Page size"`
	Offset    int      `query:"offset" default:"0" minimum:"0" doc:"Page offset"`
}

// SearchOutput wraps search results for Huma.
type SearchOutput struct {
	Body *search.Result
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	params := search.DefaultParams()
	params.Query = input.Query
	params.AuthorID = input.AuthorID
	params.Tags = input.Tags
	params.MinRating = input.MinRating
	params.MaxRating = input.MaxRating
	params.SortBy = input.SortBy
	params.SortOrder = input.SortOrder
	params.Limit = input.Limit
	params.Offset = input.Offset

	result, err := s.services.Search.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: result}, nil
}

// RebuildIndexResponse reports how many reviews were reindexed.
type RebuildIndexResponse struct {
	Indexed int `json:"indexed"`
}

// RebuildIndexOutput wraps the rebuild result for Huma.
type RebuildIndexOutput struct {
	Body RebuildIndexResponse
}

func (s *Server) handleRebuildSearchIndex(ctx context.Context, _ *struct{}) (*RebuildIndexOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	indexed, err := s.services.Search.Rebuild(ctx)
	if err != nil {
		return nil, err
	}
	return &RebuildIndexOutput{Body: RebuildIndexResponse{Indexed: indexed}}, nil
}
