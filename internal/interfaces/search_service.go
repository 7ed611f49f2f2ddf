package interfaces

import (
	"context"

	"github.com/ternarybob/dinescout/internal/models"
)

// SearchService runs the paginated search-and-aggregation pipeline
type SearchService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResult, error)
}
