package ports

import (
	"context"

	"github.com/goganux/texas-career-path-explorer/pkg/domain"
)

// MarketSource provides job market trends for an interest.
type MarketSource interface {
	Trends(ctx context.Context, interestID int) (domain.MarketTrends, error)
}
