package remote

import (
	"context"
	"net/http"

	"github.com/jrnavarro/coursetrack-client/internal/models"
)

// CareerRecommendation returns the derived analytics behind the guide
// chart: per-category grade averages and a recommended career label.
func (c *Client) CareerRecommendation(ctx context.Context) (*models.CareerRecommendation, error) {
	var resp struct {
		apiResponse
		Recommendation models.CareerRecommendation `json:"recommendation"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/career_recommendation/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Recommendation, nil
}
