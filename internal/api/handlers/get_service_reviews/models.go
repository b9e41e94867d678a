package get_service_reviews

import (
	"net/url"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/service/reviews/models"
)

// ToServiceRequest query параметры page, limit, rating
func ToServiceRequest(query url.Values) (*models.ListReviewsRequest, error) {
	req := &models.ListReviewsRequest{}

	page, err := handlers.QueryInt(query, "page")
	if err != nil {
		return nil, err
	}
	if page != nil {
		req.Page = *page
	}

	limit, err := handlers.QueryInt(query, "limit")
	if err != nil {
		return nil, err
	}
	if limit != nil {
		req.Limit = *limit
	}

	if req.Rating, err = handlers.QueryInt(query, "rating"); err != nil {
		return nil, err
	}

	return req, nil
}
