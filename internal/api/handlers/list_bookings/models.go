package list_bookings

import (
	"errors"
	"net/url"
	"time"

	"github.com/abhi96256/Appoinment/internal/api/handlers"
	"github.com/abhi96256/Appoinment/internal/domain"
	"github.com/abhi96256/Appoinment/internal/service/bookings/models"
)

var errInvalidDate = errors.New("date must be YYYY-MM-DD")

// ToServiceRequest собирает запрос сервиса из query параметров page, limit, status, date
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}

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

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("date"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, errInvalidDate
		}
		req.Date = &date
	}

	return req, nil
}
