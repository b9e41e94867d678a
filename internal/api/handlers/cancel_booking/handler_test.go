package cancel_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/abhi96256/Appoinment/internal/service/bookings"
	"github.com/abhi96256/Appoinment/internal/service/bookings/models"
	"github.com/abhi96256/Appoinment/pkg/logger"
)

type fakeService struct {
	err      error
	calledID int64
}

func (f *fakeService) Cancel(_ context.Context, id int64) (*models.BookingResponse, error) {
	f.calledID = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: "cancelled"}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"cancelled", "7", nil, http.StatusOK, `"message":"Booking cancelled successfully"`},
		{"invalid id", "x", nil, http.StatusBadRequest, `"error":"Invalid booking ID"`},
		{"not found", "7", bookings.ErrBookingNotFound, http.StatusNotFound, `"error":"Booking not found"`},
		{"already cancelled", "7", bookings.ErrAlreadyCancelled, http.StatusBadRequest, `"error":"Booking is already cancelled"`},
		{"internal", "7", fmt.Errorf("%w: db", bookings.ErrInternal), http.StatusInternalServerError, `"error":"Failed to cancel booking"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/api/bookings/"+tt.id+"/cancel", nil),
				map[string]string{"id": tt.id})
			rec := httptest.NewRecorder()

			NewHandler(svc, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
