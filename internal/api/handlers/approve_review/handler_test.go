package approve_review

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/abhi96256/Appoinment/internal/service/reviews"
	"github.com/abhi96256/Appoinment/internal/service/reviews/models"
	"github.com/abhi96256/Appoinment/pkg/logger"
)

type fakeService struct {
	err      error
	approved *bool
}

func (f *fakeService) SetApproved(_ context.Context, id int64, approved bool) (*models.ReviewResponse, error) {
	f.approved = &approved
	if f.err != nil {
		return nil, f.err
	}
	return &models.ReviewResponse{ID: id, IsApproved: approved}, nil
}

func call(svc ReviewService, id, body string) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodPut, "/api/reviews/"+id+"/approve", strings.NewReader(body)),
		map[string]string{"id": id})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_ApproveAndDisapprove(t *testing.T) {
	svc := &fakeService{}

	rec := call(svc, "3", `{"isApproved":true}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Review approved successfully")
	assert.True(t, *svc.approved)

	rec = call(svc, "3", `{"isApproved":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Review disapproved successfully")
	assert.False(t, *svc.approved)
}

func TestHandle_MissingFlag(t *testing.T) {
	svc := &fakeService{}
	rec := call(svc, "3", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Validation failed")
	assert.Nil(t, svc.approved)
}

func TestHandle_NotFound(t *testing.T) {
	rec := call(&fakeService{err: reviews.ErrReviewNotFound}, "99", `{"isApproved":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Review not found")
}
