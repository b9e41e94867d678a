package catalog

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhi96256/Appoinment/internal/domain"
	catalogRepo "github.com/abhi96256/Appoinment/internal/infra/storage/catalog"
	"github.com/abhi96256/Appoinment/internal/service/catalog/models"
	"github.com/abhi96256/Appoinment/pkg/logger"
	"github.com/abhi96256/Appoinment/pkg/ptr"
)

type fakeServiceRepo struct {
	services map[int64]*domain.Service
	nextID   int64
	countErr error
}

func newFakeServiceRepo() *fakeServiceRepo {
	return &fakeServiceRepo{services: make(map[int64]*domain.Service), nextID: 1}
}

func (r *fakeServiceRepo) Create(_ context.Context, s *domain.Service) (*domain.Service, error) {
	s.ID = r.nextID
	r.nextID++
	cp := *s
	r.services[s.ID] = &cp
	return s, nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeServiceRepo) GetActive(ctx context.Context, id int64) (*domain.Service, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.IsActive {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (r *fakeServiceRepo) ListActive(_ context.Context) ([]*domain.Service, error) {
	out := make([]*domain.Service, 0)
	for _, s := range r.services {
		if s.IsActive {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeServiceRepo) Count(_ context.Context) (int, error) {
	return len(r.services), r.countErr
}

func (r *fakeServiceRepo) Update(_ context.Context, s *domain.Service) (*domain.Service, error) {
	if _, ok := r.services[s.ID]; !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	cp := *s
	r.services[s.ID] = &cp
	return s, nil
}

func (r *fakeServiceRepo) Deactivate(_ context.Context, id int64) error {
	s, ok := r.services[id]
	if !ok {
		return catalogRepo.ErrServiceNotFound
	}
	s.IsActive = false
	return nil
}

func TestSeedDefaults(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewService(repo, logger.NewNop())

	created, err := svc.SeedDefaults(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, created)

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "Facial Treatment", list[0].Name)
	assert.Equal(t, "Massage Therapy", list[4].Name)

	// повторный запуск ничего не создает
	created, err = svc.SeedDefaults(context.Background())
	require.NoError(t, err)
	assert.Zero(t, created)

	repo.countErr = errors.New("db down")
	_, err = svc.SeedDefaults(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeServiceRepo(), logger.NewNop())

	tests := []struct {
		name    string
		req     models.CreateServiceRequest
		wantErr bool
	}{
		{name: "valid", req: models.CreateServiceRequest{Name: "Beard Trim", Duration: 15, Price: 12.5}},
		{name: "blank name", req: models.CreateServiceRequest{Name: "   ", Duration: 30, Price: 10}, wantErr: true},
		{name: "too short", req: models.CreateServiceRequest{Name: "Quick", Duration: 10, Price: 10}, wantErr: true},
		{name: "too long", req: models.CreateServiceRequest{Name: "Marathon", Duration: 481, Price: 10}, wantErr: true},
		{name: "negative price", req: models.CreateServiceRequest{Name: "Refund", Duration: 30, Price: -1}, wantErr: true},
		{name: "three decimals", req: models.CreateServiceRequest{Name: "Odd", Duration: 30, Price: 10.005}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Create(context.Background(), &tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.True(t, resp.IsActive)
			assert.NotZero(t, resp.ID)
		})
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo := newFakeServiceRepo()
	svc := NewService(repo, logger.NewNop())

	created, err := svc.Create(context.Background(), &models.CreateServiceRequest{Name: "Haircut", Duration: 30, Price: 25})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), &models.UpdateServiceRequest{
		ID:          created.ID,
		Name:        "Haircut Deluxe",
		Duration:    45,
		Price:       40,
		Description: ptr.Ptr("With wash"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Haircut Deluxe", updated.Name)
	assert.True(t, updated.IsActive, "isActive is kept when omitted")

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	// неактивную услугу можно вернуть через update
	reactivated, err := svc.Update(context.Background(), &models.UpdateServiceRequest{
		ID: created.ID, Name: "Haircut", Duration: 30, Price: 25, IsActive: ptr.Ptr(true),
	})
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive)

	_, err = svc.Update(context.Background(), &models.UpdateServiceRequest{ID: 99, Name: "X", Duration: 30})
	assert.ErrorIs(t, err, ErrServiceNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), 99), ErrServiceNotFound)
}
