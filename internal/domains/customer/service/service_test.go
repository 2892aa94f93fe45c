package service_test

import (
	"clinic/config"
	"clinic/infras/otel/mocks"
	activityMocks "clinic/internal/domains/activitylog/service/mocks"
	customerMocks "clinic/internal/domains/customer/mocks"
	"clinic/internal/domains/customer/model"
	"clinic/internal/domains/customer/model/dto"
	"clinic/internal/domains/customer/service"
	cacheMocks "clinic/shared/cache/mocks"
	"clinic/shared/calendar"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo     *customerMocks.MockCustomer
	activity *activityMocks.MockActivityLog
	cache    *cacheMocks.MockRedisCache
	svc      service.Customer
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:     customerMocks.NewMockCustomer(ctrl),
		activity: activityMocks.NewMockActivityLog(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	f.svc = service.New(f.repo, f.activity, &config.Config{}, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func operatorContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUsername, "sara")
}

func TestCustomerService_Get(t *testing.T) {
	birthday := time.Date(1990, 3, 21, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   error
	}{
		{
			name: "cache hit",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "customer:get:cus-1", gomock.Any()).Return(nil)
			},
		},
		{
			name: "loaded from database",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Customer{ID: "cus-1", FirstName: "Ali", Birthday: &birthday}, nil)
			},
		},
		{
			name: "missing customer",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Customer{}, nil)
			},
			wantErr: service.ErrCustomerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), "cus-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)

			if res.ID != "" {
				require.NotNil(t, res.Birthday)
				assert.Equal(t, "1369/01/01", *res.Birthday)
			}
		})
	}
}

func TestCustomerService_Update(t *testing.T) {
	req := dto.UpdateCustomerRequest{
		FirstName: "Ali",
		LastName:  "Rezaei",
		Phone:     "09121234567",
		Birthday:  "1369/01/01",
	}

	tests := []struct {
		name      string
		req       dto.UpdateCustomerRequest
		setupMock func(f fixture)
		wantErr   bool
		wantCode  error
	}{
		{
			name: "birthday stored as gregorian",
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						birthday, ok := fields[model.FieldBirthday].(*time.Time)
						require.True(t, ok)
						assert.Equal(t, time.Date(1990, 3, 21, 0, 0, 0, 0, time.UTC), *birthday)
						assert.Equal(t, "sara", fields[constant.FieldModifiedBy])

						return nil
					})
				f.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "invalid birthday",
			req: func() dto.UpdateCustomerRequest {
				r := req
				r.Birthday = "1369/13/01"

				return r
			}(),
			setupMock: func(fixture) {},
			wantErr:   true,
			wantCode:  calendar.ErrInvalidDate,
		},
		{
			name: "missing customer",
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: service.ErrCustomerNotFound,
		},
		{
			name: "phone owned by someone else",
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:  true,
			wantCode: service.ErrPhoneTaken,
		},
		{
			name: "audit failure does not fail the update",
			req:  req,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(operatorContext(), "cus-1", tt.req)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)

			if tt.wantCode != nil {
				assert.ErrorIs(t, err, tt.wantCode)
			}
		})
	}
}

func TestCustomerService_Block(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(f fixture)
		wantBlocked bool
		wantErr     bool
	}{
		{
			name: "blocks an active customer",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Customer{ID: "cus-1"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.activity.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantBlocked: true,
		},
		{
			name: "already blocked is reported",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Customer{ID: "cus-1", Blocked: true}, nil)
			},
		},
		{
			name: "missing customer",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Customer{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Block(operatorContext(), "cus-1")

			if tt.wantErr {
				assert.ErrorIs(t, err, service.ErrCustomerNotFound)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBlocked, res.Blocked)
			assert.NotEmpty(t, res.Message)
		})
	}
}

func TestCustomerService_FindOrCreateTx(t *testing.T) {
	req := dto.ContactRequest{FirstName: " Ali ", LastName: "Rezaei", Phone: "09121234567"}

	t.Run("creates an unknown phone", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(model.Customer{}, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil)

		customer, err := f.svc.FindOrCreateTx(operatorContext(), nil, req)

		require.NoError(t, err)
		assert.NotEmpty(t, customer.ID)
		assert.Equal(t, "Ali", customer.FirstName)
		assert.Equal(t, "sara", customer.CreatedBy)
		assert.True(t, customer.Enabled)
	})

	t.Run("reuses a known phone", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Nil(), gomock.Any()).
			Return(model.Customer{ID: "cus-1", FirstName: "Ali", LastName: "Rezaei", Phone: req.Phone}, nil)

		customer, err := f.svc.FindOrCreateTx(operatorContext(), nil, req)

		require.NoError(t, err)
		assert.Equal(t, "cus-1", customer.ID)
	})

	t.Run("renames a known phone", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Nil(), gomock.Any()).
			Return(model.Customer{ID: "cus-1", FirstName: "Aly", LastName: "Rezaei", Phone: req.Phone}, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(nil)

		customer, err := f.svc.FindOrCreateTx(operatorContext(), nil, req)

		require.NoError(t, err)
		assert.Equal(t, "cus-1", customer.ID)
		assert.Equal(t, "Ali", customer.FirstName)
	})

	t.Run("lookup failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(model.Customer{}, errors.New("database error"))

		_, err := f.svc.FindOrCreateTx(operatorContext(), nil, req)

		assert.Error(t, err)
	})
}

func TestCustomerService_GetTx(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(model.Customer{}, nil)

	_, err := f.svc.GetTx(context.Background(), nil, "cus-404")

	assert.ErrorIs(t, err, service.ErrCustomerNotFound)
}
