package service_test

import (
	"clinic/config"
	"clinic/infras/otel/mocks"
	s3Mocks "clinic/infras/s3/mocks"
	activityModel "clinic/internal/domains/activitylog/model"
	activityDto "clinic/internal/domains/activitylog/model/dto"
	activityMocks "clinic/internal/domains/activitylog/service/mocks"
	customerModel "clinic/internal/domains/customer/model"
	customerDto "clinic/internal/domains/customer/model/dto"
	customerMocks "clinic/internal/domains/customer/service/mocks"
	orderModel "clinic/internal/domains/order/model"
	orderMocks "clinic/internal/domains/order/service/mocks"
	"clinic/internal/domains/reservation/model"
	"clinic/internal/domains/reservation/model/dto"
	"clinic/internal/domains/reservation/service"
	cacheMocks "clinic/shared/cache/mocks"
	"clinic/shared/calendar"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	slotDate    = "1404/02/30"
	nextDate    = "1404/02/31"
	blockedID   = "customer-blocked"
	walkInPhone = "09121234567"
)

type fixture struct {
	store     *memoryStore
	holds     holdStore
	customers *customerMocks.MockCustomer
	orders    *orderMocks.MockOrder
	activity  *activityMocks.MockActivityLog
	cache     *cacheMocks.MockRedisCache
	storage   *s3Mocks.MockS3
	cfg       *config.Config
	entries   []activityDto.Entry
	svc       service.Reservation
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := newMemoryStore()

	f := &fixture{
		store:     store,
		holds:     holdStore{store},
		customers: customerMocks.NewMockCustomer(ctrl),
		orders:    orderMocks.NewMockOrder(ctrl),
		activity:  activityMocks.NewMockActivityLog(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		storage:   s3Mocks.NewMockS3(ctrl),
		cfg:       &config.Config{},
	}

	f.cfg.Reservation.SlotCapacity = 3
	f.cfg.Reservation.DailyCapacity = 108
	f.cfg.Reservation.HoldTTLMinutes = 30
	f.cfg.Reservation.WindowDays = 7
	f.cfg.Reservation.ReportDirectory = "reports"
	f.cfg.External.S3.BucketName = "clinic"

	f.customers.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, id string) (customerModel.Customer, error) {
			return customerModel.Customer{ID: id, Blocked: id == blockedID}, nil
		}).AnyTimes()
	f.customers.EXPECT().FindOrCreateTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, req customerDto.ContactRequest) (customerModel.Customer, error) {
			return customerModel.Customer{ID: "customer-" + req.Phone, FirstName: req.FirstName, LastName: req.LastName, Phone: req.Phone}, nil
		}).AnyTimes()

	f.activity.EXPECT().AppendTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, entries ...activityDto.Entry) ([]activityModel.ActivityLog, error) {
			f.entries = append(f.entries, entries...)

			logs := make([]activityModel.ActivityLog, len(entries))
			for i, entry := range entries {
				logs[i] = entry.ToModel(time.Now())
			}

			return logs, nil
		}).AnyTimes()
	f.activity.EXPECT().Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entries ...activityDto.Entry) error {
			f.entries = append(f.entries, entries...)

			return nil
		}).AnyTimes()
	f.activity.EXPECT().Publish(gomock.Any(), gomock.Any()).AnyTimes()

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(store, f.holds, f.customers, f.orders, f.activity, store, f.storage, f.cfg, f.cache, mocks.NewOtel())

	return f
}

func (f *fixture) actions(id string) []string {
	var actions []string

	for _, entry := range f.entries {
		if entry.EntityID == id {
			actions = append(actions, entry.Action)
		}
	}

	return actions
}

func (f *fixture) activeInSlot(date, clock string) int {
	slot, err := dto.ParseSlot(date, clock)
	if err != nil {
		panic(err)
	}

	count := 0

	for _, row := range f.store.rows {
		if row.Status == model.StatusActive && row.ReservedDate.Equal(slot.Date) && row.ReservedTime == slot.Time {
			count++
		}
	}

	return count
}

func operatorContext(id string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, "reception-"+id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func bookFor(customerID, date, clock string) dto.BookRequest {
	return dto.BookRequest{CustomerID: customerID, Date: date, Time: clock, LocationTag: "qom"}
}

func seeded(customerID string, date time.Time, clock, status string) model.Reservation {
	return model.Reservation{
		ID:           uuid.NewString(),
		CustomerID:   customerID,
		ReservedDate: date,
		ReservedTime: clock,
		LocationTag:  "qom",
		Status:       status,
	}
}

func TestBook_SlotCapacity(t *testing.T) {
	f := newFixture(t)
	ctx := operatorContext("admin-1")

	res, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, res.Status)
	assert.Equal(t, slotDate, res.Date)
	assert.Equal(t, "14:30", res.Time)
	assert.Equal(t, 1, f.activeInSlot(slotDate, "14:30"))

	for _, customerID := range []string{"customer-43", "customer-44"} {
		_, err = f.svc.Book(ctx, bookFor(customerID, slotDate, "14:30"))
		require.NoError(t, err)
	}

	assert.Equal(t, 3, f.activeInSlot(slotDate, "14:30"))

	_, err = f.svc.Book(ctx, bookFor("customer-45", slotDate, "14:30"))
	require.ErrorIs(t, err, service.ErrSlotFull)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	assert.Equal(t, 3, f.activeInSlot(slotDate, "14:30"))

	_, err = f.svc.Book(ctx, bookFor("customer-45", slotDate, "15:00"))
	assert.NoError(t, err)
}

func TestBook_DayCapacity(t *testing.T) {
	f := newFixture(t)

	day, err := calendar.ToStorage(slotDate)
	require.NoError(t, err)

	for i := range 108 {
		clock := fmt.Sprintf("%02d:%02d:00", 8+i/18, (i/3%6)*10)
		f.store.rows = append(f.store.rows, seeded(fmt.Sprintf("customer-%d", i), day, clock, model.StatusActive))
	}

	assert.Zero(t, f.activeInSlot(slotDate, "21:00"))

	_, err = f.svc.Book(operatorContext("admin-1"), bookFor("customer-500", slotDate, "21:00"))
	require.ErrorIs(t, err, service.ErrDayFull)

	_, err = f.svc.Book(operatorContext("admin-1"), bookFor("customer-500", nextDate, "21:00"))
	assert.NoError(t, err)
}

func TestBook_DuplicateGuard(t *testing.T) {
	f := newFixture(t)
	ctx := operatorContext("admin-1")

	first, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
	require.NoError(t, err)

	_, err = f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
	require.ErrorIs(t, err, service.ErrDuplicateBooking)

	_, err = f.svc.Book(ctx, bookFor("customer-42", slotDate, "17:00"))
	require.ErrorIs(t, err, service.ErrDuplicateBooking)
	assert.NotEqual(t, service.ErrSlotFull.Error(), err.Error())

	_, err = f.svc.Book(ctx, bookFor("customer-42", nextDate, "17:00"))
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, first.ID, dto.CancelRequest{})
	require.NoError(t, err)

	_, err = f.svc.Book(ctx, bookFor("customer-42", slotDate, "17:00"))
	assert.NoError(t, err)
}

func TestBook_WalkIn(t *testing.T) {
	f := newFixture(t)

	f.orders.EXPECT().CreateForReservationTx(gomock.Any(), gomock.Any(), "customer-"+walkInPhone, orderModel.PaymentPOS).
		Return(orderModel.Order{ID: "order-1"}, nil)

	req := dto.BookRequest{
		FirstName:     "Sara",
		LastName:      "Ahmadi",
		Phone:         walkInPhone,
		Date:          slotDate,
		Time:          "09:00",
		LocationTag:   "qom",
		PaymentMethod: orderModel.PaymentPOS,
		Notes:         "first visit",
	}

	res, err := f.svc.Book(operatorContext("admin-1"), req)

	require.NoError(t, err)
	assert.Equal(t, "customer-"+walkInPhone, res.CustomerID)
	require.NotNil(t, res.OrderID)
	assert.Equal(t, "order-1", *res.OrderID)
	require.NotNil(t, res.OperatorID)
	assert.Equal(t, "admin-1", *res.OperatorID)
	assert.Equal(t, []string{activityModel.ActionCreated}, f.actions(res.ID))
}

func TestBook_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.BookRequest
		setup    func(f *fixture)
		wantErr  error
		wantCode int
	}{
		{
			name:     "invalid jalali date",
			req:      bookFor("customer-42", "1403/12/31", "10:00"),
			wantErr:  calendar.ErrInvalidDate,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "invalid time",
			req:      bookFor("customer-42", slotDate, "25:00"),
			wantErr:  calendar.ErrInvalidTime,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "blocked customer",
			req:      bookFor(blockedID, slotDate, "10:00"),
			wantErr:  service.ErrCustomerBlocked,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "concurrent duplicate caught by unique index",
			req:  bookFor("customer-42", slotDate, "10:00"),
			setup: func(f *fixture) {
				f.store.insertErr = fmt.Errorf("failed to insert data (reservation): %w", &pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantErr:  service.ErrDuplicateBooking,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "storage failure",
			req:  bookFor("customer-42", slotDate, "10:00"),
			setup: func(f *fixture) {
				f.store.insertErr = errors.New("connection reset")
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.setup != nil {
				tt.setup(f)
			}

			_, err := f.svc.Book(operatorContext("admin-1"), tt.req)

			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Empty(t, f.store.rows)
			assert.Empty(t, f.entries)
		})
	}
}

func TestCancel(t *testing.T) {
	t.Run("cancelling twice succeeds and is audited twice", func(t *testing.T) {
		f := newFixture(t)
		ctx := operatorContext("admin-1")

		booked, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)

		first, err := f.svc.Cancel(ctx, booked.ID, dto.CancelRequest{Reason: "patient called"})
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, first.Status)
		require.NotNil(t, first.CancelReason)
		assert.Equal(t, "patient called", *first.CancelReason)

		second, err := f.svc.Cancel(ctx, booked.ID, dto.CancelRequest{Reason: "patient called"})
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, second.Status)

		assert.Equal(t, []string{
			activityModel.ActionCreated,
			activityModel.ActionCancelled,
			activityModel.ActionCancelled,
		}, f.actions(booked.ID))
		assert.Zero(t, f.activeInSlot(slotDate, "14:30"))
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Cancel(operatorContext("admin-1"), "missing", dto.CancelRequest{})

		assert.ErrorIs(t, err, service.ErrReservationNotFound)
		assert.Empty(t, f.entries)
	})

	t.Run("replaced reservation", func(t *testing.T) {
		f := newFixture(t)

		row := seeded("customer-42", time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), "14:30:00", model.StatusReplaced)
		f.store.rows = append(f.store.rows, row)

		_, err := f.svc.Cancel(operatorContext("admin-1"), row.ID, dto.CancelRequest{})

		assert.ErrorIs(t, err, service.ErrNotActive)
		assert.Equal(t, model.StatusReplaced, f.store.byID(row.ID).Status)
	})
}

func TestHold(t *testing.T) {
	t.Run("newest hold supersedes the previous one", func(t *testing.T) {
		f := newFixture(t)
		ctx := operatorContext("admin-1")

		first, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)
		second, err := f.svc.Book(ctx, bookFor("customer-43", slotDate, "14:30"))
		require.NoError(t, err)

		require.NoError(t, f.svc.Hold(ctx, first.ID))
		require.NoError(t, f.svc.Hold(ctx, second.ID))

		held := f.holds.withStatus(model.HoldStatusActive)
		require.Len(t, held, 1)
		assert.Equal(t, second.ID, held[0].ReservationID)
		assert.Equal(t, "admin-1", held[0].OperatorID)
		assert.Len(t, f.holds.withStatus(model.HoldStatusConsumed), 1)
		assert.WithinDuration(t, time.Now().Add(30*time.Minute), held[0].ExpiresAt, time.Minute)
	})

	t.Run("other operators keep their holds", func(t *testing.T) {
		f := newFixture(t)

		booked, err := f.svc.Book(operatorContext("admin-1"), bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)

		require.NoError(t, f.svc.Hold(operatorContext("admin-1"), booked.ID))
		require.NoError(t, f.svc.Hold(operatorContext("admin-2"), booked.ID))

		assert.Len(t, f.holds.withStatus(model.HoldStatusActive), 2)
	})

	t.Run("cancelled reservation", func(t *testing.T) {
		f := newFixture(t)
		ctx := operatorContext("admin-1")

		booked, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)
		_, err = f.svc.Cancel(ctx, booked.ID, dto.CancelRequest{})
		require.NoError(t, err)

		err = f.svc.Hold(ctx, booked.ID)

		assert.ErrorIs(t, err, service.ErrNotActive)
		assert.Empty(t, f.holds.holds)
	})

	t.Run("guest", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Hold(context.Background(), "res-1")

		assert.ErrorIs(t, err, service.ErrOperatorRequired)
	})
}

func TestRelocate(t *testing.T) {
	t.Run("exactly one active reservation remains", func(t *testing.T) {
		f := newFixture(t)
		ctx := operatorContext("admin-1")

		f.orders.EXPECT().CreateForReservationTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(orderModel.Order{ID: "order-7"}, nil)

		booked, err := f.svc.Book(ctx, dto.BookRequest{
			FirstName: "Ali", LastName: "Rezaei", Phone: walkInPhone,
			Date: slotDate, Time: "14:30", LocationTag: "qom", PaymentMethod: orderModel.PaymentCash,
		})
		require.NoError(t, err)
		require.NoError(t, f.svc.Hold(ctx, booked.ID))

		moved, err := f.svc.Relocate(ctx, dto.RelocateRequest{Date: nextDate, Time: "10:00"})
		require.NoError(t, err)
		require.NotEqual(t, booked.ID, moved.ID)

		active := f.store.active("customer-" + walkInPhone)
		require.Len(t, active, 1)
		assert.Equal(t, moved.ID, active[0].ID)
		assert.Equal(t, "10:00:00", active[0].ReservedTime)
		assert.Equal(t, "qom", active[0].LocationTag)
		require.NotNil(t, active[0].OrderID)
		assert.Equal(t, "order-7", *active[0].OrderID)

		assert.Equal(t, model.StatusReplaced, f.store.byID(booked.ID).Status)
		assert.Empty(t, f.holds.withStatus(model.HoldStatusActive))
		assert.Equal(t, []string{activityModel.ActionCreated, activityModel.ActionHeld, activityModel.ActionReplaced}, f.actions(booked.ID))
		assert.Equal(t, []string{activityModel.ActionRelocated}, f.actions(moved.ID))
	})

	t.Run("same day move ignores the reservation being moved", func(t *testing.T) {
		f := newFixture(t)
		ctx := operatorContext("admin-1")

		booked, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)
		require.NoError(t, f.svc.Hold(ctx, booked.ID))

		_, err = f.svc.Relocate(ctx, dto.RelocateRequest{Date: slotDate, Time: "16:00"})

		require.NoError(t, err)
		assert.Len(t, f.store.active("customer-42"), 1)
	})

	t.Run("full target slot rolls everything back", func(t *testing.T) {
		f := newFixture(t)
		ctx := operatorContext("admin-1")

		booked, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)

		for _, customerID := range []string{"customer-1", "customer-2", "customer-3"} {
			_, err = f.svc.Book(ctx, bookFor(customerID, nextDate, "10:00"))
			require.NoError(t, err)
		}

		require.NoError(t, f.svc.Hold(ctx, booked.ID))

		_, err = f.svc.Relocate(ctx, dto.RelocateRequest{Date: nextDate, Time: "10:00"})

		require.ErrorIs(t, err, service.ErrSlotFull)
		assert.Equal(t, model.StatusActive, f.store.byID(booked.ID).Status)
		assert.Len(t, f.holds.withStatus(model.HoldStatusActive), 1)
		assert.Len(t, f.store.active("customer-42"), 1)
	})

	t.Run("target date already booked by the customer", func(t *testing.T) {
		f := newFixture(t)
		ctx := operatorContext("admin-1")

		booked, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)
		_, err = f.svc.Book(ctx, bookFor("customer-42", nextDate, "09:00"))
		require.NoError(t, err)
		require.NoError(t, f.svc.Hold(ctx, booked.ID))

		_, err = f.svc.Relocate(ctx, dto.RelocateRequest{Date: nextDate, Time: "11:00"})

		require.ErrorIs(t, err, service.ErrDuplicateBooking)
		assert.Len(t, f.store.active("customer-42"), 2)
	})

	t.Run("no hold", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Relocate(operatorContext("admin-1"), dto.RelocateRequest{Date: nextDate, Time: "10:00"})

		require.ErrorIs(t, err, service.ErrNoActiveHold)
		assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	})

	t.Run("hold of another operator", func(t *testing.T) {
		f := newFixture(t)

		booked, err := f.svc.Book(operatorContext("admin-1"), bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)
		require.NoError(t, f.svc.Hold(operatorContext("admin-1"), booked.ID))

		_, err = f.svc.Relocate(operatorContext("admin-2"), dto.RelocateRequest{Date: nextDate, Time: "10:00"})

		assert.ErrorIs(t, err, service.ErrNoActiveHold)
	})

	t.Run("expired hold", func(t *testing.T) {
		f := newFixture(t)
		ctx := operatorContext("admin-1")

		booked, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)
		require.NoError(t, f.svc.Hold(ctx, booked.ID))

		f.store.holds[0].ExpiresAt = time.Now().Add(-time.Minute)

		_, err = f.svc.Relocate(ctx, dto.RelocateRequest{Date: nextDate, Time: "10:00"})

		assert.ErrorIs(t, err, service.ErrNoActiveHold)
		assert.Equal(t, model.StatusActive, f.store.byID(booked.ID).Status)
	})

	t.Run("hold consumed once", func(t *testing.T) {
		f := newFixture(t)
		ctx := operatorContext("admin-1")

		booked, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)
		require.NoError(t, f.svc.Hold(ctx, booked.ID))

		_, err = f.svc.Relocate(ctx, dto.RelocateRequest{Date: nextDate, Time: "10:00"})
		require.NoError(t, err)

		_, err = f.svc.Relocate(ctx, dto.RelocateRequest{Date: nextDate, Time: "12:00"})
		assert.ErrorIs(t, err, service.ErrNoActiveHold)
	})
}

func TestReassign(t *testing.T) {
	contact := dto.ReassignRequest{ContactRequest: customerDto.ContactRequest{FirstName: "Sara", LastName: "Ahmadi", Phone: walkInPhone}}

	t.Run("moves the reservation to the caller", func(t *testing.T) {
		f := newFixture(t)
		ctx := operatorContext("admin-1")

		booked, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)

		res, err := f.svc.Reassign(ctx, booked.ID, contact)

		require.NoError(t, err)
		assert.Equal(t, "customer-"+walkInPhone, res.CustomerID)
		assert.Equal(t, "customer-"+walkInPhone, f.store.byID(booked.ID).CustomerID)
		assert.Equal(t, []string{activityModel.ActionCreated, activityModel.ActionReassigned}, f.actions(booked.ID))
	})

	t.Run("target customer already booked that day", func(t *testing.T) {
		f := newFixture(t)
		ctx := operatorContext("admin-1")

		booked, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
		require.NoError(t, err)
		_, err = f.svc.Book(ctx, bookFor("customer-"+walkInPhone, slotDate, "09:00"))
		require.NoError(t, err)

		_, err = f.svc.Reassign(ctx, booked.ID, contact)

		assert.ErrorIs(t, err, service.ErrDuplicateBooking)
		assert.Equal(t, "customer-42", f.store.byID(booked.ID).CustomerID)
	})
}

func TestSetVisitedAndSoftDelete(t *testing.T) {
	f := newFixture(t)
	ctx := operatorContext("admin-1")
	f.store.customers["customer-42"] = [3]string{"Ali", "Rezaei", "09120000000"}

	booked, err := f.svc.Book(ctx, bookFor("customer-42", slotDate, "14:30"))
	require.NoError(t, err)

	visited := true
	require.NoError(t, f.svc.SetVisited(ctx, booked.ID, dto.VisitedRequest{Visited: &visited}))

	detail, err := f.svc.Get(ctx, booked.ID)
	require.NoError(t, err)
	assert.True(t, detail.Visited)
	assert.Equal(t, "Ali", detail.Customer.FirstName)
	assert.Equal(t, "09120000000", detail.Customer.Phone)

	require.NoError(t, f.svc.SoftDelete(ctx, booked.ID))
	assert.Equal(t, model.StatusSoftDeleted, f.store.byID(booked.ID).Status)

	_, err = f.svc.Get(ctx, booked.ID)
	require.ErrorIs(t, err, service.ErrReservationNotFound)

	assert.ErrorIs(t, f.svc.SoftDelete(ctx, booked.ID), service.ErrReservationNotFound)
	assert.ErrorIs(t, f.svc.SetVisited(ctx, booked.ID, dto.VisitedRequest{Visited: &visited}), service.ErrReservationNotFound)
	assert.Equal(t, []string{
		activityModel.ActionCreated,
		activityModel.ActionUpdated,
		activityModel.ActionDeleted,
	}, f.actions(booked.ID))
}

func TestGetAll(t *testing.T) {
	f := newFixture(t)
	today := calendar.Today()

	f.store.customers["customer-1"] = [3]string{"Ali", "Rezaei", "09120000001"}
	f.store.customers["customer-2"] = [3]string{"Sara", "Ahmadi", "09120000002"}

	f.store.rows = append(f.store.rows,
		seeded("customer-1", today.AddDate(0, 0, 1), "10:00:00", model.StatusActive),
		seeded("customer-2", today.AddDate(0, 0, 2), "10:00:00", model.StatusActive),
		seeded("customer-1", today.AddDate(0, 0, -1), "10:00:00", model.StatusActive),
		seeded("customer-2", today.AddDate(0, 0, 3), "10:00:00", model.StatusCancelled),
		seeded("customer-2", today.AddDate(0, 0, 3), "11:00:00", model.StatusSoftDeleted),
	)

	tests := []struct {
		name string
		req  dto.GetReservationsRequest
		want int
	}{
		{name: "upcoming by default", req: dto.GetReservationsRequest{}, want: 2},
		{name: "all but soft deleted", req: dto.GetReservationsRequest{Mode: dto.ModeAll}, want: 4},
		{name: "search by customer name", req: dto.GetReservationsRequest{Search: "sara"}, want: 1},
		{name: "search by phone over everything", req: dto.GetReservationsRequest{Mode: dto.ModeAll, Search: "0001"}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"}, tt.req)

			require.NoError(t, err)
			assert.Equal(t, tt.want, res.TotalData)
			assert.Len(t, res.Reservations, tt.want)
			assert.Equal(t, 1, res.TotalPage)
		})
	}
}

func TestSlotsAndDays(t *testing.T) {
	f := newFixture(t)
	today := calendar.Today()
	tomorrow := today.AddDate(0, 0, 1)

	for i := range 3 {
		f.store.rows = append(f.store.rows, seeded(fmt.Sprintf("customer-%d", i), tomorrow, "10:00:00", model.StatusActive))
	}

	f.store.rows = append(f.store.rows,
		seeded("customer-9", tomorrow, "11:00:00", model.StatusActive),
		seeded("customer-10", tomorrow, "12:00:00", model.StatusCancelled),
		seeded("customer-11", today.AddDate(0, 0, 8), "09:00:00", model.StatusActive),
	)

	t.Run("current window", func(t *testing.T) {
		res, err := f.svc.Slots(context.Background(), dto.SlotsRequest{})

		require.NoError(t, err)
		assert.Equal(t, calendar.ToDisplay(today), res.From)
		assert.Equal(t, calendar.ToDisplay(today.AddDate(0, 0, 6)), res.To)
		require.Len(t, res.Full, 1)
		assert.Equal(t, "10:00", res.Full[0].Time)
		assert.Equal(t, 3, res.Full[0].Count)
		require.Len(t, res.Available, 1)
		assert.Equal(t, "11:00", res.Available[0].Time)
	})

	t.Run("only full slots", func(t *testing.T) {
		res, err := f.svc.Slots(context.Background(), dto.SlotsRequest{State: dto.StateFull})

		require.NoError(t, err)
		assert.Len(t, res.Full, 1)
		assert.Empty(t, res.Available)
	})

	t.Run("next window", func(t *testing.T) {
		res, err := f.svc.Slots(context.Background(), dto.SlotsRequest{Mode: 1})

		require.NoError(t, err)
		assert.Empty(t, res.Full)
		require.Len(t, res.Available, 1)
		assert.Equal(t, calendar.ToDisplay(today.AddDate(0, 0, 8)), res.Available[0].Date)
	})

	t.Run("days", func(t *testing.T) {
		days, err := f.svc.Days(context.Background(), dto.DaysRequest{})

		require.NoError(t, err)
		require.Len(t, days, 7)
		assert.Equal(t, calendar.ToDisplay(today), days[0].Date)
		assert.Equal(t, 0, days[0].Count)
		assert.Equal(t, 4, days[1].Count)
		assert.Equal(t, calendar.DayName(tomorrow), days[1].DayName)
	})

	t.Run("slot details", func(t *testing.T) {
		details, err := f.svc.SlotDetails(context.Background(), dto.SlotDetailsRequest{Date: calendar.ToDisplay(tomorrow), Time: "10:00"})

		require.NoError(t, err)
		assert.Len(t, details, 3)
	})
}

func TestToday(t *testing.T) {
	f := newFixture(t)
	today := calendar.Today()

	came := seeded("customer-1", today, "09:00:00", model.StatusActive)
	came.Visited = true

	f.store.rows = append(f.store.rows,
		came,
		seeded("customer-2", today, "10:00:00", model.StatusActive),
		seeded("customer-3", today, "11:00:00", model.StatusCancelled),
	)

	all, err := f.svc.Today(context.Background(), dto.TodayRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	visited := true
	attended, err := f.svc.Today(context.Background(), dto.TodayRequest{Visited: &visited})
	require.NoError(t, err)
	require.Len(t, attended, 1)
	assert.Equal(t, came.ID, attended[0].ID)
}

func TestExport(t *testing.T) {
	t.Run("uploads the report as csv", func(t *testing.T) {
		f := newFixture(t)
		f.store.customers["customer-1"] = [3]string{"Ali", "Rezaei", "09120000001"}
		f.store.rows = append(f.store.rows, seeded("customer-1", calendar.Today().AddDate(0, 0, 1), "10:00:00", model.StatusActive))

		f.storage.EXPECT().UploadFileBytes(gomock.Any(), "clinic", "reports", gomock.Any(), "text/csv", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, fileName, _ string, data []byte) (string, error) {
				lines := strings.Split(strings.TrimSpace(string(data)), "\n")

				require.Len(t, lines, 2)
				assert.True(t, strings.HasPrefix(lines[0], "id,date,day,time,location"))
				assert.Contains(t, lines[1], "Ali,Rezaei,09120000001,active,false")
				assert.True(t, strings.HasSuffix(fileName, ".csv"))

				return "https://cdn.example.com/reports/" + fileName, nil
			})

		res, err := f.svc.Export(context.Background(), dto.GetReservationsRequest{})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.True(t, strings.HasPrefix(res.URL, "https://cdn.example.com/reports/reservations-"))
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)

		f.storage.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("bucket missing"))

		_, err := f.svc.Export(context.Background(), dto.GetReservationsRequest{})

		assert.Error(t, err)
	})
}
