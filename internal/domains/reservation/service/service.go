package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"clinic/config"
	"clinic/infras/otel"
	"clinic/infras/s3"
	activityModel "clinic/internal/domains/activitylog/model"
	activityService "clinic/internal/domains/activitylog/service"
	customerService "clinic/internal/domains/customer/service"
	orderService "clinic/internal/domains/order/service"
	"clinic/internal/domains/reservation/model/dto"
	"clinic/internal/domains/reservation/repository"
	"clinic/shared"
	"clinic/shared/cache"
	gDto "clinic/shared/dto"
	"clinic/shared/failure"
	"clinic/shared/transaction"
	"context"
)

const (
	cacheGetSlots = "reservation:slots"
	cacheGetDays  = "reservation:days"
)

var (
	ErrReservationNotFound = failure.NotFound("reservation not found")
	ErrDuplicateBooking    = failure.Unprocessable("duplicate booking: the customer already has an active reservation on this date")
	ErrSlotFull            = failure.Unprocessable("slot full: this time has no free places left, choose another time")
	ErrDayFull             = failure.Unprocessable("day full: this date has reached its reservation limit, choose another date")
	ErrNoActiveHold        = failure.Unprocessable("no reservation is held for relocation, select the reservation to move first")
	ErrNotActive           = failure.Unprocessable("reservation is no longer active")
	ErrCustomerBlocked     = failure.Unprocessable("customer is blocked and cannot be booked")
	ErrUnknownOrder        = failure.BadRequestFromString("order does not exist")
	ErrOperatorRequired    = failure.Forbidden("only a signed in operator can hold a reservation")
)

type Reservation interface {
	// Book admits a new active reservation after the duplicate guard and the
	// capacity check pass, all inside one serializable transaction.
	Book(ctx context.Context, req dto.BookRequest) (dto.ReservationResponse, error)
	// Cancel is idempotent. Cancelling a cancelled reservation succeeds and is audited again.
	Cancel(ctx context.Context, id string, req dto.CancelRequest) (dto.ReservationResponse, error)
	// Hold selects an active reservation for the calling operator's next Relocate.
	Hold(ctx context.Context, id string) error
	// Relocate moves the held reservation to a new slot. The old record is
	// marked replaced and a new active one takes its place.
	Relocate(ctx context.Context, req dto.RelocateRequest) (dto.RelocateResponse, error)
	Reassign(ctx context.Context, id string, req dto.ReassignRequest) (dto.ReservationResponse, error)
	SetVisited(ctx context.Context, id string, req dto.VisitedRequest) error
	SoftDelete(ctx context.Context, id string) error

	Get(ctx context.Context, id string) (dto.ReservationDetailResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetReservationsRequest) (dto.GetReservationsResponse, error)
	Slots(ctx context.Context, req dto.SlotsRequest) (dto.SlotsResponse, error)
	Days(ctx context.Context, req dto.DaysRequest) ([]dto.DayResponse, error)
	SlotDetails(ctx context.Context, req dto.SlotDetailsRequest) ([]dto.ReservationDetailResponse, error)
	Today(ctx context.Context, req dto.TodayRequest) ([]dto.ReservationDetailResponse, error)
	Export(ctx context.Context, req dto.GetReservationsRequest) (dto.ExportResponse, error)
}

type serviceImpl struct {
	repo       repository.Reservation
	holds      repository.Hold
	customers  customerService.Customer
	orders     orderService.Order
	activity   activityService.ActivityLog
	transactor transaction.Transactor
	storage    s3.S3
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Reservation,
	holds repository.Hold,
	customers customerService.Customer,
	orders orderService.Order,
	activity activityService.ActivityLog,
	transactor transaction.Transactor,
	storage s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:       repo,
		holds:      holds,
		customers:  customers,
		orders:     orders,
		activity:   activity,
		transactor: transactor,
		storage:    storage,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

// afterCommit mirrors committed audit rows to the sink and drops the cached
// slot summaries.
func (s *serviceImpl) afterCommit(ctx context.Context, logs []activityModel.ActivityLog) {
	s.activity.Publish(ctx, logs...)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetSlots)
		shared.InvalidateCaches(c, s.cache, cacheGetDays)
	}()
}
