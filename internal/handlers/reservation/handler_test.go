package reservation_test

import (
	"clinic/infras/otel/mocks"
	"clinic/internal/domains/reservation/model/dto"
	"clinic/internal/domains/reservation/service"
	serviceMocks "clinic/internal/domains/reservation/service/mocks"
	"clinic/internal/handlers/reservation"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const customerID = "0b5f5c33-6f0b-4b8e-8d55-1bd2b5f5d7a1"

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*serviceMocks.MockReservation, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := serviceMocks.NewMockReservation(ctrl)

	handler := reservation.New(svc, mocks.NewOtel())
	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return svc, router
}

func serve(router http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	recorder := httptest.NewRecorder()

	router.ServeHTTP(recorder, request)

	var res envelope
	_ = json.Unmarshal(recorder.Body.Bytes(), &res)

	return recorder, res
}

func TestBook(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		setup       func(svc *serviceMocks.MockReservation)
		wantCode    int
		wantMessage string
	}{
		{
			name: "booked",
			body: `{"customer_id":"` + customerID + `","date":"1404/02/30","time":"14:30","location_tag":"qom"}`,
			setup: func(svc *serviceMocks.MockReservation) {
				svc.EXPECT().Book(gomock.Any(), dto.BookRequest{
					CustomerID:  customerID,
					Date:        "1404/02/30",
					Time:        "14:30",
					LocationTag: "qom",
				}).Return(dto.ReservationResponse{ID: "res-1", Date: "1404/02/30", Time: "14:30"}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:        "walk-in without phone",
			body:        `{"first_name":"Sara","last_name":"Ahmadi","date":"1404/02/30","time":"14:30","location_tag":"qom","payment_method":1}`,
			wantCode:    http.StatusBadRequest,
			wantMessage: "Phone is required",
		},
		{
			name:        "impossible jalali date",
			body:        `{"customer_id":"` + customerID + `","date":"1403/12/31","time":"14:30","location_tag":"qom"}`,
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: "Date must be a jalali date formatted YYYY/MM/DD",
		},
		{
			name: "slot full",
			body: `{"customer_id":"` + customerID + `","date":"1404/02/30","time":"14:30","location_tag":"qom"}`,
			setup: func(svc *serviceMocks.MockReservation) {
				svc.EXPECT().Book(gomock.Any(), gomock.Any()).Return(dto.ReservationResponse{}, service.ErrSlotFull)
			},
			wantCode:    http.StatusUnprocessableEntity,
			wantMessage: service.ErrSlotFull.Error(),
		},
		{
			name: "storage failure is not leaked",
			body: `{"customer_id":"` + customerID + `","date":"1404/02/30","time":"14:30","location_tag":"qom"}`,
			setup: func(svc *serviceMocks.MockReservation) {
				svc.EXPECT().Book(gomock.Any(), gomock.Any()).Return(dto.ReservationResponse{}, errors.New("pq: relation does not exist"))
			},
			wantCode:    http.StatusInternalServerError,
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := setup(t)
			if tt.setup != nil {
				tt.setup(svc)
			}

			recorder, res := serve(router, http.MethodPost, "/v1/reservations", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantCode == http.StatusOK, res.Success)

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, res.Message)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Cancel(gomock.Any(), "res-1", dto.CancelRequest{Reason: "called"}).
		Return(dto.ReservationResponse{ID: "res-1", Status: "cancelled"}, nil)
	svc.EXPECT().Cancel(gomock.Any(), "res-2", dto.CancelRequest{}).
		Return(dto.ReservationResponse{ID: "res-2", Status: "cancelled"}, nil)

	recorder, res := serve(router, http.MethodPost, "/v1/reservations/res-1/cancel", `{"reason":"called"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var cancelled dto.ReservationResponse
	require.NoError(t, json.Unmarshal(res.Data, &cancelled))
	assert.Equal(t, "cancelled", cancelled.Status)

	recorder, _ = serve(router, http.MethodPost, "/v1/reservations/res-2/cancel", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestCancel_ChunkedBody(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Cancel(gomock.Any(), "res-3", dto.CancelRequest{Reason: "patient travelling"}).
		Return(dto.ReservationResponse{ID: "res-3", Status: "cancelled"}, nil)

	request := httptest.NewRequest(http.MethodPost, "/v1/reservations/res-3/cancel", strings.NewReader(`{"reason":"patient travelling"}`))
	request.ContentLength = -1
	request.TransferEncoding = []string{"chunked"}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRelocate(t *testing.T) {
	t.Run("no active hold", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Relocate(gomock.Any(), dto.RelocateRequest{Date: "1404/03/01", Time: "10:00"}).
			Return(dto.RelocateResponse{}, service.ErrNoActiveHold)

		recorder, res := serve(router, http.MethodPost, "/v1/reservations/relocate", `{"date":"1404/03/01","time":"10:00"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		assert.Equal(t, service.ErrNoActiveHold.Error(), res.Message)
	})

	t.Run("impossible jalali date", func(t *testing.T) {
		_, router := setup(t)

		recorder, res := serve(router, http.MethodPost, "/v1/reservations/relocate", `{"date":"1403/12/31","time":"10:00"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		assert.False(t, res.Success)
	})
}

func TestGetSlots(t *testing.T) {
	t.Run("parses mode and state", func(t *testing.T) {
		svc, router := setup(t)

		svc.EXPECT().Slots(gomock.Any(), dto.SlotsRequest{Mode: 1, State: dto.StateFull}).
			Return(dto.SlotsResponse{Full: []dto.SlotResponse{{Date: "1404/03/01", Time: "10:00", Count: 3}}}, nil)

		recorder, res := serve(router, http.MethodGet, "/v1/reservations/slots?mode=1&state=full", "")
		require.Equal(t, http.StatusOK, recorder.Code)

		var slots dto.SlotsResponse
		require.NoError(t, json.Unmarshal(res.Data, &slots))
		require.Len(t, slots.Full, 1)
		assert.Equal(t, 3, slots.Full[0].Count)
	})

	t.Run("rejects a bad mode", func(t *testing.T) {
		_, router := setup(t)

		recorder, _ := serve(router, http.MethodGet, "/v1/reservations/slots?mode=next", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects an unknown state", func(t *testing.T) {
		_, router := setup(t)

		recorder, _ := serve(router, http.MethodGet, "/v1/reservations/slots?state=empty", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetToday(t *testing.T) {
	svc, router := setup(t)
	visited := false

	svc.EXPECT().Today(gomock.Any(), dto.TodayRequest{Visited: &visited}).Return([]dto.ReservationDetailResponse{}, nil)

	recorder, _ := serve(router, http.MethodGet, "/v1/reservations/today?visited=false", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetReservationByID(t *testing.T) {
	svc, router := setup(t)

	svc.EXPECT().Get(gomock.Any(), "missing").Return(dto.ReservationDetailResponse{}, service.ErrReservationNotFound)

	recorder, res := serve(router, http.MethodGet, "/v1/reservations/missing", "")

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.False(t, res.Success)
}

func TestSetVisited(t *testing.T) {
	svc, router := setup(t)
	visited := true

	svc.EXPECT().SetVisited(gomock.Any(), "res-1", dto.VisitedRequest{Visited: &visited}).Return(nil)

	recorder, _ := serve(router, http.MethodPatch, "/v1/reservations/res-1/visited", `{"visited":true}`)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder, _ = serve(router, http.MethodPatch, "/v1/reservations/res-1/visited", `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
