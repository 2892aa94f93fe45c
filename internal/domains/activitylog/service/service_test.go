package service_test

import (
	"clinic/config"
	"clinic/infras/otel/mocks"
	activityMocks "clinic/internal/domains/activitylog/mocks"
	"clinic/internal/domains/activitylog/model"
	"clinic/internal/domains/activitylog/model/dto"
	"clinic/internal/domains/activitylog/service"
	"clinic/internal/domains/activitylog/sink"
	sinkMocks "clinic/internal/domains/activitylog/sink/mocks"
	gDto "clinic/shared/dto"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var operator = gDto.Actor{ID: "admin-1", Name: "Sara Ahmadi"}

func TestActivityLogService_AppendTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := activityMocks.NewMockActivityLog(ctrl)
	mockSink := sinkMocks.NewMockSink(ctrl)

	svc := service.New(mockRepo, mockSink, &config.Config{}, mocks.NewOtel())

	entries := []dto.Entry{
		dto.NewEntry(model.EntityReservation, "res-old", model.ActionReplaced, operator, ""),
		dto.NewEntry(model.EntityReservation, "res-new", model.ActionRelocated, operator, "moved from res-old"),
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "every entry inserted in the transaction",
			setupMock: func() {
				mockRepo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(nil).Times(2)
			},
		},
		{
			name: "insert failure aborts",
			setupMock: func() {
				mockRepo.EXPECT().InsertTx(gomock.Any(), gomock.Nil(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			logs, err := svc.AppendTx(context.Background(), nil, entries...)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, logs)

				return
			}

			require.NoError(t, err)
			require.Len(t, logs, 2)
			assert.Equal(t, "reservation res-old replaced by Sara Ahmadi", logs[0].Message)
			assert.Equal(t, "moved from res-old", logs[1].Message)
			assert.Equal(t, operator.ID, logs[1].ActorID)
			assert.NotEqual(t, logs[0].ID, logs[1].ID)
		})
	}
}

func TestActivityLogService_Append(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := activityMocks.NewMockActivityLog(ctrl)
	mockSink := sinkMocks.NewMockSink(ctrl)

	svc := service.New(mockRepo, mockSink, &config.Config{}, mocks.NewOtel())

	entry := dto.NewEntry(model.EntityAdmin, "admin-1", model.ActionLogin, operator, "")

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "stored and mirrored",
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				mockSink.EXPECT().Write(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, record sink.Record) error {
					assert.Equal(t, model.ActionLogin, record.Action)
					assert.Equal(t, operator.Name, record.ActorName)
					assert.Equal(t, "admin-1", record.EntityID)

					return nil
				})
			},
		},
		{
			name: "sink failure does not fail the write",
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
				mockSink.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))
			},
		},
		{
			name: "storage failure skips the sink",
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Append(context.Background(), entry)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestActivityLogService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := activityMocks.NewMockActivityLog(ctrl)
	mockSink := sinkMocks.NewMockSink(ctrl)

	svc := service.New(mockRepo, mockSink, &config.Config{}, mocks.NewOtel())

	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: "message; DROP TABLE admins", SortDir: gDto.SortDirAsc}
	req := dto.GetActivityLogsRequest{Action: model.ActionCancelled}

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.ActivityLog, error) {
			assert.Equal(t, "activity_logs.created_at", params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			where, args := filter.GetWhereClause()
			assert.Equal(t, "(activity_logs.action = :action)", where)
			assert.Equal(t, model.ActionCancelled, args["action"])

			return []model.ActivityLog{{ID: "log-1", Action: model.ActionCancelled}}, nil
		})

	res, err := svc.GetAll(context.Background(), params, req)

	require.NoError(t, err)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.ActivityLogs, 1)

	mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))

	_, err = svc.GetAll(context.Background(), params, req)
	assert.Error(t, err)
}
