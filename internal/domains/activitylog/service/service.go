package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"clinic/config"
	"clinic/infras/otel"
	"clinic/internal/domains/activitylog/model"
	"clinic/internal/domains/activitylog/model/dto"
	"clinic/internal/domains/activitylog/repository"
	"clinic/internal/domains/activitylog/sink"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/timezone"
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// ActivityLog is the append-only audit trail. Rows written with AppendTx
// become visible with the surrounding transaction; Publish mirrors them to the
// external sink once that transaction has committed.
type ActivityLog interface {
	AppendTx(ctx context.Context, tx *sqlx.Tx, entries ...dto.Entry) ([]model.ActivityLog, error)
	Append(ctx context.Context, entries ...dto.Entry) error
	Publish(ctx context.Context, logs ...model.ActivityLog)
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetActivityLogsRequest) (dto.GetActivityLogsResponse, error)
}

type serviceImpl struct {
	repo repository.ActivityLog
	sink sink.Sink
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.ActivityLog, sink sink.Sink, cfg *config.Config, otel otel.Otel) ActivityLog {
	return &serviceImpl{
		repo: repo,
		sink: sink,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) AppendTx(ctx context.Context, tx *sqlx.Tx, entries ...dto.Entry) (logs []model.ActivityLog, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelAuditScopeName, constant.OtelAuditScopeName+".AppendTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()
	logs = make([]model.ActivityLog, 0, len(entries))

	for _, entry := range entries {
		activity := entry.ToModel(now)

		if err = s.repo.InsertTx(ctx, tx, activity); err != nil {
			log.Error().Err(err).Str("entity_id", entry.EntityID).Msg("failed to append activity log")

			return nil, fmt.Errorf("failed to append activity log: %w", err)
		}

		logs = append(logs, activity)
	}

	return logs, nil
}

func (s *serviceImpl) Append(ctx context.Context, entries ...dto.Entry) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelAuditScopeName, constant.OtelAuditScopeName+".Append")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()
	logs := make([]model.ActivityLog, 0, len(entries))

	for _, entry := range entries {
		activity := entry.ToModel(now)

		if err = s.repo.Insert(ctx, activity); err != nil {
			log.Error().Err(err).Str("entity_id", entry.EntityID).Msg("failed to append activity log")

			return fmt.Errorf("failed to append activity log: %w", err)
		}

		logs = append(logs, activity)
	}

	s.Publish(ctx, logs...)

	return nil
}

// Publish never fails the caller. A sink outage only costs the mirror copy.
func (s *serviceImpl) Publish(ctx context.Context, logs ...model.ActivityLog) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelAuditScopeName, constant.OtelAuditScopeName+".Publish")
	defer scope.End()

	for _, activity := range logs {
		record := sink.Record{
			ID:         activity.ID,
			Timestamp:  timezone.ToAppTime(activity.CreatedAt),
			ActorName:  activity.ActorName,
			Action:     activity.Action,
			EntityType: activity.EntityType,
			EntityID:   activity.EntityID,
			Message:    activity.Message,
		}

		if err := s.sink.Write(ctx, record); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("activity_id", activity.ID).Msg("failed to mirror activity log")
		}
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetActivityLogsRequest) (res dto.GetActivityLogsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".activitylog.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := req.ToFilter()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count activity logs")

		return res, fmt.Errorf("failed to count activity logs: %w", err)
	}

	params.SortBy = model.TableName + "." + model.FieldCreatedAt
	params.SortDir = gDto.SortDirDesc

	logs, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get activity logs")

		return res, fmt.Errorf("failed to get activity logs: %w", err)
	}

	res.FromModels(logs, total, params.Limit)

	return res, nil
}
