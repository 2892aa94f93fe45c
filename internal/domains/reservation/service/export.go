package service

import (
	"bytes"
	"clinic/internal/domains/reservation/model/dto"
	"clinic/shared/calendar"
	"clinic/shared/constant"
	gDto "clinic/shared/dto"
	"clinic/shared/timezone"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
)

const reportFileLayout = "20060102-150405"

var reportHeader = []string{
	"id", "date", "day", "time", "location", "first_name", "last_name", "phone", "status", "visited", "notes",
}

// Export writes the whole report, unpaginated, as CSV to object storage and
// returns its public URL.
func (s *serviceImpl) Export(ctx context.Context, req dto.GetReservationsRequest) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := reportOrder(gDto.QueryParams{})

	details, err := s.repo.GetAllDetails(ctx, params, req.ToFilter(calendar.Today()))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations for export")

		return res, fmt.Errorf("failed to get reservations for export: %w", err)
	}

	content, err := writeReport(dto.FromDetails(details))
	if err != nil {
		log.Error().Err(err).Msg("failed to write reservation report")

		return res, fmt.Errorf("failed to write reservation report: %w", err)
	}

	fileName := fmt.Sprintf("reservations-%s.csv", timezone.Now().Format(reportFileLayout))

	url, err := s.storage.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, s.cfg.Reservation.ReportDirectory, fileName, constant.ContentTypeCSV, content)
	if err != nil {
		log.Error().Err(err).Str("file", fileName).Msg("failed to upload reservation report")

		return res, fmt.Errorf("failed to upload reservation report: %w", err)
	}

	return dto.ExportResponse{URL: url, Total: len(details)}, nil
}

func writeReport(rows []dto.ReservationDetailResponse) ([]byte, error) {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)

	if err := writer.Write(reportHeader); err != nil {
		return nil, err //nolint:wrapcheck
	}

	for _, row := range rows {
		record := []string{
			row.ID,
			row.Date,
			row.DayName,
			row.Time,
			row.LocationTag,
			row.Customer.FirstName,
			row.Customer.LastName,
			row.Customer.Phone,
			row.Status,
			strconv.FormatBool(row.Visited),
			row.Notes,
		}

		if err := writer.Write(record); err != nil {
			return nil, err //nolint:wrapcheck
		}
	}

	writer.Flush()

	return buf.Bytes(), writer.Error() //nolint:wrapcheck
}
