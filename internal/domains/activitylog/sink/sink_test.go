package sink_test

import (
	"bufio"
	"clinic/config"
	"clinic/infras/kafka"
	kafkaMocks "clinic/infras/kafka/mocks"
	rabbitMocks "clinic/infras/rabbitmq/mocks"
	"clinic/internal/domains/activitylog/sink"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func record() sink.Record {
	return sink.Record{
		ID:         "log-1",
		Timestamp:  time.Date(2024, 3, 20, 9, 30, 0, 0, time.UTC),
		ActorName:  "Sara Ahmadi",
		Action:     "cancelled",
		EntityType: "reservation",
		EntityID:   "res-1",
		Message:    "reservation res-1 cancelled by Sara Ahmadi",
	}
}

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "activity.log")

	fileSink, err := sink.NewFile(path)
	require.NoError(t, err)

	require.NoError(t, fileSink.Write(context.Background(), record()))
	require.NoError(t, fileSink.Write(context.Background(), record()))
	require.NoError(t, fileSink.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	lines := 0
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		lines++

		var line map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))

		assert.Equal(t, "2024/03/20 09:30:00", line["at"])
		assert.Equal(t, "Sara Ahmadi", line["user"])
		assert.Equal(t, "cancelled", line["action"])
		assert.Equal(t, "reservation", line["model"])
		assert.Equal(t, "res-1", line["model_id"])
		assert.Equal(t, "reservation res-1 cancelled by Sara Ahmadi", line["message"])
	}

	assert.Equal(t, 2, lines)
}

func TestKafkaSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	kafkaSink := sink.NewKafka(client, "clinic.activity-logs")

	client.EXPECT().
		SendMessages(gomock.Any(), "clinic.activity-logs", kafka.Message{Key: "reservation:res-1", Value: record()}).
		Return(nil)

	assert.NoError(t, kafkaSink.Write(context.Background(), record()))

	client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	assert.Error(t, kafkaSink.Write(context.Background(), record()))
}

func TestRabbitMQSink(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	publisher := rabbitMocks.NewMockPublisher(ctrl)
	rabbitSink := sink.NewRabbitMQ(publisher, "clinic.activity-logs")

	publisher.EXPECT().Publish(gomock.Any(), "clinic.activity-logs", "log-1", record()).Return(nil)

	assert.NoError(t, rabbitSink.Write(context.Background(), record()))

	publisher.EXPECT().Close().Return(nil)

	assert.NoError(t, rabbitSink.Close())
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := kafkaMocks.NewMockClient(ctrl)
	publisher := rabbitMocks.NewMockPublisher(ctrl)

	tests := []struct {
		driver  string
		want    any
		wantErr bool
	}{
		{driver: sink.DriverFile, want: &sink.File{}},
		{driver: sink.DriverKafka, want: &sink.Kafka{}},
		{driver: sink.DriverRabbitMQ, want: &sink.RabbitMQ{}},
		{driver: sink.DriverNone, want: sink.None{}},
		{driver: "syslog", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Audit.Sink = tt.driver
			cfg.Audit.FilePath = filepath.Join(t.TempDir(), "activity.log")

			got, err := sink.New(cfg, client, publisher)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.IsType(t, tt.want, got)
		})
	}
}
