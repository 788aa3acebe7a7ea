package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gametrack/pkg/logger"

	"github.com/rs/zerolog"
)

// LogUploader ships the current log file.
type LogUploader interface {
	UploadToS3Bucket(ctx context.Context, objectKey string) error
}

// LogObjectKey is the bucket key of the logs of a service for a given day.
func LogObjectKey(service string, day time.Time) string {
	return fmt.Sprintf("logs/%s/%s.log", service, day.UTC().Format("2006-01-02"))
}

// UploadLogs uploads the log file under the key of the given day.
// Nothing happens when no bucket is configured.
func UploadLogs(ctx context.Context, uploader LogUploader, service string, day time.Time, log zerolog.Logger) error {
	key := LogObjectKey(service, day)

	err := uploader.UploadToS3Bucket(ctx, key)
	if errors.Is(err, logger.ErrBucketDisabled) {
		log.Debug().Msg("log bucket not configured, skipping upload")
		return nil
	}
	if err != nil {
		return fmt.Errorf("couldn't upload the logs to %s: %w", key, err)
	}

	log.Info().Str("key", key).Msg("logs uploaded")
	return nil
}
