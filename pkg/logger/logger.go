package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	appConfig "gametrack/pkg/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
)

// ErrBucketDisabled is returned when uploading without a configured bucket.
var ErrBucketDisabled = errors.New("log bucket is not configured")

// Uploader is the subset of the s3 client used by the logger.
type Uploader interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Logger writes structured logs to stdout and keeps a copy on a temporary file for archiving.
type Logger struct {
	zerolog.Logger

	file     *logFile
	bucket   appConfig.BucketConfiguration
	uploader Uploader
}

// logFile serializes writes with the truncation done after an upload.
type logFile struct {
	mu   sync.Mutex
	file *os.File
}

func (f *logFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.file.Write(p)
}

// New creates the logger with a temporary file and the configured level.
func New(cfg *appConfig.Config) (*Logger, error) {
	f, err := os.CreateTemp("", "gametrack-*.log")
	if err != nil {
		return nil, fmt.Errorf("couldn't create the log file: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	file := &logFile{file: f}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	base := zerolog.New(io.MultiWriter(os.Stdout, file)).
		With().
		Timestamp().
		Logger().
		Level(level)

	l := &Logger{
		Logger: base,
		file:   file,
		bucket: cfg.Bucket,
	}

	if cfg.Bucket.Enabled() {
		l.uploader = newS3Client(cfg.Bucket)
	}

	return l, nil
}

// newS3Client creates the client for a S3 compatible bucket with static credentials.
func newS3Client(bucket appConfig.BucketConfiguration) *s3.Client {
	cfg := aws.Config{
		Region: bucket.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				bucket.AccessKey,
				bucket.AccessSecret,
				"",
			),
		),
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(bucket.Endpoint)
		o.UsePathStyle = true
	})
}

// FilePath returns the path of the local log copy.
func (l *Logger) FilePath() string {
	return l.file.file.Name()
}

// Close closes the local log file.
func (l *Logger) Close() error {
	l.file.mu.Lock()
	defer l.file.mu.Unlock()
	return l.file.file.Close()
}

// UploadToS3Bucket uploads the local log copy and truncates it once stored.
func (l *Logger) UploadToS3Bucket(ctx context.Context, objectKey string) error {
	if l.uploader == nil {
		return ErrBucketDisabled
	}

	// Writers wait until the content is uploaded and cleaned.
	l.file.mu.Lock()
	defer l.file.mu.Unlock()

	if _, err := l.file.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	_, err := l.uploader.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(l.bucket.LogBucket),
		Key:    aws.String(objectKey),
		Body:   l.file.file,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		// Keep appending at the end, the content is uploaded on the next run.
		l.file.file.Seek(0, io.SeekEnd)
		return fmt.Errorf("failed to upload %s to S3 bucket: %w", objectKey, err)
	}

	if err := l.file.file.Truncate(0); err != nil {
		return fmt.Errorf("couldn't clean the log file: %w", err)
	}
	_, err = l.file.file.Seek(0, io.SeekStart)
	return err
}
