package backup

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/printdesk/jobtrack/internal/jobs"
)

// ErrBucketNotFound reports a missing destination bucket.
var ErrBucketNotFound = errors.New("bucket not found")

// Uploader writes snapshot objects to S3.
type Uploader struct {
	client *s3.Client
	cfg    Config
}

// NewUploader builds the S3 client from cfg.
func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s3Opts := []func(*s3.Options){
		func(o *s3.Options) {
			if cfg.ForcePathStyle {
				o.UsePathStyle = true
			}
		},
	}
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &Uploader{
		client: s3.NewFromConfig(awsCfg, s3Opts...),
		cfg:    cfg,
	}, nil
}

// Snapshot serializes the records as CSV and uploads them under a
// timestamped key. Returns the object key written.
func (u *Uploader) Snapshot(ctx context.Context, records []jobs.Record, takenAt time.Time) (string, error) {
	body, err := SnapshotCSV(records)
	if err != nil {
		return "", err
	}

	key := SnapshotKey(u.cfg.Prefix, takenAt)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/csv"),
	})
	if err != nil {
		return "", wrapS3Error(key, err)
	}
	return key, nil
}

// SnapshotCSV renders records as CSV with a header row, in the
// persisted column order.
func SnapshotCSV(records []jobs.Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(jobs.Headers()); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			rec.JobNumber,
			rec.CustomerName,
			rec.JobName,
			rec.JobLocation,
			rec.SalesPerson,
			rec.JobSize,
			rec.Quantity,
			rec.JobCategory,
			rec.JobBookedDate,
			rec.JobStatus,
			rec.DeliveryDate,
			rec.DeliveryDetails,
			rec.Remark,
			rec.SubmissionDate,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// SnapshotKey builds the object key for a snapshot taken at t.
func SnapshotKey(prefix string, t time.Time) string {
	return path.Join(prefix, fmt.Sprintf("jobs-%s.csv", t.UTC().Format("20060102-150405")))
}

func wrapS3Error(key string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchBucket" {
		return fmt.Errorf("put %s: %w", key, ErrBucketNotFound)
	}
	return fmt.Errorf("put %s: %w", key, err)
}
