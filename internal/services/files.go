package services

import (
	"context"
	"fmt"
	"time"

	appconfig "love-diary-backend/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// tempURLBatchSize caps how many identifiers one presign pass handles;
	// longer input lists are chunked transparently.
	tempURLBatchSize = 50

	tempURLExpiry   = 15 * time.Minute
	uploadURLExpiry = 5 * time.Minute
)

// TempFileURL pairs a storage identifier with its short-lived signed URL.
// The URL is empty when resolution failed for that identifier.
type TempFileURL struct {
	FileID      string `json:"file_id"`
	TempFileURL string `json:"temp_file_url"`
}

// UploadTicket is a presigned PUT the client can upload a file to
type UploadTicket struct {
	FileID    string `json:"file_id"`
	UploadURL string `json:"upload_url"`
	ExpiresIn int    `json:"expires_in"`
}

// FileService exchanges storage identifiers for temporary signed URLs and
// issues upload tickets. All operations are stateless.
type FileService struct {
	s3Client *s3.Client
	presign  *s3.PresignClient
	bucket   string
}

// NewFileService creates a new file service backed by S3-compatible storage
func NewFileService(cfg appconfig.AWSConfig) (*FileService, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &FileService{
		s3Client: client,
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.S3Bucket,
	}, nil
}

// TempURLs exchanges storage identifiers for temporary signed GET URLs.
// The result is parallel to the input; a per-item failure yields an empty
// URL rather than failing the whole batch.
func (s *FileService) TempURLs(ctx context.Context, fileIDs []string) []TempFileURL {
	result := make([]TempFileURL, 0, len(fileIDs))

	for start := 0; start < len(fileIDs); start += tempURLBatchSize {
		end := start + tempURLBatchSize
		if end > len(fileIDs) {
			end = len(fileIDs)
		}
		for _, fileID := range fileIDs[start:end] {
			result = append(result, TempFileURL{
				FileID:      fileID,
				TempFileURL: s.tempURL(ctx, fileID),
			})
		}
	}
	return result
}

func (s *FileService) tempURL(ctx context.Context, fileID string) string {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileID),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = tempURLExpiry
	})
	if err != nil {
		log.Error().Err(err).Str("file_id", fileID).Msg("Failed to presign temp URL")
		return ""
	}
	return req.URL
}

// NewUploadTicket issues a presigned PUT URL under the given folder
func (s *FileService) NewUploadTicket(ctx context.Context, folder, contentType string) (*UploadTicket, error) {
	fileID := fmt.Sprintf("%s/%d_%s.jpg", folder, time.Now().UnixMilli(), uuid.New().String())

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(fileID),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload URL: %w", err)
	}

	return &UploadTicket{
		FileID:    fileID,
		UploadURL: req.URL,
		ExpiresIn: int(uploadURLExpiry.Seconds()),
	}, nil
}

// Delete removes a stored file. Best effort: callers log failures instead
// of surfacing them.
func (s *FileService) Delete(ctx context.Context, fileID string) error {
	_, err := s.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// SharedFolder returns the storage folder shared by a pairing, stable
// regardless of which member uploads.
func SharedFolder(prefix, userID string, partnerID *string) string {
	if partnerID == nil {
		return fmt.Sprintf("%s/%s", prefix, userID)
	}
	a, b := userID, *partnerID
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%s/%s_%s", prefix, a, b)
}
