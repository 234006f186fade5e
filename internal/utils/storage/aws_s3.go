package storage

import (
	"Maitri-Dhatri-Backend/internal/utils"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
)

var (
	AllowImage = []string{"image/"}
	AllowVideo = []string{"video/"}

	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrFileTooLarge       = errors.New("file too large")
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, name string, file *multipart.FileHeader, folder string, maxSize int64, allowed ...string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(ctx context.Context, objectKey string) string
	}

	awsS3 struct {
		client    *s3.Client
		presigner *s3.PresignClient
		bucket    string
		publicURL string
		linkTTL   time.Duration
	}
)

func NewAwsS3() AwsS3 {
	ctx := context.Background()
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(utils.GetConfig("AWS_S3_REGION")),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Fatalf("error loading aws config: %v", err)
	}

	endpoint := utils.GetConfig("AWS_S3_ENDPOINT")
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &awsS3{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    utils.GetConfig("AWS_S3_BUCKET"),
		publicURL: strings.TrimRight(utils.GetConfig("AWS_S3_PUBLIC_URL"), "/"),
		linkTTL:   utils.GetConfigDuration("AWS_S3_LINK_TTL"),
	}
}

// ContentTypeAllowed reports whether contentType starts with one of the
// allowed prefixes.
func ContentTypeAllowed(contentType string, allowed ...string) bool {
	for _, prefix := range allowed {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

func (a *awsS3) UploadFile(ctx context.Context, name string, file *multipart.FileHeader, folder string, maxSize int64, allowed ...string) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !ContentTypeAllowed(contentType, allowed...) {
		return "", ErrFileTypeNotAllowed
	}
	if maxSize > 0 && file.Size > maxSize {
		return "", ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectKey := fmt.Sprintf("%s/%s%s", folder, name, strings.ToLower(filepath.Ext(file.Filename)))
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(objectKey),
		Body:          src,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(file.Size),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectKey, err)
	}
	return objectKey, nil
}

func (a *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

// GetPublicLinkKey returns a stable public URL when a public base is
// configured, otherwise a presigned GET link.
func (a *awsS3) GetPublicLinkKey(ctx context.Context, objectKey string) string {
	if objectKey == "" {
		return ""
	}
	if a.publicURL != "" {
		return a.publicURL + "/" + objectKey
	}
	req, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(a.linkTTL))
	if err != nil {
		log.Warnf("presign %s: %v", objectKey, err)
		return ""
	}
	return req.URL
}
