package storage

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"Go-Recipe-Hub/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	AllowImage = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	AllowVideo = []string{"video/mp4", "video/quicktime", "video/webm", "video/x-matroska"}

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMediaKindMismatch    = errors.New("file content does not match the requested media kind")
)

type (
	// AwsS3 is the blob store used for recipe thumbnails and step media.
	AwsS3 interface {
		// UploadFile stores file under folder and returns its public URL.
		UploadFile(ctx context.Context, file *multipart.FileHeader, isVideo bool, folder string) (string, error)
		// IsVideoFile classifies file by its content, never by its name.
		IsVideoFile(file *multipart.FileHeader) (bool, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetObjectKeyFromLink(link string) string
		GetPublicLinkKey(objectKey string) string
	}

	awsS3 struct {
		client    *s3.Client
		bucket    string
		region    string
		publicURL string
	}
)

func NewAwsS3() (AwsS3, error) {
	region := utils.GetConfig("AWS_S3_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &awsS3{
		client:    s3.NewFromConfig(cfg),
		bucket:    utils.GetConfig("AWS_S3_BUCKET"),
		region:    region,
		publicURL: strings.TrimRight(utils.GetConfig("AWS_S3_PUBLIC_URL"), "/"),
	}, nil
}

// DetectMediaType sniffs the MIME type from the first bytes of the file.
func DetectMediaType(file *multipart.FileHeader) (*mimetype.MIME, error) {
	if file == nil {
		return nil, errors.New("file is required")
	}
	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return mimetype.DetectReader(f)
}

func (s *awsS3) IsVideoFile(file *multipart.FileHeader) (bool, error) {
	return IsVideoContent(file)
}

// IsVideoContent reports whether the file content is a video.
func IsVideoContent(file *multipart.FileHeader) (bool, error) {
	mtype, err := DetectMediaType(file)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(mtype.String(), "video/"), nil
}

// CheckAllowed verifies that the sniffed type belongs to the requested kind.
func CheckAllowed(mtype *mimetype.MIME, isVideo bool) error {
	allowed := AllowImage
	if isVideo {
		allowed = AllowVideo
	}
	if mimetype.EqualsAny(mtype.String(), allowed...) {
		return nil
	}
	if mimetype.EqualsAny(mtype.String(), append(append([]string{}, AllowImage...), AllowVideo...)...) {
		return fmt.Errorf("%w: %s", ErrMediaKindMismatch, mtype.String())
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mtype.String())
}

func (s *awsS3) UploadFile(ctx context.Context, file *multipart.FileHeader, isVideo bool, folder string) (string, error) {
	mtype, err := DetectMediaType(file)
	if err != nil {
		return "", err
	}
	if err := CheckAllowed(mtype, isVideo); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectKey := fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.New().String(), mtype.Extension())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          src,
		ContentLength: aws.Int64(file.Size),
		ContentType:   aws.String(mtype.String()),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", objectKey, err)
	}

	return s.GetPublicLinkKey(objectKey), nil
}

func (s *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (s *awsS3) baseURL() string {
	if s.publicURL != "" {
		return s.publicURL
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.region)
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return s.baseURL() + "/" + objectKey
}

func (s *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := s.baseURL() + "/"
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}
