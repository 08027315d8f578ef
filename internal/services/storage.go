package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Storage saves driver profile photos on S3 when AWS credentials are
// configured, falling back to the local filesystem otherwise.
type Storage struct {
	uploader  *s3manager.Uploader
	bucket    string
	useS3     bool
	uploadDir string
	baseURL   string
}

func NewStorage() (*Storage, error) {
	awsRegion := os.Getenv("AWS_REGION")
	awsAccessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	awsSecretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	bucket := os.Getenv("AWS_S3_BUCKET")

	if awsRegion != "" && awsAccessKey != "" && awsSecretKey != "" && bucket != "" {
		sess, err := session.NewSession(&aws.Config{
			Region:      aws.String(awsRegion),
			Credentials: credentials.NewStaticCredentials(awsAccessKey, awsSecretKey, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %v", err)
		}

		return &Storage{
			uploader: s3manager.NewUploader(sess),
			bucket:   bucket,
			useS3:    true,
		}, nil
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	uploadDir := "./uploads"
	if err := os.MkdirAll(filepath.Join(uploadDir, "photos"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %v", err)
	}

	return &Storage{
		useS3:     false,
		uploadDir: uploadDir,
		baseURL:   baseURL,
	}, nil
}

// UploadPhoto stores the file and returns its public URL.
func (s *Storage) UploadPhoto(file *multipart.FileHeader, userID uint) (string, error) {
	filename := fmt.Sprintf("photos/%d-%d%s", userID, time.Now().UnixNano(), filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if s.useS3 {
		result, err := s.uploader.Upload(&s3manager.UploadInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(filename),
			Body:        src,
			ContentType: aws.String(file.Header.Get("Content-Type")),
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload to S3: %v", err)
		}
		return result.Location, nil
	}

	dstPath := filepath.Join(s.uploadDir, filename)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return s.baseURL + "/uploads/" + filename, nil
}

// IsUsingS3 reports which backend was selected.
func (s *Storage) IsUsingS3() bool {
	return s.useS3
}
