package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	appConfig "contacts-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
)

const avatarSize = 250

// AvatarStore uploads processed avatar images to object storage and returns
// their public URL.
type AvatarStore interface {
	UploadAvatar(ctx context.Context, username string, file io.Reader) (string, error)
}

// S3AvatarStore stores avatars in an S3 bucket, one object per username,
// overwriting any previous avatar at that key.
type S3AvatarStore struct {
	client *s3.Client
	cfg    *appConfig.StorageConfig
}

func NewS3AvatarStore(ctx context.Context, cfg *appConfig.StorageConfig) (*S3AvatarStore, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, awsConfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	return &S3AvatarStore{
		client: s3.NewFromConfig(awsCfg),
		cfg:    cfg,
	}, nil
}

func (s *S3AvatarStore) UploadAvatar(ctx context.Context, username string, file io.Reader) (string, error) {
	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode avatar image: %w", err)
	}

	cropped := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, cropped, &jpeg.Options{Quality: 90}); err != nil {
		return "", fmt.Errorf("failed to encode avatar image: %w", err)
	}

	key := fmt.Sprintf("%s/%s", s.cfg.AvatarFolder, username)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String("image/jpeg"),
		Body:        bytes.NewReader(buf.Bytes()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key), nil
}
