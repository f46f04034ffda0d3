package config

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3ConfigDisabledWithoutBucket(t *testing.T) {
	cfg, err := NewS3Config(context.Background(), &Config{})
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestObjectKey(t *testing.T) {
	cfg := &S3Config{BucketName: "receptar-images", Region: "eu-central-1"}

	key, ok := cfg.ObjectKey("https://receptar-images.s3.eu-central-1.amazonaws.com/recipes/r1/photo.jpg")
	require.True(t, ok)
	assert.Equal(t, "recipes/r1/photo.jpg", key)

	_, ok = cfg.ObjectKey("https://images.example.com/photo.jpg")
	assert.False(t, ok)

	// other buckets in the same region are not ours either
	_, ok = cfg.ObjectKey("https://other-bucket.s3.eu-central-1.amazonaws.com/photo.jpg")
	assert.False(t, ok)
}

func TestGeneratePresignedURL(t *testing.T) {
	// presigning signs locally; static credentials keep the test offline
	awsCfg := aws.Config{
		Region:      "eu-central-1",
		Credentials: credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
	}
	cfg := &S3Config{
		Client:     s3.NewFromConfig(awsCfg),
		BucketName: "receptar-images",
		Region:     "eu-central-1",
	}

	url, err := cfg.GeneratePresignedURL(context.Background(), "recipes/r1/photo.jpg", 15*time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, "receptar-images")
	assert.Contains(t, url, "recipes/r1/photo.jpg")
	assert.Contains(t, url, "X-Amz-Signature")
	assert.Contains(t, url, "X-Amz-Expires=900")
}
