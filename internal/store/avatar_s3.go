// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/imperial-command/internal/config"
	"github.com/MKhiriev/imperial-command/internal/logger"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const avatarKeyPrefix = "avatars/"

// s3API is the subset of *s3.Client used by the avatar storage.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3AvatarStorage keeps avatars as objects under the "avatars/" prefix of a
// bucket. Works with AWS S3 and S3-compatible stores such as MinIO.
type s3AvatarStorage struct {
	client s3API
	bucket string
	logger *logger.Logger
}

// NewS3AvatarStorage builds an S3 client from cfg. Static credentials are
// used when both keys are set, the default AWS credential chain otherwise.
func NewS3AvatarStorage(ctx context.Context, cfg config.S3, log *logger.Logger) (AvatarStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	log.Debug().Str("bucket", cfg.Bucket).Msg("creating s3 avatar storage")
	return newS3AvatarStorage(client, cfg.Bucket, log), nil
}

func newS3AvatarStorage(client s3API, bucket string, log *logger.Logger) *s3AvatarStorage {
	return &s3AvatarStorage{client: client, bucket: bucket, logger: log}
}

func (s *s3AvatarStorage) SaveAvatar(ctx context.Context, name, contentType string, data []byte) error {
	if err := checkAvatarName(name); err != nil {
		return err
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(avatarKeyPrefix + name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3AvatarStorage.SaveAvatar").Msg("error uploading avatar")
		return fmt.Errorf("failed to upload to s3: %w", err)
	}
	return nil
}

func (s *s3AvatarStorage) OpenAvatar(ctx context.Context, name string) (io.ReadCloser, string, error) {
	if err := checkAvatarName(name); err != nil {
		return nil, "", err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(avatarKeyPrefix + name),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, "", ErrAvatarNotFound
		}
		return nil, "", fmt.Errorf("failed to get object from s3: %w", err)
	}

	return out.Body, aws.ToString(out.ContentType), nil
}

func (s *s3AvatarStorage) DeleteAvatar(ctx context.Context, name string) error {
	if err := checkAvatarName(name); err != nil {
		return err
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(avatarKeyPrefix + name),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func isS3NotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}
