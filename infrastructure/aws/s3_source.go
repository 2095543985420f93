package aws

import (
	"context"
	"fmt"
	"io"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	domainImage "github.com/photoframe/photoframe/domains/image"
)

// S3Source lists and downloads images from one bucket.
type S3Source struct {
	client S3API
	bucket string
}

func NewS3Source(client S3API, bucket string) *S3Source {
	return &S3Source{client: client, bucket: bucket}
}

// List walks every page under prefix.
func (s *S3Source) List(ctx context.Context, prefix string) ([]domainImage.Object, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: awssdk.String(s.bucket),
		Prefix: awssdk.String(prefix),
	})

	var objects []domainImage.Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list s3://%s/%s: %w", s.bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, domainImage.Object{
				Key:  awssdk.ToString(obj.Key),
				Size: awssdk.ToInt64(obj.Size),
			})
		}
	}
	return objects, nil
}

func (s *S3Source) Fetch(ctx context.Context, key string) (domainImage.Image, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(s.bucket),
		Key:    awssdk.String(key),
	})
	if err != nil {
		return domainImage.Image{}, fmt.Errorf("failed to get s3://%s/%s: %w", s.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return domainImage.Image{}, fmt.Errorf("failed to read s3://%s/%s: %w", s.bucket, key, err)
	}

	length := awssdk.ToInt64(out.ContentLength)
	if length == 0 {
		length = int64(len(data))
	}
	return domainImage.Image{
		Key:           key,
		Data:          data,
		ContentLength: length,
		ContentType:   awssdk.ToString(out.ContentType),
	}, nil
}
