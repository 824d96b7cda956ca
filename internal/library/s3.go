package library

import (
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/viant/scy/cred"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
)

//S3Schemes object store schemes handled by s3 fetcher
var S3Schemes = []string{"s3", "s3a"}

type s3Fetcher struct {
	client *s3.Client
}

func (f *s3Fetcher) IsDir(ctx context.Context, URL string) (bool, error) {
	bucket, key, err := s3Location(URL)
	if err != nil {
		return false, err
	}
	if key == "" || strings.HasSuffix(key, "/") {
		return true, nil
	}
	_, err = f.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err == nil {
		return false, nil
	}
	if !isNotFound(err) {
		return false, err
	}
	output, listErr := f.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(key + "/"),
		MaxKeys: aws.Int32(1),
	})
	if listErr != nil {
		return false, listErr
	}
	if len(output.Contents) == 0 {
		return false, fmt.Errorf("s3://%v/%v not found: %w", bucket, key, err)
	}
	return true, nil
}

func (f *s3Fetcher) Fetch(ctx context.Context, URL string, dest string) error {
	isDir, err := f.IsDir(ctx, URL)
	if err != nil {
		return err
	}
	bucket, key, _ := s3Location(URL)
	if !isDir {
		return f.download(ctx, bucket, key, dest)
	}
	prefix := key
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	paginator := s3.NewListObjectsV2Paginator(f.client, &s3.ListObjectsV2Input{Bucket: aws.String(bucket), Prefix: aws.String(prefix)})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, object := range page.Contents {
			objectKey := aws.ToString(object.Key)
			if strings.HasSuffix(objectKey, "/") {
				continue
			}
			target, err := entryPath(dest, strings.TrimPrefix(objectKey, prefix))
			if err != nil {
				return err
			}
			if err = f.download(ctx, bucket, objectKey, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *s3Fetcher) download(ctx context.Context, bucket, key, dest string) error {
	output, err := f.client.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return fmt.Errorf("failed to get s3://%v/%v: %w", bucket, key, err)
	}
	defer output.Body.Close()
	return writeFile(filepath.Clean(dest), output.Body, fileMode)
}

func s3Location(URL string) (string, string, error) {
	parsed, err := url.Parse(URL)
	if err != nil {
		return "", "", err
	}
	if parsed.Host == "" {
		return "", "", fmt.Errorf("invalid object store URL, missing bucket: %v", URL)
	}
	return parsed.Host, strings.TrimPrefix(parsed.Path, "/"), nil
}

//isNotFound returns true for missing object errors, including HEAD responses that carry no error code
func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey":
			return true
		}
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode() == http.StatusNotFound
	}
	return false
}

//NewS3Fetcher creates object store fetcher, settings without key use default credential chain
func NewS3Fetcher(ctx context.Context, settings *cred.Aws) (Fetcher, error) {
	var options []func(*config.LoadOptions) error
	var endpoint string
	if settings != nil {
		if settings.Region != "" {
			options = append(options, config.WithRegion(settings.Region))
		}
		if settings.Key != "" {
			options = append(options, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(settings.Key, settings.Secret, settings.Token)))
		}
		endpoint = settings.Endpoint
	}
	cfg, err := config.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &s3Fetcher{client: client}, nil
}
