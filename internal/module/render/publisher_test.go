package render

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempVideo(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "out.mp4")
	require.NoError(t, os.WriteFile(p, []byte("mp4 bytes"), 0o644))
	return p
}

func TestLocalPublisher_Publish(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "static", "videos")
	pub := NewLocalPublisher(dir, "https://edumate.example.com/")
	src := writeTempVideo(t)

	artifact, err := pub.Publish(context.Background(), src, "abc.mp4")
	require.NoError(t, err)

	assert.Equal(t, "https://edumate.example.com/static/videos/abc.mp4", artifact.URL)
	assert.Equal(t, filepath.Join(dir, "abc.mp4"), artifact.Path)
	assert.Equal(t, "abc.mp4", artifact.Filename)
	assert.NoFileExists(t, src)

	data, err := os.ReadFile(artifact.Path)
	require.NoError(t, err)
	assert.Equal(t, "mp4 bytes", string(data))
}

func TestLocalPublisher_MissingSource(t *testing.T) {
	pub := NewLocalPublisher(t.TempDir(), "http://localhost:5000")

	_, err := pub.Publish(context.Background(), filepath.Join(t.TempDir(), "nope.mp4"), "abc.mp4")
	assert.Error(t, err)
}

type fakeStore struct {
	key         string
	bucket      string
	body        string
	contentType string
	err         error
}

func (f *fakeStore) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	f.contentType = aws.ToString(in.ContentType)
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = string(b)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Publisher_PublicURL(t *testing.T) {
	store := &fakeStore{}
	pub := &S3Publisher{
		client: store,
		cfg: S3Config{
			Bucket:        "lessons",
			Prefix:        "videos",
			PublicBaseURL: "https://cdn.example.com/",
		},
	}
	src := writeTempVideo(t)

	artifact, err := pub.Publish(context.Background(), src, "abc.mp4")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/videos/abc.mp4", artifact.URL)
	assert.Empty(t, artifact.Path)
	assert.Equal(t, "lessons", store.bucket)
	assert.Equal(t, "videos/abc.mp4", store.key)
	assert.Equal(t, "video/mp4", store.contentType)
	assert.Equal(t, "mp4 bytes", store.body)
	assert.NoFileExists(t, src)
}

func TestS3Publisher_UploadError(t *testing.T) {
	pub := &S3Publisher{
		client: &fakeStore{err: errors.New("access denied")},
		cfg:    S3Config{Bucket: "lessons", PublicBaseURL: "https://cdn.example.com"},
	}
	src := writeTempVideo(t)

	_, err := pub.Publish(context.Background(), src, "abc.mp4")
	assert.ErrorContains(t, err, "access denied")
	assert.FileExists(t, src)
}

func TestS3Publisher_PresignedURL(t *testing.T) {
	pub, err := NewS3Publisher(context.Background(), S3Config{
		Endpoint:        "http://127.0.0.1:9000",
		Region:          "us-east-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		Bucket:          "lessons",
		Prefix:          "videos",
		PresignExpiry:   time.Hour,
	})
	require.NoError(t, err)

	url, err := pub.url(context.Background(), pub.Key("abc.mp4"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://127.0.0.1:9000/lessons/videos/abc.mp4?"), url)
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=3600")
}

func TestNewS3Publisher_RequiresBucket(t *testing.T) {
	_, err := NewS3Publisher(context.Background(), S3Config{})
	assert.Error(t, err)
}
