package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movieplatform/movie-api/internal/core/ports"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func newTestStorage(putter *fakePutter, endpoint string) *Storage {
	s := newStorage(putter, Config{Region: "eu-west-1", Bucket: "media", Endpoint: endpoint})
	s.newKey = func() string { return "fixed" }
	return s
}

func TestStorage_Upload_CustomEndpoint(t *testing.T) {
	putter := &fakePutter{}
	s := newTestStorage(putter, "http://minio:9000/")

	url, err := s.Upload(context.Background(), ports.Upload{
		Kind:        ports.UploadPhoto,
		Filename:    "Me.PNG",
		ContentType: "image/png",
		Size:        3,
		Body:        strings.NewReader("png"),
	})
	require.NoError(t, err)

	assert.Equal(t, "http://minio:9000/media/photos/fixed.png", url)
	assert.Equal(t, "media", aws.ToString(putter.in.Bucket))
	assert.Equal(t, "photos/fixed.png", aws.ToString(putter.in.Key))
	assert.Equal(t, "image/png", aws.ToString(putter.in.ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(putter.in.ContentLength))
	assert.Equal(t, "png", putter.body)
}

func TestStorage_Upload_AWSURLAndDefaultKind(t *testing.T) {
	putter := &fakePutter{}
	s := newTestStorage(putter, "")

	url, err := s.Upload(context.Background(), ports.Upload{Filename: "cv.pdf", Body: io.NopCloser(strings.NewReader("pdf"))})
	require.NoError(t, err)

	assert.Equal(t, "https://media.s3.eu-west-1.amazonaws.com/documents/fixed.pdf", url)
	assert.Nil(t, putter.in.ContentType)
	assert.Equal(t, "pdf", putter.body, "non-seekable bodies are buffered")
}

func TestStorage_Upload_Error(t *testing.T) {
	s := newTestStorage(&fakePutter{err: errors.New("access denied")}, "")

	_, err := s.Upload(context.Background(), ports.Upload{Filename: "x.png", Body: strings.NewReader("x")})
	assert.ErrorContains(t, err, "access denied")
}
