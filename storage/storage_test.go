package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/friends-league/models"
)

type fakeObjectAPI struct {
	puts  map[string][]byte
	types map[string]string
	err   error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{puts: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjectAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts[aws.ToString(in.Key)] = body
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func TestNewCloudflareR2Uploader_RequiresAllFields(t *testing.T) {
	_, err := NewCloudflareR2Uploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc", BucketName: "b"})
	assert.Error(t, err)
}

func TestGetPublicURL(t *testing.T) {
	for _, base := range []string{"https://cdn.example.com", "https://cdn.example.com/"} {
		u, err := newR2Uploader(newFakeObjectAPI(), "bucket", base)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/tournaments/t1/results.json", u.GetPublicURL("tournaments/t1/results.json"))
		assert.Equal(t, "https://cdn.example.com/a.json", u.GetPublicURL("/a.json"))
		assert.Empty(t, u.GetPublicURL(""))
	}

	u, err := newR2Uploader(newFakeObjectAPI(), "bucket", "https://cdn.example.com/league")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/league/x.json", u.GetPublicURL("x.json"))
}

func TestUploadResultsArchive(t *testing.T) {
	api := newFakeObjectAPI()
	u, err := newR2Uploader(api, "bucket", "https://cdn.example.com")
	require.NoError(t, err)

	winner := "Owls"
	archive := ResultsArchive{
		Tournament: models.Tournament{ID: "t1", Name: "Cup", Winner: &winner, Status: models.StatusFinalized},
		Matches:    []models.Match{{ID: "m1", RoundLabel: "Final"}},
		ArchivedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	res, err := UploadResultsArchive(context.Background(), u, archive)
	require.NoError(t, err)
	assert.Equal(t, "tournaments/t1/results.json", res.Key)
	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, "https://cdn.example.com/tournaments/t1/results.json", res.Location)
	assert.Equal(t, "application/json", api.types[res.Key])

	var decoded ResultsArchive
	require.NoError(t, json.Unmarshal(api.puts[res.Key], &decoded))
	assert.Equal(t, "Owls", *decoded.Tournament.Winner)
	assert.Len(t, decoded.Matches, 1)
}

func TestUpload_Errors(t *testing.T) {
	api := newFakeObjectAPI()
	api.err = errors.New("network down")
	u, err := newR2Uploader(api, "bucket", "https://cdn.example.com")
	require.NoError(t, err)

	_, err = u.Upload(context.Background(), "k", "text/plain", nil)
	assert.ErrorIs(t, err, api.err)
	assert.Empty(t, api.puts)
}
