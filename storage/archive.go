package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Dosada05/friends-league/models"
)

const archiveContentType = "application/json"

type UploadResult struct {
	Key      string
	Location string // публичный URL объекта
	ETag     string
}

// FileUploader is the object store behind results archives. Keys are
// bucket-relative; GetPublicURL maps a key to the address readers fetch.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	GetPublicURL(key string) string
}

// ResultsArchive is the snapshot written once a tournament is finalized.
type ResultsArchive struct {
	Tournament models.Tournament    `json:"tournament"`
	Matches    []models.Match       `json:"matches"`
	Standings  []models.StandingRow `json:"standings,omitempty"`
	ArchivedAt time.Time            `json:"archived_at"`
}

func ArchiveKey(tournamentID string) string {
	return "tournaments/" + tournamentID + "/results.json"
}

// UploadResultsArchive encodes the archive and stores it under ArchiveKey.
func UploadResultsArchive(ctx context.Context, uploader FileUploader, archive ResultsArchive) (*UploadResult, error) {
	body, err := json.MarshalIndent(archive, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode results archive: %w", err)
	}
	return uploader.Upload(ctx, ArchiveKey(archive.Tournament.ID), archiveContentType, bytes.NewReader(body))
}
