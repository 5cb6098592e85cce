package imagestore

import (
	"bytes"
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveStore uploads images into one Google Drive folder.
type DriveStore struct {
	files    *drive.FilesService
	folderID string
}

// NewDriveStore authenticates with the service account file when one is
// given, otherwise with application default credentials.
func NewDriveStore(ctx context.Context, folderID, credentialsFile string) (*DriveStore, error) {
	opts := []option.ClientOption{option.WithScopes(drive.DriveFileScope)}
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &DriveStore{files: svc.Files, folderID: folderID}, nil
}

func (s *DriveStore) Upload(ctx context.Context, name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyImage
	}

	file := &drive.File{
		Name:     name,
		MimeType: contentType(data),
		Parents:  []string{s.folderID},
	}
	created, err := s.files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("drive upload: %w", err)
	}

	if created.WebViewLink != "" {
		return created.WebViewLink, nil
	}
	return "drive://" + created.Id, nil
}
