package drive

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/satyammall/stockledger/internal/config"
	"github.com/satyammall/stockledger/internal/domain/models"
)

// Client uploads batch attachments into a shared Drive folder.
type Client struct {
	service  *driveapi.Service
	folderID string
	logger   *zap.Logger
}

// NewClient builds a Drive API client using the provided configuration values.
func NewClient(ctx context.Context, cfg config.DriveConfig, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := driveapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(driveapi.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize drive client: %w", err)
	}

	return &Client{
		service:  service,
		folderID: cfg.FolderID,
		logger:   logger,
	}, nil
}

// Upload stores the attachment in the configured folder and returns a link
// readable by anyone who has it. Errors here are reported to the caller,
// which treats them as non-fatal to the submission batch.
func (c *Client) Upload(ctx context.Context, att models.Attachment) (string, error) {
	if len(att.Content) == 0 {
		return "", fmt.Errorf("attachment %q is empty", att.Name)
	}

	meta := &driveapi.File{
		Name:    att.Name,
		Parents: []string{c.folderID},
	}

	var mediaOpts []googleapi.MediaOption
	if att.MIMEType != "" {
		mediaOpts = append(mediaOpts, googleapi.ContentType(att.MIMEType))
	}

	created, err := c.service.Files.Create(meta).
		Media(bytes.NewReader(att.Content), mediaOpts...).
		Fields("id", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload attachment %q: %w", att.Name, err)
	}

	perm := &driveapi.Permission{Type: "anyone", Role: "reader"}
	if _, err := c.service.Permissions.Create(created.Id, perm).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("share attachment %q: %w", att.Name, err)
	}

	c.logger.Debug("attachment uploaded", zap.String("name", att.Name), zap.String("file_id", created.Id))
	return created.WebViewLink, nil
}
