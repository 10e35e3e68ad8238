// Package drive wraps the Google Drive v3 API with paged child listing and
// rate-limit-aware retries.
package drive

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	"github.com/virulent-hate/google-drive-index/internal/logging"
	"github.com/virulent-hate/google-drive-index/internal/retry"
)

// MimeTypeFolder is the MIME type Drive reserves for folders.
const MimeTypeFolder = "application/vnd.google-apps.folder"

const (
	pageSize    = 1000
	baseFields  = "nextPageToken, files(id, name, mimeType, size, owners, createdTime, modifiedTime)"
	indexFields = "nextPageToken, files(id, name, mimeType, size, owners, webViewLink, createdTime, modifiedTime)"
)

// Item is the metadata for one file or folder as reported by Drive.
type Item struct {
	ID           string
	Name         string
	MimeType     string
	Size         int64
	Owner        string
	WebViewLink  string
	CreatedTime  string
	ModifiedTime string
}

// IsFolder reports whether the item is a folder.
func (it Item) IsFolder() bool {
	return it.MimeType == MimeTypeFolder
}

// filesAPI is the slice of the Drive API the client depends on.
type filesAPI interface {
	fetchPage(ctx context.Context, folderID, driveID, pageToken string) (*driveapi.FileList, error)
	getItem(ctx context.Context, itemID string) (*driveapi.File, error)
}

// Config holds client configuration.
type Config struct {
	MaxRetries      int  // Attempts per page request (default 7)
	IncludeWebLinks bool // Request webViewLink in listing fields (index mode)
}

// Client is an authenticated Drive session, constructed once per run and
// reused for every call.
type Client struct {
	api      filesAPI
	retryCfg retry.Config
	driveID  string
}

// New builds a Client on an authenticated Drive service.
func New(svc *driveapi.Service, cfg Config) *Client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = retry.DefaultConfig().MaxAttempts
	}

	fields := baseFields
	if cfg.IncludeWebLinks {
		fields = indexFields
	}

	return &Client{
		api: &filesService{files: svc.Files, fields: fields},
		retryCfg: retry.Config{
			MaxAttempts: cfg.MaxRetries,
			MaxWait:     64 * time.Second,
			OnRetry: func(attempt int, wait time.Duration) {
				logging.Info("rate limited, sleeping before retry",
					zap.Int("attempt", attempt),
					zap.Duration("sleep", wait))
			},
		},
	}
}

// ResolveSharedDrive looks the root item up once and pins the session to
// its shared drive, when it has one. Roots in a personal space leave the
// session unpinned.
func (c *Client) ResolveSharedDrive(ctx context.Context, rootID string) error {
	item, err := c.api.getItem(ctx, rootID)
	if err != nil {
		return fmt.Errorf("resolve shared drive for %s: %w", rootID, err)
	}
	c.driveID = item.DriveId
	if c.driveID != "" {
		logging.Debug("root resides in a shared drive",
			zap.String("name", item.Name),
			zap.String("driveId", c.driveID))
	}
	return nil
}

// ListChildren returns every non-trashed direct child of the folder,
// paging until the listing is exhausted. Rate-limited page requests are
// retried with full-jitter backoff; any other Drive error aborts
// immediately.
func (c *Client) ListChildren(ctx context.Context, folderID string) ([]Item, error) {
	var items []Item
	pageToken := ""

	for {
		page, err := retry.DoWithResult(ctx, c.retryCfg, func() (*driveapi.FileList, error) {
			result, err := c.api.fetchPage(ctx, folderID, c.driveID, pageToken)
			if err != nil {
				if IsRateLimited(err) {
					return nil, retry.Retryable(err)
				}
				return nil, err
			}
			return result, nil
		})
		if err != nil {
			return nil, fmt.Errorf("list children of folder %s: %w", folderID, err)
		}

		for _, f := range page.Files {
			items = append(items, itemFromFile(f))
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return items, nil
}

func itemFromFile(f *driveapi.File) Item {
	item := Item{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		WebViewLink:  f.WebViewLink,
		CreatedTime:  f.CreatedTime,
		ModifiedTime: f.ModifiedTime,
	}
	if len(f.Owners) > 0 && f.Owners[0] != nil {
		item.Owner = f.Owners[0].DisplayName
	}
	return item
}

// filesService is the production filesAPI on a real Drive service.
type filesService struct {
	files  *driveapi.FilesService
	fields string
}

func (s *filesService) fetchPage(ctx context.Context, folderID, driveID, pageToken string) (*driveapi.FileList, error) {
	call := s.files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
		PageSize(pageSize).
		Fields(googleapi.Field(s.fields)).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	if driveID != "" {
		call = call.DriveId(driveID).Corpora("drive")
	}
	return call.Context(ctx).Do()
}

func (s *filesService) getItem(ctx context.Context, itemID string) (*driveapi.File, error) {
	return s.files.Get(itemID).
		Fields("id, name, driveId").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
}
