// Package inventory flattens a Drive folder tree into path-annotated
// records.
package inventory

import (
	"math"

	"github.com/virulent-hate/google-drive-index/internal/drive"
)

// Mode selects how a record's share link is produced.
type Mode int

const (
	// ModeDirectory constructs a drivesdk share link from the item ID.
	ModeDirectory Mode = iota
	// ModeIndex passes through the webViewLink reported by Drive.
	ModeIndex
)

// Record is one exported row: a Drive item plus its position in the
// logical tree. Records are never mutated once built.
type Record struct {
	ID           string
	Name         string
	Path         string
	Link         string
	MimeType     string
	IsFolder     bool
	SizeKB       float64
	Owner        string
	CreatedDate  string
	ModifiedDate string
}

// ShareLink builds the drivesdk share URL for an item.
func ShareLink(id string, isFolder bool) string {
	if isFolder {
		return "https://drive.google.com/drive/folders/" + id + "?usp=drivesdk"
	}
	return "https://drive.google.com/file/d/" + id + "?usp=drivesdk"
}

// SizeKB converts a byte size to kilobytes rounded to two decimals.
// Folders and items without a reported size are 0.
func SizeKB(sizeBytes int64, isFolder bool) float64 {
	if isFolder || sizeBytes <= 0 {
		return 0
	}
	return math.Round(float64(sizeBytes)/1024*100) / 100
}

// BuildChildPath constructs a child path from parent + name.
func BuildChildPath(parentPath, name string) string {
	if parentPath == "" {
		return name
	}
	return parentPath + "/" + name
}

func newRecord(item drive.Item, parentPath string, mode Mode) Record {
	isFolder := item.IsFolder()

	link := item.WebViewLink
	if mode == ModeDirectory {
		link = ShareLink(item.ID, isFolder)
	}

	return Record{
		ID:           item.ID,
		Name:         item.Name,
		Path:         BuildChildPath(parentPath, item.Name),
		Link:         link,
		MimeType:     item.MimeType,
		IsFolder:     isFolder,
		SizeKB:       SizeKB(item.Size, isFolder),
		Owner:        item.Owner,
		CreatedDate:  item.CreatedTime,
		ModifiedDate: item.ModifiedTime,
	}
}
