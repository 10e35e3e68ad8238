package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virulent-hate/google-drive-index/internal/drive"
)

// fakeLister serves children from a fixed tree of folder IDs.
type fakeLister struct {
	children map[string][]drive.Item
	errs     map[string]error
	calls    []string
}

func (f *fakeLister) ListChildren(ctx context.Context, folderID string) ([]drive.Item, error) {
	f.calls = append(f.calls, folderID)
	if err := f.errs[folderID]; err != nil {
		return nil, err
	}
	return f.children[folderID], nil
}

func folder(id, name string) drive.Item {
	return drive.Item{ID: id, Name: name, MimeType: drive.MimeTypeFolder}
}

func file(id, name string, size int64) drive.Item {
	return drive.Item{ID: id, Name: name, MimeType: "text/plain", Size: size}
}

func TestWalk_EndToEnd(t *testing.T) {
	// Root R holds a.txt (500 KB) and folder B; B holds the empty c.txt.
	lister := &fakeLister{children: map[string][]drive.Item{
		"root-id": {file("a-id", "a.txt", 500000), folder("b-id", "B")},
		"b-id":    {file("c-id", "c.txt", 0)},
	}}

	records, err := NewWalker(lister, ModeDirectory).Walk(context.Background(), "root-id", "R")
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "a.txt", records[0].Name)
	assert.Equal(t, "R/a.txt", records[0].Path)
	assert.Equal(t, 488.28, records[0].SizeKB)
	assert.False(t, records[0].IsFolder)

	assert.Equal(t, "B", records[1].Name)
	assert.Equal(t, "R/B", records[1].Path)
	assert.Equal(t, float64(0), records[1].SizeKB)
	assert.True(t, records[1].IsFolder)

	assert.Equal(t, "c.txt", records[2].Name)
	assert.Equal(t, "R/B/c.txt", records[2].Path)
	assert.Equal(t, float64(0), records[2].SizeKB)
	assert.False(t, records[2].IsFolder)
}

func TestWalk_DepthFirstOrder(t *testing.T) {
	// Folder children interleave with files; each subtree must finish
	// before later siblings are emitted.
	lister := &fakeLister{children: map[string][]drive.Item{
		"root": {folder("d1", "one"), file("f1", "mid.txt", 10), folder("d2", "two")},
		"d1":   {folder("d1a", "deep"), file("f2", "a.txt", 10)},
		"d1a":  {file("f3", "deepest.txt", 10)},
		"d2":   {file("f4", "z.txt", 10)},
	}}

	records, err := NewWalker(lister, ModeDirectory).Walk(context.Background(), "root", "Root")
	require.NoError(t, err)

	var paths []string
	for _, r := range records {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{
		"Root/one",
		"Root/one/deep",
		"Root/one/deep/deepest.txt",
		"Root/one/a.txt",
		"Root/mid.txt",
		"Root/two",
		"Root/two/z.txt",
	}, paths)

	// Every folder is listed exactly once.
	assert.Equal(t, []string{"root", "d1", "d1a", "d2"}, lister.calls)
}

func TestWalk_RecordCount(t *testing.T) {
	lister := &fakeLister{children: map[string][]drive.Item{
		"root": {folder("d1", "d1"), folder("d2", "d2"), file("f0", "f0", 1)},
		"d1":   {file("f1", "f1", 1), file("f2", "f2", 1)},
		"d2":   {},
	}}

	records, err := NewWalker(lister, ModeIndex).Walk(context.Background(), "root", "Root")
	require.NoError(t, err)
	assert.Len(t, records, 5, "every file and folder below the root, root excluded")
}

func TestWalk_EmptyRoot(t *testing.T) {
	lister := &fakeLister{children: map[string][]drive.Item{}}

	records, err := NewWalker(lister, ModeIndex).Walk(context.Background(), "root", "Root")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWalk_ErrorAbortsWholeWalk(t *testing.T) {
	boom := errors.New("retries exceeded after 7 attempts")
	lister := &fakeLister{
		children: map[string][]drive.Item{
			"root": {file("f1", "ok.txt", 1), folder("bad", "bad"), file("f2", "never.txt", 1)},
		},
		errs: map[string]error{"bad": boom},
	}

	records, err := NewWalker(lister, ModeDirectory).Walk(context.Background(), "root", "Root")
	require.ErrorIs(t, err, boom)
	assert.Nil(t, records, "partial results are discarded")
}

func TestWalk_RootListingError(t *testing.T) {
	boom := errors.New("not found")
	lister := &fakeLister{errs: map[string]error{"root": boom}}

	records, err := NewWalker(lister, ModeDirectory).Walk(context.Background(), "root", "Root")
	require.ErrorIs(t, err, boom)
	assert.Nil(t, records)
}

func TestWalk_SiblingNameCollision(t *testing.T) {
	lister := &fakeLister{children: map[string][]drive.Item{
		"root": {file("id-1", "dup.txt", 1), file("id-2", "dup.txt", 2)},
	}}

	records, err := NewWalker(lister, ModeDirectory).Walk(context.Background(), "root", "Root")
	require.NoError(t, err)

	// Colliding names are kept as-is; rows stay distinguishable by ID.
	require.Len(t, records, 2)
	assert.Equal(t, records[0].Path, records[1].Path)
	assert.NotEqual(t, records[0].ID, records[1].ID)
}

func TestWalk_IndexModeLinkPassthrough(t *testing.T) {
	item := file("id-1", "doc.txt", 1)
	item.WebViewLink = "https://drive.google.com/file/d/id-1/view"
	lister := &fakeLister{children: map[string][]drive.Item{"root": {item}}}

	records, err := NewWalker(lister, ModeIndex).Walk(context.Background(), "root", "Root")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://drive.google.com/file/d/id-1/view", records[0].Link)
}
