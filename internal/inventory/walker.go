package inventory

import (
	"context"

	"go.uber.org/zap"

	"github.com/virulent-hate/google-drive-index/internal/drive"
	"github.com/virulent-hate/google-drive-index/internal/logging"
)

// Lister returns the immediate children of a folder.
type Lister interface {
	ListChildren(ctx context.Context, folderID string) ([]drive.Item, error)
}

// Walker flattens the tree below a root folder into records, depth-first
// in listing order.
type Walker struct {
	lister Lister
	mode   Mode
}

// NewWalker builds a Walker over the given lister.
func NewWalker(lister Lister, mode Mode) *Walker {
	return &Walker{lister: lister, mode: mode}
}

// pending is one not-yet-emitted item on the work stack.
type pending struct {
	item       drive.Item
	parentPath string
}

// Walk returns one record per item reachable below the root, excluding the
// root itself. A folder's children appear in listing order, each subfolder's
// subtree fully emitted before its later siblings. Any listing error aborts
// the walk with nothing returned.
//
// The traversal drains an explicit LIFO stack instead of recursing, so tree
// depth never grows the call stack. Children are pushed in reverse listing
// order, which reproduces the recursive depth-first emit order exactly.
func (w *Walker) Walk(ctx context.Context, rootID, rootLabel string) ([]Record, error) {
	children, err := w.lister.ListChildren(ctx, rootID)
	if err != nil {
		return nil, err
	}

	var stack []pending
	push := func(items []drive.Item, parentPath string) {
		for i := len(items) - 1; i >= 0; i-- {
			stack = append(stack, pending{item: items[i], parentPath: parentPath})
		}
	}
	push(children, rootLabel)

	var records []Record
	seen := make(map[string]string) // path -> item ID

	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rec := newRecord(next.item, next.parentPath, w.mode)
		if prevID, ok := seen[rec.Path]; ok {
			// Siblings with the same name collide; both rows are kept and
			// consumers disambiguate by ID.
			logging.Warn("path collision between sibling items",
				zap.String("path", rec.Path),
				zap.String("id", rec.ID),
				zap.String("collidesWith", prevID))
		} else {
			seen[rec.Path] = rec.ID
		}
		records = append(records, rec)

		if rec.IsFolder {
			sub, err := w.lister.ListChildren(ctx, next.item.ID)
			if err != nil {
				return nil, err
			}
			logging.Debug("listed folder",
				zap.String("path", rec.Path),
				zap.Int("children", len(sub)))
			push(sub, rec.Path)
		}
	}

	return records, nil
}
