package rag

import (
	"context"
	"log/slog"

	"github.com/docanchor/docanchor/internal/filestore"
	"github.com/docanchor/docanchor/internal/index"
)

// SingleDocumentPolicy keeps at most one active document in the system by
// sweeping all existing documents (index entries and stored originals)
// before each new upload. This is caller-level policy: the upload handler
// applies it, the pipeline itself never does.
type SingleDocumentPolicy struct {
	index index.Index
	files *filestore.Store
	log   *slog.Logger
}

func NewSingleDocumentPolicy(idx index.Index, files *filestore.Store, log *slog.Logger) *SingleDocumentPolicy {
	return &SingleDocumentPolicy{index: idx, files: files, log: log}
}

// Sweep deletes every currently indexed document and its stored original.
// Failures are logged and swallowed: a stale leftover must not block a new
// upload.
func (p *SingleDocumentPolicy) Sweep(ctx context.Context) {
	ids, err := p.index.ListDocumentIDs(ctx)
	if err != nil {
		p.log.Warn("single-document sweep: listing failed", "error", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	p.log.Info("single-document sweep", "existing", len(ids))
	for _, id := range ids {
		if _, err := p.index.DeleteWhere(ctx, id); err != nil {
			p.log.Warn("single-document sweep: delete failed", "doc_id", id, "error", err)
			continue
		}
		if err := p.files.Remove(id); err != nil {
			p.log.Warn("single-document sweep: file removal failed", "doc_id", id, "error", err)
		}
	}
}
