package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/docanchor/docanchor/internal/chunker"
	"github.com/docanchor/docanchor/internal/extract"
	"github.com/docanchor/docanchor/internal/filestore"
	"github.com/docanchor/docanchor/internal/index"
)

// Worker processes a single document job.
type Worker struct {
	index   index.Index
	files   *filestore.Store
	chunker *chunker.Chunker
	log     *slog.Logger
}

func NewWorker(idx index.Index, files *filestore.Store, ch *chunker.Chunker, log *slog.Logger) *Worker {
	return &Worker{
		index:   idx,
		files:   files,
		chunker: ch,
		log:     log,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "document_id", job.DocumentID)

	data := job.FileData()
	job.SetContentHash(ContentHashHex(data))

	// Phase 1: Save the original file.
	job.SetStatus(StatusSaving, "saving upload")
	path, err := w.files.Save(job.DocumentID, filepath.Ext(job.Filename), data)
	if err != nil {
		log.Error("save failed", "error", err)
		job.AddError(fmt.Sprintf("save: %s", err))
		job.SetStatus(StatusFailed, "saving upload")
		return
	}
	job.SetFileData(nil)

	// Phase 2: Extract text segments.
	job.SetStatus(StatusExtracting, "extracting text")
	segments, meta, err := extract.Extract(path)
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting text")
		return
	}
	job.SetExtracted(meta.PageCount, len(segments))
	log.Info("extracted document", "segments", len(segments), "pages", meta.PageCount)

	// Phase 3: Chunk.
	job.SetStatus(StatusChunking, "splitting into chunks")
	chunks := w.chunker.ChunkSegments(segments, job.DocumentID, job.Filename)
	job.SetTotalChunks(len(chunks))
	log.Info("chunked document", "chunks", len(chunks))

	if len(chunks) == 0 {
		log.Warn("no chunks produced")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "splitting into chunks")
		return
	}

	// Phase 4: Embed and index, with retries for transient failures.
	job.SetStatus(StatusIndexing, "indexing chunks")
	var ids []string
	var lastErr error
	for attempt := range MaxRetries {
		ids, lastErr = w.index.Upsert(ctx, chunks)
		if lastErr == nil || !IsRetryable(ctx, lastErr) {
			break
		}
		log.Warn("retryable indexing error", "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			lastErr = ctx.Err()
		}
		if ctx.Err() != nil {
			break
		}
	}
	if lastErr != nil {
		log.Error("indexing failed", "error", lastErr)
		job.AddError(fmt.Sprintf("index: %s", lastErr))
		job.SetStatus(StatusFailed, "indexing chunks")
		return
	}
	job.SetChunksIndexed(len(ids))

	log.Info("ingest complete", "chunks_indexed", len(ids))
	job.SetStatus(StatusCompleted, "done")
}
