package archive

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/upcheck/internal/logging"
)

// Rotator periodically compresses the live access log into a timestamped
// gzip archive next to it and truncates the live file. When the uploader is
// enabled, each archive is also shipped to object storage under a
// date-based key.
type Rotator struct {
	path     string
	interval time.Duration
	uploader *Uploader
	logger   logging.Logger
}

func NewRotator(path string, interval time.Duration, uploader *Uploader, logger logging.Logger) *Rotator {
	return &Rotator{path: path, interval: interval, uploader: uploader, logger: logger}
}

// Run rotates on every interval tick until ctx is cancelled. Rotation
// failures are logged and do not stop the loop.
func (r *Rotator) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Rotate(ctx); err != nil {
				r.logger.Warn(ctx, "log rotation failed", "error", err)
			}
		}
	}
}

// Rotate compresses the current log contents, truncates the live file and
// best-effort uploads the archive, removing the local copy on success. An
// empty live file is skipped.
func (r *Rotator) Rotate(ctx context.Context) error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("reading log: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	name := fmt.Sprintf("%s-%s.gz", filepath.Base(r.path), time.Now().UTC().Format("2006-01-02T15-04-05"))
	archivePath := filepath.Join(filepath.Dir(r.path), name)

	f, err := os.OpenFile(archivePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o640)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("compressing log: %w", err)
	}
	if err := gz.Close(); err != nil {
		f.Close()
		return fmt.Errorf("flushing archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	if err := os.Truncate(r.path, 0); err != nil {
		return fmt.Errorf("truncating log: %w", err)
	}

	if r.uploader != nil && r.uploader.Enabled() {
		key := r.storageKey(name)
		af, err := os.Open(archivePath)
		if err != nil {
			return fmt.Errorf("opening archive: %w", err)
		}
		if err := r.uploader.Upload(ctx, key, af); err != nil {
			// the local archive is kept when the upload fails
			af.Close()
			r.logger.Warn(ctx, "archive upload failed", "key", key, "error", err)
			return nil
		}
		af.Close()
		if err := os.Remove(archivePath); err != nil {
			r.logger.Warn(ctx, "removing uploaded archive", "path", archivePath, "error", err)
		}
	}
	return nil
}

func (r *Rotator) storageKey(name string) string {
	d := time.Now().UTC()
	return fmt.Sprintf("logs/%d/%d/%d/%s", d.Year(), d.Month(), d.Day(), name)
}
