package transcoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/dwightbot/dwight-web/dwight/metrics"
	"github.com/dwightbot/dwight-web/internal/domain"
	"github.com/dwightbot/dwight-web/internal/domain/sounds"
)

const (
	// tempExt marks an artifact that is still being written
	tempExt = ".temp"
	// artifactExt is the extension the bot looks for
	artifactExt = ".opus"

	DefaultTimeout       = 45 * time.Second
	DefaultMaxConcurrent = 2
	DefaultBitrate       = "64k"

	waitDelay      = 2 * time.Second
	maxStderrBytes = 4 << 10
)

type Config struct {
	FFmpegPath    string
	Folder        string
	Timeout       time.Duration
	MaxConcurrent int64
	Bitrate       string
}

// ArtifactStore receives a copy of every finished artifact.
type ArtifactStore interface {
	Upload(ctx context.Context, key, path string) error
}

// FFmpeg encodes uploaded mp3 clips into the opus files the bot plays.
type FFmpeg struct {
	cfg    Config
	slots  *semaphore.Weighted
	mirror ArtifactStore
}

var _ sounds.Transcoder = &FFmpeg{}

func New(cfg Config, mirror ArtifactStore) *FFmpeg {
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = "ffmpeg"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxConcurrent <= 0 {
		cfg.MaxConcurrent = DefaultMaxConcurrent
	}
	if cfg.Bitrate == "" {
		cfg.Bitrate = DefaultBitrate
	}
	return &FFmpeg{
		cfg:    cfg,
		slots:  semaphore.NewWeighted(cfg.MaxConcurrent),
		mirror: mirror,
	}
}

// ArtifactPath returns where the playable file for soundID lives.
func (f *FFmpeg) ArtifactPath(soundID string) string {
	return filepath.Join(f.cfg.Folder, soundID+artifactExt)
}

// Transcode feeds data to ffmpeg on stdin and atomically publishes the result at
// ArtifactPath. On any failure no artifact is left behind and the child is reaped.
func (f *FFmpeg) Transcode(ctx context.Context, soundID string, data []byte) error {
	if err := f.slots.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: waiting for a transcode slot: %w", domain.ErrTranscodeFailed, err)
	}
	defer f.slots.Release(1)

	metrics.TranscodesInflight.Inc()
	defer metrics.TranscodesInflight.Dec()

	start := time.Now()
	err := f.transcode(ctx, soundID, data)
	took := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = "failed"
	}
	metrics.TranscodeDuration.WithLabelValues(outcome).Observe(took.Seconds())

	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTranscodeFailed, err)
	}

	slog.Debug("Sound transcoded",
		slog.String("type", "transcode"),
		slog.String("sound_id", soundID),
		slog.Int("input_bytes", len(data)),
		slog.Duration("took", took),
	)
	return nil
}

func (f *FFmpeg) transcode(ctx context.Context, soundID string, data []byte) error {
	if err := os.MkdirAll(f.cfg.Folder, 0o755); err != nil {
		return fmt.Errorf("failed to create sounds folder: %w", err)
	}

	finalPath := f.ArtifactPath(soundID)
	tempPath := finalPath + tempExt

	if err := f.run(ctx, data, tempPath); err != nil {
		os.Remove(tempPath)
		return err
	}

	info, err := os.Stat(tempPath)
	if err != nil {
		return fmt.Errorf("ffmpeg produced no output: %w", err)
	}
	if info.Size() == 0 {
		os.Remove(tempPath)
		return errors.New("ffmpeg produced an empty file")
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temporary artifact: %w", err)
	}

	if f.mirror != nil {
		if err := f.mirror.Upload(ctx, filepath.Base(finalPath), finalPath); err != nil {
			return fmt.Errorf("failed to mirror artifact: %w", err)
		}
	}
	return nil
}

// run executes ffmpeg bounded by the configured timeout. The context kills the child and
// WaitDelay bounds how long Wait blocks on pipes held open by orphaned grandchildren.
func (f *FFmpeg) run(ctx context.Context, data []byte, outputPath string) error {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.cfg.FFmpegPath, buildArgs(outputPath, f.cfg.Bitrate)...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stderr = &limitedBuffer{buf: &stderr, max: maxStderrBytes}
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg timed out after %s: %w", f.cfg.Timeout, ctx.Err())
		}
		return fmt.Errorf("ffmpeg failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

// buildArgs reads mp3 from stdin and writes opus to outputPath.
func buildArgs(outputPath, bitrate string) []string {
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "mp3",
		"-i", "pipe:0",
		"-c:a", "libopus",
		"-b:a", bitrate,
		"-vbr", "on",
		"-compression_level", "10",
		"-frame_duration", "60",
		"-f", "opus", // output name carries tempExt, so the muxer cannot be inferred
		"-y",
		outputPath,
	}
}

type limitedBuffer struct {
	buf *bytes.Buffer
	max int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if room := b.max - b.buf.Len(); room > 0 {
		if len(p) > room {
			b.buf.Write(p[:room])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}
