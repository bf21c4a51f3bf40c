// Package ytdlp wraps the yt-dlp command-line tool for audio extraction.
package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"time"
)

var commandContext = exec.CommandContext

// DefaultTimeout bounds one acquisition attempt wall-clock.
const DefaultTimeout = 180 * time.Second

// ErrToolNotFound reports that the yt-dlp binary is missing from PATH.
var ErrToolNotFound = errors.New("yt-dlp not found in PATH")

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithTimeout overrides the per-acquisition timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger injects the logger used for cleanup diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// CLI invokes yt-dlp to extract an audio segment to a known path.
type CLI struct {
	binary  string
	timeout time.Duration
	logger  *log.Logger
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{
		binary:  "yt-dlp",
		timeout: DefaultTimeout,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// FetchAudio downloads the audio of one video to outputPath as MP3,
// restricted to the given section when one is set (yt-dlp
// --download-sections syntax, e.g. "*30-90" or "*30-inf").
//
// The tool's exit status is not trusted blindly: exit 0 without the expected
// file on disk is still a failure. Any failure, including timeout, removes a
// partially written file best-effort.
func (c *CLI) FetchAudio(ctx context.Context, videoURL, outputPath, section string) error {
	if videoURL == "" {
		return errors.New("video URL required")
	}
	if outputPath == "" {
		return errors.New("output path required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{"-x", "--audio-format", "mp3", "--no-warnings", "--no-playlist", "-o", outputPath}
	if section != "" {
		args = append(args, "--download-sections", section)
	}
	args = append(args, videoURL)

	cmd := commandContext(ctx, c.binary, args...)
	err := cmd.Run()

	if err != nil {
		c.removePartial(outputPath)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("yt-dlp timed out after %s: %w", c.timeout, err)
		}
		if errors.Is(err, exec.ErrNotFound) {
			return ErrToolNotFound
		}
		return fmt.Errorf("yt-dlp failed: %w", err)
	}

	if _, statErr := os.Stat(outputPath); statErr != nil {
		return fmt.Errorf("yt-dlp reported success but output file is missing: %s", outputPath)
	}

	return nil
}

// removePartial deletes a partially written output file. Failure to delete is
// logged only, never escalated.
func (c *CLI) removePartial(outputPath string) {
	if _, err := os.Stat(outputPath); err != nil {
		return
	}
	if err := os.Remove(outputPath); err != nil {
		c.logger.Printf("Could not remove partial file %s: %v", outputPath, err)
	}
}
