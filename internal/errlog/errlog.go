package errlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
)

const DefaultPath = "error_log.txt"

// Uploader sends the collected error log somewhere else.
type Uploader interface {
	Upload(ctx context.Context, content []byte) error
}

type Logger struct {
	path     string
	uploader Uploader
	console  io.Writer
	log      lgr.L
}

func New(path string, uploader Uploader, console io.Writer, log lgr.L) *Logger {
	if path == "" {
		path = DefaultPath
	}
	return &Logger{
		path:     path,
		uploader: uploader,
		console:  console,
		log:      log,
	}
}

// LogError appends one record to the log file. Failures to write are only
// reported through the diagnostic logger.
func (l *Logger) LogError(message string, cause error) {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		l.log.Logf("[WARN] could not open error log %s: %v", l.path, err)
		return
	}
	defer f.Close()

	fileLog := lgr.New(lgr.Out(f), lgr.Err(f), lgr.Msec)
	if cause == nil {
		fileLog.Logf("[ERROR] %s", message)
		return
	}
	fileLog.Logf("[ERROR] %s: %v", message, cause)
}

// UploadLogs sends the log file through the uploader and empties it. Problems
// are reported on the console only.
func (l *Logger) UploadLogs(ctx context.Context) {
	content, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.log.Logf("[DEBUG] no error log at %s, nothing to upload", l.path)
			return
		}
		l.reportFailure(err)
		return
	}
	if len(content) == 0 {
		l.log.Logf("[DEBUG] error log %s is empty, nothing to upload", l.path)
		return
	}

	if err := l.uploader.Upload(ctx, content); err != nil {
		l.reportFailure(err)
		return
	}

	if err := os.Truncate(l.path, 0); err != nil {
		l.reportFailure(fmt.Errorf("could not clear %s: %w", l.path, err))
		return
	}
	fmt.Fprintln(l.console, "Logs uploaded to server successfully.")
}

func (l *Logger) reportFailure(err error) {
	color.New(color.FgRed).Fprintf(l.console, "Failed to upload logs: %v\n", err)
}

// SimulatedUploader pretends to send logs; there is no log collector yet.
type SimulatedUploader struct {
	Log lgr.L
}

func (u SimulatedUploader) Upload(ctx context.Context, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	u.Log.Logf("[INFO] uploaded %d bytes of error log", len(content))
	return nil
}
