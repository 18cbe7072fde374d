// Package progress reports throughput while a pipeline run streams
// bytes through a codec, adapted from agcp's global ticker into an
// explicitly owned Tracker so a compress or decompress call can start
// and stop one without touching process-wide state.
package progress

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

// Tracker accumulates processed-byte counts and periodically prints a
// throughput line. The zero value is not usable; construct with New.
type Tracker struct {
	processed atomic.Uint64
	total     uint64
	done      chan struct{}
	quiet     bool
}

// New starts a Tracker against an expected total byte count. If total
// is zero the percentage figure is omitted from output. When
// quiet is true, no output is produced and only the byte counter is
// maintained.
func New(total uint64, quiet bool) *Tracker {
	t := &Tracker{total: total, done: make(chan struct{}), quiet: quiet}
	go t.run()
	return t
}

// AddBytes records n additional bytes processed.
func (t *Tracker) AddBytes(n uint64) {
	if n > 0 {
		t.processed.Add(n)
	}
}

// Stop halts the reporting goroutine and prints a final summary line.
func (t *Tracker) Stop() {
	close(t.done)
}

// Writer wraps w, reporting every successful write to the Tracker.
func (t *Tracker) Writer(w io.Writer) io.Writer {
	return &trackingWriter{w: w, t: t}
}

type trackingWriter struct {
	w io.Writer
	t *Tracker
}

func (tw *trackingWriter) Write(p []byte) (int, error) {
	n, err := tw.w.Write(p)
	if n > 0 {
		tw.t.AddBytes(uint64(n))
	}
	return n, err
}

func (t *Tracker) run() {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	start := time.Now()
	var prevBytes uint64
	var lastOutput time.Time

	for {
		select {
		case <-ticker.C:
			if t.quiet {
				continue
			}
			current := t.processed.Load()
			rate := (current - prevBytes) * 4
			prevBytes = current

			if time.Since(lastOutput) < time.Second && rate > 0 {
				continue
			}
			lastOutput = time.Now()

			if t.total > 0 {
				pct := float64(current) / float64(t.total) * 100
				fmt.Printf("Progress: %s of %s (%.1f%%) | %s\n",
					formatSize(current), formatSize(t.total), pct, formatRate(rate))
			} else {
				fmt.Printf("Progress: %s | %s\n", formatSize(current), formatRate(rate))
			}
		case <-t.done:
			if !t.quiet {
				elapsed := time.Since(start).Seconds()
				if elapsed < 0.001 {
					elapsed = 0.001
				}
				total := t.processed.Load()
				avg := uint64(float64(total) / elapsed)
				fmt.Printf("Completed %s in %.1fs (avg %s)\n", formatSize(total), elapsed, formatRate(avg))
			}
			return
		}
	}
}

func formatSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func formatRate(bytesPerSec uint64) string {
	return formatSize(bytesPerSec) + "/s"
}
