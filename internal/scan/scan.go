package scan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sync"
	"time"

	"rstr/internal/domain"
	"rstr/internal/eventbus"
)

// progressInterval throttles ScanProgress events so the UI spinner
// animates without flooding the bus on fast filesystems.
const progressInterval = 50 * time.Millisecond

// ScanService searches for matching lines in the filesystem
type ScanService interface {
	StartScan(ctx context.Context, root string) error
	StopScan()
}

// scanService is the concrete implementation
type scanService struct {
	bus        eventbus.EventBus
	pattern    *regexp.Regexp
	mu         sync.Mutex
	isScanning bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewScanService creates a new scan service for the given compiled pattern
func NewScanService(bus eventbus.EventBus, pattern *regexp.Regexp) ScanService {
	return &scanService{
		bus:     bus,
		pattern: pattern,
	}
}

// StartScan starts scanning for matches under root in the background
func (s *scanService) StartScan(ctx context.Context, root string) error {
	s.mu.Lock()
	if s.isScanning {
		s.mu.Unlock()
		return fmt.Errorf("scan already in progress")
	}
	s.isScanning = true

	scanCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.mu.Unlock()

	s.bus.Publish(eventbus.ScanStartedEvent{Root: root, Pattern: s.pattern.String()})

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		filesScanned := 0
		matchesFound := 0
		lastProgress := time.Now()

		err := walkFiles(scanCtx, root, func(path string) {
			filesScanned++

			if time.Since(lastProgress) >= progressInterval {
				lastProgress = time.Now()
				s.bus.Publish(eventbus.ScanProgressEvent{
					CurrentPath:  path,
					FilesScanned: filesScanned,
				})
			}

			if err := matchFile(path, s.pattern, func(m domain.Match) {
				matchesFound++
				s.bus.Publish(eventbus.MatchFoundEvent{Match: m})
			}); err != nil {
				// Unreadable file, skip and keep scanning
				log.Printf("Skipping %s: %v", path, err)
			}
		})

		canceled := err != nil && errors.Is(err, context.Canceled)
		if err != nil && !canceled {
			log.Printf("Error scanning %s: %v", root, err)
			s.bus.Publish(eventbus.ErrorEvent{
				Message: fmt.Sprintf("Failed to scan %s", root),
				Err:     err,
			})
		}

		s.mu.Lock()
		s.isScanning = false
		s.cancelFunc = nil
		s.mu.Unlock()

		s.bus.Publish(eventbus.ScanCompletedEvent{
			FilesScanned: filesScanned,
			MatchesFound: matchesFound,
			Canceled:     canceled,
		})
	}()

	return nil
}

// StopScan cancels any ongoing scan and waits for the worker to return
func (s *scanService) StopScan() {
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	s.wg.Wait()
}
