package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestNewFileLock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock := NewFileLock(lockPath)
	if lock == nil {
		t.Fatal("NewFileLock should not return nil")
	}

	if lock.Path() != lockPath {
		t.Errorf("Expected lock path %s, got %s", lockPath, lock.Path())
	}
}

func TestForFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "log")

	lock := ForFile(target)
	if lock.Path() != target+".lock" {
		t.Errorf("Expected lock path %s.lock, got %s", target, lock.Path())
	}
}

func TestLockUnlock(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	lock := NewFileLock(lockPath)
	defer lock.Close()

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}

	if _, err := os.Stat(lockPath); err != nil {
		t.Errorf("Expected lock file to exist: %v", err)
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestWithLockReturnsCallbackError(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "test.lock"))
	defer lock.Close()

	sentinel := errors.New("boom")
	err := lock.WithLock(func() error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Fatalf("Expected callback error, got %v", err)
	}

	// Lock must have been released
	done := make(chan error, 1)
	go func() {
		done <- lock.WithLock(func() error { return nil })
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Second WithLock failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Lock was not released after callback error")
	}
}

func TestConcurrentLocking(t *testing.T) {
	tmpDir := t.TempDir()
	lockPath := filepath.Join(tmpDir, "test.lock")

	const goroutines = 5
	const iterations = 10

	// Use a file to track counter to test file-based locking
	counterPath := filepath.Join(tmpDir, "counter.txt")
	os.WriteFile(counterPath, []byte("0"), 0644)

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()

			for j := 0; j < iterations; j++ {
				lock := NewFileLock(lockPath)

				err := lock.WithLock(func() error {
					data, err := os.ReadFile(counterPath)
					if err != nil {
						return err
					}

					var counter int
					fmt.Sscanf(string(data), "%d", &counter)
					time.Sleep(1 * time.Millisecond) // Simulate work
					counter++

					return os.WriteFile(counterPath, []byte(fmt.Sprintf("%d", counter)), 0644)
				})
				lock.Close()
				if err != nil {
					t.Errorf("Locked update failed: %v", err)
					return
				}
			}
		}()
	}

	wg.Wait()

	data, err := os.ReadFile(counterPath)
	if err != nil {
		t.Fatalf("Failed to read final counter: %v", err)
	}

	var finalCounter int
	fmt.Sscanf(string(data), "%d", &finalCounter)

	expected := goroutines * iterations
	if finalCounter != expected {
		t.Errorf("Expected counter %d, got %d (race condition detected)", expected, finalCounter)
	}
}
