package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates an App with debug logging whose frames and logs are
// captured in separate buffers. Set WEASEL_TEST_LOGS=true to print the logs.
func SetupAppTest(t *testing.T, cfg *Config) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(out, logs, cfg)

	t.Cleanup(func() {
		if os.Getenv("WEASEL_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}

// WriteTrigramDict writes every three-letter lowercase word to a file in a
// temporary directory and returns its path. With length and min block both 3
// any sequence is a single dictionary word.
func WriteTrigramDict(t *testing.T) string {
	t.Helper()
	var b bytes.Buffer
	for x := 'a'; x <= 'z'; x++ {
		for y := 'a'; y <= 'z'; y++ {
			for z := 'a'; z <= 'z'; z++ {
				fmt.Fprintf(&b, "%c%c%c\n", x, y, z)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, b.Bytes(), 0o600); err != nil {
		t.Fatalf("failed to write dict: %v", err)
	}
	return path
}
