// Package driver orchestrates a whole-program check run: one checker per
// file, run concurrently, each owning its own AST arena, symbol table, and
// flow graph (spec.md §5's "independent files on worker threads"), with a
// content-addressed on-disk cache so an unchanged file skips re-checking.
package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"tschecker/internal/diag"
	"tschecker/internal/source"
)

// cacheSchemaVersion guards against decoding a payload from an older,
// incompatible CachedResult shape.
const cacheSchemaVersion uint16 = 1

// ContentHash identifies one version of one file's bound program, the key
// the disk cache is addressed by. Callers compute it (typically a SHA-256
// of the source text plus the compiler options that affect checking);
// internal/driver treats it as an opaque key.
type ContentHash [32]byte

// CachedDiagnostic is Diagnostic flattened to fields msgpack can round-trip
// without depending on diag.Diagnostic's internal layout remaining stable.
type CachedDiagnostic struct {
	Severity uint8
	Code     uint32
	Message  string
	FileID   uint32
	Start    uint32
	End      uint32
}

// CachedResult is what DiskCache persists per ContentHash: just the
// diagnostics a check run produced. Per-expression/per-symbol type maps are
// not cached — they're only useful within the process that produced them
// (hover, hand-off to a driver caller), so re-deriving them on a cache miss
// is cheap and keeps the on-disk payload small.
type CachedResult struct {
	Schema      uint16
	Diagnostics []CachedDiagnostic
}

func toCached(items []diag.Diagnostic) []CachedDiagnostic {
	out := make([]CachedDiagnostic, len(items))
	for i, d := range items {
		out[i] = CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint32(d.Code),
			Message:  d.Message,
			FileID:   uint32(d.Primary.File),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
	}
	return out
}

func fromCached(items []CachedDiagnostic) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(items))
	for i, d := range items {
		out[i] = diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary: source.Span{
				File:  source.FileID(d.FileID),
				Start: d.Start,
				End:   d.End,
			},
		}
	}
	return out
}

// DiskCache persists CachedResult payloads under a content-hash-named file,
// grounded on the teacher's dcache.go content-addressed module cache: one
// file per key, atomic write via temp-file-then-rename, msgpack encoding.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache opens (creating if needed) the on-disk cache directory for
// app under $XDG_CACHE_HOME (or ~/.cache). A nil *DiskCache is valid and
// behaves as an always-miss cache, so callers can run uncached by passing
// one in without a nil check at every call site.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "check-cache")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key ContentHash) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Get reads and decodes the payload for key, reporting false (no error) on
// a plain cache miss.
func (c *DiskCache) Get(key ContentHash) (CachedResult, bool, error) {
	if c == nil {
		return CachedResult{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CachedResult{}, false, nil
		}
		return CachedResult{}, false, err
	}
	defer f.Close()

	var out CachedResult
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return CachedResult{}, false, err
	}
	if out.Schema != cacheSchemaVersion {
		return CachedResult{}, false, nil
	}
	return out, true, nil
}

// Put atomically writes payload under key.
func (c *DiskCache) Put(key ContentHash, payload CachedResult) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = cacheSchemaVersion
	dest := c.pathFor(key)
	tmp, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := msgpack.NewEncoder(tmp).Encode(&payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
