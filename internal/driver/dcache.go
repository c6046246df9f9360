package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"tschema/internal/diag"
	"tschema/internal/resolver"
	"tschema/internal/version"
)

// Current payload version - increment when the cache format changes
const cacheSchemaVersion uint16 = 1

// DiskCache stores finished schema documents keyed by a digest of every
// visited source file plus the option fingerprint. Opt-in, and bypassed
// whenever callbacks are set (closures cannot be fingerprinted).
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is the on-disk record.
type cachePayload struct {
	// Version for safe invalidation when the format changes
	Version uint16

	// Entry is the absolute entry path the document was built from.
	Entry string

	// Document is the encoded schema JSON.
	Document []byte
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location ($XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [sha256.Size]byte) string {
	return filepath.Join(c.dir, "docs", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a document to the cache atomically.
func (c *DiskCache) Put(key [sha256.Size]byte, entry string, document []byte) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&cachePayload{
		Version:  cacheSchemaVersion,
		Entry:    entry,
		Document: document,
	}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a cached document. Stale or mismatched payloads are treated
// as misses, never as errors.
func (c *DiskCache) Get(key [sha256.Size]byte) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Version != cacheSchemaVersion {
		return nil, false
	}
	return payload.Document, true
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "docs"))
}

// ConvertFileEncoded converts an entry file to encoded schema JSON,
// consulting the cache when one is given. Resolution always runs (the
// digest covers every transitively visited file); only emission and
// encoding are skipped on a hit.
func ConvertFileEncoded(entryPath string, opts Options, cache *DiskCache) ([]byte, *diag.Bag, error) {
	if cache == nil || opts.HasCallbacks() {
		res, err := ConvertFile(entryPath, opts)
		if err != nil {
			return nil, nil, err
		}
		data, err := res.Schema.Encode()
		return data, res.Bag, err
	}

	resolved, err := resolver.Resolve(entryPath, opts.resolverOptions())
	if err != nil {
		return nil, nil, err
	}
	key, keyErr := cacheKey(entryPath, opts, resolved)
	if keyErr == nil {
		if data, ok := cache.Get(key); ok {
			return data, resolved.Bag, nil
		}
	}

	s, err := emitOne(resolved.Decls, opts)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.Encode()
	if err != nil {
		return nil, nil, err
	}
	if keyErr == nil {
		// a failed write only costs the next run a rebuild
		_ = cache.Put(key, entryPath, data)
	}
	return data, resolved.Bag, nil
}

// cacheKey digests the option fingerprint, the tool version, and the hash
// of every visited file.
func cacheKey(entryPath string, opts Options, resolved *resolver.Result) ([sha256.Size]byte, error) {
	h := sha256.New()
	fmt.Fprintf(h, "tschema %s\n", version.Number)
	fmt.Fprintf(h, "entry %s\n", entryPath)

	fp, err := json.Marshal(OptionsFingerprint(opts))
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	h.Write(fp)

	for _, f := range resolved.Files {
		fmt.Fprintf(h, "%s %x\n", f.Path, f.Hash)
	}
	var key [sha256.Size]byte
	copy(key[:], h.Sum(nil))
	return key, nil
}

// OptionsFingerprint is the plain, serializable view of Options used for
// cache keys and the doctor report.
func OptionsFingerprint(o Options) map[string]any {
	fp := map[string]any{
		"includeSchema":           boolOr(o.IncludeSchema, true),
		"schemaVersion":           o.SchemaVersion,
		"strictObjects":           o.StrictObjects,
		"rootType":                o.RootType,
		"includeJSDoc":            boolOr(o.IncludeJSDoc, true),
		"followImports":           o.FollowImports.String(),
		"onDuplicateDeclarations": o.OnDuplicateDeclarations.String(),
		"baseDir":                 o.BaseDir,
	}
	if o.AdditionalProperties != nil {
		fp["additionalProperties"] = *o.AdditionalProperties
	}
	return fp
}
