package cache

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pierrec/lz4/v4"
)

// FileCache implements a file-based cache for CLI usage.
// Each entry is one file holding a small header (expiry, sizes) followed by
// the value, lz4 block-compressed when that makes it smaller.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

var entryMagic = [4]byte{'C', 'G', 'C', '1'}

const (
	entryHeaderSize = 4 + 8 + 4 + 1

	encodingRaw byte = 0
	encodingLZ4 byte = 1
)

// encodeEntry lays out an entry: magic, expiry (unix nanos, 0 = never),
// uncompressed length, encoding, payload.
func encodeEntry(data []byte, expiresAt time.Time) []byte {
	payload, enc := data, encodingRaw
	if len(data) > 0 {
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, dst, nil)
		if err == nil && n > 0 && n < len(data) {
			payload, enc = dst[:n], encodingLZ4
		}
	}

	var exp int64
	if !expiresAt.IsZero() {
		exp = expiresAt.UnixNano()
	}

	buf := make([]byte, entryHeaderSize, entryHeaderSize+len(payload))
	copy(buf, entryMagic[:])
	binary.LittleEndian.PutUint64(buf[4:], uint64(exp))
	binary.LittleEndian.PutUint32(buf[12:], uint32(len(data)))
	buf[16] = enc
	return append(buf, payload...)
}

func decodeEntry(buf []byte) (data []byte, expiresAt time.Time, err error) {
	if len(buf) < entryHeaderSize || !bytes.Equal(buf[:4], entryMagic[:]) {
		return nil, time.Time{}, fmt.Errorf("not a cache entry")
	}
	if exp := int64(binary.LittleEndian.Uint64(buf[4:])); exp != 0 {
		expiresAt = time.Unix(0, exp)
	}
	size := int(binary.LittleEndian.Uint32(buf[12:]))
	payload := buf[entryHeaderSize:]

	switch buf[16] {
	case encodingRaw:
		if len(payload) != size {
			return nil, time.Time{}, fmt.Errorf("entry size %d, want %d", len(payload), size)
		}
		return payload, expiresAt, nil
	case encodingLZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("lz4 decompress: %w", err)
		}
		if n != size {
			return nil, time.Time{}, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", n, size)
		}
		return out, expiresAt, nil
	}
	return nil, time.Time{}, fmt.Errorf("unknown entry encoding %d", buf[16])
}

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	data, expiresAt, err := decodeEntry(buf)
	if err != nil {
		// Invalid cache entry - treat as miss
		_ = os.Remove(path)
		return nil, false, nil
	}

	if !expiresAt.IsZero() && time.Now().After(expiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return data, true, nil
}

// Set stores a value in the cache.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	// Readers never see a partial entry.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(encodeEntry(data, expiresAt)); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every entry file and the emptied subdirectories.
func (c *FileCache) Clear(ctx context.Context) (int, error) {
	count := 0
	var dirs []string
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == c.dir {
			return nil
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		if os.Remove(path) == nil {
			count++
		}
		return nil
	})
	for i := len(dirs) - 1; i >= 0; i-- {
		_ = os.Remove(dirs[i])
	}
	return count, err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// path converts a cache key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	// Use first 2 chars as subdirectory for distribution
	subdir := hash[:2]
	filename := hash[2:] + ".lz4"
	return filepath.Join(c.dir, subdir, filename)
}

// Ensure FileCache implements Cache.
var (
	_ Cache   = (*FileCache)(nil)
	_ Clearer = (*FileCache)(nil)
)
