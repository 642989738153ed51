// Package hasher computes checksums of exported files.
package hasher

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// Default is the algorithm used when none is given.
const Default = "sha256"

var algorithms = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha512": sha512.New,
}

// Algorithms lists the supported algorithm names.
var Algorithms = []string{"md5", "sha1", "sha256", "sha512"}

func Supported(algo string) bool {
	_, ok := algorithms[strings.ToLower(algo)]
	return ok
}

func newHash(algo string) (hash.Hash, error) {
	ctor, ok := algorithms[strings.ToLower(algo)]
	if !ok {
		return nil, fmt.Errorf("unsupported hash algorithm %q (supported: %s)", algo, strings.Join(Algorithms, ", "))
	}
	return ctor(), nil
}

// Bytes returns the hex checksum of data.
func Bytes(data []byte, algo string) (string, error) {
	h, err := newHash(algo)
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// File returns the hex checksum of the file at path.
func File(path, algo string) (string, error) {
	h, err := newHash(algo)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
