// Package upload pushes generated artifacts (firmware images, diagram and
// flashing config files) to the storage server and verifies their integrity.
//
// The core synchronization logic never talks to the network; it hands bytes
// and a destination hint to an [Uploader] and receives a content digest
// acknowledgment back. [Client] is the HTTP implementation of that contract.
package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

// Ack is the storage server's acknowledgment of a completed upload.
type Ack struct {
	SHA256 string // hex digest of the stored bytes
	Bytes  int64  // number of bytes stored
}

// HashReader wraps a reader and computes the SHA-256 digest of everything
// read through it. The digest is compared against the server's acknowledgment
// after the transfer completes.
type HashReader struct {
	r    io.Reader
	h    hash.Hash
	read int64
}

// NewHashReader wraps r.
func NewHashReader(r io.Reader) *HashReader {
	return &HashReader{r: r, h: sha256.New()}
}

// Read implements io.Reader, feeding every chunk into the digest.
func (hr *HashReader) Read(p []byte) (int, error) {
	n, err := hr.r.Read(p)
	if n > 0 {
		hr.h.Write(p[:n])
		hr.read += int64(n)
	}
	return n, err
}

// Sum returns the hex digest of the bytes read so far.
func (hr *HashReader) Sum() string {
	return hex.EncodeToString(hr.h.Sum(nil))
}

// BytesRead returns the number of bytes read so far.
func (hr *HashReader) BytesRead() int64 {
	return hr.read
}
