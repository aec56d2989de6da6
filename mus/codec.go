// Package mus encodes corpus index artifacts with the mus binary format.
//
// An artifact is a magic header, a format version, a body holding the chunk
// records and the embedding matrix, and an xxhash64 checksum of the body.
package mus

import (
	"bytes"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/docqa"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Version is the artifact format version written by Marshal.
const Version byte = 1

var magic = []byte("DQIX")

const (
	headerSize   = 5 // magic + version
	checksumSize = 8
)

// Artifact is the persisted state of a corpus index: chunks and their
// embeddings, index-aligned.
type Artifact struct {
	Chunks     []docqa.Chunk
	Embeddings [][]float32
}

// Dimension returns the embedding dimension, zero for an empty artifact.
func (a *Artifact) Dimension() int {
	if len(a.Embeddings) == 0 {
		return 0
	}
	return len(a.Embeddings[0])
}

// Validate returns an error if chunks and embeddings are misaligned or the
// matrix is ragged.
func (a *Artifact) Validate() error {
	if len(a.Chunks) != len(a.Embeddings) {
		return docqa.Errorf(docqa.ECACHECORRUPT, "artifact has %d chunks but %d embeddings", len(a.Chunks), len(a.Embeddings))
	}
	dim := a.Dimension()
	for i, v := range a.Embeddings {
		if len(v) != dim {
			return docqa.Errorf(docqa.ECACHECORRUPT, "embedding %d has dimension %d, want %d", i, len(v), dim)
		}
	}
	return nil
}

// Marshal encodes an artifact.
func Marshal(a *Artifact) ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	body := make([]byte, bodySize(a))
	marshalBody(a, body)

	out := make([]byte, 0, headerSize+len(body)+checksumSize)
	out = append(out, magic...)
	out = append(out, Version)
	out = append(out, body...)

	sum := make([]byte, checksumSize)
	raw.Uint64.Marshal(xxhash.Sum64(body), sum)
	return append(out, sum...), nil
}

// Unmarshal decodes an artifact. Any structural problem is reported as
// ECACHECORRUPT.
func Unmarshal(data []byte) (*Artifact, error) {
	if len(data) < headerSize+checksumSize {
		return nil, docqa.Errorf(docqa.ECACHECORRUPT, "artifact truncated")
	}
	if !bytes.Equal(data[:len(magic)], magic) {
		return nil, docqa.Errorf(docqa.ECACHECORRUPT, "not an index artifact")
	}
	if v := data[len(magic)]; v != Version {
		return nil, docqa.Errorf(docqa.ECACHECORRUPT, "unsupported artifact version %d", v)
	}

	body := data[headerSize : len(data)-checksumSize]
	want, _, err := raw.Uint64.Unmarshal(data[len(data)-checksumSize:])
	if err != nil {
		return nil, docqa.WrapError(docqa.ECACHECORRUPT, err, "artifact checksum unreadable")
	}
	if xxhash.Sum64(body) != want {
		return nil, docqa.Errorf(docqa.ECACHECORRUPT, "artifact checksum mismatch")
	}

	a, err := unmarshalBody(body)
	if err != nil {
		return nil, docqa.WrapError(docqa.ECACHECORRUPT, err, "artifact body malformed")
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func bodySize(a *Artifact) int {
	n := varint.Uint64.Size(uint64(len(a.Chunks)))
	for _, c := range a.Chunks {
		n += ord.String.Size(c.DocID)
		n += varint.Uint64.Size(uint64(c.ParagraphID))
		n += ord.String.Size(c.Text)
	}
	n += varint.Uint64.Size(uint64(a.Dimension()))
	for _, v := range a.Embeddings {
		for _, x := range v {
			n += raw.Float32.Size(x)
		}
	}
	return n
}

func marshalBody(a *Artifact, bs []byte) {
	n := varint.Uint64.Marshal(uint64(len(a.Chunks)), bs)
	for _, c := range a.Chunks {
		n += ord.String.Marshal(c.DocID, bs[n:])
		n += varint.Uint64.Marshal(uint64(c.ParagraphID), bs[n:])
		n += ord.String.Marshal(c.Text, bs[n:])
	}
	n += varint.Uint64.Marshal(uint64(a.Dimension()), bs[n:])
	for _, v := range a.Embeddings {
		for _, x := range v {
			n += raw.Float32.Marshal(x, bs[n:])
		}
	}
}

func unmarshalBody(bs []byte) (*Artifact, error) {
	count, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return nil, err
	}
	// Every chunk needs at least three bytes, which bounds allocation.
	if count > uint64(len(bs)) {
		return nil, docqa.Errorf(docqa.ECACHECORRUPT, "chunk count %d exceeds artifact size", count)
	}

	a := &Artifact{Chunks: make([]docqa.Chunk, count)}
	for i := range a.Chunks {
		var m int
		var pid uint64
		if a.Chunks[i].DocID, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return nil, err
		}
		n += m
		if pid, m, err = varint.Uint64.Unmarshal(bs[n:]); err != nil {
			return nil, err
		}
		n += m
		if pid > math.MaxInt {
			return nil, docqa.Errorf(docqa.ECACHECORRUPT, "chunk %d has paragraph id %d out of range", i, pid)
		}
		a.Chunks[i].ParagraphID = int(pid)
		if a.Chunks[i].Text, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return nil, err
		}
		n += m
	}

	dim, m, err := varint.Uint64.Unmarshal(bs[n:])
	if err != nil {
		return nil, err
	}
	n += m
	if count > 0 && dim == 0 {
		return nil, docqa.Errorf(docqa.ECACHECORRUPT, "zero embedding dimension")
	}
	// Compare by division so a huge dimension cannot overflow the expected size.
	rest := uint64(len(bs) - n)
	if count == 0 && rest != 0 {
		return nil, docqa.Errorf(docqa.ECACHECORRUPT, "embedding matrix has %d bytes but no chunks", rest)
	}
	if count > 0 && (rest%(4*count) != 0 || dim != rest/4/count) {
		return nil, docqa.Errorf(docqa.ECACHECORRUPT, "embedding matrix is %d bytes, not %d rows of dimension %d", rest, count, dim)
	}

	a.Embeddings = make([][]float32, count)
	for i := range a.Embeddings {
		v := make([]float32, dim)
		for j := range v {
			if v[j], m, err = raw.Float32.Unmarshal(bs[n:]); err != nil {
				return nil, err
			}
			n += m
		}
		a.Embeddings[i] = v
	}
	return a, nil
}
