package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mazrean/hashfiles/internal/adapter/digest"
	"github.com/mazrean/hashfiles/internal/domain"
	"github.com/mazrean/hashfiles/internal/port"
)

// DefaultStreamingThreshold is the file size up to which a file is read and hashed
// in one shot. Larger files are streamed through a buffer of the same size.
const DefaultStreamingThreshold = 32 * 1024

// FileHashService is an implementation of HashService bound to one algorithm and
// one output encoding.
type FileHashService struct {
	algorithm domain.HashAlgorithm
	encoding  domain.OutputEncoding
	threshold int
}

// FileHashOption configures a FileHashService.
type FileHashOption func(*FileHashService)

// WithStreamingThreshold overrides DefaultStreamingThreshold.
func WithStreamingThreshold(n int) FileHashOption {
	return func(s *FileHashService) {
		if n > 0 {
			s.threshold = n
		}
	}
}

// NewFileHashService creates a FileHashService.
// The encoding must already be resolved and must satisfy the CRC32/U32 pairing rule.
func NewFileHashService(alg domain.HashAlgorithm, enc domain.OutputEncoding, opts ...FileHashOption) (*FileHashService, error) {
	if !alg.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAlgorithm, alg)
	}
	if enc == domain.EncodingUnspecified {
		return nil, domain.ErrUnresolvedEncoding
	}
	if err := domain.ValidatePairing(alg, enc); err != nil {
		return nil, err
	}

	s := &FileHashService{
		algorithm: alg,
		encoding:  enc,
		threshold: DefaultStreamingThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Hash hashes the file at path with alg and renders it with enc.
// It validates the pairing rule before touching the file.
func Hash(path string, alg domain.HashAlgorithm, enc domain.OutputEncoding) (domain.EncodedHash, error) {
	s, err := NewFileHashService(alg, enc)
	if err != nil {
		return domain.EncodedHash{}, err
	}
	return s.Hash(path)
}

// Hash computes the encoded digest of the file at path.
func (s *FileHashService) Hash(path string) (domain.EncodedHash, error) {
	if err := domain.ValidatePairing(s.algorithm, s.encoding); err != nil {
		return domain.EncodedHash{}, err
	}

	d, err := digest.New(s.algorithm)
	if err != nil {
		return domain.EncodedHash{}, err
	}

	raw, err := digestFile(path, d, s.threshold)
	if err != nil {
		return domain.EncodedHash{}, err
	}

	encoded, err := s.encoding.Encode(raw)
	if err != nil {
		return domain.EncodedHash{}, &domain.FileError{Path: path, Op: "encode", Err: err}
	}
	return encoded, nil
}

// HashFile implements port.HashService.
func (s *FileHashService) HashFile(ctx context.Context, path string) (*port.HashResult, error) {
	encoded, err := s.Hash(path)
	if err != nil {
		return nil, err
	}
	return &port.HashResult{
		Algorithm: s.algorithm.String(),
		Value:     encoded.String(),
	}, nil
}

// HashAlgorithm returns the canonical name of the bound algorithm.
func (s *FileHashService) HashAlgorithm() string {
	return s.algorithm.String()
}

// digestFile feeds the content of path into d and returns the finalized digest.
// Files up to threshold bytes are read whole; larger files are streamed through a
// single reusable buffer of threshold bytes.
func digestFile(path string, d digest.Digest, threshold int) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &domain.FileError{Path: path, Op: "stat", Err: err}
	}

	if info.Size() <= int64(threshold) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &domain.FileError{Path: path, Op: "read", Err: err}
		}
		d.Update(data)
		return d.Finalize(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.FileError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	buf := make([]byte, threshold)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			d.Update(buf[:n])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.FileError{Path: path, Op: "read", Err: err}
		}
	}

	return d.Finalize(), nil
}
