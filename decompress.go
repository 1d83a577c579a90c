package tcgaexpr

import (
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// ErrUnsupportedCompression is returned for Unix compress (.Z) streams, which
// are recognized but cannot be read.
var ErrUnsupportedCompression = errors.New("unix compress (.Z) files are not supported; recompress with gzip")

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeLZW
	DataTypeBZip2
)

func (dt DataType) String() string {
	switch dt {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeLZW:
		return "compress (.Z)"
	case DataTypeBZip2:
		return "bzip2"
	}
	return "invalid"
}

// Byte code signatures from https://stackoverflow.com/a/19127748/199475
var byteCodeSigs = []struct {
	dt  DataType
	sig []byte
}{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeLZW, []byte{0x1f, 0x9d}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
}

// DetectDataType matches the leading bytes of a stream against the known
// compression signatures. Fewer than 6 bytes is fine; signatures longer than
// the header simply don't match.
func DetectDataType(header []byte) DataType {
Outer:
	for _, known := range byteCodeSigs {
		if len(header) < len(known.sig) {
			continue
		}
		for position := range known.sig {
			if header[position] != known.sig[position] {
				continue Outer
			}
		}
		return known.dt
	}

	return DataTypeNoCompression
}

// MaybeDecompress peeks at r and, if it starts with a known compression
// signature, wraps it in the matching decompressor. Closing the result does
// not close r.
func MaybeDecompress(r io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(6)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}

	switch DetectDataType(header) {
	case DataTypeGzip:
		return gzip.NewReader(br)
	case DataTypeZip:
		// Only the first entry of an archive is read.
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return &readCloserFaker{zr}, nil
	case DataTypeBZip2:
		return &readCloserFaker{bzip2.NewReader(br)}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, err
		}
		return &readCloserFaker{reader}, nil
	case DataTypeLZW:
		return nil, ErrUnsupportedCompression
	}

	return &readCloserFaker{br}, nil
}

// readCloserFaker "upgrades" readers that don't need to be closed
type readCloserFaker struct {
	io.Reader
}

func (c *readCloserFaker) Close() error {
	return nil
}
