// Package codec implements the fixed-length wire encodings §6 of the spec
// fixes: scalars, points, and (index, value) shares as
// u32-LE index ∥ canonical-bytes. Built on go.dedis.ch/fixbuf the same way
// the teacher's own dependency graph does for other kyber fixed-length
// records.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"go.dedis.ch/fixbuf"

	"go.dedis.ch/tbls/v2/curve"
)

// EncodeScalarShare writes u32-LE index ∥ scalar-bytes.
func EncodeScalarShare(index int, v curve.Scalar) ([]byte, error) {
	vb, err := v.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("codec: marshaling scalar: %w", err)
	}
	return encodeIndexed(index, vb)
}

// DecodeScalarShare parses a buffer produced by EncodeScalarShare into a
// party index and a scalar, using zero as a template for the correct
// field.
func DecodeScalarShare(zero curve.Scalar, buf []byte) (int, curve.Scalar, error) {
	if len(buf) < 4 {
		return 0, nil, fmt.Errorf("codec: share encoding too short")
	}
	index := int(binary.LittleEndian.Uint32(buf[:4]))
	v := zero.Clone()
	if err := v.UnmarshalBinary(buf[4:]); err != nil {
		return 0, nil, fmt.Errorf("codec: decoding share value: %w", err)
	}
	return index, v, nil
}

// EncodePublicPoly writes u32-LE degree ∥ t compressed points.
func EncodePublicPoly(commits []curve.Point) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := fixbuf.Write(buf, binary.LittleEndian, uint32(len(commits))); err != nil {
		return nil, fmt.Errorf("codec: writing degree: %w", err)
	}
	for i, c := range commits {
		b, err := c.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("codec: marshaling commit %d: %w", i, err)
		}
		if _, err := buf.Write(b); err != nil {
			return nil, fmt.Errorf("codec: writing commit %d: %w", i, err)
		}
	}
	return buf.Bytes(), nil
}

// DecodePublicPoly parses a buffer produced by EncodePublicPoly, using
// zero as a template for the point type and pointLen as its encoded
// length.
func DecodePublicPoly(zero curve.Point, pointLen int, buf []byte) ([]curve.Point, error) {
	r := bytes.NewReader(buf)
	var degree uint32
	if err := fixbuf.Read(r, binary.LittleEndian, &degree); err != nil {
		return nil, fmt.Errorf("codec: reading degree: %w", err)
	}
	commits := make([]curve.Point, degree)
	for i := range commits {
		raw := make([]byte, pointLen)
		if _, err := r.Read(raw); err != nil {
			return nil, fmt.Errorf("codec: reading commit %d: %w", i, err)
		}
		p := zero.Clone()
		if err := p.UnmarshalBinary(raw); err != nil {
			return nil, fmt.Errorf("codec: decoding commit %d: %w", i, err)
		}
		commits[i] = p
	}
	return commits, nil
}

func encodeIndexed(index int, payload []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := fixbuf.Write(buf, binary.LittleEndian, uint32(index)); err != nil {
		return nil, fmt.Errorf("codec: writing index: %w", err)
	}
	if _, err := buf.Write(payload); err != nil {
		return nil, fmt.Errorf("codec: writing payload: %w", err)
	}
	return buf.Bytes(), nil
}
