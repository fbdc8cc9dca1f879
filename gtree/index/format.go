// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package index

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ethereum/go-gene-orthology/gtree"
)

// On-disk layout (all integers uint32 little-endian, all strings raw bytes
// preceded by a uint32 length, never null-terminated):
//
//	Index             := LeafSection InternalSection DuplicationSection
//	LeafSection       := uint32 count, count x LeafRecord
//	InternalSection   := uint32 count, count x InternalRecord
//	DuplicationSection:= uint32 count, count x DuplicationRecord
//	LeafRecord        := uint32 type(=LEAF), uint32 label,
//	                     uint32 name_len, bytes[name_len] name, uint32 node_hash
//	InternalRecord    := uint32 type, uint32 min_label, uint32 max_label, uint32 node_hash
//	DuplicationRecord := uint32 type(=DUPLICATION), uint32 start, uint32 stop, uint32 node_hash
//
// Type codes match gtree.NodeType's iota order directly: SPECIATION=0,
// DUPLICATION=1, DUBIOUS=2, GENE_SPLIT=3, LEAF=4, OTHER=5. This wire layout
// is spec-mandated byte for byte, so it is written and read with
// encoding/binary directly rather than through a generic serialization
// library (see DESIGN.md).

const maxTypeCode = uint32(gtree.Other)

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeString(w io.Writer, s string) error {
	if err := writeU32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader, length uint32) (string, error) {
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// wrapReadErr maps a short/EOF read to ErrTruncatedInput and anything else
// to ErrIO, matching spec §7's failure-mode taxonomy for the loader.
func wrapReadErr(err error) error {
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %v", gtree.ErrTruncatedInput, err)
	}
	return fmt.Errorf("%w: %v", gtree.ErrIO, err)
}
