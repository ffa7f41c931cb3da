package ranktable

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/lox/handrank/poker"
)

// Table file layout, little-endian:
//
//	magic   [8]byte "HRANKTB1"
//	count   uint32
//	records count × { cards [5]uint8 ascending; type uint8; score uint32 }
const (
	fileMagic  = "HRANKTB1"
	headerSize = len(fileMagic) + 4
	recordSize = poker.HandSize + 1 + 4
)

// WriteTo encodes the table in its binary file format.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64

	header := make([]byte, headerSize)
	copy(header, fileMagic)
	binary.LittleEndian.PutUint32(header[len(fileMagic):], uint32(len(t.records)))
	n, err := bw.Write(header)
	written += int64(n)
	if err != nil {
		return written, err
	}

	var buf [recordSize]byte
	for _, r := range t.records {
		idx := r.Hand.Indices()
		copy(buf[:poker.HandSize], idx[:])
		buf[poker.HandSize] = byte(r.Type)
		binary.LittleEndian.PutUint32(buf[poker.HandSize+1:], uint32(r.Score))
		n, err := bw.Write(buf[:])
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, bw.Flush()
}

// ReadTable decodes a table file and verifies it. Any malformed or
// inconsistent input yields an error wrapping ErrCorruptTable.
func ReadTable(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, corrupt("read header: %v", err)
	}
	if string(header[:len(fileMagic)]) != fileMagic {
		return nil, corrupt("bad magic %q", header[:len(fileMagic)])
	}
	count := binary.LittleEndian.Uint32(header[len(fileMagic):])
	if count != TotalHands {
		return nil, corrupt("record count %d, want %d", count, TotalHands)
	}

	records := make([]Record, count)
	var buf [recordSize]byte
	for i := range records {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return nil, corrupt("record %d: %v", i, err)
		}
		rec, err := decodeRecord(buf)
		if err != nil {
			return nil, corrupt("record %d: %v", i, err)
		}
		records[i] = rec
	}
	if _, err := br.ReadByte(); !errors.Is(err, io.EOF) {
		return nil, corrupt("trailing data after %d records", count)
	}

	t := &Table{records: records, categories: statsFromRecords(records)}
	if err := t.Verify(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeRecord(buf [recordSize]byte) (Record, error) {
	var h poker.Hand
	for i := range poker.HandSize {
		c := poker.Card(buf[i])
		if !c.Valid() {
			return Record{}, fmt.Errorf("card index %d out of range", buf[i])
		}
		if i > 0 && buf[i] <= buf[i-1] {
			return Record{}, fmt.Errorf("card indices not strictly ascending")
		}
		h = h.Add(c)
	}
	ht := poker.HandType(buf[poker.HandSize])
	if !ht.Valid() {
		return Record{}, fmt.Errorf("unknown hand type %d", ht)
	}
	score := Score(binary.LittleEndian.Uint32(buf[poker.HandSize+1:]))
	if score == 0 || score > TotalHands {
		return Record{}, fmt.Errorf("score %d out of range", score)
	}
	return Record{Hand: h, Type: ht, Score: score}, nil
}
