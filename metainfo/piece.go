// Copyright 2020 xgfone
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metainfo

import (
	"crypto/sha1"
	"io"

	"github.com/cockroachdb/errors"
)

// Piece represents a torrent file piece.
type Piece struct {
	info  Info
	index int
}

// Piece returns the index-th piece.
func (info Info) Piece(index int) Piece {
	if index < 0 || index >= len(info.Pieces) {
		panic(errors.Newf("piece index %d out of range [0, %d)", index, len(info.Pieces)))
	}
	return Piece{info: info, index: index}
}

// Index returns the index of the current piece.
func (p Piece) Index() int { return p.index }

// Offset returns the offset that the current piece is in all the files.
func (p Piece) Offset() int64 { return int64(p.index) * p.info.PieceLength }

// Hash returns the hash representation of the piece.
func (p Piece) Hash() (h Hash) { return p.info.Pieces[p.index] }

// Length returns the length of the current piece.
func (p Piece) Length() int64 {
	if p.index == p.info.CountPieces()-1 {
		return p.info.TotalLength() - int64(p.index)*p.info.PieceLength
	}
	return p.info.PieceLength
}

// Verify reports whether data is the content of the piece.
func (p Piece) Verify(data []byte) bool {
	return int64(len(data)) == p.Length() && sha1.Sum(data) == p.Hash()
}

// GeneratePieces generates the piece hashes of the data read from r.
// The last piece may be shorter than pieceLength.
func GeneratePieces(r io.Reader, pieceLength int64) (hs Hashes, err error) {
	if pieceLength <= 0 {
		return nil, errors.New("piece length must be a positive integer")
	}

	buf := make([]byte, 32*1024)
	h := sha1.New()
	for {
		h.Reset()
		written, err := copyNBuffer(h, r, pieceLength, buf)
		if written > 0 {
			hs = append(hs, NewHash(h.Sum(nil)))
		}

		if err == io.EOF {
			return hs, nil
		} else if err != nil {
			return nil, err
		}
	}
}

// copyNBuffer is the same as io.CopyN, but uses buf as the buffer.
func copyNBuffer(dst io.Writer, src io.Reader, n int64, buf []byte) (written int64, err error) {
	written, err = io.CopyBuffer(dst, io.LimitReader(src, n), buf)
	if written == n {
		return n, nil
	} else if written < n && err == nil {
		// src stopped early; must have been EOF.
		err = io.EOF
	}
	return
}
