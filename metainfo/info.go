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
	"github.com/cockroachdb/errors"
	"github.com/xgfone/bencode/bencode"
)

// Info is the file information.
type Info struct {
	// Name is the name of the file in the single file case.
	// Or, it is the name of the directory in the muliple file case.
	Name string // BEP 3

	// PieceLength is the number of bytes in each piece, which is usually
	// a power of 2.
	PieceLength int64 // BEP 3

	// Pieces is the concatenation of all 20-byte SHA1 hash values,
	// one per piece (byte string, i.e. not urlencoded).
	Pieces Hashes // BEP 3

	// Length is the length of the file in bytes in the single file case.
	//
	// It's mutually exclusive with Files.
	Length int64 // BEP 3

	// Files is the list of all the files in the multi-file case.
	//
	// For the purposes of the other keys, the multi-file case is treated
	// as only having a single file by concatenating the files in the order
	// they appear in the files list.
	//
	// It's mutually exclusive with Length.
	Files []File // BEP 3
}

// ParseInfo parses the Info from the bencoded info dictionary.
func ParseInfo(v bencode.Value) (info Info, err error) {
	d, err := asDict(v, "info")
	if err != nil {
		return
	}

	if info.Name, err = getString(d, "name", true); err != nil {
		return
	}

	if info.PieceLength, err = getInt(d, "piece length", true); err != nil {
		return
	} else if info.PieceLength <= 0 {
		err = fieldError("piece length", "must be a positive integer, but got %d", info.PieceLength)
		return
	}

	pieces, ok := d["pieces"].(bencode.ByteString)
	if !ok {
		err = fieldError("pieces", "expect a string, but got %s", kindOf(d["pieces"]))
		return
	}
	if info.Pieces, err = parseHashes(pieces); err != nil {
		err = errors.Mark(errors.Wrap(err, "'pieces'"), ErrInvalidField)
		return
	}

	files, hasFiles := d["files"]
	_, hasLength := d["length"]
	switch {
	case hasFiles && hasLength:
		err = fieldError("length", "is mutually exclusive with 'files'")
	case hasLength:
		if info.Length, err = getInt(d, "length", true); err == nil && info.Length < 0 {
			err = fieldError("length", "negative file length %d", info.Length)
		}
	case hasFiles:
		info.Files, err = parseFiles(files)
	default:
		err = fieldError("length", "neither 'length' nor 'files' is present")
	}

	return
}

func parseFiles(v bencode.Value) ([]File, error) {
	l, ok := v.(bencode.List)
	if !ok {
		return nil, fieldError("files", "expect a list, but got %s", kindOf(v))
	} else if len(l) == 0 {
		return nil, fieldError("files", "empty")
	}

	files := make([]File, len(l))
	for i, e := range l {
		f, err := parseFile(e)
		if err != nil {
			return nil, errors.Wrapf(err, "file %d", i)
		}
		files[i] = f
	}
	return files, nil
}

// Value returns the bencoded info dictionary.
func (info Info) Value() bencode.Dictionary {
	d := bencode.Dictionary{
		"name":         bencode.Str(info.Name),
		"piece length": bencode.Int(info.PieceLength),
		"pieces":       info.Pieces.Value(),
	}

	if info.IsDir() {
		files := make(bencode.List, len(info.Files))
		for i, f := range info.Files {
			files[i] = f.Value()
		}
		d["files"] = files
	} else {
		d["length"] = bencode.Int(info.Length)
	}

	return d
}

// Hash returns the SHA1 hash of the canonical encoding of the info.
//
// It equals the info hash of a torrent whose info dictionary was encoded
// canonically.
func (info Info) Hash() Hash {
	b, _ := bencode.Encode(info.Value())
	return NewHashFromBytes(b)
}

// IsDir reports whether the name is a directory, that's, the file is not
// a single file.
func (info Info) IsDir() bool { return len(info.Files) != 0 }

// CountPieces returns the number of the pieces.
func (info Info) CountPieces() int { return len(info.Pieces) }

// TotalLength returns the total length of the torrent file.
func (info Info) TotalLength() (ret int64) {
	if info.IsDir() {
		for _, fi := range info.Files {
			ret += fi.Length
		}
	} else {
		ret = info.Length
	}
	return
}

// PieceOffset returns the total offset of the piece.
//
// offset is the offset relative to the beginning of the piece.
func (info Info) PieceOffset(index, offset uint32) int64 {
	return int64(index)*info.PieceLength + int64(offset)
}

// GetFileByOffset returns the file and its offset by the total offset.
//
// If fileOffset is eqaul to file.Length, it means to reach the end.
func (info Info) GetFileByOffset(offset int64) (file File, fileOffset int64) {
	if !info.IsDir() {
		if offset > info.Length {
			panic(errors.Newf("offset '%d' exceeds the maximum length '%d'",
				offset, info.Length))
		}
		return File{Length: info.Length, Paths: []string{info.Name}}, offset
	}

	fileOffset = offset
	for i, _len := 0, len(info.Files)-1; i <= _len; i++ {
		file = info.Files[i]
		if fileOffset < file.Length {
			return
		} else if fileOffset == file.Length && i == _len {
			return
		}
		fileOffset -= file.Length
	}

	panic(errors.Newf("offset '%d' exceeds the maximum length '%d'",
		offset, info.TotalLength()))
}

// AllFiles returns all the files.
//
// Notice: for the single file, the Path is nil.
func (info Info) AllFiles() []File {
	if info.IsDir() {
		return info.Files
	}
	return []File{{Length: info.Length}}
}
