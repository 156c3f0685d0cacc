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
	"bytes"
	"crypto/sha1"
	"encoding/base32"
	"encoding/hex"

	"github.com/cockroachdb/errors"
	"github.com/xgfone/bencode/bencode"
)

var zeroHash Hash

// HashSize is the size of the InfoHash.
const HashSize = 20

// Hash is the 20-byte SHA1 hash used for info and pieces.
type Hash [HashSize]byte

// NewHash converts the 20-bytes to Hash.
func NewHash(b []byte) (h Hash) {
	copy(h[:], b[:HashSize])
	return
}

// NewHashFromHexString returns a new Hash from a hex string.
//
// It panics if s is not a valid hex hash.
func NewHashFromHexString(s string) (h Hash) {
	if err := h.FromHexString(s); err != nil {
		panic(err)
	}
	return
}

// NewHashFromBytes returns the SHA1 hash of b.
func NewHashFromBytes(b []byte) Hash { return sha1.Sum(b) }

// NewHashFromValue returns the SHA1 hash of the canonical encoding of v.
func NewHashFromValue(v bencode.Value) (h Hash, err error) {
	b, err := bencode.Encode(v)
	if err == nil {
		h = NewHashFromBytes(b)
	}
	return
}

// Bytes returns the byte slice type.
func (h Hash) Bytes() []byte { return h[:] }

// String is equal to HexString.
func (h Hash) String() string { return h.HexString() }

// HexString returns the hex string format.
func (h Hash) HexString() string { return hex.EncodeToString(h[:]) }

// IsZero reports whether the whole hash is zero.
func (h Hash) IsZero() bool { return h == zeroHash }

// Compare returns 0 if h == o, -1 if h < o, or +1 if h > o.
func (h Hash) Compare(o Hash) int { return bytes.Compare(h[:], o[:]) }

// Value returns the hash as a 20-byte bencoded string.
func (h Hash) Value() bencode.ByteString { return bencode.Bytes(h[:]) }

// FromString resets the hash from a string, which may be the raw 20 bytes,
// the 40-character hex form or the 32-character base32 form.
func (h *Hash) FromString(s string) (err error) {
	switch len(s) {
	case HashSize:
		copy(h[:], s)
	case 2 * HashSize:
		err = h.FromHexString(s)
	case 32:
		var bs []byte
		if bs, err = base32.StdEncoding.DecodeString(s); err == nil {
			copy(h[:], bs)
		}
	default:
		err = errors.Newf("hash string has bad length: %d", len(s))
	}
	return
}

// FromHexString resets the hash from the hex string.
func (h *Hash) FromHexString(s string) (err error) {
	if len(s) != 2*HashSize {
		return errors.Newf("hash hex string has bad length: %d", len(s))
	}

	var tmp Hash
	if _, err = hex.Decode(tmp[:], []byte(s)); err == nil {
		*h = tmp
	}
	return
}

/// >>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>>

// Hashes is a set of Hashes.
type Hashes []Hash

// Contains reports whether hs contains h.
func (hs Hashes) Contains(h Hash) bool {
	for _, _h := range hs {
		if h == _h {
			return true
		}
	}
	return false
}

// Value returns the concatenation of all the hashes as a bencoded string,
// which is the form of the "pieces" field.
func (hs Hashes) Value() bencode.ByteString {
	buf := make([]byte, 0, HashSize*len(hs))
	for _, h := range hs {
		buf = append(buf, h[:]...)
	}
	return bencode.ByteString(buf)
}

func parseHashes(s bencode.ByteString) (Hashes, error) {
	_len := len(s)
	if _len%HashSize != 0 {
		return nil, errors.Newf("invalid hashes length '%d'", _len)
	}

	hashes := make(Hashes, 0, _len/HashSize)
	for i := 0; i < _len; i += HashSize {
		var h Hash
		copy(h[:], s[i:i+HashSize])
		hashes = append(hashes, h)
	}
	return hashes, nil
}
