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

// Package bencode implements the bencoding used by the BitTorrent metainfo
// and tracker protocols, converting between the value tree in this package
// and its canonical byte form.
//
// A value is one of four kinds: Integer, ByteString, List and Dictionary.
// Byte strings hold raw bytes, which need not be valid UTF-8; the Text
// helpers validate the conversion to and from text at the boundary.
//
// Decode parses exactly one value from the start of a buffer and ignores
// any bytes after it. Use DecodeAll when the whole buffer must be a single
// value, or a Decoder to walk several concatenated values.
//
// Encode always writes dictionary keys in byte-lexicographic order, so the
// same logical dictionary always produces the same bytes regardless of how
// it was built. That is what makes the output usable for hashing, such as
// the info hash of a torrent.
//
// Values must not be modified after construction. A tree built by Decode
// or by the constructors in this package may be read from several
// goroutines at once.
package bencode
