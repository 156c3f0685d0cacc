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

// Package metainfo reads and writes the .torrent metainfo on top of the
// bencoded value tree.
package metainfo

import (
	"io"
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xgfone/bencode/bencode"
)

// AnnounceList is a list of the announces.
type AnnounceList [][]string

// Unique returns the list of the unique announces.
func (al AnnounceList) Unique() (announces []string) {
	announces = make([]string, 0, len(al))
	for _, tier := range al {
		for _, v := range tier {
			if v != "" && !slices.Contains(announces, v) {
				announces = append(announces, v)
			}
		}
	}
	return
}

func parseAnnounceList(v bencode.Value) (al AnnounceList, err error) {
	tiers, ok := v.(bencode.List)
	if !ok {
		return nil, fieldError("announce-list", "expect a list, but got %s", kindOf(v))
	}

	al = make(AnnounceList, len(tiers))
	for i, tier := range tiers {
		if al[i], err = toStrings(tier, "announce-list"); err != nil {
			return nil, err
		}
	}
	return
}

func (al AnnounceList) value() bencode.List {
	tiers := make(bencode.List, len(al))
	for i, tier := range al {
		tiers[i] = fromStrings(tier)
	}
	return tiers
}

// URLList represents a list of the url.
//
// BEP 19
type URLList []string

// FullURL returns the index-th full url.
//
// For the single-file case, name is the "name" of "info".
// For the multi-file case, name is the path "name/path/file"
// from "info" and "files".
//
// See http://bittorrent.org/beps/bep_0019.html
func (us URLList) FullURL(index int, name string) (url string) {
	if url = us[index]; strings.HasSuffix(url, "/") {
		url += name
	}
	return
}

// "url-list" is either a single string or a list of strings.
func parseURLList(v bencode.Value) (URLList, error) {
	switch vs := v.(type) {
	case bencode.ByteString:
		if len(vs) == 0 {
			return nil, nil
		}
		return URLList{string(vs)}, nil
	case bencode.List:
		return toStrings(vs, "url-list")
	default:
		return nil, fieldError("url-list", "expect a string or list, but got %s", kindOf(v))
	}
}

// MetaInfo represents the .torrent file.
type MetaInfo struct {
	// InfoBytes is the exact bencoded "info" dictionary, as it appears in
	// the torrent. The info hash is computed over these bytes.
	InfoBytes    []byte       // BEP 3
	Announce     string       // BEP 3
	AnnounceList AnnounceList // BEP 12
	URLList      URLList      // BEP 19

	// Where's this specified?
	// Mentioned at https://wiki.theory.org/index.php/BitTorrentSpecification.
	// All of them are optional.

	// CreationDate is the creation time of the torrent, in standard UNIX epoch
	// format (seconds since 1-Jan-1970 00:00:00 UTC).
	CreationDate int64
	// Comment is the free-form textual comments of the author.
	Comment string
	// CreatedBy is name and version of the program used to create the .torrent.
	CreatedBy string
	// Encoding is the string encoding format used to generate the pieces part
	// of the info dictionary in the .torrent metafile.
	Encoding string
}

// New returns a new MetaInfo with the canonically encoded info.
func New(info Info, announces ...string) (mi MetaInfo, err error) {
	if mi.InfoBytes, err = bencode.Encode(info.Value()); err != nil {
		return
	}

	switch len(announces) {
	case 0:
	case 1:
		mi.Announce = announces[0]
	default:
		mi.Announce = announces[0]
		mi.AnnounceList = AnnounceList{announces}
	}
	return
}

// Parse parses a MetaInfo from the content of a .torrent file,
// which must be exactly one bencoded dictionary.
func Parse(data []byte) (mi MetaInfo, err error) {
	v, err := bencode.DecodeAll(data)
	if err != nil {
		err = errors.Wrap(err, "metainfo: invalid torrent")
		return
	}

	d, err := asDict(v, "torrent")
	if err != nil {
		return
	}

	if _, ok := d["info"].(bencode.Dictionary); !ok {
		err = fieldError("info", "expect a dictionary, but got %s", kindOf(d["info"]))
		return
	}

	raw, err := bencode.RawField(data, "info")
	if err != nil {
		err = errors.Wrap(err, "metainfo: invalid torrent")
		return
	}
	mi.InfoBytes = append([]byte(nil), raw...)

	if mi.Announce, err = getString(d, "announce", false); err != nil {
		return
	}
	if v, ok := d["announce-list"]; ok {
		if mi.AnnounceList, err = parseAnnounceList(v); err != nil {
			return
		}
	}
	if v, ok := d["url-list"]; ok {
		if mi.URLList, err = parseURLList(v); err != nil {
			return
		}
	}

	if mi.CreationDate, err = getInt(d, "creation date", false); err != nil {
		return
	}
	if mi.Comment, err = getString(d, "comment", false); err != nil {
		return
	}
	if mi.CreatedBy, err = getString(d, "created by", false); err != nil {
		return
	}
	mi.Encoding, err = getString(d, "encoding", false)
	return
}

// Load loads a MetaInfo from an io.Reader.
func Load(r io.Reader) (mi MetaInfo, err error) {
	data, err := io.ReadAll(r)
	if err == nil {
		mi, err = Parse(data)
	}
	return
}

// LoadFromFile loads a MetaInfo from a file.
func LoadFromFile(filename string) (mi MetaInfo, err error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return
	}

	if mi, err = Parse(data); err != nil {
		err = errors.Wrapf(err, "load '%s'", filename)
	}
	return
}

// Announces returns all the announces.
func (mi MetaInfo) Announces() AnnounceList {
	if len(mi.AnnounceList) > 0 {
		return mi.AnnounceList
	} else if mi.Announce != "" {
		return [][]string{{mi.Announce}}
	}
	return nil
}

// Magnet creates a Magnet from a MetaInfo.
//
// If displayName or infoHash is empty, it will be got from the info part.
// When InfoBytes cannot be parsed, the display name is left empty.
func (mi MetaInfo) Magnet(displayName string, infoHash Hash) (m Magnet) {
	m.Trackers = append(m.Trackers, mi.Announces().Unique()...)

	if displayName == "" {
		if info, err := mi.Info(); err == nil {
			displayName = info.Name
		}
	}

	if infoHash.IsZero() {
		infoHash = mi.InfoHash()
	}

	m.DisplayName = displayName
	m.InfoHash = infoHash
	return
}

// InfoHash returns the hash of the info.
func (mi MetaInfo) InfoHash() Hash {
	return NewHashFromBytes(mi.InfoBytes)
}

// Info parses the InfoBytes to the Info.
func (mi MetaInfo) Info() (info Info, err error) {
	v, err := bencode.DecodeAll(mi.InfoBytes)
	if err != nil {
		err = errors.Wrap(err, "metainfo: invalid info")
		return
	}
	return ParseInfo(v)
}

// Value returns the bencoded dictionary of the metainfo.
//
// Notice: the info dictionary is decoded from InfoBytes, so it is encoded
// canonically, which changes the info hash if InfoBytes was not canonical.
func (mi MetaInfo) Value() (bencode.Dictionary, error) {
	info, err := bencode.DecodeAll(mi.InfoBytes)
	if err != nil {
		return nil, errors.Wrap(err, "metainfo: invalid info")
	}

	d := bencode.Dictionary{"info": info}
	if mi.Announce != "" {
		d["announce"] = bencode.Str(mi.Announce)
	}
	if len(mi.AnnounceList) > 0 {
		d["announce-list"] = mi.AnnounceList.value()
	}
	if len(mi.URLList) > 0 {
		d["url-list"] = fromStrings(mi.URLList)
	}
	if mi.CreationDate != 0 {
		d["creation date"] = bencode.Int(mi.CreationDate)
	}
	if mi.Comment != "" {
		d["comment"] = bencode.Str(mi.Comment)
	}
	if mi.CreatedBy != "" {
		d["created by"] = bencode.Str(mi.CreatedBy)
	}
	if mi.Encoding != "" {
		d["encoding"] = bencode.Str(mi.Encoding)
	}
	return d, nil
}

// Encode returns the bencoded metainfo.
func (mi MetaInfo) Encode() ([]byte, error) {
	d, err := mi.Value()
	if err != nil {
		return nil, err
	}
	return bencode.Encode(d)
}

// Write encodes the metainfo to w.
func (mi MetaInfo) Write(w io.Writer) error {
	b, err := mi.Encode()
	if err == nil {
		_, err = w.Write(b)
	}
	return err
}
