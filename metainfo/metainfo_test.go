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
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xgfone/bencode/bencode"
)

// The info dictionary is deliberately not in canonical key order.
const rawInfo = "d4:name4:test12:piece lengthi16e6:pieces20:aaaaaaaaaaaaaaaaaaaa6:lengthi10ee"

const rawTorrent = "d8:announce14:http://tracker" +
	"13:announce-listll14:http://tracker13:http://backupel14:http://trackeree" +
	"7:comment5:hello13:creation datei1600000000e" +
	"4:info" + rawInfo +
	"8:url-list17:http://webseed/a/e"

func TestParse(t *testing.T) {
	mi, err := Parse([]byte(rawTorrent))
	require.NoError(t, err)

	assert.Equal(t, "http://tracker", mi.Announce)
	assert.Equal(t, AnnounceList{{"http://tracker", "http://backup"}, {"http://tracker"}}, mi.AnnounceList)
	assert.Equal(t, []string{"http://tracker", "http://backup"}, mi.Announces().Unique())
	assert.Equal(t, URLList{"http://webseed/a/"}, mi.URLList)
	assert.Equal(t, "http://webseed/a/test", mi.URLList.FullURL(0, "test"))
	assert.Equal(t, int64(1600000000), mi.CreationDate)
	assert.Equal(t, "hello", mi.Comment)
	assert.Empty(t, mi.CreatedBy)

	// The info hash is computed over the original bytes, not the canonical form.
	require.Equal(t, rawInfo, string(mi.InfoBytes))
	require.Equal(t, Hash(sha1.Sum([]byte(rawInfo))), mi.InfoHash())

	info, err := mi.Info()
	require.NoError(t, err)
	assert.Equal(t, "test", info.Name)
	assert.Equal(t, int64(10), info.Length)
	assert.NotEqual(t, mi.InfoHash(), info.Hash())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		is    error
	}{
		{"malformed", "d4:infod", bencode.ErrInvalidFormat},
		{"trailing bytes", "d4:info" + rawInfo + "ex", bencode.ErrInvalidFormat},
		{"overflow", "d4:infoi99999999999999999999ee", bencode.ErrIntegerOverflow},
		{"not a dictionary", "le", ErrInvalidField},
		{"no info", "d8:announce1:xe", ErrInvalidField},
		{"info not a dictionary", "d4:info0:e", ErrInvalidField},
		{"announce not a string", "d8:announcei1e4:info" + rawInfo + "e", ErrInvalidField},
		{"bad announce-list", "d13:announce-listli1ee4:info" + rawInfo + "e", ErrInvalidField},
		{"bad url-list", "d4:info" + rawInfo + "8:url-listi1ee", ErrInvalidField},
		{"bad creation date", "d13:creation date1:x4:info" + rawInfo + "e", ErrInvalidField},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.input))
			require.True(t, errors.Is(err, test.is), "got %v", err)
		})
	}
}

func TestNewAndEncode(t *testing.T) {
	info := Info{
		Name:        "dir",
		PieceLength: 32,
		Pieces:      Hashes{NewHashFromBytes([]byte("piece"))},
		Files: []File{
			{Length: 20, Paths: []string{"a", "b"}},
			{Length: 12, Paths: []string{"c"}},
		},
	}

	mi, err := New(info, "http://a", "http://b")
	require.NoError(t, err)
	require.Equal(t, "http://a", mi.Announce)
	require.Equal(t, AnnounceList{{"http://a", "http://b"}}, mi.AnnounceList)
	require.Equal(t, info.Hash(), mi.InfoHash())

	mi.CreatedBy = "bencode"
	mi.URLList = URLList{"http://webseed/"}

	var buf bytes.Buffer
	require.NoError(t, mi.Write(&buf))

	// The canonical form is parsed back to the same metainfo.
	mi2, err := Load(&buf)
	require.NoError(t, err)
	require.Equal(t, mi, mi2)

	info2, err := mi2.Info()
	require.NoError(t, err)
	require.Equal(t, info, info2)

	// Encoding twice gives the same bytes.
	b1, err := mi.Encode()
	require.NoError(t, err)
	b2, err := mi2.Encode()
	require.NoError(t, err)
	require.Equal(t, b1, b2)
}

func TestLoadFromFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "test.torrent")
	require.NoError(t, os.WriteFile(filename, []byte(rawTorrent), 0o600))

	mi, err := LoadFromFile(filename)
	require.NoError(t, err)
	require.Equal(t, rawInfo, string(mi.InfoBytes))

	require.NoError(t, os.WriteFile(filename, []byte("d4:infoe"), 0o600))
	_, err = LoadFromFile(filename)
	require.Error(t, err)
	require.Contains(t, err.Error(), "test.torrent")
}

func TestMetaInfoMagnet(t *testing.T) {
	mi, err := Parse([]byte(rawTorrent))
	require.NoError(t, err)

	m := mi.Magnet("", Hash{})
	require.Equal(t, "test", m.DisplayName)
	require.Equal(t, mi.InfoHash(), m.InfoHash)
	require.Equal(t, []string{"http://tracker", "http://backup"}, m.Trackers)

	m = mi.Magnet("other", NewHashFromHexString("0101010101010101010101010101010101010101"))
	require.Equal(t, "other", m.DisplayName)
	require.Equal(t, "0101010101010101010101010101010101010101", m.InfoHash.HexString())

	corrupt := MetaInfo{Announce: "http://tracker", InfoBytes: []byte("d4:name")}
	m = corrupt.Magnet("", Hash{})
	require.Empty(t, m.DisplayName)
	require.Equal(t, NewHashFromBytes(corrupt.InfoBytes), m.InfoHash)
	require.NotContains(t, m.String(), "dn=")
}
