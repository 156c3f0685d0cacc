// Mozilla Public License Version 2.0
// Modify from github.com/anacrolix/torrent/metainfo.

package metainfo

import (
	"encoding/base32"
	"encoding/hex"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
)

const xtPrefix = "urn:btih:"

// Magnet link components.
type Magnet struct {
	InfoHash    Hash       // From "xt"
	Trackers    []string   // From "tr"
	DisplayName string     // From "dn" if not empty
	Params      url.Values // All other values, such as "as", "xs", etc
}

// String returns the magnet URI. The "xt" parameter always comes first
// and its "urn:btih:" prefix is not escaped, which Transmission and Deluge
// both expect.
func (m Magnet) String() string {
	vs := make(url.Values, len(m.Params)+2)
	for k, v := range m.Params {
		vs[k] = append([]string(nil), v...)
	}
	if len(m.Trackers) > 0 {
		vs["tr"] = append(vs["tr"], m.Trackers...)
	}
	if m.DisplayName != "" {
		vs.Set("dn", m.DisplayName)
	}

	query := "xt=" + xtPrefix + m.InfoHash.HexString()
	if rest := vs.Encode(); rest != "" {
		query += "&" + rest
	}
	return (&url.URL{Scheme: "magnet", RawQuery: query}).String()
}

// ParseMagnetURI parses Magnet-formatted URIs into a Magnet instance.
func ParseMagnetURI(uri string) (m Magnet, err error) {
	u, err := url.Parse(uri)
	if err != nil {
		return m, errors.Wrap(err, "error parsing uri")
	} else if u.Scheme != "magnet" {
		return m, errors.Newf("unexpected scheme %q", u.Scheme)
	}

	q := u.Query()
	xt := q.Get("xt")
	if m.InfoHash, err = parseInfohash(xt); err != nil {
		return m, errors.Wrapf(err, "error parsing infohash %q", xt)
	}
	popFirst(q, "xt")

	m.DisplayName = q.Get("dn")
	popFirst(q, "dn")

	m.Trackers = q["tr"]
	q.Del("tr")

	if len(q) > 0 {
		m.Params = q
	}
	return
}

func parseInfohash(xt string) (ih Hash, err error) {
	encoded, ok := strings.CutPrefix(xt, xtPrefix)
	if !ok {
		return ih, errors.New("bad xt parameter prefix")
	}

	switch len(encoded) {
	case 2 * HashSize:
		_, err = hex.Decode(ih[:], []byte(encoded))
	case 32:
		_, err = base32.StdEncoding.Decode(ih[:], []byte(strings.ToUpper(encoded)))
	default:
		return ih, errors.Newf("unhandled xt parameter encoding (encoded length %d)", len(encoded))
	}

	if err != nil {
		err = errors.Wrap(err, "error decoding xt")
	}
	return
}

// popFirst removes the first value of the key, and the key itself
// once no value is left.
func popFirst(vs url.Values, key string) {
	if sl := vs[key]; len(sl) > 1 {
		vs[key] = sl[1:]
	} else {
		delete(vs, key)
	}
}
