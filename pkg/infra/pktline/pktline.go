// Package pktline frames text in the length-prefixed pkt-line format used by
// the Git wire protocol.
package pktline

import (
	"bytes"
	"io"

	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/go-git/go-git/v5/plumbing/format/pktline"
	"github.com/m-mizutani/goerr/v2"
)

// FlushPkt is the flush packet. It carries no payload.
var FlushPkt = pktline.FlushPkt

// Frame prefixes text with its 4 digit lowercase hex length, counting the
// prefix itself.
func Frame(text string) ([]byte, error) {
	var buf bytes.Buffer
	if err := pktline.NewEncoder(&buf).EncodeString(text); err != nil {
		return nil, goerr.Wrap(err, "failed to encode pkt-line", goerr.V("len", len(text)))
	}
	return buf.Bytes(), nil
}

// Decode returns the payloads of all packets in data. A flush packet yields
// an empty payload.
func Decode(r io.Reader) ([][]byte, error) {
	var payloads [][]byte
	s := pktline.NewScanner(r)
	for s.Scan() {
		payloads = append(payloads, bytes.Clone(s.Bytes()))
	}
	if err := s.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to decode pkt-line")
	}
	return payloads, nil
}

// ServiceAnnouncement is the header that precedes the advertised refs of a
// Smart-HTTP info/refs response: the framed "# service=<name>\n" line and a
// flush packet.
func ServiceAnnouncement(svc types.Service) ([]byte, error) {
	line, err := Frame("# service=" + string(svc) + "\n")
	if err != nil {
		return nil, err
	}
	return append(line, FlushPkt...), nil
}
