// Package cidutil derives IPFS-compatible CIDs for serialized
// self-addressing data, for callers that keep SADs in content-addressed
// storage alongside their SAIDs.
package cidutil

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"xdao.co/said/codec"
	"xdao.co/said/sad"
	"xdao.co/said/version"
)

// CIDv1RawSHA256 returns a CIDv1 string using the "raw" multicodec and
// a sha2-256 multihash.
func CIDv1RawSHA256(data []byte) string {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for invalid inputs; with SHA2_256 and -1 length,
		// this should be unreachable.
		return ""
	}
	return cid.NewCidV1(cid.Raw, sum).String()
}

// CIDv1RawSHA256CID returns a CIDv1 (raw + sha2-256) derived from data.
func CIDv1RawSHA256CID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// ForSAD serializes m with kind and returns the CIDv1 of the resulting
// bytes. The mapping should already carry its final SAID; the CID
// addresses the published form, not the placeholder form.
func ForSAD(m *sad.Map, kind version.Kind) (cid.Cid, error) {
	b, err := codec.Encode(m, kind)
	if err != nil {
		return cid.Undef, err
	}
	return CIDv1RawSHA256CID(b)
}
