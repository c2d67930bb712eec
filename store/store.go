// Package store keeps published SADs in content-addressable storage.
//
// A SADStore admits only structures whose embedded SAID verifies, so
// everything retrievable from it is content-verified twice: the CAS
// checks the CID of the stored bytes, the store checks the SAID of the
// structure within them. SADs are stored as JSON because it is the one
// kind whose bytes preserve the digest-significant key order textually.
package store

import (
	"errors"

	"github.com/ipfs/go-cid"

	"xdao.co/said/sad"
	"xdao.co/said/said"
)

var (
	ErrNotFound    = errors.New("store: not found")
	ErrInvalidCID  = errors.New("store: invalid cid")
	ErrCIDMismatch = errors.New("store: cid mismatch")
	ErrImmutable   = errors.New("store: immutable object mismatch")
	ErrBadSAID     = errors.New("store: embedded SAID does not verify")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// CAS is a minimal content-addressable storage interface.
//
// Contract:
// - Put MUST be idempotent.
// - Stored objects MUST be immutable.
// - CIDs MUST be derived from the bytes written.
// - Get MUST return ErrNotFound when the CID is absent.
type CAS interface {
	Put(bytes []byte) (cid.Cid, error)
	Get(id cid.Cid) ([]byte, error)
	Has(id cid.Cid) bool
}

// SADStore stores SADs in a CAS, gating admission on SAID verification.
// Options select the label/code/kind the stored SADs were derived
// under; zero values mean the library defaults.
type SADStore struct {
	CAS     CAS
	Options said.Options
}

// Put verifies m's embedded SAID and stores its JSON bytes. The
// returned CID addresses the published form.
func (s *SADStore) Put(m *sad.Map) (cid.Cid, error) {
	if s == nil || s.CAS == nil {
		return cid.Undef, errors.New("store: missing CAS")
	}
	if err := s.check(m); err != nil {
		return cid.Undef, err
	}
	b, err := m.MarshalJSON()
	if err != nil {
		return cid.Undef, err
	}
	return s.CAS.Put(b)
}

// Get fetches and re-verifies the SAD at id. The underlying CAS already
// guarantees the bytes match the CID; the SAID check guards against a
// structure that was never valid in the first place.
func (s *SADStore) Get(id cid.Cid) (*sad.Map, error) {
	if s == nil || s.CAS == nil {
		return nil, errors.New("store: missing CAS")
	}
	b, err := s.CAS.Get(id)
	if err != nil {
		return nil, err
	}
	m, err := sad.FromJSON(b)
	if err != nil {
		return nil, err
	}
	if err := s.check(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Has reports whether the CAS holds an object for id.
func (s *SADStore) Has(id cid.Cid) bool {
	if s == nil || s.CAS == nil {
		return false
	}
	return s.CAS.Has(id)
}

func (s *SADStore) check(m *sad.Map) error {
	ok, err := said.Verify(m, said.VerifyOptions{
		Label: s.Options.Label,
		Code:  s.Options.Code,
		Kind:  s.Options.Kind,
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrBadSAID
	}
	return nil
}
