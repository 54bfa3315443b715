package state

import (
	"github.com/lohithgsk/blockchain/foundation/blockchain/genesis"
	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
	"github.com/lohithgsk/blockchain/foundation/blockchain/peer"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveMinerAccountID returns the account this node mines rewards to.
func (s *State) RetrieveMinerAccountID() ledger.AccountID {
	return s.minerAccountID
}

// RetrieveHost returns a copy of the host information.
func (s *State) RetrieveHost() string {
	return s.host
}

// RetrieveKnownPeers retrieves a copy of the known peer list, excluding
// this node.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy(s.host)
}

// AddKnownPeer adds a peer to the known peer list. Adding a peer that is
// already known is a no-op, not an error.
func (s *State) AddKnownPeer(pr peer.Peer) bool {
	if pr.Match(s.host) {
		return false
	}

	added := s.knownPeers.Add(pr)
	if added {
		s.evHandler("state: AddKnownPeer: peer[%s] added", pr)
	}
	return added
}

// RemoveKnownPeer removes a peer from the known peer list.
func (s *State) RemoveKnownPeer(pr peer.Peer) {
	s.knownPeers.Remove(pr)
}
