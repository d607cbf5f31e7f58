package state

import (
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/database"
)

// SubmitTransaction accepts a transaction into the mempool and signals the
// worker that there is work to mine.
func (s *State) SubmitTransaction(tx database.Tx) (string, error) {
	id, err := s.mempool.Submit(tx)
	if err != nil {
		return "", err
	}

	s.evHandler("state: SubmitTransaction: tx[%s]", tx)
	s.evHandler("%s tx: {\"id\":%q}", ViewerPrefix, id)

	s.Worker.SignalStartMining()

	return id, nil
}
