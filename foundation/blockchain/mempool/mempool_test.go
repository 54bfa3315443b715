package mempool_test

import (
	"testing"

	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
	"github.com/lohithgsk/blockchain/foundation/blockchain/mempool"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func tx(sender string, recipient string, amount uint64) ledger.Tx {
	return ledger.Tx{
		Sender:    ledger.AccountID(sender),
		Recipient: ledger.AccountID(recipient),
		Amount:    amount,
		TimeStamp: 1735689600,
	}
}

func TestCRUD(t *testing.T) {
	txs := []ledger.Tx{
		tx("alice", "bob", 10),
		tx("bob", "carol", 20),
		tx("carol", "alice", 30),
		tx("alice", "carol", 40),
	}

	t.Log("Given the need to validate mempool api.")
	{
		t.Logf("\tTest 0:\tWhen handling a set of transactions.")
		{
			mp := mempool.New()

			for i, tx := range txs {
				if l := mp.Add(tx); l != i+1 {
					t.Fatalf("\t%s\tShould get length %d after add: got %d", failed, i+1, l)
				}
			}
			t.Logf("\t%s\tShould be able to add transactions.", success)

			if mp.Count() != len(txs) {
				t.Fatalf("\t%s\tShould get the right count: got %d, exp %d", failed, mp.Count(), len(txs))
			}
			t.Logf("\t%s\tShould get the right count.", success)

			cpy := mp.Copy()
			for i := range txs {
				if cpy[i] != txs[i] {
					t.Fatalf("\t%s\tShould keep submission order at position %d.", failed, i)
				}
			}
			t.Logf("\t%s\tShould keep submission order.", success)

			front := mp.PickFront(2)
			if len(front) != 2 || front[0] != txs[0] || front[1] != txs[1] {
				t.Fatalf("\t%s\tShould pick the oldest transactions first.", failed)
			}
			t.Logf("\t%s\tShould pick the oldest transactions first.", success)

			if mp.Count() != len(txs) {
				t.Fatalf("\t%s\tShould not remove transactions on pick: got %d", failed, mp.Count())
			}
			t.Logf("\t%s\tShould not remove transactions on pick.", success)

			if front := mp.PickFront(100); len(front) != len(txs) {
				t.Fatalf("\t%s\tShould cap the pick at the pool size: got %d", failed, len(front))
			}
			t.Logf("\t%s\tShould cap the pick at the pool size.", success)

			mp.Delete(txs[1])
			if mp.Count() != len(txs)-1 {
				t.Fatalf("\t%s\tShould be able to delete a transaction: got %d", failed, mp.Count())
			}
			t.Logf("\t%s\tShould be able to delete a transaction.", success)

			mp.Delete(txs[1])
			if mp.Count() != len(txs)-1 {
				t.Fatalf("\t%s\tShould treat a missing delete as a no-op: got %d", failed, mp.Count())
			}
			t.Logf("\t%s\tShould treat a missing delete as a no-op.", success)

			mp.Truncate()
			if mp.Count() != 0 {
				t.Fatalf("\t%s\tShould be able to truncate the pool: got %d", failed, mp.Count())
			}
			t.Logf("\t%s\tShould be able to truncate the pool.", success)
		}
	}
}

func TestPendingDebit(t *testing.T) {
	t.Log("Given the need to sum the pending debits of an account.")
	{
		t.Logf("\tTest 0:\tWhen the pool holds transfers and rewards.")
		{
			mp := mempool.New()
			mp.Add(tx("alice", "bob", 10))
			mp.Add(tx("alice", "carol", 40))
			mp.Add(tx("bob", "alice", 5))
			mp.Add(ledger.NewRewardTx("alice", 100))

			if got := mp.PendingDebit("alice"); got != 50 {
				t.Fatalf("\t%s\tShould sum only the account's own debits: got %d, exp 50", failed, got)
			}
			t.Logf("\t%s\tShould sum only the account's own debits.", success)

			if got := mp.PendingDebit("carol"); got != 0 {
				t.Fatalf("\t%s\tShould get zero for an account with no debits: got %d", failed, got)
			}
			t.Logf("\t%s\tShould get zero for an account with no debits.", success)

			if got := mp.PendingDebit(ledger.RewardAccountID); got != 0 {
				t.Fatalf("\t%s\tShould never debit the reward sender: got %d", failed, got)
			}
			t.Logf("\t%s\tShould never debit the reward sender.", success)
		}
	}
}
