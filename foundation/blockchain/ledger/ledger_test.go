package ledger_test

import (
	"context"
	"testing"

	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func nop(v string, args ...any) {}

func genesisBlock() ledger.Block {
	gb := ledger.Block{
		Index:         0,
		TimeStamp:     1735689600,
		PrevBlockHash: ledger.ZeroHash,
	}
	gb.BlockHash = gb.Hash()
	return gb
}

func Test_Hash(t *testing.T) {
	t.Log("Given the need to validate hashing of block data.")
	{
		t.Logf("\tTest 0:\tWhen hashing the same block twice.")
		{
			b := genesisBlock()

			h1 := b.Hash()
			h2 := b.Hash()
			if h1 != h2 {
				t.Fatalf("\t%s\tShould get the same hash for the same content: %s != %s", failed, h1, h2)
			}
			t.Logf("\t%s\tShould get the same hash for the same content.", success)

			if len(h1) != 66 || h1[:2] != "0x" {
				t.Fatalf("\t%s\tShould get a 0x prefixed 64 digit hash: %s", failed, h1)
			}
			t.Logf("\t%s\tShould get a 0x prefixed 64 digit hash.", success)
		}

		t.Logf("\tTest 1:\tWhen changing any field of the block.")
		{
			b := genesisBlock()
			h1 := b.Hash()

			b.Nonce++
			if h2 := b.Hash(); h1 == h2 {
				t.Fatalf("\t%s\tShould get a different hash after a change: %s", failed, h2)
			}
			t.Logf("\t%s\tShould get a different hash after a change.", success)
		}

		t.Logf("\tTest 2:\tWhen the stored hash is set.")
		{
			b := genesisBlock()
			h1 := b.Hash()

			b.BlockHash = "0xdeadbeef"
			if h2 := b.Hash(); h1 != h2 {
				t.Fatalf("\t%s\tShould not include the stored hash in the calculation.", failed)
			}
			t.Logf("\t%s\tShould not include the stored hash in the calculation.", success)
		}
	}
}

func Test_IsHashSolved(t *testing.T) {
	type table struct {
		name       string
		difficulty uint16
		hash       string
		solved     bool
	}

	tt := []table{
		{
			name:       "solved",
			difficulty: 2,
			hash:       "0x00a1000000000000000000000000000000000000000000000000000000000000",
			solved:     true,
		},
		{
			name:       "unsolved",
			difficulty: 2,
			hash:       "0x0a00000000000000000000000000000000000000000000000000000000000000",
			solved:     false,
		},
		{
			name:       "short",
			difficulty: 1,
			hash:       "0x00",
			solved:     false,
		},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			if got := ledger.IsHashSolved(tst.difficulty, tst.hash); got != tst.solved {
				t.Logf("Test %s:\tgot: %v", tst.name, got)
				t.Logf("Test %s:\texp: %v", tst.name, tst.solved)
				t.Fatalf("Test %s:\tShould get the right solved answer.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_POW(t *testing.T) {
	t.Log("Given the need to mine a block with proof of work.")
	{
		t.Logf("\tTest 0:\tWhen mining on top of the genesis block.")
		{
			gb := genesisBlock()

			tx, err := ledger.NewTx("alice", "bob", 10)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to create a transaction: %s", failed, err)
			}

			const difficulty = 1
			block, err := ledger.POW(context.Background(), difficulty, gb, []ledger.Tx{tx}, nop)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to mine a block: %s", failed, err)
			}
			t.Logf("\t%s\tShould be able to mine a block.", success)

			if !ledger.IsHashSolved(difficulty, block.BlockHash) {
				t.Fatalf("\t%s\tShould get a hash meeting the difficulty: %s", failed, block.BlockHash)
			}
			t.Logf("\t%s\tShould get a hash meeting the difficulty.", success)

			if block.PrevBlockHash != gb.BlockHash {
				t.Fatalf("\t%s\tShould link to the parent hash.", failed)
			}
			t.Logf("\t%s\tShould link to the parent hash.", success)

			if block.Index != gb.Index+1 {
				t.Fatalf("\t%s\tShould get the next index: got %d", failed, block.Index)
			}
			t.Logf("\t%s\tShould get the next index.", success)
		}

		t.Logf("\tTest 1:\tWhen the context is already cancelled.")
		{
			gb := genesisBlock()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := ledger.POW(ctx, 1, gb, nil, nop); err == nil {
				t.Fatalf("\t%s\tShould get an error from a cancelled search.", failed)
			}
			t.Logf("\t%s\tShould get an error from a cancelled search.", success)
		}
	}
}

func Test_ValidateChain(t *testing.T) {
	const difficulty = 1

	mine := func(t *testing.T, parent ledger.Block, txs []ledger.Tx) ledger.Block {
		block, err := ledger.POW(context.Background(), difficulty, parent, txs, nop)
		if err != nil {
			t.Fatalf("mining block: %s", err)
		}
		return block
	}

	t.Log("Given the need to validate the integrity of a chain.")
	{
		t.Logf("\tTest 0:\tWhen the chain is well formed.")
		{
			gb := genesisBlock()
			tx, _ := ledger.NewTx("alice", "bob", 10)
			b1 := mine(t, gb, []ledger.Tx{tx})
			b2 := mine(t, b1, []ledger.Tx{ledger.NewRewardTx("miner", 10)})

			if err := ledger.ValidateChain([]ledger.Block{gb, b1, b2}, difficulty); err != nil {
				t.Fatalf("\t%s\tShould validate a well formed chain: %s", failed, err)
			}
			t.Logf("\t%s\tShould validate a well formed chain.", success)
		}

		t.Logf("\tTest 1:\tWhen a transaction is tampered with.")
		{
			gb := genesisBlock()
			tx, _ := ledger.NewTx("alice", "bob", 10)
			b1 := mine(t, gb, []ledger.Tx{tx})

			b1.Transactions[0].Amount = 1_000_000

			if err := ledger.ValidateChain([]ledger.Block{gb, b1}, difficulty); err == nil {
				t.Fatalf("\t%s\tShould reject a tampered transaction.", failed)
			}
			t.Logf("\t%s\tShould reject a tampered transaction.", success)
		}

		t.Logf("\tTest 2:\tWhen a block doesn't link to its parent.")
		{
			gb := genesisBlock()
			tx, _ := ledger.NewTx("alice", "bob", 10)
			b1 := mine(t, gb, []ledger.Tx{tx})

			// Mine on a fork of b1 so b2 is internally valid but links
			// to the wrong parent.
			fork := b1
			fork.TimeStamp++
			fork.BlockHash = fork.Hash()
			b2 := mine(t, fork, []ledger.Tx{tx})

			if err := ledger.ValidateChain([]ledger.Block{gb, b1, b2}, difficulty); err == nil {
				t.Fatalf("\t%s\tShould reject a broken parent link.", failed)
			}
			t.Logf("\t%s\tShould reject a broken parent link.", success)
		}

		t.Logf("\tTest 3:\tWhen the chain is empty.")
		{
			if err := ledger.ValidateChain(nil, difficulty); err == nil {
				t.Fatalf("\t%s\tShould reject an empty chain.", failed)
			}
			t.Logf("\t%s\tShould reject an empty chain.", success)
		}
	}
}

func Test_NewTx(t *testing.T) {
	type table struct {
		name      string
		sender    ledger.AccountID
		recipient ledger.AccountID
		amount    uint64
		valid     bool
	}

	tt := []table{
		{name: "basic", sender: "alice", recipient: "bob", amount: 10, valid: true},
		{name: "no-sender", sender: "", recipient: "bob", amount: 10, valid: false},
		{name: "no-recipient", sender: "alice", recipient: "", amount: 10, valid: false},
		{name: "self-send", sender: "alice", recipient: "alice", amount: 10, valid: false},
		{name: "zero-amount", sender: "alice", recipient: "bob", amount: 0, valid: false},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			_, err := ledger.NewTx(tst.sender, tst.recipient, tst.amount)
			if (err == nil) != tst.valid {
				t.Logf("Test %s:\tgot: %v", tst.name, err)
				t.Fatalf("Test %s:\tShould get the right validation answer.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}
