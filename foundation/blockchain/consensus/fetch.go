package consensus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lohithgsk/blockchain/foundation/blockchain/ledger"
	"github.com/lohithgsk/blockchain/foundation/blockchain/peer"
)

// NetFetchChain returns a FetchFunc that retrieves a peer's full chain
// over HTTP. The timeout bounds each individual peer call so one dead
// peer cannot stall a resolution pass.
func NetFetchChain(timeout time.Duration) FetchFunc {
	client := http.Client{
		Timeout: timeout,
	}

	return func(ctx context.Context, pr peer.Peer) ([]ledger.Block, error) {
		url := fmt.Sprintf("http://%s/v1/chain/list", pr.Host)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			msg, err := io.ReadAll(resp.Body)
			if err != nil {
				return nil, err
			}
			return nil, errors.New(string(msg))
		}

		var chainResp struct {
			Chain  []ledger.Block `json:"chain"`
			Length int            `json:"length"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&chainResp); err != nil {
			return nil, fmt.Errorf("unable to decode chain payload: %w", err)
		}

		return chainResp.Chain, nil
	}
}
