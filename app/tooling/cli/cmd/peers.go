package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var peerURLs []string

var peersCmd = &cobra.Command{
	Use:   "peers",
	Short: "Print the known peers.",
	Run:   peersRun,
}

var peersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register peers with the node.",
	Run:   peersAddRun,
}

func init() {
	rootCmd.AddCommand(peersCmd)
	peersCmd.AddCommand(peersAddCmd)
	peersAddCmd.Flags().StringSliceVarP(&peerURLs, "peer", "p", nil, "Peer url to register. Repeatable.")
}

func peersRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/node/peers/list", url))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(body))
}

func peersAddRun(cmd *cobra.Command, args []string) {
	req := struct {
		Peers []string `json:"peers"`
	}{
		Peers: peerURLs,
	}

	data, err := json.Marshal(req)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/node/peers/add", url), "application/json", bytes.NewBuffer(data))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(body))
}
