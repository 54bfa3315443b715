package cmd

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run consensus against the known peers.",
	Run:   syncRun,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func syncRun(cmd *cobra.Command, args []string) {
	resp, err := http.Post(fmt.Sprintf("%s/v1/node/sync", url), "application/json", nil)
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
