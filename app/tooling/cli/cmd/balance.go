package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var account string

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the balance of an account.",
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&account, "account", "a", "", "Account to query.")
}

func balanceRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/balances/list/%s", url, account))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var result struct {
		Account string `json:"account"`
		Balance int64  `json:"balance"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatal(err)
	}

	fmt.Println("For Account:", result.Account)
	fmt.Println(result.Balance)
}
