package main

import (
	"fmt"
	"os"

	"github.com/smartcontractkit/txbundle/cmd/txbundle"
)

func main() {
	rootCmd := txbundle.BuildTxBundleCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
