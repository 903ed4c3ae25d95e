// Package main is the entry point for erpctl, the ERP console client.
package main

import (
	"os"

	"github.com/unifiedui/erp-client/cmd/erpctl/commands"
)

func main() {
	os.Exit(commands.Execute())
}
