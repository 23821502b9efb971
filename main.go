package main

import (
	"fmt"
	"os"

	"fjacquet/asset-tracker/cmd/account"
	"fjacquet/asset-tracker/cmd/category"
	"fjacquet/asset-tracker/cmd/demo"
	"fjacquet/asset-tracker/cmd/export"
	"fjacquet/asset-tracker/cmd/history"
	"fjacquet/asset-tracker/cmd/importcmd"
	"fjacquet/asset-tracker/cmd/owner"
	"fjacquet/asset-tracker/cmd/record"
	"fjacquet/asset-tracker/cmd/root"
	"fjacquet/asset-tracker/cmd/serve"
	"fjacquet/asset-tracker/cmd/summary"
)

func init() {
	// .env and config files are read in root.Setup, once flags are parsed
	root.Init()

	root.Cmd.AddCommand(
		summary.Cmd,
		history.Cmd,
		record.Cmd,
		account.Cmd,
		category.Cmd,
		owner.Cmd,
		export.Cmd,
		importcmd.Cmd,
		demo.Cmd,
		serve.Cmd,
	)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
