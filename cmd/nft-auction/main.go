// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/RonieSteiner/NFT-Auction/api"
	"github.com/RonieSteiner/NFT-Auction/auction"
	"github.com/RonieSteiner/NFT-Auction/registry"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "nft-auction",
		Usage:     "single-asset NFT auction and escrow service",
		Copyright: "2020 The Meter.io developers",
		Flags: []cli.Flag{
			dataDirFlag,
			ownerFlag,
			apiAddrFlag,
			apiCorsFlag,
			verbosityFlag,
			persistFlag,
		},
		Action: defaultAction,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()

	initLogger(ctx)
	defer func() { slog.Info("exited") }()

	owner := parseOwner(ctx)
	dataDir := makeDataDir(ctx)

	mainDB := openMainDB(ctx, dataDir)
	defer func() { slog.Info("closing main database..."); mainDB.Close() }()

	logDB := openLogDB(ctx, dataDir)
	defer func() { slog.Info("closing log database..."); logDB.Close() }()
	slog.Info("log database opened", "path", logDB.Path())

	assets := registry.NewMemory()
	bank := registry.NewBank()

	eng := auction.New(mainDB, logDB, assets, bank, auction.Options{Owner: owner})

	apiHandler := api.New(eng, logDB, ctx.String(apiCorsFlag.Name))
	apiURL, srvCloser := startAPIServer(ctx, apiHandler)
	defer func() { slog.Info("stopping API server..."); srvCloser() }()

	slog.Info("auction service started",
		"version", fullVersion(),
		"owner", owner.String(),
		"api", apiURL,
	)

	<-exitSignal.Done()
	return nil
}
