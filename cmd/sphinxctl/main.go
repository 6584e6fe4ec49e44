// Command sphinxctl is a small demo CLI over the sphinx header engine,
// structured after the teacher's cmd/main.go ("onion"/"parse" pair
// becomes "build"/"show" here): it builds a routing header for a toy
// route of N forward hops with generated addresses and random keys, or
// parses a previously built hex-encoded header and prints its
// enc_header length and outer MAC. Both commands accept --config to
// load and validate a sphinxctl TOML config against the compiled-in
// sphinx package constants before doing anything else.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	sphinx "github.com/sphinxcore/header"
	"github.com/sphinxcore/header/config"
)

func main() {
	configFlag := &cli.StringFlag{
		Name:  "config",
		Usage: "path to a sphinxctl TOML config file",
	}

	app := cli.App{
		Name:  "sphinxctl",
		Usage: "build and inspect Sphinx routing headers",
		Commands: []*cli.Command{
			buildCmd,
			showCmd,
		},
	}
	buildCmd.Flags = append(buildCmd.Flags, configFlag)
	showCmd.Flags = append(showCmd.Flags, configFlag)

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// loadConfig applies --config if given, validating it against the
// compiled-in sphinx package constants before any header is built or
// shown, per config.Params.Validate's contract.
func loadConfig(ctx *cli.Context) error {
	path := ctx.String("config")
	if path == "" {
		return nil
	}

	params, err := config.Load(path)
	if err != nil {
		return err
	}
	return params.Validate(sphinx.SecurityParameter, sphinx.MaxPathLength)
}

var buildCmd = &cli.Command{
	Name:      "build",
	Usage:     "build a routing header for a route of N forward hops plus a destination",
	ArgsUsage: "[N_FORWARD_HOPS]",
	Action:    buildHeader,
}

func buildHeader(ctx *cli.Context) error {
	if err := loadConfig(ctx); err != nil {
		return err
	}

	n := 2
	if ctx.Args().Len() > 0 {
		parsed, err := strconv.Atoi(ctx.Args().First())
		if err != nil {
			return fmt.Errorf("invalid hop count: %w", err)
		}
		n = parsed
	}

	route := make(sphinx.Route, 0, n+1)
	for i := 0; i < n; i++ {
		pub, _, err := randomKeyPair()
		if err != nil {
			return err
		}
		var addr [sphinx.DestinationLength]byte
		copy(addr[:], fmt.Sprintf("mix-hop-%d", i))
		route = append(route, sphinx.NewForwardHop(addr, pub))
	}

	destPub, _, err := randomKeyPair()
	if err != nil {
		return err
	}
	var destAddr [sphinx.DestinationLength]byte
	copy(destAddr[:], "destination")
	var identifier [sphinx.IdentifierLength]byte
	copy(identifier[:], "surb-id")
	route = append(route, sphinx.NewFinalHop(destAddr, identifier, destPub))

	initialSecret, err := sphinx.RandomScalar()
	if err != nil {
		return err
	}

	header, keyMaterial, err := sphinx.BuildHeader(route, initialSecret)
	if err != nil {
		return fmt.Errorf("building header: %w", err)
	}

	fmt.Printf("header (%d bytes): %x\n", len(header.Bytes()), header.Bytes())
	fmt.Printf("payload keys derived for %d hops\n", len(keyMaterial.PayloadKeys()))
	return nil
}

var showCmd = &cli.Command{
	Name:      "show",
	Usage:     "parse a hex-encoded header and print its component lengths",
	ArgsUsage: "[HEADER_HEX]",
	Action:    showHeader,
}

func showHeader(ctx *cli.Context) error {
	if err := loadConfig(ctx); err != nil {
		return err
	}

	if ctx.Args().Len() < 1 {
		return errors.New("pass a hex-encoded header to show")
	}

	raw, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("decoding header: %w", err)
	}

	header, err := sphinx.ParseSphinxHeader(raw)
	if err != nil {
		return err
	}

	fmt.Printf("enc_header: %d bytes\n", len(header.RoutingInfo.EncHeader))
	fmt.Printf("outer_mac:  %x\n", header.RoutingInfo.OuterMac)
	return nil
}

// randomKeyPair generates a toy Curve25519 keypair for the demo CLI;
// a real deployment would load long-term mix keys from its PKI.
func randomKeyPair() (sphinx.Point, sphinx.Scalar, error) {
	secret, err := sphinx.RandomScalar()
	if err != nil {
		return sphinx.Point{}, sphinx.Scalar{}, err
	}
	return sphinx.ScalarBaseMult(secret), secret, nil
}
