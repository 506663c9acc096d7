// Package main prints a random CONTACTBOOK_JWT_SECRET assignment.
package main

import (
	"flag"
	"os"

	"github.com/louisbranch/contactbook/internal/platform/config"
	"github.com/louisbranch/contactbook/internal/tools/jwtsecret"
)

func main() {
	cfg, err := jwtsecret.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	if err := jwtsecret.Run(cfg, os.Stdout, nil); err != nil {
		config.Exitf("generate secret: %v", err)
	}
}
