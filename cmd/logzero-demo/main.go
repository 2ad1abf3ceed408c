// Command logzero-demo exercises the logzero logging setup. Without
// arguments it runs a short demo; with a config file it validates and
// applies the configuration first.
//
// Usage: logzero-demo [-config config.yaml]
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/metachris/logzero"
	"github.com/metachris/logzero/config"
	"github.com/metachris/logzero/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML logger configuration")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.VersionInfo())
		return
	}

	logger := logzero.DefaultLogger()
	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger, err = config.Apply(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger.Debug("hello")
	logger.Info("info")
	logger.Warning("warn")
	logger.Error("error")
	logger.Exception(errors.New("this is a demo error"), "something failed")

	// JSON logging
	logger.EnableJSON(true, false, false)
	logger.Info("JSON test")

	// Logfile (check with `cat /tmp/logzero-demo.log`)
	if err := logger.LogFile("/tmp/logzero-demo.log", logzero.FileOptions{}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("going into logfile, in JSON format")

	// Back to the standard formatter
	logger.EnableJSON(false, false, false)
	logger.Info("going into logfile, with standard formatter")
}
