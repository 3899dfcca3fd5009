// Standalone runner for the integration test containers. Brings up the
// full stack (postgres, authorizer, API image) and holds it until
// interrupted, for poking at the API by hand or attaching a debugger.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/truematch/truematch-api/tests/helpers"
)

func main() {
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to an env file to load before starting")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Run the truematch test containers until interrupted.

Usage:
  testcontainers [-f ENV_FILE_PATH]

Without -f the current process environment is used as-is.
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if envFilename != "" {
		log.Printf("Loading environment from %s", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load %s: %v", envFilename, err)
		}
	} else {
		log.Print("No env file given, using the current environment")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var containers *helpers.TestContainers
	go func() {
		var err error
		containers, err = helpers.CreateAllTestContainers(nil)
		if err != nil {
			log.Fatalf("Failed to create test containers: %v", err)
		}
		log.Printf("API available at %s, authorizer at %s", containers.BaseURL, containers.AuthzURL)
	}()

	sig := <-sigs
	log.Printf("Received %v, terminating test containers", sig)
	if containers != nil {
		containers.Terminate(nil)
	}
}
