// Package main implements quizrunner, a terminal client for the breed
// questionnaire and the scoring engine.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/pawmatch/backend/internal/model/breed"
)

func newRootCmd() *cobra.Command {
	var catalogFile string

	root := &cobra.Command{
		Use:           "quizrunner",
		Short:         "Run the pet breed questionnaire from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&catalogFile, "catalog", os.Getenv("CATALOG_FILE"), "YAML or JSON breed catalog (defaults to the built-in catalog)")

	loadStore := func() (breed.Store, error) {
		if catalogFile == "" {
			return breed.NewMemoryStore(breed.Seed()), nil
		}
		profiles, err := breed.LoadFile(catalogFile)
		if err != nil {
			return nil, err
		}
		return breed.NewMemoryStore(profiles), nil
	}

	root.AddCommand(newRunCmd(loadStore), newScoreCmd(loadStore))
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
