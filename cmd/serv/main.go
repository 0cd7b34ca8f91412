package main

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/xtbfolio/xtbfolio/internal"
)

var (
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "xtbfolio",
	Short: "xtbfolio - XTB portfolio tracking backend",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		return internal.Run(configFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "path to the config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
