package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/hamster-habitat/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Prints the built-in habitat.yaml. Save it to
~/.habitat/configs/habitat.yaml or ./configs/habitat.yaml and edit it; keys
left out keep their defaults.

With --effective, prints the configuration after --config, --scenario and
--pace have been applied.`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the resolved configuration instead of the defaults")
}

func runConfig(cmd *cobra.Command, args []string) {
	if !flagEffective {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadHabitatConfig()
	if err != nil {
		fail("%v", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		fail("marshaling config: %v", err)
	}
	fmt.Print(string(data))
}
