package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/evgkrsk/zabbix-review-export/internal/config"
	"github.com/evgkrsk/zabbix-review-export/internal/export"
	"github.com/evgkrsk/zabbix-review-export/internal/serialize"
	"github.com/evgkrsk/zabbix-review-export/internal/zabbix"
)

var (
	cfg     config.Config
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "zabbixreview",
	Short: "Export Zabbix configuration objects to reviewable files",
	Long: `zabbixreview connects to a Zabbix server's management API and writes
every host, template, value map, screen, action and mediatype to an
individual file under a per-category folder, normalized for diffing.

Output is the server's native representation (XML for exportable classes,
JSON for the rest) or, with --save-yaml, YAML for everything.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&cfg.URL, "zabbix-url", "", "Zabbix frontend URL (required)")
	f.StringVar(&cfg.Username, "zabbix-username", "", "API username (required)")
	f.StringVar(&cfg.Password, "zabbix-password", "", "API password (required)")
	f.BoolVar(&cfg.SaveYAML, "save-yaml", false, "convert all output to YAML")
	f.StringVar(&cfg.Directory, "directory", ".", "output directory root")
	f.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	f.StringVar(&cfgFile, "config", "", "path to YAML config file")
}

func run(cmd *cobra.Command, args []string) error {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if cfgFile != "" {
		file, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg.Merge(file, cmd.Flags().Changed)
	}
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := zabbix.Connect(cfg.URL, cfg.Username, cfg.Password)
	if err != nil {
		return err
	}
	return export.Run(client, serialize.Options{
		Dir:      cfg.Directory,
		SaveYAML: cfg.SaveYAML,
	})
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
