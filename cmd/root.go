package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sdboard/sdboard/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	         _ _                         _
	 ___  __| | |__   ___   __ _ _ __ __| |
	/ __|/ _' | '_ \ / _ \ / _' | '__/ _' |
	\__ \ (_| | |_) | (_) | (_| | | | (_| |
	|___/\__,_|_.__/ \___/ \__,_|_|  \__,_|

`
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sdboard",
	Short: "Sales & Distribution KPI dashboard.",
	Long: LOGO + `sdboard serves an executive dashboard of sales and distribution KPIs compared
against their budgets, and exposes the same comparator from the command line.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sdboard.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("loglevel"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("server.listen", ":8080")
	viper.SetDefault("server.shutdown-timeout", "10s")
	viper.SetDefault("assets.logo", "")
	viper.SetDefault("assets.geojson", "")
	viper.SetDefault("assets.retries", 2)
	viper.SetDefault("assets.timeout", "15s")
	viper.SetDefault("data.seed", 42)
	viper.SetDefault("data.as-of", "")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".sdboard")
		viper.SetConfigType("yaml")
	}

	// SDBOARD_SERVER_LISTEN overrides server.listen
	viper.SetEnvPrefix("sdboard")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok && cfgFile == "" {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := home + "/.sdboard.yaml"
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		} else if cfgFile != "" {
			fmt.Printf("Error reading config file: %s\n", err)
		}
	}

	// Init log library
	if err := utils.SetLogLevel(viper.GetString("log.level")); err != nil {
		utils.Log.WithError(err).Warn("Keeping default log level")
	}
}
