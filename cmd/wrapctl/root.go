package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wippyai/codewrap/backend"
)

var (
	cfgFile    string
	workDir    string
	backendKey string
	buildFlags []string
	quiet      bool
	verbose    bool
	ccPath     string
	fcPath     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wrapctl",
	Short: "Compile and invoke wrapped numeric routines",
	Long: `wrapctl drives the wrap pipeline from the command line: it reads a
YAML manifest describing a source file and its routines, compiles the
source with the selected backend, and loads the resulting artifact.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.wrapctl/config)")
	rootCmd.PersistentFlags().StringVar(&workDir, "dir", "", "persistent build directory (default is an ephemeral one)")
	rootCmd.PersistentFlags().StringVar(&backendKey, "backend", "", "backend key, overriding the manifest")
	rootCmd.PersistentFlags().StringArrayVar(&buildFlags, "flag", nil, "extra flag passed to the build command (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "discard build process output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline state transitions")
	rootCmd.PersistentFlags().StringVar(&ccPath, "cc", "", "C compiler frontend (default clang)")
	rootCmd.PersistentFlags().StringVar(&fcPath, "fc", "", "Fortran compiler frontend (default flang)")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}
		viper.AddConfigPath(filepath.Join(home, ".wrapctl"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.BindEnv("cc", "WRAPCTL_CC")
	viper.BindEnv("fc", "WRAPCTL_FC")

	// A missing config file is fine; environment variables still apply.
	_ = viper.ReadInConfig()

	if ccPath == "" {
		ccPath = viper.GetString("cc")
	}
	if fcPath == "" {
		fcPath = viper.GetString("fc")
	}
}

// toolchain builds the compiler configuration from flags, config and env.
func toolchain() backend.Toolchain {
	return backend.Toolchain{CC: ccPath, FC: fcPath}
}

// logger returns a development logger in verbose mode, otherwise a no-op one.
func logger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
