package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/declass/declass/pkg/declass/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "declass <archive>",
		Short: "Decompile Java classes from jar/war/ear/zip archives",
		Long: `Declass streams a compressed archive, caches its class files in
memory, and drives an external decompiler over every top-level class,
writing the sources next to the archive's resources.

Nested archives are extracted to temporary files and processed
recursively into a derived output directory.

Examples:
  declass app.jar                    # Decompile into app.jar.src/
  declass -o out app.war             # Decompile into out/
  declass --zip app-src.zip app.jar  # Collect sources into a zip
  declass --print app.jar            # Stream sources to stdout
  declass -p -w 8 big.ear            # Parallel dispatch with 8 workers`,
		Args: cobra.ExactArgs(1),
		RunE: runDecompile,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/declass/config.yaml)")
	rootCmd.PersistentFlags().StringP("output-dir", "o", "", "output directory (default: <archive>.src)")
	rootCmd.PersistentFlags().String("zip", "", "write output into a zip file instead of a directory")
	rootCmd.PersistentFlags().Bool("print", false, "stream decompiled sources to stdout")
	rootCmd.PersistentFlags().Bool("skip-resources", false, "do not copy non-class entries to the output")
	rootCmd.PersistentFlags().Bool("inner-archives", config.DefaultInnerArchives, "recursively decompile nested jar/war/ear/zip entries")
	rootCmd.PersistentFlags().BoolP("parallel", "p", false, "decompile classes in parallel")
	rootCmd.PersistentFlags().IntP("workers", "w", config.DefaultWorkers, "worker count for parallel dispatch")
	rootCmd.PersistentFlags().Int("max-depth", config.DefaultMaxDepth, "nested archive recursion limit (0=unlimited)")
	rootCmd.PersistentFlags().StringSliceP("include", "i", nil, "entry include patterns (can be specified multiple times)")
	rootCmd.PersistentFlags().StringSliceP("exclude", "e", nil, "entry exclude patterns (can be specified multiple times)")
	rootCmd.PersistentFlags().StringSlice("decompiler", nil, "external decompiler command; staged class path is appended")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	// Bind flags to viper
	_ = viper.BindPFlag("output_dir", rootCmd.PersistentFlags().Lookup("output-dir"))
	_ = viper.BindPFlag("output_zip", rootCmd.PersistentFlags().Lookup("zip"))
	_ = viper.BindPFlag("print", rootCmd.PersistentFlags().Lookup("print"))
	_ = viper.BindPFlag("skip_resources", rootCmd.PersistentFlags().Lookup("skip-resources"))
	_ = viper.BindPFlag("inner_archives", rootCmd.PersistentFlags().Lookup("inner-archives"))
	_ = viper.BindPFlag("parallel", rootCmd.PersistentFlags().Lookup("parallel"))
	_ = viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
	_ = viper.BindPFlag("max_depth", rootCmd.PersistentFlags().Lookup("max-depth"))
	_ = viper.BindPFlag("include", rootCmd.PersistentFlags().Lookup("include"))
	_ = viper.BindPFlag("exclude", rootCmd.PersistentFlags().Lookup("exclude"))
	_ = viper.BindPFlag("decompiler", rootCmd.PersistentFlags().Lookup("decompiler"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if dir, err := config.ConfigDir(); err == nil {
			viper.AddConfigPath(dir)
		}
	}

	viper.SetEnvPrefix("DECLASS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	// Read config file (ignore if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
