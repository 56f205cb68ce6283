package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MeKo-Tech/rasterkit/internal/config"
	"github.com/MeKo-Tech/rasterkit/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Global configuration loader.
	configLoader *config.Loader
	// Global configuration.
	globalConfig *config.Config
	// Configuration file path.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rasterkit",
	Short: "Image processing toolkit for dense raster buffers",
	Long: `rasterkit runs image processing kernels over one or more image files:
geometric transforms, morphology, rank and edge-preserving filters,
edge detection, connected-component labeling, color space conversion,
and histogram equalization.

Multiple input files are processed in parallel. Results are written
next to each input (or into --out-dir) with a configurable name suffix
and format.

Examples:
  rasterkit resize photo.jpg --width 640 --height 480
  rasterkit sobel *.png --out-dir edges/
  rasterkit hist equalize dark.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.PersistentFlags().GetBool("version")
		if v {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return nil
		}
		// If no version flag, show help
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
// This allows tests to execute commands without calling os.Exit().
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	// Initialize configuration loader
	cobra.OnInitialize(initConfig)

	// Global flags that apply to all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is search in ., $HOME, $HOME/.config/rasterkit, /etc/rasterkit)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	// Output and batch flags shared by every file-processing command
	rootCmd.PersistentFlags().String("out-dir", "", "directory for result images (default is next to each input)")
	rootCmd.PersistentFlags().String("out-format", "", "encode results in this format: png, jpg, bmp, tif (default keeps the input extension)")
	rootCmd.PersistentFlags().String("suffix", "_out", "name suffix appended to output files")
	rootCmd.PersistentFlags().IntP("jobs", "j", 4, "number of files processed in parallel")
	rootCmd.PersistentFlags().Bool("continue-on-error", false, "keep processing remaining files when one fails")

	// Input discovery flags; these stay flag-only, they make no sense in a
	// config file
	rootCmd.PersistentFlags().Bool("recursive", false, "descend into subdirectories when an input is a directory")
	rootCmd.PersistentFlags().StringSlice("include", nil, "only process files whose name matches a glob pattern (repeatable)")
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "skip files whose name matches a glob pattern (repeatable)")

	// Version flag for tests and usability
	rootCmd.PersistentFlags().Bool("version", false, "print version information and exit")

	// Bind flags to the loader's viper instance
	v := GetConfigLoader().GetViper()
	_ = v.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("output.dir", rootCmd.PersistentFlags().Lookup("out-dir"))
	_ = v.BindPFlag("output.format", rootCmd.PersistentFlags().Lookup("out-format"))
	_ = v.BindPFlag("output.suffix", rootCmd.PersistentFlags().Lookup("suffix"))
	_ = v.BindPFlag("batch.workers", rootCmd.PersistentFlags().Lookup("jobs"))
	_ = v.BindPFlag("batch.continue_on_error", rootCmd.PersistentFlags().Lookup("continue-on-error"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Initialize configuration if not already done
		if globalConfig == nil {
			initConfig()
		}

		// Determine log level from config
		var logLevel slog.Level

		// Check verbose flag first for backward compatibility
		if globalConfig.Verbose {
			logLevel = slog.LevelDebug
		} else {
			// Parse log-level from config
			switch globalConfig.LogLevel {
			case "debug":
				logLevel = slog.LevelDebug
			case "info":
				logLevel = slog.LevelInfo
			case "warn":
				logLevel = slog.LevelWarn
			case "error":
				logLevel = slog.LevelError
			default:
				logLevel = slog.LevelInfo
			}
		}

		// Set up structured logging
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// The persistent flags are bound to this loader's viper instance,
	// so the same loader has to serve every load.
	loader := GetConfigLoader()

	var err error
	if cfgFile != "" {
		// Use config file from the flag
		globalConfig, err = loader.LoadWithFile(cfgFile)
	} else {
		// Search for config in default locations
		globalConfig, err = loader.Load()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the global configuration.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}

	// Reload configuration to ensure CLI flags are included
	// This is necessary because flag binding happens after initial config loading
	loader := GetConfigLoader()
	var cfg config.Config
	if err := loader.GetViper().Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling updated configuration: %v\n", err)
		return globalConfig // Return the original config if unmarshal fails
	}

	return &cfg
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *config.Loader {
	if configLoader == nil {
		configLoader = config.NewLoader()
	}
	return configLoader
}
