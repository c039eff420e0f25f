package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gatherly/gatherly/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or edit Gatherly configuration",
	Long: `Manage Gatherly global configuration stored at ~/.gatherly/config.yaml

Configuration includes:
  • API base URL
  • Logging settings

Examples:
  # View current configuration
  gatherly config view

  # Get a specific value
  gatherly config get api_url

  # Set a specific value
  gatherly config set api_url https://api.gatherly.example/api

  # Show configuration file path
  gatherly config path
`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display current configuration",
	RunE:  runConfigView,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration in $EDITOR",
	RunE:  runConfigEdit,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a specific configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE:  runConfigPath,
}

func runConfigView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		return fmt.Errorf("$EDITOR is not set")
	}

	path, err := config.Path()
	if err != nil {
		return err
	}

	// Make sure the file exists before handing it to the editor
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		cfg, loadErr := config.Load()
		if loadErr != nil {
			return loadErr
		}
		if saveErr := cfg.Save(); saveErr != nil {
			return saveErr
		}
	}

	editCmd := exec.Command(editor, path)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	return editCmd.Run()
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	value, err := cfg.Get(args[0])
	if err != nil {
		return fmt.Errorf("%w (known keys: %s)", err, strings.Join(config.Keys(), ", "))
	}
	fmt.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("%w (known keys: %s)", err, strings.Join(config.Keys(), ", "))
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	rootCmd.AddCommand(configCmd)
}
