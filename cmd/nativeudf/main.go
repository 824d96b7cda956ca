package main

import (
	"context"
	"fmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/viant/nativeudf"
	"github.com/viant/nativeudf/internal/library"
	"go.uber.org/zap"
	"io"
	"os"
	"strings"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var rootCmd = &cobra.Command{
	Use:           "nativeudf",
	Short:         "Native UDF library resolution tool",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolves configured native library references into local library files",
	RunE:  resolveF,
}

var planCmd = &cobra.Command{
	Use:   "plan [reference...]",
	Short: "Prints resolution action for every library reference without fetching",
	RunE:  planF,
}

func init() {
	viper.SetEnvPrefix("NATIVEUDF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.String("role", "coordinator", "Process role: worker or coordinator.")
	flags.String("library-paths", "", "Comma separated worker library references.")
	flags.String("driver-library-paths", "", "Comma separated coordinator library references.")
	flags.String("master", "", "Cluster master.")
	flags.String("deploy-mode", "", "Submission deploy mode: client or cluster.")
	flags.String("files-dir", "", "Materialized job files directory.")
	flags.String("workspace", "", "Fetched artifacts directory.")
	flags.String("s3-region", "", "Object store region.")
	flags.String("s3-endpoint", "", "Custom object store endpoint.")
	flags.String("cred-url", "", "Object store secret location.")
	flags.String("cred-key", "", "Object store secret encryption key.")
	flags.String("cred-id", "", "Object store secret resource id.")
	flags.String("output", outputText, "Output format: text or json.")
	flags.Bool("verbose", false, "Enables debug logging.")
	for _, name := range []string{"role", "library-paths", "driver-library-paths", "master", "deploy-mode", "files-dir", "workspace", "s3-region", "s3-endpoint", "cred-url", "cred-key", "cred-id", "output", "verbose"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
	rootCmd.AddCommand(resolveCmd, planCmd)
}

func settings() map[string]interface{} {
	return map[string]interface{}{
		nativeudf.KeyLibraryPaths:       viper.GetString("library-paths"),
		nativeudf.KeyDriverLibraryPaths: viper.GetString("driver-library-paths"),
		nativeudf.KeyMaster:             viper.GetString("master"),
		nativeudf.KeyDeployMode:         viper.GetString("deploy-mode"),
		nativeudf.KeyFilesDir:           viper.GetString("files-dir"),
		nativeudf.KeyWorkspace:          viper.GetString("workspace"),
		nativeudf.KeyS3Region:           viper.GetString("s3-region"),
		nativeudf.KeyS3Endpoint:         viper.GetString("s3-endpoint"),
		nativeudf.KeyCredURL:            viper.GetString("cred-url"),
		nativeudf.KeyCredKey:            viper.GetString("cred-key"),
		nativeudf.KeyCredID:             viper.GetString("cred-id"),
	}
}

func parseRole(value string) (nativeudf.Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "worker", "executor":
		return nativeudf.Worker, nil
	case "coordinator", "driver", "":
		return nativeudf.Coordinator, nil
	}
	return 0, fmt.Errorf("unsupported role: %v", value)
}

func newLogger() (*zap.Logger, error) {
	if viper.GetBool("verbose") {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func resolveF(cmd *cobra.Command, args []string) error {
	role, err := parseRole(viper.GetString("role"))
	if err != nil {
		return err
	}
	config, err := nativeudf.NewConfig(settings())
	if err != nil {
		return err
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	session := nativeudf.NewSession(config, role, nativeudf.WithLogger(logger))
	defer session.Close()
	if err = session.Init(cmd.Context()); err != nil {
		logger.Error("failed to resolve native libraries", zap.Error(err))
		return err
	}
	result := &resolution{
		Role:      role.String(),
		Mode:      config.Mode().String(),
		Libraries: session.Libraries(),
	}
	return write(cmd.OutOrStdout(), viper.GetString("output"), result)
}

func planF(cmd *cobra.Command, args []string) error {
	role, err := parseRole(viper.GetString("role"))
	if err != nil {
		return err
	}
	config, err := nativeudf.NewConfig(settings())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{config.LibraryPathsFor(role)}
	}
	result := &plan{Role: role.String(), Mode: config.Mode().String()}
	for _, arg := range args {
		for _, ref := range library.Split(arg) {
			kind := library.Classify(ref)
			source, name := library.ParseName(ref)
			result.Steps = append(result.Steps, &step{
				Reference: ref,
				Source:    source,
				Name:      name,
				Kind:      kind.String(),
				Action:    library.Plan(config.Mode(), role, kind).String(),
			})
		}
	}
	return write(cmd.OutOrStdout(), viper.GetString("output"), result)
}

func write(writer io.Writer, format string, output renderer) error {
	switch format {
	case outputJSON:
		data, err := output.marshalJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(writer, "%s\n", data)
		return err
	case outputText, "":
		_, err := io.WriteString(writer, output.text())
		return err
	}
	return fmt.Errorf("unsupported output: %v", format)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
