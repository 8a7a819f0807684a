package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"persona-insight/internal/app"
	"persona-insight/internal/config"
	"persona-insight/internal/logger"
)

const cliName = "traitctl"

var (
	envFile string

	rootCmd = &cobra.Command{
		Use:          cliName,
		Short:        "traitctl predicts Big Five traits from LinkedIn and GitHub text",
		SilenceUsage: true,
	}
)

// Execute ejecuta el comando raiz; SIGINT cancela el contexto de los comandos.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with service settings")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindEnv("debug", "LOG_DEBUG")
	viper.BindEnv("json", "LOG_JSON")
}

// setup carga .env, la configuracion y arma los servicios compartidos con la API.
func setup(ctx context.Context) (*app.App, *zap.Logger, error) {
	if err := godotenv.Load(envFile); err != nil && envFile != ".env" {
		log.Printf("warning: loading %s: %v", envFile, err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	zl, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating a logger: %w", err)
	}

	a, err := app.New(ctx, cfg, zl)
	if err != nil {
		return nil, nil, err
	}
	return a, zl, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
