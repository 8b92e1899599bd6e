package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"questflow/cmd/fx/controllers_fx"
	"questflow/cmd/fx/db_fx"
	"questflow/cmd/fx/logger_fx"
	"questflow/cmd/fx/registry_fx"
	"questflow/cmd/fx/result_fx"
	"questflow/cmd/fx/survey_fx"
	"questflow/internal/api"
	"questflow/internal/config"
	"questflow/internal/definition"
	"questflow/internal/infra"
	"questflow/internal/logging"
	"questflow/internal/registry"
	"questflow/internal/repositories"
	"questflow/internal/services"
	"questflow/pkg/utils"
)

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:          "questflow",
	Short:        "Serve branching questionnaires defined in spreadsheets",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load every survey definition and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, envFile)
		if err != nil {
			return err
		}
		gin.SetMode(cfg.GinMode)

		app := fx.New(
			fx.Supply(cfg),
			logger_fx.Module,
			db_fx.Module,
			result_fx.Module,
			registry_fx.Module,
			survey_fx.Module,
			controllers_fx.Module,

			fx.Provide(api.NewRouter),
			fx.Invoke(StartServer),
		)
		if err := app.Err(); err != nil {
			return err
		}

		app.Run()
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [dir]",
	Short: "Parse every definition in a directory and report problems",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, envFile)
		if err != nil {
			return err
		}
		dir := cfg.DataDir
		if len(args) == 1 {
			dir = args[0]
		}
		return validate(cmd.Context(), cmd.OutOrStdout(), dir, cfg.SheetName)
	},
}

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show how many finished results are archived per survey",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath, envFile)
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return errors.New("POSTGRES_URL is not set")
		}
		log, err := logging.New(cfg.LogLevel)
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := infra.InitPostgresql(cfg.DatabaseURL, log)
		if err != nil {
			return err
		}
		defer infra.ClosePostgresql(db, log)

		counts, err := services.NewResultService(repositories.NewResultRepository(db)).CountsBySurvey(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SURVEY\tRESULTS\tLAST")
		for _, c := range counts {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", c.SurveyKey, c.Total, utils.FormatRFC3339(utils.FromUnixSeconds(c.LastAt)))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.AddCommand(serveCmd, validateCmd, resultsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{Addr: cfg.Addr(), Handler: engine}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

// validate loads dir the same way serve does and prints what it found.
func validate(ctx context.Context, out io.Writer, dir, sheet string) error {
	reg, err := registry.Discover(ctx, dir, registry.Options{Sheet: sheet})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tFILE\tTITLE\tSTART\tQUESTIONS")
	var broken int
	for _, s := range reg.List() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", s.Key, s.FileName, s.Title, s.StartQID, len(s.Questions))
		for _, d := range definition.DanglingTargets(s) {
			broken++
			fmt.Fprintf(tw, "\t\tunknown branch target: %s\t\t\n", d)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if broken > 0 {
		return fmt.Errorf("%d branch target(s) point at unknown questions", broken)
	}
	return nil
}
