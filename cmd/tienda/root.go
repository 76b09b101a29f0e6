package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-contable/pkg/config"
	"github.com/jhoicas/tienda-contable/pkg/logger"
)

var version = "0.1.0"

// env configuración y logger compartidos por los subcomandos.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:   "tienda",
		Short: "Herramientas de operación de tienda-contable",
		Long: `tienda agrupa las tareas que no pasan por la API HTTP.

La configuración se lee igual que en el servidor (variables de entorno
o archivo .env): DATABASE_URL / DB_*, STORAGE_DRIVER, REDIS_ADDR, JWT_SECRET...`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if v, _ := cmd.Flags().GetBool("verbose"); v {
				cfg.App.LogLevel = "debug"
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).WithComponent("cli")
			return nil
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "log en nivel debug")

	root.AddCommand(
		newMigrateCmd(e),
		newSeedCmd(e),
		newTokenCmd(e),
		newLedgerCmd(e),
	)
	return root
}
