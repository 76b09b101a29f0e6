package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-contable/internal/bootstrap"
	"github.com/jhoicas/tienda-contable/internal/infrastructure/catalogapi"
)

func newSeedCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga productos, clientes, proveedores y stock desde la API de catálogo",
		Long: `Trae /products y /users de una API estilo dummyjson y los inserta o actualiza:
usuarios como clientes, marcas como proveedores y el stock en la bodega principal.`,
		Example: `  tienda seed
  tienda seed --source http://localhost:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, _ := cmd.Flags().GetString("source")
			if source == "" {
				source = e.cfg.Catalog.BaseURL
			}
			ctx := cmd.Context()
			backend, err := bootstrap.Open(ctx, e.cfg, e.log, true)
			if err != nil {
				return err
			}
			defer backend.Close()

			svc := bootstrap.NewServices(backend, e.cfg, e.log)
			out, err := svc.Catalog.Seed(ctx, catalogapi.NewClient(source, nil))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bodegas: %d  productos: %d  clientes: %d  proveedores: %d\n",
				out.Warehouses, out.Products, out.Customers, out.Suppliers)
			return nil
		},
	}
	cmd.Flags().String("source", "", "URL base de la API de catálogo (por defecto CATALOG_BASE_URL)")
	return cmd
}
