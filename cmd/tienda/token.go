package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-contable/pkg/jwt"
)

func newTokenCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un JWT para pruebas o integraciones",
		Example: `  tienda token --user caja-1 --role cajero
  tienda token --user ana --role admin --minutes 480`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, _ := cmd.Flags().GetString("user")
			role, _ := cmd.Flags().GetString("role")
			minutes, _ := cmd.Flags().GetInt("minutes")
			if role != jwt.RoleAdmin && role != jwt.RoleCashier {
				return fmt.Errorf("rol inválido %q (admin | cajero)", role)
			}
			if e.cfg.JWT.Secret == "" {
				return fmt.Errorf("JWT_SECRET no configurado")
			}
			if minutes <= 0 {
				minutes = e.cfg.JWT.Expiration
			}
			tok, err := jwt.Generate(e.cfg.JWT.Secret, user, role, e.cfg.JWT.Issuer, minutes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().String("user", "", "ID del usuario")
	cmd.Flags().String("role", jwt.RoleCashier, "admin | cajero")
	cmd.Flags().Int("minutes", 0, "vigencia en minutos (por defecto JWT_EXPIRATION_MINUTES)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
