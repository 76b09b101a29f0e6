package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/tienda-contable/internal/application/dto"
	"github.com/jhoicas/tienda-contable/internal/bootstrap"
)

func newLedgerCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger <customer|supplier> <id>",
		Short: "Muestra el estado de cuenta de un cliente o proveedor",
		Example: `  tienda ledger customer 12
  tienda ledger supplier 3 --from 2024-01-01 --to 2024-03-31
  tienda ledger customer 12 --pdf estado.pdf`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			personID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("id inválido %q", args[1])
			}
			from, err := dateFlag(cmd, "from")
			if err != nil {
				return err
			}
			to, err := dateFlag(cmd, "to")
			if err != nil {
				return err
			}
			if !to.IsZero() {
				to = to.Add(24*time.Hour - time.Nanosecond)
			}

			ctx := cmd.Context()
			backend, err := bootstrap.Open(ctx, e.cfg, e.log, false)
			if err != nil {
				return err
			}
			defer backend.Close()
			svc := bootstrap.NewServices(backend, e.cfg, e.log)

			if path, _ := cmd.Flags().GetString("pdf"); path != "" {
				body, _, err := svc.Ledger.StatementPDF(ctx, args[0], personID, from, to)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, body, 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "escrito:", path)
				return nil
			}

			st, err := svc.Ledger.Statement(ctx, args[0], personID, from, to)
			if err != nil {
				return err
			}
			printStatement(cmd.OutOrStdout(), st)
			return nil
		},
	}
	cmd.Flags().String("from", "", "desde (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "hasta (YYYY-MM-DD, inclusive)")
	cmd.Flags().String("pdf", "", "escribe el estado de cuenta en PDF en esta ruta")
	return cmd
}

func dateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dto.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s debe tener formato %s", name, dto.DateLayout)
	}
	return t, nil
}

func printStatement(out io.Writer, st *dto.LedgerResponse) {
	fmt.Fprintf(out, "%s #%d  %s\n\n", st.PersonType, st.PersonID, st.PersonName)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "FECHA\tDESCRIPCIÓN\tDÉBITO\tCRÉDITO\tSALDO\t")
	if st.From != "" {
		fmt.Fprintf(w, "%s\t%s\t\t\t%s\t\n", st.From, "Saldo anterior", st.Opening.StringFixed(2))
	}
	for _, e := range st.Entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n", e.Date, e.Description,
			e.Debit.StringFixed(2), e.Credit.StringFixed(2), e.Balance.StringFixed(2))
	}
	_ = w.Flush()
	fmt.Fprintf(out, "\nTotal débito: %s  Total crédito: %s  Saldo: %s\n",
		st.TotalDebit.StringFixed(2), st.TotalCredit.StringFixed(2), st.Balance.StringFixed(2))
}
