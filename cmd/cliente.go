package cmd

import (
	"github.com/luminox/luminox/pkg/format"
	"github.com/spf13/cobra"
)

func clienteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cliente",
		Short: "Browse customers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all customers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}

			stop := startSpinner(a.progress, "Loading customers...")
			clientes := a.client.ListClientes(cmd.Context())
			stop()

			if len(clientes) == 0 {
				cmd.Println("No customers found.")
				return nil
			}
			table := newTable(cmd.OutOrStdout(), []string{"ID", "Nome", "Razão social"})
			for _, c := range clientes {
				table.Append([]string{id(c.ID), oneLine(format.ClienteNome(c)), orPlaceholder(oneLine(c.RazaoSocial))})
			}
			table.Render()
			return nil
		},
	})
	return cmd
}
