package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/luminox/luminox/client"
	"github.com/luminox/luminox/pkg/clierr"
	"github.com/luminox/luminox/pkg/format"
	"github.com/luminox/luminox/pkg/hasher"
	"github.com/luminox/luminox/pkg/pool"
	"github.com/luminox/luminox/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func orcamentoCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orcamento",
		Aliases: []string{"orc"},
		Short:   "Manage quotes",
	}

	cmd.AddCommand(
		orcamentoListCmd(a),
		orcamentoShowCmd(a),
		orcamentoCreateCmd(a),
		orcamentoExportCmd(a),
		itemCmd(a),
	)
	return cmd
}

func orcamentoListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all quotes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAuth(); err != nil {
				return err
			}

			stop := startSpinner(a.progress, "Loading quotes...")
			orcamentos := a.client.ListOrcamentos(cmd.Context())
			clientes := a.client.ListClientes(cmd.Context())
			stop()

			if len(orcamentos) == 0 {
				cmd.Println("No quotes found.")
				return nil
			}

			table := newTable(cmd.OutOrStdout(), []string{"ID", "Código", "Cliente", "Tipo", "Status", "Total", "Criado em"})
			for _, o := range orcamentos {
				table.Append([]string{
					id(o.ID),
					format.Codigo(o),
					oneLine(format.OrcamentoCliente(o, clientes)),
					o.Tipo,
					format.Status(o.Status),
					format.OrcamentoTotal(o),
					format.OrcamentoData(o),
				})
			}
			table.Render()

			log.Info().Msgf("Listed %d quotes.", len(orcamentos))
			return nil
		},
	}
}

func orcamentoShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a quote and its line items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orcID, err := parseID("quote ID", args[0])
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			stop := startSpinner(a.progress, "Loading quote...")
			o, err := a.client.GetOrcamento(cmd.Context(), orcID)
			if err != nil {
				stop()
				return apiError(fmt.Sprintf("load quote %d", orcID), err)
			}
			itens := a.client.ListOrcamentoItens(cmd.Context(), orcID)
			stop()

			cmd.Printf("Orçamento %s\n", format.Codigo(o))
			cmd.Println("Cliente:", format.OrcamentoCliente(o, nil))
			cmd.Println("Tipo:", o.Tipo)
			cmd.Println("Status:", format.Status(o.Status))
			if o.Titulo != "" {
				cmd.Println("Título:", o.Titulo)
			}
			cmd.Println("Criado em:", format.OrcamentoData(o))
			cmd.Println("Subtotal:", format.Currency(o.Subtotal))
			cmd.Println("Desconto:", format.Currency(o.Desconto))
			cmd.Println("Acréscimo:", format.Currency(o.Acrescimo))
			cmd.Println("Total:", format.OrcamentoTotal(o))
			if o.Observacoes != "" {
				cmd.Println("Observações:", oneLine(o.Observacoes))
			}

			cmd.Println()
			renderItens(cmd, itens)
			return nil
		},
	}
}

func orcamentoCreateCmd(a *app) *cobra.Command {
	var in client.OrcamentoInput
	var contratoID int64
	var titulo, observacoes string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a quote",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("contrato") {
				in.ContratoID = &contratoID
			}
			if titulo != "" {
				in.Titulo = &titulo
			}
			if observacoes != "" {
				in.Observacoes = &observacoes
			}
			if err := validation.ValidateOrcamentoInput(in); err != nil {
				return invalid(err)
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			o, err := a.client.CreateOrcamento(cmd.Context(), in)
			if err != nil {
				return apiError("create the quote", err)
			}
			cmd.Printf("Quote %s created (ID %d).\n", format.Codigo(o), o.ID)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&in.ClienteID, "cliente", "c", 0, "Customer ID (required)")
	cmd.Flags().StringVarP(&in.Tipo, "tipo", "t", client.TipoSpot, "Quote type: CONTRATO or SPOT")
	cmd.Flags().StringVarP(&in.Status, "status", "s", client.StatusRascunho, "Status: RASCUNHO, ENVIADO, ACEITO or CANCELADO")
	cmd.Flags().StringVarP(&in.Moeda, "moeda", "m", "BRL", "Currency code")
	cmd.Flags().Int64Var(&contratoID, "contrato", 0, "Contract ID (required for CONTRATO quotes)")
	cmd.Flags().StringVar(&titulo, "titulo", "", "Title")
	cmd.Flags().StringVar(&observacoes, "observacoes", "", "Notes")
	return cmd
}

// orcamentoExport is one quote with its line items, as written by the export command.
type orcamentoExport struct {
	client.Orcamento
	Itens []client.OrcamentoItem `json:"itens"`
}

func orcamentoExportCmd(a *app) *cobra.Command {
	var outPath, checksum string
	var workers int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all quotes with their line items to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = a.workers()
			}
			if err := validation.ValidateWorkerCount(workers); err != nil {
				return invalid(err)
			}
			if checksum != "" && !hasher.Supported(checksum) {
				return clierr.New(clierr.Validation, fmt.Sprintf("unsupported checksum %q, use one of %v", checksum, hasher.Algorithms), nil)
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			orcamentos := a.client.ListOrcamentos(cmd.Context())
			bar := progressbar.NewOptions(len(orcamentos),
				progressbar.OptionSetWriter(a.progress),
				progressbar.OptionSetDescription("Exporting quotes..."),
				progressbar.OptionSetWidth(20),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)

			export, errs := pool.Map(cmd.Context(), orcamentos, workers, func(ctx context.Context, o client.Orcamento) (orcamentoExport, error) {
				defer func() { _ = bar.Add(1) }()
				if err := ctx.Err(); err != nil {
					return orcamentoExport{}, err
				}
				return orcamentoExport{Orcamento: o, Itens: a.client.ListOrcamentoItens(ctx, o.ID)}, nil
			})
			_ = bar.Finish()
			if len(errs) > 0 {
				return clierr.New(clierr.Internal, "export was interrupted", errs[0])
			}

			data, err := json.MarshalIndent(export, "", "  ")
			if err != nil {
				return clierr.New(clierr.Internal, "failed to encode the export", err)
			}
			if outPath == "" || outPath == "-" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return clierr.New(clierr.Internal, fmt.Sprintf("failed to write %s", outPath), err)
			}
			cmd.Printf("Exported %d quotes to %s.\n", len(export), outPath)
			if checksum != "" {
				sum, err := hasher.File(outPath, checksum)
				if err != nil {
					return clierr.New(clierr.Internal, "failed to checksum the export", err)
				}
				cmd.Printf("%s  %s (%s)\n", sum, outPath, checksum)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "File to write (stdout when empty or -)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of concurrent requests (1-20)")
	cmd.Flags().StringVar(&checksum, "checksum", hasher.Default, "Checksum to print for the written file (md5, sha1, sha256, sha512; empty to skip)")
	return cmd
}

func parseID(name, raw string) (int64, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, clierr.New(clierr.Validation, fmt.Sprintf("%s must be a number, got %q", name, raw), err)
	}
	if err := validation.ValidateID(name, n); err != nil {
		return 0, invalid(err)
	}
	return n, nil
}
