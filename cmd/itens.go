package cmd

import (
	"fmt"
	"strconv"

	"github.com/luminox/luminox/client"
	"github.com/luminox/luminox/pkg/format"
	"github.com/luminox/luminox/pkg/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func itemCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the line items of a quote",
	}

	cmd.AddCommand(
		itemListCmd(a),
		itemAddCmd(a),
		itemUpdateCmd(a),
		itemRemoveCmd(a),
	)
	return cmd
}

func itemListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list <orcamento-id>",
		Short: "List the line items of a quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orcID, err := parseID("quote ID", args[0])
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}
			renderItens(cmd, a.client.ListOrcamentoItens(cmd.Context(), orcID))
			return nil
		},
	}
}

func renderItens(cmd *cobra.Command, itens []client.OrcamentoItem) {
	if len(itens) == 0 {
		cmd.Println("No line items.")
		return
	}

	table := newTable(cmd.OutOrStdout(), []string{"ID", "Tipo", "Descrição", "Qtd.", "Preço unit.", "Total"})
	var total float64
	for _, it := range itens {
		table.Append([]string{
			id(it.ID),
			itemKind(it),
			oneLine(optional(it.Descricao, func(s string) string { return s })),
			strconv.FormatFloat(it.Quantidade, 'f', -1, 64),
			optional(it.PrecoUnitario, format.Currency),
			format.Currency(it.TotalItem),
		})
		total += it.TotalItem
	}
	table.SetFooter([]string{"", "", "", "", "Total", format.Currency(total)})
	table.Render()
}

func itemKind(it client.OrcamentoItem) string {
	if it.ItemTipo == client.ItemHH && it.TipoHH != nil {
		return fmt.Sprintf("%s (%s)", it.ItemTipo, *it.TipoHH)
	}
	return it.ItemTipo
}

// itemFlags holds the flag values shared by add and update.
type itemFlags struct {
	tipo, tipoHH, descricao   string
	maquina, material, uom    int64
	quantidade, precoUnitario float64
}

func (f *itemFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.tipo, "tipo", "t", "", "Item kind: HH, MATERIAL or LIVRE")
	fs.StringVar(&f.tipoHH, "tipo-hh", "", "Man-hour rate for HH items: REGULAR, EXTRA or FERIADO")
	fs.StringVarP(&f.descricao, "descricao", "d", "", "Description")
	fs.Int64Var(&f.maquina, "maquina", 0, "Machine ID")
	fs.Int64Var(&f.material, "material", 0, "Material ID")
	fs.Int64Var(&f.uom, "uom", 0, "Unit of measure ID")
	fs.Float64VarP(&f.quantidade, "quantidade", "q", 0, "Quantity")
	fs.Float64VarP(&f.precoUnitario, "preco", "p", 0, "Unit price")
}

// patch returns only the fields whose flags were set.
func (f *itemFlags) patch(fs *pflag.FlagSet) client.OrcamentoItemPatch {
	var p client.OrcamentoItemPatch
	if fs.Changed("tipo") {
		p.ItemTipo = &f.tipo
	}
	if fs.Changed("tipo-hh") {
		p.TipoHH = &f.tipoHH
	}
	if fs.Changed("descricao") {
		p.Descricao = &f.descricao
	}
	if fs.Changed("maquina") {
		p.MaquinaID = &f.maquina
	}
	if fs.Changed("material") {
		p.MaterialID = &f.material
	}
	if fs.Changed("uom") {
		p.UomID = &f.uom
	}
	if fs.Changed("quantidade") {
		p.Quantidade = &f.quantidade
	}
	if fs.Changed("preco") {
		p.PrecoUnitario = &f.precoUnitario
	}
	return p
}

func (f *itemFlags) input(fs *pflag.FlagSet) client.OrcamentoItemInput {
	p := f.patch(fs)
	return client.OrcamentoItemInput{
		ItemTipo:      f.tipo,
		MaquinaID:     p.MaquinaID,
		TipoHH:        p.TipoHH,
		MaterialID:    p.MaterialID,
		Descricao:     p.Descricao,
		UomID:         p.UomID,
		Quantidade:    f.quantidade,
		PrecoUnitario: p.PrecoUnitario,
	}
}

func itemAddCmd(a *app) *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "add <orcamento-id>",
		Short: "Add a line item to a quote",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orcID, err := parseID("quote ID", args[0])
			if err != nil {
				return err
			}
			in := flags.input(cmd.Flags())
			if err := validation.ValidateOrcamentoItemInput(in); err != nil {
				return invalid(err)
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			item, err := a.client.CreateOrcamentoItem(cmd.Context(), orcID, in)
			if err != nil {
				return apiError(fmt.Sprintf("add an item to quote %d", orcID), err)
			}
			cmd.Printf("Item %d added, total %s.\n", item.ID, format.Currency(item.TotalItem))
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func itemUpdateCmd(a *app) *cobra.Command {
	var flags itemFlags

	cmd := &cobra.Command{
		Use:   "update <orcamento-id> <item-id>",
		Short: "Change fields of a line item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orcID, itemID, err := parseItemIDs(args)
			if err != nil {
				return err
			}
			patch := flags.patch(cmd.Flags())
			if err := validation.ValidateOrcamentoItemPatch(patch); err != nil {
				return invalid(err)
			}
			if err := a.requireAuth(); err != nil {
				return err
			}

			item, err := a.client.UpdateOrcamentoItem(cmd.Context(), orcID, itemID, patch)
			if err != nil {
				return apiError(fmt.Sprintf("update item %d of quote %d", itemID, orcID), err)
			}
			cmd.Printf("Item %d updated, total %s.\n", item.ID, format.Currency(item.TotalItem))
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func itemRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <orcamento-id> <item-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a line item",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orcID, itemID, err := parseItemIDs(args)
			if err != nil {
				return err
			}
			if err := a.requireAuth(); err != nil {
				return err
			}
			if err := a.client.DeleteOrcamentoItem(cmd.Context(), orcID, itemID); err != nil {
				return apiError(fmt.Sprintf("remove item %d of quote %d", itemID, orcID), err)
			}
			cmd.Printf("Item %d removed.\n", itemID)
			return nil
		},
	}
}

func parseItemIDs(args []string) (int64, int64, error) {
	orcID, err := parseID("quote ID", args[0])
	if err != nil {
		return 0, 0, err
	}
	itemID, err := parseID("item ID", args[1])
	if err != nil {
		return 0, 0, err
	}
	return orcID, itemID, nil
}
