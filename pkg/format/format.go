// Package format renders quotes and customers for the terminal.
package format

import (
	"fmt"
	"strings"

	"github.com/luminox/luminox/client"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder is shown for missing values.
const Placeholder = "—"

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency renders v as Brazilian reais with two decimals, e.g. "R$ 1.234,56".
func Currency(v float64) string {
	return "R$ " + printer.Sprint(number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// Date returns the date part of an ISO timestamp, or Placeholder when s is empty.
func Date(s string) string {
	if s == "" {
		return Placeholder
	}
	date, _, _ := strings.Cut(s, "T")
	return date
}

// Codigo is the label of a quote: its code, its number, or "#id".
func Codigo(o client.Orcamento) string {
	if o.Codigo != "" {
		return o.Codigo
	}
	if o.Numero != "" {
		return o.Numero
	}
	return fmt.Sprintf("#%d", o.ID)
}

func Status(s string) string {
	if s == "" {
		return "N/D"
	}
	return strings.ToUpper(s)
}

// ClienteNome picks the best display name of a customer.
func ClienteNome(c client.Cliente) string {
	for _, name := range []string{c.NomeFantasia, c.Nome, c.RazaoSocial} {
		if name != "" {
			return name
		}
	}
	return fmt.Sprintf("Cliente #%d", c.ID)
}

// ClienteNomeFromID looks id up in clientes.
func ClienteNomeFromID(clientes []client.Cliente, id int64) string {
	for _, c := range clientes {
		if c.ID == id {
			return ClienteNome(c)
		}
	}
	return fmt.Sprintf("Cliente #%d", id)
}

// OrcamentoCliente names the customer of a quote. A customer sent as a bare
// name wins, then cliente_nome, then the nome or name of an embedded customer,
// then a lookup of cliente_id in clientes.
func OrcamentoCliente(o client.Orcamento, clientes []client.Cliente) string {
	if o.Cliente != nil {
		if text, ok := o.Cliente.Text(); ok {
			return text
		}
	}
	if o.ClienteNome != "" {
		return o.ClienteNome
	}
	if ref := o.Cliente; ref != nil {
		if ref.Nome != nil {
			return *ref.Nome
		}
		if ref.Name != nil {
			return *ref.Name
		}
	}
	if o.ClienteID == 0 {
		return Placeholder
	}
	return ClienteNomeFromID(clientes, o.ClienteID)
}

// OrcamentoTotal renders the total of a quote from valor_total, valor or total,
// whichever the API sent first.
func OrcamentoTotal(o client.Orcamento) string {
	switch {
	case o.ValorTotal != nil:
		return Currency(*o.ValorTotal)
	case o.Valor != nil:
		return Currency(*o.Valor)
	default:
		return Currency(o.Total)
	}
}

// OrcamentoData renders the creation date of a quote, preferring criado_em
// over created_at.
func OrcamentoData(o client.Orcamento) string {
	if o.CriadoEm != nil {
		return Date(*o.CriadoEm)
	}
	return Date(o.CreatedAt)
}
