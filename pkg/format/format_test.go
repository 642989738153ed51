package format

import (
	"testing"

	"github.com/luminox/luminox/client"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := map[float64]string{
		0:         "R$ 0,00",
		1234.56:   "R$ 1.234,56",
		1234567.8: "R$ 1.234.567,80",
		0.5:       "R$ 0,50",
	}
	for in, want := range tests {
		assert.Equal(t, want, Currency(in), "Currency(%v)", in)
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "2024-05-01", Date("2024-05-01T13:45:00Z"))
	assert.Equal(t, "2024-05-01", Date("2024-05-01"))
	assert.Equal(t, Placeholder, Date(""))
}

func TestCodigo(t *testing.T) {
	assert.Equal(t, "ORC-7", Codigo(client.Orcamento{ID: 7, Codigo: "ORC-7", Numero: "N7"}))
	assert.Equal(t, "N7", Codigo(client.Orcamento{ID: 7, Numero: "N7"}))
	assert.Equal(t, "#7", Codigo(client.Orcamento{ID: 7}))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "ENVIADO", Status("enviado"))
	assert.Equal(t, "N/D", Status(""))
}

func TestClienteNome(t *testing.T) {
	assert.Equal(t, "Acme", ClienteNome(client.Cliente{ID: 1, NomeFantasia: "Acme", Nome: "ACME SA"}))
	assert.Equal(t, "ACME SA", ClienteNome(client.Cliente{ID: 1, Nome: "ACME SA", RazaoSocial: "Acme Ltda"}))
	assert.Equal(t, "Acme Ltda", ClienteNome(client.Cliente{ID: 1, RazaoSocial: "Acme Ltda"}))
	assert.Equal(t, "Cliente #1", ClienteNome(client.Cliente{ID: 1}))
}

func TestOrcamentoCliente(t *testing.T) {
	clientes := []client.Cliente{{ID: 2, Nome: "Beta"}}

	assert.Equal(t, "Embedded", OrcamentoCliente(client.Orcamento{ClienteID: 2, ClienteNome: "Embedded"}, clientes))
	assert.Equal(t, "Beta", OrcamentoCliente(client.Orcamento{ClienteID: 2}, clientes))
	assert.Equal(t, "Cliente #3", OrcamentoCliente(client.Orcamento{ClienteID: 3}, clientes))
	assert.Equal(t, Placeholder, OrcamentoCliente(client.Orcamento{}, nil))
}

func TestOrcamentoCliente_EmbeddedCustomer(t *testing.T) {
	nome, name := "Nome", "Name"
	clientes := []client.Cliente{{ID: 2, Nome: "Beta"}}

	assert.Equal(t, "Texto", OrcamentoCliente(client.Orcamento{Cliente: client.NewClienteText("Texto"), ClienteNome: "Embedded"}, clientes))
	assert.Equal(t, "Embedded", OrcamentoCliente(client.Orcamento{Cliente: &client.ClienteRef{Nome: &nome}, ClienteNome: "Embedded"}, clientes))
	assert.Equal(t, "Nome", OrcamentoCliente(client.Orcamento{Cliente: &client.ClienteRef{Nome: &nome, Name: &name}}, clientes))
	assert.Equal(t, "Name", OrcamentoCliente(client.Orcamento{Cliente: &client.ClienteRef{Name: &name}}, clientes))
	assert.Equal(t, "Beta", OrcamentoCliente(client.Orcamento{Cliente: &client.ClienteRef{}, ClienteID: 2}, clientes))
}

func TestOrcamentoTotal(t *testing.T) {
	valorTotal, valor := 10.0, 20.0
	assert.Equal(t, "R$ 10,00", OrcamentoTotal(client.Orcamento{ValorTotal: &valorTotal, Valor: &valor, Total: 30}))
	assert.Equal(t, "R$ 20,00", OrcamentoTotal(client.Orcamento{Valor: &valor, Total: 30}))
	assert.Equal(t, "R$ 30,00", OrcamentoTotal(client.Orcamento{Total: 30}))
}

func TestOrcamentoData(t *testing.T) {
	criado := "2024-05-01T10:00:00Z"
	assert.Equal(t, "2024-05-01", OrcamentoData(client.Orcamento{CriadoEm: &criado, CreatedAt: "2023-01-01T00:00:00Z"}))
	assert.Equal(t, "2023-01-01", OrcamentoData(client.Orcamento{CreatedAt: "2023-01-01T00:00:00Z"}))
	assert.Equal(t, Placeholder, OrcamentoData(client.Orcamento{}))
}
