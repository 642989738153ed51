package validation

import (
	"testing"

	"github.com/luminox/luminox/client"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestValidateWorkerCount(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		wantErr bool
	}{
		{"valid minimum", 1, false},
		{"valid middle", 10, false},
		{"valid maximum", 20, false},
		{"too low", 0, true},
		{"negative", -1, true},
		{"too high", 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWorkerCount(tt.workers)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateWorkerCount(%d) error = %v, wantErr %v", tt.workers, err, tt.wantErr)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("quote ID", 1))
	assert.EqualError(t, ValidateID("quote ID", 0), "quote ID must be a positive integer, got 0")
	assert.Error(t, ValidateID("item ID", -5))
}

func TestValidateCredentials(t *testing.T) {
	assert.NoError(t, ValidateCredentials("ana@luminox.com.br", "secret"))

	err := ValidateCredentials("not-an-email", "")
	assert.ErrorContains(t, err, "email")
	assert.ErrorContains(t, err, "password")
}

func validOrcamento() client.OrcamentoInput {
	return client.OrcamentoInput{ClienteID: 1, Tipo: client.TipoSpot, Status: client.StatusRascunho, Moeda: "BRL"}
}

func TestValidateOrcamentoInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*client.OrcamentoInput)
		wantErr string
	}{
		{"valid spot", func(*client.OrcamentoInput) {}, ""},
		{"valid contract", func(in *client.OrcamentoInput) { in.Tipo = client.TipoContrato; in.ContratoID = ptr(int64(4)) }, ""},
		{"missing customer", func(in *client.OrcamentoInput) { in.ClienteID = 0 }, "cliente_id"},
		{"unknown type", func(in *client.OrcamentoInput) { in.Tipo = "LEASING" }, "tipo"},
		{"unknown status", func(in *client.OrcamentoInput) { in.Status = "PAGO" }, "status"},
		{"lower-case currency", func(in *client.OrcamentoInput) { in.Moeda = "brl" }, "moeda"},
		{"long currency", func(in *client.OrcamentoInput) { in.Moeda = "REAL" }, "moeda"},
		{"contract without contract id", func(in *client.OrcamentoInput) { in.Tipo = client.TipoContrato }, "contrato_id"},
		{"negative discount", func(in *client.OrcamentoInput) { in.Desconto = ptr(-1.0) }, "desconto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validOrcamento()
			tt.mutate(&in)
			err := ValidateOrcamentoInput(in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateOrcamentoItemInput(t *testing.T) {
	tests := []struct {
		name    string
		in      client.OrcamentoItemInput
		wantErr string
	}{
		{"hh", client.OrcamentoItemInput{ItemTipo: client.ItemHH, TipoHH: ptr(client.HHExtra), Quantidade: 8}, ""},
		{"material", client.OrcamentoItemInput{ItemTipo: client.ItemMaterial, MaterialID: ptr(int64(2)), Quantidade: 1}, ""},
		{"livre", client.OrcamentoItemInput{ItemTipo: client.ItemLivre, Descricao: ptr("Frete"), PrecoUnitario: ptr(150.0), Quantidade: 1}, ""},
		{"unknown kind", client.OrcamentoItemInput{ItemTipo: "OUTRO", Quantidade: 1}, "item_tipo"},
		{"zero quantity", client.OrcamentoItemInput{ItemTipo: client.ItemMaterial, MaterialID: ptr(int64(2))}, "quantidade"},
		{"hh without rate", client.OrcamentoItemInput{ItemTipo: client.ItemHH, Quantidade: 1}, "tipo_hh"},
		{"hh with unknown rate", client.OrcamentoItemInput{ItemTipo: client.ItemHH, TipoHH: ptr("NOTURNO"), Quantidade: 1}, "tipo_hh"},
		{"material without material", client.OrcamentoItemInput{ItemTipo: client.ItemMaterial, Quantidade: 1}, "material_id"},
		{"livre without price", client.OrcamentoItemInput{ItemTipo: client.ItemLivre, Descricao: ptr("Frete"), Quantidade: 1}, "preco_unitario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOrcamentoItemInput(tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateOrcamentoItemPatch(t *testing.T) {
	assert.EqualError(t, ValidateOrcamentoItemPatch(client.OrcamentoItemPatch{}), "nothing to update")
	assert.NoError(t, ValidateOrcamentoItemPatch(client.OrcamentoItemPatch{Quantidade: ptr(2.5)}))
	assert.ErrorContains(t, ValidateOrcamentoItemPatch(client.OrcamentoItemPatch{ItemTipo: ptr("X")}), "item_tipo")
	assert.ErrorContains(t, ValidateOrcamentoItemPatch(client.OrcamentoItemPatch{PrecoUnitario: ptr(-3.0)}), "preco_unitario")
}
