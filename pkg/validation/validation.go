// Package validation checks user input before it is sent to the API.
package validation

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/luminox/luminox/client"
)

const (
	MinWorkers = 1
	MaxWorkers = 20
)

var (
	tipos      = []any{client.TipoContrato, client.TipoSpot}
	statuses   = []any{client.StatusRascunho, client.StatusEnviado, client.StatusAceito, client.StatusCancelado}
	itemTipos  = []any{client.ItemHH, client.ItemMaterial, client.ItemLivre}
	tiposHH    = []any{client.HHRegular, client.HHExtra, client.HHFeriado}
	nonNegRule = validation.Min(0.0)
)

func ValidateWorkerCount(workers int) error {
	if workers < MinWorkers || workers > MaxWorkers {
		return fmt.Errorf("worker count must be between %d and %d, got %d", MinWorkers, MaxWorkers, workers)
	}
	return nil
}

// ValidateID checks that id is a positive integer. name is used in the message.
func ValidateID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%s must be a positive integer, got %d", name, id)
	}
	return nil
}

func ValidateCredentials(email, password string) error {
	return validation.Errors{
		"email":    validation.Validate(email, validation.Required, is.Email),
		"password": validation.Validate(password, validation.Required),
	}.Filter()
}

// ValidateOrcamentoInput checks a new quote. CONTRATO quotes must reference a contract.
func ValidateOrcamentoInput(in client.OrcamentoInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ClienteID, validation.Required, validation.Min(int64(1))),
		validation.Field(&in.Tipo, validation.Required, validation.In(tipos...)),
		validation.Field(&in.Status, validation.Required, validation.In(statuses...)),
		validation.Field(&in.Moeda, validation.Required, validation.Length(3, 3), is.UpperCase),
		validation.Field(&in.ContratoID, requiredWhen(in.Tipo == client.TipoContrato, validation.Min(int64(1)))...),
		validation.Field(&in.Subtotal, nonNegRule),
		validation.Field(&in.Desconto, nonNegRule),
		validation.Field(&in.Acrescimo, nonNegRule),
		validation.Field(&in.Total, nonNegRule),
	)
}

// ValidateOrcamentoItemInput checks a new line item. Each kind needs its own reference:
// HH a man-hour rate, MATERIAL a material, LIVRE a description and a unit price.
func ValidateOrcamentoItemInput(in client.OrcamentoItemInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ItemTipo, validation.Required, validation.In(itemTipos...)),
		validation.Field(&in.Quantidade, validation.Required, validation.Min(0.0)),
		validation.Field(&in.TipoHH, requiredWhen(in.ItemTipo == client.ItemHH, validation.In(tiposHH...))...),
		validation.Field(&in.MaterialID, requiredWhen(in.ItemTipo == client.ItemMaterial)...),
		validation.Field(&in.Descricao, requiredWhen(in.ItemTipo == client.ItemLivre)...),
		validation.Field(&in.PrecoUnitario, requiredWhen(in.ItemTipo == client.ItemLivre, nonNegRule)...),
	)
}

// ValidateOrcamentoItemPatch checks the fields a partial update sets. At least one must be set.
func ValidateOrcamentoItemPatch(p client.OrcamentoItemPatch) error {
	if p == (client.OrcamentoItemPatch{}) {
		return fmt.Errorf("nothing to update")
	}
	return validation.ValidateStruct(&p,
		validation.Field(&p.ItemTipo, validation.In(itemTipos...)),
		validation.Field(&p.TipoHH, validation.In(tiposHH...)),
		validation.Field(&p.Quantidade, validation.Min(0.0)),
		validation.Field(&p.PrecoUnitario, nonNegRule),
	)
}

// requiredWhen prepends validation.Required to rules when cond holds.
func requiredWhen(cond bool, rules ...validation.Rule) []validation.Rule {
	if cond {
		return append([]validation.Rule{validation.Required}, rules...)
	}
	return rules
}
