package client

import (
	"encoding/json"
)

// Quote types.
const (
	TipoContrato = "CONTRATO"
	TipoSpot     = "SPOT"
)

// Quote statuses.
const (
	StatusRascunho  = "RASCUNHO"
	StatusEnviado   = "ENVIADO"
	StatusAceito    = "ACEITO"
	StatusCancelado = "CANCELADO"
)

// Line item kinds: man-hours, material, or a free-form item with a manual price.
const (
	ItemHH       = "HH"
	ItemMaterial = "MATERIAL"
	ItemLivre    = "LIVRE"
)

// Man-hour rates.
const (
	HHRegular = "REGULAR"
	HHExtra   = "EXTRA"
	HHFeriado = "FERIADO"
)

// Orcamento is a quote as returned by the API. Older API versions use
// cliente, valor_total, valor and criado_em; fields the client does not know
// about are kept in Extra.
type Orcamento struct {
	ID          int64       `json:"id"`
	Codigo      string      `json:"codigo,omitempty"`
	Numero      string      `json:"numero,omitempty"`
	ClienteID   int64       `json:"cliente_id"`
	ClienteNome string      `json:"cliente_nome,omitempty"`
	Cliente     *ClienteRef `json:"cliente,omitempty"`
	Tipo        string      `json:"tipo"`
	Status      string      `json:"status"`
	ContratoID  *int64      `json:"contrato_id,omitempty"`
	Moeda       string      `json:"moeda"`
	Titulo      string      `json:"titulo,omitempty"`
	Observacoes string      `json:"observacoes,omitempty"`
	Subtotal    float64     `json:"subtotal"`
	Desconto    float64     `json:"desconto"`
	Acrescimo   float64     `json:"acrescimo"`
	Total       float64     `json:"total"`
	ValorTotal  *float64    `json:"valor_total,omitempty"`
	Valor       *float64    `json:"valor,omitempty"`
	CreatedAt   string      `json:"created_at"`
	CriadoEm    *string     `json:"criado_em,omitempty"`
	UpdatedAt   string      `json:"updated_at"`

	Extra map[string]any `json:"-"`
}

var orcamentoKeys = []string{
	"id", "codigo", "numero", "cliente_id", "cliente_nome", "cliente", "tipo", "status",
	"contrato_id", "moeda", "titulo", "observacoes", "subtotal", "desconto", "acrescimo",
	"total", "valor_total", "valor", "created_at", "criado_em", "updated_at",
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (o *Orcamento) UnmarshalJSON(data []byte) error {
	type Alias Orcamento
	if err := json.Unmarshal(data, (*Alias)(o)); err != nil {
		return err
	}
	extra, err := unknownFields(data, orcamentoKeys)
	if err != nil {
		return err
	}
	o.Extra = extra
	return nil
}

// ClienteRef is the customer embedded in a quote, sent either as a bare name
// or as an object.
type ClienteRef struct {
	ID   int64   `json:"id,omitempty"`
	Nome *string `json:"nome,omitempty"`
	Name *string `json:"name,omitempty"`

	text   string
	isText bool
}

// NewClienteText returns a ClienteRef sent as a bare name.
func NewClienteText(name string) *ClienteRef {
	return &ClienteRef{text: name, isText: true}
}

// Text returns the bare name, if the customer was sent as one.
func (r *ClienteRef) Text() (string, bool) {
	return r.text, r.isText
}

func (r *ClienteRef) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*r = ClienteRef{text: text, isText: true}
		return nil
	}
	type Alias ClienteRef
	var obj Alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = ClienteRef(obj)
	return nil
}

func (r ClienteRef) MarshalJSON() ([]byte, error) {
	if r.isText {
		return json.Marshal(r.text)
	}
	type Alias ClienteRef
	return json.Marshal(Alias(r))
}

// OrcamentoInput is the payload for creating a quote. Totals are optional;
// the backend may compute them.
type OrcamentoInput struct {
	ClienteID   int64    `json:"cliente_id"`
	Tipo        string   `json:"tipo"`
	Status      string   `json:"status"`
	ContratoID  *int64   `json:"contrato_id,omitempty"`
	Moeda       string   `json:"moeda"`
	Titulo      *string  `json:"titulo,omitempty"`
	Observacoes *string  `json:"observacoes,omitempty"`
	Subtotal    *float64 `json:"subtotal,omitempty"`
	Desconto    *float64 `json:"desconto,omitempty"`
	Acrescimo   *float64 `json:"acrescimo,omitempty"`
	Total       *float64 `json:"total,omitempty"`
}

// OrcamentoItem is a quote line item as returned by the API.
type OrcamentoItem struct {
	ID            int64    `json:"id"`
	OrcamentoID   int64    `json:"orcamento_id"`
	ItemTipo      string   `json:"item_tipo"`
	MaquinaID     *int64   `json:"maquina_id,omitempty"`
	TipoHH        *string  `json:"tipo_hh,omitempty"`
	MaterialID    *int64   `json:"material_id,omitempty"`
	Descricao     *string  `json:"descricao,omitempty"`
	UomID         *int64   `json:"uom_id,omitempty"`
	Quantidade    float64  `json:"quantidade"`
	PrecoUnitario *float64 `json:"preco_unitario,omitempty"`
	TotalItem     float64  `json:"total_item"`
	CreatedAt     string   `json:"created_at,omitempty"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
}

// OrcamentoItemInput is the payload for creating a line item. The quote ID
// travels in the URL and total_item is computed by the backend.
type OrcamentoItemInput struct {
	ItemTipo      string   `json:"item_tipo"`
	MaquinaID     *int64   `json:"maquina_id,omitempty"`
	TipoHH        *string  `json:"tipo_hh,omitempty"`
	MaterialID    *int64   `json:"material_id,omitempty"`
	Descricao     *string  `json:"descricao,omitempty"`
	UomID         *int64   `json:"uom_id,omitempty"`
	Quantidade    float64  `json:"quantidade"`
	PrecoUnitario *float64 `json:"preco_unitario,omitempty"`
}

// OrcamentoItemPatch is a partial update of a line item. Nil fields are not sent.
type OrcamentoItemPatch struct {
	ItemTipo      *string  `json:"item_tipo,omitempty"`
	MaquinaID     *int64   `json:"maquina_id,omitempty"`
	TipoHH        *string  `json:"tipo_hh,omitempty"`
	MaterialID    *int64   `json:"material_id,omitempty"`
	Descricao     *string  `json:"descricao,omitempty"`
	UomID         *int64   `json:"uom_id,omitempty"`
	Quantidade    *float64 `json:"quantidade,omitempty"`
	PrecoUnitario *float64 `json:"preco_unitario,omitempty"`
}

// Cliente is a customer. Fields the client does not know about are kept in Extra.
type Cliente struct {
	ID           int64          `json:"id"`
	Nome         string         `json:"nome,omitempty"`
	NomeFantasia string         `json:"nome_fantasia,omitempty"`
	RazaoSocial  string         `json:"razao_social,omitempty"`
	Extra        map[string]any `json:"-"`
}

// UnmarshalJSON implements custom unmarshalling for Cliente to keep unknown fields.
func (c *Cliente) UnmarshalJSON(data []byte) error {
	type Alias Cliente
	if err := json.Unmarshal(data, (*Alias)(c)); err != nil {
		return err
	}
	extra, err := unknownFields(data, []string{"id", "nome", "nome_fantasia", "razao_social"})
	if err != nil {
		return err
	}
	c.Extra = extra
	return nil
}

// unknownFields returns the keys of the JSON object data that are not in known,
// or nil when there are none.
func unknownFields(data []byte, known []string) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}
