package nfe

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/rezonia/xmlconv/internal/value"
)

// Extractor pulls the fiscally relevant fields out of a converted NFe
// document. It is safe for concurrent use; the only state is a counter.
type Extractor struct {
	extracted atomic.Int64
}

// NewExtractor creates an NFe extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract walks a converted document and projects the NFe business fields
// into a flat ordered map. The second return is false when the document does
// not have the nfeProc/NFe/infNFe shape; that is a normal outcome for
// non-NFe input, not an error.
func (e *Extractor) Extract(root any) (*value.Map, bool) {
	nfeProc := childMap(root, "nfeProc")
	nfe := childMap(nfeProc, "NFe")
	infNFe := childMap(nfe, "infNFe")
	if infNFe == nil {
		return nil, false
	}

	info := value.NewMap()

	extractIdentification(infNFe, info)
	extractParty(childMap(infNFe, "emit"), "enderEmit", "emitente_", info)
	extractParty(childMap(infNFe, "dest"), "enderDest", "destinatario_", info)
	extractTotals(childMap(infNFe, "total"), info)
	extractItems(infNFe, info)
	extractProtocol(childMap(nfeProc, "protNFe"), info)

	e.extracted.Add(1)
	return info, true
}

// Summary extracts a document and builds its executive summary. The second
// return is false when the document is not an NFe.
func (e *Extractor) Summary(root any) (*value.Map, bool) {
	info, ok := e.Extract(root)
	if !ok {
		return nil, false
	}
	return Summarize(info), true
}

// Summarize builds the executive summary of an already extracted document:
// document type, number and series, parties, total, issue date, status and
// item count. Missing fields fall back to "N/A". Callers that already hold
// the Extract result use this directly so the document is not extracted (and
// counted) twice.
func Summarize(info *value.Map) *value.Map {
	summary := value.NewMap()
	summary.Set("tipo", "NFe - Nota Fiscal Eletrônica")
	summary.Set("numero_serie", orNA(info, "numero")+"/"+orNA(info, "serie"))
	summary.Set("emitente", orNA(info, "emitente_nome"))
	summary.Set("destinatario", orNA(info, "destinatario_nome"))
	summary.Set("valor_total", orNA(info, "valor_total"))
	summary.Set("data_emissao", orNA(info, "data_emissao"))
	summary.Set("status", orNA(info, "status_descricao"))
	if count, ok := info.Get("quantidade_itens"); ok {
		summary.Set("itens", count)
	} else {
		summary.Set("itens", int64(0))
	}
	return summary
}

// Extracted returns how many documents were successfully extracted.
func (e *Extractor) Extracted() int64 {
	return e.extracted.Load()
}

// nfeKeyPrefix is the fixed literal prepended to the 44-digit document key
// in the infNFe Id attribute.
const nfeKeyPrefix = "NFe"

func extractIdentification(infNFe *value.Map, info *value.Map) {
	ide := childMap(infNFe, "ide")
	copyField(ide, "nNF", info, "numero")
	copyField(ide, "serie", info, "serie")
	copyField(ide, "dhEmi", info, "data_emissao")
	copyField(ide, "natOp", info, "natureza_operacao")
	copyField(ide, "cUF", info, "codigo_uf")

	attrs := childMap(infNFe, "@attributes")
	if id, ok := fieldString(attrs, "Id"); ok && strings.HasPrefix(id, nfeKeyPrefix) {
		info.Set("chave_nfe", id[len(nfeKeyPrefix):])
	}
}

// extractParty handles emit and dest, which share a shape: name, trade name,
// CNPJ or CPF, state registration, and a nested address element.
func extractParty(party *value.Map, addressKey, prefix string, info *value.Map) {
	if party == nil {
		return
	}

	copyField(party, "xNome", info, prefix+"nome")
	if prefix == "emitente_" {
		copyField(party, "xFant", info, prefix+"fantasia")
	}
	if cnpj, ok := fieldString(party, "CNPJ"); ok {
		info.Set(prefix+"cnpj", FormatCNPJ(cnpj))
	}
	if cpf, ok := fieldString(party, "CPF"); ok {
		info.Set(prefix+"cpf", FormatCPF(cpf))
	}
	if prefix == "emitente_" {
		copyField(party, "IE", info, prefix+"inscricao_estadual")
	}

	address := childMap(party, addressKey)
	if address == nil {
		return
	}

	var parts []string
	for _, key := range []string{"xLgr", "nro", "xCpl"} {
		if s, ok := fieldString(address, key); ok {
			parts = append(parts, s)
		}
	}
	if len(parts) > 0 {
		info.Set(prefix+"endereco", strings.Join(parts, ", "))
	}

	copyField(address, "xBairro", info, prefix+"bairro")
	copyField(address, "xMun", info, prefix+"municipio")
	copyField(address, "UF", info, prefix+"uf")
	if cep, ok := fieldString(address, "CEP"); ok {
		info.Set(prefix+"cep", FormatCEP(cep))
	}
}

func extractTotals(total *value.Map, info *value.Map) {
	icmsTot := childMap(total, "ICMSTot")
	if icmsTot == nil {
		return
	}

	currencyFields := []struct{ src, dst string }{
		{"vNF", "valor_total"},
		{"vProd", "valor_produtos"},
		{"vICMS", "valor_icms"},
		{"vIPI", "valor_ipi"},
		{"vPIS", "valor_pis"},
		{"vCOFINS", "valor_cofins"},
	}
	for _, f := range currencyFields {
		if v, ok := icmsTot.Get(f.src); ok {
			if formatted, ok := FormatCurrency(v); ok {
				info.Set(f.dst, formatted)
			}
		}
	}
}

func extractItems(infNFe *value.Map, info *value.Map) {
	det, ok := infNFe.Get("det")
	if !ok || det == nil {
		return
	}

	// det is a single map for one line item, a list for several.
	var items value.List
	switch t := det.(type) {
	case value.List:
		items = t
	default:
		items = value.List{det}
	}

	info.Set("quantidade_itens", int64(len(items)))

	products := make(value.List, 0, len(items))
	for _, item := range items {
		prod := childMap(item, "prod")
		if prod == nil {
			continue
		}

		product := value.NewMap()
		copyField(prod, "xProd", product, "descricao")
		if qty, ok := fieldFloat(prod, "qCom"); ok {
			product.Set("quantidade", qty)
		}
		copyField(prod, "uCom", product, "unidade")
		if v, ok := prod.Get("vUnCom"); ok {
			if formatted, ok := FormatCurrency(v); ok {
				product.Set("valor_unitario", formatted)
			}
		}
		if v, ok := prod.Get("vProd"); ok {
			if formatted, ok := FormatCurrency(v); ok {
				product.Set("valor_total", formatted)
			}
		}
		copyField(prod, "NCM", product, "ncm")
		copyField(prod, "CFOP", product, "cfop")

		if product.Len() > 0 {
			products = append(products, product)
		}
	}
	info.Set("produtos", products)
}

func extractProtocol(protNFe *value.Map, info *value.Map) {
	infProt := childMap(protNFe, "infProt")
	if infProt == nil {
		return
	}

	copyField(infProt, "nProt", info, "numero_protocolo")
	copyField(infProt, "dhRecbto", info, "data_autorizacao")
	copyField(infProt, "cStat", info, "status_codigo")
	copyField(infProt, "xMotivo", info, "status_descricao")
}

// childMap descends one level, returning nil when the key is absent or the
// value is not a map. A nil receiver propagates, so lookups chain safely.
func childMap(v any, key string) *value.Map {
	m, ok := v.(*value.Map)
	if !ok || m == nil {
		return nil
	}
	child, ok := m.Get(key)
	if !ok {
		return nil
	}
	childM, ok := child.(*value.Map)
	if !ok {
		return nil
	}
	return childM
}

func copyField(src *value.Map, srcKey string, dst *value.Map, dstKey string) {
	if src == nil {
		return
	}
	if v, ok := src.Get(srcKey); ok {
		dst.Set(dstKey, v)
	}
}

func fieldString(m *value.Map, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.Get(key)
	if !ok {
		return "", false
	}
	s := stringify(v)
	return s, s != ""
}

func fieldFloat(m *value.Map, key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	v, ok := m.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func orNA(info *value.Map, key string) string {
	if v, ok := info.Get(key); ok {
		if s := stringify(v); s != "" {
			return s
		}
	}
	return "N/A"
}
