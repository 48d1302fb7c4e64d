package xmlinvoice

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
)

var _ inventory.InvoiceXMLParser = (*Parser)(nil)

// Parser interpreta facturas XML de proveedor. El formato esperado:
//
//	<Invoice>
//	  <Supplier><TaxID>900123456-7</TaxID></Supplier>
//	  <IssueDate>2026-08-01</IssueDate>
//	  <Lines>
//	    <Line>
//	      <SKU>TV-55-NEGRO</SKU>
//	      <Quantity>3</Quantity>
//	      <UnitPrice>1500000.00</UnitPrice>
//	      <Serials><Serial>SN-001</Serial><Serial>SN-002</Serial><Serial>SN-003</Serial></Serials>
//	    </Line>
//	  </Lines>
//	</Invoice>
//
// Los prefijos de namespace se ignoran al buscar elementos (los
// proveedores los usan de forma inconsistente).
type Parser struct{}

// NewParser construye el parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse extrae los datos de la factura.
func (p *Parser) Parse(data []byte) (*inventory.ParsedInvoice, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("xmlinvoice: parsear XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("xmlinvoice: documento sin raíz")
	}

	invoice := &inventory.ParsedInvoice{}

	supplier := findChild(root, "Supplier")
	if supplier == nil {
		return nil, fmt.Errorf("xmlinvoice: falta el elemento Supplier")
	}
	taxID := findChild(supplier, "TaxID")
	if taxID == nil || strings.TrimSpace(taxID.Text()) == "" {
		return nil, fmt.Errorf("xmlinvoice: falta Supplier/TaxID")
	}
	invoice.SupplierTaxID = strings.TrimSpace(taxID.Text())

	if issue := findChild(root, "IssueDate"); issue != nil {
		raw := strings.TrimSpace(issue.Text())
		if raw != "" {
			date, err := parseDate(raw)
			if err != nil {
				return nil, fmt.Errorf("xmlinvoice: IssueDate %q: %w", raw, err)
			}
			invoice.IssueDate = &date
		}
	}

	lines := findChild(root, "Lines")
	if lines == nil {
		return nil, fmt.Errorf("xmlinvoice: falta el elemento Lines")
	}
	for _, lineEl := range childrenByTag(lines, "Line") {
		line, err := p.parseLine(lineEl)
		if err != nil {
			return nil, err
		}
		invoice.Lines = append(invoice.Lines, line)
	}
	if len(invoice.Lines) == 0 {
		return nil, fmt.Errorf("xmlinvoice: la factura no tiene líneas")
	}
	return invoice, nil
}

func (p *Parser) parseLine(el *etree.Element) (inventory.ParsedInvoiceLine, error) {
	var line inventory.ParsedInvoiceLine

	sku := findChild(el, "SKU")
	if sku == nil || strings.TrimSpace(sku.Text()) == "" {
		return line, fmt.Errorf("xmlinvoice: línea sin SKU")
	}
	line.SKU = strings.TrimSpace(sku.Text())

	qtyEl := findChild(el, "Quantity")
	if qtyEl == nil {
		return line, fmt.Errorf("xmlinvoice: línea %s sin Quantity", line.SKU)
	}
	qty, err := strconv.Atoi(strings.TrimSpace(qtyEl.Text()))
	if err != nil {
		return line, fmt.Errorf("xmlinvoice: línea %s: Quantity inválida: %w", line.SKU, err)
	}
	line.Quantity = qty

	priceEl := findChild(el, "UnitPrice")
	if priceEl == nil {
		return line, fmt.Errorf("xmlinvoice: línea %s sin UnitPrice", line.SKU)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(priceEl.Text()))
	if err != nil {
		return line, fmt.Errorf("xmlinvoice: línea %s: UnitPrice inválido: %w", line.SKU, err)
	}
	line.UnitPrice = price

	if serials := findChild(el, "Serials"); serials != nil {
		for _, serialEl := range childrenByTag(serials, "Serial") {
			if s := strings.TrimSpace(serialEl.Text()); s != "" {
				line.SerialNumbers = append(line.SerialNumbers, s)
			}
		}
	}
	return line, nil
}

// Fingerprint calcula la huella canónica del documento: C14N y SHA-256
// en hex. Dos serializaciones distintas del mismo documento (espacios,
// orden de atributos, declaraciones de namespace) producen la misma huella.
func (p *Parser) Fingerprint(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("xmlinvoice: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// findChild busca el primer hijo directo con el tag dado, ignorando el
// prefijo de namespace.
func findChild(el *etree.Element, tag string) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

func childrenByTag(el *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == tag {
			out = append(out, child)
		}
	}
	return out
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("formato de fecha no reconocido")
}
