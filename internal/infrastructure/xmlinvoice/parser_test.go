package xmlinvoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/infrastructure/xmlinvoice"
)

const facturaEjemplo = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice>
  <Supplier><TaxID>900123456-7</TaxID></Supplier>
  <IssueDate>2026-08-01</IssueDate>
  <Lines>
    <Line>
      <SKU>TV-55-NEGRO</SKU>
      <Quantity>2</Quantity>
      <UnitPrice>1500000.00</UnitPrice>
      <Serials><Serial>SN-001</Serial><Serial>SN-002</Serial></Serials>
    </Line>
    <Line>
      <SKU>CABLE-HDMI</SKU>
      <Quantity>10</Quantity>
      <UnitPrice>25000</UnitPrice>
    </Line>
  </Lines>
</Invoice>`

func TestParse_FacturaCompleta(t *testing.T) {
	p := xmlinvoice.NewParser()
	inv, err := p.Parse([]byte(facturaEjemplo))
	require.NoError(t, err)

	assert.Equal(t, "900123456-7", inv.SupplierTaxID)
	require.NotNil(t, inv.IssueDate)
	assert.Equal(t, "2026-08-01", inv.IssueDate.Format("2006-01-02"))

	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "TV-55-NEGRO", inv.Lines[0].SKU)
	assert.Equal(t, 2, inv.Lines[0].Quantity)
	assert.True(t, inv.Lines[0].UnitPrice.Equal(decimal.RequireFromString("1500000.00")))
	assert.Equal(t, []string{"SN-001", "SN-002"}, inv.Lines[0].SerialNumbers)

	assert.Equal(t, "CABLE-HDMI", inv.Lines[1].SKU)
	assert.Empty(t, inv.Lines[1].SerialNumbers)
}

func TestParse_IgnoraPrefijosDeNamespace(t *testing.T) {
	conNamespace := `<?xml version="1.0"?>
<inv:Invoice xmlns:inv="urn:proveedor:factura">
  <inv:Supplier><inv:TaxID>800999888-1</inv:TaxID></inv:Supplier>
  <inv:Lines>
    <inv:Line>
      <inv:SKU>SKU-X</inv:SKU>
      <inv:Quantity>1</inv:Quantity>
      <inv:UnitPrice>10.50</inv:UnitPrice>
    </inv:Line>
  </inv:Lines>
</inv:Invoice>`

	p := xmlinvoice.NewParser()
	inv, err := p.Parse([]byte(conNamespace))
	require.NoError(t, err)
	assert.Equal(t, "800999888-1", inv.SupplierTaxID)
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "SKU-X", inv.Lines[0].SKU)
}

func TestParse_SinSupplier_Falla(t *testing.T) {
	p := xmlinvoice.NewParser()
	_, err := p.Parse([]byte(`<Invoice><Lines><Line><SKU>A</SKU><Quantity>1</Quantity><UnitPrice>1</UnitPrice></Line></Lines></Invoice>`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Supplier")
}

func TestParse_SinLineas_Falla(t *testing.T) {
	p := xmlinvoice.NewParser()
	_, err := p.Parse([]byte(`<Invoice><Supplier><TaxID>1</TaxID></Supplier><Lines></Lines></Invoice>`))
	assert.Error(t, err)
}

func TestParse_CantidadInvalida_Falla(t *testing.T) {
	p := xmlinvoice.NewParser()
	_, err := p.Parse([]byte(`<Invoice><Supplier><TaxID>1</TaxID></Supplier><Lines><Line><SKU>A</SKU><Quantity>dos</Quantity><UnitPrice>1</UnitPrice></Line></Lines></Invoice>`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Quantity")
}

func TestFingerprint_EstableAnteReformateo(t *testing.T) {
	p := xmlinvoice.NewParser()

	fp1, err := p.Fingerprint([]byte(facturaEjemplo))
	require.NoError(t, err)
	require.Len(t, fp1, 64, "la huella es SHA-256 en hex")

	// El mismo documento con espacios de atributo distintos y sin la
	// declaración XML canonicaliza igual.
	reformateado := `<Invoice>
  <Supplier><TaxID>900123456-7</TaxID></Supplier>
  <IssueDate>2026-08-01</IssueDate>
  <Lines>
    <Line>
      <SKU>TV-55-NEGRO</SKU>
      <Quantity>2</Quantity>
      <UnitPrice>1500000.00</UnitPrice>
      <Serials><Serial>SN-001</Serial><Serial>SN-002</Serial></Serials>
    </Line>
    <Line>
      <SKU>CABLE-HDMI</SKU>
      <Quantity>10</Quantity>
      <UnitPrice>25000</UnitPrice>
    </Line>
  </Lines>
</Invoice>`
	fp2, err := p.Fingerprint([]byte(reformateado))
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2, "la declaración XML no altera la huella canónica")
}

func TestFingerprint_DocumentosDistintosDifieren(t *testing.T) {
	p := xmlinvoice.NewParser()
	fp1, err := p.Fingerprint([]byte(facturaEjemplo))
	require.NoError(t, err)

	otra := `<Invoice><Supplier><TaxID>OTRO</TaxID></Supplier></Invoice>`
	fp2, err := p.Fingerprint([]byte(otra))
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp2)
}
