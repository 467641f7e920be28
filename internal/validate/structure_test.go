package validate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/xmlconv/internal/validate"
)

func TestStructure(t *testing.T) {
	xml := `<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
		<NFe><infNFe Id="NFe123"><ide><nNF>1</nNF></ide></infNFe></NFe>
	</nfeProc>`

	report := validate.Structure(xml, []string{"NFe", "ide", "missing"})
	assert.True(t, report.Valid)
	assert.Equal(t, "nfeProc", report.RootElement)
	assert.Equal(t, "http://www.portalfiscal.inf.br/nfe", report.Namespace)
	assert.Equal(t, 5, report.TotalElements)
	// versao and Id count; xmlns does not.
	assert.Equal(t, 2, report.AttributesCount)
	assert.Equal(t, []string{"NFe", "ide"}, report.RequiredFound)
	assert.Equal(t, []string{"missing"}, report.MissingElements)
}

func TestStructure_Invalid(t *testing.T) {
	report := validate.Structure(`<broken>`, nil)
	assert.False(t, report.Valid)
	assert.NotEmpty(t, report.Error)
}

func TestNFeStructure(t *testing.T) {
	xml := `<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe">
		<NFe><infNFe Id="NFe35200114200166000187550010000000046550000046">
			<ide/><emit/><dest/><det/><total/><transp/><pag/>
		</infNFe></NFe>
		<protNFe/>
	</nfeProc>`

	report := validate.NFeStructure(xml)
	assert.True(t, report.Valid)
	assert.True(t, report.IsNFe)
	assert.True(t, report.CorrectNamespace)
	assert.True(t, report.HasKey)
	assert.Equal(t, "NFe35200114200166000187550010000000046550000046", report.Key)
	assert.Empty(t, report.MissingElements)
}

func TestNFeStructure_NotNFe(t *testing.T) {
	report := validate.NFeStructure(`<person><name>Ana</name></person>`)
	assert.True(t, report.Valid)
	assert.False(t, report.IsNFe)
	assert.False(t, report.CorrectNamespace)
	assert.False(t, report.HasKey)
}

func TestNFeStructure_ShortKey(t *testing.T) {
	report := validate.NFeStructure(`<nfeProc><NFe><infNFe Id="NFe123"/></NFe></nfeProc>`)
	assert.True(t, report.IsNFe)
	assert.False(t, report.HasKey)
	assert.Equal(t, "NFe123", report.Key)
}

func TestSniffEncoding(t *testing.T) {
	dir := t.TempDir()

	declared := filepath.Join(dir, "declared.xml")
	require.NoError(t, os.WriteFile(declared,
		[]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><root/>`), 0o644))
	assert.Equal(t, "iso-8859-1", validate.SniffEncoding(declared))

	plain := filepath.Join(dir, "plain.xml")
	require.NoError(t, os.WriteFile(plain, []byte(`<root/>`), 0o644))
	assert.Equal(t, "utf-8", validate.SniffEncoding(plain))

	assert.Equal(t, "", validate.SniffEncoding(filepath.Join(dir, "missing.xml")))
}
