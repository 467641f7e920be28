package validate

import (
	"os"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/xmlconv/internal/convert"
)

// StructureReport describes the shape of an XML document.
type StructureReport struct {
	Valid           bool     `json:"valid"`
	RootElement     string   `json:"root_element,omitempty"`
	Namespace       string   `json:"namespace,omitempty"`
	TotalElements   int      `json:"total_elements"`
	AttributesCount int      `json:"attributes_count"`
	RequiredFound   []string `json:"required_elements_found,omitempty"`
	MissingElements []string `json:"missing_elements,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// NFeReport extends StructureReport with NFe-specific checks.
type NFeReport struct {
	StructureReport
	IsNFe            bool   `json:"is_nfe"`
	CorrectNamespace bool   `json:"correct_namespace"`
	HasKey           bool   `json:"has_nfe_key"`
	Key              string `json:"nfe_key,omitempty"`
}

// nfeNamespace is the fixed namespace of Brazilian NFe documents.
const nfeNamespace = "http://www.portalfiscal.inf.br/nfe"

// nfeRequiredElements are the sections a complete authorized NFe carries.
var nfeRequiredElements = []string{
	"nfeProc", "NFe", "infNFe", "ide", "emit", "dest",
	"det", "total", "transp", "pag", "protNFe",
}

// Structure parses content and reports root element, namespace, element and
// attribute counts, and which of the required element names are present.
func Structure(content string, required []string) StructureReport {
	var report StructureReport

	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		report.Error = err.Error()
		return report
	}
	root := doc.Root()
	if root == nil {
		report.Error = "no root element"
		return report
	}

	report.Valid = true
	report.RootElement = convert.StripNamespace(root.Tag)
	report.Namespace = defaultNamespace(root)

	present := make(map[string]bool)
	walkElements(root, func(el *etree.Element) {
		report.TotalElements++
		report.AttributesCount += countAttributes(el)
		present[convert.StripNamespace(el.Tag)] = true
	})

	for _, name := range required {
		if present[name] {
			report.RequiredFound = append(report.RequiredFound, name)
		} else {
			report.MissingElements = append(report.MissingElements, name)
		}
	}
	return report
}

// NFeStructure validates content against the expected NFe document shape.
func NFeStructure(content string) NFeReport {
	report := NFeReport{StructureReport: Structure(content, nfeRequiredElements)}
	if !report.Valid {
		return report
	}

	report.IsNFe = report.RootElement == "nfeProc" || report.RootElement == "NFe"
	report.CorrectNamespace = strings.Contains(content, nfeNamespace)

	doc := etree.NewDocument()
	if err := doc.ReadFromString(content); err != nil {
		return report
	}
	walkElements(doc.Root(), func(el *etree.Element) {
		if convert.StripNamespace(el.Tag) != "infNFe" {
			return
		}
		id := el.SelectAttrValue("Id", "")
		report.Key = id
		report.HasKey = strings.HasPrefix(id, "NFe") && len(id) == 47
	})
	return report
}

var encodingDeclPattern = regexp.MustCompile(`(?i)encoding=["']([^"']+)["']`)

// SniffEncoding reads the XML declaration at the top of a file and returns
// the declared encoding, lowercased. Files without a declaration default to
// "utf-8". Returns "" when the header cannot be read.
func SniffEncoding(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	header := make([]byte, 100)
	n, err := f.Read(header)
	if n == 0 && err != nil {
		return ""
	}

	if m := encodingDeclPattern.FindSubmatch(header[:n]); m != nil {
		return strings.ToLower(string(m[1]))
	}
	return "utf-8"
}

func walkElements(el *etree.Element, fn func(*etree.Element)) {
	if el == nil {
		return
	}
	fn(el)
	for _, child := range el.ChildElements() {
		walkElements(child, fn)
	}
}

func defaultNamespace(root *etree.Element) string {
	for _, a := range root.Attr {
		if a.Key == "xmlns" && a.Space == "" {
			return a.Value
		}
	}
	return ""
}

func countAttributes(el *etree.Element) int {
	n := 0
	for _, a := range el.Attr {
		if a.Key == "xmlns" || a.Space == "xmlns" {
			continue
		}
		n++
	}
	return n
}
