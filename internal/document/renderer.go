package document

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/nexusmededucacao/nexusmed-contratos/internal/format"
	"github.com/nexusmededucacao/nexusmed-contratos/internal/models"
)

// tableMarker identifies the payment tables inside the template: the first
// table whose header row mentions it receives the entry schedule, the second
// the balance schedule.
const tableMarker = "Vencimento"

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Data maps placeholder names to their rendered values.
type Data map[string]string

// Result is a rendered contract draft. Warnings report recoverable template
// problems (unknown placeholders, missing payment tables) that the operator
// should see without the generation failing.
type Result struct {
	Docx     []byte
	Warnings []string
}

// Render fills a template in two phases: placeholder substitution over every
// text node, then payment-schedule injection into the marked tables. Unknown
// placeholders render as empty text so a stale template never leaks braces
// into a signed contract.
func Render(template []byte, data Data, entry, balance []models.Installment) (*Result, error) {
	archive, err := OpenArchive(template)
	if err != nil {
		return nil, err
	}
	documentXML, ok := archive.Part(DocumentPart)
	if !ok {
		return nil, fmt.Errorf("template has no %s part", DocumentPart)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(documentXML); err != nil {
		return nil, fmt.Errorf("parse template body: %w", err)
	}

	result := &Result{}
	substitutePlaceholders(doc, data, result)
	injectSchedules(doc, entry, balance, result)

	rendered, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize rendered body: %w", err)
	}
	archive.SetPart(DocumentPart, rendered)

	result.Docx, err = archive.Bytes()
	if err != nil {
		return nil, err
	}
	return result, nil
}

func substitutePlaceholders(doc *etree.Document, data Data, result *Result) {
	missing := make(map[string]bool)
	for _, text := range doc.FindElements("//w:t") {
		content := text.Text()
		if !strings.Contains(content, "{{") {
			continue
		}
		replaced := placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
			key := placeholderPattern.FindStringSubmatch(match)[1]
			value, ok := data[key]
			if !ok {
				missing[key] = true
				return ""
			}
			return value
		})
		text.SetText(replaced)
	}
	for key := range missing {
		result.Warnings = append(result.Warnings, fmt.Sprintf("placeholder %q has no value", key))
	}
}

func injectSchedules(doc *etree.Document, entry, balance []models.Installment, result *Result) {
	var targets []*etree.Element
	for _, tbl := range doc.FindElements("//w:tbl") {
		if isPaymentTable(tbl) {
			targets = append(targets, tbl)
		}
	}

	schedules := [][]models.Installment{entry, balance}
	labels := []string{"entry", "balance"}
	for i, schedule := range schedules {
		if i >= len(targets) {
			if len(schedule) > 0 {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("template has no %s payment table; %d installment(s) omitted", labels[i], len(schedule)))
			}
			continue
		}
		fillPaymentTable(targets[i], schedule)
	}
}

func isPaymentTable(tbl *etree.Element) bool {
	rows := tbl.SelectElements("w:tr")
	if len(rows) == 0 {
		return false
	}
	for _, text := range rows[0].FindElements(".//w:t") {
		if strings.Contains(text.Text(), tableMarker) {
			return true
		}
	}
	return false
}

// fillPaymentTable drops every data row below the header and appends one row
// per installment, formatted the way the rest of the contract formats dates
// and money.
func fillPaymentTable(tbl *etree.Element, schedule []models.Installment) {
	rows := tbl.SelectElements("w:tr")
	for _, row := range rows[1:] {
		tbl.RemoveChild(row)
	}
	for _, item := range schedule {
		newTableRow(tbl, []string{
			item.Label,
			format.DateBR(item.DueDate),
			format.Currency(item.Amount),
			item.Method,
		}, false)
	}
}
