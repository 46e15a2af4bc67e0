package document

import (
	"fmt"

	"github.com/beevik/etree"
)

// The template is generated in code rather than shipped as a binary asset:
// hand-edited DOCX files kept splitting placeholders across runs, which the
// renderer cannot see past. Building the XML ourselves guarantees each
// {{ placeholder }} lives inside a single w:t element.

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/></Types>`

const rootRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/></Relationships>`

// BuildDefaultTemplate produces the contract template DOCX with every
// placeholder the renderer knows how to fill, plus the two payment tables
// (entry first, balance second) identified by their "Vencimento" header.
func BuildDefaultTemplate() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", "http://schemas.openxmlformats.org/wordprocessingml/2006/main")
	body := root.CreateElement("w:body")

	newParagraph(body, "CONTRATO DE PRESTAÇÃO DE SERVIÇOS EDUCACIONAIS", paragraphOpts{heading: true, centered: true})
	newParagraph(body, "", paragraphOpts{})

	newLabeledParagraph(body, "CONTRATANTE: ",
		"{{ nome_aluno }} (CPF: {{ cpf_aluno }}), residente em {{ endereco_aluno }} - {{ cidade_aluno }} (CEP: {{ cep_aluno }}).")
	newLabeledParagraph(body, "OBJETO: ",
		"Curso de Pós-Graduação em {{ nome_curso }} (Turma: {{ turma }}), carga horária de {{ carga_horaria }} horas.")

	newParagraph(body, "1. DO PRODUTO CONTRATADO", paragraphOpts{heading: true})
	product := newTable(body, 1)
	for _, line := range []string{
		"Curso: {{ nome_curso }}",
		"Turma: {{ turma }}",
		"Aula com atendimento a paciente real: {{ atendimento }}",
		"Bolsista: {{ bolsista }}",
		"Valor bruto do Curso: {{ valor_bruto }}",
		"Desconto concedido: {{ valor_desconto }} ({{ desconto_perc }})",
		"Valor Final do Curso: {{ valor_final }}",
	} {
		newTableRow(product, []string{line}, false)
	}

	newParagraph(body, "2. FORMA DE PAGAMENTO - ENTRADA ({{ entrada_total }})", paragraphOpts{heading: true})
	entry := newTable(body, 4)
	newTableRow(entry, []string{"Parc", "Vencimento", "Valor", "Forma"}, true)

	newParagraph(body, "3. FORMA DE PAGAMENTO - SALDO ({{ saldo_total }} em {{ saldo_qtd }} parcela(s))", paragraphOpts{heading: true})
	balance := newTable(body, 4)
	newTableRow(balance, []string{"Parc", "Vencimento", "Valor", "Forma"}, true)

	newParagraph(body, "4. DO MATERIAL DIDÁTICO", paragraphOpts{heading: true})
	newParagraph(body,
		"O material didático representará {{ valor_material }}, correspondente a 30% do valor bruto do curso, já incluso no valor contratado.",
		paragraphOpts{})

	newParagraph(body, "", paragraphOpts{})
	newParagraph(body, "{{ cidade_aluno }}, {{ data_extenso }}.", paragraphOpts{})
	newParagraph(body, "", paragraphOpts{})
	newParagraph(body, "_______________________________", paragraphOpts{centered: true})
	newParagraph(body, "{{ nome_aluno }}", paragraphOpts{centered: true})

	body.CreateElement("w:sectPr")

	documentXML, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize template body: %w", err)
	}

	archive := &Archive{parts: make(map[string][]byte)}
	archive.SetPart("[Content_Types].xml", []byte(contentTypesXML))
	archive.SetPart("_rels/.rels", []byte(rootRelsXML))
	archive.SetPart(DocumentPart, documentXML)
	return archive.Bytes()
}
