package serialize

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// parseExport parses a server-rendered export document and drops every
// <date> element. The date is a per-export timestamp that would otherwise
// make two exports of an unchanged object differ.
func parseExport(blob string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(blob); err != nil {
		return nil, fmt.Errorf("parsing export document: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("export document has no root element")
	}
	for _, d := range doc.FindElements("//date") {
		d.Parent().RemoveChild(d)
	}
	return doc, nil
}

// renderXML re-indents the document with 2-space indentation and a UTF-8
// declaration. Escaped double-quote entities are replaced with literal
// quotes for readability.
func renderXML(doc *etree.Document) (string, error) {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	out.SetRoot(doc.Root().Copy())
	out.Indent(2)
	txt, err := out.WriteToString()
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(txt, "&quot;", `"`), nil
}

// treeFromDoc converts the document into generic structured data: repeated
// child elements become sequences, attributes become "@"-prefixed keys,
// mixed text lands under "#text", and empty elements become nil (removed
// later by StripNulls).
func treeFromDoc(doc *etree.Document) interface{} {
	root := doc.Root()
	return map[string]interface{}{root.Tag: elementValue(root)}
}

func elementValue(el *etree.Element) interface{} {
	m := map[string]interface{}{}
	for _, a := range el.Attr {
		m["@"+a.Key] = a.Value
	}
	for _, child := range el.ChildElements() {
		v := elementValue(child)
		switch existing := m[child.Tag].(type) {
		case nil:
			m[child.Tag] = v
		case []interface{}:
			m[child.Tag] = append(existing, v)
		default:
			m[child.Tag] = []interface{}{existing, v}
		}
	}
	text := strings.TrimSpace(el.Text())
	if len(m) == 0 {
		if text == "" {
			return nil
		}
		return text
	}
	if text != "" {
		m["#text"] = text
	}
	return m
}
