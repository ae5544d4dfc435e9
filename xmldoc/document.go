package xmldoc

import (
	"github.com/alacrity-engine/dfanim/dferr"
	"github.com/beevik/etree"
)

type etreeElement struct {
	elem *etree.Element
}

func (e etreeElement) Tag() string {
	return e.elem.Tag
}

func (e etreeElement) Attr(name string) (string, bool) {
	attr := e.elem.SelectAttr(name)

	if attr == nil {
		return "", false
	}

	return attr.Value, true
}

func (e etreeElement) Children() []Element {
	elems := e.elem.ChildElements()
	children := make([]Element, 0, len(elems))

	for _, child := range elems {
		children = append(children, etreeElement{elem: child})
	}

	return children
}

// Parse reads an XML document held in memory
// and returns its root element.
func Parse(text []byte) (Element, error) {
	doc := etree.NewDocument()

	if err := doc.ReadFromBytes(text); err != nil {
		return nil, dferr.From(dferr.MalformedXML, err,
			"failed to parse the XML document")
	}

	root := doc.Root()

	if root == nil {
		return nil, dferr.New(dferr.MissingRequiredNode,
			"the XML document has no root element")
	}

	return etreeElement{elem: root}, nil
}
