package docgen

// PDFGenerator is a placeholder for the external PDF collaborator.
// Every call reports ErrUnsupported; callers surface that to the client
// instead of pretending a file was produced.
type PDFGenerator struct{}

func NewPDF() *PDFGenerator { return &PDFGenerator{} }

func (g *PDFGenerator) Generate(t Table) (*Document, error) {
	return nil, ErrUnsupported
}
