package models

// ParsedFile is the extraction result for one route handler file.
type ParsedFile struct {
	Path     string
	Handlers []Handler
}

func (p *ParsedFile) Methods() []string {
	methods := make([]string, len(p.Handlers))
	for i, h := range p.Handlers {
		methods[i] = h.Method
	}
	return methods
}

func (p *ParsedFile) HasMethod(method string) bool {
	for _, h := range p.Handlers {
		if h.Method == method {
			return true
		}
	}
	return false
}
