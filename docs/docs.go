package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Ticket Triage API",
    "description": "LLM-driven support ticket classification and resolution drafting",
    "version": "1.0"
  },
  "basePath": "/api/v1",
  "paths": {}
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
