// Package template renders catalog message templates against lead fields.
package template

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/osteele/liquid"
	"go.uber.org/zap"

	"github.com/popeskul/lead-messenger/internal/models"
)

var (
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrDuplicateTemplate = errors.New("duplicate template id")
)

// Recognized placeholders. Anything else renders as an empty string.
const (
	FieldName       = "name"
	FieldFirstName  = "first_name"
	FieldPhone      = "phone"
	FieldEmail      = "email"
	FieldProgram    = "program"
	FieldSource     = "source"
	FieldSourceInfo = "source_info"
)

var knownFields = map[string]struct{}{
	FieldName: {}, FieldFirstName: {}, FieldPhone: {}, FieldEmail: {},
	FieldProgram: {}, FieldSource: {}, FieldSourceInfo: {},
}

var placeholderPattern = regexp.MustCompile(`\{\{-?\s*([a-zA-Z_][a-zA-Z0-9_]*)`)

// Rendered is a template resolved for one lead.
type Rendered struct {
	Template models.Template
	// Text is the body as the lead will read it.
	Text string
	// Variables are the provider template parameters, in catalog order.
	Variables []string
}

type compiled struct {
	def models.Template
	tpl *liquid.Template
}

// Renderer holds the parsed template catalog.
type Renderer struct {
	engine    *liquid.Engine
	templates map[string]*compiled
	logger    *zap.Logger
}

// NewRenderer parses every catalog entry. Unknown placeholders are reported as
// warnings, not errors.
func NewRenderer(catalog []models.Template, logger *zap.Logger) (*Renderer, error) {
	r := &Renderer{
		engine:    liquid.NewEngine(),
		templates: make(map[string]*compiled, len(catalog)),
		logger:    logger,
	}

	for _, def := range catalog {
		if def.ID == "" {
			return nil, fmt.Errorf("template without id")
		}
		if _, exists := r.templates[def.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTemplate, def.ID)
		}

		tpl, err := r.engine.ParseString(def.Body)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", def.ID, err)
		}
		if def.ProviderName == "" {
			def.ProviderName = def.ID
		}

		for _, field := range UnknownPlaceholders(def) {
			logger.Warn("Template references unknown placeholder, it will render empty",
				zap.String("template_id", def.ID),
				zap.String("placeholder", field),
			)
		}

		r.templates[def.ID] = &compiled{def: def, tpl: tpl}
	}

	return r, nil
}

// Lookup returns the catalog entry for id.
func (r *Renderer) Lookup(id string) (models.Template, bool) {
	c, ok := r.templates[id]
	if !ok {
		return models.Template{}, false
	}
	return c.def, true
}

// IDs returns the catalog ids in sorted order.
func (r *Renderer) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Render substitutes lead fields into template id. phone is the normalized
// number, which may differ from what is stored on the lead.
func (r *Renderer) Render(id string, lead *models.Lead, phone string) (*Rendered, error) {
	c, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}

	bindings := Bindings(lead, phone)
	text, err := c.tpl.RenderString(bindings)
	if err != nil {
		return nil, fmt.Errorf("render template %s: %w", id, err)
	}

	vars := make([]string, 0, len(c.def.Params))
	for _, p := range c.def.Params {
		v, _ := bindings[p].(string)
		vars = append(vars, v)
	}

	return &Rendered{
		Template:  c.def,
		Text:      strings.TrimSpace(text),
		Variables: vars,
	}, nil
}

// Bindings returns the placeholder values for lead. Missing fields are empty strings.
func Bindings(lead *models.Lead, phone string) liquid.Bindings {
	if phone == "" {
		phone = lead.Phone
	}
	return liquid.Bindings{
		FieldName:       lead.Name,
		FieldFirstName:  lead.FirstName(),
		FieldPhone:      phone,
		FieldEmail:      lead.Email.String,
		FieldProgram:    lead.Program,
		FieldSource:     lead.Source,
		FieldSourceInfo: lead.SourceInfo,
	}
}

// UnknownPlaceholders lists the placeholder names in def that no lead field fills.
func UnknownPlaceholders(def models.Template) []string {
	seen := make(map[string]bool)
	var unknown []string

	check := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if _, ok := knownFields[name]; !ok {
			unknown = append(unknown, name)
		}
	}

	for _, m := range placeholderPattern.FindAllStringSubmatch(def.Body, -1) {
		check(m[1])
	}
	for _, p := range def.Params {
		check(p)
	}
	return unknown
}
