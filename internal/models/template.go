package models

// Template is an entry of the message template catalog. Body is the rendered
// text stored on the dispatch record; Params lists, in order, the placeholders
// passed to the provider as template variables.
type Template struct {
	ID           string   `mapstructure:"id" json:"id"`
	ProviderName string   `mapstructure:"provider_name" json:"provider_name"`
	Language     string   `mapstructure:"language" json:"language"`
	Body         string   `mapstructure:"body" json:"body"`
	Params       []string `mapstructure:"params" json:"params"`
}
