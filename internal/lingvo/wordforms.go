package lingvo

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/mrlokans/lexscheduler/internal/lang"
)

// WordForms requests the inflection paradigms of a word.
// The endpoint answers with a bare array of lexem models. Text is
// query-escaped since the engine writes parameter values verbatim.
type WordForms struct {
	Text string
	Lang lang.Lang
}

func (r WordForms) Method() string { return "WordForms" }

func (r WordForms) Params() Params {
	return Params{}.
		Add("text", url.QueryEscape(r.Text)).
		Add("lang", r.Lang)
}

func (r WordForms) WrapKey() string { return "lexemModels" }

func (r WordForms) NewResult() Result { return &WordFormsResponse{} }

// WordFormsResponse is the decoded result of WordForms.
type WordFormsResponse struct {
	Response
	LexemModels []LexemModel `json:"lexemModels"`
}

// LexemModel is one lexem with its paradigm.
type LexemModel struct {
	Lexem        string   `json:"Lexem"`
	PartOfSpeech string   `json:"PartOfSpeech"`
	Paradigm     Paradigm `json:"ParadigmJson"`
}

// Paradigm is the inflection table of a lexem.
type Paradigm struct {
	Name      string          `json:"Name"`
	Grammar   string          `json:"Grammar"`
	Groups    []ParadigmGroup `json:"Groups"`
	Sublexems json.RawMessage `json:"Sublexems,omitempty"`
}

// ParadigmGroup is a table of forms, e.g. singular/plural by case.
type ParadigmGroup struct {
	Name        string           `json:"Name"`
	Table       [][]ParadigmCell `json:"Table"`
	ColumnCount int              `json:"ColumnCount"`
	RowCount    int              `json:"RowCount"`
}

// ParadigmCell is a single cell of a paradigm table.
type ParadigmCell struct {
	Value  string `json:"Value"`
	Prefix string `json:"Prefix"`
}

// Forms returns the distinct non-empty cell values of the paradigm in table order.
func (p Paradigm) Forms() []string {
	seen := make(map[string]bool)
	var forms []string
	for _, group := range p.Groups {
		for _, row := range group.Table {
			for _, cell := range row {
				if cell.Value == "" || seen[cell.Value] {
					continue
				}
				seen[cell.Value] = true
				forms = append(forms, cell.Value)
			}
		}
	}
	return forms
}

// GetWordForms looks up the word forms of text in l.
func (c *Client) GetWordForms(ctx context.Context, text string, l lang.Lang) (*WordFormsResponse, error) {
	return Do[*WordFormsResponse](ctx, c, WordForms{Text: text, Lang: l})
}
