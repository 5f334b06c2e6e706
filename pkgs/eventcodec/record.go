// Package eventcodec serializes tokenizer events for other tools.
//
// Every format carries the same Record shape, so a consumer can switch
// between JSON, YAML and CBOR without changing its model. The text format
// is for people and is not meant to be parsed.
package eventcodec

import (
	"github.com/aledsdavies/argtags/pkgs/tokenizer"
)

// Record is the serialized form of one event. Exactly one of Text, Name,
// Names or Param is set, depending on Kind.
type Record struct {
	Kind  string       `json:"kind" yaml:"kind" cbor:"kind"`
	Line  int          `json:"line" yaml:"line" cbor:"line"`
	Text  *string      `json:"text,omitempty" yaml:"text,omitempty" cbor:"text,omitempty"`
	Name  string       `json:"name,omitempty" yaml:"name,omitempty" cbor:"name,omitempty"`
	Names []string     `json:"names,omitempty" yaml:"names,omitempty" cbor:"names,omitempty"`
	Param *ParamRecord `json:"param,omitempty" yaml:"param,omitempty" cbor:"param,omitempty"`
}

// ParamRecord flattens flag, option and positional parameters. Render
// holds the canonical directive body.
type ParamRecord struct {
	Name       string           `json:"name" yaml:"name" cbor:"name"`
	Required   bool             `json:"required" yaml:"required" cbor:"required"`
	Multiple   bool             `json:"multiple" yaml:"multiple" cbor:"multiple"`
	Default    *string          `json:"default,omitempty" yaml:"default,omitempty" cbor:"default,omitempty"`
	DefaultFn  string           `json:"default_fn,omitempty" yaml:"default_fn,omitempty" cbor:"default_fn,omitempty"`
	Choices    []string         `json:"choices,omitempty" yaml:"choices,omitempty" cbor:"choices,omitempty"`
	ChoicesFn  *ChoicesFnRecord `json:"choices_fn,omitempty" yaml:"choices_fn,omitempty" cbor:"choices_fn,omitempty"`
	Describe   string           `json:"describe,omitempty" yaml:"describe,omitempty" cbor:"describe,omitempty"`
	Short      string           `json:"short,omitempty" yaml:"short,omitempty" cbor:"short,omitempty"`
	Flag       bool             `json:"flag,omitempty" yaml:"flag,omitempty" cbor:"flag,omitempty"`
	Dashes     string           `json:"dashes,omitempty" yaml:"dashes,omitempty" cbor:"dashes,omitempty"`
	ValueNames []string         `json:"value_names,omitempty" yaml:"value_names,omitempty" cbor:"value_names,omitempty"`
	ValueName  *string          `json:"value_name,omitempty" yaml:"value_name,omitempty" cbor:"value_name,omitempty"`
	Render     string           `json:"render" yaml:"render" cbor:"render"`
}

type ChoicesFnRecord struct {
	Name     string `json:"name" yaml:"name" cbor:"name"`
	Validate bool   `json:"validate" yaml:"validate" cbor:"validate"`
}

// FromEvents converts events to records, preserving order. The result is
// never nil so that an empty script encodes as an empty list.
func FromEvents(events []tokenizer.Event) []Record {
	records := make([]Record, 0, len(events))
	for _, ev := range events {
		records = append(records, FromEvent(ev))
	}
	return records
}

// FromEvent converts a single event.
func FromEvent(ev tokenizer.Event) Record {
	r := Record{Kind: ev.Data.Kind().String(), Line: ev.Position}

	switch d := ev.Data.(type) {
	case tokenizer.Describe:
		r.Text = &d.Text
	case tokenizer.Version:
		r.Text = &d.Text
	case tokenizer.Author:
		r.Text = &d.Text
	case tokenizer.Cmd:
		r.Text = &d.Text
	case tokenizer.Aliases:
		r.Names = d.Names
	case tokenizer.FlagOption:
		p := paramRecord(d.Param.ParamData, d.Param.Describe)
		p.Short = d.Param.Short
		p.Flag = d.Param.IsFlag
		p.Dashes = d.Param.Dashes
		p.ValueNames = d.Param.ValueNames
		p.Render = d.Param.Render()
		r.Param = p
	case tokenizer.Positional:
		p := paramRecord(d.Param.ParamData, d.Param.Describe)
		p.ValueName = d.Param.ValueName
		p.Render = d.Param.Render()
		r.Param = p
	case tokenizer.Func:
		r.Name = d.Name
	case tokenizer.Unknown:
		r.Name = d.Name
	}
	return r
}

func paramRecord(data tokenizer.ParamData, describe string) *ParamRecord {
	p := &ParamRecord{
		Name:      data.Name,
		Required:  data.Required,
		Multiple:  data.Multiple,
		Default:   data.Default,
		DefaultFn: data.DefaultFn,
		Choices:   data.Choices,
		Describe:  describe,
	}
	if data.ChoicesFn != nil {
		p.ChoicesFn = &ChoicesFnRecord{Name: data.ChoicesFn.Name, Validate: data.ChoicesFn.Validate}
	}
	return p
}
