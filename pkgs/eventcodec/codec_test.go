package eventcodec

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aledsdavies/argtags/pkgs/errors"
	"github.com/aledsdavies/argtags/pkgs/tokenizer"
)

const demoScript = `#!/usr/bin/env bash
# @describe A demo cli
# @version 1.0.0
# @cmd Build the project
# @alias b
# @option -t --target[=debug|release] <TARGET> Build profile
# @flag -v --verbose*
# @arg paths*[` + "`_files`" + `] Files to build
# @meta anything
build() { :; }
`

func demoEvents(t *testing.T) []tokenizer.Event {
	t.Helper()
	events, err := tokenizer.Tokenize(demoScript)
	require.NoError(t, err)
	return events
}

func TestEncodeText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, demoEvents(t), FormatText))

	want := `2 describe "A demo cli"
3 version "1.0.0"
4 cmd "Build the project"
5 aliases b
6 flag_option -t --target[=debug|release] <TARGET> Build profile
7 flag_option -v --verbose*
8 positional paths*[` + "`_files`" + `] Files to build
9 unknown meta
10 func build
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("text output mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEvents(t *testing.T) {
	records := FromEvents(demoEvents(t))
	require.Len(t, records, 9)

	text := "A demo cli"
	def := "debug"
	want := []Record{
		{Kind: "describe", Line: 2, Text: &text},
		{
			Kind: "flag_option",
			Line: 6,
			Param: &ParamRecord{
				Name:       "target",
				Default:    &def,
				Choices:    []string{"debug", "release"},
				Describe:   "Build profile",
				Short:      "t",
				Dashes:     "--",
				ValueNames: []string{"TARGET"},
				Render:     "-t --target[=debug|release] <TARGET> Build profile",
			},
		},
		{
			Kind: "positional",
			Line: 8,
			Param: &ParamRecord{
				Name:      "paths",
				Multiple:  true,
				ChoicesFn: &ChoicesFnRecord{Name: "_files", Validate: true},
				Describe:  "Files to build",
				Render:    "paths*[`_files`] Files to build",
			},
		},
		{Kind: "func", Line: 10, Name: "build"},
	}
	got := []Record{records[0], records[4], records[6], records[8]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestFromEventsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestStructuredFormatsDecodeToRecords(t *testing.T) {
	events := demoEvents(t)
	want := FromEvents(events)

	decoders := map[Format]func([]byte, *[]Record) error{
		FormatJSON: func(b []byte, r *[]Record) error { return json.Unmarshal(b, r) },
		FormatYAML: func(b []byte, r *[]Record) error { return yaml.Unmarshal(b, r) },
		FormatCBOR: func(b []byte, r *[]Record) error { return cbor.Unmarshal(b, r) },
	}

	for format, decode := range decoders {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, events, format))

			var got []Record
			require.NoError(t, decode(buf.Bytes(), &got))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("decoded records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDigest(t *testing.T) {
	events := demoEvents(t)

	first, err := Digest(events)
	require.NoError(t, err)
	second, err := Digest(demoEvents(t))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	changed := append([]tokenizer.Event(nil), events...)
	changed[0] = tokenizer.Event{Data: tokenizer.Describe{Text: "Another cli"}, Position: 2}
	third, err := Digest(changed)
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{name: "text", want: FormatText},
		{name: "JSON", want: FormatJSON},
		{name: "yaml", want: FormatYAML},
		{name: "cbor", want: FormatCBOR},
		{name: "xml", wantErr: true},
		{name: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []string{"text", "json", "yaml", "cbor"}, FormatNames())
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, nil, Format(42))
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrEncode))
	assert.Equal(t, "Format(42)", Format(42).String())
}
