package eventcodec

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"github.com/aledsdavies/argtags/pkgs/errors"
	"github.com/aledsdavies/argtags/pkgs/tokenizer"
)

// Format selects an output encoding
type Format int

const (
	FormatText Format = iota
	FormatJSON
	FormatYAML
	FormatCBOR
)

var formatNames = [...]string{
	FormatText: "text",
	FormatJSON: "json",
	FormatYAML: "yaml",
	FormatCBOR: "cbor",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FormatNames lists the accepted format names in flag-help order.
func FormatNames() []string {
	return append([]string(nil), formatNames[:]...)
}

// ParseFormat maps a case-insensitive name to a Format.
func ParseFormat(name string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(name, n) {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(formatNames[:], ", "))
}

// Encode writes events to w in the given format.
func Encode(w io.Writer, events []tokenizer.Event, format Format) error {
	var err error
	switch format {
	case FormatText:
		err = encodeText(w, events)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(FromEvents(events))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(FromEvents(events)); err == nil {
			err = enc.Close()
		}
	case FormatCBOR:
		var data []byte
		if data, err = MarshalCBOR(events); err == nil {
			_, err = w.Write(data)
		}
	default:
		err = fmt.Errorf("unsupported format %v", format)
	}

	if err != nil {
		return errors.Wrap(errors.ErrEncode, fmt.Sprintf("encoding %s output", format), err)
	}
	return nil
}

// MarshalCBOR produces the canonical CBOR encoding of the records, which
// is byte-for-byte stable for equal event streams.
func MarshalCBOR(events []tokenizer.Event) ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}
	return encMode.Marshal(FromEvents(events))
}

// Digest is the BLAKE2b-256 hash of the canonical CBOR encoding. Tools that
// generate completions or help from a script can use it as a cache key.
func Digest(events []tokenizer.Event) ([32]byte, error) {
	data, err := MarshalCBOR(events)
	if err != nil {
		return [32]byte{}, errors.Wrap(errors.ErrEncode, "hashing events", err)
	}
	return blake2b.Sum256(data), nil
}

// encodeText writes one `LINE KIND PAYLOAD` line per event.
func encodeText(w io.Writer, events []tokenizer.Event) error {
	for _, ev := range events {
		if _, err := fmt.Fprintf(w, "%d %s %s\n", ev.Position, ev.Data.Kind(), textPayload(ev.Data)); err != nil {
			return err
		}
	}
	return nil
}

func textPayload(data tokenizer.EventData) string {
	switch d := data.(type) {
	case tokenizer.Describe:
		return strconv.Quote(d.Text)
	case tokenizer.Version:
		return strconv.Quote(d.Text)
	case tokenizer.Author:
		return strconv.Quote(d.Text)
	case tokenizer.Cmd:
		return strconv.Quote(d.Text)
	case tokenizer.Aliases:
		return strings.Join(d.Names, ",")
	case tokenizer.FlagOption:
		return d.Param.Render()
	case tokenizer.Positional:
		return d.Param.Render()
	case tokenizer.Func:
		return d.Name
	case tokenizer.Unknown:
		return d.Name
	}
	return ""
}
