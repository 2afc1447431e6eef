package schema

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/psyc/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Length modes accepted in descriptions.
const (
	LengthCheck = "check"
	LengthNeed  = "need"
	LengthNone  = "none"
)

// ModifierSpec describes one modifier line.
type ModifierSpec struct {
	Oper   string `toml:"oper" json:"oper"`
	Name   string `toml:"name" json:"name"`
	Value  string `toml:"value" json:"value"`
	Length string `toml:"length" json:"length,omitempty"`
}

// PacketSpec describes a packet. Content, when set, is sent verbatim and
// the structured body fields are ignored by the renderer.
type PacketSpec struct {
	Routing []ModifierSpec `toml:"routing" json:"routing,omitempty"`
	Entity  []ModifierSpec `toml:"entity" json:"entity,omitempty"`
	StateOp string         `toml:"state_op" json:"state_op,omitempty"`
	Method  string         `toml:"method" json:"method,omitempty"`
	Data    string         `toml:"data" json:"data,omitempty"`
	Content string         `toml:"content" json:"content,omitempty"`
	Length  string         `toml:"length" json:"length,omitempty"`
}

// ListSpec describes a list, or a table when Width is set.
type ListSpec struct {
	Elems  []string `toml:"elems" json:"elems"`
	Width  int      `toml:"width" json:"width,omitempty"`
	Length string   `toml:"length" json:"length,omitempty"`
}

// PacketIDSpec holds the five packet id components.
type PacketIDSpec struct {
	Context  string `toml:"context" json:"context,omitempty"`
	Source   string `toml:"source" json:"source,omitempty"`
	Target   string `toml:"target" json:"target,omitempty"`
	Counter  string `toml:"counter" json:"counter,omitempty"`
	Fragment string `toml:"fragment" json:"fragment,omitempty"`
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("schema: %s", e.Reason)
	}
	return fmt.Sprintf("schema: field=%s: %s", e.Field, e.Reason)
}

// DecodePacket parses a TOML packet description. Unknown keys are rejected.
func DecodePacket(data []byte) (PacketSpec, error) {
	var spec PacketSpec
	meta, err := toml.Decode(string(data), &spec)
	if err != nil {
		return PacketSpec{}, fmt.Errorf("schema: decode packet: %w", err)
	}
	if err := rejectUndecoded(meta); err != nil {
		return PacketSpec{}, err
	}
	return spec, nil
}

// LoadPacket reads and parses a TOML packet description file.
func LoadPacket(path string) (PacketSpec, error) {
	var spec PacketSpec
	meta, err := toml.DecodeFile(path, &spec)
	if err != nil {
		return PacketSpec{}, fmt.Errorf("schema: load packet (%s): %w", path, err)
	}
	if err := rejectUndecoded(meta); err != nil {
		return PacketSpec{}, err
	}
	return spec, nil
}

func rejectUndecoded(meta toml.MetaData) error {
	undecoded := meta.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, 0, len(undecoded))
	for _, key := range undecoded {
		keys = append(keys, key.String())
	}
	return ValidationError{Field: strings.Join(keys, ","), Reason: "unknown key"}
}

// Validate checks the description is well formed. Empty modifier names are
// left for the renderer to report.
func (s PacketSpec) Validate() error {
	log.Debug().
		Int("routing", len(s.Routing)).
		Int("entity", len(s.Entity)).
		Msg("schema.Validate packet")
	if _, err := packetFlag(s.Length); err != nil {
		return err
	}
	if _, err := stateOp(s.StateOp); err != nil {
		return err
	}
	for i, mod := range s.Routing {
		if err := mod.validate(fmt.Sprintf("routing[%d]", i)); err != nil {
			return err
		}
	}
	for i, mod := range s.Entity {
		if err := mod.validate(fmt.Sprintf("entity[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// Packet validates s and builds a sized packet from it.
func (s PacketSpec) Packet() (*protocol.Packet, error) {
	if err := s.Validate(); err != nil {
		log.Error().Err(err).Msg("schema.Packet invalid description")
		return nil, err
	}
	flag, _ := packetFlag(s.Length)
	routing := modifiers(s.Routing)
	if s.Content != "" {
		return protocol.NewRawPacket(routing, []byte(s.Content), flag), nil
	}
	op, _ := stateOp(s.StateOp)
	return protocol.NewPacket(routing, modifiers(s.Entity), bytesOrNil(s.Method), bytesOrNil(s.Data), op, flag), nil
}

func (m ModifierSpec) validate(field string) error {
	if len(m.Oper) != 1 || !protocol.Operator(m.Oper[0]).Valid() {
		return ValidationError{Field: field + ".oper", Reason: fmt.Sprintf("unknown operator %q", m.Oper)}
	}
	if _, err := modifierFlag(m.Length); err != nil {
		return ValidationError{Field: field + ".length", Reason: fmt.Sprintf("unknown length mode %q", m.Length)}
	}
	return nil
}

func modifiers(specs []ModifierSpec) []protocol.Modifier {
	if len(specs) == 0 {
		return nil
	}
	mods := make([]protocol.Modifier, len(specs))
	for i, spec := range specs {
		flag, _ := modifierFlag(spec.Length)
		mods[i] = protocol.NewModifier(protocol.Operator(spec.Oper[0]), []byte(spec.Name), []byte(spec.Value), flag)
	}
	return mods
}

func (s ListSpec) Validate() error {
	if s.Width < 0 {
		return ValidationError{Field: "width", Reason: "must not be negative"}
	}
	_, err := listFlag(s.Length)
	return err
}

// List validates s and builds a sized list from its elements.
func (s ListSpec) List() (*protocol.List, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	flag, _ := listFlag(s.Length)
	elems := make([][]byte, len(s.Elems))
	for i, elem := range s.Elems {
		elems[i] = []byte(elem)
	}
	return protocol.NewList(elems, flag), nil
}

// Table is List wrapped with the declared width.
func (s ListSpec) Table() (*protocol.Table, error) {
	list, err := s.List()
	if err != nil {
		return nil, err
	}
	return protocol.NewTable(list, s.Width), nil
}

// Components returns the packet id components in wire order.
func (s PacketIDSpec) Components() (context, source, target, counter, fragment []byte) {
	return bytesOrNil(s.Context), bytesOrNil(s.Source), bytesOrNil(s.Target),
		bytesOrNil(s.Counter), bytesOrNil(s.Fragment)
}

func packetFlag(raw string) (protocol.PacketFlag, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", LengthCheck:
		return protocol.PacketCheckLength, nil
	case LengthNeed:
		return protocol.PacketNeedLength, nil
	case LengthNone:
		return protocol.PacketNoLength, nil
	}
	return 0, ValidationError{Field: "length", Reason: fmt.Sprintf("unknown length mode %q", raw)}
}

func modifierFlag(raw string) (protocol.ModifierFlag, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", LengthCheck:
		return protocol.ModifierCheckLength, nil
	case LengthNeed:
		return protocol.ModifierNeedLength, nil
	case LengthNone:
		return protocol.ModifierNoLength, nil
	}
	return 0, ValidationError{Field: "length", Reason: fmt.Sprintf("unknown length mode %q", raw)}
}

func listFlag(raw string) (protocol.ListFlag, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", LengthCheck:
		return protocol.ListCheckLength, nil
	case LengthNeed:
		return protocol.ListNeedLength, nil
	case LengthNone:
		return protocol.ListNoLength, nil
	}
	return 0, ValidationError{Field: "length", Reason: fmt.Sprintf("unknown length mode %q", raw)}
}

func stateOp(raw string) (protocol.StateOp, error) {
	switch raw {
	case "":
		return protocol.StateNoop, nil
	case string(rune(protocol.StateReset)):
		return protocol.StateReset, nil
	case string(rune(protocol.StateResync)):
		return protocol.StateResync, nil
	}
	return 0, ValidationError{Field: "state_op", Reason: fmt.Sprintf("unknown state operator %q", raw)}
}

func bytesOrNil(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}
