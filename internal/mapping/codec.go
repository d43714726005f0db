package mapping

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Format selects the encoding of a persisted document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Entry is one persisted slot. Negative ids mean unbound.
type Entry struct {
	CC       int   `json:"cc" yaml:"cc"`
	ModuleID int64 `json:"moduleId" yaml:"moduleId"`
	ParamID  int   `json:"paramId" yaml:"paramId"`
}

// Target returns the entry's parameter identity.
func (e Entry) Target() Target {
	return Target{ModuleID: e.ModuleID, ParamID: e.ParamID}
}

// PortSettings remembers the controller ports a document was saved with.
type PortSettings struct {
	InPort  string `json:"in_port,omitempty" yaml:"in_port,omitempty"`
	OutPort string `json:"out_port,omitempty" yaml:"out_port,omitempty"`
}

// Document is the persisted form of a Bank.
//
// KeyGroups holds one group id per key; values outside [0, NumGroups) are
// left unapplied. A nil entry in Maps marks a record that was missing one of
// its fields; it keeps its index so later records stay in place.
type Document struct {
	InstanceID string
	KeyGroups  []int
	Maps       [NumGroups][]*Entry
	MIDI       *PortSettings
}

func mapsKey(g int) string {
	return fmt.Sprintf("maps%d", g)
}

// Document captures the bank. Each group writes its active slots, including
// the trailing empty one.
func (b *Bank) Document() Document {
	doc := Document{KeyGroups: make([]int, NumKeys)}
	groups := b.Keys.Groups()
	copy(doc.KeyGroups, groups[:])
	for g, t := range b.Tables {
		entries := make([]*Entry, 0, t.ActiveLength())
		for id := 0; id < t.ActiveLength(); id++ {
			s := t.Slot(id)
			target, ok := b.reg.Target(s.handle)
			if !ok {
				target = Unbound
			}
			entries = append(entries, &Entry{CC: s.cc, ModuleID: target.ModuleID, ParamID: target.ParamID})
		}
		doc.Maps[g] = entries
	}
	return doc
}

// Load replaces the bank's contents with doc. Malformed or out-of-range
// records are skipped; unresolvable targets leave their slot unbound.
func (b *Bank) Load(doc Document) {
	b.Keys.ResetGroups()
	for key, g := range doc.KeyGroups {
		if key >= NumKeys {
			break
		}
		if g >= 0 && g < NumGroups {
			b.Keys.SetGroup(key, g)
		}
	}

	b.ClearAll()
	for g, t := range b.Tables {
		b.Caches[g].Reset()
		for id, e := range doc.Maps[g] {
			if e == nil || id >= MaxChannels {
				continue
			}
			t.SetCC(id, e.CC)
			if target := e.Target(); target.Valid() {
				t.BindParam(id, target, false)
			}
		}
		t.RecomputeActiveLength()
	}
	for g := range b.Tables {
		b.SeedCache(g)
	}
}

// Marshal encodes doc in the given format.
func Marshal(doc Document, format Format) ([]byte, error) {
	root := map[string]any{}
	keys := doc.KeyGroups
	if keys == nil {
		keys = []int{}
	}
	root["keygroups"] = keys
	for g := range doc.Maps {
		entries := make([]Entry, 0, len(doc.Maps[g]))
		for _, e := range doc.Maps[g] {
			if e == nil {
				entries = append(entries, Entry{CC: NoCC, ModuleID: Unbound.ModuleID, ParamID: Unbound.ParamID})
				continue
			}
			entries = append(entries, *e)
		}
		root[mapsKey(g)] = entries
	}
	if doc.MIDI != nil {
		root["midi"] = doc.MIDI
	}
	if doc.InstanceID != "" {
		root["instance_id"] = doc.InstanceID
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(root, "", "  ")
	case FormatYAML:
		return yaml.Marshal(root)
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}

// Unmarshal decodes a document. Only a document that is not an object at
// all is an error; every field is decoded on its own and skipped when
// missing or malformed.
func Unmarshal(data []byte, format Format) (Document, error) {
	var root raw
	switch format {
	case FormatJSON:
		root = jsonRaw(data)
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return Document{}, fmt.Errorf("decode yaml document: %w", err)
		}
		root = yamlRaw{&node}
	default:
		return Document{}, fmt.Errorf("unknown document format %q", format)
	}

	fields, err := root.object()
	if err != nil {
		return Document{}, fmt.Errorf("decode %s document: %w", format, err)
	}

	var doc Document
	if r, ok := fields["instance_id"]; ok {
		_ = r.decode(&doc.InstanceID)
	}
	if r, ok := fields["keygroups"]; ok {
		doc.KeyGroups = decodeKeyGroups(r)
	}
	for g := range doc.Maps {
		if r, ok := fields[mapsKey(g)]; ok {
			doc.Maps[g] = decodeEntries(r)
		}
	}
	if r, ok := fields["midi"]; ok {
		var ports PortSettings
		if r.decode(&ports) == nil {
			doc.MIDI = &ports
		}
	}
	return doc, nil
}

func decodeKeyGroups(r raw) []int {
	items, err := r.list()
	if err != nil {
		return nil
	}
	groups := make([]int, len(items))
	for i, item := range items {
		if item.decode(&groups[i]) != nil {
			groups[i] = -1
		}
	}
	return groups
}

func decodeEntries(r raw) []*Entry {
	items, err := r.list()
	if err != nil {
		return nil
	}
	entries := make([]*Entry, len(items))
	for i, item := range items {
		fields, err := item.object()
		if err != nil {
			continue
		}
		ccR, ok1 := fields["cc"]
		modR, ok2 := fields["moduleId"]
		parR, ok3 := fields["paramId"]
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		var e Entry
		if ccR.decode(&e.CC) != nil || modR.decode(&e.ModuleID) != nil || parR.decode(&e.ParamID) != nil {
			continue
		}
		entries[i] = &e
	}
	return entries
}

// raw is an undecoded value of either encoding.
type raw interface {
	decode(v any) error
	object() (map[string]raw, error)
	list() ([]raw, error)
}

type jsonRaw json.RawMessage

func (r jsonRaw) decode(v any) error {
	return json.Unmarshal(r, v)
}

func (r jsonRaw) object() (map[string]raw, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(r, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("not an object")
	}
	out := make(map[string]raw, len(m))
	for k, v := range m {
		out[k] = jsonRaw(v)
	}
	return out, nil
}

func (r jsonRaw) list() ([]raw, error) {
	var l []json.RawMessage
	if err := json.Unmarshal(r, &l); err != nil {
		return nil, err
	}
	out := make([]raw, len(l))
	for i, v := range l {
		out[i] = jsonRaw(v)
	}
	return out, nil
}

type yamlRaw struct {
	node *yaml.Node
}

func (r yamlRaw) decode(v any) error {
	return r.node.Decode(v)
}

func (r yamlRaw) object() (map[string]raw, error) {
	n := r.node
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("not a mapping")
	}
	out := make(map[string]raw, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out[n.Content[i].Value] = yamlRaw{n.Content[i+1]}
	}
	return out, nil
}

func (r yamlRaw) list() ([]raw, error) {
	if r.node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("not a sequence")
	}
	out := make([]raw, len(r.node.Content))
	for i, c := range r.node.Content {
		out[i] = yamlRaw{c}
	}
	return out, nil
}
