package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populatedBank(t *testing.T) (*Bank, *fakeRegistry) {
	t.Helper()
	reg := newFakeRegistry()
	b := NewBank(reg, 36)
	b.Keys.SetGroup(36, 1)
	b.Keys.SetGroup(37, 1)
	b.Keys.SetGroup(60, 9)

	reg.addParam(Target{ModuleID: 11, ParamID: 0}, 0.25)
	reg.addParam(Target{ModuleID: 11, ParamID: 1}, 0.75)

	b.Tables[1].BindCC(0, 71, nil)
	b.Tables[1].BindParam(0, Target{ModuleID: 11, ParamID: 0}, true)
	b.Tables[1].BindCC(1, 72, nil)
	b.Tables[9].BindParam(3, Target{ModuleID: 11, ParamID: 1}, true)
	b.Tables[9].BindCC(3, 79, nil)
	b.Tables[4].BindCC(0, 20, nil)
	return b, reg
}

func TestCodec_RoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			b, _ := populatedBank(t)
			before := b.Document()

			data, err := Marshal(before, format)
			require.NoError(t, err)

			b.Reset()
			assert.Equal(t, NoCC, b.Tables[1].Slot(0).CC())

			doc, err := Unmarshal(data, format)
			require.NoError(t, err)
			b.Load(doc)

			after := b.Document()
			assert.Equal(t, before.KeyGroups, after.KeyGroups)
			for g := range before.Maps {
				assert.Equal(t, before.Maps[g], after.Maps[g], "group %d", g)
			}

			v, ok := b.Caches[1].Get(71)
			require.True(t, ok, "load seeds the cache from live values")
			assert.InDelta(t, 0.25*MaxValue, v, 1e-9)
		})
	}
}

func TestCodec_DocumentShape(t *testing.T) {
	b, _ := populatedBank(t)
	doc := b.Document()

	assert.Len(t, doc.KeyGroups, NumKeys)
	require.Len(t, doc.Maps[1], 3)
	assert.Equal(t, Entry{CC: 71, ModuleID: 11, ParamID: 0}, *doc.Maps[1][0])
	assert.Equal(t, Entry{CC: 72, ModuleID: -1, ParamID: -1}, *doc.Maps[1][1])
	assert.Equal(t, Entry{CC: NoCC, ModuleID: -1, ParamID: -1}, *doc.Maps[1][2])
	assert.Len(t, doc.Maps[9], 5)
	assert.Len(t, doc.Maps[0], 1)
}

func TestCodec_TolerantDecode(t *testing.T) {
	data := []byte(`{
		"keygroups": [1, "x", 12, 2],
		"maps1": [
			{"cc": 10, "moduleId": 11, "paramId": 0},
			{"cc": 11, "moduleId": 11},
			"garbage",
			{"cc": 12, "moduleId": -1, "paramId": -1},
			{"cc": 13, "moduleId": 5, "paramId": 5},
			{"cc": 14, "moduleId": -1, "paramId": -1},
			{"cc": 15, "moduleId": -1, "paramId": -1},
			{"cc": 16, "moduleId": -1, "paramId": -1},
			{"cc": 17, "moduleId": -1, "paramId": -1}
		],
		"maps2": {"not": "a list"},
		"maps3": [{"cc": "seven", "moduleId": 1, "paramId": 1}]
	}`)

	doc, err := Unmarshal(data, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []int{1, -1, 12, 2}, doc.KeyGroups)
	require.Len(t, doc.Maps[1], 9)
	assert.Nil(t, doc.Maps[1][1])
	assert.Nil(t, doc.Maps[1][2])
	assert.Nil(t, doc.Maps[2])
	assert.Nil(t, doc.Maps[3][0])

	reg := newFakeRegistry()
	reg.addParam(Target{ModuleID: 11, ParamID: 0}, 0.5)
	b := NewBank(reg, 36)
	b.Load(doc)

	assert.Equal(t, 1, b.Keys.GroupOf(0))
	assert.Equal(t, 0, b.Keys.GroupOf(1))
	assert.Equal(t, 0, b.Keys.GroupOf(2), "out-of-range group ignored")
	assert.Equal(t, 2, b.Keys.GroupOf(3))

	tbl := b.Tables[1]
	assert.Equal(t, SlotMapped, tbl.Slot(0).State(reg))
	assert.Equal(t, SlotUnmapped, tbl.Slot(1).State(reg))
	assert.Equal(t, 12, tbl.Slot(3).CC())
	assert.Equal(t, 16, tbl.Slot(7).CC(), "records past capacity are dropped")
	assert.Equal(t, MaxChannels, tbl.ActiveLength())

	// The fake host accepts any target, so module 5 binds.
	target, ok := reg.Target(tbl.Slot(4).Handle())
	require.True(t, ok)
	assert.Equal(t, Target{ModuleID: 5, ParamID: 5}, target)

	assert.Equal(t, 1, b.Tables[2].ActiveLength())
	assert.Equal(t, 1, b.Tables[3].ActiveLength())
}

func TestCodec_MissingArraysLoadEmpty(t *testing.T) {
	b, _ := populatedBank(t)
	doc, err := Unmarshal([]byte(`{}`), FormatJSON)
	require.NoError(t, err)
	b.Load(doc)

	for g, tbl := range b.Tables {
		assert.Equal(t, 1, tbl.ActiveLength(), "group %d", g)
	}
	assert.Equal(t, 0, b.Keys.GroupOf(36))
}

func TestCodec_RejectsNonObject(t *testing.T) {
	_, err := Unmarshal([]byte(`[1, 2, 3]`), FormatJSON)
	assert.Error(t, err)
	_, err = Unmarshal([]byte(`- a`), FormatYAML)
	assert.Error(t, err)
	_, err = Unmarshal([]byte(`{}`), Format("toml"))
	assert.Error(t, err)
}

func TestCodec_PortSettingsAndInstance(t *testing.T) {
	doc := Document{
		InstanceID: "abc",
		MIDI:       &PortSettings{InPort: "Ableton Push 2 Live Port", OutPort: "Ableton Push 2 Live Port"},
	}
	for _, format := range []Format{FormatJSON, FormatYAML} {
		data, err := Marshal(doc, format)
		require.NoError(t, err)
		got, err := Unmarshal(data, format)
		require.NoError(t, err)
		assert.Equal(t, "abc", got.InstanceID)
		require.NotNil(t, got.MIDI)
		assert.Equal(t, *doc.MIDI, *got.MIDI)
	}
}
