package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeCarriesDiscriminator(t *testing.T) {
	data, err := Encode(Enabled{})
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "enabled", fields["type"])
}

func TestUpdateElementRoundTrip(t *testing.T) {
	idx, text := 2, "Hello"
	msg := UpdateElement{
		ComponentID:   "h1_Page_3_10",
		InstanceIndex: &idx,
		TextContent:   &text,
		Styles:        map[string]string{"color": "red", "margin-top": ""},
	}
	data, err := Encode(msg)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)
	upd, ok := decoded.(UpdateElement)
	require.True(t, ok)
	assert.Equal(t, "h1_Page_3_10", upd.ComponentID)
	require.NotNil(t, upd.InstanceIndex)
	assert.Equal(t, 2, *upd.InstanceIndex)
	require.NotNil(t, upd.TextContent)
	assert.Equal(t, "Hello", *upd.TextContent)
	assert.Equal(t, "red", upd.Styles["color"])
	val, present := upd.Styles["margin-top"]
	assert.True(t, present)
	assert.Equal(t, "", val)
}

func TestUpdateElementOptionalFieldsAbsent(t *testing.T) {
	decoded, err := Decode([]byte(`{"type":"update-element","componentId":"p_Page_1_0"}`))
	require.NoError(t, err)
	upd := decoded.(UpdateElement)
	assert.Nil(t, upd.InstanceIndex)
	assert.Nil(t, upd.TextContent)
	assert.Nil(t, upd.Styles)
}

func TestElementSelectedFieldNames(t *testing.T) {
	msg := ElementSelected{ElementDescription{
		ComponentID:      "h1_Page_3_10",
		ComponentName:    "h1",
		ContentType:      ContentStaticText,
		Tag:              "h1",
		Classes:          []string{"title"},
		TextContent:      "Hello",
		HasChildElements: false,
		Styles:           map[string]string{"color": "blue"},
	}}
	data, err := Encode(msg)
	require.NoError(t, err)
	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, "element-selected", fields["type"])
	assert.Equal(t, "h1_Page_3_10", fields["componentId"])
	assert.Equal(t, "static-text", fields["contentType"])
	assert.Equal(t, false, fields["hasChildElements"])
	assert.Contains(t, fields, "instanceIndex")
}

func TestDecodeBareMessages(t *testing.T) {
	for _, typ := range []string{"enable", "disable", "toggle", "ready", "enabled", "disabled"} {
		msg, err := Decode([]byte(`{"type":"` + typ + `"}`))
		require.NoError(t, err, typ)
		assert.Equal(t, typ, msg.MessageType())
	}
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"type":"self-destruct"}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownType))
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode([]byte(`{"type":`))
	assert.Error(t, err)
}
