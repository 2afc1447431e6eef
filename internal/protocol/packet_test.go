package protocol

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danmuck/psyc/internal/testutil/testlog"
)

func contextRouting() []Modifier {
	return []Modifier{NewModifier(OperAssign, []byte("context"), []byte("#test"), ModifierCheckLength)}
}

func TestRenderPacketRoutingAndMethod(t *testing.T) {
	testlog.Start(t)
	p := NewPacket(contextRouting(), nil, []byte("ping"), nil, StateNoop, PacketNoLength)

	buf := make([]byte, p.Length)
	n, err := RenderPacket(p, buf)
	require.NoError(t, err)
	assert.Equal(t, "=context\t#test\n\nping\n|\n", string(buf[:n]))
	assert.Equal(t, p.Length, n)
}

func TestRenderPacketStructuredBodyWithLength(t *testing.T) {
	testlog.Start(t)
	routing := []Modifier{
		NewModifier(OperSet, []byte("_target"), []byte("psyc://example.org/@room"), ModifierCheckLength),
	}
	entity := []Modifier{
		NewModifier(OperAssign, []byte("_nick"), []byte("bob"), ModifierCheckLength),
	}
	p := NewPacket(routing, entity, []byte("_message_public"), []byte("hello"), StateReset, PacketNeedLength)
	require.Equal(t, 34, p.RoutingLength)
	require.Equal(t, 35, p.ContentLength)
	require.Equal(t, 74, p.Length)

	out, err := MarshalPacket(p)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "packet_need_length", out)
}

func TestRenderPacketHeaderOnly(t *testing.T) {
	p := NewPacket(contextRouting(), nil, nil, nil, StateNoop, PacketNoLength)
	out, err := MarshalPacket(p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "=context\t#test\n|\n" {
		t.Fatalf("unexpected render: %q", out)
	}
}

func TestRenderPacketEmpty(t *testing.T) {
	p := NewPacket(nil, nil, nil, nil, StateNoop, PacketCheckLength)
	out, err := MarshalPacket(p)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "|\n" {
		t.Fatalf("unexpected render: %q", out)
	}
}

func TestRenderPacketNeedLengthWithoutBody(t *testing.T) {
	p := NewPacket(contextRouting(), nil, nil, nil, StateNoop, PacketNeedLength)
	out, err := MarshalPacket(p)
	require.NoError(t, err)
	assert.Equal(t, "=context\t#test\n0\n|\n", string(out))
}

func TestRenderPacketContentWins(t *testing.T) {
	testlog.Start(t)
	content := []byte(":_nick\tbob\n_message\nhi\n")
	p := NewRawPacket(contextRouting(), content, PacketNoLength)
	p.StateOp = StateResync
	p.Entity = []Modifier{NewModifier(OperAugment, []byte("_list"), []byte("x"), ModifierNoLength)}
	p.Method = []byte("_request_ping")
	p.Data = []byte("ignored")
	SetPacketLength(p)

	out, err := MarshalPacket(p)
	require.NoError(t, err)
	assert.Equal(t, "=context\t#test\n\n"+string(content)+"|\n", string(out))
	assert.NotContains(t, string(out), "_request_ping")
	assert.NotContains(t, string(out), "ignored")
	assert.NotContains(t, string(out), "+_list")
}

func TestRenderPacketRawContentNeedsLength(t *testing.T) {
	content := []byte("_message\nfoo\n|\nbar\n")
	p := NewRawPacket(nil, content, PacketCheckLength)
	require.Equal(t, PacketNeedLength, p.Flag)

	out, err := MarshalPacket(p)
	require.NoError(t, err)
	assert.Equal(t, "19\n"+string(content)+"|\n", string(out))
}

func TestRenderPacketDataWithoutMethod(t *testing.T) {
	testlog.Start(t)
	for _, flag := range []PacketFlag{PacketNoLength, PacketNeedLength} {
		p := NewPacket(contextRouting(), nil, nil, []byte("orphan"), StateNoop, flag)
		_, err := RenderPacket(p, make([]byte, p.Length))
		if !errors.Is(err, ErrMethodMissing) {
			t.Fatalf("flag=%d: expected ErrMethodMissing, got %v", flag, err)
		}
	}
}

func TestRenderPacketRoutingNameMissing(t *testing.T) {
	testlog.Start(t)
	routing := []Modifier{
		NewModifier(OperAssign, []byte("context"), []byte("#test"), ModifierNoLength),
		{Oper: OperSet, Value: []byte("psyc://example.org/")},
	}
	p := NewPacket(routing, nil, []byte("ping"), nil, StateNoop, PacketNoLength)

	_, err := RenderPacket(p, make([]byte, p.Length))
	require.ErrorIs(t, err, ErrModifierNameMissing)

	var modErr *ModifierError
	require.ErrorAs(t, err, &modErr)
	assert.Equal(t, SectionRouting, modErr.Section)
	assert.Equal(t, 1, modErr.Index)
}

func TestRenderPacketEntityNameMissing(t *testing.T) {
	entity := []Modifier{{Oper: OperAssign, Value: []byte("bob")}}
	p := NewPacket(contextRouting(), entity, []byte("_message"), nil, StateNoop, PacketNoLength)

	_, err := RenderPacket(p, make([]byte, p.Length))
	var modErr *ModifierError
	require.ErrorAs(t, err, &modErr)
	assert.Equal(t, SectionEntity, modErr.Section)
	assert.Equal(t, 0, modErr.Index)
}

func TestRenderPacketBufferTooSmallWritesNothing(t *testing.T) {
	p := NewPacket(contextRouting(), nil, []byte("ping"), []byte("data"), StateNoop, PacketCheckLength)
	buf := bytes.Repeat([]byte{0xAA}, p.Length-1)

	n, err := RenderPacket(p, buf)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall, got %v", err)
	}
	if n != 0 {
		t.Fatalf("expected no bytes written, got %d", n)
	}
	if !bytes.Equal(buf, bytes.Repeat([]byte{0xAA}, p.Length-1)) {
		t.Fatalf("buffer modified on capacity error")
	}
}

func TestRenderPacketLengthMismatchRejected(t *testing.T) {
	testlog.Start(t)
	p := NewPacket(contextRouting(), nil, []byte("ping"), nil, StateNoop, PacketNoLength)
	actual := p.Length

	p.Length = actual + 3
	_, err := RenderPacket(p, make([]byte, 64))
	var lenErr *LengthError
	require.ErrorAs(t, err, &lenErr)
	assert.Equal(t, actual+3, lenErr.Want)
	assert.Equal(t, actual, lenErr.Got)

	p.Length = actual - 1
	buf := make([]byte, 64)
	_, err = RenderPacket(p, buf)
	require.ErrorIs(t, err, ErrLengthMismatch)
	assert.Zero(t, buf[actual-1], "renderer wrote past declared length")

	p.Length = -1
	_, err = MarshalPacket(p)
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestRenderPacketIdempotent(t *testing.T) {
	entity := []Modifier{
		NewModifier(OperAssign, []byte("_nick"), []byte("bob"), ModifierCheckLength),
		NewModifier(OperAugment, []byte("_list_members"), []byte("|a|b"), ModifierCheckLength),
	}
	p := NewPacket(contextRouting(), entity, []byte("_notice"), []byte("twice"), StateResync, PacketCheckLength)

	a := make([]byte, p.Length)
	b := make([]byte, p.Length)
	na, errA := RenderPacket(p, a)
	nb, errB := RenderPacket(p, b)
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, a[:na], b[:nb])
}
